package handlers

import (
  "errors"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/requestdata"
  "github.com/yungbote/linguabridge-backend/internal/services"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type DraftHandler struct {
  drafts  services.DraftService
  commits services.CommitService
  publish services.PublishService
}

func NewDraftHandler(drafts services.DraftService, commits services.CommitService, publish services.PublishService) *DraftHandler {
  return &DraftHandler{drafts: drafts, commits: commits, publish: publish}
}

func callerID(c *gin.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, apierr.Validation(errors.New("missing caller identity"))
  }
  return rd.UserID, nil
}

func draftParam(c *gin.Context) (uuid.UUID, error) {
  draftID, err := uuid.Parse(c.Param("draftId"))
  if err != nil {
    return uuid.Nil, apierr.Validation(errors.New("invalid draft id"))
  }
  return draftID, nil
}

// POST /api/ar/lesson-drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
  userID, err := callerID(c)
  if err != nil {
    RespondError(c, err)
    return
  }

  var body struct {
    LessonType string                `json:"lesson_type"`
    Subtype    *string               `json:"subtype"`
    Source     *string               `json:"source"`
    Reference  *types.DraftReference `json:"reference"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
    return
  }

  draft, err := h.drafts.CreateDraft(c.Request.Context(), userID, services.CreateDraftInput{
    LessonType: body.LessonType,
    Subtype:    body.Subtype,
    Source:     body.Source,
    Reference:  body.Reference,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": draft})
}

// GET /api/ar/lesson-drafts/:draftId
func (h *DraftHandler) GetDraft(c *gin.Context) {
  userID, err := callerID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  draftID, err := draftParam(c)
  if err != nil {
    RespondError(c, err)
    return
  }

  draft, err := h.drafts.GetDraft(c.Request.Context(), userID, draftID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": draft})
}

// PUT /api/ar/lesson-drafts/:draftId
func (h *DraftHandler) UpdateDocument(c *gin.Context) {
  userID, err := callerID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  draftID, err := draftParam(c)
  if err != nil {
    RespondError(c, err)
    return
  }

  var body struct {
    DraftVersion *int                 `json:"draft_version"`
    Document     *types.DraftDocument `json:"document"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
    return
  }
  if body.DraftVersion == nil {
    RespondError(c, apierr.Validation(errors.New("draft_version is required")))
    return
  }
  if body.Document == nil {
    RespondError(c, apierr.Validation(errors.New("document is required")))
    return
  }

  draft, err := h.drafts.UpdateDocument(c.Request.Context(), userID, draftID, *body.DraftVersion, body.Document)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": draft})
}

// POST /api/ar/lesson-drafts/:draftId/commit
func (h *DraftHandler) CommitStep(c *gin.Context) {
  userID, err := callerID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  draftID, err := draftParam(c)
  if err != nil {
    RespondError(c, err)
    return
  }

  var body struct {
    Step         string `json:"step"`
    DraftVersion *int   `json:"draft_version"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
    return
  }
  step, ok := services.ParseCommitStep(body.Step)
  if !ok {
    RespondError(c, apierr.Validation(errors.New("invalid step")))
    return
  }
  if body.DraftVersion == nil {
    RespondError(c, apierr.Validation(errors.New("draft_version is required")))
    return
  }

  draft, err := h.drafts.GetDraft(c.Request.Context(), userID, draftID)
  if err != nil {
    RespondError(c, err)
    return
  }
  if draft.DraftVersion != *body.DraftVersion {
    RespondError(c, apierr.VersionConflict(errors.New("draft version mismatch"), draft.DraftVersion))
    return
  }

  result, err := h.commits.CommitStep(c.Request.Context(), userID, draft, step)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "lesson_id":         result.LessonID,
    "step":              result.Step,
    "counts":            result.Counts,
    "already_committed": result.AlreadyCommitted,
  })
}

// POST /api/ar/lesson-drafts/:draftId/publish
func (h *DraftHandler) Publish(c *gin.Context) {
  userID, err := callerID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  draftID, err := draftParam(c)
  if err != nil {
    RespondError(c, err)
    return
  }

  var body struct {
    DraftVersion *int `json:"draft_version"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
    return
  }
  if body.DraftVersion == nil {
    RespondError(c, apierr.Validation(errors.New("draft_version is required")))
    return
  }

  result, err := h.publish.Publish(c.Request.Context(), userID, draftID, *body.DraftVersion)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"lesson_id": result.LessonID, "status": result.Status})
}
