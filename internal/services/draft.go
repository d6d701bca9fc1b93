package services

import (
  "context"
  "errors"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type CreateDraftInput struct {
  LessonType string
  Subtype    *string
  Source     *string
  Reference  *types.DraftReference
}

type DraftService interface {
  CreateDraft(ctx context.Context, userID uuid.UUID, input CreateDraftInput) (*types.LessonDraft, error)
  GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*types.LessonDraft, error)
  UpdateDocument(ctx context.Context, userID, draftID uuid.UUID, expectedVersion int, doc *types.DraftDocument) (*types.LessonDraft, error)
}

type draftService struct {
  db     *gorm.DB
  log    *logger.Logger
  drafts repos.DraftRepo
}

func NewDraftService(db *gorm.DB, baseLog *logger.Logger, drafts repos.DraftRepo) DraftService {
  return &draftService{
    db:     db,
    log:    baseLog.With("service", "DraftService"),
    drafts: drafts,
  }
}

func (s *draftService) CreateDraft(ctx context.Context, userID uuid.UUID, input CreateDraftInput) (*types.LessonDraft, error) {
  lessonType := strings.TrimSpace(input.LessonType)
  if lessonType == "" {
    return nil, apierr.Validation(errors.New("lesson_type is required"))
  }

  doc := types.BuildInitialDraft(lessonType, input.Subtype, input.Source, input.Reference)
  raw, err := doc.Marshal()
  if err != nil {
    return nil, apierr.Execution(err)
  }

  draft := &types.LessonDraft{
    DraftID:      uuid.New(),
    UserID:       userID,
    LessonType:   lessonType,
    Status:       types.DraftStatusDraft,
    DraftVersion: 1,
    Document:     raw,
  }
  if err := s.drafts.Create(ctx, nil, draft); err != nil {
    return nil, apierr.Execution(err)
  }
  return draft, nil
}

func (s *draftService) GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*types.LessonDraft, error) {
  draft, err := s.drafts.GetByID(ctx, nil, draftID, userID)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if draft == nil {
    return nil, apierr.NotFound(errors.New("draft not found"))
  }
  return draft, nil
}

// UpdateDocument replaces the document if and only if the caller saw the
// current version; the stored version bumps by one on success.
func (s *draftService) UpdateDocument(ctx context.Context, userID, draftID uuid.UUID, expectedVersion int, doc *types.DraftDocument) (*types.LessonDraft, error) {
  raw, err := doc.Marshal()
  if err != nil {
    return nil, apierr.Validation(err)
  }

  affected, err := s.drafts.UpdateDocument(ctx, nil, draftID, userID, expectedVersion, raw)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if affected == 0 {
    current, err := s.drafts.GetByID(ctx, nil, draftID, userID)
    if err != nil {
      return nil, apierr.Execution(err)
    }
    if current == nil {
      return nil, apierr.NotFound(errors.New("draft not found"))
    }
    return nil, apierr.VersionConflict(errors.New("draft version mismatch"), current.DraftVersion)
  }

  updated, err := s.drafts.GetByID(ctx, nil, draftID, userID)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if updated == nil {
    return nil, apierr.NotFound(errors.New("draft not found"))
  }
  return updated, nil
}
