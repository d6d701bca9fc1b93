package handlers

import (
  "errors"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type LessonHandler struct {
  svc services.LessonService
}

func NewLessonHandler(svc services.LessonService) *LessonHandler {
  return &LessonHandler{svc: svc}
}

// GET /api/ar/lessons/:lessonId
func (h *LessonHandler) GetLesson(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("lessonId"))
  if err != nil {
    RespondError(c, apierr.Validation(errors.New("invalid lesson id")))
    return
  }

  lesson, err := h.svc.GetPublishedLesson(c.Request.Context(), lessonID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"lesson": lesson})
}
