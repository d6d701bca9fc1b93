package services

import (
  "context"
  "encoding/json"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type LessonService interface {
  GetPublishedLesson(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
}

type lessonService struct {
  db      *gorm.DB
  log     *logger.Logger
  lessons repos.LessonRepo
  cache   SnapshotCache
}

func NewLessonService(db *gorm.DB, baseLog *logger.Logger, lessons repos.LessonRepo, cache SnapshotCache) LessonService {
  return &lessonService{
    db:      db,
    log:     baseLog.With("service", "LessonService"),
    lessons: lessons,
    cache:   cache,
  }
}

// GetPublishedLesson reads through the cache. A cache miss or decode failure
// falls back to the database and repopulates the entry.
func (s *lessonService) GetPublishedLesson(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
  if s.cache != nil {
    cached, err := s.cache.GetLesson(ctx, lessonID.String())
    if err != nil {
      s.log.Warn("lesson cache read", "lesson_id", lessonID, "error", err)
    } else if len(cached) > 0 {
      var lesson types.Lesson
      if err := json.Unmarshal(cached, &lesson); err == nil {
        return &lesson, nil
      }
    }
  }

  lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if lesson == nil || lesson.Status != types.LessonStatusPublished {
    return nil, apierr.NotFound(errors.New("lesson not found"))
  }

  if s.cache != nil {
    if raw, err := json.Marshal(lesson); err == nil {
      if err := s.cache.SetLesson(ctx, lessonID.String(), raw); err != nil {
        s.log.Warn("lesson cache write", "lesson_id", lessonID, "error", err)
      }
    }
  }
  return lesson, nil
}
