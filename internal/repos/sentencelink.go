package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type LessonSentenceLinkRepo interface {
  ListOccurrenceIDs(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]string, error)
  ReplaceForLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, links []*types.LessonSentenceLink) error
}

type lessonSentenceLinkRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonSentenceLinkRepo(db *gorm.DB, baseLog *logger.Logger) LessonSentenceLinkRepo {
  repoLog := baseLog.With("repo", "LessonSentenceLinkRepo")
  return &lessonSentenceLinkRepo{db: db, log: repoLog}
}

func (r *lessonSentenceLinkRepo) ListOccurrenceIDs(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []string
  if err := transaction.WithContext(ctx).Model(&types.LessonSentenceLink{}).
    Where("lesson_id = ?", lessonID).
    Pluck("occurrence_id", &ids).Error; err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *lessonSentenceLinkRepo) ReplaceForLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, links []*types.LessonSentenceLink) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Delete(&types.LessonSentenceLink{}).Error; err != nil {
    return err
  }
  if len(links) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&links).Error
}
