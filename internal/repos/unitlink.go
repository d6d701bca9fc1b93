package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type LessonUnitLinkRepo interface {
  ReplaceForLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, links []*types.LessonUnitLink) error
  GetByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonUnitLink, error)
}

type lessonUnitLinkRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonUnitLinkRepo(db *gorm.DB, baseLog *logger.Logger) LessonUnitLinkRepo {
  repoLog := baseLog.With("repo", "LessonUnitLinkRepo")
  return &lessonUnitLinkRepo{db: db, log: repoLog}
}

func (r *lessonUnitLinkRepo) ReplaceForLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, links []*types.LessonUnitLink) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Delete(&types.LessonUnitLink{}).Error; err != nil {
    return err
  }
  if len(links) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&links).Error
}

func (r *lessonUnitLinkRepo) GetByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonUnitLink, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LessonUnitLink
  if err := transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Order("order_index ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
