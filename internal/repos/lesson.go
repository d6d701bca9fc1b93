package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type LessonRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
  GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error)
  Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error
  MarkPublished(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, snapshot datatypes.JSON) error
}

type lessonRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
  repoLog := baseLog.With("repo", "LessonRepo")
  return &lessonRepo{db: db, log: repoLog}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var lesson types.Lesson
  err := transaction.WithContext(ctx).Where("id = ?", lessonID).First(&lesson).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &lesson, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(updates) == 0 {
    return nil
  }
  updates["updated_at"] = time.Now().UTC()
  return transaction.WithContext(ctx).Model(&types.Lesson{}).
    Where("id = ?", lessonID).
    Updates(updates).Error
}

func (r *lessonRepo) MarkPublished(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, snapshot datatypes.JSON) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Model(&types.Lesson{}).
    Where("id = ?", lessonID).
    Updates(map[string]interface{}{
      "status":     types.LessonStatusPublished,
      "snapshot":   snapshot,
      "updated_at": time.Now().UTC(),
    }).Error
}
