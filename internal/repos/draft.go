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

type DraftRepo interface {
  Create(ctx context.Context, tx *gorm.DB, draft *types.LessonDraft) error
  GetByID(ctx context.Context, tx *gorm.DB, draftID, userID uuid.UUID) (*types.LessonDraft, error)
  SetLessonID(ctx context.Context, tx *gorm.DB, draftID, lessonID uuid.UUID) error
  UpdateDocument(ctx context.Context, tx *gorm.DB, draftID, userID uuid.UUID, expectedVersion int, document datatypes.JSON) (int64, error)
  MarkPublished(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) error
}

type draftRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDraftRepo(db *gorm.DB, baseLog *logger.Logger) DraftRepo {
  repoLog := baseLog.With("repo", "DraftRepo")
  return &draftRepo{db: db, log: repoLog}
}

func (r *draftRepo) Create(ctx context.Context, tx *gorm.DB, draft *types.LessonDraft) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Create(draft).Error
}

func (r *draftRepo) GetByID(ctx context.Context, tx *gorm.DB, draftID, userID uuid.UUID) (*types.LessonDraft, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var draft types.LessonDraft
  err := transaction.WithContext(ctx).
    Where("draft_id = ? AND user_id = ?", draftID, userID).
    First(&draft).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &draft, nil
}

func (r *draftRepo) SetLessonID(ctx context.Context, tx *gorm.DB, draftID, lessonID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Model(&types.LessonDraft{}).
    Where("draft_id = ?", draftID).
    Updates(map[string]interface{}{
      "lesson_id":  lessonID,
      "updated_at": time.Now().UTC(),
    }).Error
}

// UpdateDocument bumps draft_version atomically; zero rows affected means the
// draft is missing or the expected version is stale.
func (r *draftRepo) UpdateDocument(ctx context.Context, tx *gorm.DB, draftID, userID uuid.UUID, expectedVersion int, document datatypes.JSON) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).Model(&types.LessonDraft{}).
    Where("draft_id = ? AND user_id = ? AND draft_version = ?", draftID, userID, expectedVersion).
    Updates(map[string]interface{}{
      "document":      document,
      "draft_version": gorm.Expr("draft_version + 1"),
      "updated_at":    time.Now().UTC(),
    })
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (r *draftRepo) MarkPublished(ctx context.Context, tx *gorm.DB, draftID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Model(&types.LessonDraft{}).
    Where("draft_id = ?", draftID).
    Updates(map[string]interface{}{
      "status":     types.DraftStatusPublished,
      "updated_at": time.Now().UTC(),
    }).Error
}
