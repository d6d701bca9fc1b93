package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// CommitReceiptRepo is the idempotency ledger. The unique key on
// (draft_id, step, draft_version) is what makes at most one caller's writes
// for a triple take effect.
type CommitReceiptRepo interface {
  Get(ctx context.Context, tx *gorm.DB, draftID uuid.UUID, step string, draftVersion int) (*types.LessonCommit, error)
  RecordSuccess(ctx context.Context, tx *gorm.DB, receipt *types.LessonCommit) error
  RecordFailure(ctx context.Context, tx *gorm.DB, receipt *types.LessonCommit) error
}

type commitReceiptRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommitReceiptRepo(db *gorm.DB, baseLog *logger.Logger) CommitReceiptRepo {
  repoLog := baseLog.With("repo", "CommitReceiptRepo")
  return &commitReceiptRepo{db: db, log: repoLog}
}

func (r *commitReceiptRepo) Get(ctx context.Context, tx *gorm.DB, draftID uuid.UUID, step string, draftVersion int) (*types.LessonCommit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var receipt types.LessonCommit
  err := transaction.WithContext(ctx).
    Where("draft_id = ? AND step = ? AND draft_version = ?", draftID, step, draftVersion).
    First(&receipt).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &receipt, nil
}

// RecordSuccess clears any earlier failure for the triple; the success
// receipt is terminal.
func (r *commitReceiptRepo) RecordSuccess(ctx context.Context, tx *gorm.DB, receipt *types.LessonCommit) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  receipt.Error = nil
  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "draft_id"}, {Name: "step"}, {Name: "draft_version"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "lesson_id", "user_id", "result", "error", "updated_at",
    }),
  }).Create(receipt).Error
}

func (r *commitReceiptRepo) RecordFailure(ctx context.Context, tx *gorm.DB, receipt *types.LessonCommit) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  receipt.UpdatedAt = time.Now().UTC()
  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "draft_id"}, {Name: "step"}, {Name: "draft_version"}},
    DoUpdates: clause.AssignmentColumns([]string{"error", "updated_at"}),
  }).Create(receipt).Error
}
