package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type SentenceOccurrenceRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, occ *types.SentenceOccurrence) error
  GetByContext(ctx context.Context, tx *gorm.DB, containerID, unitID string, sentenceOrder int) (*types.SentenceOccurrence, error)
  DeleteOrphans(ctx context.Context, tx *gorm.DB, occurrenceIDs []string) error
}

type sentenceOccurrenceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSentenceOccurrenceRepo(db *gorm.DB, baseLog *logger.Logger) SentenceOccurrenceRepo {
  repoLog := baseLog.With("repo", "SentenceOccurrenceRepo")
  return &sentenceOccurrenceRepo{db: db, log: repoLog}
}

// Upsert conflicts on the (container, unit, order) context; a text edit
// re-keys occurrence_id in place.
func (r *sentenceOccurrenceRepo) Upsert(ctx context.Context, tx *gorm.DB, occ *types.SentenceOccurrence) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "container_id"}, {Name: "unit_id"}, {Name: "sentence_order"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "occurrence_id", "text_ar", "translation", "notes", "sentence_id", "updated_at",
    }),
  }).Create(occ).Error
}

func (r *sentenceOccurrenceRepo) GetByContext(ctx context.Context, tx *gorm.DB, containerID, unitID string, sentenceOrder int) (*types.SentenceOccurrence, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var occ types.SentenceOccurrence
  err := transaction.WithContext(ctx).
    Where("container_id = ? AND unit_id = ? AND sentence_order = ?", containerID, unitID, sentenceOrder).
    First(&occ).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &occ, nil
}

// DeleteOrphans removes occurrences from the given set only when no lesson
// link references them anymore.
func (r *sentenceOccurrenceRepo) DeleteOrphans(ctx context.Context, tx *gorm.DB, occurrenceIDs []string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(occurrenceIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("occurrence_id IN ?", occurrenceIDs).
    Where("NOT EXISTS (SELECT 1 FROM lesson_sentence_link l WHERE l.occurrence_id = sentence_occurrence.occurrence_id)").
    Delete(&types.SentenceOccurrence{}).Error
}
