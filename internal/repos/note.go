package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type NoteRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, note *types.Note) error
  UpsertTarget(ctx context.Context, tx *gorm.DB, target *types.NoteTarget) error
  DeleteTargetsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
  GetTargetsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.NoteTarget, error)
}

type noteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
  repoLog := baseLog.With("repo", "NoteRepo")
  return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Upsert(ctx context.Context, tx *gorm.DB, note *types.Note) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "note_key"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "note_type", "title", "excerpt", "commentary", "source_id", "locator",
      "extra", "updated_at",
    }),
  }).Create(note).Error
}

func (r *noteRepo) UpsertTarget(ctx context.Context, tx *gorm.DB, target *types.NoteTarget) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "note_key"}, {Name: "target_type"}, {Name: "target_id"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "relation", "container_id", "unit_id", "ref", "lesson_id",
    }),
  }).Create(target).Error
}

func (r *noteRepo) DeleteTargetsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Delete(&types.NoteTarget{}).Error
}

func (r *noteRepo) GetTargetsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.NoteTarget, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.NoteTarget
  if err := transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
