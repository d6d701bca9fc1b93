package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// Commit planning is pure: each step produces an ordered list of write
// intents, and a single runner applies them inside one transaction. Planning
// failures surface before any write happens.

type writeOp interface {
  isWriteOp()
}

type opCreateLesson struct {
  lesson *types.Lesson
}

type opUpdateLesson struct {
  lessonID uuid.UUID
  updates  map[string]interface{}
}

type opSetDraftLesson struct {
  draftID  uuid.UUID
  lessonID uuid.UUID
}

type opReplaceUnitLinks struct {
  lessonID uuid.UUID
  links    []*types.LessonUnitLink
}

type opUpsertSentence struct {
  row *types.Sentence
}

type opUpsertOccurrence struct {
  occ *types.SentenceOccurrence
}

type opReplaceSentenceLinks struct {
  lessonID uuid.UUID
  links    []*types.LessonSentenceLink
}

type opDeleteOrphanOccurrences struct {
  occurrenceIDs []string
}

type opDeleteNoteTargets struct {
  lessonID uuid.UUID
}

type opUpsertNote struct {
  note *types.Note
}

type opUpsertNoteTarget struct {
  target *types.NoteTarget
}

type opRecordReceipt struct {
  receipt *types.LessonCommit
}

func (opCreateLesson) isWriteOp()            {}
func (opUpdateLesson) isWriteOp()            {}
func (opSetDraftLesson) isWriteOp()          {}
func (opReplaceUnitLinks) isWriteOp()        {}
func (opUpsertSentence) isWriteOp()          {}
func (opUpsertOccurrence) isWriteOp()        {}
func (opReplaceSentenceLinks) isWriteOp()    {}
func (opDeleteOrphanOccurrences) isWriteOp() {}
func (opDeleteNoteTargets) isWriteOp()       {}
func (opUpsertNote) isWriteOp()              {}
func (opUpsertNoteTarget) isWriteOp()        {}
func (opRecordReceipt) isWriteOp()           {}

func (s *commitService) applyPlan(ctx context.Context, tx *gorm.DB, plan []writeOp) error {
  for _, op := range plan {
    var err error
    switch v := op.(type) {
    case opCreateLesson:
      err = s.lessons.Create(ctx, tx, v.lesson)
    case opUpdateLesson:
      err = s.lessons.Update(ctx, tx, v.lessonID, v.updates)
    case opSetDraftLesson:
      err = s.drafts.SetLessonID(ctx, tx, v.draftID, v.lessonID)
    case opReplaceUnitLinks:
      err = s.unitLinks.ReplaceForLesson(ctx, tx, v.lessonID, v.links)
    case opUpsertSentence:
      err = s.canon.UpsertSentence(ctx, tx, v.row)
    case opUpsertOccurrence:
      err = s.occurrences.Upsert(ctx, tx, v.occ)
    case opReplaceSentenceLinks:
      err = s.sentenceLinks.ReplaceForLesson(ctx, tx, v.lessonID, v.links)
    case opDeleteOrphanOccurrences:
      err = s.occurrences.DeleteOrphans(ctx, tx, v.occurrenceIDs)
    case opDeleteNoteTargets:
      err = s.notes.DeleteTargetsByLesson(ctx, tx, v.lessonID)
    case opUpsertNote:
      err = s.notes.Upsert(ctx, tx, v.note)
    case opUpsertNoteTarget:
      err = s.notes.UpsertTarget(ctx, tx, v.target)
    case opRecordReceipt:
      err = s.receipts.RecordSuccess(ctx, tx, v.receipt)
    default:
      return fmt.Errorf("unhandled write op %T", op)
    }
    if err != nil {
      return err
    }
  }
  return nil
}
