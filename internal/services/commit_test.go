package services

import (
  "context"
  "errors"
  "strings"
  "testing"
  "github.com/google/uuid"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

func TestCommitMetaCreatesLessonOnce(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())

  result, err := env.commits.CommitStep(ctx, userID, draft, StepMeta)
  if err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  if result.AlreadyCommitted {
    t.Fatalf("first commit must not report already committed")
  }
  if result.Counts["lessons"] != 1 {
    t.Fatalf("expected lessons count 1, got %v", result.Counts)
  }

  var lesson types.Lesson
  if err := env.db.Where("id = ?", result.LessonID).First(&lesson).Error; err != nil {
    t.Fatalf("lesson row: %v", err)
  }
  if lesson.Status != types.LessonStatusDraft {
    t.Fatalf("fresh lesson must be draft, got %q", lesson.Status)
  }
  if lesson.Title != "Surah Al-Fatiha, verses 1-3" {
    t.Fatalf("lesson title = %q", lesson.Title)
  }

  reloaded := env.reloadDraft(t, userID, draft.DraftID)
  if reloaded.LessonID == nil || *reloaded.LessonID != result.LessonID {
    t.Fatalf("draft must be linked to the created lesson")
  }

  // Same (draft, step, version) again: receipt short-circuits, nothing new.
  repeat, err := env.commits.CommitStep(ctx, userID, reloaded, StepMeta)
  if err != nil {
    t.Fatalf("repeat commit: %v", err)
  }
  if !repeat.AlreadyCommitted {
    t.Fatalf("repeat must be short-circuited by the receipt")
  }
  if repeat.LessonID != result.LessonID {
    t.Fatalf("repeat must report the original lesson id")
  }
  if repeat.Counts["lessons"] != 1 {
    t.Fatalf("repeat must re-report stored counts, got %v", repeat.Counts)
  }

  var lessonTotal int64
  env.db.Model(&types.Lesson{}).Count(&lessonTotal)
  if lessonTotal != 1 {
    t.Fatalf("repeat commit must not create rows, got %d lessons", lessonTotal)
  }
}

func TestCommitRequiresMetaFirst(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()

  draft := env.createDraft(t, userID, quranDraftDocument())

  _, err := env.commits.CommitStep(context.Background(), userID, draft, StepUnits)
  if err == nil {
    t.Fatalf("units before meta must fail")
  }
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeConflict {
    t.Fatalf("expected conflict, got %v", err)
  }
}

func TestCommitMetaValidation(t *testing.T) {
  env := newTestEnv(t)
  userID := uuid.New()

  doc := quranDraftDocument()
  doc.Meta.Title = ""
  draft := env.createDraft(t, userID, doc)

  _, err := env.commits.CommitStep(context.Background(), userID, draft, StepMeta)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("expected validation error, got %v", err)
  }

  var total int64
  env.db.Model(&types.Lesson{}).Count(&total)
  if total != 0 {
    t.Fatalf("validation failure must not write")
  }
}

func TestCommitUnitsRejectsForeignUnits(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1")
  userID := uuid.New()
  ctx := context.Background()

  doc := quranDraftDocument()
  draft := env.createDraft(t, userID, doc)
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  // Unit "2" is not in the seeded catalog.
  _, err := env.commits.CommitStep(ctx, userID, draft, StepUnits)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("expected validation error, got %v", err)
  }

  var links int64
  env.db.Model(&types.LessonUnitLink{}).Count(&links)
  if links != 0 {
    t.Fatalf("rejected commit must not write links")
  }
}

func TestCommitUnitsReplacesLinks(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  result, err := env.commits.CommitStep(ctx, userID, draft, StepUnits)
  if err != nil {
    t.Fatalf("units commit: %v", err)
  }
  if result.Counts["container_links"] != 1 || result.Counts["unit_links"] != 2 {
    t.Fatalf("unexpected counts %v", result.Counts)
  }

  var links []types.LessonUnitLink
  if err := env.db.Where("lesson_id = ?", result.LessonID).Order("order_index").Find(&links).Error; err != nil {
    t.Fatalf("links: %v", err)
  }
  if len(links) != 3 {
    t.Fatalf("expected container link plus two unit links, got %d", len(links))
  }
  if links[0].LinkScope != types.LinkScopeContainer {
    t.Fatalf("first link must be container scope")
  }
}

func TestCommitSentencesDeduplicatesContent(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  doc := quranDraftDocument()
  // Same text in two positions: one canonical sentence, two occurrences.
  doc.Sentences[1].TextAr = doc.Sentences[0].TextAr
  doc.Sentences[1].Translation = doc.Sentences[0].Translation
  draft := env.createDraft(t, userID, doc)
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  result, err := env.commits.CommitStep(ctx, userID, draft, StepSentences)
  if err != nil {
    t.Fatalf("sentences commit: %v", err)
  }
  if result.Counts["sentence_links"] != 2 {
    t.Fatalf("unexpected counts %v", result.Counts)
  }

  var canonical int64
  env.db.Model(&types.Sentence{}).Count(&canonical)
  if canonical != 1 {
    t.Fatalf("identical sequences must share one canonical row, got %d", canonical)
  }
  var occurrences int64
  env.db.Model(&types.SentenceOccurrence{}).Count(&occurrences)
  if occurrences != 2 {
    t.Fatalf("positions must stay distinct occurrences, got %d", occurrences)
  }
  var links int64
  env.db.Model(&types.LessonSentenceLink{}).Where("lesson_id = ?", result.LessonID).Count(&links)
  if links != 2 {
    t.Fatalf("expected two links, got %d", links)
  }
}

func TestCommitSentencesIdempotentPerVersion(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  first, err := env.commits.CommitStep(ctx, userID, draft, StepSentences)
  if err != nil {
    t.Fatalf("first sentences commit: %v", err)
  }
  repeat, err := env.commits.CommitStep(ctx, userID, draft, StepSentences)
  if err != nil {
    t.Fatalf("repeat sentences commit: %v", err)
  }
  if !repeat.AlreadyCommitted {
    t.Fatalf("repeat must short-circuit")
  }
  for key, want := range first.Counts {
    if repeat.Counts[key] != want {
      t.Fatalf("counts diverged for %s: %d vs %d", key, want, repeat.Counts[key])
    }
  }

  var occurrences int64
  env.db.Model(&types.SentenceOccurrence{}).Count(&occurrences)
  if occurrences != 2 {
    t.Fatalf("repeat must not add occurrences, got %d", occurrences)
  }
}

func TestCommitNotesResolvesSentenceTarget(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepSentences); err != nil {
    t.Fatalf("sentences commit: %v", err)
  }

  result, err := env.commits.CommitStep(ctx, userID, draft, StepNotes)
  if err != nil {
    t.Fatalf("notes commit: %v", err)
  }
  if result.Counts["notes"] != 1 || result.Counts["note_targets"] != 1 {
    t.Fatalf("unexpected counts %v", result.Counts)
  }

  var target types.NoteTarget
  if err := env.db.Where("lesson_id = ?", result.LessonID).First(&target).Error; err != nil {
    t.Fatalf("note target: %v", err)
  }
  if !strings.HasPrefix(target.TargetID, "sentence:") {
    t.Fatalf("sentence target must resolve to an occurrence id, got %q", target.TargetID)
  }

  // Re-committing notes must reconcile onto the same note row.
  repeatDoc := quranDraftDocument()
  repeatDraft := draft
  raw, _ := repeatDoc.Marshal()
  repeatDraft.Document = raw
  repeatDraft.DraftVersion = draft.DraftVersion + 1
  if err := env.db.Model(&types.LessonDraft{}).Where("draft_id = ?", draft.DraftID).
    Update("draft_version", repeatDraft.DraftVersion).Error; err != nil {
    t.Fatalf("bump version: %v", err)
  }
  if _, err := env.commits.CommitStep(ctx, userID, repeatDraft, StepNotes); err != nil {
    t.Fatalf("repeat notes commit: %v", err)
  }
  var noteTotal int64
  env.db.Model(&types.Note{}).Count(&noteTotal)
  if noteTotal != 1 {
    t.Fatalf("stable note key must reconcile to one row, got %d", noteTotal)
  }
}

func TestCommitNotesUnresolvedSentenceTarget(t *testing.T) {
  env := newTestEnv(t)
  env.seedCatalog(t, "quran-001", "1", "2")
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  // No sentences committed yet, so the positional target cannot resolve.
  _, err := env.commits.CommitStep(ctx, userID, draft, StepNotes)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeNotFound {
    t.Fatalf("expected not_found, got %v", err)
  }

  var targets int64
  env.db.Model(&types.NoteTarget{}).Count(&targets)
  if targets != 0 {
    t.Fatalf("failed resolution must not write targets")
  }
}

func TestCommitComprehensionValidatesMCQs(t *testing.T) {
  env := newTestEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  doc := quranDraftDocument()
  doc.Comprehension.MCQs[0].CorrectOptionID = "zzz"
  draft := env.createDraft(t, userID, doc)
  if _, err := env.commits.CommitStep(ctx, userID, draft, StepMeta); err != nil {
    t.Fatalf("meta commit: %v", err)
  }
  draft = env.reloadDraft(t, userID, draft.DraftID)

  _, err := env.commits.CommitStep(ctx, userID, draft, StepComprehension)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("expected validation error, got %v", err)
  }
}
