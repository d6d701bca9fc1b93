package services

import (
  "context"
  "errors"
  "testing"
  "github.com/google/uuid"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

func TestCreateDraftSeedsEmptyDocument(t *testing.T) {
  env := newTestEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  draft, err := env.drafts.CreateDraft(ctx, userID, CreateDraftInput{
    LessonType: "quran",
    Reference: &types.DraftReference{
      ContainerID: strptr("quran-001"),
      UnitID:      strptr("1"),
    },
  })
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if draft.DraftVersion != 1 || draft.Status != types.DraftStatusDraft {
    t.Fatalf("new draft must start at version 1 in draft status, got v%d %q", draft.DraftVersion, draft.Status)
  }

  doc, err := types.ParseDraftDocument(draft.Document)
  if err != nil {
    t.Fatalf("parse document: %v", err)
  }
  if doc.Meta.LessonType != "quran" {
    t.Fatalf("lesson type = %q", doc.Meta.LessonType)
  }
  if doc.Reference.ContainerID == nil || *doc.Reference.ContainerID != "quran-001" {
    t.Fatalf("reference must carry through")
  }
  if len(doc.Units) != 0 || len(doc.Sentences) != 0 || len(doc.Notes) != 0 {
    t.Fatalf("initial document must have empty sections")
  }

  if _, err := env.drafts.CreateDraft(ctx, userID, CreateDraftInput{LessonType: "  "}); err == nil {
    t.Fatalf("blank lesson_type must be rejected")
  }
}

func TestUpdateDocumentBumpsVersion(t *testing.T) {
  env := newTestEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())

  doc := quranDraftDocument()
  doc.Meta.Title = "Surah Al-Fatiha, revised"
  updated, err := env.drafts.UpdateDocument(ctx, userID, draft.DraftID, draft.DraftVersion, doc)
  if err != nil {
    t.Fatalf("update: %v", err)
  }
  if updated.DraftVersion != draft.DraftVersion+1 {
    t.Fatalf("version must bump, got %d", updated.DraftVersion)
  }
  stored, err := types.ParseDraftDocument(updated.Document)
  if err != nil {
    t.Fatalf("parse: %v", err)
  }
  if stored.Meta.Title != "Surah Al-Fatiha, revised" {
    t.Fatalf("document must replace, got title %q", stored.Meta.Title)
  }
}

func TestUpdateDocumentRejectsStaleVersion(t *testing.T) {
  env := newTestEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, userID, quranDraftDocument())

  _, err := env.drafts.UpdateDocument(ctx, userID, draft.DraftID, draft.DraftVersion+1, quranDraftDocument())
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeConflict {
    t.Fatalf("stale version must conflict, got %v", err)
  }
  details, ok := ae.Details.(map[string]any)
  if !ok || details["current_version"] != draft.DraftVersion {
    t.Fatalf("conflict must report the current version, got %v", ae.Details)
  }

  reloaded := env.reloadDraft(t, userID, draft.DraftID)
  if reloaded.DraftVersion != draft.DraftVersion {
    t.Fatalf("rejected update must not bump, got %d", reloaded.DraftVersion)
  }
}

func TestGetDraftScopedToOwner(t *testing.T) {
  env := newTestEnv(t)
  owner := uuid.New()
  ctx := context.Background()

  draft := env.createDraft(t, owner, quranDraftDocument())

  _, err := env.drafts.GetDraft(ctx, uuid.New(), draft.DraftID)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeNotFound {
    t.Fatalf("foreign user must not see the draft, got %v", err)
  }
}
