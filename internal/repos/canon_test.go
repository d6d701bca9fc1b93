package repos

import (
  "context"
  "testing"
  "gorm.io/datatypes"
  "github.com/yungbote/linguabridge-backend/internal/canon"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

func TestCanonUpsertIsIdempotent(t *testing.T) {
  db := newTestDB(t)
  repo := NewCanonRepo(db, testLogger(t))
  ctx := context.Background()

  contentID, canonicalInput := canon.ContentID(canon.RootKey("ktb"))
  row := &types.Root{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    Root:           "كتب",
    RootNorm:       "ktb",
    Status:         "active",
  }
  if err := repo.UpsertRoot(ctx, nil, row); err != nil {
    t.Fatalf("first upsert: %v", err)
  }

  update := &types.Root{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    Root:           "كتب",
    RootNorm:       "ktb",
    Status:         "active",
    Frequency:      strptr("high"),
  }
  if err := repo.UpsertRoot(ctx, nil, update); err != nil {
    t.Fatalf("second upsert: %v", err)
  }

  var total int64
  if err := db.Model(&types.Root{}).Count(&total).Error; err != nil {
    t.Fatalf("count: %v", err)
  }
  if total != 1 {
    t.Fatalf("identical identity must stay one row, got %d", total)
  }

  var stored types.Root
  if err := db.Where("content_id = ?", contentID).First(&stored).Error; err != nil {
    t.Fatalf("fetch: %v", err)
  }
  if stored.Frequency == nil || *stored.Frequency != "high" {
    t.Fatalf("denormalized fields must refresh on conflict")
  }
}

func TestCanonUpsertSentenceKindSplitsIdentity(t *testing.T) {
  db := newTestDB(t)
  repo := NewCanonRepo(db, testLogger(t))
  ctx := context.Background()

  sequence := []string{"kataba", "al-walad"}
  defaultID, defaultInput := canon.ContentID(canon.SentenceKey("default", sequence))
  questionID, questionInput := canon.ContentID(canon.SentenceKey("question", sequence))
  if defaultID == questionID {
    t.Fatalf("sentence kind must be part of identity")
  }

  for _, row := range []*types.Sentence{
    {ContentID: defaultID, CanonicalInput: defaultInput, SentenceKind: "default", Sequence: datatypes.NewJSONSlice(sequence)},
    {ContentID: questionID, CanonicalInput: questionInput, SentenceKind: "question", Sequence: datatypes.NewJSONSlice(sequence)},
  } {
    if err := repo.UpsertSentence(ctx, nil, row); err != nil {
      t.Fatalf("upsert: %v", err)
    }
  }

  var total int64
  if err := db.Model(&types.Sentence{}).Count(&total).Error; err != nil {
    t.Fatalf("count: %v", err)
  }
  if total != 2 {
    t.Fatalf("expected two sentence rows, got %d", total)
  }
}
