package repos

import (
  "context"
  "testing"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

func TestGrammarUpsertFuzzyMerge(t *testing.T) {
  db := newTestDB(t)
  repo := NewGrammarRepo(db, testLogger(t))
  ctx := context.Background()

  first, err := repo.Upsert(ctx, nil, GrammarPayload{
    GrammarID: "Idafa",
    Category:  strptr("syntax"),
    Title:     strptr("Idafa"),
  })
  if err != nil {
    t.Fatalf("first upsert: %v", err)
  }
  if first.Merged {
    t.Fatalf("first upsert must insert, not merge")
  }

  second, err := repo.Upsert(ctx, nil, GrammarPayload{
    GrammarID:  "Iḍāfa",
    Title:      strptr("Iḍāfa construction"),
    Definition: strptr("possessive construction"),
  })
  if err != nil {
    t.Fatalf("second upsert: %v", err)
  }
  if !second.Merged {
    t.Fatalf("diacritic variant must merge into the existing topic")
  }
  if second.ContentID != first.ContentID {
    t.Fatalf("variants must converge on one content id: %s vs %s", first.ContentID, second.ContentID)
  }

  var total int64
  if err := db.Model(&types.GrammarEntry{}).Count(&total).Error; err != nil {
    t.Fatalf("count: %v", err)
  }
  if total != 1 {
    t.Fatalf("expected a single grammar row, got %d", total)
  }

  row, err := repo.GetByContentID(ctx, nil, first.ContentID)
  if err != nil {
    t.Fatalf("get: %v", err)
  }
  if row == nil {
    t.Fatalf("merged row missing")
  }
  if row.GrammarID != "Idafa" {
    t.Fatalf("merge must not rewrite grammar_id, got %q", row.GrammarID)
  }
  if row.Title == nil || *row.Title != "Idafa" {
    t.Fatalf("stored title must win over incoming, got %v", row.Title)
  }
  if row.Definition == nil || *row.Definition != "possessive construction" {
    t.Fatalf("null scalar must be filled by incoming, got %v", row.Definition)
  }
}

func TestGrammarUpsertAliasUnionGrowsMonotonically(t *testing.T) {
  db := newTestDB(t)
  repo := NewGrammarRepo(db, testLogger(t))
  ctx := context.Background()

  if _, err := repo.Upsert(ctx, nil, GrammarPayload{GrammarID: "Ism al-Fail"}); err != nil {
    t.Fatalf("seed upsert: %v", err)
  }
  result, err := repo.Upsert(ctx, nil, GrammarPayload{
    GrammarID: "Ism al-Fāʿil",
    Title:     strptr("Active Participle"),
  })
  if err != nil {
    t.Fatalf("variant upsert: %v", err)
  }
  if !result.Merged {
    t.Fatalf("variant must merge")
  }

  row, err := repo.GetByContentID(ctx, nil, result.ContentID)
  if err != nil || row == nil {
    t.Fatalf("fetch merged row: %v", err)
  }
  keys := map[string]bool{}
  for _, key := range row.LookupKeys {
    keys[key] = true
  }
  if !keys["ism_al_fail"] || !keys["active_participle"] {
    t.Fatalf("alias set must include both variants, got %v", row.LookupKeys)
  }

  before := len(row.LookupKeys)
  if _, err := repo.Upsert(ctx, nil, GrammarPayload{GrammarID: "ism al-fail"}); err != nil {
    t.Fatalf("repeat upsert: %v", err)
  }
  row, _ = repo.GetByContentID(ctx, nil, result.ContentID)
  if len(row.LookupKeys) < before {
    t.Fatalf("alias set must never shrink: %d -> %d", before, len(row.LookupKeys))
  }
}

func TestGrammarUpsertDistinctTopicsStaySeparate(t *testing.T) {
  db := newTestDB(t)
  repo := NewGrammarRepo(db, testLogger(t))
  ctx := context.Background()

  a, err := repo.Upsert(ctx, nil, GrammarPayload{GrammarID: "Idafa"})
  if err != nil {
    t.Fatalf("upsert a: %v", err)
  }
  b, err := repo.Upsert(ctx, nil, GrammarPayload{GrammarID: "Jumla Ismiyya"})
  if err != nil {
    t.Fatalf("upsert b: %v", err)
  }
  if a.ContentID == b.ContentID {
    t.Fatalf("unrelated topics must not merge")
  }
}
