package repos

import (
  "context"
  "errors"
  "time"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/canon"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type GrammarPayload struct {
  GrammarID    string         `json:"grammar_id"`
  Category     *string        `json:"category"`
  Title        *string        `json:"title"`
  TitleAr      *string        `json:"title_ar"`
  Definition   *string        `json:"definition"`
  DefinitionAr *string        `json:"definition_ar"`
  Meta         datatypes.JSON `json:"meta"`
}

type GrammarUpsertResult struct {
  ContentID      string
  CanonicalInput string
  Merged         bool
}

// GrammarRepo resolves grammar topics fuzzily: exact grammar_id first, then
// canonical_norm / alias membership, then a fresh content-addressed insert.
// Scalar fields never overwrite a non-null stored value; the alias set only
// grows.
type GrammarRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, payload GrammarPayload) (*GrammarUpsertResult, error)
  GetByGrammarID(ctx context.Context, tx *gorm.DB, grammarID string) (*types.GrammarEntry, error)
  GetByContentID(ctx context.Context, tx *gorm.DB, contentID string) (*types.GrammarEntry, error)
}

type grammarRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGrammarRepo(db *gorm.DB, baseLog *logger.Logger) GrammarRepo {
  repoLog := baseLog.With("repo", "GrammarRepo")
  return &grammarRepo{db: db, log: repoLog}
}

func (r *grammarRepo) Upsert(ctx context.Context, tx *gorm.DB, payload GrammarPayload) (*GrammarUpsertResult, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if payload.GrammarID == "" {
    return nil, errors.New("grammar_id is required")
  }

  var canonicalNorm *string
  if norm := canon.NormalizeGrammarKey(payload.GrammarID); norm != "" {
    canonicalNorm = &norm
  }
  candidateKeys := buildGrammarLookupKeys(payload, canonicalNorm)

  existing, err := r.GetByGrammarID(ctx, transaction, payload.GrammarID)
  if err != nil {
    return nil, err
  }
  if existing != nil {
    if err := r.merge(ctx, transaction, existing, payload, canonicalNorm, candidateKeys); err != nil {
      return nil, err
    }
    return &GrammarUpsertResult{ContentID: existing.ContentID, CanonicalInput: existing.CanonicalInput, Merged: true}, nil
  }

  lookupKey := ""
  if canonicalNorm != nil {
    lookupKey = *canonicalNorm
  } else {
    lookupKey = canon.NormalizeLookupKey(payload.GrammarID)
  }
  if lookupKey != "" {
    byNorm, err := r.getByLookupKey(ctx, transaction, lookupKey)
    if err != nil {
      return nil, err
    }
    if byNorm != nil {
      if err := r.merge(ctx, transaction, byNorm, payload, canonicalNorm, candidateKeys); err != nil {
        return nil, err
      }
      return &GrammarUpsertResult{ContentID: byNorm.ContentID, CanonicalInput: byNorm.CanonicalInput, Merged: true}, nil
    }
  }

  contentID, canonicalInput := canon.ContentID(canon.GrammarKey(payload.GrammarID))
  row := &types.GrammarEntry{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    GrammarID:      payload.GrammarID,
    Category:       payload.Category,
    Title:          payload.Title,
    TitleAr:        payload.TitleAr,
    Definition:     payload.Definition,
    DefinitionAr:   payload.DefinitionAr,
    Meta:           payload.Meta,
    CanonicalNorm:  canonicalNorm,
    LookupKeys:     datatypes.NewJSONSlice(candidateKeys),
  }
  if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "content_id"}},
    DoNothing: true,
  }).Create(row).Error; err != nil {
    return nil, err
  }
  if err := r.addLookupKeys(ctx, transaction, contentID, candidateKeys); err != nil {
    return nil, err
  }
  return &GrammarUpsertResult{ContentID: contentID, CanonicalInput: canonicalInput, Merged: false}, nil
}

func (r *grammarRepo) GetByGrammarID(ctx context.Context, tx *gorm.DB, grammarID string) (*types.GrammarEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var row types.GrammarEntry
  err := transaction.WithContext(ctx).Where("grammar_id = ?", grammarID).First(&row).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &row, nil
}

func (r *grammarRepo) GetByContentID(ctx context.Context, tx *gorm.DB, contentID string) (*types.GrammarEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var row types.GrammarEntry
  err := transaction.WithContext(ctx).Where("content_id = ?", contentID).First(&row).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &row, nil
}

func (r *grammarRepo) getByLookupKey(ctx context.Context, tx *gorm.DB, lookupKey string) (*types.GrammarEntry, error) {
  sub := tx.Model(&types.GrammarLookupKey{}).Select("content_id").Where("lookup_key = ?", lookupKey)

  var row types.GrammarEntry
  err := tx.WithContext(ctx).
    Where("canonical_norm = ?", lookupKey).
    Or("content_id IN (?)", sub).
    First(&row).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &row, nil
}

func (r *grammarRepo) merge(ctx context.Context, tx *gorm.DB, existing *types.GrammarEntry, payload GrammarPayload, canonicalNorm *string, candidateKeys []string) error {
  updates := map[string]interface{}{}
  if existing.Category == nil && payload.Category != nil {
    updates["category"] = payload.Category
  }
  if existing.Title == nil && payload.Title != nil {
    updates["title"] = payload.Title
  }
  if existing.TitleAr == nil && payload.TitleAr != nil {
    updates["title_ar"] = payload.TitleAr
  }
  if existing.Definition == nil && payload.Definition != nil {
    updates["definition"] = payload.Definition
  }
  if existing.DefinitionAr == nil && payload.DefinitionAr != nil {
    updates["definition_ar"] = payload.DefinitionAr
  }
  if len(existing.Meta) == 0 && len(payload.Meta) > 0 {
    updates["meta"] = payload.Meta
  }
  if existing.CanonicalNorm == nil && canonicalNorm != nil {
    updates["canonical_norm"] = canonicalNorm
  }

  merged := mergeLookupKeys(existing.LookupKeys, candidateKeys)
  if len(merged) != len(existing.LookupKeys) {
    updates["lookup_keys"] = datatypes.NewJSONSlice(merged)
  }

  if len(updates) > 0 {
    updates["updated_at"] = time.Now().UTC()
    if err := tx.WithContext(ctx).Model(&types.GrammarEntry{}).
      Where("content_id = ?", existing.ContentID).
      Updates(updates).Error; err != nil {
      return err
    }
  }
  return r.addLookupKeys(ctx, tx, existing.ContentID, candidateKeys)
}

func (r *grammarRepo) addLookupKeys(ctx context.Context, tx *gorm.DB, contentID string, keys []string) error {
  if len(keys) == 0 {
    return nil
  }
  rows := make([]*types.GrammarLookupKey, 0, len(keys))
  for _, key := range keys {
    rows = append(rows, &types.GrammarLookupKey{LookupKey: key, ContentID: contentID})
  }
  return tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func buildGrammarLookupKeys(payload GrammarPayload, canonicalNorm *string) []string {
  seen := map[string]bool{}
  keys := []string{}
  add := func(key string) {
    if key == "" || seen[key] {
      return
    }
    seen[key] = true
    keys = append(keys, key)
  }
  if canonicalNorm != nil {
    add(*canonicalNorm)
  }
  add(canon.NormalizeLookupKey(payload.GrammarID))
  if payload.Title != nil {
    add(canon.NormalizeLookupKey(*payload.Title))
  }
  if payload.TitleAr != nil {
    add(canon.NormalizeLookupKey(*payload.TitleAr))
  }
  return keys
}

// mergeLookupKeys unions existing and candidate keys, preserving existing
// order. The result never shrinks.
func mergeLookupKeys(existing []string, candidates []string) []string {
  seen := map[string]bool{}
  merged := make([]string, 0, len(existing)+len(candidates))
  for _, key := range existing {
    if key == "" || seen[key] {
      continue
    }
    seen[key] = true
    merged = append(merged, key)
  }
  for _, key := range candidates {
    if key == "" || seen[key] {
      continue
    }
    seen[key] = true
    merged = append(merged, key)
  }
  return merged
}
