package repos

import (
  "context"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// CanonRepo upserts content-addressed entities. Every write conflicts on
// content_id and updates the denormalized fields only; content_id and
// canonical_input are never rewritten.
type CanonRepo interface {
  UpsertRoot(ctx context.Context, tx *gorm.DB, row *types.Root) error
  UpsertToken(ctx context.Context, tx *gorm.DB, row *types.Token) error
  UpsertSpan(ctx context.Context, tx *gorm.DB, row *types.Span) error
  UpsertSentence(ctx context.Context, tx *gorm.DB, row *types.Sentence) error
  UpsertValency(ctx context.Context, tx *gorm.DB, row *types.Valency) error
  UpsertLexiconEntry(ctx context.Context, tx *gorm.DB, row *types.LexiconEntry) error
  UpsertSynset(ctx context.Context, tx *gorm.DB, row *types.Synset) error
  UpsertSynsetMember(ctx context.Context, tx *gorm.DB, row *types.SynsetMember) error
}

type canonRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCanonRepo(db *gorm.DB, baseLog *logger.Logger) CanonRepo {
  repoLog := baseLog.With("repo", "CanonRepo")
  return &canonRepo{db: db, log: repoLog}
}

func (r *canonRepo) upsert(ctx context.Context, tx *gorm.DB, row any, updateColumns []string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "content_id"}},
    DoUpdates: clause.AssignmentColumns(updateColumns),
  }).Create(row).Error
}

func (r *canonRepo) UpsertRoot(ctx context.Context, tx *gorm.DB, row *types.Root) error {
  return r.upsert(ctx, tx, row, []string{
    "root", "root_latn", "root_norm", "arabic_trilateral", "english_trilateral",
    "alt_latn", "search_keys", "status", "difficulty", "frequency",
    "extracted_at", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertToken(ctx context.Context, tx *gorm.DB, row *types.Token) error {
  return r.upsert(ctx, tx, row, []string{
    "lemma_ar", "lemma_norm", "pos", "root_norm", "root_id",
    "features", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertSpan(ctx context.Context, tx *gorm.DB, row *types.Span) error {
  return r.upsert(ctx, tx, row, []string{
    "span_type", "token_ids", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertSentence(ctx context.Context, tx *gorm.DB, row *types.Sentence) error {
  return r.upsert(ctx, tx, row, []string{
    "sentence_kind", "sequence", "text_ar", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertValency(ctx context.Context, tx *gorm.DB, row *types.Valency) error {
  return r.upsert(ctx, tx, row, []string{
    "verb_lemma_ar", "verb_lemma_norm", "prep_token_id", "frame_type",
    "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertLexiconEntry(ctx context.Context, tx *gorm.DB, row *types.LexiconEntry) error {
  return r.upsert(ctx, tx, row, []string{
    "unit_type", "surface_ar", "surface_norm", "lemma_ar", "lemma_norm", "pos",
    "root_norm", "root_id", "valency_id", "sense_key",
    "meanings", "synonyms", "antonyms",
    "gloss_primary", "gloss_secondary", "usage_notes",
    "morph_pattern", "morph_features", "morph_derivations",
    "expression_type", "expression_text", "expression_token_range", "expression_meaning",
    "refs", "flags", "cards", "status", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertSynset(ctx context.Context, tx *gorm.DB, row *types.Synset) error {
  return r.upsert(ctx, tx, row, []string{
    "synset_key", "meta", "updated_at",
  })
}

func (r *canonRepo) UpsertSynsetMember(ctx context.Context, tx *gorm.DB, row *types.SynsetMember) error {
  return r.upsert(ctx, tx, row, []string{
    "synset_id", "token_id", "meta", "updated_at",
  })
}
