package services

import (
  "context"
  "errors"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/canon"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// IngestService accepts canonical entities from extraction tooling. Every
// write is an idempotent upsert keyed by content id, so re-running an
// extraction never duplicates rows.

type IngestResult struct {
  ContentID      string `json:"content_id"`
  CanonicalInput string `json:"canonical_input"`
  Merged         bool   `json:"merged,omitempty"`
}

type RootPayload struct {
  Root              string         `json:"root"`
  RootLatn          *string        `json:"root_latn"`
  RootNorm          string         `json:"root_norm"`
  ArabicTrilateral  *string        `json:"arabic_trilateral"`
  EnglishTrilateral *string        `json:"english_trilateral"`
  AltLatn           datatypes.JSON `json:"alt_latn"`
  SearchKeys        *string        `json:"search_keys"`
  Difficulty        *int           `json:"difficulty"`
  Frequency         *string        `json:"frequency"`
  ExtractedAt       *string        `json:"extracted_at"`
  Meta              datatypes.JSON `json:"meta"`
}

type TokenPayload struct {
  LemmaAr   string         `json:"lemma_ar"`
  LemmaNorm string         `json:"lemma_norm"`
  Pos       string         `json:"pos"`
  RootNorm  *string        `json:"root_norm"`
  RootID    *string        `json:"root_id"`
  Features  datatypes.JSON `json:"features"`
  Meta      datatypes.JSON `json:"meta"`
}

type SpanPayload struct {
  SpanType string         `json:"span_type"`
  TokenIDs []string       `json:"token_ids"`
  Meta     datatypes.JSON `json:"meta"`
}

type SentencePayload struct {
  SentenceKind string         `json:"sentence_kind"`
  Sequence     []string       `json:"sequence"`
  TextAr       *string        `json:"text_ar"`
  Meta         datatypes.JSON `json:"meta"`
}

type ValencyPayload struct {
  VerbLemmaAr   string         `json:"verb_lemma_ar"`
  VerbLemmaNorm string         `json:"verb_lemma_norm"`
  PrepTokenID   string         `json:"prep_token_id"`
  FrameType     string         `json:"frame_type"`
  Meta          datatypes.JSON `json:"meta"`
}

type LexiconPayload struct {
  UnitType       string         `json:"unit_type"`
  SurfaceAr      string         `json:"surface_ar"`
  SurfaceNorm    string         `json:"surface_norm"`
  LemmaAr        string         `json:"lemma_ar"`
  LemmaNorm      string         `json:"lemma_norm"`
  Pos            string         `json:"pos"`
  RootNorm       *string        `json:"root_norm"`
  RootID         *string        `json:"root_id"`
  ValencyID      *string        `json:"valency_id"`
  SenseKey       string         `json:"sense_key"`
  Meanings       datatypes.JSON `json:"meanings"`
  Synonyms       datatypes.JSON `json:"synonyms"`
  Antonyms       datatypes.JSON `json:"antonyms"`
  GlossPrimary   *string        `json:"gloss_primary"`
  GlossSecondary datatypes.JSON `json:"gloss_secondary"`
  UsageNotes     *string        `json:"usage_notes"`
  MorphPattern   *string        `json:"morph_pattern"`
  MorphFeatures  datatypes.JSON `json:"morph_features"`
  References     datatypes.JSON `json:"references"`
  Flags          datatypes.JSON `json:"flags"`
  Cards          datatypes.JSON `json:"cards"`
  Meta           datatypes.JSON `json:"meta"`
}

type SynsetPayload struct {
  SynsetKey string         `json:"synset_key"`
  Meta      datatypes.JSON `json:"meta"`
}

type SynsetMemberPayload struct {
  SynsetID string         `json:"synset_id"`
  TokenID  string         `json:"token_id"`
  Meta     datatypes.JSON `json:"meta"`
}

type IngestService interface {
  UpsertRoot(ctx context.Context, payload RootPayload) (*IngestResult, error)
  UpsertToken(ctx context.Context, payload TokenPayload) (*IngestResult, error)
  UpsertSpan(ctx context.Context, payload SpanPayload) (*IngestResult, error)
  UpsertSentence(ctx context.Context, payload SentencePayload) (*IngestResult, error)
  UpsertValency(ctx context.Context, payload ValencyPayload) (*IngestResult, error)
  UpsertLexiconEntry(ctx context.Context, payload LexiconPayload) (*IngestResult, error)
  UpsertGrammar(ctx context.Context, payload repos.GrammarPayload) (*IngestResult, error)
  UpsertSynset(ctx context.Context, payload SynsetPayload) (*IngestResult, error)
  UpsertSynsetMember(ctx context.Context, payload SynsetMemberPayload) (*IngestResult, error)
}

type ingestService struct {
  db      *gorm.DB
  log     *logger.Logger
  canon   repos.CanonRepo
  grammar repos.GrammarRepo
}

func NewIngestService(db *gorm.DB, baseLog *logger.Logger, canonRepo repos.CanonRepo, grammar repos.GrammarRepo) IngestService {
  return &ingestService{
    db:      db,
    log:     baseLog.With("service", "IngestService"),
    canon:   canonRepo,
    grammar: grammar,
  }
}

func (s *ingestService) UpsertRoot(ctx context.Context, payload RootPayload) (*IngestResult, error) {
  if payload.Root == "" || payload.RootNorm == "" {
    return nil, apierr.Validation(errors.New("root and root_norm are required"))
  }
  contentID, canonicalInput := canon.ContentID(canon.RootKey(payload.RootNorm))
  row := &types.Root{
    ContentID:         contentID,
    CanonicalInput:    canonicalInput,
    Root:              payload.Root,
    RootLatn:          payload.RootLatn,
    RootNorm:          payload.RootNorm,
    ArabicTrilateral:  payload.ArabicTrilateral,
    EnglishTrilateral: payload.EnglishTrilateral,
    AltLatn:           payload.AltLatn,
    SearchKeys:        payload.SearchKeys,
    Status:            "active",
    Difficulty:        payload.Difficulty,
    Frequency:         payload.Frequency,
    ExtractedAt:       payload.ExtractedAt,
    Meta:              payload.Meta,
  }
  if err := s.canon.UpsertRoot(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertToken(ctx context.Context, payload TokenPayload) (*IngestResult, error) {
  if payload.LemmaAr == "" || payload.LemmaNorm == "" || payload.Pos == "" {
    return nil, apierr.Validation(errors.New("lemma_ar, lemma_norm and pos are required"))
  }
  rootNorm := ""
  if payload.RootNorm != nil {
    rootNorm = *payload.RootNorm
  }
  contentID, canonicalInput := canon.ContentID(canon.TokenKey(payload.LemmaNorm, payload.Pos, rootNorm))
  row := &types.Token{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    LemmaAr:        payload.LemmaAr,
    LemmaNorm:      payload.LemmaNorm,
    Pos:            payload.Pos,
    RootNorm:       payload.RootNorm,
    RootID:         payload.RootID,
    Features:       payload.Features,
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertToken(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertSpan(ctx context.Context, payload SpanPayload) (*IngestResult, error) {
  if payload.SpanType == "" || len(payload.TokenIDs) == 0 {
    return nil, apierr.Validation(errors.New("span_type and token_ids are required"))
  }
  contentID, canonicalInput := canon.ContentID(canon.SpanKey(payload.SpanType, payload.TokenIDs))
  row := &types.Span{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    SpanType:       payload.SpanType,
    TokenIDs:       datatypes.NewJSONSlice(payload.TokenIDs),
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertSpan(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertSentence(ctx context.Context, payload SentencePayload) (*IngestResult, error) {
  if len(payload.Sequence) == 0 {
    return nil, apierr.Validation(errors.New("sequence is required"))
  }
  kind := payload.SentenceKind
  if kind == "" {
    kind = "default"
  }
  contentID, canonicalInput := canon.ContentID(canon.SentenceKey(kind, payload.Sequence))
  row := &types.Sentence{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    SentenceKind:   kind,
    Sequence:       datatypes.NewJSONSlice(payload.Sequence),
    TextAr:         payload.TextAr,
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertSentence(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertValency(ctx context.Context, payload ValencyPayload) (*IngestResult, error) {
  if payload.VerbLemmaAr == "" || payload.VerbLemmaNorm == "" || payload.FrameType == "" {
    return nil, apierr.Validation(errors.New("verb_lemma_ar, verb_lemma_norm and frame_type are required"))
  }
  contentID, canonicalInput := canon.ContentID(canon.ValencyKey(payload.VerbLemmaNorm, payload.PrepTokenID, payload.FrameType))
  row := &types.Valency{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    VerbLemmaAr:    payload.VerbLemmaAr,
    VerbLemmaNorm:  payload.VerbLemmaNorm,
    PrepTokenID:    payload.PrepTokenID,
    FrameType:      payload.FrameType,
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertValency(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertLexiconEntry(ctx context.Context, payload LexiconPayload) (*IngestResult, error) {
  if payload.SurfaceAr == "" || payload.LemmaAr == "" || payload.LemmaNorm == "" || payload.Pos == "" {
    return nil, apierr.Validation(errors.New("surface_ar, lemma_ar, lemma_norm and pos are required"))
  }
  rootNorm := ""
  if payload.RootNorm != nil {
    rootNorm = *payload.RootNorm
  }
  valencyID := ""
  if payload.ValencyID != nil {
    valencyID = *payload.ValencyID
  }
  contentID, canonicalInput := canon.ContentID(
    canon.LexiconKey(payload.LemmaNorm, payload.Pos, rootNorm, valencyID, payload.SenseKey))

  unitType := payload.UnitType
  if unitType == "" {
    unitType = "word"
  }
  surfaceNorm := payload.SurfaceNorm
  if surfaceNorm == "" {
    surfaceNorm = canon.NormalizeText(payload.SurfaceAr)
  }
  row := &types.LexiconEntry{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    UnitType:       unitType,
    SurfaceAr:      payload.SurfaceAr,
    SurfaceNorm:    surfaceNorm,
    LemmaAr:        payload.LemmaAr,
    LemmaNorm:      payload.LemmaNorm,
    Pos:            payload.Pos,
    RootNorm:       payload.RootNorm,
    RootID:         payload.RootID,
    ValencyID:      payload.ValencyID,
    SenseKey:       payload.SenseKey,
    Meanings:       payload.Meanings,
    Synonyms:       payload.Synonyms,
    Antonyms:       payload.Antonyms,
    GlossPrimary:   payload.GlossPrimary,
    GlossSecondary: payload.GlossSecondary,
    UsageNotes:     payload.UsageNotes,
    MorphPattern:   payload.MorphPattern,
    MorphFeatures:  payload.MorphFeatures,
    References:     payload.References,
    Flags:          payload.Flags,
    Cards:          payload.Cards,
    Status:         "active",
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertLexiconEntry(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertGrammar(ctx context.Context, payload repos.GrammarPayload) (*IngestResult, error) {
  if payload.GrammarID == "" {
    return nil, apierr.Validation(errors.New("grammar_id is required"))
  }
  result, err := s.grammar.Upsert(ctx, nil, payload)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: result.ContentID, CanonicalInput: result.CanonicalInput, Merged: result.Merged}, nil
}

func (s *ingestService) UpsertSynset(ctx context.Context, payload SynsetPayload) (*IngestResult, error) {
  if payload.SynsetKey == "" {
    return nil, apierr.Validation(errors.New("synset_key is required"))
  }
  contentID, canonicalInput := canon.ContentID(canon.SynsetKey(payload.SynsetKey))
  row := &types.Synset{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    SynsetKey:      payload.SynsetKey,
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertSynset(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}

func (s *ingestService) UpsertSynsetMember(ctx context.Context, payload SynsetMemberPayload) (*IngestResult, error) {
  if payload.SynsetID == "" || payload.TokenID == "" {
    return nil, apierr.Validation(errors.New("synset_id and token_id are required"))
  }
  contentID, canonicalInput := canon.ContentID(canon.SynsetMemberKey(payload.SynsetID, payload.TokenID))
  row := &types.SynsetMember{
    ContentID:      contentID,
    CanonicalInput: canonicalInput,
    SynsetID:       payload.SynsetID,
    TokenID:        payload.TokenID,
    Meta:           payload.Meta,
  }
  if err := s.canon.UpsertSynsetMember(ctx, nil, row); err != nil {
    return nil, apierr.Execution(err)
  }
  return &IngestResult{ContentID: contentID, CanonicalInput: canonicalInput}, nil
}
