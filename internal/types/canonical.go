package types

import (
	"time"

	"gorm.io/datatypes"
)

// Content-addressed entities. content_id is the SHA-256 of the canonicalized
// key template and is never recomputed or overwritten once assigned;
// canonical_input is the exact string that was hashed.

type Root struct {
	ContentID         string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput    string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	Root              string         `gorm:"column:root;not null" json:"root"`
	RootLatn          *string        `gorm:"column:root_latn" json:"root_latn,omitempty"`
	RootNorm          string         `gorm:"column:root_norm;not null;index" json:"root_norm"`
	ArabicTrilateral  *string        `gorm:"column:arabic_trilateral" json:"arabic_trilateral,omitempty"`
	EnglishTrilateral *string        `gorm:"column:english_trilateral" json:"english_trilateral,omitempty"`
	AltLatn           datatypes.JSON `gorm:"column:alt_latn" json:"alt_latn,omitempty"`
	SearchKeys        *string        `gorm:"column:search_keys" json:"search_keys,omitempty"`
	Status            string         `gorm:"column:status;not null;default:'active'" json:"status"`
	Difficulty        *int           `gorm:"column:difficulty" json:"difficulty,omitempty"`
	Frequency         *string        `gorm:"column:frequency" json:"frequency,omitempty"`
	ExtractedAt       *string        `gorm:"column:extracted_at" json:"extracted_at,omitempty"`
	Meta              datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
}

func (Root) TableName() string { return "ar_u_root" }

type Token struct {
	ContentID      string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	LemmaAr        string         `gorm:"column:lemma_ar;not null" json:"lemma_ar"`
	LemmaNorm      string         `gorm:"column:lemma_norm;not null;index" json:"lemma_norm"`
	Pos            string         `gorm:"column:pos;not null" json:"pos"`
	RootNorm       *string        `gorm:"column:root_norm" json:"root_norm,omitempty"`
	RootID         *string        `gorm:"column:root_id;index" json:"root_id,omitempty"`
	Features       datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Meta           datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Token) TableName() string { return "ar_u_token" }

type Span struct {
	ContentID      string                     `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string                     `gorm:"column:canonical_input;not null" json:"canonical_input"`
	SpanType       string                     `gorm:"column:span_type;not null" json:"span_type"`
	TokenIDs       datatypes.JSONSlice[string] `gorm:"column:token_ids" json:"token_ids"`
	Meta           datatypes.JSON             `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                  `gorm:"not null" json:"updated_at"`
}

func (Span) TableName() string { return "ar_u_span" }

type Sentence struct {
	ContentID      string                     `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string                     `gorm:"column:canonical_input;not null" json:"canonical_input"`
	SentenceKind   string                     `gorm:"column:sentence_kind;not null" json:"sentence_kind"`
	Sequence       datatypes.JSONSlice[string] `gorm:"column:sequence" json:"sequence"`
	TextAr         *string                    `gorm:"column:text_ar" json:"text_ar,omitempty"`
	Meta           datatypes.JSON             `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                  `gorm:"not null" json:"updated_at"`
}

func (Sentence) TableName() string { return "ar_u_sentence" }

type Valency struct {
	ContentID      string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	VerbLemmaAr    string         `gorm:"column:verb_lemma_ar;not null" json:"verb_lemma_ar"`
	VerbLemmaNorm  string         `gorm:"column:verb_lemma_norm;not null;index" json:"verb_lemma_norm"`
	PrepTokenID    string         `gorm:"column:prep_token_id;not null" json:"prep_token_id"`
	FrameType      string         `gorm:"column:frame_type;not null" json:"frame_type"`
	Meta           datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Valency) TableName() string { return "ar_u_valency" }

type LexiconEntry struct {
	ContentID           string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput      string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	UnitType            string         `gorm:"column:unit_type;not null;default:'word'" json:"unit_type"`
	SurfaceAr           string         `gorm:"column:surface_ar;not null" json:"surface_ar"`
	SurfaceNorm         string         `gorm:"column:surface_norm;not null" json:"surface_norm"`
	LemmaAr             string         `gorm:"column:lemma_ar;not null" json:"lemma_ar"`
	LemmaNorm           string         `gorm:"column:lemma_norm;not null;index" json:"lemma_norm"`
	Pos                 string         `gorm:"column:pos;not null" json:"pos"`
	RootNorm            *string        `gorm:"column:root_norm" json:"root_norm,omitempty"`
	RootID              *string        `gorm:"column:root_id;index" json:"root_id,omitempty"`
	ValencyID           *string        `gorm:"column:valency_id" json:"valency_id,omitempty"`
	SenseKey            string         `gorm:"column:sense_key;not null" json:"sense_key"`
	Meanings            datatypes.JSON `gorm:"column:meanings" json:"meanings,omitempty"`
	Synonyms            datatypes.JSON `gorm:"column:synonyms" json:"synonyms,omitempty"`
	Antonyms            datatypes.JSON `gorm:"column:antonyms" json:"antonyms,omitempty"`
	GlossPrimary        *string        `gorm:"column:gloss_primary" json:"gloss_primary,omitempty"`
	GlossSecondary      datatypes.JSON `gorm:"column:gloss_secondary" json:"gloss_secondary,omitempty"`
	UsageNotes          *string        `gorm:"column:usage_notes" json:"usage_notes,omitempty"`
	MorphPattern        *string        `gorm:"column:morph_pattern" json:"morph_pattern,omitempty"`
	MorphFeatures       datatypes.JSON `gorm:"column:morph_features" json:"morph_features,omitempty"`
	MorphDerivations    datatypes.JSON `gorm:"column:morph_derivations" json:"morph_derivations,omitempty"`
	ExpressionType      *string        `gorm:"column:expression_type" json:"expression_type,omitempty"`
	ExpressionText      *string        `gorm:"column:expression_text" json:"expression_text,omitempty"`
	ExpressionTokenRange datatypes.JSON `gorm:"column:expression_token_range" json:"expression_token_range,omitempty"`
	ExpressionMeaning   *string        `gorm:"column:expression_meaning" json:"expression_meaning,omitempty"`
	References          datatypes.JSON `gorm:"column:refs" json:"references,omitempty"`
	Flags               datatypes.JSON `gorm:"column:flags" json:"flags,omitempty"`
	Cards               datatypes.JSON `gorm:"column:cards" json:"cards,omitempty"`
	Status              string         `gorm:"column:status;not null;default:'active'" json:"status"`
	Meta                datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
}

func (LexiconEntry) TableName() string { return "ar_u_lexicon" }

type Synset struct {
	ContentID      string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	SynsetKey      string         `gorm:"column:synset_key;not null;index" json:"synset_key"`
	Meta           datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Synset) TableName() string { return "ar_u_synset" }

type SynsetMember struct {
	ContentID      string         `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string         `gorm:"column:canonical_input;not null" json:"canonical_input"`
	SynsetID       string         `gorm:"column:synset_id;not null;index" json:"synset_id"`
	TokenID        string         `gorm:"column:token_id;not null;index" json:"token_id"`
	Meta           datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (SynsetMember) TableName() string { return "ar_u_synset_member" }
