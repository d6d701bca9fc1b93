package types

import (
	"time"

	"gorm.io/datatypes"
)

// GrammarEntry is the one canonical entity with stateful identity: the same
// concept re-ingested under a different spelling must attach to the existing
// row via canonical_norm or the alias set instead of duplicating.
type GrammarEntry struct {
	ContentID      string                     `gorm:"column:content_id;primaryKey" json:"content_id"`
	CanonicalInput string                     `gorm:"column:canonical_input;not null" json:"canonical_input"`
	GrammarID      string                     `gorm:"column:grammar_id;uniqueIndex;not null" json:"grammar_id"`
	Category       *string                    `gorm:"column:category" json:"category,omitempty"`
	Title          *string                    `gorm:"column:title" json:"title,omitempty"`
	TitleAr        *string                    `gorm:"column:title_ar" json:"title_ar,omitempty"`
	Definition     *string                    `gorm:"column:definition" json:"definition,omitempty"`
	DefinitionAr   *string                    `gorm:"column:definition_ar" json:"definition_ar,omitempty"`
	Meta           datatypes.JSON             `gorm:"column:meta" json:"meta,omitempty"`
	CanonicalNorm  *string                    `gorm:"column:canonical_norm;index" json:"canonical_norm,omitempty"`
	LookupKeys     datatypes.JSONSlice[string] `gorm:"column:lookup_keys" json:"lookup_keys"`
	CreatedAt      time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                  `gorm:"not null" json:"updated_at"`
}

func (GrammarEntry) TableName() string { return "ar_u_grammar" }

// GrammarLookupKey is the indexed encoding of the alias set. Rows are only
// ever added (ON CONFLICT DO NOTHING), so the set is monotonic.
type GrammarLookupKey struct {
	LookupKey string    `gorm:"column:lookup_key;primaryKey" json:"lookup_key"`
	ContentID string    `gorm:"column:content_id;not null;index" json:"content_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (GrammarLookupKey) TableName() string { return "grammar_lookup_key" }
