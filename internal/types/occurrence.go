package types

import (
	"time"

	"github.com/google/uuid"
)

// SentenceOccurrence is one positional instance of a canonical sentence
// within a (container, unit, order) context. Many occurrences may reference
// one canonical sentence; editing the text re-keys the occurrence id while
// the context stays fixed.
type SentenceOccurrence struct {
	OccurrenceID  string    `gorm:"column:occurrence_id;primaryKey" json:"occurrence_id"`
	UserID        uuid.UUID `gorm:"type:uuid;column:user_id;not null" json:"user_id"`
	ContainerID   string    `gorm:"column:container_id;not null;uniqueIndex:idx_sentence_occ_ctx,priority:1" json:"container_id"`
	UnitID        string    `gorm:"column:unit_id;not null;uniqueIndex:idx_sentence_occ_ctx,priority:2" json:"unit_id"`
	SentenceOrder int       `gorm:"column:sentence_order;not null;uniqueIndex:idx_sentence_occ_ctx,priority:3" json:"sentence_order"`
	TextAr        string    `gorm:"column:text_ar;not null" json:"text_ar"`
	Translation   *string   `gorm:"column:translation" json:"translation,omitempty"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	SentenceID    string    `gorm:"column:sentence_id;not null;index" json:"sentence_id"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (SentenceOccurrence) TableName() string { return "sentence_occurrence" }
