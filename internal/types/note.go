package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Note identity is the SHA-256 of a stable per-note seed, so repeated
// commits reconcile onto the same row.
type Note struct {
	NoteKey    string         `gorm:"column:note_key;primaryKey" json:"note_key"`
	UserID     uuid.UUID      `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	NoteType   string         `gorm:"column:note_type;not null" json:"note_type"`
	Title      *string        `gorm:"column:title" json:"title,omitempty"`
	Excerpt    string         `gorm:"column:excerpt;not null" json:"excerpt"`
	Commentary *string        `gorm:"column:commentary" json:"commentary,omitempty"`
	SourceID   *int           `gorm:"column:source_id" json:"source_id,omitempty"`
	Locator    *string        `gorm:"column:locator" json:"locator,omitempty"`
	Extra      datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Note) TableName() string { return "note" }

type NoteTarget struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NoteKey     string    `gorm:"column:note_key;not null;uniqueIndex:idx_note_target,priority:1" json:"note_key"`
	TargetType  string    `gorm:"column:target_type;not null;uniqueIndex:idx_note_target,priority:2" json:"target_type"`
	TargetID    string    `gorm:"column:target_id;not null;uniqueIndex:idx_note_target,priority:3" json:"target_id"`
	Relation    string    `gorm:"column:relation;not null;default:'about'" json:"relation"`
	ShareScope  string    `gorm:"column:share_scope;not null;default:'private'" json:"share_scope"`
	EdgeNote    *string   `gorm:"column:edge_note" json:"edge_note,omitempty"`
	ContainerID *string   `gorm:"column:container_id" json:"container_id,omitempty"`
	UnitID      *string   `gorm:"column:unit_id" json:"unit_id,omitempty"`
	Ref         *string   `gorm:"column:ref" json:"ref,omitempty"`
	LessonID    uuid.UUID `gorm:"type:uuid;column:lesson_id;not null;index" json:"lesson_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (NoteTarget) TableName() string { return "note_target" }
