package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DraftStatusDraft     = "draft"
	DraftStatusPublished = "published"
)

// LessonDraft is the versioned mutable authoring document. lesson_id is
// filled on the first successful meta commit; draft_version bumps on every
// accepted document edit (enforced by UpdateDocument, not by commits).
type LessonDraft struct {
	DraftID      uuid.UUID      `gorm:"type:uuid;primaryKey;column:draft_id" json:"draft_id"`
	LessonID     *uuid.UUID     `gorm:"type:uuid;column:lesson_id;index" json:"lesson_id,omitempty"`
	UserID       uuid.UUID      `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	LessonType   string         `gorm:"column:lesson_type;not null" json:"lesson_type"`
	Status       string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	ActiveStep   *string        `gorm:"column:active_step" json:"active_step,omitempty"`
	DraftVersion int            `gorm:"column:draft_version;not null;default:1" json:"draft_version"`
	Document     datatypes.JSON `gorm:"column:document;not null" json:"document"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (LessonDraft) TableName() string { return "lesson_draft" }
