package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LessonCommit is the idempotency/audit receipt for one commit attempt.
// The (draft_id, step, draft_version) triple is unique; once a receipt
// exists without an error the triple is terminal and is only re-reported.
type LessonCommit struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DraftID      uuid.UUID      `gorm:"type:uuid;column:draft_id;not null;uniqueIndex:idx_lesson_commit,priority:1" json:"draft_id"`
	Step         string         `gorm:"column:step;not null;uniqueIndex:idx_lesson_commit,priority:2" json:"step"`
	DraftVersion int            `gorm:"column:draft_version;not null;uniqueIndex:idx_lesson_commit,priority:3" json:"draft_version"`
	LessonID     *uuid.UUID     `gorm:"type:uuid;column:lesson_id;index" json:"lesson_id,omitempty"`
	UserID       uuid.UUID      `gorm:"type:uuid;column:user_id;not null" json:"user_id"`
	Result       datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	Error        *string        `gorm:"column:error" json:"error,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (LessonCommit) TableName() string { return "lesson_commit" }
