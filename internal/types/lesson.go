package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LessonStatusDraft     = "draft"
	LessonStatusPublished = "published"
)

const (
	LinkScopeContainer = "container"
	LinkScopeUnit      = "unit"
)

// Lesson is the published aggregate. snapshot holds the denormalized
// document for fast reads; it is refreshed at each relevant commit and fully
// rebuilt at publish.
type Lesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	ContainerID *string        `gorm:"column:container_id;index" json:"container_id,omitempty"`
	UnitID      *string        `gorm:"column:unit_id" json:"unit_id,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	TitleAr     *string        `gorm:"column:title_ar" json:"title_ar,omitempty"`
	LessonType  string         `gorm:"column:lesson_type;not null" json:"lesson_type"`
	Subtype     *string        `gorm:"column:subtype" json:"subtype,omitempty"`
	Source      *string        `gorm:"column:source" json:"source,omitempty"`
	Status      string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	Difficulty  *int           `gorm:"column:difficulty" json:"difficulty,omitempty"`
	Snapshot    datatypes.JSON `gorm:"column:snapshot" json:"snapshot,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

// LessonUnitLink rows are replaced wholesale on each units commit: one
// container-scope link plus one link per unit.
type LessonUnitLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID    uuid.UUID `gorm:"type:uuid;column:lesson_id;not null;index" json:"lesson_id"`
	ContainerID string    `gorm:"column:container_id;not null" json:"container_id"`
	UnitID      string    `gorm:"column:unit_id;not null" json:"unit_id"`
	OrderIndex  int       `gorm:"column:order_index;not null" json:"order_index"`
	LinkScope   string    `gorm:"column:link_scope;not null" json:"link_scope"`
	Role        *string   `gorm:"column:role" json:"role,omitempty"`
	Note        *string   `gorm:"column:note" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (LessonUnitLink) TableName() string { return "lesson_unit_link" }

type LessonSentenceLink struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID      uuid.UUID `gorm:"type:uuid;column:lesson_id;not null;index" json:"lesson_id"`
	OccurrenceID  string    `gorm:"column:occurrence_id;not null;index" json:"occurrence_id"`
	UnitID        string    `gorm:"column:unit_id;not null" json:"unit_id"`
	SentenceOrder int       `gorm:"column:sentence_order;not null" json:"sentence_order"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (LessonSentenceLink) TableName() string { return "lesson_sentence_link" }
