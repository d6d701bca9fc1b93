package types

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Typed contract for the draft document. This is the one permissive parse
// boundary; per-step validation happens in the commit orchestrator. Keys are
// snake_case only — the authoring UI honors this contract.

type DraftDocument struct {
	SchemaVersion int                `json:"schema_version"`
	Meta          DraftMeta          `json:"meta"`
	Reference     DraftReference     `json:"reference"`
	Units         []DraftUnit        `json:"units"`
	Sentences     []DraftSentence    `json:"sentences"`
	Comprehension DraftComprehension `json:"comprehension"`
	Notes         []DraftNote        `json:"notes"`
}

type DraftMeta struct {
	Title      string  `json:"title"`
	TitleAr    *string `json:"title_ar"`
	LessonType string  `json:"lesson_type"`
	Subtype    *string `json:"subtype"`
	Difficulty *int    `json:"difficulty"`
	Source     *string `json:"source"`
}

type DraftReference struct {
	ContainerID *string `json:"container_id"`
	UnitID      *string `json:"unit_id"`
	Surah       *int    `json:"surah"`
	AyahFrom    *int    `json:"ayah_from"`
	AyahTo      *int    `json:"ayah_to"`
}

type DraftUnit struct {
	UnitID     string  `json:"unit_id"`
	OrderIndex *int    `json:"order_index"`
	Role       *string `json:"role"`
	Note       *string `json:"note"`
}

type DraftSentence struct {
	UnitID        string   `json:"unit_id"`
	TextAr        string   `json:"text_ar"`
	Translation   *string  `json:"translation"`
	Notes         *string  `json:"notes"`
	SentenceKind  string   `json:"sentence_kind"`
	Sequence      []string `json:"sequence"`
	SentenceOrder *int     `json:"sentence_order"`
}

type DraftComprehension struct {
	MCQs       []DraftMCQ       `json:"mcqs"`
	Reflective []map[string]any `json:"reflective"`
	Analytical []map[string]any `json:"analytical"`
}

func (c DraftComprehension) ItemCount() int {
	return len(c.MCQs) + len(c.Reflective) + len(c.Analytical)
}

type DraftMCQ struct {
	Question        string      `json:"question"`
	Options         []MCQOption `json:"options"`
	CorrectOptionID string      `json:"correct_option_id"`
	Explanation     *string     `json:"explanation,omitempty"`
}

type MCQOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type DraftNote struct {
	ID         *string          `json:"id"`
	NoteType   *string          `json:"note_type"`
	Title      *string          `json:"title"`
	Excerpt    string           `json:"excerpt"`
	Commentary *string          `json:"commentary"`
	Locator    *string          `json:"locator"`
	SourceID   *int             `json:"source_id"`
	Target     *DraftNoteTarget `json:"target"`
	Extra      map[string]any   `json:"extra,omitempty"`
}

type DraftNoteTarget struct {
	Type          string  `json:"type"`
	TargetID      *string `json:"target_id"`
	Relation      *string `json:"relation"`
	ContainerID   *string `json:"container_id"`
	UnitID        *string `json:"unit_id"`
	SentenceOrder *int    `json:"sentence_order"`
	Ref           *string `json:"ref"`
}

// ParseDraftDocument decodes the stored document. Absent sections come back
// zero-valued; unknown keys are ignored.
func ParseDraftDocument(raw datatypes.JSON) (*DraftDocument, error) {
	doc := &DraftDocument{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("parse draft document: %w", err)
	}
	return doc, nil
}

func (d *DraftDocument) Marshal() (datatypes.JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal draft document: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// BuildInitialDraft seeds meta/reference from an optional starting reference
// and leaves every section empty.
func BuildInitialDraft(lessonType string, subtype, source *string, reference *DraftReference) *DraftDocument {
	doc := &DraftDocument{
		SchemaVersion: 1,
		Meta: DraftMeta{
			LessonType: lessonType,
			Subtype:    subtype,
			Source:     source,
		},
		Units:     []DraftUnit{},
		Sentences: []DraftSentence{},
		Comprehension: DraftComprehension{
			MCQs:       []DraftMCQ{},
			Reflective: []map[string]any{},
			Analytical: []map[string]any{},
		},
		Notes: []DraftNote{},
	}
	if reference != nil {
		doc.Reference = *reference
	}
	return doc
}

// LessonSnapshot is the denormalized read shape embedded on the lesson row.
type LessonSnapshot struct {
	SchemaVersion int                 `json:"schema_version"`
	Meta          DraftMeta           `json:"meta"`
	Reference     DraftReference      `json:"reference"`
	Units         []DraftUnit         `json:"units,omitempty"`
	Sentences     []DraftSentence     `json:"sentences,omitempty"`
	Comprehension *DraftComprehension `json:"comprehension,omitempty"`
	Notes         []DraftNote         `json:"notes,omitempty"`
	PublishedAt   *time.Time          `json:"published_at,omitempty"`
}
