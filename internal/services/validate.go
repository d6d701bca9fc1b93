package services

import (
  "errors"
  "fmt"
  "strconv"
  "strings"
  "github.com/yungbote/linguabridge-backend/internal/canon"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// Normalized step inputs. The draft document is permissive; these forms are
// what the commit planner actually writes from. Entries missing required
// identity fields are dropped, not rejected.

type normalizedMeta struct {
  title       string
  titleAr     *string
  lessonType  string
  subtype     *string
  source      *string
  difficulty  *int
  containerID *string
  unitID      *string
}

type normalizedUnit struct {
  unitID     string
  orderIndex int
  role       *string
  note       *string
}

type normalizedSentence struct {
  unitID        string
  sentenceOrder int
  textAr        string
  translation   *string
  notes         *string
  sentenceKind  string
  sequence      []string
}

type normalizedNote struct {
  noteUID       string
  noteType      string
  title         *string
  excerpt       string
  commentary    *string
  locator       *string
  sourceID      *int
  targetType    string
  targetID      string
  relation      string
  containerID   *string
  unitID        *string
  sentenceOrder *int
  ref           *string
  extra         map[string]any
}

func normalizeMeta(doc *types.DraftDocument, fallbackLessonType string) normalizedMeta {
  lessonType := strings.TrimSpace(doc.Meta.LessonType)
  if lessonType == "" {
    lessonType = fallbackLessonType
  }
  return normalizedMeta{
    title:       strings.TrimSpace(doc.Meta.Title),
    titleAr:     doc.Meta.TitleAr,
    lessonType:  lessonType,
    subtype:     doc.Meta.Subtype,
    source:      doc.Meta.Source,
    difficulty:  doc.Meta.Difficulty,
    containerID: doc.Reference.ContainerID,
    unitID:      doc.Reference.UnitID,
  }
}

func normalizeUnits(doc *types.DraftDocument) []normalizedUnit {
  units := make([]normalizedUnit, 0, len(doc.Units))
  for i, u := range doc.Units {
    unitID := strings.TrimSpace(u.UnitID)
    if unitID == "" {
      continue
    }
    orderIndex := i
    if u.OrderIndex != nil {
      orderIndex = *u.OrderIndex
    }
    units = append(units, normalizedUnit{
      unitID:     unitID,
      orderIndex: orderIndex,
      role:       u.Role,
      note:       u.Note,
    })
  }
  return units
}

func normalizeSentences(doc *types.DraftDocument) []normalizedSentence {
  sentences := make([]normalizedSentence, 0, len(doc.Sentences))
  for i, s := range doc.Sentences {
    unitID := strings.TrimSpace(s.UnitID)
    textAr := strings.TrimSpace(s.TextAr)
    if unitID == "" || textAr == "" {
      continue
    }
    order := i
    if s.SentenceOrder != nil {
      order = *s.SentenceOrder
    }
    sequence := make([]string, 0, len(s.Sequence))
    for _, entry := range s.Sequence {
      if trimmed := strings.TrimSpace(entry); trimmed != "" {
        sequence = append(sequence, trimmed)
      }
    }
    if len(sequence) == 0 {
      sequence = []string{canon.NormalizeText(textAr)}
    }
    kind := strings.TrimSpace(s.SentenceKind)
    if kind == "" {
      kind = "default"
    }
    sentences = append(sentences, normalizedSentence{
      unitID:        unitID,
      sentenceOrder: order,
      textAr:        textAr,
      translation:   s.Translation,
      notes:         s.Notes,
      sentenceKind:  kind,
      sequence:      sequence,
    })
  }
  return sentences
}

func normalizeNotes(doc *types.DraftDocument, lessonID string) []normalizedNote {
  notes := make([]normalizedNote, 0, len(doc.Notes))
  for i, n := range doc.Notes {
    excerpt := strings.TrimSpace(n.Excerpt)
    if excerpt == "" {
      continue
    }

    noteUID := strconv.Itoa(i + 1)
    if n.ID != nil && strings.TrimSpace(*n.ID) != "" {
      noteUID = strings.TrimSpace(*n.ID)
    }

    noteType := "lesson_note"
    if n.NoteType != nil && *n.NoteType != "" {
      noteType = *n.NoteType
    }

    targetType := "lesson"
    relation := "about"
    var targetID string
    var containerID, unitID, ref *string
    var sentenceOrder *int
    if n.Target != nil {
      if n.Target.Type != "" {
        targetType = n.Target.Type
      }
      if n.Target.Relation != nil && *n.Target.Relation != "" {
        relation = *n.Target.Relation
      }
      if n.Target.TargetID != nil {
        targetID = *n.Target.TargetID
      }
      containerID = n.Target.ContainerID
      unitID = n.Target.UnitID
      sentenceOrder = n.Target.SentenceOrder
      ref = n.Target.Ref
    }

    if targetID == "" {
      switch {
      case targetType == "lesson":
        targetID = "lesson:" + lessonID
      case targetType == "unit" && unitID != nil && *unitID != "":
        targetID = "unit:" + *unitID
      }
    }
    if targetID == "" && targetType != "sentence" {
      continue
    }

    notes = append(notes, normalizedNote{
      noteUID:       noteUID,
      noteType:      noteType,
      title:         n.Title,
      excerpt:       excerpt,
      commentary:    n.Commentary,
      locator:       n.Locator,
      sourceID:      n.SourceID,
      targetType:    targetType,
      targetID:      targetID,
      relation:      relation,
      containerID:   containerID,
      unitID:        unitID,
      sentenceOrder: sentenceOrder,
      ref:           ref,
      extra:         n.Extra,
    })
  }
  return notes
}

func validateMeta(meta normalizedMeta) error {
  if meta.title == "" {
    return errors.New("meta step requires a non-empty title")
  }
  if meta.lessonType == "" {
    return errors.New("meta step requires lesson_type")
  }
  if meta.lessonType == "quran" {
    if meta.containerID == nil || *meta.containerID == "" || meta.unitID == nil || *meta.unitID == "" {
      return errors.New("meta step requires container_id and unit_id")
    }
  }
  return nil
}

func validateUnits(units []normalizedUnit, containerID *string) error {
  if containerID == nil || *containerID == "" {
    return errors.New("units step requires container_id")
  }
  if len(units) == 0 {
    return errors.New("units step requires at least one unit")
  }
  for _, unit := range units {
    if unit.orderIndex < 0 {
      return errors.New("units step requires non-negative order_index")
    }
  }
  return nil
}

func validateSentences(sentences []normalizedSentence, containerID *string) error {
  if containerID == nil || *containerID == "" {
    return errors.New("sentences step requires container_id")
  }
  if len(sentences) == 0 {
    return errors.New("sentences step requires at least one sentence")
  }
  return nil
}

func validateComprehension(comp types.DraftComprehension) error {
  if comp.ItemCount() == 0 {
    return errors.New("comprehension step requires at least one item")
  }
  for i, mcq := range comp.MCQs {
    if strings.TrimSpace(mcq.Question) == "" {
      return fmt.Errorf("mcq %d requires a question", i+1)
    }
    if len(mcq.Options) < 2 {
      return fmt.Errorf("mcq %d requires at least two options", i+1)
    }
    if mcq.CorrectOptionID == "" {
      return fmt.Errorf("mcq %d requires correct_option_id", i+1)
    }
    matched := false
    for _, opt := range mcq.Options {
      if opt.ID == mcq.CorrectOptionID {
        matched = true
        break
      }
    }
    if !matched {
      return fmt.Errorf("mcq %d correct_option_id must match an option", i+1)
    }
  }
  return nil
}

func validateNotes(notes []normalizedNote) error {
  if len(notes) == 0 {
    return errors.New("notes step requires at least one note")
  }
  return nil
}
