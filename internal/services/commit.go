package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "strconv"
  "strings"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/canon"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type CommitStep string

const (
  StepMeta          CommitStep = "meta"
  StepUnits         CommitStep = "units"
  StepSentences     CommitStep = "sentences"
  StepComprehension CommitStep = "comprehension"
  StepNotes         CommitStep = "notes"
)

var commitStepOrder = []CommitStep{StepMeta, StepUnits, StepSentences, StepComprehension, StepNotes}

func ParseCommitStep(raw string) (CommitStep, bool) {
  trimmed := CommitStep(strings.ToLower(strings.TrimSpace(raw)))
  for _, step := range commitStepOrder {
    if step == trimmed {
      return step, true
    }
  }
  return "", false
}

type CommitResult struct {
  LessonID         uuid.UUID      `json:"lesson_id"`
  Step             string         `json:"step"`
  DraftVersion     int            `json:"draft_version"`
  Counts           map[string]int `json:"counts"`
  AlreadyCommitted bool           `json:"already_committed,omitempty"`
}

// CommitService applies one authoring step of a draft to durable storage.
// Each (draft, step, version) triple commits at most once: a success receipt
// short-circuits repeats, a failure receipt leaves the triple retryable.
type CommitService interface {
  CommitStep(ctx context.Context, userID uuid.UUID, draft *types.LessonDraft, step CommitStep) (*CommitResult, error)
}

type commitService struct {
  db            *gorm.DB
  log           *logger.Logger
  drafts        repos.DraftRepo
  lessons       repos.LessonRepo
  unitLinks     repos.LessonUnitLinkRepo
  canon         repos.CanonRepo
  occurrences   repos.SentenceOccurrenceRepo
  sentenceLinks repos.LessonSentenceLinkRepo
  notes         repos.NoteRepo
  receipts      repos.CommitReceiptRepo
  catalog       repos.ContainerUnitRepo
}

func NewCommitService(
  db *gorm.DB,
  baseLog *logger.Logger,
  drafts repos.DraftRepo,
  lessons repos.LessonRepo,
  unitLinks repos.LessonUnitLinkRepo,
  canonRepo repos.CanonRepo,
  occurrences repos.SentenceOccurrenceRepo,
  sentenceLinks repos.LessonSentenceLinkRepo,
  notes repos.NoteRepo,
  receipts repos.CommitReceiptRepo,
  catalog repos.ContainerUnitRepo,
) CommitService {
  return &commitService{
    db:            db,
    log:           baseLog.With("service", "CommitService"),
    drafts:        drafts,
    lessons:       lessons,
    unitLinks:     unitLinks,
    canon:         canonRepo,
    occurrences:   occurrences,
    sentenceLinks: sentenceLinks,
    notes:         notes,
    receipts:      receipts,
    catalog:       catalog,
  }
}

func (s *commitService) CommitStep(ctx context.Context, userID uuid.UUID, draft *types.LessonDraft, step CommitStep) (*CommitResult, error) {
  receipt, err := s.receipts.Get(ctx, nil, draft.DraftID, string(step), draft.DraftVersion)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if receipt != nil && receipt.Error == nil {
    lessonID := draft.LessonID
    if receipt.LessonID != nil {
      lessonID = receipt.LessonID
    }
    if lessonID == nil {
      return nil, apierr.Conflict(errors.New("lesson not initialized; commit meta step first"))
    }
    counts := map[string]int{}
    if len(receipt.Result) > 0 {
      if err := json.Unmarshal(receipt.Result, &counts); err != nil {
        return nil, apierr.Execution(fmt.Errorf("decode stored commit result: %w", err))
      }
    }
    return &CommitResult{
      LessonID:         *lessonID,
      Step:             string(step),
      DraftVersion:     draft.DraftVersion,
      Counts:           counts,
      AlreadyCommitted: true,
    }, nil
  }

  doc, err := types.ParseDraftDocument(draft.Document)
  if err != nil {
    return nil, apierr.Validation(err)
  }
  meta := normalizeMeta(doc, draft.LessonType)

  var lessonID uuid.UUID
  creatingLesson := false
  switch {
  case draft.LessonID != nil:
    lessonID = *draft.LessonID
  case step == StepMeta:
    lessonID = uuid.New()
    creatingLesson = true
  default:
    return nil, apierr.Conflict(errors.New("meta step must be committed first"))
  }

  var plan []writeOp
  var counts map[string]int
  switch step {
  case StepMeta:
    plan, counts, err = s.planMeta(doc, meta, draft, userID, lessonID, creatingLesson)
  case StepUnits:
    plan, counts, err = s.planUnits(ctx, doc, meta, lessonID)
  case StepSentences:
    plan, counts, err = s.planSentences(ctx, doc, meta, userID, lessonID)
  case StepComprehension:
    plan, counts, err = s.planComprehension(doc, meta, lessonID)
  case StepNotes:
    plan, counts, err = s.planNotes(ctx, doc, meta, userID, lessonID)
  default:
    return nil, apierr.Validation(fmt.Errorf("unknown commit step %q", step))
  }
  if err != nil {
    return nil, err
  }

  resultJSON, err := json.Marshal(counts)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  plan = append(plan, opRecordReceipt{receipt: &types.LessonCommit{
    ID:           uuid.New(),
    DraftID:      draft.DraftID,
    Step:         string(step),
    DraftVersion: draft.DraftVersion,
    LessonID:     &lessonID,
    UserID:       userID,
    Result:       datatypes.JSON(resultJSON),
  }})

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return s.applyPlan(ctx, tx, plan)
  })
  if txErr != nil {
    message := txErr.Error()
    failure := &types.LessonCommit{
      ID:           uuid.New(),
      DraftID:      draft.DraftID,
      Step:         string(step),
      DraftVersion: draft.DraftVersion,
      LessonID:     &lessonID,
      UserID:       userID,
      Error:        &message,
    }
    if recordErr := s.receipts.RecordFailure(ctx, nil, failure); recordErr != nil {
      s.log.Error("record commit failure", "draft_id", draft.DraftID, "step", step, "error", recordErr)
    }
    return nil, apierr.Execution(txErr)
  }

  return &CommitResult{
    LessonID:     lessonID,
    Step:         string(step),
    DraftVersion: draft.DraftVersion,
    Counts:       counts,
  }, nil
}

func (s *commitService) planMeta(doc *types.DraftDocument, meta normalizedMeta, draft *types.LessonDraft, userID, lessonID uuid.UUID, creating bool) ([]writeOp, map[string]int, error) {
  if err := validateMeta(meta); err != nil {
    return nil, nil, apierr.Validation(err)
  }

  snapshot := buildSnapshot(doc, meta.lessonType, snapshotInclude{})
  snapJSON, err := json.Marshal(snapshot)
  if err != nil {
    return nil, nil, apierr.Execution(err)
  }

  var plan []writeOp
  if creating {
    plan = append(plan,
      opCreateLesson{lesson: &types.Lesson{
        ID:          lessonID,
        UserID:      userID,
        ContainerID: meta.containerID,
        UnitID:      meta.unitID,
        Title:       meta.title,
        TitleAr:     meta.titleAr,
        LessonType:  meta.lessonType,
        Subtype:     meta.subtype,
        Source:      meta.source,
        Status:      types.LessonStatusDraft,
        Difficulty:  meta.difficulty,
        Snapshot:    datatypes.JSON(snapJSON),
      }},
      opSetDraftLesson{draftID: draft.DraftID, lessonID: lessonID},
    )
  } else {
    plan = append(plan, opUpdateLesson{lessonID: lessonID, updates: map[string]interface{}{
      "title":        meta.title,
      "title_ar":     meta.titleAr,
      "lesson_type":  meta.lessonType,
      "subtype":      meta.subtype,
      "source":       meta.source,
      "status":       types.LessonStatusDraft,
      "difficulty":   meta.difficulty,
      "container_id": meta.containerID,
      "unit_id":      meta.unitID,
      "snapshot":     datatypes.JSON(snapJSON),
    }})
  }
  return plan, map[string]int{"lessons": 1}, nil
}

func (s *commitService) planUnits(ctx context.Context, doc *types.DraftDocument, meta normalizedMeta, lessonID uuid.UUID) ([]writeOp, map[string]int, error) {
  units := normalizeUnits(doc)
  if err := validateUnits(units, meta.containerID); err != nil {
    return nil, nil, apierr.Validation(err)
  }
  containerID := *meta.containerID

  unique := make([]string, 0, len(units))
  seen := map[string]bool{}
  for _, unit := range units {
    if !seen[unit.unitID] {
      seen[unit.unitID] = true
      unique = append(unique, unit.unitID)
    }
  }
  total, err := s.catalog.CountMatching(ctx, nil, containerID, unique)
  if err != nil {
    return nil, nil, apierr.Execution(err)
  }
  if total != int64(len(unique)) {
    return nil, nil, apierr.Validation(errors.New("units do not belong to container"))
  }

  links := make([]*types.LessonUnitLink, 0, len(units)+1)
  links = append(links, &types.LessonUnitLink{
    ID:          uuid.New(),
    LessonID:    lessonID,
    ContainerID: containerID,
    UnitID:      "",
    OrderIndex:  0,
    LinkScope:   types.LinkScopeContainer,
  })
  for _, unit := range units {
    links = append(links, &types.LessonUnitLink{
      ID:          uuid.New(),
      LessonID:    lessonID,
      ContainerID: containerID,
      UnitID:      unit.unitID,
      OrderIndex:  unit.orderIndex,
      LinkScope:   types.LinkScopeUnit,
      Role:        unit.role,
      Note:        unit.note,
    })
  }

  plan := []writeOp{
    opUpdateLesson{lessonID: lessonID, updates: map[string]interface{}{
      "container_id": meta.containerID,
      "unit_id":      meta.unitID,
    }},
    opReplaceUnitLinks{lessonID: lessonID, links: links},
  }
  return plan, map[string]int{"container_links": 1, "unit_links": len(units)}, nil
}

func (s *commitService) planSentences(ctx context.Context, doc *types.DraftDocument, meta normalizedMeta, userID, lessonID uuid.UUID) ([]writeOp, map[string]int, error) {
  sentences := normalizeSentences(doc)
  if err := validateSentences(sentences, meta.containerID); err != nil {
    return nil, nil, apierr.Validation(err)
  }
  containerID := *meta.containerID

  oldIDs, err := s.sentenceLinks.ListOccurrenceIDs(ctx, nil, lessonID)
  if err != nil {
    return nil, nil, apierr.Execution(err)
  }

  var plan []writeOp
  links := make([]*types.LessonSentenceLink, 0, len(sentences))
  for _, sentence := range sentences {
    contentID, canonicalInput := canon.ContentID(canon.SentenceKey(sentence.sentenceKind, sentence.sequence))
    textAr := sentence.textAr
    plan = append(plan, opUpsertSentence{row: &types.Sentence{
      ContentID:      contentID,
      CanonicalInput: canonicalInput,
      SentenceKind:   sentence.sentenceKind,
      Sequence:       datatypes.NewJSONSlice(sentence.sequence),
      TextAr:         &textAr,
    }})

    textNorm := canon.NormalizeText(sentence.textAr)
    occID := canon.DigestSeed(canon.SentenceOccurrenceSeed(containerID, sentence.unitID, sentence.sentenceOrder, textNorm))
    plan = append(plan, opUpsertOccurrence{occ: &types.SentenceOccurrence{
      OccurrenceID:  occID,
      UserID:        userID,
      ContainerID:   containerID,
      UnitID:        sentence.unitID,
      SentenceOrder: sentence.sentenceOrder,
      TextAr:        sentence.textAr,
      Translation:   sentence.translation,
      Notes:         sentence.notes,
      SentenceID:    contentID,
    }})

    links = append(links, &types.LessonSentenceLink{
      ID:            uuid.New(),
      LessonID:      lessonID,
      OccurrenceID:  occID,
      UnitID:        sentence.unitID,
      SentenceOrder: sentence.sentenceOrder,
    })
  }

  // Links are replaced before orphan cleanup so occurrences still referenced
  // by the new set survive.
  plan = append(plan, opReplaceSentenceLinks{lessonID: lessonID, links: links})
  if len(oldIDs) > 0 {
    plan = append(plan, opDeleteOrphanOccurrences{occurrenceIDs: oldIDs})
  }

  n := len(sentences)
  return plan, map[string]int{"u_sentences": n, "occ_sentences": n, "sentence_links": n}, nil
}

func (s *commitService) planComprehension(doc *types.DraftDocument, meta normalizedMeta, lessonID uuid.UUID) ([]writeOp, map[string]int, error) {
  if err := validateComprehension(doc.Comprehension); err != nil {
    return nil, nil, apierr.Validation(err)
  }

  snapshot := buildSnapshot(doc, meta.lessonType, snapshotInclude{comprehension: true})
  snapJSON, err := json.Marshal(snapshot)
  if err != nil {
    return nil, nil, apierr.Execution(err)
  }

  plan := []writeOp{opUpdateLesson{lessonID: lessonID, updates: map[string]interface{}{
    "snapshot": datatypes.JSON(snapJSON),
  }}}
  return plan, map[string]int{"comprehension_items": doc.Comprehension.ItemCount()}, nil
}

func (s *commitService) planNotes(ctx context.Context, doc *types.DraftDocument, meta normalizedMeta, userID, lessonID uuid.UUID) ([]writeOp, map[string]int, error) {
  notes := normalizeNotes(doc, lessonID.String())
  if err := validateNotes(notes); err != nil {
    return nil, nil, apierr.Validation(err)
  }

  plan := []writeOp{opDeleteNoteTargets{lessonID: lessonID}}
  for _, note := range notes {
    targetID := note.targetID
    containerID := note.containerID
    if containerID == nil {
      containerID = meta.containerID
    }
    if note.targetType == "sentence" {
      explicit := strings.HasPrefix(targetID, "sentence:")
      if !explicit || note.sentenceOrder != nil || note.ref != nil {
        resolved, err := s.resolveSentenceTarget(ctx, note, containerID)
        if err != nil {
          return nil, nil, err
        }
        targetID = resolved
      }
    }

    noteKey := canon.DigestSeed(canon.NoteSeed(lessonID.String(), note.noteUID))
    var extra datatypes.JSON
    if note.extra != nil {
      raw, err := json.Marshal(note.extra)
      if err != nil {
        return nil, nil, apierr.Execution(err)
      }
      extra = datatypes.JSON(raw)
    }

    plan = append(plan,
      opUpsertNote{note: &types.Note{
        NoteKey:    noteKey,
        UserID:     userID,
        NoteType:   note.noteType,
        Title:      note.title,
        Excerpt:    note.excerpt,
        Commentary: note.commentary,
        SourceID:   note.sourceID,
        Locator:    note.locator,
        Extra:      extra,
      }},
      opUpsertNoteTarget{target: &types.NoteTarget{
        ID:          uuid.New(),
        NoteKey:     noteKey,
        TargetType:  note.targetType,
        TargetID:    targetID,
        Relation:    note.relation,
        ShareScope:  "private",
        ContainerID: containerID,
        UnitID:      note.unitID,
        Ref:         note.ref,
        LessonID:    lessonID,
      }},
    )
  }

  n := len(notes)
  return plan, map[string]int{"notes": n, "note_targets": n}, nil
}

// resolveSentenceTarget maps a positional sentence reference onto the
// occurrence committed for that (container, unit, order) context.
func (s *commitService) resolveSentenceTarget(ctx context.Context, note normalizedNote, containerID *string) (string, error) {
  if containerID == nil || *containerID == "" || note.unitID == nil || *note.unitID == "" {
    return "", apierr.Validation(errors.New("sentence notes require container_id and unit_id"))
  }
  order := -1
  if note.sentenceOrder != nil {
    order = *note.sentenceOrder
  } else if note.ref != nil {
    parsed, err := strconv.Atoi(strings.TrimSpace(*note.ref))
    if err != nil {
      return "", apierr.Validation(errors.New("sentence notes require sentence_order"))
    }
    order = parsed
  }
  if order < 0 {
    return "", apierr.Validation(errors.New("sentence notes require sentence_order"))
  }

  occ, err := s.occurrences.GetByContext(ctx, nil, *containerID, *note.unitID, order)
  if err != nil {
    return "", apierr.Execution(err)
  }
  if occ == nil {
    return "", apierr.NotFound(errors.New("sentence occurrence not found for note target"))
  }
  return "sentence:" + occ.OccurrenceID, nil
}
