package services

import (
  "context"
  "encoding/json"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// SnapshotCache stores published lesson payloads for fast reads. Failures
// are tolerated; the database stays authoritative.
type SnapshotCache interface {
  GetLesson(ctx context.Context, lessonID string) ([]byte, error)
  SetLesson(ctx context.Context, lessonID string, payload []byte) error
}

type PublishResult struct {
  LessonID uuid.UUID `json:"lesson_id"`
  Status   string    `json:"status"`
}

// PublishService drives the full pipeline for a draft: every step with
// content runs in order through the commit service, then the lesson and the
// draft flip to published atomically with a complete snapshot.
type PublishService interface {
  Publish(ctx context.Context, userID, draftID uuid.UUID, expectedVersion int) (*PublishResult, error)
}

type publishService struct {
  db      *gorm.DB
  log     *logger.Logger
  drafts  repos.DraftRepo
  lessons repos.LessonRepo
  commits CommitService
  cache   SnapshotCache
}

func NewPublishService(db *gorm.DB, baseLog *logger.Logger, drafts repos.DraftRepo, lessons repos.LessonRepo, commits CommitService, cache SnapshotCache) PublishService {
  return &publishService{
    db:      db,
    log:     baseLog.With("service", "PublishService"),
    drafts:  drafts,
    lessons: lessons,
    commits: commits,
    cache:   cache,
  }
}

func (s *publishService) Publish(ctx context.Context, userID, draftID uuid.UUID, expectedVersion int) (*PublishResult, error) {
  draft, err := s.drafts.GetByID(ctx, nil, draftID, userID)
  if err != nil {
    return nil, apierr.Execution(err)
  }
  if draft == nil {
    return nil, apierr.NotFound(errors.New("draft not found"))
  }
  if draft.DraftVersion != expectedVersion {
    return nil, apierr.VersionConflict(errors.New("draft version mismatch"), draft.DraftVersion)
  }

  doc, err := types.ParseDraftDocument(draft.Document)
  if err != nil {
    return nil, apierr.Validation(err)
  }

  steps := []struct {
    step      CommitStep
    shouldRun bool
  }{
    {StepMeta, true},
    {StepUnits, len(doc.Units) > 0},
    {StepSentences, len(doc.Sentences) > 0},
    {StepComprehension, doc.Comprehension.ItemCount() > 0},
    {StepNotes, len(doc.Notes) > 0},
  }

  for _, entry := range steps {
    if !entry.shouldRun {
      continue
    }
    result, err := s.commits.CommitStep(ctx, userID, draft, entry.step)
    if err != nil {
      return nil, err
    }
    lessonID := result.LessonID
    draft.LessonID = &lessonID
  }
  if draft.LessonID == nil {
    return nil, apierr.Validation(errors.New("lesson id missing; commit meta step first"))
  }
  lessonID := *draft.LessonID

  publishedAt := time.Now().UTC()
  snapshot := buildSnapshot(doc, draft.LessonType, snapshotInclude{
    units:         true,
    sentences:     true,
    comprehension: true,
    notes:         true,
    publishedAt:   &publishedAt,
  })
  snapJSON, err := json.Marshal(snapshot)
  if err != nil {
    return nil, apierr.Execution(err)
  }

  txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := s.lessons.MarkPublished(ctx, tx, lessonID, datatypes.JSON(snapJSON)); err != nil {
      return err
    }
    return s.drafts.MarkPublished(ctx, tx, draftID)
  })
  if txErr != nil {
    return nil, apierr.Execution(txErr)
  }

  if s.cache != nil {
    lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
    if err == nil && lesson != nil {
      if raw, err := json.Marshal(lesson); err == nil {
        if err := s.cache.SetLesson(ctx, lessonID.String(), raw); err != nil {
          s.log.Warn("cache published lesson", "lesson_id", lessonID, "error", err)
        }
      }
    }
  }

  return &PublishResult{LessonID: lessonID, Status: types.LessonStatusPublished}, nil
}
