package services

import (
  "time"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type snapshotInclude struct {
  units         bool
  sentences     bool
  comprehension bool
  notes         bool
  publishedAt   *time.Time
}

// buildSnapshot projects the draft document into the denormalized read shape
// stored on the lesson row. lesson_type is forced to the normalized value so
// the snapshot never disagrees with the lesson columns.
func buildSnapshot(doc *types.DraftDocument, lessonType string, include snapshotInclude) *types.LessonSnapshot {
  snapshot := &types.LessonSnapshot{
    SchemaVersion: doc.SchemaVersion,
    Meta:          doc.Meta,
    Reference:     doc.Reference,
  }
  if snapshot.SchemaVersion == 0 {
    snapshot.SchemaVersion = 1
  }
  snapshot.Meta.LessonType = lessonType

  if include.units {
    snapshot.Units = doc.Units
  }
  if include.sentences {
    snapshot.Sentences = doc.Sentences
  }
  if include.comprehension {
    comp := doc.Comprehension
    snapshot.Comprehension = &comp
  }
  if include.notes {
    snapshot.Notes = doc.Notes
  }
  if include.publishedAt != nil {
    snapshot.PublishedAt = include.publishedAt
  }
  return snapshot
}
