package repos

import (
  "fmt"
  "testing"
  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

// newTestDB opens a named in-memory sqlite database. The shared cache keeps
// the schema visible across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()

  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }

  if err := db.AutoMigrate(
    &types.Root{},
    &types.Token{},
    &types.Span{},
    &types.Sentence{},
    &types.Valency{},
    &types.LexiconEntry{},
    &types.Synset{},
    &types.SynsetMember{},
    &types.GrammarEntry{},
    &types.GrammarLookupKey{},
    &types.ContainerUnit{},
    &types.LessonDraft{},
    &types.Lesson{},
    &types.LessonUnitLink{},
    &types.LessonSentenceLink{},
    &types.SentenceOccurrence{},
    &types.Note{},
    &types.NoteTarget{},
    &types.LessonCommit{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return db
}

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  return logger.NewNop()
}

func strptr(s string) *string { return &s }
