package services

import (
  "context"
  "fmt"
  "testing"
  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type testEnv struct {
  db      *gorm.DB
  drafts  DraftService
  commits CommitService
  publish PublishService
  lessons LessonService
  catalog repos.ContainerUnitRepo
}

func newTestEnv(t *testing.T) *testEnv {
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

  log := logger.NewNop()
  draftRepo := repos.NewDraftRepo(db, log)
  lessonRepo := repos.NewLessonRepo(db, log)
  unitLinkRepo := repos.NewLessonUnitLinkRepo(db, log)
  canonRepo := repos.NewCanonRepo(db, log)
  occurrenceRepo := repos.NewSentenceOccurrenceRepo(db, log)
  sentenceLinkRepo := repos.NewLessonSentenceLinkRepo(db, log)
  noteRepo := repos.NewNoteRepo(db, log)
  receiptRepo := repos.NewCommitReceiptRepo(db, log)
  catalogRepo := repos.NewContainerUnitRepo(db, log)

  commits := NewCommitService(db, log, draftRepo, lessonRepo, unitLinkRepo, canonRepo, occurrenceRepo, sentenceLinkRepo, noteRepo, receiptRepo, catalogRepo)
  return &testEnv{
    db:      db,
    drafts:  NewDraftService(db, log, draftRepo),
    commits: commits,
    publish: NewPublishService(db, log, draftRepo, lessonRepo, commits, nil),
    lessons: NewLessonService(db, log, lessonRepo, nil),
    catalog: catalogRepo,
  }
}

func (env *testEnv) seedCatalog(t *testing.T, containerID string, unitIDs ...string) {
  t.Helper()
  units := make([]*types.ContainerUnit, 0, len(unitIDs))
  for i, unitID := range unitIDs {
    units = append(units, &types.ContainerUnit{
      ContainerID: containerID,
      UnitID:      unitID,
      Title:       "Unit " + unitID,
      OrderIndex:  i,
    })
  }
  if err := env.catalog.Seed(context.Background(), nil, units); err != nil {
    t.Fatalf("seed catalog: %v", err)
  }
}

func (env *testEnv) createDraft(t *testing.T, userID uuid.UUID, doc *types.DraftDocument) *types.LessonDraft {
  t.Helper()
  raw, err := doc.Marshal()
  if err != nil {
    t.Fatalf("marshal document: %v", err)
  }
  draft := &types.LessonDraft{
    DraftID:      uuid.New(),
    UserID:       userID,
    LessonType:   doc.Meta.LessonType,
    Status:       types.DraftStatusDraft,
    DraftVersion: 1,
    Document:     raw,
  }
  if err := env.db.Create(draft).Error; err != nil {
    t.Fatalf("create draft: %v", err)
  }
  return draft
}

func (env *testEnv) reloadDraft(t *testing.T, userID, draftID uuid.UUID) *types.LessonDraft {
  t.Helper()
  draft, err := env.drafts.GetDraft(context.Background(), userID, draftID)
  if err != nil {
    t.Fatalf("reload draft: %v", err)
  }
  return draft
}

func intptr(v int) *int       { return &v }
func strptr(s string) *string { return &s }

func quranDraftDocument() *types.DraftDocument {
  return &types.DraftDocument{
    SchemaVersion: 1,
    Meta: types.DraftMeta{
      Title:      "Surah Al-Fatiha, verses 1-3",
      LessonType: "quran",
    },
    Reference: types.DraftReference{
      ContainerID: strptr("quran-001"),
      UnitID:      strptr("1"),
      Surah:       intptr(1),
      AyahFrom:    intptr(1),
      AyahTo:      intptr(3),
    },
    Units: []types.DraftUnit{
      {UnitID: "1", OrderIndex: intptr(0)},
      {UnitID: "2", OrderIndex: intptr(1)},
    },
    Sentences: []types.DraftSentence{
      {
        UnitID:        "1",
        TextAr:        "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
        Translation:   strptr("In the name of God, the Most Gracious, the Most Merciful"),
        SentenceKind:  "default",
        SentenceOrder: intptr(0),
      },
      {
        UnitID:        "2",
        TextAr:        "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
        Translation:   strptr("Praise be to God, Lord of the worlds"),
        SentenceKind:  "default",
        SentenceOrder: intptr(1),
      },
    },
    Comprehension: types.DraftComprehension{
      MCQs: []types.DraftMCQ{
        {
          Question: "What does the basmala open with?",
          Options: []types.MCQOption{
            {ID: "a", Text: "The name of God"},
            {ID: "b", Text: "A greeting"},
          },
          CorrectOptionID: "a",
        },
      },
      Reflective: []map[string]any{},
      Analytical: []map[string]any{},
    },
    Notes: []types.DraftNote{
      {
        ID:      strptr("n1"),
        Excerpt: "The opening invocation",
        Target: &types.DraftNoteTarget{
          Type:          "sentence",
          ContainerID:   strptr("quran-001"),
          UnitID:        strptr("1"),
          SentenceOrder: intptr(0),
        },
      },
    },
  }
}
