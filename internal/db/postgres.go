package db

import (
  "context"
  "fmt"
  "os"
  "gopkg.in/yaml.v3"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/types"
  "github.com/yungbote/linguabridge-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "linguabridge", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
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
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

type catalogFile struct {
  Containers []struct {
    ContainerID string `yaml:"container_id"`
    Units       []struct {
      UnitID     string `yaml:"unit_id"`
      Title      string `yaml:"title"`
      OrderIndex int    `yaml:"order_index"`
    } `yaml:"units"`
  } `yaml:"containers"`
}

// SeedContainerCatalog loads the container/unit catalog used for referential
// validation of unit commits. Existing rows are left untouched.
func (s *PostgresService) SeedContainerCatalog(ctx context.Context, path string, catalog repos.ContainerUnitRepo) error {
  raw, err := os.ReadFile(path)
  if err != nil {
    return fmt.Errorf("read catalog file: %w", err)
  }
  var file catalogFile
  if err := yaml.Unmarshal(raw, &file); err != nil {
    return fmt.Errorf("parse catalog file: %w", err)
  }

  units := []*types.ContainerUnit{}
  for _, container := range file.Containers {
    for _, unit := range container.Units {
      units = append(units, &types.ContainerUnit{
        ContainerID: container.ContainerID,
        UnitID:      unit.UnitID,
        Title:       unit.Title,
        OrderIndex:  unit.OrderIndex,
      })
    }
  }
  if len(units) == 0 {
    return nil
  }
  s.log.Info("Seeding container catalog", "units", len(units))
  return catalog.Seed(ctx, nil, units)
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
