package main

import (
  "context"
  "fmt"
  "os"
  "github.com/yungbote/linguabridge-backend/internal/clients/rediscache"
  "github.com/yungbote/linguabridge-backend/internal/db"
  "github.com/yungbote/linguabridge-backend/internal/handlers"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/middleware"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/server"
  "github.com/yungbote/linguabridge-backend/internal/services"
  "github.com/yungbote/linguabridge-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  catalogPath := utils.GetEnv("CONTAINER_CATALOG_PATH", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  canonRepo := repos.NewCanonRepo(thePG, log)
  grammarRepo := repos.NewGrammarRepo(thePG, log)
  draftRepo := repos.NewDraftRepo(thePG, log)
  lessonRepo := repos.NewLessonRepo(thePG, log)
  unitLinkRepo := repos.NewLessonUnitLinkRepo(thePG, log)
  occurrenceRepo := repos.NewSentenceOccurrenceRepo(thePG, log)
  sentenceLinkRepo := repos.NewLessonSentenceLinkRepo(thePG, log)
  noteRepo := repos.NewNoteRepo(thePG, log)
  receiptRepo := repos.NewCommitReceiptRepo(thePG, log)
  catalogRepo := repos.NewContainerUnitRepo(thePG, log)

  if catalogPath != "" {
    if err := postgresService.SeedContainerCatalog(context.Background(), catalogPath, catalogRepo); err != nil {
      log.Warn("Container catalog seed failed", "error", err)
    }
  }

  // Redis
  log.Info("Setting up Redis cache from main...")
  var cache services.SnapshotCache
  redisCache, err := rediscache.New(log)
  if err != nil {
    log.Warn("Could not init RedisCache; reads go straight to Postgres", "error", err)
  } else {
    cache = redisCache
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(log, jwtSecretKey)
  draftService := services.NewDraftService(thePG, log, draftRepo)
  commitService := services.NewCommitService(
    thePG,
    log,
    draftRepo,
    lessonRepo,
    unitLinkRepo,
    canonRepo,
    occurrenceRepo,
    sentenceLinkRepo,
    noteRepo,
    receiptRepo,
    catalogRepo,
  )
  publishService := services.NewPublishService(thePG, log, draftRepo, lessonRepo, commitService, cache)
  lessonService := services.NewLessonService(thePG, log, lessonRepo, cache)
  ingestService := services.NewIngestService(thePG, log, canonRepo, grammarRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  draftHandler := handlers.NewDraftHandler(draftService, commitService, publishService)
  lessonHandler := handlers.NewLessonHandler(lessonService)
  ingestHandler := handlers.NewIngestHandler(ingestService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware: authMiddleware,
    DraftHandler:   draftHandler,
    LessonHandler:  lessonHandler,
    IngestHandler:  ingestHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
