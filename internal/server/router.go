package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/linguabridge-backend/internal/handlers"
  "github.com/yungbote/linguabridge-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware *middleware.AuthMiddleware
  DraftHandler   *handlers.DraftHandler
  LessonHandler  *handlers.LessonHandler
  IngestHandler  *handlers.IngestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.Healthcheck)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api/ar")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Drafts
  protected.POST("/lesson-drafts", cfg.DraftHandler.CreateDraft)
  protected.GET("/lesson-drafts/:draftId", cfg.DraftHandler.GetDraft)
  protected.PUT("/lesson-drafts/:draftId", cfg.DraftHandler.UpdateDocument)
  protected.POST("/lesson-drafts/:draftId/commit", cfg.DraftHandler.CommitStep)
  protected.POST("/lesson-drafts/:draftId/publish", cfg.DraftHandler.Publish)
  // Lessons
  protected.GET("/lessons/:lessonId", cfg.LessonHandler.GetLesson)
  // Canonical ingest
  protected.POST("/ingest/:entity", cfg.IngestHandler.Upsert)

  return router
}
