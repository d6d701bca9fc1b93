package handlers

import (
  "errors"
  "fmt"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
  "github.com/yungbote/linguabridge-backend/internal/repos"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type IngestHandler struct {
  svc services.IngestService
}

func NewIngestHandler(svc services.IngestService) *IngestHandler {
  return &IngestHandler{svc: svc}
}

// POST /api/ar/ingest/:entity
func (h *IngestHandler) Upsert(c *gin.Context) {
  ctx := c.Request.Context()
  entity := c.Param("entity")

  var result *services.IngestResult
  var err error

  switch entity {
  case "roots":
    var payload services.RootPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertRoot(ctx, payload)
  case "tokens":
    var payload services.TokenPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertToken(ctx, payload)
  case "spans":
    var payload services.SpanPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertSpan(ctx, payload)
  case "sentences":
    var payload services.SentencePayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertSentence(ctx, payload)
  case "valencies":
    var payload services.ValencyPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertValency(ctx, payload)
  case "lexicon":
    var payload services.LexiconPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertLexiconEntry(ctx, payload)
  case "grammar":
    var payload repos.GrammarPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertGrammar(ctx, payload)
  case "synsets":
    var payload services.SynsetPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertSynset(ctx, payload)
  case "synset-members":
    var payload services.SynsetMemberPayload
    if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
      RespondError(c, apierr.Validation(errors.New("invalid JSON body")))
      return
    }
    result, err = h.svc.UpsertSynsetMember(ctx, payload)
  default:
    RespondError(c, apierr.Validation(fmt.Errorf("unknown entity %q", entity)))
    return
  }

  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"result": result})
}
