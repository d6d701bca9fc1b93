package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/linguabridge-backend/internal/platform/apierr"
)

// Every response uses the ok envelope: {ok:true, ...} on success and
// {ok:false, error, details?} on failure.

func RespondOK(c *gin.Context, payload gin.H) {
  body := gin.H{"ok": true}
  for k, v := range payload {
    body[k] = v
  }
  c.JSON(http.StatusOK, body)
}

func RespondError(c *gin.Context, err error) {
  ae := apierr.From(err)
  body := gin.H{"ok": false, "error": ae.Error()}
  if ae.Details != nil {
    body["details"] = ae.Details
  }
  c.JSON(ae.Status, body)
}
