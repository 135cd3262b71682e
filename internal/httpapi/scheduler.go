package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

const channelAPI = "api"

// sessionKey ключ диалога из пути; пустой или из одних пробелов не принимается
func sessionKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.Param("session"))
	if key == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session key"})
		return "", false
	}
	return key, true
}

func (s *Server) turn(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.deps.Scheduler.Turn(c.Request.Context(), channelAPI, key, req.Text)
	if err != nil {
		if res != nil && res.Outcome.Kind == scheduling.OutcomeConfirmed {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "proposal partially saved", "saved": res.Saved})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, TurnResponse{
		Outcome:  res.Outcome,
		Question: scheduling.Question(res.Outcome.Hint),
		Dialogue: res.Dialogue,
		Saved:    res.Saved,
	})
}

func (s *Server) getDialogue(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}
	d, err := s.deps.Scheduler.Dialogue(c.Request.Context(), key)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) resetDialogue(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}
	if err := s.deps.Scheduler.Reset(c.Request.Context(), key); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
