package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"interview-service/internal/repository"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes read-only access to this service's own session
// audit rows. Candidate and job records live in the directory service.
type SessionHandler struct {
	repo *repository.SessionRepository
}

func NewSessionHandler(repo *repository.SessionRepository) *SessionHandler {
	return &SessionHandler{repo: repo}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.repo.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) ListCandidateSessions(c *gin.Context) {
	sessions, err := h.repo.GetSessionsByCandidate(c.Request.Context(), c.Param("candidate_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
