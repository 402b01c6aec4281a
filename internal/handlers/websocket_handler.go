package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"interview-service/config"
	"interview-service/internal/interview"
	"interview-service/internal/oracle"
	ws "interview-service/internal/websocket"
	"interview-service/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins in prod
	},
}

type WebSocketHandler struct {
	config  *config.Config
	oracles oracle.Factory

	directory interview.DirectoryStore
	sessions  interview.SessionStore
	cache     interview.ReportCache
	events    interview.EventPublisher
}

func NewWebSocketHandler(
	cfg *config.Config,
	oracles oracle.Factory,
	directory interview.DirectoryStore,
	sessions interview.SessionStore,
	cache interview.ReportCache,
	events interview.EventPublisher,
) *WebSocketHandler {
	return &WebSocketHandler{
		config:    cfg,
		oracles:   oracles,
		directory: directory,
		sessions:  sessions,
		cache:     cache,
		events:    events,
	}
}

// HandleWebSocket upgrades the connection and launches one interview
// session per candidate connection. Sessions share no state with each
// other; each owns its channel, oracle conversation and progression.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	var authorizedCandidate string
	if secret := h.config.Auth.JWTSecret; secret != "" {
		claims, err := jwt.ValidateInterviewToken(extractToken(c), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		authorizedCandidate = claims.CandidateID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	channel := ws.NewConn(conn)
	go channel.WritePump()
	go channel.ReadPump()

	session := interview.NewSession(interview.Config{
		Channel:               channel,
		Oracle:                h.oracles.NewSession(),
		Directory:             h.directory,
		Sessions:              h.sessions,
		Cache:                 h.cache,
		Events:                h.events,
		AnswerTimeout:         h.config.Interview.AnswerTimeout,
		GraceTimeout:          h.config.Interview.GraceTimeout,
		AuthorizedCandidateID: authorizedCandidate,
	})

	// The disconnect watcher races the completion path; the session's
	// report flag decides the winner.
	go func() {
		<-channel.Disconnected()
		session.Interrupt(context.Background())
	}()

	go session.Run(context.Background())
}

func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
