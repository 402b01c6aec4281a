package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"interview-service/internal/models"
	"interview-service/internal/proctoring"

	"github.com/gin-gonic/gin"
)

// ViolationReporter is the directory-side sink for proctoring summaries.
type ViolationReporter interface {
	ReportViolations(ctx context.Context, summary models.ViolationSummary) error
}

type ProctoringHandler struct {
	service   *proctoring.Service
	directory ViolationReporter
}

func NewProctoringHandler(service *proctoring.Service, directory ViolationReporter) *ProctoringHandler {
	return &ProctoringHandler{service: service, directory: directory}
}

// HandleFrame accepts one video frame for an active session, forwards it to
// the detector and records the verdict.
func (h *ProctoringHandler) HandleFrame(c *gin.Context) {
	candidateID := c.PostForm("candidate_id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate ID is missing or invalid"})
		return
	}

	file, _, err := c.Request.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: no frame provided"})
		return
	}
	defer file.Close()

	frame, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read frame"})
		return
	}

	verdict, err := h.service.ProcessFrame(c.Request.Context(), candidateID, frame)
	if err != nil {
		log.Printf("Proctoring frame evaluation failed for candidate %s: %v", candidateID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Proctoring service error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidate_id":    candidateID,
		"proctoring_flag": verdict.Flagged(),
		"reason":          verdict,
	})
}

// HandleEnd flushes the session's violation tally to the directory exactly
// once and discards the monitor.
func (h *ProctoringHandler) HandleEnd(c *gin.Context) {
	candidateID := c.PostForm("candidate_id")
	if candidateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate ID is missing or invalid"})
		return
	}

	summary, recorded := h.service.Flush(candidateID)
	if recorded {
		if err := h.directory.ReportViolations(c.Request.Context(), summary); err != nil {
			log.Printf("Failed to report violations for candidate %s: %v", candidateID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"candidate_id": candidateID,
		"flagged":      summary.Flagged(),
		"violations":   summary,
	})
}
