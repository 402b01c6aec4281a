package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"interview-service/config"
	"interview-service/internal/models"
)

// DirectoryClient talks to the candidate directory service. Delivery is
// fire-and-forget from the session's perspective: callers log failures and
// move on, they never retry within a session's lifetime.
type DirectoryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDirectoryClient(cfg *config.DirectoryConfig) *DirectoryClient {
	return &DirectoryClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// DeliverFinalReport posts the final interview report to the directory.
func (c *DirectoryClient) DeliverFinalReport(ctx context.Context, report *models.FinalReport) error {
	return c.post(ctx, "/interview/update-candidate/", report)
}

// ReportViolations posts the session's proctoring tally to the directory.
func (c *DirectoryClient) ReportViolations(ctx context.Context, summary models.ViolationSummary) error {
	return c.post(ctx, "/proctoring/end-interview/", summary)
}

func (c *DirectoryClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach directory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("directory service returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
