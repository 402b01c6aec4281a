package proctoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"interview-service/config"
)

// DetectorClient calls the external frame-analysis microservice over HTTP.
// It implements FrameOracle.
type DetectorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDetectorClient(cfg *config.ProctorConfig) *DetectorClient {
	return &DetectorClient{
		baseURL: strings.TrimRight(cfg.DetectorURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type detectorResponse struct {
	ProctoringFlag bool    `json:"proctoring_flag"`
	Reason         Verdict `json:"reason"`
}

// Evaluate uploads the frame as multipart form data and parses the verdict.
func (c *DetectorClient) Evaluate(ctx context.Context, frame []byte) (Verdict, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("frame", "frame.jpg")
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to build frame upload: %w", err)
	}
	if _, err := part.Write(frame); err != nil {
		return Verdict{}, fmt.Errorf("failed to write frame: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Verdict{}, fmt.Errorf("failed to finish frame upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/proctor", &body)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to reach detector service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Verdict{}, fmt.Errorf("detector service returned %d: %s", resp.StatusCode, string(detail))
	}

	var parsed detectorResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode detector response: %w", err)
	}
	return parsed.Reason, nil
}
