package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interview-service/config"
	"interview-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *DirectoryClient {
	return NewDirectoryClient(&config.DirectoryConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestDeliverFinalReport(t *testing.T) {
	var gotPath string
	var gotReport models.FinalReport

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReport))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	report := &models.FinalReport{
		Status:      models.ReportStatusCompleted,
		CandidateID: "7",
		JobName:     "Backend Engineer",
		TotalScore:  80.0,
	}

	err := newTestClient(server.URL).DeliverFinalReport(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "/interview/update-candidate/", gotPath)
	assert.Equal(t, "7", gotReport.CandidateID)
	assert.InDelta(t, 80.0, gotReport.TotalScore, 0.001)
}

func TestDeliverFinalReportNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "candidate not found", http.StatusNotFound)
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeliverFinalReport(context.Background(), &models.FinalReport{CandidateID: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "candidate not found")
}

func TestReportViolations(t *testing.T) {
	var gotPath string
	var gotSummary models.ViolationSummary

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotSummary))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	summary := models.ViolationSummary{CandidateID: "7", DeviceDetected: 3, FramesFlagged: 3}
	err := newTestClient(server.URL).ReportViolations(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, "/proctoring/end-interview/", gotPath)
	assert.Equal(t, 3, gotSummary.DeviceDetected)
}

func TestDirectoryUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	err := newTestClient(server.URL).DeliverFinalReport(context.Background(), &models.FinalReport{})
	require.Error(t, err)
}
