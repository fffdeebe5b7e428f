package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

func finishedSession(durationSec int) *models.MonitoringSession {
	start := time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationSec) * time.Second)

	points := make([]models.MetricPoint, durationSec)
	for i := range points {
		points[i] = models.MetricPoint{T: float64(i), V: 70 + float64(i%5)}
	}

	return &models.MonitoringSession{
		ID:        uuid.New(),
		CardID:    uuid.New(),
		DeviceID:  "LINKBAND-001",
		StartTime: start,
		EndTime:   &end,
		MetricData: models.MetricSeriesMap{
			"heartRate": models.MetricSeries{
				Points:   points,
				LastTime: float64(durationSec - 1),
				Count:    len(points),
			},
			"stressIndex": models.MetricSeries{}, // seeded but never written
		},
		AdmittedCount: int64(durationSec),
		RejectedCount: 12,
	}
}

func TestBuildSummary(t *testing.T) {
	client := NewRecordsClient(nil, "http://records.local", 5*time.Second)
	session := finishedSession(300)

	summary := client.buildSummary(session)

	require.Equal(t, session.ID.String(), summary.SessionID)
	require.Equal(t, session.CardID.String(), summary.CardID)
	require.Equal(t, "LINKBAND-001", summary.DeviceID)
	require.Equal(t, 300, summary.DurationSeconds)
	require.Equal(t, int64(300), summary.AdmittedCount)
	require.Equal(t, int64(12), summary.RejectedCount)
	// The empty stressIndex series contributes no points
	require.Equal(t, 300, summary.TotalPoints)
	// A 300s session covers the 240s trend window
	require.Contains(t, summary.Trends, "t_240s_heartRate_mean")
	require.NotContains(t, summary.Trends, "t_600s_heartRate_mean")
}

func TestBuildSummaryShortSessionHasNoTrendWindows(t *testing.T) {
	client := NewRecordsClient(nil, "http://records.local", 5*time.Second)

	summary := client.buildSummary(finishedSession(60))

	require.Equal(t, 60, summary.DurationSeconds)
	require.Empty(t, summary.Trends)
}

func TestPostSummaryDeliversJSON(t *testing.T) {
	var received SessionSummary
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.Equal(t, "/api/v1/records/sessions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(recordsResponse{Success: true, RecordID: "rec-42"})
	}))
	defer server.Close()

	client := NewRecordsClient(nil, server.URL, 5*time.Second)
	summary := client.buildSummary(finishedSession(300))

	require.NoError(t, client.postSummary(summary))
	require.Equal(t, "application/json", contentType)
	require.Equal(t, summary.SessionID, received.SessionID)
	require.Equal(t, summary.TotalPoints, received.TotalPoints)
}

func TestPostSummaryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRecordsClient(nil, server.URL, 5*time.Second)

	err := client.postSummary(client.buildSummary(finishedSession(300)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestPostSummaryRejectedByService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(recordsResponse{Success: false, Message: "duplicate session"})
	}))
	defer server.Close()

	client := NewRecordsClient(nil, server.URL, 5*time.Second)

	// A business-level rejection is logged, not treated as a transport error
	require.NoError(t, client.postSummary(client.buildSummary(finishedSession(300))))
}

func TestSendSessionDisabledWithoutURL(t *testing.T) {
	client := NewRecordsClient(nil, "", 5*time.Second)

	// Export is off: returns before touching the database
	client.SendSession(uuid.New())
}
