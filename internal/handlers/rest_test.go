package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/analytics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/validation"
)

const sampleReportJSON = `{
	"overallMentalHealthScore": 82,
	"healthStatus": "양호",
	"summary": "전반적으로 안정적인 상태이며 집중력과 이완 수준이 균형을 이루고 있습니다.",
	"scores": {
		"focus": {
			"standardizedScore": 78,
			"percentile": 78,
			"grade": "good",
			"confidence": 0.9
		},
		"relaxation": {
			"standardizedScore": 85,
			"percentile": 96,
			"grade": "excellent",
			"confidence": 0.88
		}
	},
	"riskAssessments": {
		"depression": {
			"riskLevel": "low",
			"score": 15,
			"confidence": 0.8,
			"indicators": ["수면 패턴 안정"],
			"clinicalNotes": "특이 소견 없음",
			"severity": "none",
			"urgency": "routine"
		}
	},
	"recommendations": [
		"규칙적인 수면 습관을 유지하세요",
		"가벼운 유산소 운동을 늘려보세요"
	]
}`

// newTestAPI wires only the dependencies the exercised routes touch.
func newTestAPI() *RESTAPIServer {
	return &RESTAPIServer{
		streamHub:    NewStreamHub(),
		rangeService: ranges.NewRangeService(ranges.DefaultAdjustmentPolicy()),
		validator:    validation.NewReportValidator(validation.DefaultValidatorConfig()),
		trends:       analytics.NewTrendCalculator(1.0),
	}
}

func performRequest(router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidateReportEndpointAcceptsValidReport(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "POST", "/api/v1/reports/validate", []byte(sampleReportJSON))
	require.Equal(t, http.StatusOK, w.Code)

	var result validation.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.Passed)
	require.Equal(t, 100, result.QualityScore)
	require.Empty(t, result.Errors)
}

func TestValidateReportEndpointRejectsMalformedJSON(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "POST", "/api/v1/reports/validate", []byte("{not json"))
	require.Equal(t, http.StatusOK, w.Code)

	var result validation.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.False(t, result.Passed)
	require.NotEmpty(t, result.Errors)
}

func TestRangePreviewBase(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "GET", "/api/v1/ranges/heartRate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var preview RangePreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	require.Equal(t, "heartRate", preview.Metric)
	require.Equal(t, 60.0, preview.Min)
	require.Equal(t, 100.0, preview.Max)
	require.False(t, preview.Personalized)
}

func TestRangePreviewPersonalized(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "GET", "/api/v1/ranges/heartRate?age=30&gender=female&occupation=nurse", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var preview RangePreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	// female +5/+5, high-stress occupation +5 to the upper bound
	require.Equal(t, 65.0, preview.Min)
	require.Equal(t, 110.0, preview.Max)
	require.True(t, preview.Personalized)
	require.Equal(t, "65-110", preview.Label)
}

func TestRangePreviewUnknownMetric(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "GET", "/api/v1/ranges/bloodSugar", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRangePreviewInvalidAge(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "GET", "/api/v1/ranges/heartRate?age=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartSessionRejectsBadCardID(t *testing.T) {
	api := newTestAPI()
	api.sessionManager = NewSessionManager(nil, nil)
	router := api.SetupRoutes()

	body := []byte(`{"card_id": "not-a-uuid", "device_id": "LINKBAND-001"}`)
	w := performRequest(router, "POST", "/api/v1/sessions/start", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	require.Equal(t, "Неверный ID медицинской карты", errResp.Error)
}

func TestStartSessionRequiresFields(t *testing.T) {
	router := newTestAPI().SetupRoutes()

	w := performRequest(router, "POST", "/api/v1/sessions/start", []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamEndpointDeliversSSE(t *testing.T) {
	api := newTestAPI()
	server := httptest.NewServer(api.SetupRoutes())
	defer server.Close()

	// The broadcast has to happen after the handler registers its subscriber
	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if api.streamHub.SubscriberCount() == 1 {
				api.streamHub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", 72.5))
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", server.URL+"/api/v1/stream?metrics=heartRate", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	var foundEvent, foundData bool
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") && strings.Contains(line, "update") {
			foundEvent = true
		}
		if strings.HasPrefix(line, "data:") && strings.Contains(line, "heartRate") {
			foundData = true
			break
		}
	}
	require.True(t, foundEvent, "expected an update event frame")
	require.True(t, foundData, "expected the broadcast payload in the stream")
}

func TestSplitQueryList(t *testing.T) {
	require.Nil(t, splitQueryList(""))
	require.Equal(t, []string{"a"}, splitQueryList("a"))
	require.Equal(t, []string{"a", "b"}, splitQueryList("a,b"))
	require.Equal(t, []string{"a", "b"}, splitQueryList(" a , b "))
	require.Equal(t, []string{"a"}, splitQueryList("a,,"))
}

func TestSessionToResponse(t *testing.T) {
	start := time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	session := &models.MonitoringSession{
		ID:            uuid.New(),
		CardID:        uuid.New(),
		DeviceID:      "LINKBAND-001",
		StartTime:     start,
		EndTime:       &end,
		AdmittedCount: 5230,
		RejectedCount: 170,
	}

	resp := sessionToResponse(session, "stopped")
	require.Equal(t, session.ID.String(), resp.SessionID)
	require.Equal(t, "stopped", resp.Status)
	require.Equal(t, 5400, resp.Duration)
	require.Equal(t, int64(5230), resp.AdmittedCount)
	require.Equal(t, int64(170), resp.RejectedCount)
	require.NotNil(t, resp.EndTime)
}
