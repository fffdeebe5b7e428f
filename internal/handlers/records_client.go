package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/analytics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

// RecordsClient отправляет завершенные сессии во внешний сервис медкарт
type RecordsClient struct {
	db         *gorm.DB
	baseURL    string // пусто - экспорт выключен
	httpClient *http.Client
	trends     *analytics.TrendCalculator
}

// SessionSummary полезная нагрузка экспорта сессии
type SessionSummary struct {
	SessionID       string             `json:"session_id"`
	CardID          string             `json:"card_id"`
	DeviceID        string             `json:"device_id"`
	StartTime       int64              `json:"start_time"`
	EndTime         int64              `json:"end_time"`
	DurationSeconds int                `json:"duration_seconds"`
	AdmittedCount   int64              `json:"admitted_count"`
	RejectedCount   int64              `json:"rejected_count"`
	TotalPoints     int                `json:"total_points"`
	Trends          map[string]float64 `json:"trends,omitempty"`
}

// recordsResponse ответ сервиса медкарт
type recordsResponse struct {
	Success  bool   `json:"success"`
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

// NewRecordsClient создает клиент сервиса медкарт
func NewRecordsClient(db *gorm.DB, baseURL string, timeout time.Duration) *RecordsClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &RecordsClient{
		db:      db,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		trends: analytics.NewTrendCalculator(1.0),
	}

	if baseURL != "" {
		log.Printf("🏥 Клиент медкарт инициализирован: %s", baseURL)
	}
	return client
}

// SendSession выгружает завершенную сессию в медкарты
func (rc *RecordsClient) SendSession(sessionID uuid.UUID) {
	if rc.baseURL == "" {
		return
	}

	log.Printf("📤 Начинаем отправку сессии %s в медкарты", sessionID)

	// 1. Загрузить сессию вместе с JSONB рядами
	var session models.MonitoringSession
	if err := rc.db.First(&session, "id = ?", sessionID).Error; err != nil {
		log.Printf("❌ Ошибка получения сессии %s из БД: %v", sessionID, err)
		return
	}
	if session.EndTime == nil {
		log.Printf("⚠️ Сессия %s ещё не завершена", sessionID)
		return
	}

	summary := rc.buildSummary(&session)
	log.Printf("📊 Данные сессии %s: %d точек, длительность %d с",
		sessionID, summary.TotalPoints, summary.DurationSeconds)

	// 2. Отправить по HTTP
	if err := rc.postSummary(summary); err != nil {
		log.Printf("❌ Ошибка отправки сессии %s в медкарты: %v", sessionID, err)
	} else {
		log.Printf("✅ Сессия %s успешно отправлена в медкарты", sessionID)
	}
}

// buildSummary собирает сводку сессии с трендами по окнам
func (rc *RecordsClient) buildSummary(session *models.MonitoringSession) SessionSummary {
	duration := int(session.EndTime.Sub(session.StartTime).Seconds())

	series := make(map[string][]float64, len(session.MetricData))
	totalPoints := 0
	for metric, data := range session.MetricData {
		if len(data.Points) == 0 {
			continue
		}
		values := make([]float64, len(data.Points))
		for i, point := range data.Points {
			values[i] = point.V
		}
		series[metric] = values
		totalPoints += len(values)
	}

	return SessionSummary{
		SessionID:       session.ID.String(),
		CardID:          session.CardID.String(),
		DeviceID:        session.DeviceID,
		StartTime:       session.StartTime.Unix(),
		EndTime:         session.EndTime.Unix(),
		DurationSeconds: duration,
		AdmittedCount:   session.AdmittedCount,
		RejectedCount:   session.RejectedCount,
		TotalPoints:     totalPoints,
		Trends:          rc.trends.CalculateAllTrends(series, duration),
	}
}

// postSummary отправляет сводку сервису медкарт
func (rc *RecordsClient) postSummary(summary SessionSummary) error {
	requestBody, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/records/sessions", rc.baseURL)

	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := rc.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("сервис медкарт вернул ошибку %d: %s", resp.StatusCode, string(body))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var recordsResp recordsResponse
	if err := json.Unmarshal(responseBody, &recordsResp); err != nil {
		return fmt.Errorf("ошибка десериализации ответа: %w", err)
	}

	if !recordsResp.Success {
		log.Printf("❌ Сервис медкарт вернул ошибку: %s", recordsResp.Message)
		return nil
	}

	log.Printf("✅ Сессия %s сохранена в медкартах (Record ID: %s)",
		summary.SessionID, recordsResp.RecordID)
	return nil
}
