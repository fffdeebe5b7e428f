package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/metrics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/validation"
)

// ReportSubmitRequest запрос на сохранение AI-отчета
// @Description AI-отчет вместе с привязкой к медицинской карте и сессии
type ReportSubmitRequest struct {
	CardID       string          `json:"card_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID медицинской карты
	SessionID    string          `json:"session_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`      // UUID сессии (опционально)
	ModelVersion string          `json:"model_version,omitempty" example:"gemini-1.5-pro"`                         // Версия модели, сгенерировавшей отчет
	Report       json.RawMessage `json:"report" binding:"required" swaggertype:"object"`                           // JSON AI-отчета
}

// ReportResponse сохраненный AI-отчет
// @Description Сохраненный AI-отчет вместе с вердиктом валидации
type ReportResponse struct {
	ReportID     string          `json:"report_id" example:"550e8400-e29b-41d4-a716-446655440002"`  // UUID отчета
	CardID       string          `json:"card_id" example:"550e8400-e29b-41d4-a716-446655440000"`    // UUID медицинской карты
	SessionID    *string         `json:"session_id,omitempty"`                                      // UUID сессии (если есть)
	Passed       bool            `json:"passed" example:"true"`                                     // Прошел ли отчет валидацию
	QualityScore int             `json:"quality_score" example:"94"`                                // Балл качества 0..100
	ModelVersion string          `json:"model_version,omitempty" example:"gemini-1.5-pro"`          // Версия модели
	CreatedAt    time.Time       `json:"created_at" example:"2023-09-01T10:00:00Z"`                 // Время сохранения
	Payload      json.RawMessage `json:"payload,omitempty" swaggertype:"object"`                    // Исходный отчет
	Findings     json.RawMessage `json:"findings,omitempty" swaggertype:"object"`                   // Замечания валидатора
}

// ReportSummary краткая информация об отчете
// @Description Краткая информация о сохраненном AI-отчете
type ReportSummary struct {
	ReportID     string    `json:"report_id" example:"550e8400-e29b-41d4-a716-446655440002"` // UUID отчета
	SessionID    *string   `json:"session_id,omitempty"`                                     // UUID сессии (если есть)
	Passed       bool      `json:"passed" example:"true"`                                    // Прошел ли отчет валидацию
	QualityScore int       `json:"quality_score" example:"94"`                               // Балл качества 0..100
	ModelVersion string    `json:"model_version,omitempty" example:"gemini-1.5-pro"`         // Версия модели
	CreatedAt    time.Time `json:"created_at" example:"2023-09-01T10:00:00Z"`                // Время сохранения
}

// CardReportsResponse отчеты медицинской карты
// @Description Список сохраненных AI-отчетов для медицинской карты
type CardReportsResponse struct {
	CardID  string          `json:"card_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID медицинской карты
	Reports []ReportSummary `json:"reports"`                                                // Список отчетов (свежие первыми)
	Count   int             `json:"count" example:"3"`                                      // Количество отчетов
}

// reportFindings замечания валидатора в JSONB отчета
type reportFindings struct {
	Errors   []validation.ValidationFinding `json:"errors"`
	Warnings []validation.ValidationFinding `json:"warnings"`
}

// ValidateReport проверяет AI-отчет без сохранения
// @Summary Валидация AI-отчета
// @Description Прогоняет AI-отчет через все этапы валидации (структура, типы, диапазоны, перечисления, согласованность, медицинская безопасность, полнота) и возвращает вердикт с замечаниями
// @Tags reports
// @Accept json
// @Produce json
// @Param report body object true "JSON AI-отчета"
// @Success 200 {object} validation.ValidationResult "Результат валидации"
// @Failure 400 {object} ErrorResponse "Не удалось прочитать тело запроса"
// @Router /reports/validate [post]
func (api *RESTAPIServer) ValidateReport(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Не удалось прочитать тело запроса",
			Details: err.Error(),
		})
		return
	}

	result := api.validator.Validate(raw)
	metrics.ObserveValidation(result.Passed, result.QualityScore)

	c.JSON(http.StatusOK, result)
}

// SubmitReport проверяет и сохраняет AI-отчет
// @Summary Сохранение AI-отчета
// @Description Валидирует AI-отчет и сохраняет его вместе с вердиктом в базе. Отчет сохраняется даже при провале валидации, вердикт отражается в полях passed и quality_score.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body ReportSubmitRequest true "AI-отчет с привязкой к карте"
// @Success 200 {object} SuccessResponse{data=ReportResponse} "Отчет сохранен"
// @Failure 400 {object} ErrorResponse "Неверный формат данных"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /reports/submit [post]
func (api *RESTAPIServer) SubmitReport(c *gin.Context) {
	var req ReportSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID медицинской карты",
		})
		return
	}

	var sessionID *uuid.UUID
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Неверный ID сессии",
			})
			return
		}
		sessionID = &parsed
	}

	result := api.validator.Validate(req.Report)
	metrics.ObserveValidation(result.Passed, result.QualityScore)

	findingsJSON, err := json.Marshal(reportFindings{
		Errors:   result.Errors,
		Warnings: result.Warnings,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось сериализовать замечания",
			Details: err.Error(),
		})
		return
	}

	record := models.HealthReportRecord{
		CardID:       cardID,
		SessionID:    sessionID,
		Payload:      req.Report,
		Findings:     findingsJSON,
		Passed:       result.Passed,
		QualityScore: result.QualityScore,
		ModelVersion: req.ModelVersion,
	}
	if err := api.db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось сохранить отчет",
			Details: err.Error(),
		})
		return
	}

	log.Printf("📋 Отчет %s сохранен для карты %s (passed=%v, score=%d)",
		record.ID, cardID, result.Passed, result.QualityScore)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Отчет сохранен",
		Data:    reportToResponse(&record, false),
	})
}

// GetReport возвращает сохраненный AI-отчет
// @Summary Сохраненный AI-отчет
// @Description Возвращает сохраненный AI-отчет вместе с исходным JSON и замечаниями валидатора
// @Tags reports
// @Produce json
// @Param report_id path string true "UUID отчета" format(uuid)
// @Success 200 {object} ReportResponse "Сохраненный отчет"
// @Failure 400 {object} ErrorResponse "Неверный ID отчета"
// @Failure 404 {object} ErrorResponse "Отчет не найден"
// @Router /reports/{report_id} [get]
func (api *RESTAPIServer) GetReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID отчета",
		})
		return
	}

	var record models.HealthReportRecord
	if err := api.db.First(&record, "id = ?", reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Отчет не найден",
		})
		return
	}

	c.JSON(http.StatusOK, reportToResponse(&record, true))
}

// GetCardReports возвращает отчеты медицинской карты
// @Summary AI-отчеты медицинской карты
// @Description Возвращает список сохраненных AI-отчетов для медицинской карты, свежие первыми
// @Tags reports
// @Produce json
// @Param card_id path string true "UUID медицинской карты" format(uuid)
// @Success 200 {object} CardReportsResponse "Список отчетов"
// @Failure 400 {object} ErrorResponse "Неверный ID медицинской карты"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /cards/{card_id}/reports [get]
func (api *RESTAPIServer) GetCardReports(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID медицинской карты",
		})
		return
	}

	var records []models.HealthReportRecord
	err = api.db.
		Select("id", "card_id", "session_id", "passed", "quality_score", "model_version", "created_at").
		Where("card_id = ?", cardID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить отчеты карты",
			Details: err.Error(),
		})
		return
	}

	reports := make([]ReportSummary, 0, len(records))
	for _, record := range records {
		var sessionID *string
		if record.SessionID != nil {
			id := record.SessionID.String()
			sessionID = &id
		}
		reports = append(reports, ReportSummary{
			ReportID:     record.ID.String(),
			SessionID:    sessionID,
			Passed:       record.Passed,
			QualityScore: record.QualityScore,
			ModelVersion: record.ModelVersion,
			CreatedAt:    record.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, CardReportsResponse{
		CardID:  cardID.String(),
		Reports: reports,
		Count:   len(reports),
	})
}

// reportToResponse собирает DTO отчета
func reportToResponse(record *models.HealthReportRecord, includePayload bool) ReportResponse {
	var sessionID *string
	if record.SessionID != nil {
		id := record.SessionID.String()
		sessionID = &id
	}

	response := ReportResponse{
		ReportID:     record.ID.String(),
		CardID:       record.CardID.String(),
		SessionID:    sessionID,
		Passed:       record.Passed,
		QualityScore: record.QualityScore,
		ModelVersion: record.ModelVersion,
		CreatedAt:    record.CreatedAt,
	}
	if includePayload {
		response.Payload = record.Payload
		response.Findings = record.Findings
	}
	return response
}
