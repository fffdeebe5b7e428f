package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/analytics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/cache"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/database"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/validation"
)

// @title Mind Breeze AI Report API
// @version 1.0
// @description API для системы стабилизации биосигналов (EEG/PPG) и валидации AI-отчетов о ментальном здоровье
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @tag.name sessions
// @tag.description Управление сессиями мониторинга

// @tag.name devices
// @tag.description Устройства и их актуальные показатели

// @tag.name ranges
// @tag.description Диапазоны нормы метрик

// @tag.name reports
// @tag.description Валидация и хранение AI-отчетов

// @tag.name stream
// @tag.description Поток обновлений метрик в реальном времени

// @tag.name monitoring
// @tag.description Мониторинг состояния сервиса

// RESTAPIServer обрабатывает REST API запросы
type RESTAPIServer struct {
	db             *gorm.DB
	sessionManager *SessionManager
	streamHub      *StreamHub
	processor      *StreamProcessor
	redisCache     *cache.RedisCache
	rangeService   *ranges.RangeService
	validator      *validation.ReportValidator
	recordsClient  *RecordsClient
	trends         *analytics.TrendCalculator
}

// SessionRequest запрос для создания сессии
// @Description Данные для создания новой сессии мониторинга
type SessionRequest struct {
	CardID     string `json:"card_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID медицинской карты пациента
	DeviceID   string `json:"device_id" binding:"required" example:"LINKBAND-001"`                       // Идентификатор устройства LINK BAND
	Age        int    `json:"age,omitempty" example:"34"`                                                // Возраст пациента (0 - не указан)
	Gender     string `json:"gender,omitempty" example:"female" enums:"male,female"`                     // Пол пациента
	Occupation string `json:"occupation,omitempty" example:"nurse"`                                      // Профессия пациента
}

// SessionResponse ответ с информацией о сессии
// @Description Информация о сессии мониторинга биосигналов
type SessionResponse struct {
	SessionID     string     `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID сессии
	CardID        string     `json:"card_id" example:"550e8400-e29b-41d4-a716-446655440000"`    // UUID медицинской карты
	DeviceID      string     `json:"device_id" example:"LINKBAND-001"`                          // Идентификатор устройства
	Status        string     `json:"status" example:"active" enums:"active,stopped"`            // Статус сессии
	StartTime     time.Time  `json:"start_time" example:"2023-09-01T10:00:00Z"`                 // Время начала сессии
	EndTime       *time.Time `json:"end_time,omitempty" example:"2023-09-01T11:30:00Z"`         // Время окончания сессии (если завершена)
	Duration      int        `json:"duration" example:"5400"`                                   // Продолжительность в секундах
	AdmittedCount int64      `json:"admitted_count" example:"5230"`                             // Количество принятых отсчетов
	RejectedCount int64      `json:"rejected_count" example:"170"`                              // Количество отклоненных отсчетов
}

// SessionDataResponse данные метрик для сессии
// @Description Стабилизированные ряды метрик, собранные во время сессии
type SessionDataResponse struct {
	SessionID   string      `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID сессии
	MetricData  interface{} `json:"metric_data"`                                               // Ряды точек по метрикам
	TotalPoints int         `json:"total_points" example:"1250"`                               // Общее количество точек данных
}

// SessionTrendsResponse трендовые признаки сессии
// @Description Статистические признаки рядов метрик по скользящим окнам
type SessionTrendsResponse struct {
	SessionID       string             `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID сессии
	DurationSeconds int                `json:"duration_seconds" example:"900"`                            // Длительность сессии в секундах
	Windows         []string           `json:"windows" example:"240s,600s,900s"`                          // Доступные окна анализа
	Trends          map[string]float64 `json:"trends"`                                                    // Признаки вида t_240s_heartRate_mean
}

// CardSessionsResponse сессии для медицинской карты
// @Description Список сессий для конкретной медицинской карты
type CardSessionsResponse struct {
	CardID   string            `json:"card_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID медицинской карты
	Sessions []SessionResponse `json:"sessions"`                                               // Список сессий
	Count    int               `json:"count" example:"5"`                                      // Количество сессий
}

// DevicesResponse список устройств
// @Description Список всех известных устройств
type DevicesResponse struct {
	Devices []string `json:"devices" example:"LINKBAND-001,LINKBAND-002"` // Список идентификаторов устройств
	Count   int      `json:"count" example:"2"`                           // Количество устройств
}

// DeviceStatusResponse статус устройства
// @Description Текущий статус устройства
type DeviceStatusResponse struct {
	DeviceID  string     `json:"device_id" example:"LINKBAND-001"`                                    // Идентификатор устройства
	Status    string     `json:"status" example:"active" enums:"active,idle"`                         // Статус устройства
	SessionID *string    `json:"session_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID активной сессии (если есть)
	StartTime *time.Time `json:"start_time,omitempty" example:"2023-09-01T10:00:00Z"`                 // Время начала активной сессии
	Duration  *int       `json:"duration,omitempty" example:"3600"`                                   // Продолжительность активной сессии в секундах
}

// DeviceLatestResponse последние показатели устройства
// @Description Последние обновления по каждой метрике устройства из кэша
type DeviceLatestResponse struct {
	DeviceID string                         `json:"device_id" example:"LINKBAND-001"` // Идентификатор устройства
	Metrics  map[string]models.MetricUpdate `json:"metrics"`                           // Последнее обновление по каждой метрике
	Count    int                            `json:"count" example:"7"`                 // Количество метрик в кэше
}

// DeviceSeriesResponse последние точки ряда метрики
// @Description Последние точки ряда метрики устройства из кэша
type DeviceSeriesResponse struct {
	DeviceID string              `json:"device_id" example:"LINKBAND-001"` // Идентификатор устройства
	Metric   string              `json:"metric" example:"heartRate"`       // Имя метрики
	Points   []cache.SeriesPoint `json:"points"`                           // Точки ряда (свежие первыми)
	Count    int                 `json:"count" example:"100"`              // Количество точек
}

// RangePreviewResponse диапазон нормы метрики
// @Description Диапазон нормы метрики, при наличии персональных данных - скорректированный
type RangePreviewResponse struct {
	Metric       string  `json:"metric" example:"heartRate"`   // Имя метрики
	Min          float64 `json:"min" example:"60"`             // Нижняя граница нормы
	Max          float64 `json:"max" example:"100"`            // Верхняя граница нормы
	Unit         string  `json:"unit" example:"bpm"`           // Единица измерения
	Label        string  `json:"label" example:"60-100"`       // Форматированная строка диапазона
	Personalized bool    `json:"personalized" example:"false"` // Применена ли персональная корректировка
}

// HealthResponse состояние сервиса
// @Description Информация о состоянии и работоспособности сервиса
type HealthResponse struct {
	Status         string    `json:"status" example:"healthy"`                 // Статус сервиса
	Service        string    `json:"service" example:"Mind Breeze AI Report"`  // Название сервиса
	Timestamp      time.Time `json:"timestamp" example:"2023-09-01T10:00:00Z"` // Время проверки
	ActiveSessions int       `json:"active_sessions" example:"3"`              // Количество активных сессий
	StreamClients  int       `json:"stream_clients" example:"2"`               // Количество подключенных потоковых клиентов
	Database       string    `json:"database" example:"connected"`             // Состояние подключения к PostgreSQL
	Redis          string    `json:"redis" example:"connected"`                // Состояние подключения к Redis
}

// CleanupResponse результат очистки сессий
// @Description Результат операции очистки зависших сессий
type CleanupResponse struct {
	Message        string `json:"message" example:"Очистка сессий выполнена"` // Сообщение о результате
	ActiveSessions int    `json:"active_sessions" example:"2"`                // Количество активных сессий после очистки
}

// ActiveSessionsResponse список активных сессий
// @Description Список всех активных сессий мониторинга
type ActiveSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`          // Список активных сессий
	Count    int               `json:"count" example:"3"` // Количество активных сессий
}

// ErrorResponse стандартный ответ об ошибке
// @Description Стандартная структура ответа об ошибке
type ErrorResponse struct {
	Error   string `json:"error" example:"Неверный формат данных"`     // Описание ошибки
	Details string `json:"details,omitempty" example:"field required"` // Дополнительные детали ошибки
}

// SuccessResponse стандартный ответ об успехе
// @Description Стандартная структура успешного ответа
type SuccessResponse struct {
	Message string      `json:"message" example:"Операция выполнена успешно"` // Сообщение об успехе
	Data    interface{} `json:"data,omitempty"`                               // Дополнительные данные
}

// NewRESTAPIServer создает новый REST API сервер
func NewRESTAPIServer(
	db *gorm.DB,
	sessionManager *SessionManager,
	streamHub *StreamHub,
	processor *StreamProcessor,
	redisCache *cache.RedisCache,
	rangeService *ranges.RangeService,
	validator *validation.ReportValidator,
	recordsClient *RecordsClient,
) *RESTAPIServer {
	return &RESTAPIServer{
		db:             db,
		sessionManager: sessionManager,
		streamHub:      streamHub,
		processor:      processor,
		redisCache:     redisCache,
		rangeService:   rangeService,
		validator:      validator,
		recordsClient:  recordsClient,
		trends:         analytics.NewTrendCalculator(1.0),
	}
}

// SetupRoutes настраивает маршруты REST API
func (api *RESTAPIServer) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:80", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// Метрики Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API группа
	api_group := r.Group("/api/v1")

	// === УПРАВЛЕНИЕ СЕССИЯМИ ===
	sessions := api_group.Group("/sessions")
	{
		sessions.POST("/start", api.StartSession)
		sessions.POST("/stop/:session_id", api.StopSession)
		sessions.GET("/active", api.GetActiveSessions)
		sessions.GET("/:session_id", api.GetSession)
		sessions.GET("/:session_id/data", api.GetSessionData)
		sessions.GET("/:session_id/trends", api.GetSessionTrends)
	}

	// === МЕДИЦИНСКИЕ КАРТЫ ===
	cards := api_group.Group("/cards")
	{
		cards.GET("/:card_id/sessions", api.GetCardSessions)
		cards.GET("/:card_id/reports", api.GetCardReports)
	}

	// === УСТРОЙСТВА ===
	devices := api_group.Group("/devices")
	{
		devices.GET("/", api.GetDevices)
		devices.GET("/:device_id/status", api.GetDeviceStatus)
		devices.GET("/:device_id/latest", api.GetDeviceLatest)
		devices.GET("/:device_id/series", api.GetDeviceSeries)
		devices.POST("/:device_id/reset", api.ResetDevice)
	}

	// === ДИАПАЗОНЫ НОРМЫ ===
	rangesGroup := api_group.Group("/ranges")
	{
		rangesGroup.GET("/:metric", api.GetRangePreview)
	}

	// === AI-ОТЧЕТЫ ===
	reports := api_group.Group("/reports")
	{
		reports.POST("/validate", api.ValidateReport)
		reports.POST("/submit", api.SubmitReport)
		reports.GET("/:report_id", api.GetReport)
	}

	// === ПОТОК ОБНОВЛЕНИЙ ===
	api_group.GET("/stream", api.StreamUpdates)

	// === МОНИТОРИНГ СЕРВИСА ===
	monitoring := api_group.Group("/monitoring")
	{
		monitoring.GET("/health", api.HealthCheck)
		monitoring.POST("/cleanup", api.CleanupSessions)
	}

	return r
}

// StartSession запускает новую сессию мониторинга
// @Summary Запуск новой сессии мониторинга биосигналов
// @Description Создает новую сессию мониторинга для указанной медицинской карты и устройства. Персональные данные (возраст, пол, профессия) используются для корректировки диапазонов нормы.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SessionRequest true "Данные для создания сессии"
// @Success 200 {object} SuccessResponse{data=SessionResponse} "Сессия успешно запущена"
// @Failure 400 {object} ErrorResponse "Неверный формат данных"
// @Failure 409 {object} ErrorResponse "Сессия для устройства уже активна"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /sessions/start [post]
func (api *RESTAPIServer) StartSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	// Валидация UUID карты
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID медицинской карты",
		})
		return
	}

	// Проверка активной сессии
	if activeSession := api.sessionManager.GetActiveSession(req.DeviceID); activeSession != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "Сессия для устройства уже активна",
			Details: "active_session_id: " + activeSession.ID.String(),
		})
		return
	}

	// Создание сессии
	info := ranges.PersonalInfo{
		Age:        req.Age,
		Gender:     ranges.Gender(req.Gender),
		Occupation: req.Occupation,
	}
	session, err := api.sessionManager.StartSession(cardID, req.DeviceID, info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось создать сессию",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Сессия успешно запущена",
		Data:    sessionToResponse(session, "active"),
	})
}

// StopSession завершает активную сессию
// @Summary Завершение активной сессии мониторинга
// @Description Завершает указанную активную сессию, сбрасывает состояние стабилизации устройства и асинхронно выгружает сессию в сервис медкарт
// @Tags sessions
// @Produce json
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SuccessResponse{data=SessionResponse} "Сессия успешно завершена"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/stop/{session_id} [post]
func (api *RESTAPIServer) StopSession(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID сессии",
		})
		return
	}

	session, err := api.sessionManager.StopSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Сессия не найдена или уже завершена",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Сессия успешно завершена",
		Data:    sessionToResponse(session, "stopped"),
	})
	go api.recordsClient.SendSession(sessionID)
}

// GetActiveSessions возвращает все активные сессии
// @Summary Список активных сессий
// @Description Возвращает список всех активных сессий мониторинга
// @Tags sessions
// @Produce json
// @Success 200 {object} ActiveSessionsResponse "Список активных сессий"
// @Router /sessions/active [get]
func (api *RESTAPIServer) GetActiveSessions(c *gin.Context) {
	active := api.sessionManager.GetAllActiveSessions()

	sessions := make([]SessionResponse, 0, len(active))
	for _, session := range active {
		sessions = append(sessions, sessionToResponse(session, "active"))
	}

	c.JSON(http.StatusOK, ActiveSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// GetSession возвращает сессию по ID
// @Summary Информация о сессии
// @Description Возвращает информацию об указанной сессии мониторинга
// @Tags sessions
// @Produce json
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SessionResponse "Информация о сессии"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id} [get]
func (api *RESTAPIServer) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID сессии",
		})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Сессия не найдена",
		})
		return
	}

	status := "active"
	if session.EndTime != nil {
		status = "stopped"
	}
	c.JSON(http.StatusOK, sessionToResponse(session, status))
}

// GetSessionData возвращает собранные данные сессии
// @Summary Данные сессии
// @Description Возвращает стабилизированные ряды метрик, собранные во время сессии
// @Tags sessions
// @Produce json
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SessionDataResponse "Данные сессии"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id}/data [get]
func (api *RESTAPIServer) GetSessionData(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID сессии",
		})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Сессия не найдена",
		})
		return
	}

	totalPoints := 0
	for _, series := range session.MetricData {
		totalPoints += len(series.Points)
	}

	c.JSON(http.StatusOK, SessionDataResponse{
		SessionID:   session.ID.String(),
		MetricData:  session.MetricData,
		TotalPoints: totalPoints,
	})
}

// GetSessionTrends возвращает трендовые признаки сессии
// @Summary Трендовые признаки сессии
// @Description Рассчитывает статистические признаки рядов метрик сессии по скользящим окнам 240/600/900 секунд
// @Tags sessions
// @Produce json
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SessionTrendsResponse "Трендовые признаки"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id}/trends [get]
func (api *RESTAPIServer) GetSessionTrends(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID сессии",
		})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Сессия не найдена",
		})
		return
	}

	duration := int(time.Since(session.StartTime).Seconds())
	if session.EndTime != nil {
		duration = int(session.EndTime.Sub(session.StartTime).Seconds())
	}

	series := make(map[string][]float64, len(session.MetricData))
	for metric, data := range session.MetricData {
		if len(data.Points) == 0 {
			continue
		}
		values := make([]float64, len(data.Points))
		for i, point := range data.Points {
			values[i] = point.V
		}
		series[metric] = values
	}

	c.JSON(http.StatusOK, SessionTrendsResponse{
		SessionID:       session.ID.String(),
		DurationSeconds: duration,
		Windows:         api.trends.GetAvailableWindows(duration),
		Trends:          api.trends.CalculateAllTrends(series, duration),
	})
}

// GetCardSessions возвращает сессии медицинской карты
// @Summary Сессии медицинской карты
// @Description Возвращает список всех сессий мониторинга для указанной медицинской карты
// @Tags sessions
// @Produce json
// @Param card_id path string true "UUID медицинской карты" format(uuid)
// @Success 200 {object} CardSessionsResponse "Список сессий карты"
// @Failure 400 {object} ErrorResponse "Неверный ID медицинской карты"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /cards/{card_id}/sessions [get]
func (api *RESTAPIServer) GetCardSessions(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID медицинской карты",
		})
		return
	}

	cardSessions, err := api.sessionManager.GetSessionsByCardID(cardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить сессии карты",
			Details: err.Error(),
		})
		return
	}

	sessions := make([]SessionResponse, 0, len(cardSessions))
	for _, session := range cardSessions {
		status := "active"
		if session.EndTime != nil {
			status = "stopped"
		}
		sessions = append(sessions, sessionToResponse(session, status))
	}

	c.JSON(http.StatusOK, CardSessionsResponse{
		CardID:   cardID.String(),
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// GetDevices возвращает список известных устройств
// @Summary Список устройств
// @Description Возвращает список всех устройств, для которых существуют сессии
// @Tags devices
// @Produce json
// @Success 200 {object} DevicesResponse "Список устройств"
// @Router /devices/ [get]
func (api *RESTAPIServer) GetDevices(c *gin.Context) {
	devices := api.sessionManager.GetAllDevices()
	c.JSON(http.StatusOK, DevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// GetDeviceStatus возвращает статус устройства
// @Summary Статус устройства
// @Description Возвращает текущий статус устройства и активную сессию, если она есть
// @Tags devices
// @Produce json
// @Param device_id path string true "Идентификатор устройства"
// @Success 200 {object} DeviceStatusResponse "Статус устройства"
// @Router /devices/{device_id}/status [get]
func (api *RESTAPIServer) GetDeviceStatus(c *gin.Context) {
	deviceID := c.Param("device_id")

	session := api.sessionManager.GetActiveSession(deviceID)
	if session == nil {
		c.JSON(http.StatusOK, DeviceStatusResponse{
			DeviceID: deviceID,
			Status:   "idle",
		})
		return
	}

	sessionID := session.ID.String()
	duration := int(time.Since(session.StartTime).Seconds())
	c.JSON(http.StatusOK, DeviceStatusResponse{
		DeviceID:  deviceID,
		Status:    "active",
		SessionID: &sessionID,
		StartTime: &session.StartTime,
		Duration:  &duration,
	})
}

// GetDeviceLatest возвращает последние показатели устройства
// @Summary Последние показатели устройства
// @Description Возвращает последнее обновление по каждой метрике устройства из кэша Redis
// @Tags devices
// @Produce json
// @Param device_id path string true "Идентификатор устройства"
// @Success 200 {object} DeviceLatestResponse "Последние показатели"
// @Failure 500 {object} ErrorResponse "Ошибка чтения из кэша"
// @Router /devices/{device_id}/latest [get]
func (api *RESTAPIServer) GetDeviceLatest(c *gin.Context) {
	deviceID := c.Param("device_id")

	updates, err := api.redisCache.GetLatest(deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить данные из кэша",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, DeviceLatestResponse{
		DeviceID: deviceID,
		Metrics:  updates,
		Count:    len(updates),
	})
}

// GetDeviceSeries возвращает последние точки ряда метрики
// @Summary Ряд метрики устройства
// @Description Возвращает последние точки ряда указанной метрики устройства из кэша Redis
// @Tags devices
// @Produce json
// @Param device_id path string true "Идентификатор устройства"
// @Param metric query string true "Имя метрики" example(heartRate)
// @Param count query int false "Количество точек (по умолчанию 100, максимум 1000)"
// @Success 200 {object} DeviceSeriesResponse "Точки ряда"
// @Failure 400 {object} ErrorResponse "Не указана метрика"
// @Failure 500 {object} ErrorResponse "Ошибка чтения из кэша"
// @Router /devices/{device_id}/series [get]
func (api *RESTAPIServer) GetDeviceSeries(c *gin.Context) {
	deviceID := c.Param("device_id")

	metric := c.Query("metric")
	if metric == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Не указана метрика",
		})
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	if count > cache.SeriesMaxIndex+1 {
		count = cache.SeriesMaxIndex + 1
	}

	points, err := api.redisCache.GetSeries(deviceID, metric, int64(count))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить ряд из кэша",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, DeviceSeriesResponse{
		DeviceID: deviceID,
		Metric:   metric,
		Points:   points,
		Count:    len(points),
	})
}

// ResetDevice сбрасывает состояние устройства
// @Summary Сброс состояния устройства
// @Description Очищает историю стабилизации и кэшированные данные устройства
// @Tags devices
// @Produce json
// @Param device_id path string true "Идентификатор устройства"
// @Success 200 {object} SuccessResponse "Состояние устройства сброшено"
// @Router /devices/{device_id}/reset [post]
func (api *RESTAPIServer) ResetDevice(c *gin.Context) {
	deviceID := c.Param("device_id")
	api.processor.ResetDevice(deviceID)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Состояние устройства сброшено",
	})
}

// GetRangePreview возвращает диапазон нормы метрики
// @Summary Диапазон нормы метрики
// @Description Возвращает диапазон нормы метрики. Если указаны персональные параметры (age, gender, occupation), диапазон корректируется под них.
// @Tags ranges
// @Produce json
// @Param metric path string true "Имя метрики" example(heartRate)
// @Param age query int false "Возраст"
// @Param gender query string false "Пол" Enums(male, female)
// @Param occupation query string false "Профессия"
// @Success 200 {object} RangePreviewResponse "Диапазон нормы"
// @Failure 400 {object} ErrorResponse "Неверные параметры"
// @Failure 404 {object} ErrorResponse "Неизвестная метрика"
// @Router /ranges/{metric} [get]
func (api *RESTAPIServer) GetRangePreview(c *gin.Context) {
	metric := c.Param("metric")

	var info *ranges.PersonalInfo
	ageStr := c.Query("age")
	gender := c.Query("gender")
	occupation := c.Query("occupation")
	if ageStr != "" || gender != "" || occupation != "" {
		age := 0
		if ageStr != "" {
			parsed, err := strconv.Atoi(ageStr)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Error: "Неверное значение возраста",
				})
				return
			}
			age = parsed
		}
		info = &ranges.PersonalInfo{
			Age:        age,
			Gender:     ranges.Gender(gender),
			Occupation: occupation,
		}
	}

	normalRange, ok := api.rangeService.Personalized(metric, info)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Неизвестная метрика",
		})
		return
	}

	c.JSON(http.StatusOK, RangePreviewResponse{
		Metric:       metric,
		Min:          normalRange.Min,
		Max:          normalRange.Max,
		Unit:         normalRange.Unit,
		Label:        normalRange.Label,
		Personalized: info != nil,
	})
}

// StreamUpdates отдает поток обновлений метрик через SSE
// @Summary Поток обновлений метрик (SSE)
// @Description Подписывает клиента на поток обновлений метрик в формате Server-Sent Events. Фильтры по устройствам и метрикам задаются через query-параметры.
// @Tags stream
// @Produce text/event-stream
// @Param devices query string false "Идентификаторы устройств через запятую"
// @Param metrics query string false "Имена метрик через запятую"
// @Success 200 {string} string "Поток событий update"
// @Router /stream [get]
func (api *RESTAPIServer) StreamUpdates(c *gin.Context) {
	filter := StreamFilter{
		DeviceIDs: splitQueryList(c.Query("devices")),
		Metrics:   splitQueryList(c.Query("metrics")),
	}

	clientID, updates := api.streamHub.Subscribe(filter)
	defer api.streamHub.Unsubscribe(clientID)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Heartbeat, чтобы прокси не закрывали простаивающее соединение
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("update", update)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// HealthCheck проверка здоровья сервиса
// @Summary Проверка состояния сервиса
// @Description Возвращает информацию о текущем состоянии сервиса и его подключений к PostgreSQL и Redis
// @Tags monitoring
// @Produce json
// @Success 200 {object} HealthResponse "Состояние сервиса"
// @Router /monitoring/health [get]
func (api *RESTAPIServer) HealthCheck(c *gin.Context) {
	status := "healthy"

	dbStatus := "connected"
	if err := database.HealthCheck(api.db); err != nil {
		dbStatus = "error: " + err.Error()
		status = "degraded"
	}

	redisStatus := "connected"
	if err := api.redisCache.Ping(); err != nil {
		redisStatus = "error: " + err.Error()
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:         status,
		Service:        "Mind Breeze AI Report",
		Timestamp:      time.Now().UTC(),
		ActiveSessions: api.sessionManager.GetActiveSessionCount(),
		StreamClients:  api.streamHub.SubscriberCount(),
		Database:       dbStatus,
		Redis:          redisStatus,
	})
}

// CleanupSessions очистка зависших сессий
// @Summary Очистка зависших сессий
// @Description Выполняет очистку зависших и неактивных сессий в системе
// @Tags monitoring
// @Produce json
// @Success 200 {object} CleanupResponse "Результат очистки"
// @Router /monitoring/cleanup [post]
func (api *RESTAPIServer) CleanupSessions(c *gin.Context) {
	api.sessionManager.CleanupInactiveSessions()
	c.JSON(http.StatusOK, CleanupResponse{
		Message:        "Очистка сессий выполнена",
		ActiveSessions: api.sessionManager.GetActiveSessionCount(),
	})
}

// sessionToResponse собирает DTO сессии
func sessionToResponse(session *models.MonitoringSession, status string) SessionResponse {
	duration := int(time.Since(session.StartTime).Seconds())
	if session.EndTime != nil {
		duration = int(session.EndTime.Sub(session.StartTime).Seconds())
	}
	return SessionResponse{
		SessionID:     session.ID.String(),
		CardID:        session.CardID.String(),
		DeviceID:      session.DeviceID,
		Status:        status,
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		Duration:      duration,
		AdmittedCount: session.AdmittedCount,
		RejectedCount: session.RejectedCount,
	}
}

// splitQueryList разбирает список значений из query-параметра
func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
