package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MonitoringSession единая таблица сессии мониторинга биосигналов
type MonitoringSession struct {
	// Основные идентификаторы
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CardID   uuid.UUID `json:"card_id" gorm:"type:uuid;not null;index"`
	DeviceID string    `json:"device_id" gorm:"type:varchar(100);not null;index"`

	// Метаданные сессии
	StartTime time.Time  `json:"start_time" gorm:"not null;index"`
	EndTime   *time.Time `json:"end_time" gorm:"index"` // null пока сессия активна

	// Персональные данные для подстройки клинических диапазонов
	Age        int    `json:"age" gorm:"type:smallint"`
	Gender     string `json:"gender" gorm:"type:varchar(10)"`
	Occupation string `json:"occupation" gorm:"type:varchar(100)"`

	// 🔥 Метрики как аппендабельные JSONB ряды, ключ - имя метрики
	MetricData MetricSeriesMap `json:"metric_data" gorm:"serializer:json;type:jsonb"`

	// Счетчики качества за сессию
	AdmittedCount int64 `json:"admitted_count" gorm:"default:0"`
	RejectedCount int64 `json:"rejected_count" gorm:"default:0"`
}

// MetricSeriesMap ряды точек по имени метрики (heartRate, stressIndex, ...)
type MetricSeriesMap map[string]MetricSeries

// MetricSeries оптимизированная структура для аппенда
type MetricSeries struct {
	Points   []MetricPoint `json:"points"`    // Массив точек данных
	LastTime float64       `json:"last_time"` // Последняя временная отметка
	Count    int           `json:"count"`     // Количество точек
}

// MetricPoint одна точка данных
type MetricPoint struct {
	T float64 `json:"t"` // Время в секундах (компактно)
	V float64 `json:"v"` // Стабилизированное значение
}

func (MonitoringSession) TableName() string {
	return "mb_monitoring_sessions"
}

// HealthReportRecord сохраненный AI-отчет вместе с вердиктом валидации
type HealthReportRecord struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CardID    uuid.UUID  `json:"card_id" gorm:"type:uuid;not null;index"`
	SessionID *uuid.UUID `json:"session_id" gorm:"type:uuid;index"` // null для отчетов вне сессии

	// 🔥 Исходный отчет и замечания валидатора как JSONB
	Payload  json.RawMessage `json:"payload" gorm:"type:jsonb;not null"`
	Findings json.RawMessage `json:"findings" gorm:"type:jsonb"`

	Passed       bool      `json:"passed" gorm:"index"`
	QualityScore int       `json:"quality_score"`
	ModelVersion string    `json:"model_version" gorm:"type:varchar(100)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (HealthReportRecord) TableName() string {
	return "mb_health_reports"
}
