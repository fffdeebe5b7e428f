// Package metrics реализует экспорт метрик в Prometheus
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus метрики
var (
	// BatchesReceived количество принятых пакетов биосигналов
	BatchesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mindbreeze_batches_received_total",
			Help: "Total number of biosignal batches received from MQTT",
		},
	)

	// SamplesAdmitted значения, прошедшие контроль качества
	SamplesAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mindbreeze_samples_admitted_total",
			Help: "Total number of samples admitted by the quality gate",
		},
	)

	// SamplesRejected значения, отклоненные контролем качества
	SamplesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindbreeze_samples_rejected_total",
			Help: "Total number of samples rejected by the quality gate",
		},
		[]string{"reason"},
	)

	// Classifications распределение клинических статусов
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindbreeze_classifications_total",
			Help: "Total number of range classifications by metric and status",
		},
		[]string{"metric", "status"},
	)

	// ReportValidations итоги валидации AI-отчетов
	ReportValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindbreeze_report_validations_total",
			Help: "Total number of AI report validations by outcome",
		},
		[]string{"result"},
	)

	// ReportQualityScore распределение баллов качества отчетов
	ReportQualityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mindbreeze_report_quality_score",
			Help:    "Quality score distribution of validated AI reports",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	// ActiveSessions количество активных сессий мониторинга
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mindbreeze_active_sessions",
			Help: "Number of currently active monitoring sessions",
		},
	)

	// StreamClients подключенные SSE-клиенты
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mindbreeze_stream_clients",
			Help: "Number of connected live stream clients",
		},
	)

	// ProcessingDuration время обработки одного пакета
	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mindbreeze_batch_processing_seconds",
			Help:    "Biosignal batch processing latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)

	// PointsFlushed точки, записанные в БД из буферов сессий
	PointsFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mindbreeze_points_flushed_total",
			Help: "Total number of buffered points flushed to the database",
		},
	)

	// FlushDuration длительность сброса буфера в БД
	FlushDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mindbreeze_buffer_flush_seconds",
			Help:    "Session buffer flush latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// CountGateDecision учитывает решение контроля качества
func CountGateDecision(admitted bool, reason string) {
	if admitted {
		SamplesAdmitted.Inc()
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	SamplesRejected.WithLabelValues(reason).Inc()
}

// ObserveValidation учитывает итог валидации отчета
func ObserveValidation(passed bool, score int) {
	result := "failed"
	if passed {
		result = "passed"
	}
	ReportValidations.WithLabelValues(result).Inc()
	ReportQualityScore.Observe(float64(score))
}
