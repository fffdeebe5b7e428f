package models

// BiosignalBatch пакет метрик от устройства за один тик измерения
type BiosignalBatch struct {
	DeviceID  string             `json:"device_id"`
	Timestamp int64              `json:"timestamp"` // unix миллисекунды
	Metrics   map[string]float64 `json:"metrics"`   // heartRate, stressIndex, ...
	Quality   QualitySnapshot    `json:"quality"`
}

// QualitySnapshot состояние качества сигнала в момент пакета
type QualitySnapshot struct {
	SensorContacted bool               `json:"sensor_contacted"`
	LeadOff         map[string]bool    `json:"lead_off"` // канал -> отвален ли электрод
	SQI             map[string]float64 `json:"sqi"`      // канал -> индекс качества 0..100
}

// MetricUpdate обработанное значение метрики для трансляции клиентам
type MetricUpdate struct {
	DeviceID       string  `json:"device_id"`
	Metric         string  `json:"metric"`
	Timestamp      int64   `json:"timestamp"`
	Raw            float64 `json:"raw"`
	Display        float64 `json:"display"` // после стабилизации
	Stabilized     bool    `json:"stabilized"`
	Admitted       bool    `json:"admitted"`
	RejectReason   string  `json:"reject_reason,omitempty"`
	Status         string  `json:"status"` // low | normal | high | measuring
	Interpretation string  `json:"interpretation"`
}
