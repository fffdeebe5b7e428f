package signal

// DefaultSQIThreshold минимально допустимый индекс качества сигнала по каналу
const DefaultSQIThreshold = 80.0

// RejectReason причина отбраковки пакета измерений
type RejectReason string

const (
	RejectNone      RejectReason = ""
	RejectNoContact RejectReason = "NO_CONTACT"
	RejectLeadOff   RejectReason = "LEAD_OFF"
	RejectLowSQI    RejectReason = "LOW_SQI"
)

// QualityState состояние качества сигнала на момент пакета.
// Пересчитывается на каждом цикле приёма из сырых данных устройства, не хранится.
type QualityState struct {
	SensorContacted bool               `json:"sensor_contacted"`
	LeadOff         map[string]bool    `json:"lead_off"`
	SQI             map[string]float64 `json:"sqi"` // 0..100 по каналам
}

// QualityGate решает, можно ли доверять пакету измерений.
// Мусор в скользящем среднем отравляет его на всё окно, поэтому
// сомнительные пакеты в стабилизатор не пускаем.
type QualityGate struct {
	sqiThreshold float64
}

// NewQualityGate создает гейт с порогом SQI (0 = порог по умолчанию)
func NewQualityGate(sqiThreshold float64) *QualityGate {
	if sqiThreshold <= 0 {
		sqiThreshold = DefaultSQIThreshold
	}
	return &QualityGate{sqiThreshold: sqiThreshold}
}

// Threshold текущий порог SQI
func (g *QualityGate) Threshold() float64 {
	return g.sqiThreshold
}

// Admit возвращает true, если пакет пригоден для стабилизации:
// есть контакт с кожей, ни один канал не отвалился и SQI каждого
// канала не ниже порога. Решение чистое, историю не изменяет.
func (g *QualityGate) Admit(state QualityState) (bool, RejectReason) {
	if !state.SensorContacted {
		return false, RejectNoContact
	}

	for _, off := range state.LeadOff {
		if off {
			return false, RejectLeadOff
		}
	}

	for _, sqi := range state.SQI {
		if sqi < g.sqiThreshold {
			return false, RejectLowSQI
		}
	}

	return true, RejectNone
}
