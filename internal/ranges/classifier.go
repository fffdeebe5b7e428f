package ranges

import "math"

// Status результат классификации значения относительно диапазона нормы
type Status string

const (
	StatusLow       Status = "low"
	StatusNormal    Status = "normal"
	StatusHigh      Status = "high"
	StatusMeasuring Status = "measuring"
)

// MeasuringLabel нейтральная интерпретация на время накопления данных
const MeasuringLabel = "Идет измерение, недостаточно данных"

// Classification статус значения и его клиническая интерпретация
type Classification struct {
	Status         Status `json:"status"`
	Interpretation string `json:"interpretation"`
}

// Classify сопоставляет значение диапазону нормы. Границы включительны:
// значение на min или max считается нормой. NaN и бесконечности легальны
// во время прогрева (например, межполушарный баланс) и дают нейтральный
// статус measuring вместо ложной классификации нуля.
func Classify(value float64, r NormalRange) Classification {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Classification{Status: StatusMeasuring, Interpretation: MeasuringLabel}
	}

	switch {
	case value < r.Min:
		return Classification{Status: StatusLow, Interpretation: r.LowLabel}
	case value > r.Max:
		return Classification{Status: StatusHigh, Interpretation: r.HighLabel}
	default:
		return Classification{Status: StatusNormal, Interpretation: r.NormalLabel}
	}
}
