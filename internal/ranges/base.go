package ranges

import (
	"fmt"
	"sort"
)

// Имена метрик, поступающих от устройства (EEG-индексы + PPG)
const (
	MetricHeartRate          = "heartRate"
	MetricFocusIndex         = "focusIndex"
	MetricRelaxationIndex    = "relaxationIndex"
	MetricStressIndex        = "stressIndex"
	MetricTotalPower         = "totalPower"
	MetricHemisphericBalance = "hemisphericBalance"
	MetricCognitiveLoad      = "cognitiveLoad"
	MetricEmotionalStability = "emotionalStability"
)

// NormalRange клинический диапазон нормы для метрики.
// Базовые диапазоны - статическая таблица ниже, единственный источник
// числовых границ; описательные тексты гайдов их не кодируют.
type NormalRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Unit        string  `json:"unit"`
	Label       string  `json:"label"` // форматированная строка "min-max"
	LowLabel    string  `json:"low_label"`
	NormalLabel string  `json:"normal_label"`
	HighLabel   string  `json:"high_label"`
}

// baseRanges базовые диапазоны нормы по метрикам
var baseRanges = map[string]NormalRange{
	MetricHeartRate: {
		Min: 60, Max: 100, Unit: "уд/мин",
		LowLabel:    "Пульс ниже нормы (брадикардия)",
		NormalLabel: "Пульс в пределах нормы",
		HighLabel:   "Пульс выше нормы (тахикардия)",
	},
	MetricFocusIndex: {
		Min: 30, Max: 70, Unit: "балл",
		LowLabel:    "Сниженная концентрация внимания",
		NormalLabel: "Нормальный уровень концентрации",
		HighLabel:   "Избыточное напряжение внимания",
	},
	MetricRelaxationIndex: {
		Min: 30, Max: 70, Unit: "балл",
		LowLabel:    "Недостаточное расслабление",
		NormalLabel: "Нормальный уровень расслабления",
		HighLabel:   "Избыточное расслабление, сонливость",
	},
	MetricStressIndex: {
		Min: 20, Max: 60, Unit: "балл",
		LowLabel:    "Низкий уровень стресса",
		NormalLabel: "Умеренный уровень стресса",
		HighLabel:   "Повышенный уровень стресса",
	},
	MetricTotalPower: {
		Min: 10, Max: 50, Unit: "мкВ²",
		LowLabel:    "Сниженная общая активность мозга",
		NormalLabel: "Нормальная общая активность мозга",
		HighLabel:   "Повышенная общая активность мозга",
	},
	MetricHemisphericBalance: {
		Min: -0.2, Max: 0.2, Unit: "",
		LowLabel:    "Доминирование правого полушария",
		NormalLabel: "Сбалансированная активность полушарий",
		HighLabel:   "Доминирование левого полушария",
	},
	MetricCognitiveLoad: {
		Min: 20, Max: 70, Unit: "балл",
		LowLabel:    "Низкая когнитивная нагрузка",
		NormalLabel: "Нормальная когнитивная нагрузка",
		HighLabel:   "Перегрузка рабочей памяти",
	},
	MetricEmotionalStability: {
		Min: 40, Max: 80, Unit: "балл",
		LowLabel:    "Эмоциональная неустойчивость",
		NormalLabel: "Устойчивое эмоциональное состояние",
		HighLabel:   "Повышенный эмоциональный контроль",
	},
}

func init() {
	// Проставляем форматированные лейблы базовой таблице
	for name, r := range baseRanges {
		r.Label = formatRangeLabel(r.Min, r.Max)
		baseRanges[name] = r
	}
}

// BaseRange возвращает базовый диапазон метрики.
// Для неизвестной метрики ok=false: вызывающий пропускает классификацию,
// это не ошибка.
func BaseRange(metric string) (NormalRange, bool) {
	r, ok := baseRanges[metric]
	return r, ok
}

// IsKnownMetric известна ли метрика таблице диапазонов
func IsKnownMetric(metric string) bool {
	_, ok := baseRanges[metric]
	return ok
}

// KnownMetrics отсортированный список известных метрик
func KnownMetrics() []string {
	out := make([]string, 0, len(baseRanges))
	for name := range baseRanges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func formatRangeLabel(min, max float64) string {
	return fmt.Sprintf("%g-%g", min, max)
}
