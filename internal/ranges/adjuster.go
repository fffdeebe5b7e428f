package ranges

// Gender пол пользователя
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// PersonalInfo данные пользователя для персонализации диапазонов.
// Заполняется вызывающим, только чтение.
type PersonalInfo struct {
	Age        int    `json:"age" example:"25"`
	Gender     Gender `json:"gender" example:"female"`
	Occupation string `json:"occupation" example:"nurse"`
}

// AgeBracket возрастная группа
type AgeBracket string

const (
	AgeUnder18 AgeBracket = "under-18"
	AgeAdult   AgeBracket = "18-39"
	AgeMiddle  AgeBracket = "40-59"
	AgeSenior  AgeBracket = "60+"
)

// BracketForAge сопоставляет возраст группе
func BracketForAge(age int) AgeBracket {
	switch {
	case age < 18:
		return AgeUnder18
	case age < 40:
		return AgeAdult
	case age < 60:
		return AgeMiddle
	default:
		return AgeSenior
	}
}

// RangeShift элементарная корректировка границ диапазона.
// Нулевой масштаб трактуется как 1.0, чтобы пустая структура
// означала отсутствие корректировки.
type RangeShift struct {
	MinAdd   float64
	MaxAdd   float64
	MinScale float64
	MaxScale float64
}

// AdjustmentPolicy таблицы корректировок по возрасту, полу и профессии.
// Константы эвристические, без клинического источника: это настраиваемые
// параметры политики, а не медицинская истина (подлежат ревизии экспертом).
type AdjustmentPolicy struct {
	Age        map[AgeBracket]map[string]RangeShift
	Gender     map[Gender]map[string]RangeShift
	Occupation map[OccupationCategory]map[string]RangeShift
}

// DefaultAdjustmentPolicy политика корректировок по умолчанию
func DefaultAdjustmentPolicy() AdjustmentPolicy {
	return AdjustmentPolicy{
		Age: map[AgeBracket]map[string]RangeShift{
			AgeUnder18: {
				MetricHeartRate:   {MaxAdd: 10},
				MetricStressIndex: {MaxAdd: 5},
			},
			AgeMiddle: {
				MetricTotalPower:         {MinScale: 0.9},
				MetricEmotionalStability: {MinAdd: -5},
			},
			AgeSenior: {
				MetricHeartRate:     {MinAdd: -5},
				MetricTotalPower:    {MinScale: 0.8, MaxScale: 0.9},
				MetricCognitiveLoad: {MaxAdd: -5},
			},
		},
		Gender: map[Gender]map[string]RangeShift{
			GenderFemale: {
				MetricHeartRate: {MinAdd: 5, MaxAdd: 5},
			},
			GenderMale: {
				MetricHeartRate: {MinAdd: -2, MaxAdd: -2},
			},
		},
		Occupation: map[OccupationCategory]map[string]RangeShift{
			OccupationHighStress: {
				MetricStressIndex:        {MaxScale: 1.15},
				MetricHeartRate:          {MaxAdd: 5},
				MetricEmotionalStability: {MinAdd: -5},
			},
			OccupationCognitive: {
				// Когнитивные профессии: диапазон внимания шире в обе стороны
				MetricFocusIndex:    {MinScale: 0.9, MaxScale: 1.1},
				MetricCognitiveLoad: {MaxScale: 1.1},
			},
			OccupationPhysical: {
				MetricHeartRate:  {MinAdd: -5},
				MetricTotalPower: {MaxScale: 1.1},
			},
			OccupationLowStress: {
				MetricStressIndex: {MaxScale: 0.9},
			},
		},
	}
}

// Adjust строит индивидуальный диапазон из базового.
// Порядок фиксирован: возраст, затем пол, затем профессия - каждая
// корректировка работает с результатом предыдущей. После корректировки
// лейбл диапазона пересобирается.
func (p AdjustmentPolicy) Adjust(base NormalRange, info PersonalInfo, metric string) NormalRange {
	r := base

	if shifts, ok := p.Age[BracketForAge(info.Age)]; ok {
		r = applyShift(r, shifts[metric])
	}
	if shifts, ok := p.Gender[info.Gender]; ok {
		r = applyShift(r, shifts[metric])
	}
	if shifts, ok := p.Occupation[CategorizeOccupation(info.Occupation)]; ok {
		r = applyShift(r, shifts[metric])
	}

	r.Label = formatRangeLabel(r.Min, r.Max)
	return r
}

func applyShift(r NormalRange, s RangeShift) NormalRange {
	minScale := s.MinScale
	if minScale == 0 {
		minScale = 1
	}
	maxScale := s.MaxScale
	if maxScale == 0 {
		maxScale = 1
	}

	r.Min = r.Min*minScale + s.MinAdd
	r.Max = r.Max*maxScale + s.MaxAdd

	// Корректировка не имеет права инвертировать границы
	if r.Min > r.Max {
		r.Min = r.Max
	}
	return r
}

// RangeService сервис диапазонов: базовая таблица + политика корректировок.
// Один экземпляр на процесс, внедряется зависимостью.
type RangeService struct {
	policy AdjustmentPolicy
}

// NewRangeService создает сервис с заданной политикой
func NewRangeService(policy AdjustmentPolicy) *RangeService {
	return &RangeService{policy: policy}
}

// Base базовый диапазон метрики
func (s *RangeService) Base(metric string) (NormalRange, bool) {
	return BaseRange(metric)
}

// Personalized индивидуальный диапазон метрики.
// info == nil означает отсутствие профиля: возвращается базовый диапазон.
// Для неизвестной метрики ok=false.
func (s *RangeService) Personalized(metric string, info *PersonalInfo) (NormalRange, bool) {
	base, ok := BaseRange(metric)
	if !ok {
		return NormalRange{}, false
	}
	if info == nil {
		return base, true
	}
	return s.policy.Adjust(base, *info, metric), true
}

// Classify классифицирует значение метрики по индивидуальному диапазону.
// Для неизвестной метрики ok=false: клинической интерпретации нет.
func (s *RangeService) Classify(metric string, value float64, info *PersonalInfo) (Classification, bool) {
	r, ok := s.Personalized(metric, info)
	if !ok {
		return Classification{}, false
	}
	return Classify(value, r), true
}
