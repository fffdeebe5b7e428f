package signal

import "math"

const (
	// DefaultWindowCapacity ёмкость окна истории на метрику
	DefaultWindowCapacity = 10
	// DefaultStabilizationThreshold сколько принятых измерений нужно,
	// чтобы начать показывать сглаженное значение вместо сырого
	DefaultStabilizationThreshold = 10
)

// MovingAverageStabilizer сглаживает метрики скользящим средним.
// У каждой метрики своя независимая история; общих буферов нет.
// Единственный писатель - воркер пайплайна, внешняя синхронизация
// на совести вызывающего.
type MovingAverageStabilizer struct {
	histories map[string]*MetricHistory
	lastRaw   map[string]float64
	capacity  int
	threshold int
}

// NewMovingAverageStabilizer создает стабилизатор.
// capacity/threshold <= 0 заменяются значениями по умолчанию;
// окно не может быть меньше порога стабилизации.
func NewMovingAverageStabilizer(capacity, threshold int) *MovingAverageStabilizer {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	if threshold <= 0 {
		threshold = DefaultStabilizationThreshold
	}
	if capacity < threshold {
		capacity = threshold
	}

	return &MovingAverageStabilizer{
		histories: make(map[string]*MetricHistory),
		lastRaw:   make(map[string]float64),
		capacity:  capacity,
		threshold: threshold,
	}
}

// Ingest принимает очередное значение метрики и возвращает отображаемое.
// Непринятые значения показываются как есть, но историю не трогают:
// история растёт только на принятых измерениях.
func (s *MovingAverageStabilizer) Ingest(metric string, ts int64, value float64, admitted bool) float64 {
	s.lastRaw[metric] = value

	if !admitted {
		return value
	}

	h := s.history(metric)
	h.Append(Sample{Timestamp: ts, Value: value})

	if h.Len() >= s.threshold {
		return h.Mean()
	}
	return value
}

// DisplayValue отображаемое значение метрики без приёма нового измерения:
// среднее по окну после накопления порога, иначе последнее сырое значение.
// Для незнакомой метрики возвращает NaN (классификатор покажет "идет измерение").
func (s *MovingAverageStabilizer) DisplayValue(metric string) float64 {
	if h, ok := s.histories[metric]; ok && h.Len() >= s.threshold {
		return h.Mean()
	}
	if raw, ok := s.lastRaw[metric]; ok {
		return raw
	}
	return math.NaN()
}

// HistoryLen длина истории метрики
func (s *MovingAverageStabilizer) HistoryLen(metric string) int {
	if h, ok := s.histories[metric]; ok {
		return h.Len()
	}
	return 0
}

// Window копия значений текущего окна метрики
func (s *MovingAverageStabilizer) Window(metric string) []float64 {
	if h, ok := s.histories[metric]; ok {
		return h.Values()
	}
	return nil
}

// Metrics список метрик, по которым накоплена история
func (s *MovingAverageStabilizer) Metrics() []string {
	out := make([]string, 0, len(s.histories))
	for name := range s.histories {
		out = append(out, name)
	}
	return out
}

// Reset сбрасывает все истории (вызывается при остановке сессии)
func (s *MovingAverageStabilizer) Reset() {
	s.histories = make(map[string]*MetricHistory)
	s.lastRaw = make(map[string]float64)
}

func (s *MovingAverageStabilizer) history(metric string) *MetricHistory {
	h, ok := s.histories[metric]
	if !ok {
		h = NewMetricHistory(s.capacity)
		s.histories[metric] = h
	}
	return h
}
