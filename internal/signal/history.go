package signal

import "math"

// Sample одно измерение метрики (время в миллисекундах unix)
type Sample struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// MetricHistory ограниченная FIFO-история измерений одной метрики.
// Историей владеет стабилизатор; мутация только на шаге приёма.
type MetricHistory struct {
	samples  []Sample
	capacity int
}

// NewMetricHistory создает историю с заданной ёмкостью окна
func NewMetricHistory(capacity int) *MetricHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &MetricHistory{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

// Append добавляет измерение, вытесняя самое старое при переполнении
func (h *MetricHistory) Append(s Sample) {
	if len(h.samples) >= h.capacity {
		// Сдвигаем окно
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, s)
}

// Len текущее количество измерений в окне
func (h *MetricHistory) Len() int {
	return len(h.samples)
}

// Capacity ёмкость окна
func (h *MetricHistory) Capacity() int {
	return h.capacity
}

// Latest возвращает последнее измерение
func (h *MetricHistory) Latest() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Values возвращает копию значений окна в порядке поступления
func (h *MetricHistory) Values() []float64 {
	out := make([]float64, len(h.samples))
	for i, s := range h.samples {
		out[i] = s.Value
	}
	return out
}

// Mean среднее по текущему окну (невзвешенное)
func (h *MetricHistory) Mean() float64 {
	if len(h.samples) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, s := range h.samples {
		sum += s.Value
	}
	return sum / float64(len(h.samples))
}
