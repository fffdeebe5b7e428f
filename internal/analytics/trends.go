package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/pkg/utils"
)

// TrendCalculator отвечает за расчет трендов сессии по окнам
type TrendCalculator struct {
	fs float64 // частота дискретизации, для биосигналов 1 Гц
}

// NewTrendCalculator создает новый калькулятор трендов
func NewTrendCalculator(fs float64) *TrendCalculator {
	return &TrendCalculator{fs: fs}
}

// MetricTrend статистика одной метрики в окне
type MetricTrend struct {
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	IQR        float64 `json:"iqr"`
	RMSSD      float64 `json:"rmssd"`
	BelowLen   float64 `json:"below_len"`   // секунды ниже клинического диапазона
	AboveLen   float64 `json:"above_len"`   // секунды выше клинического диапазона
	EpisodeCnt int     `json:"episode_cnt"` // устойчивые выходы за диапазон
}

// CalculateMetricTrend вычисляет статистику метрики относительно диапазона
func CalculateMetricTrend(values []float64, bounds ranges.NormalRange, fs float64) MetricTrend {
	return MetricTrend{
		Mean:       utils.Mean(values),
		Std:        utils.Std(values),
		Min:        utils.Min(values),
		Max:        utils.Max(values),
		IQR:        utils.IQR(values),
		RMSSD:      calculateRMSSD(values),
		BelowLen:   calculateRunLength(values, fs, func(v float64) bool { return v < bounds.Min }),
		AboveLen:   calculateRunLength(values, fs, func(v float64) bool { return v > bounds.Max }),
		EpisodeCnt: calculateEpisodeCnt(values, bounds, fs),
	}
}

// calculateRMSSD вычисляет RMSSD (Root Mean Square of Successive Differences)
func calculateRMSSD(values []float64) float64 {
	if len(values) <= 1 {
		return math.NaN()
	}

	diff := utils.Diff(values)
	if len(diff) == 0 {
		return math.NaN()
	}

	sumSquares := 0.0
	for _, d := range diff {
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(len(diff)))
}

// calculateRunLength вычисляет суммарную длительность состояний
func calculateRunLength(data []float64, fs float64, condition func(float64) bool) float64 {
	total := 0.0
	run := 0.0

	for _, v := range data {
		if condition(v) {
			run += 1.0
		} else {
			total += run
			run = 0.0
		}
	}

	if run > 0 {
		total += run
	}

	return total / fs // конвертируем в секунды
}

// calculateEpisodeCnt вычисляет количество устойчивых выходов за диапазон
// длительностью не меньше 10 секунд
func calculateEpisodeCnt(values []float64, bounds ranges.NormalRange, fs float64) int {
	if len(values) == 0 {
		return 0
	}

	minLen := int(10 * fs)
	outside := func(v float64) bool {
		return v < bounds.Min || v > bounds.Max
	}

	count := 0
	run := 0

	for _, v := range values {
		if outside(v) {
			run++
		} else {
			if run >= minLen {
				count++
			}
			run = 0
		}
	}

	if run >= minLen {
		count++
	}

	return count
}

// Calculate вычисляет тренды всех метрик для заданного окна
func (tc *TrendCalculator) Calculate(series map[string][]float64, windowSec int) map[string]float64 {
	windowSize := int(float64(windowSec) * tc.fs)

	trends := make(map[string]float64)
	prefix := fmt.Sprintf("t_%ds_", windowSec)

	for _, metric := range sortedMetricNames(series) {
		bounds, known := ranges.BaseRange(metric)
		if !known {
			continue
		}

		window := tc.getLastWindow(series[metric], windowSize)
		mt := CalculateMetricTrend(window, bounds, tc.fs)

		key := prefix + metric
		trends[key+"_mean"] = utils.SafeFloat(mt.Mean)
		trends[key+"_std"] = utils.SafeFloat(mt.Std)
		trends[key+"_min"] = utils.SafeFloat(mt.Min)
		trends[key+"_max"] = utils.SafeFloat(mt.Max)
		trends[key+"_iqr"] = utils.SafeFloat(mt.IQR)
		trends[key+"_rmssd"] = utils.SafeFloat(mt.RMSSD)
		trends[key+"_below_len"] = utils.SafeFloat(mt.BelowLen)
		trends[key+"_above_len"] = utils.SafeFloat(mt.AboveLen)
		trends[key+"_episode_cnt"] = utils.SafeFloat(float64(mt.EpisodeCnt))
	}

	// Связь стресса с пульсом внутри окна
	stress := tc.getLastWindow(series[ranges.MetricStressIndex], windowSize)
	heart := tc.getLastWindow(series[ranges.MetricHeartRate], windowSize)
	coupling := CalculateCouplingFeatures(stress, heart, tc.fs, 60.0)
	trends[prefix+"stress_hr_coupling"] = utils.SafeFloat(coupling.MaxAbs)
	trends[prefix+"stress_hr_lag"] = utils.SafeFloat(coupling.Lag)

	return trends
}

// getLastWindow возвращает последние N точек из массива
func (tc *TrendCalculator) getLastWindow(data []float64, windowSize int) []float64 {
	if len(data) <= windowSize {
		return data
	}
	return data[len(data)-windowSize:]
}

// CalculateAllTrends вычисляет тренды для всех доступных окон
func (tc *TrendCalculator) CalculateAllTrends(series map[string][]float64, duration int) map[string]float64 {
	trends := make(map[string]float64)
	windows := []int{240, 600, 900}

	for _, window := range windows {
		if duration >= window {
			windowTrends := tc.Calculate(series, window)
			for k, v := range windowTrends {
				trends[k] = v
			}
		}
	}

	return trends
}

// GetAvailableWindows возвращает список доступных окон на основе длительности данных
func (tc *TrendCalculator) GetAvailableWindows(duration int) []string {
	var windows []string

	if duration >= 240 {
		windows = append(windows, "240s")
	}
	if duration >= 600 {
		windows = append(windows, "600s")
	}
	if duration >= 900 {
		windows = append(windows, "900s")
	}

	return windows
}

func sortedMetricNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
