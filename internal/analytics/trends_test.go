package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
)

func heartRateBounds(t *testing.T) ranges.NormalRange {
	t.Helper()
	bounds, ok := ranges.BaseRange(ranges.MetricHeartRate)
	require.True(t, ok)
	return bounds
}

func TestMetricTrendSteadySignal(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 70
	}

	mt := CalculateMetricTrend(values, heartRateBounds(t), 1.0)

	require.Equal(t, 70.0, mt.Mean)
	require.Equal(t, 0.0, mt.Std)
	require.Equal(t, 70.0, mt.Min)
	require.Equal(t, 70.0, mt.Max)
	require.Equal(t, 0.0, mt.RMSSD)
	require.Equal(t, 0.0, mt.BelowLen)
	require.Equal(t, 0.0, mt.AboveLen)
	require.Equal(t, 0, mt.EpisodeCnt)
}

func TestMetricTrendSustainedExcursion(t *testing.T) {
	// 30s in range, 20s below it, 10s back in range
	values := make([]float64, 0, 60)
	for i := 0; i < 30; i++ {
		values = append(values, 75)
	}
	for i := 0; i < 20; i++ {
		values = append(values, 52)
	}
	for i := 0; i < 10; i++ {
		values = append(values, 80)
	}

	mt := CalculateMetricTrend(values, heartRateBounds(t), 1.0)

	require.Equal(t, 20.0, mt.BelowLen)
	require.Equal(t, 0.0, mt.AboveLen)
	require.Equal(t, 1, mt.EpisodeCnt, "a 20s excursion is a sustained episode")
}

func TestMetricTrendShortExcursionNotAnEpisode(t *testing.T) {
	values := make([]float64, 0, 40)
	for i := 0; i < 20; i++ {
		values = append(values, 75)
	}
	for i := 0; i < 5; i++ {
		values = append(values, 120)
	}
	for i := 0; i < 15; i++ {
		values = append(values, 75)
	}

	mt := CalculateMetricTrend(values, heartRateBounds(t), 1.0)

	require.Equal(t, 5.0, mt.AboveLen)
	require.Equal(t, 0, mt.EpisodeCnt, "excursions under 10s do not count")
}

func TestRMSSD(t *testing.T) {
	// Alternating +-1 steps give successive differences of exactly 1
	values := []float64{70, 71, 70, 71, 70, 71}
	require.InDelta(t, 1.0, calculateRMSSD(values), 1e-9)

	require.True(t, math.IsNaN(calculateRMSSD([]float64{70})))
	require.True(t, math.IsNaN(calculateRMSSD(nil)))
}

func buildSessionSeries(n int) map[string][]float64 {
	series := map[string][]float64{
		ranges.MetricHeartRate:   make([]float64, n),
		ranges.MetricStressIndex: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		series[ranges.MetricHeartRate][i] = 70 + 5*math.Sin(float64(i)*0.1)
		series[ranges.MetricStressIndex][i] = 40 + 10*math.Sin(float64(i)*0.1)
	}
	return series
}

func TestCalculateWindowKeys(t *testing.T) {
	tc := NewTrendCalculator(1.0)
	series := buildSessionSeries(300)
	series["mysteryMetric"] = []float64{1, 2, 3}

	trends := tc.Calculate(series, 240)

	require.Contains(t, trends, "t_240s_heartRate_mean")
	require.Contains(t, trends, "t_240s_heartRate_rmssd")
	require.Contains(t, trends, "t_240s_stressIndex_episode_cnt")
	require.Contains(t, trends, "t_240s_stress_hr_coupling")
	require.Contains(t, trends, "t_240s_stress_hr_lag")

	// Metrics without a clinical range are skipped
	require.NotContains(t, trends, "t_240s_mysteryMetric_mean")

	require.InDelta(t, 70.0, trends["t_240s_heartRate_mean"], 1.0)
}

func TestCalculateAllTrendsWindowSelection(t *testing.T) {
	tc := NewTrendCalculator(1.0)

	trends := tc.CalculateAllTrends(buildSessionSeries(250), 250)
	require.Contains(t, trends, "t_240s_heartRate_mean")
	require.NotContains(t, trends, "t_600s_heartRate_mean")

	trends = tc.CalculateAllTrends(buildSessionSeries(950), 950)
	require.Contains(t, trends, "t_240s_heartRate_mean")
	require.Contains(t, trends, "t_600s_heartRate_mean")
	require.Contains(t, trends, "t_900s_heartRate_mean")

	trends = tc.CalculateAllTrends(buildSessionSeries(100), 100)
	require.Empty(t, trends)
}

func TestGetAvailableWindows(t *testing.T) {
	tc := NewTrendCalculator(1.0)

	require.Empty(t, tc.GetAvailableWindows(100))
	require.Equal(t, []string{"240s"}, tc.GetAvailableWindows(240))
	require.Equal(t, []string{"240s", "600s"}, tc.GetAvailableWindows(700))
	require.Equal(t, []string{"240s", "600s", "900s"}, tc.GetAvailableWindows(1200))
}
