package ranges

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBoundariesInclusive(t *testing.T) {
	r := NormalRange{
		Min: 60, Max: 100,
		LowLabel: "low hr", NormalLabel: "ok hr", HighLabel: "high hr",
	}

	cases := []struct {
		name   string
		value  float64
		status Status
	}{
		{"below min", 59.9, StatusLow},
		{"exactly min", 60, StatusNormal},
		{"inside", 72, StatusNormal},
		{"exactly max", 100, StatusNormal},
		{"above max", 100.1, StatusHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.value, r)
			require.Equal(t, tc.status, got.Status)
		})
	}
}

func TestClassifyInterpretationLabels(t *testing.T) {
	r := NormalRange{
		Min: 30, Max: 70,
		LowLabel: "too low", NormalLabel: "fine", HighLabel: "too high",
	}

	require.Equal(t, "too low", Classify(10, r).Interpretation)
	require.Equal(t, "fine", Classify(50, r).Interpretation)
	require.Equal(t, "too high", Classify(90, r).Interpretation)
}

func TestClassifyNonFiniteIsMeasuring(t *testing.T) {
	r := NormalRange{Min: -0.2, Max: 0.2}

	// Warm-up values must not be misclassified as meaningful readings
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := Classify(v, r)
		require.Equal(t, StatusMeasuring, got.Status)
		require.Equal(t, MeasuringLabel, got.Interpretation)
	}
}

func TestBaseRangeLookup(t *testing.T) {
	r, ok := BaseRange(MetricHeartRate)
	require.True(t, ok)
	require.Equal(t, 60.0, r.Min)
	require.Equal(t, 100.0, r.Max)
	require.Equal(t, "60-100", r.Label)

	_, ok = BaseRange("unknownMetric")
	require.False(t, ok)
}

func TestKnownMetricsSorted(t *testing.T) {
	metrics := KnownMetrics()
	require.Len(t, metrics, 8)
	for i := 1; i < len(metrics); i++ {
		require.Less(t, metrics[i-1], metrics[i])
	}
	require.True(t, IsKnownMetric(MetricFocusIndex))
	require.False(t, IsKnownMetric("bloodPressure"))
}
