package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sineSeries(n int, period float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	return values
}

func TestCouplingEmptySeries(t *testing.T) {
	cf := CalculateCouplingFeatures(nil, []float64{1, 2, 3}, 1.0, 10)
	require.True(t, math.IsNaN(cf.MaxAbs))
	require.True(t, math.IsNaN(cf.Lag))
}

func TestCouplingFlatSeries(t *testing.T) {
	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 42
	}

	cf := CalculateCouplingFeatures(flat, sineSeries(60, 20), 1.0, 10)
	require.True(t, math.IsNaN(cf.MaxAbs))
	require.True(t, math.IsNaN(cf.Lag))
}

func TestCouplingIdenticalSeries(t *testing.T) {
	// Period is kept well above the lag window so no alias competes with lag 0.
	a := sineSeries(120, 40)

	cf := CalculateCouplingFeatures(a, a, 1.0, 10)
	require.InDelta(t, 1.0, cf.MaxAbs, 0.02)
	require.Equal(t, 0.0, cf.Lag)
}

func TestCouplingShiftedSeries(t *testing.T) {
	a := sineSeries(120, 40)
	// b runs three samples ahead of a: b[i] == a[i+3]
	b := a[3:]

	cf := CalculateCouplingFeatures(a, b, 1.0, 10)
	require.InDelta(t, 1.0, cf.MaxAbs, 0.05)
	require.InDelta(t, 3.0, cf.Lag, 0.01)
}

func TestCouplingDelayedSeries(t *testing.T) {
	a := sineSeries(120, 40)
	// b repeats a three samples later: b[i] == a[i-3]
	b := make([]float64, len(a))
	for i := range b {
		if i < 3 {
			b[i] = a[0]
		} else {
			b[i] = a[i-3]
		}
	}

	cf := CalculateCouplingFeatures(a, b, 1.0, 10)
	require.InDelta(t, 1.0, cf.MaxAbs, 0.05)
	require.InDelta(t, -3.0, cf.Lag, 0.01)
}

func TestCouplingInvertedSeries(t *testing.T) {
	a := sineSeries(120, 40)
	b := make([]float64, len(a))
	for i, v := range a {
		b[i] = -v
	}

	// The strongest link is reported by magnitude, sign is discarded.
	cf := CalculateCouplingFeatures(a, b, 1.0, 10)
	require.InDelta(t, 1.0, cf.MaxAbs, 0.02)
	require.Equal(t, 0.0, cf.Lag)
}

func TestCouplingTooShortForAnyLag(t *testing.T) {
	// Four samples can never satisfy the five-second overlap minimum.
	a := []float64{1, 2, 3, 4}
	b := []float64{4, 3, 2, 1}

	cf := CalculateCouplingFeatures(a, b, 1.0, 10)
	require.True(t, math.IsNaN(cf.MaxAbs))
	require.True(t, math.IsNaN(cf.Lag))
}
