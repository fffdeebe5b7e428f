package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStabilizerRawFallbackBelowThreshold(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 10)

	// First 9 admitted samples: not enough history, display the raw value
	for i := 0; i < 9; i++ {
		display := s.Ingest("focusIndex", int64(i), 2.0, true)
		require.Equal(t, 2.0, display, "below threshold the raw value passes through")
	}
	require.Equal(t, 9, s.HistoryLen("focusIndex"))
	require.Equal(t, 2.0, s.DisplayValue("focusIndex"))
}

func TestStabilizerWindowAverage(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 10)

	// 9 samples of 2.0 then 6 samples of 3.0
	ts := int64(0)
	for i := 0; i < 9; i++ {
		s.Ingest("focusIndex", ts, 2.0, true)
		ts++
	}

	// 10th sample fills the window: mean of [2.0 x9, 3.0]
	display := s.Ingest("focusIndex", ts, 3.0, true)
	ts++
	require.InDelta(t, 2.1, display, 1e-9)

	for i := 0; i < 5; i++ {
		display = s.Ingest("focusIndex", ts, 3.0, true)
		ts++
	}

	// Window now holds the last 10 ingested values: 4x2.0 + 6x3.0
	require.InDelta(t, 2.6, display, 1e-9)
	require.InDelta(t, 2.6, s.DisplayValue("focusIndex"), 1e-9)
	require.Equal(t, 10, s.HistoryLen("focusIndex"))
}

func TestStabilizerRejectedSamplesBypassHistory(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 3)

	s.Ingest("stressIndex", 1, 40, true)
	s.Ingest("stressIndex", 2, 42, true)

	// A rejected sample is displayed raw but never enters the window
	display := s.Ingest("stressIndex", 3, 95, false)
	require.Equal(t, 95.0, display)
	require.Equal(t, 2, s.HistoryLen("stressIndex"))

	// The next admitted sample reaches the threshold; the artifact is absent from the mean
	display = s.Ingest("stressIndex", 4, 44, true)
	require.InDelta(t, 42.0, display, 1e-9)
}

func TestStabilizerIndependentMetrics(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 2)

	s.Ingest("focusIndex", 1, 10, true)
	s.Ingest("relaxationIndex", 1, 50, true)
	s.Ingest("focusIndex", 2, 20, true)

	require.Equal(t, 2, s.HistoryLen("focusIndex"))
	require.Equal(t, 1, s.HistoryLen("relaxationIndex"))
	require.InDelta(t, 15.0, s.DisplayValue("focusIndex"), 1e-9)
	require.Equal(t, 50.0, s.DisplayValue("relaxationIndex"))
}

func TestStabilizerUnknownMetricIsNaN(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 10)
	require.True(t, math.IsNaN(s.DisplayValue("hemisphericBalance")))
}

func TestStabilizerReset(t *testing.T) {
	s := NewMovingAverageStabilizer(10, 2)

	s.Ingest("focusIndex", 1, 10, true)
	s.Ingest("focusIndex", 2, 20, true)
	require.Equal(t, 2, s.HistoryLen("focusIndex"))

	s.Reset()
	require.Equal(t, 0, s.HistoryLen("focusIndex"))
	require.True(t, math.IsNaN(s.DisplayValue("focusIndex")))
}

func TestStabilizerCapacityNeverBelowThreshold(t *testing.T) {
	s := NewMovingAverageStabilizer(5, 10)

	// Window grows to the threshold, so stabilization is reachable
	for i := 0; i < 10; i++ {
		s.Ingest("focusIndex", int64(i), 1.0, true)
	}
	require.Equal(t, 10, s.HistoryLen("focusIndex"))
	require.InDelta(t, 1.0, s.DisplayValue("focusIndex"), 1e-9)
}
