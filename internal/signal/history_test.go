package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricHistoryBoundedCapacity(t *testing.T) {
	h := NewMetricHistory(10)

	for i := 0; i < 25; i++ {
		h.Append(Sample{Timestamp: int64(i), Value: float64(i)})
		require.LessOrEqual(t, h.Len(), 10, "history must never exceed capacity")
	}

	require.Equal(t, 10, h.Len())

	// Oldest entries evicted FIFO: window holds values 15..24
	values := h.Values()
	require.Equal(t, 15.0, values[0])
	require.Equal(t, 24.0, values[len(values)-1])
}

func TestMetricHistoryLatest(t *testing.T) {
	h := NewMetricHistory(5)

	_, ok := h.Latest()
	require.False(t, ok, "empty history has no latest sample")

	h.Append(Sample{Timestamp: 1, Value: 42.5})
	h.Append(Sample{Timestamp: 2, Value: 43.5})

	last, ok := h.Latest()
	require.True(t, ok)
	require.Equal(t, int64(2), last.Timestamp)
	require.Equal(t, 43.5, last.Value)
}

func TestMetricHistoryMean(t *testing.T) {
	h := NewMetricHistory(4)

	require.True(t, math.IsNaN(h.Mean()), "mean of empty history is NaN")

	for _, v := range []float64{1, 2, 3, 4} {
		h.Append(Sample{Value: v})
	}
	require.InDelta(t, 2.5, h.Mean(), 1e-9)

	// Eviction shifts the window, mean follows
	h.Append(Sample{Value: 5})
	require.InDelta(t, 3.5, h.Mean(), 1e-9)
}

func TestMetricHistoryMinimumCapacity(t *testing.T) {
	h := NewMetricHistory(0)
	require.Equal(t, 1, h.Capacity())

	h.Append(Sample{Value: 1})
	h.Append(Sample{Value: 2})
	require.Equal(t, 1, h.Len())
}
