package cache

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKeyShapes(t *testing.T) {
	require.Equal(t, "mb:latest:LINKBAND-001", latestKey("LINKBAND-001"))
	require.Equal(t, "mb:series:LINKBAND-001:heartRate", seriesKey("LINKBAND-001", "heartRate"))
}

func TestSeriesPointCompactJSON(t *testing.T) {
	data, err := json.Marshal(SeriesPoint{T: 1700000000000, V: 72.5, Status: "normal"})
	require.NoError(t, err)
	require.JSONEq(t, `{"t":1700000000000,"v":72.5,"status":"normal"}`, string(data))

	// Status is omitted when empty to keep ring entries small
	data, err = json.Marshal(SeriesPoint{T: 1, V: 2})
	require.NoError(t, err)
	require.JSONEq(t, `{"t":1,"v":2}`, string(data))
}
