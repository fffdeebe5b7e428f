package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newIdleBuffer returns a buffer whose thresholds are high enough that
// no test below ever triggers a database write.
func newIdleBuffer() *DataBuffer {
	return NewDataBuffer(nil, 100000, time.Hour)
}

func bufferedPoints(db *DataBuffer, sessionID uuid.UUID, metric string) int {
	db.mu.RLock()
	sessionBuffer, exists := db.sessionBuffers[sessionID]
	db.mu.RUnlock()
	if !exists {
		return 0
	}
	sessionBuffer.mu.Lock()
	defer sessionBuffer.mu.Unlock()
	return len(sessionBuffer.Buffers[metric])
}

func TestAddDataPointBuffersKnownMetric(t *testing.T) {
	buffer := newIdleBuffer()
	sessionID := uuid.New()

	buffer.AddDataPoint(sessionID, "heartRate", 72.4, 1.0)
	buffer.AddDataPoint(sessionID, "heartRate", 73.1, 2.0)
	buffer.AddDataPoint(sessionID, "stressIndex", 41.0, 2.0)

	require.Equal(t, 2, bufferedPoints(buffer, sessionID, "heartRate"))
	require.Equal(t, 1, bufferedPoints(buffer, sessionID, "stressIndex"))
}

func TestAddDataPointDropsUnknownMetric(t *testing.T) {
	buffer := newIdleBuffer()
	sessionID := uuid.New()

	// Metric names end up inside a jsonb path, so anything outside the
	// range table must be dropped before it reaches the query builder.
	buffer.AddDataPoint(sessionID, "heartRate'; DROP TABLE mb_monitoring_sessions;--", 72.4, 1.0)
	buffer.AddDataPoint(sessionID, "unknownMetric", 1.0, 1.0)

	buffer.mu.RLock()
	_, exists := buffer.sessionBuffers[sessionID]
	buffer.mu.RUnlock()
	require.False(t, exists, "unknown metrics must not create session buffers")
}

func TestAddDataPointSeparatesSessions(t *testing.T) {
	buffer := newIdleBuffer()
	first := uuid.New()
	second := uuid.New()

	buffer.AddDataPoint(first, "heartRate", 70, 1.0)
	buffer.AddDataPoint(second, "heartRate", 80, 1.0)

	require.Equal(t, 1, bufferedPoints(buffer, first, "heartRate"))
	require.Equal(t, 1, bufferedPoints(buffer, second, "heartRate"))
}

func TestPointsKeepArrivalOrder(t *testing.T) {
	buffer := newIdleBuffer()
	sessionID := uuid.New()

	for i := 0; i < 5; i++ {
		buffer.AddDataPoint(sessionID, "heartRate", 70+float64(i), float64(i))
	}

	buffer.mu.RLock()
	sessionBuffer := buffer.sessionBuffers[sessionID]
	buffer.mu.RUnlock()

	sessionBuffer.mu.Lock()
	defer sessionBuffer.mu.Unlock()
	points := sessionBuffer.Buffers["heartRate"]
	require.Len(t, points, 5)
	for i, point := range points {
		require.Equal(t, float64(i), point.T)
		require.Equal(t, 70+float64(i), point.V)
	}
}
