package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

func makeUpdate(deviceID, metric string, value float64) models.MetricUpdate {
	return models.MetricUpdate{
		DeviceID:  deviceID,
		Metric:    metric,
		Timestamp: time.Now().UnixMilli(),
		Raw:       value,
		Display:   value,
		Admitted:  true,
		Status:    "normal",
	}
}

// tryReceive reads one update without blocking the test on an empty channel.
func tryReceive(t *testing.T, ch <-chan models.MetricUpdate) (models.MetricUpdate, bool) {
	t.Helper()
	select {
	case update, ok := <-ch:
		return update, ok
	case <-time.After(100 * time.Millisecond):
		return models.MetricUpdate{}, false
	}
}

func TestSubscribeAndBroadcast(t *testing.T) {
	hub := NewStreamHub()

	clientID, ch := hub.Subscribe(StreamFilter{})
	require.NotEmpty(t, clientID)
	require.Equal(t, 1, hub.SubscriberCount())

	sent := makeUpdate("LINKBAND-001", "heartRate", 72.5)
	hub.Broadcast(sent)

	received, ok := tryReceive(t, ch)
	require.True(t, ok, "subscriber should receive the broadcast")
	require.Equal(t, sent, received)
}

func TestBroadcastDeviceFilter(t *testing.T) {
	hub := NewStreamHub()
	_, ch := hub.Subscribe(StreamFilter{DeviceIDs: []string{"LINKBAND-001"}})

	hub.Broadcast(makeUpdate("LINKBAND-999", "heartRate", 80))
	_, ok := tryReceive(t, ch)
	require.False(t, ok, "update from another device must be filtered out")

	hub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", 72))
	received, ok := tryReceive(t, ch)
	require.True(t, ok)
	require.Equal(t, "LINKBAND-001", received.DeviceID)
}

func TestBroadcastMetricFilter(t *testing.T) {
	hub := NewStreamHub()
	_, ch := hub.Subscribe(StreamFilter{Metrics: []string{"heartRate"}})

	hub.Broadcast(makeUpdate("LINKBAND-001", "stressIndex", 45))
	_, ok := tryReceive(t, ch)
	require.False(t, ok, "non-subscribed metric must be filtered out")

	hub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", 72))
	received, ok := tryReceive(t, ch)
	require.True(t, ok)
	require.Equal(t, "heartRate", received.Metric)
}

func TestShouldSend(t *testing.T) {
	update := makeUpdate("dev-1", "heartRate", 70)

	cases := []struct {
		name   string
		filter StreamFilter
		want   bool
	}{
		{"empty filter passes everything", StreamFilter{}, true},
		{"matching device", StreamFilter{DeviceIDs: []string{"dev-1"}}, true},
		{"other device", StreamFilter{DeviceIDs: []string{"dev-2"}}, false},
		{"matching metric", StreamFilter{Metrics: []string{"heartRate"}}, true},
		{"other metric", StreamFilter{Metrics: []string{"stressIndex"}}, false},
		{"device and metric both match", StreamFilter{DeviceIDs: []string{"dev-1"}, Metrics: []string{"heartRate"}}, true},
		{"device matches but metric does not", StreamFilter{DeviceIDs: []string{"dev-1"}, Metrics: []string{"focusIndex"}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, shouldSend(update, tc.filter))
		})
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewStreamHub()
	clientID, ch := hub.Subscribe(StreamFilter{})

	hub.Unsubscribe(clientID)
	require.Equal(t, 0, hub.SubscriberCount())

	_, open := <-ch
	require.False(t, open, "channel must be closed after unsubscribe")

	// Broadcast to an empty hub must not panic
	hub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", 70))
}

func TestBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewStreamHub()
	_, ch := hub.Subscribe(StreamFilter{})

	// One more update than the channel can hold; the overflow is dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1001; i++ {
			hub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", float64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
	require.Equal(t, 1000, len(ch))
}

func TestMultipleSubscribers(t *testing.T) {
	hub := NewStreamHub()
	_, chAll := hub.Subscribe(StreamFilter{})
	time.Sleep(time.Microsecond) // client IDs derive from the clock
	_, chFiltered := hub.Subscribe(StreamFilter{Metrics: []string{"stressIndex"}})

	require.Equal(t, 2, hub.SubscriberCount())

	hub.Broadcast(makeUpdate("LINKBAND-001", "heartRate", 72))

	_, ok := tryReceive(t, chAll)
	require.True(t, ok, "unfiltered subscriber receives every update")
	_, ok = tryReceive(t, chFiltered)
	require.False(t, ok, "filtered subscriber skips other metrics")
}
