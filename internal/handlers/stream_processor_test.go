package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/signal"
)

// bareProcessor builds a processor with only the ingestion channel wired,
// so no background workers consume what the tests enqueue.
func bareProcessor(channelCap int) *StreamProcessor {
	return &StreamProcessor{
		batchChannel: make(chan *models.BiosignalBatch, channelCap),
	}
}

func validBatchPayload(t *testing.T, deviceID string, ts int64) []byte {
	t.Helper()

	batch := models.BiosignalBatch{
		DeviceID:  deviceID,
		Timestamp: ts,
		Metrics:   map[string]float64{"heartRate": 72},
		Quality: models.QualitySnapshot{
			SensorContacted: true,
			SQI:             map[string]float64{"FP1": 95, "FP2": 93},
		},
	}
	payload, err := json.Marshal(batch)
	require.NoError(t, err)
	return payload
}

func TestHandleIncomingMQTTAcceptsBatchTopic(t *testing.T) {
	p := bareProcessor(4)

	p.HandleIncomingMQTT("biosignal/LINKBAND-001/batch", validBatchPayload(t, "LINKBAND-001", 1700000000000))

	require.Len(t, p.batchChannel, 1)
	batch := <-p.batchChannel
	require.Equal(t, "LINKBAND-001", batch.DeviceID)
	require.Equal(t, int64(1700000000000), batch.Timestamp)
	require.Equal(t, 72.0, batch.Metrics["heartRate"])
}

func TestHandleIncomingMQTTRejectsForeignTopics(t *testing.T) {
	p := bareProcessor(4)
	payload := validBatchPayload(t, "LINKBAND-001", 1700000000000)

	for _, topic := range []string{
		"biosignal/LINKBAND-001",             // too short
		"biosignal/LINKBAND-001/batch/extra", // too long
		"telemetry/LINKBAND-001/batch",       // wrong prefix
		"biosignal/LINKBAND-001/status",      // wrong suffix
		"",
	} {
		p.HandleIncomingMQTT(topic, payload)
	}

	require.Empty(t, p.batchChannel)
}

func TestHandleIncomingMQTTRejectsMalformedPayload(t *testing.T) {
	p := bareProcessor(4)

	p.HandleIncomingMQTT("biosignal/LINKBAND-001/batch", []byte("{not json"))

	require.Empty(t, p.batchChannel)
}

func TestHandleIncomingMQTTFillsDeviceIDFromTopic(t *testing.T) {
	p := bareProcessor(4)
	payload, err := json.Marshal(models.BiosignalBatch{
		Metrics: map[string]float64{"heartRate": 70},
	})
	require.NoError(t, err)

	before := time.Now().UnixMilli()
	p.HandleIncomingMQTT("biosignal/LINKBAND-777/batch", payload)

	require.Len(t, p.batchChannel, 1)
	batch := <-p.batchChannel
	require.Equal(t, "LINKBAND-777", batch.DeviceID)
	// Missing timestamp falls back to the receive time.
	require.GreaterOrEqual(t, batch.Timestamp, before)
	require.LessOrEqual(t, batch.Timestamp, time.Now().UnixMilli())
}

func TestHandleIncomingMQTTDropsWhenChannelFull(t *testing.T) {
	p := bareProcessor(1)
	payload := validBatchPayload(t, "LINKBAND-001", 1700000000000)

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.HandleIncomingMQTT("biosignal/LINKBAND-001/batch", payload)
		p.HandleIncomingMQTT("biosignal/LINKBAND-001/batch", payload)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("HandleIncomingMQTT blocked on a full channel")
	}
	require.Len(t, p.batchChannel, 1)
}

func TestStabilizerForReusesPerDevice(t *testing.T) {
	p := &StreamProcessor{
		stabilizers: make(map[string]*signal.MovingAverageStabilizer),
		historyCap:  10,
		windowSize:  10,
	}

	first := p.stabilizerFor("LINKBAND-001")
	second := p.stabilizerFor("LINKBAND-001")
	other := p.stabilizerFor("LINKBAND-002")

	require.Same(t, first, second)
	require.NotSame(t, first, other)
}

func TestPersonalInfoForEmptySession(t *testing.T) {
	session := &models.MonitoringSession{}
	require.Nil(t, personalInfoFor(session))
}

func TestPersonalInfoForPopulatedSession(t *testing.T) {
	session := &models.MonitoringSession{
		Age:        34,
		Gender:     "female",
		Occupation: "nurse",
	}

	info := personalInfoFor(session)
	require.NotNil(t, info)
	require.Equal(t, 34, info.Age)
	require.Equal(t, ranges.GenderFemale, info.Gender)
	require.Equal(t, "nurse", info.Occupation)
}

func TestSortedBatchMetricsIsDeterministic(t *testing.T) {
	values := map[string]float64{
		"stressIndex": 40,
		"heartRate":   72,
		"focusIndex":  55,
	}

	require.Equal(t, []string{"focusIndex", "heartRate", "stressIndex"}, sortedBatchMetrics(values))
}
