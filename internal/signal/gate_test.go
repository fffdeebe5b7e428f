package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func goodQuality() QualityState {
	return QualityState{
		SensorContacted: true,
		LeadOff:         map[string]bool{"ch1": false, "ch2": false},
		SQI:             map[string]float64{"ch1": 95, "ch2": 88},
	}
}

func TestQualityGateAdmitsCleanBatch(t *testing.T) {
	gate := NewQualityGate(80)

	ok, reason := gate.Admit(goodQuality())
	require.True(t, ok)
	require.Equal(t, RejectNone, reason)
}

func TestQualityGateRejectsWithoutContact(t *testing.T) {
	gate := NewQualityGate(80)

	state := goodQuality()
	state.SensorContacted = false

	ok, reason := gate.Admit(state)
	require.False(t, ok)
	require.Equal(t, RejectNoContact, reason)
}

func TestQualityGateRejectsLeadOff(t *testing.T) {
	gate := NewQualityGate(80)

	state := goodQuality()
	state.LeadOff["ch2"] = true

	ok, reason := gate.Admit(state)
	require.False(t, ok)
	require.Equal(t, RejectLeadOff, reason)
}

func TestQualityGateRejectsLowSQI(t *testing.T) {
	gate := NewQualityGate(80)

	state := goodQuality()
	state.SQI["ch1"] = 79.9

	ok, reason := gate.Admit(state)
	require.False(t, ok)
	require.Equal(t, RejectLowSQI, reason)
}

func TestQualityGateSQIThresholdInclusive(t *testing.T) {
	gate := NewQualityGate(80)

	state := goodQuality()
	state.SQI["ch1"] = 80.0
	state.SQI["ch2"] = 80.0

	// SQI exactly at the threshold is still trustworthy
	ok, _ := gate.Admit(state)
	require.True(t, ok)
}

func TestQualityGateDefaultThreshold(t *testing.T) {
	gate := NewQualityGate(0)
	require.Equal(t, DefaultSQIThreshold, gate.Threshold())
}

func TestQualityGateDoesNotMutateState(t *testing.T) {
	gate := NewQualityGate(80)
	state := goodQuality()

	gate.Admit(state)
	gate.Admit(state)

	require.Equal(t, goodQuality(), state)
}
