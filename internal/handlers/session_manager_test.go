package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
)

// seedActiveSession registers a session in the manager's in-memory state,
// bypassing the database write that StartSession would perform.
func seedActiveSession(sm *SessionManager, deviceID string) *models.MonitoringSession {
	session := &models.MonitoringSession{
		ID:        uuid.New(),
		CardID:    uuid.New(),
		DeviceID:  deviceID,
		StartTime: time.Now().UTC(),
	}
	sm.sessionsLock.Lock()
	sm.activeSessions[deviceID] = session
	sm.counters[session.ID] = &sessionCounters{}
	sm.sessionsLock.Unlock()
	return session
}

func TestStartSessionRejectsDuplicateDevice(t *testing.T) {
	sm := NewSessionManager(nil, nil)
	seedActiveSession(sm, "LINKBAND-001")

	// The duplicate check fires before any database access.
	_, err := sm.StartSession(uuid.New(), "LINKBAND-001", ranges.PersonalInfo{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "LINKBAND-001")
}

func TestGetActiveSessionByDevice(t *testing.T) {
	sm := NewSessionManager(nil, nil)
	session := seedActiveSession(sm, "LINKBAND-001")

	require.Same(t, session, sm.GetActiveSession("LINKBAND-001"))
	require.Nil(t, sm.GetActiveSession("LINKBAND-002"))
}

func TestGetAllActiveSessionsAndCount(t *testing.T) {
	sm := NewSessionManager(nil, nil)
	require.Zero(t, sm.GetActiveSessionCount())
	require.Empty(t, sm.GetAllActiveSessions())

	first := seedActiveSession(sm, "LINKBAND-001")
	second := seedActiveSession(sm, "LINKBAND-002")

	require.Equal(t, 2, sm.GetActiveSessionCount())
	require.ElementsMatch(t,
		[]*models.MonitoringSession{first, second},
		sm.GetAllActiveSessions())
}

func TestCountGateDecision(t *testing.T) {
	sm := NewSessionManager(nil, nil)
	session := seedActiveSession(sm, "LINKBAND-001")

	sm.CountGateDecision(session.ID, true)
	sm.CountGateDecision(session.ID, true)
	sm.CountGateDecision(session.ID, false)

	sm.sessionsLock.RLock()
	counters := sm.counters[session.ID]
	sm.sessionsLock.RUnlock()
	require.Equal(t, int64(2), counters.admitted)
	require.Equal(t, int64(1), counters.rejected)
}

func TestCountGateDecisionIgnoresUnknownSession(t *testing.T) {
	sm := NewSessionManager(nil, nil)

	// A decision for a session that was never started must not create state.
	sm.CountGateDecision(uuid.New(), true)

	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	require.Empty(t, sm.counters)
}
