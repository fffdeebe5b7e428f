package handlers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/metrics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
)

// sessionCounters счетчики качества активной сессии
type sessionCounters struct {
	admitted int64
	rejected int64
}

// SessionManager управляет жизненным циклом сессий мониторинга
type SessionManager struct {
	db             *gorm.DB
	activeSessions map[string]*models.MonitoringSession
	counters       map[uuid.UUID]*sessionCounters
	sessionsLock   sync.RWMutex
	dataBuffer     *DataBuffer

	// Callbacks для уведомления о событиях сессий
	onSessionStart func(session *models.MonitoringSession)
	onSessionStop  func(session *models.MonitoringSession)
}

// NewSessionManager создает новый менеджер сессий
func NewSessionManager(db *gorm.DB, dataBuffer *DataBuffer) *SessionManager {
	manager := &SessionManager{
		db:             db,
		activeSessions: make(map[string]*models.MonitoringSession),
		counters:       make(map[uuid.UUID]*sessionCounters),
		dataBuffer:     dataBuffer,
	}

	log.Println("Session Manager инициализирован")
	return manager
}

// SetCallbacks устанавливает колбэки для событий сессий
func (sm *SessionManager) SetCallbacks(onStart, onStop func(session *models.MonitoringSession)) {
	sm.onSessionStart = onStart
	sm.onSessionStop = onStop
}

// StartSession создает и запускает новую сессию мониторинга
func (sm *SessionManager) StartSession(cardID uuid.UUID, deviceID string, info ranges.PersonalInfo) (*models.MonitoringSession, error) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	// Проверяем, нет ли уже активной сессии для этого устройства
	if existing := sm.activeSessions[deviceID]; existing != nil {
		return nil, fmt.Errorf("активная сессия уже существует для устройства %s", deviceID)
	}

	// Засеваем пустые ряды для всех известных метрик, чтобы
	// jsonb_set при записи точек всегда находил путь
	metricData := make(models.MetricSeriesMap, len(ranges.KnownMetrics()))
	for _, metric := range ranges.KnownMetrics() {
		metricData[metric] = models.MetricSeries{
			Points:   []models.MetricPoint{},
			Count:    0,
			LastTime: 0,
		}
	}

	session := &models.MonitoringSession{
		ID:         uuid.New(),
		CardID:     cardID,
		DeviceID:   deviceID,
		StartTime:  time.Now().UTC(),
		Age:        info.Age,
		Gender:     string(info.Gender),
		Occupation: info.Occupation,
		MetricData: metricData,
	}

	// Сохраняем в БД
	if err := sm.db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("не удалось создать сессию в БД: %w", err)
	}

	sm.activeSessions[deviceID] = session
	sm.counters[session.ID] = &sessionCounters{}
	metrics.ActiveSessions.Set(float64(len(sm.activeSessions)))

	// Уведомляем о начале сессии
	if sm.onSessionStart != nil {
		sm.onSessionStart(session)
	}

	log.Printf("Запущена сессия %s для устройства %s, карта %s",
		session.ID.String(), deviceID, cardID.String())

	return session, nil
}

// StopSession завершает активную сессию
func (sm *SessionManager) StopSession(sessionID uuid.UUID) (*models.MonitoringSession, error) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	// Ищем активную сессию
	var targetDeviceID string
	var targetSession *models.MonitoringSession

	for deviceID, session := range sm.activeSessions {
		if session.ID == sessionID {
			targetDeviceID = deviceID
			targetSession = session
			break
		}
	}

	if targetSession == nil {
		return nil, fmt.Errorf("активная сессия %s не найдена", sessionID.String())
	}

	now := time.Now().UTC()
	targetSession.EndTime = &now

	updates := map[string]interface{}{"end_time": now}
	if counters := sm.counters[sessionID]; counters != nil {
		targetSession.AdmittedCount = counters.admitted
		targetSession.RejectedCount = counters.rejected
		updates["admitted_count"] = counters.admitted
		updates["rejected_count"] = counters.rejected
	}

	// Обновляем в БД
	if err := sm.db.Model(targetSession).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("не удалось обновить сессию в БД: %w", err)
	}

	delete(sm.activeSessions, targetDeviceID)
	delete(sm.counters, sessionID)
	metrics.ActiveSessions.Set(float64(len(sm.activeSessions)))

	// Очищаем буфер данных для этой сессии
	sm.dataBuffer.RemoveSessionBuffer(sessionID)

	// Уведомляем о завершении сессии
	if sm.onSessionStop != nil {
		sm.onSessionStop(targetSession)
	}

	log.Printf("✅ Завершена сессия %s для устройства %s", sessionID.String(), targetDeviceID)
	return targetSession, nil
}

// CountGateDecision учитывает решение контроля качества в счетчиках сессии
func (sm *SessionManager) CountGateDecision(sessionID uuid.UUID, admitted bool) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	counters := sm.counters[sessionID]
	if counters == nil {
		return
	}
	if admitted {
		counters.admitted++
	} else {
		counters.rejected++
	}
}

// GetActiveSession возвращает активную сессию для устройства
func (sm *SessionManager) GetActiveSession(deviceID string) *models.MonitoringSession {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return sm.activeSessions[deviceID]
}

// GetAllActiveSessions возвращает все активные сессии
func (sm *SessionManager) GetAllActiveSessions() []*models.MonitoringSession {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()

	sessions := make([]*models.MonitoringSession, 0, len(sm.activeSessions))
	for _, session := range sm.activeSessions {
		sessions = append(sessions, session)
	}

	return sessions
}

// GetActiveSessionCount возвращает количество активных сессий
func (sm *SessionManager) GetActiveSessionCount() int {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return len(sm.activeSessions)
}

// GetSession получает сессию из БД по ID
func (sm *SessionManager) GetSession(sessionID uuid.UUID) (*models.MonitoringSession, error) {
	var session models.MonitoringSession
	if err := sm.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionsByCardID получает все сессии для медицинской карты
func (sm *SessionManager) GetSessionsByCardID(cardID uuid.UUID) ([]*models.MonitoringSession, error) {
	var sessions []*models.MonitoringSession
	if err := sm.db.Where("card_id = ?", cardID).
		Order("start_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetAllDevices возвращает список всех устройств из БД
func (sm *SessionManager) GetAllDevices() []string {
	var devices []string
	sm.db.Model(&models.MonitoringSession{}).
		Distinct("device_id").
		Pluck("device_id", &devices)
	return devices
}

// GetSessionStatistics возвращает статистику сессий
func (sm *SessionManager) GetSessionStatistics() map[string]interface{} {
	stats := make(map[string]interface{})

	// Активные сессии
	activeSessions := sm.GetAllActiveSessions()
	stats["active_sessions_count"] = len(activeSessions)

	// Статистика по устройствам
	deviceStats := make(map[string]interface{})
	for _, session := range activeSessions {
		duration := time.Since(session.StartTime).Seconds()
		deviceStats[session.DeviceID] = map[string]interface{}{
			"session_id": session.ID.String(),
			"start_time": session.StartTime,
			"duration":   duration,
			"card_id":    session.CardID.String(),
		}
	}
	stats["devices"] = deviceStats

	// Общее количество сессий в БД
	var totalSessions int64
	sm.db.Model(&models.MonitoringSession{}).Count(&totalSessions)
	stats["total_sessions"] = totalSessions

	return stats
}

// CleanupInactiveSessions проверяет и очищает зависшие сессии
func (sm *SessionManager) CleanupInactiveSessions() {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	var sessionsToRemove []string
	threshold := time.Now().Add(-24 * time.Hour)

	for deviceID, session := range sm.activeSessions {
		if session.StartTime.Before(threshold) {
			now := time.Now().UTC()
			session.EndTime = &now
			sm.db.Model(session).Update("end_time", now)

			sessionsToRemove = append(sessionsToRemove, deviceID)
			log.Printf("Принудительно завершена зависшая сессия: %s", session.ID.String())
		}
	}

	// Удаляем зависшие сессии
	for _, deviceID := range sessionsToRemove {
		session := sm.activeSessions[deviceID]
		delete(sm.activeSessions, deviceID)
		if session != nil {
			delete(sm.counters, session.ID)
		}
	}
	metrics.ActiveSessions.Set(float64(len(sm.activeSessions)))

	if len(sessionsToRemove) > 0 {
		log.Printf("Очищено %d зависших сессий", len(sessionsToRemove))
	}
}
