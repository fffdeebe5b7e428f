package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/metrics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
)

// DataBuffer управляет буферизацией точек метрик для записи в БД
type DataBuffer struct {
	db             *gorm.DB
	sessionBuffers map[uuid.UUID]*SessionDataBuffer
	flushPoints    int
	flushAfter     time.Duration
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}

// SessionDataBuffer буфер для одной сессии, точки сгруппированы по метрикам
type SessionDataBuffer struct {
	SessionID uuid.UUID
	Buffers   map[string][]models.MetricPoint
	LastFlush time.Time
	mu        sync.Mutex
}

// NewDataBuffer создает новый буфер данных
func NewDataBuffer(db *gorm.DB, flushPoints int, flushAfter time.Duration) *DataBuffer {
	if flushPoints <= 0 {
		flushPoints = 100
	}
	if flushAfter <= 0 {
		flushAfter = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	buffer := &DataBuffer{
		db:             db,
		sessionBuffers: make(map[uuid.UUID]*SessionDataBuffer),
		flushPoints:    flushPoints,
		flushAfter:     flushAfter,
		ctx:            ctx,
		cancel:         cancel,
	}

	// Запуск автофлаша
	buffer.wg.Add(1)
	go buffer.autoFlushWorker()

	log.Println("Data Buffer инициализирован")
	return buffer
}

// AddDataPoint добавляет точку метрики в буфер.
// Имя метрики попадает в jsonb-путь запроса, поэтому пишем только
// метрики из таблицы диапазонов.
func (db *DataBuffer) AddDataPoint(sessionID uuid.UUID, metric string, value, timeSec float64) {
	if !ranges.IsKnownMetric(metric) {
		return
	}

	db.mu.RLock()
	sessionBuffer, exists := db.sessionBuffers[sessionID]
	db.mu.RUnlock()

	if !exists {
		db.mu.Lock()
		if sessionBuffer, exists = db.sessionBuffers[sessionID]; !exists {
			sessionBuffer = &SessionDataBuffer{
				SessionID: sessionID,
				Buffers:   make(map[string][]models.MetricPoint),
				LastFlush: time.Now(),
			}
			db.sessionBuffers[sessionID] = sessionBuffer
		}
		db.mu.Unlock()
	}

	sessionBuffer.mu.Lock()
	defer sessionBuffer.mu.Unlock()

	point := models.MetricPoint{
		T: timeSec,
		V: value,
	}
	sessionBuffer.Buffers[metric] = append(sessionBuffer.Buffers[metric], point)

	totalPoints := 0
	for _, points := range sessionBuffer.Buffers {
		totalPoints += len(points)
	}
	timeSinceFlush := time.Since(sessionBuffer.LastFlush)

	if totalPoints >= db.flushPoints || timeSinceFlush > db.flushAfter {
		go db.flushSessionAsync(sessionID)
	}
}

// FlushAll флашит все буферы
func (db *DataBuffer) FlushAll() {
	db.mu.RLock()
	var sessionIDs []uuid.UUID
	for sessionID := range db.sessionBuffers {
		sessionIDs = append(sessionIDs, sessionID)
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionIDs {
		db.flushSessionAsync(sessionID)
	}
}

// flushSessionAsync асинхронно флашит буфер сессии
func (db *DataBuffer) flushSessionAsync(sessionID uuid.UUID) {
	db.mu.RLock()
	sessionBuffer, exists := db.sessionBuffers[sessionID]
	db.mu.RUnlock()

	if !exists {
		return
	}

	sessionBuffer.mu.Lock()

	// Забираем накопленные точки
	flushed := make(map[string][]models.MetricPoint, len(sessionBuffer.Buffers))
	total := 0
	for metric, points := range sessionBuffer.Buffers {
		if len(points) == 0 {
			continue
		}
		copied := make([]models.MetricPoint, len(points))
		copy(copied, points)
		flushed[metric] = copied
		total += len(points)
		sessionBuffer.Buffers[metric] = points[:0]
	}
	sessionBuffer.LastFlush = time.Now()

	sessionBuffer.mu.Unlock()

	if total == 0 {
		return
	}

	start := time.Now()
	if err := db.writeToDatabase(sessionID, flushed); err != nil {
		log.Printf("❌ Ошибка записи в БД для сессии %s: %v", sessionID, err)
		return
	}

	metrics.PointsFlushed.Add(float64(total))
	metrics.FlushDuration.Observe(time.Since(start).Seconds())
	log.Printf("💾 Записано в БД: сессия %s, %d точек по %d метрикам",
		sessionID, total, len(flushed))
}

// writeToDatabase дописывает точки в jsonb ряды одним запросом.
// Для каждой метрики выражение наращивает points, count и last_time,
// внешние jsonb_set оборачивают внутренние.
func (db *DataBuffer) writeToDatabase(sessionID uuid.UUID, flushed map[string][]models.MetricPoint) error {
	metricNames := make([]string, 0, len(flushed))
	for metric := range flushed {
		// Повторная проверка: только известные имена попадают в путь
		if !ranges.IsKnownMetric(metric) {
			continue
		}
		metricNames = append(metricNames, metric)
	}
	sort.Strings(metricNames)

	if len(metricNames) == 0 {
		return nil
	}

	expr := "COALESCE(metric_data, '{}'::jsonb)"
	var args []interface{}

	for _, metric := range metricNames {
		points := flushed[metric]
		pointsJSON, err := json.Marshal(points)
		if err != nil {
			return fmt.Errorf("не удалось сериализовать точки метрики %s: %w", metric, err)
		}
		lastTimeStr := strconv.FormatFloat(points[len(points)-1].T, 'f', -1, 64)

		expr = fmt.Sprintf(`jsonb_set(
  jsonb_set(
    jsonb_set(%s,
      '{%s,points}', COALESCE(metric_data->'%s'->'points','[]'::jsonb)||?::jsonb),
    '{%s,count}', (COALESCE((metric_data->'%s'->>'count')::int,0)+?)::text::jsonb),
  '{%s,last_time}', ?::text::jsonb)`,
			expr, metric, metric, metric, metric, metric)
		args = append(args, string(pointsJSON), len(points), lastTimeStr)
	}

	return db.db.Model(&models.MonitoringSession{}).
		Where("id = ?", sessionID).
		Update("metric_data", gorm.Expr(expr, args...)).Error
}

// RemoveSessionBuffer удаляет буфер завершенной сессии
func (db *DataBuffer) RemoveSessionBuffer(sessionID uuid.UUID) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.sessionBuffers[sessionID]; exists {
		// Финальный флаш перед удалением
		go db.flushSessionAsync(sessionID)
		delete(db.sessionBuffers, sessionID)
		log.Printf("Удален буфер сессии: %s", sessionID)
	}
}

// autoFlushWorker периодически флашит старые буферы
func (db *DataBuffer) autoFlushWorker() {
	defer db.wg.Done()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			db.flushOldBuffers()
		case <-db.ctx.Done():
			db.finalFlush()
			log.Println("Auto flush worker остановлен")
			return
		}
	}
}

// flushOldBuffers флашит буферы, которые давно не флашились
func (db *DataBuffer) flushOldBuffers() {
	db.mu.RLock()
	var sessionsToFlush []uuid.UUID

	for sessionID, sessionBuffer := range db.sessionBuffers {
		if time.Since(sessionBuffer.LastFlush) > db.flushAfter/2 {
			sessionsToFlush = append(sessionsToFlush, sessionID)
		}
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionsToFlush {
		go db.flushSessionAsync(sessionID)
	}
}

// finalFlush финальный флаш при остановке
func (db *DataBuffer) finalFlush() {
	log.Println("🔄 Финальный флаш буферов...")

	db.mu.RLock()
	var sessionIDs []uuid.UUID
	for sessionID := range db.sessionBuffers {
		sessionIDs = append(sessionIDs, sessionID)
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionIDs {
		db.flushSessionAsync(sessionID)
	}

	// Ждем завершения всех операций
	time.Sleep(2 * time.Second)
	log.Println("Финальный флаш завершен")
}

// Stop останавливает буфер
func (db *DataBuffer) Stop() {
	log.Println("Остановка Data Buffer...")
	db.cancel()
	db.wg.Wait()
	log.Println("Data Buffer остановлен")
}
