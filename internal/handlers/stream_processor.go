package handlers

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/configs"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/cache"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/metrics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/signal"
)

// StreamProcessor обрабатывает потоковые пакеты биосигналов от MQTT
type StreamProcessor struct {
	// Компоненты
	sessionManager *SessionManager
	streamHub      *StreamHub
	dataBuffer     *DataBuffer
	redisCache     *cache.RedisCache
	rangeService   *ranges.RangeService
	gate           *signal.QualityGate

	// Параметры стабилизации
	stabilizers  map[string]*signal.MovingAverageStabilizer
	stabilizerMu sync.Mutex
	historyCap   int
	windowSize   int

	// Каналы для потоковой обработки
	batchChannel  chan *models.BiosignalBatch
	updateChannel chan models.MetricUpdate

	// Управление
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStreamProcessor создает новый процессор потоковых данных
func NewStreamProcessor(
	sessionManager *SessionManager,
	streamHub *StreamHub,
	dataBuffer *DataBuffer,
	redisCache *cache.RedisCache,
	rangeService *ranges.RangeService,
	pipeline configs.PipelineConfig,
) *StreamProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	processor := &StreamProcessor{
		sessionManager: sessionManager,
		streamHub:      streamHub,
		dataBuffer:     dataBuffer,
		redisCache:     redisCache,
		rangeService:   rangeService,
		gate:           signal.NewQualityGate(pipeline.SQIThreshold),
		stabilizers:    make(map[string]*signal.MovingAverageStabilizer),
		historyCap:     pipeline.HistoryCapacity,
		windowSize:     pipeline.StabilizationWindow,
		batchChannel:   make(chan *models.BiosignalBatch, 1000),
		updateChannel:  make(chan models.MetricUpdate, 1000),
		ctx:            ctx,
		cancel:         cancel,
	}

	// Запуск воркеров
	processor.wg.Add(3)
	go processor.batchWorker()     // Обработка пакетов
	go processor.broadcastWorker() // Рассылка и кэш
	go processor.bufferWorker()    // Буферизация

	log.Println("🚀 Stream Processor запущен")
	return processor
}

// HandleIncomingMQTT главный обработчик MQTT сообщений
func (p *StreamProcessor) HandleIncomingMQTT(topic string, payload []byte) {
	// Парсинг топика: biosignal/{deviceID}/batch
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "biosignal" || parts[2] != "batch" {
		log.Printf("⚠️ Неверный формат топика: %s", topic)
		return
	}

	var batch models.BiosignalBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		log.Printf("❌ Ошибка парсинга MQTT payload: %v", err)
		return
	}

	// Заполнение из топика, если не указано
	if batch.DeviceID == "" {
		batch.DeviceID = parts[1]
	}
	if batch.Timestamp == 0 {
		batch.Timestamp = time.Now().UnixMilli()
	}

	// Отправляем в канал для обработки
	select {
	case p.batchChannel <- &batch:
	default:
		log.Printf("⚠️ Канал данных переполнен, пропускаем пакет")
	}
}

// batchWorker обрабатывает входящие пакеты
func (p *StreamProcessor) batchWorker() {
	defer p.wg.Done()

	for {
		select {
		case batch := <-p.batchChannel:
			p.processBatch(batch)
		case <-p.ctx.Done():
			log.Println("🛑 Batch worker остановлен")
			return
		}
	}
}

// processBatch прогоняет пакет через контроль качества, стабилизацию
// и классификацию, затем раздает результат воркерам
func (p *StreamProcessor) processBatch(batch *models.BiosignalBatch) {
	start := time.Now()
	metrics.BatchesReceived.Inc()

	// 1. Проверка активной сессии
	session := p.sessionManager.GetActiveSession(batch.DeviceID)
	if session == nil {
		// Автоматически создаем сессию с дефолтной картой
		cardID := uuid.New()
		var err error
		session, err = p.sessionManager.StartSession(cardID, batch.DeviceID, ranges.PersonalInfo{})
		if err != nil {
			log.Printf("❌ Ошибка создания автосессии для %s: %v", batch.DeviceID, err)
			return
		}
		log.Printf("✅ Автоматически создана сессия для устройства: %s", batch.DeviceID)
	}

	// 2. Решение контроля качества одно на весь пакет
	admitted, reason := p.gate.Admit(signal.QualityState{
		SensorContacted: batch.Quality.SensorContacted,
		LeadOff:         batch.Quality.LeadOff,
		SQI:             batch.Quality.SQI,
	})

	info := personalInfoFor(session)
	stabilizer := p.stabilizerFor(batch.DeviceID)
	timeSec := float64(batch.Timestamp) / 1000.0

	// 3. Метрики пакета обрабатываются в стабильном порядке
	for _, metric := range sortedBatchMetrics(batch.Metrics) {
		value := batch.Metrics[metric]

		display := stabilizer.Ingest(metric, batch.Timestamp, value, admitted)

		update := models.MetricUpdate{
			DeviceID:   batch.DeviceID,
			Metric:     metric,
			Timestamp:  batch.Timestamp,
			Raw:        value,
			Display:    display,
			Stabilized: stabilizer.HistoryLen(metric) >= p.windowSize,
			Admitted:   admitted,
		}
		if !admitted {
			update.RejectReason = string(reason)
		}

		if class, known := p.rangeService.Classify(metric, display, info); known {
			update.Status = string(class.Status)
			update.Interpretation = class.Interpretation
			metrics.Classifications.WithLabelValues(metric, update.Status).Inc()
		}

		metrics.CountGateDecision(admitted, string(reason))
		p.sessionManager.CountGateDecision(session.ID, admitted)

		// 4. Немедленная трансляция подписчикам
		select {
		case p.updateChannel <- update:
		default:
			log.Printf("⚠️ Канал трансляции переполнен для устройства %s", batch.DeviceID)
		}

		// 5. В БД пишем только принятые значения
		if admitted {
			p.dataBuffer.AddDataPoint(session.ID, metric, display, timeSec)
		}
	}

	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
}

// broadcastWorker рассылает обработанные значения и обновляет кэш
func (p *StreamProcessor) broadcastWorker() {
	defer p.wg.Done()

	for {
		select {
		case update := <-p.updateChannel:
			p.streamHub.Broadcast(update)
			if err := p.redisCache.CacheUpdate(update); err != nil {
				log.Printf("⚠️ Кэш недоступен: %v", err)
			}
		case <-p.ctx.Done():
			log.Println("🛑 Broadcast worker остановлен")
			return
		}
	}
}

// bufferWorker периодически флашит буфер в БД
func (p *StreamProcessor) bufferWorker() {
	defer p.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.dataBuffer.FlushAll()
		case <-p.ctx.Done():
			// Финальный флаш
			p.dataBuffer.FlushAll()
			log.Println("🛑 Buffer worker остановлен")
			return
		}
	}
}

// stabilizerFor возвращает стабилизатор устройства, создавая при необходимости
func (p *StreamProcessor) stabilizerFor(deviceID string) *signal.MovingAverageStabilizer {
	p.stabilizerMu.Lock()
	defer p.stabilizerMu.Unlock()

	stabilizer, ok := p.stabilizers[deviceID]
	if !ok {
		stabilizer = signal.NewMovingAverageStabilizer(p.historyCap, p.windowSize)
		p.stabilizers[deviceID] = stabilizer
	}
	return stabilizer
}

// ResetDevice сбрасывает стабилизатор и кэш устройства.
// Вызывается при завершении сессии, чтобы новая начиналась с чистой историей.
func (p *StreamProcessor) ResetDevice(deviceID string) {
	p.stabilizerMu.Lock()
	if stabilizer, ok := p.stabilizers[deviceID]; ok {
		stabilizer.Reset()
	}
	p.stabilizerMu.Unlock()

	if err := p.redisCache.ResetDevice(deviceID, ranges.KnownMetrics()); err != nil {
		log.Printf("⚠️ Не удалось очистить кэш устройства %s: %v", deviceID, err)
	}
}

// personalInfoFor возвращает персональные данные сессии либо nil,
// если при старте они не передавались
func personalInfoFor(session *models.MonitoringSession) *ranges.PersonalInfo {
	if session.Age == 0 && session.Gender == "" && session.Occupation == "" {
		return nil
	}
	return &ranges.PersonalInfo{
		Age:        session.Age,
		Gender:     ranges.Gender(session.Gender),
		Occupation: session.Occupation,
	}
}

func sortedBatchMetrics(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stop останавливает процессор
func (p *StreamProcessor) Stop() {
	log.Println("🛑 Остановка Stream Processor...")
	p.cancel()
	p.wg.Wait()
	close(p.batchChannel)
	close(p.updateChannel)
	log.Println("✅ Stream Processor остановлен")
}
