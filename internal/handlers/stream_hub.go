package handlers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/metrics"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

// StreamFilter фильтр подписки клиента
type StreamFilter struct {
	DeviceIDs []string
	Metrics   []string
}

// streamClient один подписчик живого потока
type streamClient struct {
	ch     chan models.MetricUpdate
	filter StreamFilter
}

// StreamHub рассылает обработанные значения метрик подписчикам
type StreamHub struct {
	subscribers map[string]*streamClient
	mu          sync.RWMutex
}

// NewStreamHub создание нового хаба
func NewStreamHub() *StreamHub {
	return &StreamHub{
		subscribers: make(map[string]*streamClient),
	}
}

// Subscribe регистрирует клиента и возвращает его канал
func (h *StreamHub) Subscribe(filter StreamFilter) (string, <-chan models.MetricUpdate) {
	clientID := fmt.Sprintf("client_%d", time.Now().UnixNano())
	log.Printf("🌊 Новый стриминг клиент: %s, устройства: %v, метрики: %v",
		clientID, filter.DeviceIDs, filter.Metrics)

	clientChan := make(chan models.MetricUpdate, 1000)

	h.mu.Lock()
	h.subscribers[clientID] = &streamClient{ch: clientChan, filter: filter}
	metrics.StreamClients.Set(float64(len(h.subscribers)))
	h.mu.Unlock()

	return clientID, clientChan
}

// Unsubscribe снимает подписку и закрывает канал клиента
func (h *StreamHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.subscribers[clientID]; ok {
		delete(h.subscribers, clientID)
		close(client.ch)
		metrics.StreamClients.Set(float64(len(h.subscribers)))
		log.Printf("🔌 Клиент отключен: %s", clientID)
	}
}

// shouldSend проверяет, нужно ли отправлять значение клиенту
func shouldSend(update models.MetricUpdate, filter StreamFilter) bool {
	// Проверка устройства
	if len(filter.DeviceIDs) > 0 {
		found := false
		for _, deviceID := range filter.DeviceIDs {
			if update.DeviceID == deviceID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Проверка метрики
	if len(filter.Metrics) > 0 {
		found := false
		for _, metric := range filter.Metrics {
			if update.Metric == metric {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Broadcast рассылка значения всем подходящим подписчикам
func (h *StreamHub) Broadcast(update models.MetricUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for clientID, client := range h.subscribers {
		if !shouldSend(update, client.filter) {
			continue
		}

		select {
		case client.ch <- update:
			// Данные отправлены
		default:
			// Канал заполнен, пропускаем
			log.Printf("⚠️ Канал клиента %s переполнен, пропускаем данные", clientID)
		}
	}
}

// SubscriberCount количество подключенных клиентов
func (h *StreamHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
