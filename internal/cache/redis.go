// Package cache хранит горячие значения метрик устройств в Redis
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

const (
	// LatestKeyPrefix префикс хеша последних значений устройства
	LatestKeyPrefix = "mb:latest:"
	// SeriesKeyPrefix префикс списка точек по метрике устройства
	SeriesKeyPrefix = "mb:series:"
	// SeriesMaxIndex храним последние 1000 точек на метрику
	SeriesMaxIndex = 999
	// LatestTTL время жизни хеша последних значений
	LatestTTL = 1 * time.Hour
	// SeriesTTL время жизни рядов точек
	SeriesTTL = 1 * time.Hour
)

// SeriesPoint точка ряда в кэше
type SeriesPoint struct {
	T      int64   `json:"t"` // unix миллисекунды
	V      float64 `json:"v"` // отображаемое значение
	Status string  `json:"status,omitempty"`
}

// RedisCache реализует кэширование в Redis
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache создает новое подключение к Redis
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx := context.Background()

	// Проверяем подключение
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ctx:    ctx,
	}, nil
}

func latestKey(deviceID string) string {
	return LatestKeyPrefix + deviceID
}

func seriesKey(deviceID, metric string) string {
	return SeriesKeyPrefix + deviceID + ":" + metric
}

// CacheUpdate сохраняет обработанное значение метрики: обновляет хеш
// последних значений устройства и дописывает точку в ряд метрики
func (r *RedisCache) CacheUpdate(u models.MetricUpdate) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать значение метрики: %w", err)
	}

	point, err := json.Marshal(SeriesPoint{T: u.Timestamp, V: u.Display, Status: u.Status})
	if err != nil {
		return fmt.Errorf("не удалось сериализовать точку ряда: %w", err)
	}

	lk := latestKey(u.DeviceID)
	sk := seriesKey(u.DeviceID, u.Metric)

	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, lk, u.Metric, data)
	pipe.Expire(r.ctx, lk, LatestTTL)
	pipe.LPush(r.ctx, sk, point)
	pipe.LTrim(r.ctx, sk, 0, SeriesMaxIndex)
	pipe.Expire(r.ctx, sk, SeriesTTL)

	if _, err = pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("не удалось закэшировать значение метрики: %w", err)
	}

	return nil
}

// GetLatest возвращает последние значения всех метрик устройства
func (r *RedisCache) GetLatest(deviceID string) (map[string]models.MetricUpdate, error) {
	raw, err := r.client.HGetAll(r.ctx, latestKey(deviceID)).Result()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить последние значения: %w", err)
	}

	latest := make(map[string]models.MetricUpdate, len(raw))
	for metric, data := range raw {
		var u models.MetricUpdate
		if err := json.Unmarshal([]byte(data), &u); err != nil {
			continue
		}
		latest[metric] = u
	}

	return latest, nil
}

// GetSeries возвращает последние count точек метрики устройства,
// от новых к старым
func (r *RedisCache) GetSeries(deviceID, metric string, count int64) ([]SeriesPoint, error) {
	if count <= 0 || count > SeriesMaxIndex+1 {
		count = SeriesMaxIndex + 1
	}

	data, err := r.client.LRange(r.ctx, seriesKey(deviceID, metric), 0, count-1).Result()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить ряд точек: %w", err)
	}

	points := make([]SeriesPoint, 0, len(data))
	for _, d := range data {
		var p SeriesPoint
		if err := json.Unmarshal([]byte(d), &p); err != nil {
			continue
		}
		points = append(points, p)
	}

	return points, nil
}

// ResetDevice удаляет кэш устройства; список метрик передает вызывающий
func (r *RedisCache) ResetDevice(deviceID string, metrics []string) error {
	keys := make([]string, 0, len(metrics)+1)
	keys = append(keys, latestKey(deviceID))
	for _, metric := range metrics {
		keys = append(keys, seriesKey(deviceID, metric))
	}

	if err := r.client.Del(r.ctx, keys...).Err(); err != nil {
		return fmt.Errorf("не удалось очистить кэш устройства: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func (r *RedisCache) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// Close закрывает соединение
func (r *RedisCache) Close() error {
	return r.client.Close()
}
