// configs/config.go
package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	MQTT     MQTTConfig
	Redis    RedisConfig
	Pipeline PipelineConfig
	Records  RecordsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

type AppConfig struct {
	Port     string // HTTP_PORT из .env
	LogLevel string
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PipelineConfig пороги конвейера обработки биосигналов
type PipelineConfig struct {
	SQIThreshold         float64 // минимальный индекс качества канала
	StabilizationWindow  int     // сколько значений нужно для скользящего среднего
	HistoryCapacity      int     // емкость окна истории метрики
	BufferFlushPoints    int     // сброс буфера точек в БД при накоплении
	BufferFlushSeconds   int     // ... или по таймауту
	ValidationThreshold  int     // проходной балл валидации отчетов
	ConsistencyTolerance float64 // допуск расхождения общего балла отчета
}

// RecordsConfig внешний сервис медицинских карт
type RecordsConfig struct {
	URL     string // пусто - экспорт выключен
	Timeout int    // секунды
}

// LoadConfig загружает конфигурацию из .env файла
func LoadConfig() *Config {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Println("📦 .env не найден, используем переменные окружения")
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "mb_user"),
			Password: getEnv("DB_PASSWORD", "mb_password"),
			DBName:   getEnv("DB_NAME", "mind_breeze"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "Europe/Moscow"),
		},
		App: AppConfig{
			Port:     getEnv("HTTP_PORT", "8080"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
			ClientID: getEnv("MQTT_CLIENT_ID", "mind_breeze_monitor"),
			Username: getEnv("MQTT_USERNAME", ""),
			Password: getEnv("MQTT_PASSWORD", ""),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Pipeline: PipelineConfig{
			SQIThreshold:         getEnvAsFloat("SQI_THRESHOLD", 80),
			StabilizationWindow:  getEnvAsInt("STABILIZATION_WINDOW", 10),
			HistoryCapacity:      getEnvAsInt("HISTORY_CAPACITY", 10),
			BufferFlushPoints:    getEnvAsInt("BUFFER_FLUSH_POINTS", 100),
			BufferFlushSeconds:   getEnvAsInt("BUFFER_FLUSH_SECONDS", 30),
			ValidationThreshold:  getEnvAsInt("VALIDATION_PASS_THRESHOLD", 70),
			ConsistencyTolerance: getEnvAsFloat("VALIDATION_CONSISTENCY_TOLERANCE", 20),
		},
		Records: RecordsConfig{
			URL:     getEnv("RECORDS_SERVICE_URL", ""),
			Timeout: getEnvAsInt("RECORDS_TIMEOUT_SECONDS", 10),
		},
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает переменную окружения как int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat получает переменную окружения как float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
