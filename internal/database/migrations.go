// internal/database/migrations.go
package database

import (
	"fmt"
	"log"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"

	"gorm.io/gorm"
)

// RunMigrations выполняет миграции базы данных
func RunMigrations(db *gorm.DB) error {
	log.Println("🔄 Запуск миграций базы данных...")

	// Автоматические миграции GORM
	err := db.AutoMigrate(
		&models.MonitoringSession{},
		&models.HealthReportRecord{},
	)

	if err != nil {
		return fmt.Errorf("ошибка миграции: %w", err)
	}

	// Создаем индексы для оптимизации запросов
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("ошибка создания индексов: %w", err)
	}

	log.Println("✅ Миграции выполнены успешно")
	return nil
}

// createIndexes создает дополнительные индексы
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Не больше одной активной сессии на устройство
		"CREATE UNIQUE INDEX IF NOT EXISTS uniq_mb_sessions_device_active ON mb_monitoring_sessions(device_id) WHERE end_time IS NULL",

		// Составные индексы для быстрого поиска
		"CREATE INDEX IF NOT EXISTS idx_mb_sessions_start_time_desc ON mb_monitoring_sessions(start_time DESC)",
		"CREATE INDEX IF NOT EXISTS idx_mb_sessions_card_device ON mb_monitoring_sessions(card_id, device_id)",

		// GIN индекс для JSONB поля (для быстрых запросов по содержимому)
		"CREATE INDEX IF NOT EXISTS idx_mb_sessions_metric_gin ON mb_monitoring_sessions USING GIN (metric_data)",

		// Отчеты: выборка по карте и свежести
		"CREATE INDEX IF NOT EXISTS idx_mb_reports_card_created ON mb_health_reports(card_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_mb_reports_failed ON mb_health_reports(created_at DESC) WHERE passed = false",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Не удалось создать индекс: %s, ошибка: %v", indexSQL, err)
		} else {
			log.Printf("✅ Индекс создан: %s", indexSQL[:50]+"...")
		}
	}

	return nil
}
