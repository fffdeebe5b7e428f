package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Brian-Chae/mind-breeze-ai-report-sub016/docs"
	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/configs"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/cache"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/database"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/handlers"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/mqtt_client"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/validation"
)

func main() {
	log.Println(" === MIND BREEZE AI REPORT (Stream Processing Architecture) ===")

	// 1. Загрузка конфигурации
	cfg := configs.LoadConfig()
	log.Printf("Конфигурация загружена: DB=%s:%s, MQTT=%s, Redis=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.MQTT.Broker, cfg.Redis.Addr)

	// 2. Инициализация базы данных
	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}
	defer database.CloseDatabase(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Ошибка миграций: %v", err)
	}

	// 3. Кэш последних показателей в Redis
	redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer redisCache.Close()

	// 4. Создание основных компонентов
	dataBuffer := handlers.NewDataBuffer(db,
		cfg.Pipeline.BufferFlushPoints,
		time.Duration(cfg.Pipeline.BufferFlushSeconds)*time.Second)
	sessionManager := handlers.NewSessionManager(db, dataBuffer)
	streamHub := handlers.NewStreamHub()
	rangeService := ranges.NewRangeService(ranges.DefaultAdjustmentPolicy())

	// 5. Создание потокового процессора
	processor := handlers.NewStreamProcessor(
		sessionManager,
		streamHub,
		dataBuffer,
		redisCache,
		rangeService,
		cfg.Pipeline,
	)

	// При завершении сессии сбрасываем окно стабилизации устройства,
	// чтобы следующая сессия начинала прогрев заново
	sessionManager.SetCallbacks(nil, func(session *models.MonitoringSession) {
		processor.ResetDevice(session.DeviceID)
	})

	// 6. Клиент сервиса медкарт (выключен, если RECORDS_SERVICE_URL пуст)
	recordsClient := handlers.NewRecordsClient(db, cfg.Records.URL,
		time.Duration(cfg.Records.Timeout)*time.Second)
	if cfg.Records.URL == "" {
		log.Println("Продолжаем работу без интеграции с медкартами")
	}

	// 7. Валидатор AI-отчетов
	validatorCfg := validation.DefaultValidatorConfig()
	validatorCfg.PassThreshold = cfg.Pipeline.ValidationThreshold
	validatorCfg.ConsistencyTolerance = cfg.Pipeline.ConsistencyTolerance
	validator := validation.NewReportValidator(validatorCfg)

	// 8. Инициализация MQTT клиента
	mqttClient, err := mqtt_client.InitClient(cfg.MQTT, processor)
	if err != nil {
		log.Fatalf("Ошибка MQTT: %v", err)
	}
	defer mqttClient.Disconnect(250)

	// 9. Запуск REST API сервера
	restAPI := handlers.NewRESTAPIServer(
		db,
		sessionManager,
		streamHub,
		processor,
		redisCache,
		rangeService,
		validator,
		recordsClient,
	)
	router := restAPI.SetupRoutes()

	go func() {
		log.Printf("REST API Server запущен на :%s", cfg.App.Port)
		if err := http.ListenAndServe(":"+cfg.App.Port, router); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка HTTP сервера: %v", err)
		}
	}()

	log.Println("Сервис запущен → Ctrl+C для остановки")
	log.Println("Архитектура потокового процессинга:")
	log.Println("MQTT → Stream Processor → SSE Stream + Redis")
	log.Println("MQTT → Stream Processor → Data Buffer → Database")
	log.Println("REST API → Session Manager + Report Validator")

	// 10. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Graceful shutdown...")

	// Остановка компонентов в обратном порядке
	processor.Stop()
	dataBuffer.Stop()

	log.Println("Сервис полностью остановлен")
}
