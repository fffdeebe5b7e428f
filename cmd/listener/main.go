package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

// Обработчик сообщений
var messageHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	var batch models.BiosignalBatch
	if err := json.Unmarshal(msg.Payload(), &batch); err != nil {
		log.Printf("Ошибка декодирования JSON: %v", err)
		return
	}
	contact := "контакт OK"
	if !batch.Quality.SensorContacted {
		contact = "нет контакта"
	}
	fmt.Printf("Получено: [Топик: %s] Устройство: %s, метрик: %d, %s, HR: %.1f\n",
		msg.Topic(), batch.DeviceID, len(batch.Metrics), contact, batch.Metrics["heartRate"])
}

// Обработчик подключения
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	fmt.Println("✓ Слушатель подключен к MQTT")
	// Подписываемся на батчи всех устройств
	topic := "biosignal/#"
	token := client.Subscribe(topic, 1, messageHandler)
	token.Wait()
	fmt.Printf("📬 Подписан на топик: %s\n", topic)
	fmt.Println("🎧 Ожидание данных...")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	fmt.Printf("⚠ Соединение потеряно: %v\n", err)
}

func main() {
	fmt.Println("=== СЛУШАТЕЛЬ БАТЧЕЙ БИОСИГНАЛОВ ===")

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("listener-%d", time.Now().Unix()))
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("Ошибка подключения к MQTT: %v", token.Error())
	}

	// Ожидание сигнала завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n🛑 Остановка слушателя...")
	client.Disconnect(250)
	fmt.Println("✅ Слушатель остановлен.")
}
