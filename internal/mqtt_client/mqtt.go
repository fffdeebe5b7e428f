package mqtt_client

import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/configs"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/handlers"
)

// BatchTopic топик батчей биосигналов: biosignal/{device_id}/batch
const BatchTopic = "biosignal/+/batch"

// InitClient подключается к брокеру и подписывается на батчи биосигналов.
// Подписка выполняется в OnConnect, чтобы восстанавливаться после реконнекта.
func InitClient(cfg configs.MQTTConfig, processor *handlers.StreamProcessor) (mqtt.Client, error) {
	messageHandler := func(client mqtt.Client, msg mqtt.Message) {
		processor.HandleIncomingMQTT(msg.Topic(), msg.Payload())
	}

	connectHandler := func(client mqtt.Client) {
		log.Println("✅ Подключились к MQTT брокеру")
		token := client.Subscribe(BatchTopic, byte(cfg.QoS), messageHandler)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Printf("❌ Ошибка подписки на %s: %v", BatchTopic, err)
			return
		}
		log.Printf("📡 Подписан на топик: %s", BatchTopic)
	}

	connectLostHandler := func(client mqtt.Client, err error) {
		log.Printf("⚠️ Соединение с MQTT потеряно: %v", err)
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(fmt.Sprintf("%s-%d", cfg.ClientID, time.Now().Unix()))
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}
