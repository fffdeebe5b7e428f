package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/ranges"
	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/pkg/utils"
)

// metricProfile параметры генерации одной метрики
type metricProfile struct {
	Base        float64 // базовое значение
	Variability float64 // разброс вокруг базы
	Drift       float64 // шаг медленного дрейфа базы за тик
	Min         float64 // физиологический минимум
	Max         float64 // физиологический максимум
}

// Профили подобраны так, чтобы сигнал в основном держался в норме,
// но периодически выходил за границы диапазонов
var metricProfiles = map[string]metricProfile{
	ranges.MetricHeartRate:          {Base: 76, Variability: 4, Drift: 0.6, Min: 40, Max: 180},
	ranges.MetricFocusIndex:         {Base: 52, Variability: 6, Drift: 0.8, Min: 0, Max: 100},
	ranges.MetricRelaxationIndex:    {Base: 48, Variability: 6, Drift: 0.8, Min: 0, Max: 100},
	ranges.MetricStressIndex:        {Base: 38, Variability: 5, Drift: 0.7, Min: 0, Max: 100},
	ranges.MetricTotalPower:         {Base: 28, Variability: 4, Drift: 0.5, Min: 0, Max: 120},
	ranges.MetricHemisphericBalance: {Base: 0, Variability: 0.08, Drift: 0.01, Min: -1, Max: 1},
	ranges.MetricCognitiveLoad:      {Base: 44, Variability: 5, Drift: 0.7, Min: 0, Max: 100},
	ranges.MetricEmotionalStability: {Base: 62, Variability: 5, Drift: 0.6, Min: 0, Max: 100},
}

// Каналы ЭЭГ гарнитуры LINK BAND (лобные электроды)
var eegChannels = []string{"FP1", "FP2"}

// signalGenerator случайное блуждание по всем метрикам устройства
type signalGenerator struct {
	rand  *rand.Rand
	bases map[string]float64
}

func newSignalGenerator() *signalGenerator {
	bases := make(map[string]float64, len(metricProfiles))
	for metric, profile := range metricProfiles {
		bases[metric] = profile.Base
	}
	return &signalGenerator{
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		bases: bases,
	}
}

// nextMetrics генерирует очередной набор значений. В зашумленной фазе
// добавляются артефакты движения, которые шлюз качества должен отсечь.
func (g *signalGenerator) nextMetrics(noisy bool) map[string]float64 {
	values := make(map[string]float64, len(metricProfiles))
	for metric, profile := range metricProfiles {
		// Медленный дрейф базы между батчами
		drift := (g.rand.Float64()*2 - 1) * profile.Drift
		g.bases[metric] = utils.Clamp(g.bases[metric]+drift, profile.Min, profile.Max)

		value := g.bases[metric] + (g.rand.Float64()*2-1)*profile.Variability
		if noisy {
			// Артефакт движения: выброс до половины шкалы
			value += (g.rand.Float64()*2 - 1) * (profile.Max - profile.Min) * 0.5
		}

		// Ограничиваем физиологическими пределами
		values[metric] = utils.Clamp(value, profile.Min, profile.Max)
	}
	return values
}

// sqi качество сигнала по каналам вокруг заданного центра
func (g *signalGenerator) sqi(center, spread float64) map[string]float64 {
	result := make(map[string]float64, len(eegChannels))
	for _, channel := range eegChannels {
		value := center + (g.rand.Float64()*2-1)*spread
		result[channel] = utils.Clamp(value, 0, 100)
	}
	return result
}

// leadOff состояние отвала по каналам
func leadOff(detached ...string) map[string]bool {
	result := make(map[string]bool, len(eegChannels))
	for _, channel := range eegChannels {
		result[channel] = false
	}
	for _, channel := range detached {
		result[channel] = true
	}
	return result
}

// qualityForTick циклический сценарий качества сигнала:
// хороший контакт → зашумленные электроды → отвал FP2 → гарнитура снята
func qualityForTick(g *signalGenerator, tick int) (models.QualitySnapshot, bool) {
	phase := tick % 180
	switch {
	case phase >= 60 && phase < 70:
		// Электроды зашумлены, SQI ниже порога
		return models.QualitySnapshot{
			SensorContacted: true,
			LeadOff:         leadOff(),
			SQI:             g.sqi(45, 20),
		}, true
	case phase >= 120 && phase < 125:
		// Отвал электрода FP2
		return models.QualitySnapshot{
			SensorContacted: true,
			LeadOff:         leadOff("FP2"),
			SQI:             g.sqi(85, 10),
		}, true
	case phase >= 150 && phase < 153:
		// Гарнитура снята
		return models.QualitySnapshot{
			SensorContacted: false,
			LeadOff:         leadOff(),
			SQI:             g.sqi(5, 5),
		}, true
	default:
		return models.QualitySnapshot{
			SensorContacted: true,
			LeadOff:         leadOff(),
			SQI:             g.sqi(92, 6),
		}, false
	}
}

var mqttClient mqtt.Client

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	fmt.Println("✓ Подключение к MQTT брокеру установлено")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	fmt.Printf("Соединение с MQTT брокером потеряно: %v\n", err)
}

func initMQTTClient(broker string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("linkband-emulator-%d", time.Now().Unix()))
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("ошибка подключения к MQTT: %v", token.Error())
	}
	return nil
}

func publishBatch(topic string, batch models.BiosignalBatch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %v", err)
	}
	token := mqttClient.Publish(topic, 1, false, jsonData)
	if !token.WaitTimeout(2 * time.Second) {
		return fmt.Errorf("таймаут отправки MQTT")
	}
	return token.Error()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	log.SetFlags(log.LstdFlags)
	fmt.Println("=== ЭМУЛЯТОР ГАРНИТУРЫ LINK BAND (EEG/PPG батчи со сценариями качества) ===")

	broker := envOr("MQTT_BROKER", "tcp://localhost:1883")
	if err := initMQTTClient(broker); err != nil {
		log.Fatalf("Не удалось инициализировать MQTT клиент: %v", err)
	}
	defer mqttClient.Disconnect(250)

	deviceID := fmt.Sprintf("LINKBAND-%04d", 1+time.Now().Unix()%9998)
	topic := fmt.Sprintf("biosignal/%s/batch", deviceID)
	generator := newSignalGenerator()

	fmt.Printf("📡 Устройство %s, топик %s, частота 1 Гц\n\n", deviceID, topic)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	tick := 0
	sent := 0
	noisySent := 0
	for range ticker.C {
		quality, noisy := qualityForTick(generator, tick)
		batch := models.BiosignalBatch{
			DeviceID:  deviceID,
			Timestamp: time.Now().UnixMilli(),
			Metrics:   generator.nextMetrics(noisy),
			Quality:   quality,
		}

		if err := publishBatch(topic, batch); err != nil {
			log.Printf("Ошибка отправки батча: %v", err)
		} else {
			sent++
			if noisy {
				noisySent++
			}
		}

		tick++
		if tick%30 == 0 {
			fmt.Printf("📊 Отправлено батчей: %d (из них с плохим качеством: %d)\n", sent, noisySent)
		}
	}
}
