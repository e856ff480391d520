// internal/sink/mqtt.go
package sink

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/hausnetz/plenticore-collector/internal/metrics"
	"github.com/hausnetz/plenticore-collector/internal/poller"
)

// MQTT publishes snapshots register-by-register, one topic per display name
// under the configured prefix (e.g. "Haus/Kostal/Battery voltage").
type MQTT struct {
	client mqtt.Client
	prefix string
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetConnectTimeout(5 * time.Second).
		SetPingTimeout(3 * time.Second).
		SetOrderMatters(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	t := client.Connect()
	if ok := t.WaitTimeout(10 * time.Second); !ok {
		return nil, fmt.Errorf("sink mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("sink mqtt: connect to %s: %w", cfg.Broker, err)
	}

	return &MQTT{client: client, prefix: cfg.TopicPrefix}, nil
}

// Publish sends every snapshot entry and the derived metrics.
func (m *MQTT) Publish(snap *poller.Snapshot, d metrics.Derived) error {
	for name, v := range snap.ByName {
		if err := m.publish(m.prefix+"/"+name, v); err != nil {
			return err
		}
	}

	derived := map[string]float64{
		"CombinedPanelPower":   d.CombinedPanelPower,
		"BatteryFlow":          d.BatteryFlow,
		"TotalHomeConsumption": d.TotalHomeConsumption,
		"GridFlow":             d.GridFlow,
	}
	for name, v := range derived {
		if err := m.publish(m.prefix+"/derived/"+name, v); err != nil {
			return err
		}
	}
	return nil
}

func (m *MQTT) publish(topic string, v any) error {
	t := m.client.Publish(topic, 0, false, fmt.Sprint(v))
	t.Wait()
	if err := t.Error(); err != nil {
		return fmt.Errorf("sink mqtt: publish %s: %w", topic, err)
	}
	return nil
}

func (m *MQTT) Close() {
	if m.client.IsConnectionOpen() {
		m.client.Disconnect(250)
	}
}
