// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type File struct {
	Collector Config `yaml:"collector"`
}

type Config struct {
	Device   DeviceConfig `yaml:"device"`
	Writable []uint16     `yaml:"writable"`
	MQTT     MQTTConfig   `yaml:"mqtt"`
	Influx   InfluxConfig `yaml:"influx"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- SINKS ----

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

type InfluxConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Bucket      string `yaml:"bucket"`
	Measurement string `yaml:"measurement"`
}

// Load reads the YAML config and applies defaults. Validation is separate;
// call Validate on the result before use.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := f.Collector
	if cfg.Device.UnitID == 0 {
		cfg.Device.UnitID = 71 // Plenticore fixed slave id
	}
	if cfg.Device.TimeoutMs == 0 {
		cfg.Device.TimeoutMs = 5000
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "plenticore-collector"
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "Haus/Kostal"
	}

	return &cfg, nil
}
