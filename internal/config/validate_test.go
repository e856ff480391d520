// internal/config/validate_test.go
package config

import "testing"

func validConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Endpoint:  "192.168.178.41:1502",
			UnitID:    71,
			TimeoutMs: 5000,
		},
		Writable: []uint16{1034},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EndpointRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Device.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}

func TestValidate_WritableMustExist(t *testing.T) {
	cfg := validConfig()
	cfg.Writable = []uint16{9999}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown writable address")
	}
}

func TestValidate_WritableMustBeFloat(t *testing.T) {
	cfg := validConfig()
	cfg.Writable = []uint16{56} // Inverter State, U16

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for non-Float writable address")
	}
}

func TestValidate_WritableDuplicate(t *testing.T) {
	cfg := validConfig()
	cfg.Writable = []uint16{1034, 1034}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for duplicate writable address")
	}
}

func TestValidate_MQTTBrokerRequiredWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.MQTT.Enabled = true

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for enabled mqtt without broker")
	}

	cfg.MQTT.Broker = "tcp://192.168.178.39:1883"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InfluxFieldsRequiredWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Influx.Enabled = true
	cfg.Influx.Bucket = "solar"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for enabled influx without measurement")
	}

	cfg.Influx.Measurement = "plenticore"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
