// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/hausnetz/plenticore-collector/internal/registers"
)

// Validate checks configuration correctness.
// It performs declarative validation only and MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Device.Endpoint == "" {
		return fmt.Errorf("config: device.endpoint is required")
	}
	if cfg.Device.TimeoutMs < 0 {
		return fmt.Errorf("config: device.timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// WRITABLE SET
	// ------------------------------------------------------------
	// The device never validates write addresses; the collector must.
	// Every writable address has to exist in the catalog and hold a
	// Float32 setpoint, because the write path encodes Float32 only.

	seen := make(map[uint16]bool, len(cfg.Writable))
	for _, addr := range cfg.Writable {
		if seen[addr] {
			return fmt.Errorf("config: writable address %d listed twice", addr)
		}
		seen[addr] = true

		d, ok := registers.ByAddress(addr)
		if !ok {
			return fmt.Errorf("config: writable address %d is not in the register catalog", addr)
		}
		if d.Kind != registers.Float32 {
			return fmt.Errorf(
				"config: writable address %d (%s) has datatype %s, only Float setpoints are writable",
				addr, d.Name, d.Kind,
			)
		}
	}

	// ------------------------------------------------------------
	// SINKS
	// ------------------------------------------------------------

	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return fmt.Errorf("config: mqtt.broker is required when mqtt is enabled")
	}
	if cfg.Influx.Enabled {
		if cfg.Influx.Bucket == "" {
			return fmt.Errorf("config: influx.bucket is required when influx is enabled")
		}
		if cfg.Influx.Measurement == "" {
			return fmt.Errorf("config: influx.measurement is required when influx is enabled")
		}
	}

	return nil
}
