// internal/sink/influx.go
package sink

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/hausnetz/plenticore-collector/internal/metrics"
	"github.com/hausnetz/plenticore-collector/internal/poller"
)

// Influx writes snapshots as one point per register, field keyed by display
// name, tagged with the device name.
type Influx struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPI
	measurement string
	device      string
}

type InfluxConfig struct {
	Host        string
	Token       string
	Org         string
	Bucket      string
	Measurement string
	Device      string
}

func NewInflux(cfg InfluxConfig) *Influx {
	client := influxdb2.NewClient(cfg.Host, cfg.Token)
	return &Influx{
		client:      client,
		writeAPI:    client.WriteAPI(cfg.Org, cfg.Bucket),
		measurement: cfg.Measurement,
		device:      cfg.Device,
	}
}

// Errors exposes the async write error channel for logging.
func (s *Influx) Errors() <-chan error {
	return s.writeAPI.Errors()
}

// Write queues every snapshot entry and the derived metrics as points.
func (s *Influx) Write(snap *poller.Snapshot, d metrics.Derived) {
	tags := map[string]string{"device": s.device}

	for name, v := range snap.ByName {
		s.writeAPI.WritePoint(influxdb2.NewPoint(
			s.measurement, tags, map[string]any{name: fieldValue(v)}, snap.At,
		))
	}

	s.writeAPI.WritePoint(influxdb2.NewPoint(
		s.measurement, tags,
		map[string]any{
			"CombinedPanelPower":   d.CombinedPanelPower,
			"BatteryFlow":          d.BatteryFlow,
			"TotalHomeConsumption": d.TotalHomeConsumption,
			"GridFlow":             d.GridFlow,
		},
		snap.At,
	))
}

func (s *Influx) Close() {
	s.writeAPI.Flush()
	s.client.Close()
}

// fieldValue widens integer register values to float64 so a register keeps
// one field type across snapshots; strings pass through.
func fieldValue(v any) any {
	switch n := v.(type) {
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case int16:
		return float64(n)
	default:
		return v
	}
}
