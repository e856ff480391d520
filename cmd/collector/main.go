// cmd/collector/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	dotenv "github.com/joho/godotenv"

	"github.com/hausnetz/plenticore-collector/internal/config"
	"github.com/hausnetz/plenticore-collector/internal/metrics"
	"github.com/hausnetz/plenticore-collector/internal/modbusclient"
	"github.com/hausnetz/plenticore-collector/internal/poller"
	"github.com/hausnetz/plenticore-collector/internal/registers"
	"github.com/hausnetz/plenticore-collector/internal/sink"
	"github.com/hausnetz/plenticore-collector/internal/writer"
)

// setpointAddr is "Battery charge power (DC) setpoint, absolute", the register
// -batcharge writes. Positive discharges the battery, negative charges it;
// the option only has effect with battery management set to external control.
const setpointAddr uint16 = 1034

var (
	configPath = flag.String("config", "", "path to the collector config file")
	envPath    = flag.String("env", "", "optional .env file with sink credentials")
	batCharge  = flag.Float64("batcharge", math.NaN(), "battery charge/discharge power setpoint in W")
	interval   = flag.Duration("interval", 0, "repeat acquisition passes at this interval instead of one-shot")
)

func main() {
	flag.Parse()
	if *configPath == "" {
		log.Fatal("usage: collector -config <config.yaml> [-env <file>] [-batcharge <W>] [-interval <dur>]")
	}
	if !math.IsNaN(*batCharge) && *interval > 0 {
		log.Fatal("-batcharge cannot be combined with -interval")
	}

	if *envPath != "" {
		if err := dotenv.Load(*envPath); err != nil {
			log.Fatalf("error loading .env file: %v", err)
		}
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	// --------------------
	// Device session
	// --------------------

	client, err := modbusclient.Dial(modbusclient.Config{
		Endpoint: cfg.Device.Endpoint,
		UnitID:   cfg.Device.UnitID,
		Timeout:  time.Duration(cfg.Device.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("device connect failed: %v", err)
	}
	defer client.Close()

	p := poller.New(client)

	// --------------------
	// Sinks
	// --------------------

	var mq *sink.MQTT
	if cfg.MQTT.Enabled {
		mq, err = sink.NewMQTT(sink.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    os.Getenv("MQTT_USERNAME"),
			Password:    os.Getenv("MQTT_PASSWORD"),
			TopicPrefix: cfg.MQTT.TopicPrefix,
		})
		if err != nil {
			log.Fatalf("mqtt connect failed: %v", err)
		}
		defer mq.Close()
	}

	var fx *sink.Influx
	if cfg.Influx.Enabled {
		fx = sink.NewInflux(sink.InfluxConfig{
			Host:        os.Getenv("INFLUX_HOST"),
			Token:       os.Getenv("INFLUX_TOKEN"),
			Org:         os.Getenv("INFLUX_ORG"),
			Bucket:      cfg.Influx.Bucket,
			Measurement: cfg.Influx.Measurement,
			Device:      "plenticore",
		})
		go func() {
			for err := range fx.Errors() {
				log.Printf("influx write error: %v", err)
			}
		}()
		defer fx.Close()
	}

	// --------------------
	// Interval mode
	// --------------------

	if *interval > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := make(chan poller.Result)
		go p.Run(ctx, *interval, out)

		for {
			select {
			case <-ctx.Done():
				return
			case res := <-out:
				if res.Err != nil {
					log.Printf("acquisition pass failed: %v", res.Err)
					continue
				}
				deliver(res.Snapshot, mq, fx)
				log.Printf("pass ok: %d registers at %s",
					len(res.Snapshot.ByAddress), res.Snapshot.At.Format(time.RFC3339))
			}
		}
	}

	// --------------------
	// One-shot pass
	// --------------------

	begin := time.Now()
	snap, err := p.ReadAll()
	if err != nil {
		log.Fatalf("acquisition pass failed: %v", err)
	}
	fmt.Println("Elapsed time:", time.Since(begin).Round(10*time.Millisecond))

	for _, d := range registers.All() {
		fmt.Printf("Register %-5d %-55s %v\n", d.Addr, d.Name, snap.ByAddress[d.Addr])
	}

	derived := deliver(snap, mq, fx)

	fmt.Println("----------------------------------")
	fmt.Println("Combined panel power               :", derived.CombinedPanelPower)
	fmt.Println("Battery charge (-) / discharge (+) :", derived.BatteryFlow)
	fmt.Println("Total current home consumption     :", derived.TotalHomeConsumption)
	fmt.Println("Power from grid (-) / to grid (+)  :", derived.GridFlow)

	// --------------------
	// Optional setpoint write
	// --------------------

	if !math.IsNaN(*batCharge) {
		w := writer.New(client, cfg.Writable)
		if err := w.WriteSetpoint(setpointAddr, *batCharge); err != nil {
			log.Fatalf("setpoint write failed: %v", err)
		}
		log.Printf("battery charge setpoint set to %v W", *batCharge)
	}
}

// deliver computes the derived metrics and forwards the snapshot to the
// enabled sinks.
func deliver(snap *poller.Snapshot, mq *sink.MQTT, fx *sink.Influx) metrics.Derived {
	derived, err := metrics.Compute(snap)
	if err != nil {
		// Cannot happen with a complete catalog, but checked rather than assumed.
		log.Printf("derived metrics unavailable: %v", err)
	}

	if mq != nil {
		if err := mq.Publish(snap, derived); err != nil {
			log.Printf("mqtt publish failed: %v", err)
		}
	}
	if fx != nil {
		fx.Write(snap, derived)
	}
	return derived
}
