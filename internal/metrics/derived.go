// internal/metrics/derived.go
package metrics

import (
	"fmt"

	"github.com/hausnetz/plenticore-collector/internal/decode"
	"github.com/hausnetz/plenticore-collector/internal/poller"
)

// Register display names the derived quantities are computed from.
const (
	namePowerDC1           = "Power DC1"
	namePowerDC2           = "Power DC2"
	nameBatteryVoltage     = "Battery voltage"
	nameBatteryCurrent     = "Actual battery charge -minus or discharge -plus current"
	nameConsumptionBattery = "Home own consumption from battery"
	nameConsumptionGrid    = "Home own consumption from grid"
	nameConsumptionPV      = "Home own consumption from PV"
	nameGenerationPower    = "Inverter Generation Power (actual)"
)

// MissingFieldError reports a derived-metric input absent from the snapshot.
// With a complete catalog this cannot happen, but it is checked, not assumed.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("metrics: snapshot has no entry %q", e.Name)
}

// Derived holds the cross-register quantities computed from one snapshot.
// All values are rounded to 1 decimal.
type Derived struct {
	// CombinedPanelPower is PowerDC1 + PowerDC2 in W.
	CombinedPanelPower float64

	// BatteryFlow is battery voltage times charge/discharge current in W.
	// The device reports discharge as positive current, so positive means
	// the battery is discharging.
	BatteryFlow float64

	// TotalHomeConsumption sums own consumption from battery, grid and PV in W.
	TotalHomeConsumption float64

	// GridFlow is generation power minus total home consumption in W.
	// Positive exports to the grid, negative imports.
	GridFlow float64
}

// Compute derives the secondary quantities from a completed snapshot.
// It never mutates the snapshot's primary entries.
func Compute(snap *poller.Snapshot) (Derived, error) {
	powerDC1, err := field(snap, namePowerDC1)
	if err != nil {
		return Derived{}, err
	}
	powerDC2, err := field(snap, namePowerDC2)
	if err != nil {
		return Derived{}, err
	}
	batteryVoltage, err := field(snap, nameBatteryVoltage)
	if err != nil {
		return Derived{}, err
	}
	batteryCurrent, err := field(snap, nameBatteryCurrent)
	if err != nil {
		return Derived{}, err
	}
	fromBattery, err := field(snap, nameConsumptionBattery)
	if err != nil {
		return Derived{}, err
	}
	fromGrid, err := field(snap, nameConsumptionGrid)
	if err != nil {
		return Derived{}, err
	}
	fromPV, err := field(snap, nameConsumptionPV)
	if err != nil {
		return Derived{}, err
	}
	generation, err := field(snap, nameGenerationPower)
	if err != nil {
		return Derived{}, err
	}

	total := decode.Round1(fromBattery + fromGrid + fromPV)

	return Derived{
		CombinedPanelPower:   decode.Round1(powerDC1 + powerDC2),
		BatteryFlow:          decode.Round1(batteryVoltage * batteryCurrent),
		TotalHomeConsumption: total,
		GridFlow:             decode.Round1(generation - total),
	}, nil
}

// field fetches a snapshot entry by name and coerces it to float64.
// Float registers decode to float64 and register 575 to int16, so both
// shapes must be accepted.
func field(snap *poller.Snapshot, name string) (float64, error) {
	v, ok := snap.ByName[name]
	if !ok {
		return 0, &MissingFieldError{Name: name}
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int16:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("metrics: entry %q has non-numeric type %T", name, v)
	}
}
