// internal/metrics/derived_test.go
package metrics

import (
	"errors"
	"testing"

	"github.com/hausnetz/plenticore-collector/internal/poller"
)

func snapshotWith(entries map[string]any) *poller.Snapshot {
	base := map[string]any{
		namePowerDC1:           0.0,
		namePowerDC2:           0.0,
		nameBatteryVoltage:     0.0,
		nameBatteryCurrent:     0.0,
		nameConsumptionBattery: 0.0,
		nameConsumptionGrid:    0.0,
		nameConsumptionPV:      0.0,
		nameGenerationPower:    int16(0),
	}
	for k, v := range entries {
		base[k] = v
	}
	return &poller.Snapshot{ByName: base, ByAddress: map[uint16]any{}}
}

func TestCompute_CombinedPanelPower(t *testing.T) {
	snap := snapshotWith(map[string]any{
		namePowerDC1: 120.5,
		namePowerDC2: 80.3,
	})

	d, err := Compute(snap)
	if err != nil {
		t.Fatalf("Compute err=%v", err)
	}
	if d.CombinedPanelPower != 200.8 {
		t.Fatalf("CombinedPanelPower = %v, want 200.8", d.CombinedPanelPower)
	}
}

func TestCompute_BatteryFlow(t *testing.T) {
	snap := snapshotWith(map[string]any{
		nameBatteryVoltage: 48.0,
		nameBatteryCurrent: -5.0,
	})

	d, err := Compute(snap)
	if err != nil {
		t.Fatalf("Compute err=%v", err)
	}
	if d.BatteryFlow != -240.0 {
		t.Fatalf("BatteryFlow = %v, want -240.0", d.BatteryFlow)
	}
}

func TestCompute_ConsumptionAndGridFlow(t *testing.T) {
	snap := snapshotWith(map[string]any{
		nameConsumptionBattery: 100.4,
		nameConsumptionGrid:    250.0,
		nameConsumptionPV:      75.3,
		nameGenerationPower:    int16(1200),
	})

	d, err := Compute(snap)
	if err != nil {
		t.Fatalf("Compute err=%v", err)
	}
	if d.TotalHomeConsumption != 425.7 {
		t.Fatalf("TotalHomeConsumption = %v, want 425.7", d.TotalHomeConsumption)
	}
	if d.GridFlow != 774.3 {
		t.Fatalf("GridFlow = %v, want 774.3", d.GridFlow)
	}
}

func TestCompute_MissingField(t *testing.T) {
	snap := snapshotWith(nil)
	delete(snap.ByName, nameBatteryVoltage)

	_, err := Compute(snap)
	if err == nil {
		t.Fatalf("expected error")
	}

	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if mf.Name != nameBatteryVoltage {
		t.Fatalf("missing field = %q, want %q", mf.Name, nameBatteryVoltage)
	}
}

func TestCompute_DoesNotMutateSnapshot(t *testing.T) {
	snap := snapshotWith(map[string]any{namePowerDC1: 10.0})
	before := len(snap.ByName)

	if _, err := Compute(snap); err != nil {
		t.Fatalf("Compute err=%v", err)
	}
	if len(snap.ByName) != before {
		t.Fatalf("Compute changed snapshot size: %d -> %d", before, len(snap.ByName))
	}
	if snap.ByName[namePowerDC1] != 10.0 {
		t.Fatalf("Compute changed a primary entry")
	}
}
