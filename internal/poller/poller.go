// internal/poller/poller.go
package poller

import (
	"fmt"
	"time"

	"github.com/hausnetz/plenticore-collector/internal/decode"
	"github.com/hausnetz/plenticore-collector/internal/registers"
)

// Client abstracts the transport reads the poller needs.
type Client interface {
	ReadRegisters(addr, quantity uint16) ([]uint16, error)
}

// Poller walks the register catalog over one transport session.
type Poller struct {
	client Client
}

func New(client Client) *Poller {
	return &Poller{client: client}
}

// ReadAll performs one acquisition pass: every catalogued register is read
// exactly once, in ascending address order, back-to-back on the same session.
// All-or-nothing: the first failing read aborts the pass and no snapshot is
// returned.
func (p *Poller) ReadAll() (*Snapshot, error) {
	byAddress := make(map[uint16]any, registers.Count())
	byName := make(map[string]any, registers.Count())

	for _, d := range registers.All() {
		words, err := p.client.ReadRegisters(d.Addr, d.Kind.Words())
		if err != nil {
			return nil, err
		}

		v, err := decode.Decode(d.Kind, words)
		if err != nil {
			return nil, fmt.Errorf("register %d (%s): %w", d.Addr, d.Name, err)
		}

		byAddress[d.Addr] = v
		byName[d.Name] = v
	}

	snap := &Snapshot{
		At:        time.Now(),
		ByAddress: byAddress,
		ByName:    byName,
	}
	clampGenerationPower(snap)
	return snap, nil
}

// clampGenerationPower corrects the register 575 artifact: the device
// sometimes reports the S16 maximum where it means zero.
func clampGenerationPower(s *Snapshot) {
	v, ok := s.ByAddress[registers.AddrGenerationPowerActual].(int16)
	if !ok || v <= 32766 {
		return
	}
	d, _ := registers.ByAddress(registers.AddrGenerationPowerActual)
	s.ByAddress[d.Addr] = int16(0)
	s.ByName[d.Name] = int16(0)
}
