// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"log"

	"github.com/hausnetz/plenticore-collector/internal/decode"
	"github.com/hausnetz/plenticore-collector/internal/registers"
)

var (
	// ErrUnknownAddress reports a setpoint address absent from the catalog.
	ErrUnknownAddress = errors.New("writer: address not in register catalog")

	// ErrNotWritable reports a setpoint address outside the configured
	// writable set. The device does not validate this; the collector must.
	ErrNotWritable = errors.New("writer: address not configured as writable")
)

// Client is the transport contract the write path needs.
type Client interface {
	ReadRegisters(addr, quantity uint16) ([]uint16, error)
	WriteRegisters(addr uint16, words []uint16) error
}

// Writer encodes Float32 setpoints and delivers them to the device.
type Writer struct {
	client   Client
	writable map[uint16]bool
}

// New builds a Writer guarding the given writable address set.
func New(client Client, writable []uint16) *Writer {
	set := make(map[uint16]bool, len(writable))
	for _, a := range writable {
		set[a] = true
	}
	return &Writer{client: client, writable: set}
}

// WriteSetpoint writes value to the Float32 register at addr.
//
// The current value is read first and logged as an operator sanity check;
// it has no effect on the write. There is no read-after-write verification:
// the operation is fire-and-forget on the protocol level.
func (w *Writer) WriteSetpoint(addr uint16, value float64) error {
	d, ok := registers.ByAddress(addr)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAddress, addr)
	}
	if !w.writable[addr] {
		return fmt.Errorf("%w: %d (%s)", ErrNotWritable, addr, d.Name)
	}

	if words, err := w.client.ReadRegisters(addr, registers.Float32.Words()); err == nil {
		if prev, err := decode.Decode(registers.Float32, words); err == nil {
			log.Printf("writer: %s (%d) currently %v, setting %v", d.Name, addr, prev, value)
		}
	} else {
		log.Printf("writer: pre-read of %d failed: %v", addr, err)
	}

	payload := decode.EncodeFloat32(value)
	if err := w.client.WriteRegisters(addr, payload[:]); err != nil {
		return err
	}
	return nil
}
