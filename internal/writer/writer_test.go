// internal/writer/writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/hausnetz/plenticore-collector/internal/decode"
	"github.com/hausnetz/plenticore-collector/internal/modbusclient"
	"github.com/hausnetz/plenticore-collector/internal/registers"
)

// fakeClient records reads and writes; optionally fails the write.
type fakeClient struct {
	reads     []uint16
	writeAddr uint16
	written   []uint16
	writes    int
	failWrite bool
}

func (f *fakeClient) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	f.reads = append(f.reads, addr)
	return make([]uint16, qty), nil
}

func (f *fakeClient) WriteRegisters(addr uint16, words []uint16) error {
	if f.failWrite {
		return &modbusclient.TransportError{
			Op: "write", Addr: addr, Quantity: uint16(len(words)),
			Err: errors.New("timeout"),
		}
	}
	f.writes++
	f.writeAddr = addr
	f.written = append([]uint16(nil), words...)
	return nil
}

func TestWriteSetpoint_EncodesAndWrites(t *testing.T) {
	fake := &fakeClient{}
	w := New(fake, []uint16{1034})

	if err := w.WriteSetpoint(1034, 475); err != nil {
		t.Fatalf("WriteSetpoint err=%v", err)
	}

	if len(fake.reads) != 1 || fake.reads[0] != 1034 {
		t.Fatalf("expected one diagnostic pre-read of 1034, got %v", fake.reads)
	}
	if fake.writes != 1 || fake.writeAddr != 1034 {
		t.Fatalf("expected one write to 1034, got %d writes to %d", fake.writes, fake.writeAddr)
	}
	if len(fake.written) != 2 {
		t.Fatalf("expected 2-word payload, got %d", len(fake.written))
	}

	// Payload must decode back to the setpoint with the same word order.
	v, err := decode.Decode(registers.Float32, fake.written)
	if err != nil {
		t.Fatalf("payload decode err=%v", err)
	}
	if v.(float64) != 475.0 {
		t.Fatalf("payload decodes to %v, want 475", v)
	}
}

func TestWriteSetpoint_RejectsUnknownAddress(t *testing.T) {
	fake := &fakeClient{}
	w := New(fake, []uint16{1034})

	err := w.WriteSetpoint(9999, 100)
	if !errors.Is(err, ErrUnknownAddress) {
		t.Fatalf("expected ErrUnknownAddress, got %v", err)
	}
	if len(fake.reads) != 0 || fake.writes != 0 {
		t.Fatalf("transport must not be touched on rejection")
	}
}

func TestWriteSetpoint_RejectsNonWritableAddress(t *testing.T) {
	fake := &fakeClient{}
	w := New(fake, []uint16{1034})

	// Register 216 (battery voltage) exists but is read-only.
	err := w.WriteSetpoint(216, 50)
	if !errors.Is(err, ErrNotWritable) {
		t.Fatalf("expected ErrNotWritable, got %v", err)
	}
	if len(fake.reads) != 0 || fake.writes != 0 {
		t.Fatalf("transport must not be touched on rejection")
	}
}

func TestWriteSetpoint_TransportFailure(t *testing.T) {
	fake := &fakeClient{failWrite: true}
	w := New(fake, []uint16{1034})

	err := w.WriteSetpoint(1034, -200)
	var te *modbusclient.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
