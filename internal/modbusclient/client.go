// internal/modbusclient/client.go
package modbusclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
)

// DefaultUnitID is the Plenticore's fixed Modbus slave id.
const DefaultUnitID uint8 = 71

// TransportError wraps any failed register read or write with its geometry.
type TransportError struct {
	Op       string // "read" or "write"
	Addr     uint16
	Quantity uint16
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("modbus %s addr=%d qty=%d: %v", e.Op, e.Addr, e.Quantity, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config is the transport configuration for one device session.
type Config struct {
	Endpoint string // host:port, e.g. "192.168.178.41:1502"
	UnitID   uint8
	Timeout  time.Duration
}

// Client is a single Modbus TCP session to the inverter. One session serves
// one acquisition pass and/or one setpoint write; it is not safe for
// concurrent use and the protocol has no pipelining anyway.
type Client struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Dial connects to the device. Callers must Close on every exit path.
func Dial(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusclient: endpoint required")
	}
	if cfg.UnitID == 0 {
		cfg.UnitID = DefaultUnitID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbusclient: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *Client) Close() error {
	return c.handler.Close()
}

// ReadRegisters reads quantity holding registers starting at addr and returns
// them as 16-bit words in wire order.
func (c *Client) ReadRegisters(addr, quantity uint16) ([]uint16, error) {
	resp, err := c.client.ReadHoldingRegisters(addr, quantity)
	if err != nil {
		return nil, &TransportError{Op: "read", Addr: addr, Quantity: quantity, Err: err}
	}
	if len(resp) != int(quantity)*2 {
		return nil, &TransportError{
			Op: "read", Addr: addr, Quantity: quantity,
			Err: fmt.Errorf("short response: got %d bytes, want %d", len(resp), quantity*2),
		}
	}
	return bytesToWords(resp), nil
}

// WriteRegisters writes the given words starting at addr.
func (c *Client) WriteRegisters(addr uint16, words []uint16) error {
	qty := uint16(len(words))
	if _, err := c.client.WriteMultipleRegisters(addr, qty, wordsToBytes(words)); err != nil {
		return &TransportError{Op: "write", Addr: addr, Quantity: qty, Err: err}
	}
	return nil
}

func bytesToWords(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return out
}

func wordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[2*i] = byte(w >> 8)
		out[2*i+1] = byte(w)
	}
	return out
}
