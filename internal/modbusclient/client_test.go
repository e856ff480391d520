// internal/modbusclient/client_test.go
package modbusclient

import (
	"errors"
	"testing"
)

func TestWordPacking(t *testing.T) {
	words := []uint16{0x1234, 0xABCD}
	b := wordsToBytes(words)
	if len(b) != 4 || b[0] != 0x12 || b[1] != 0x34 || b[2] != 0xAB || b[3] != 0xCD {
		t.Fatalf("wordsToBytes = % x", b)
	}

	back := bytesToWords(b)
	if len(back) != 2 || back[0] != words[0] || back[1] != words[1] {
		t.Fatalf("bytesToWords = %v", back)
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := error(&TransportError{Op: "read", Addr: 100, Quantity: 2, Err: inner})

	if !errors.Is(err, inner) {
		t.Fatalf("TransportError should unwrap to inner error")
	}

	var te *TransportError
	if !errors.As(err, &te) || te.Addr != 100 {
		t.Fatalf("errors.As failed: %v", err)
	}
}
