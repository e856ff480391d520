// internal/decode/decode.go
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/hausnetz/plenticore-collector/internal/registers"
)

// ErrShapeMismatch reports a word count that does not match the encoding's
// register span. This is a catalog/decoder disagreement, not a device condition.
var ErrShapeMismatch = errors.New("decode: word count does not match register span")

// Decode turns the raw words of one register read into a typed value.
//
// Byte order within a word is big-endian. When a value spans two words the
// words combine low word first (the Plenticore's little-endian word order);
// getting this wrong silently corrupts every multi-word numeric.
//
// Float32 values are rounded to 2 decimals. That rounding is contractual:
// derived metrics are computed from the rounded values.
func Decode(k registers.Kind, words []uint16) (any, error) {
	if uint16(len(words)) != k.Words() {
		return nil, fmt.Errorf("%w: kind=%s got=%d want=%d",
			ErrShapeMismatch, k, len(words), k.Words())
	}

	switch k {
	case registers.String8, registers.String32:
		return decodeString(words), nil
	case registers.Float32:
		bits := uint32(words[1])<<16 | uint32(words[0])
		return Round2(float64(math.Float32frombits(bits))), nil
	case registers.UInt16, registers.UInt8:
		return words[0], nil
	case registers.UInt32:
		return uint32(words[1])<<16 | uint32(words[0]), nil
	case registers.Int16:
		return int16(words[0]), nil
	default:
		return nil, fmt.Errorf("decode: unknown kind %d", int(k))
	}
}

// EncodeFloat32 is the exact inverse of the Float32 decode ordering: the low
// word of the IEEE bits goes on the wire first.
func EncodeFloat32(v float64) [2]uint16 {
	bits := math.Float32bits(float32(v))
	return [2]uint16{uint16(bits), uint16(bits >> 16)}
}

// decodeString yields the text content of a NUL-padded string register.
// Trailing NULs are padding; content stops at the first NUL gap.
func decodeString(words []uint16) string {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	b = bytes.TrimRight(b, "\x00")
	if i := bytes.IndexByte(b, 0x00); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
