// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package fault

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	logicValue = iota
	realValue
	hiZValue
)

// A Value is the payload of a Poke or Expect action: a digital word, a real
// (analog) level, or the high-impedance marker.
//
// The zero Value is Logic(0).
//
type Value struct {
	kind int
	bits uint64
	real float64
}

// HiZ marks a driver as disconnected (tri-state). It has no finite bit
// pattern: indexing it yields HiZ for every bit.
//
var HiZ = Value{kind: hiZValue}

// Logic returns a digital value holding the given bits.
//
func Logic(bits uint64) Value {
	return Value{kind: logicValue, bits: bits}
}

// Volt returns an analog value passed through to the stimulus unchanged.
//
func Volt(v float64) Value {
	return Value{kind: realValue, real: v}
}

// IsHiZ reports whether v is the high-impedance marker.
//
func (v Value) IsHiZ() bool { return v.kind == hiZValue }

// IsLogic reports whether v is a digital word.
//
func (v Value) IsLogic() bool { return v.kind == logicValue }

// Uint64 returns the bits of a digital value, and 0 for other kinds.
//
func (v Value) Uint64() uint64 {
	if v.kind == logicValue {
		return v.bits
	}
	return 0
}

// Float64 returns the numeric level of v: the real level for analog values
// and the bit pattern, as a float, for digital ones. HiZ has no level and
// yields 0.
//
func (v Value) Float64() float64 {
	switch v.kind {
	case realValue:
		return v.real
	case logicValue:
		return float64(v.bits)
	}
	return 0
}

// Bit returns the single-bit value at index k when v is interpreted as a
// digital word. Indexing HiZ yields HiZ; analog values cannot be indexed.
//
func (v Value) Bit(k int) (Value, error) {
	switch v.kind {
	case hiZValue:
		return HiZ, nil
	case logicValue:
		return Logic(v.bits >> uint(k) & 1), nil
	}
	return Value{}, errors.Errorf("cannot index bit %d of analog value %v", k, v.real)
}

func (v Value) String() string {
	switch v.kind {
	case hiZValue:
		return "HiZ"
	case realValue:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	}
	return strconv.FormatUint(v.bits, 10)
}
