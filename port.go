// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package fault

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind describes how a port carries information.
//
type Kind uint8

// Port kinds.
const (
	Bit    Kind = iota // single digital bit
	Bus                // multi-bit digital bus
	Analog             // real-valued signal
	Elect              // electrical signal with both voltage and current
)

func (k Kind) String() string {
	switch k {
	case Bit:
		return "bit"
	case Bus:
		return "bus"
	case Analog:
		return "analog"
	case Elect:
		return "elect"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Dir is a port direction.
//
type Dir uint8

// Port directions.
const (
	In Dir = iota
	Out
	InOut
)

// A Port identifies a named pin or bus on the device under test.
//
type Port struct {
	Name  string
	Width int // 1 for scalar ports
	Kind  Kind
	Dir   Dir
}

// IsBus reports whether p must be expanded into single-bit ports before
// compilation.
//
func (p Port) IsBus() bool {
	return p.Kind == Bus || p.Width > 1
}

// A Circuit describes the device under test: its subcircuit name and its
// ports. It is supplied by the caller; this package never infers it from
// model files.
//
type Circuit struct {
	Name  string
	Ports []Port
}

// Port returns the port with the given name.
//
func (c *Circuit) Port(name string) (Port, bool) {
	for _, p := range c.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// BusDelim selects the naming convention for individual bus bits.
//
type BusDelim string

// Supported bus delimiter styles.
const (
	DelimAngle      BusDelim = "<>" // a<3>
	DelimBracket    BusDelim = "[]" // a[3]
	DelimUnderscore BusDelim = "_"  // a_3
)

// Valid reports whether d is one of the supported delimiter styles.
//
func (d BusDelim) Valid() bool {
	switch d {
	case DelimAngle, DelimBracket, DelimUnderscore:
		return true
	}
	return false
}

// BitName returns the name of bit k of the given bus. The delimiter must be
// one of the supported styles; callers are expected to have validated it.
//
func (d BusDelim) BitName(bus string, k int) string {
	n := strconv.Itoa(k)
	switch d {
	case DelimAngle:
		return bus + "<" + n + ">"
	case DelimBracket:
		return bus + "[" + n + "]"
	case DelimUnderscore:
		return bus + "_" + n
	}
	panic("unknown bus delimiter " + string(d))
}

// ParsePorts expands a comma separated port specification into a port list.
// A name followed by a bracketed width declares a bus:
//
//	ParsePorts("clk, din[8], out")
//
// yields a scalar port "clk", an 8 bit bus "din" and a scalar port "out".
//
func ParsePorts(spec string) ([]Port, error) {
	var out []Port
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i := strings.IndexRune(f, '[')
		if i < 0 {
			out = append(out, Port{Name: f, Width: 1, Kind: Bit})
			continue
		}
		name := strings.TrimSpace(f[:i])
		if name == "" {
			return nil, errors.Errorf("empty bus name in %q", f)
		}
		r := f[i+1:]
		j := strings.IndexRune(r, ']')
		if j < 0 {
			return nil, errors.Errorf("no terminating ] in bus spec %q", f)
		}
		w, err := strconv.Atoi(strings.TrimSpace(r[:j]))
		if err != nil {
			return nil, errors.Wrapf(err, "bad bus width in %q", f)
		}
		if w < 1 {
			return nil, errors.Errorf("bus width must be positive in %q", f)
		}
		out = append(out, Port{Name: name, Width: w, Kind: Bus})
	}
	return out, nil
}

// Inputs expands a port specification into a list of input ports.
// See ParsePorts for the specification syntax.
//
func Inputs(spec string) ([]Port, error) {
	ps, err := ParsePorts(spec)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Dir = In
	}
	return ps, nil
}

// Outputs expands a port specification into a list of output ports.
//
func Outputs(spec string) ([]Port, error) {
	ps, err := ParsePorts(spec)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].Dir = Out
	}
	return ps, nil
}
