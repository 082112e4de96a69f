// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
)

// A Drive is the pair of waveforms compiled for one poked port: the stimulus
// voltage and the switch control that disconnects the driver for HiZ.
//
type Drive struct {
	V Waveform // stimulus voltage
	S Waveform // switch control: 1 driven, 0 floating
}

// A Check is an Expect scheduled at a point of virtual time.
//
type Check struct {
	Time   float64
	Expect fault.Expect
}

// A PrintReq is a Print scheduled at a point of virtual time.
//
type PrintReq struct {
	Time  float64
	Print fault.Print
}

// Compiled is the result of compiling an action sequence: per-port stimulus
// waveforms, timed checks and prints, the simulation stop time and the set
// of signals the simulator must record. Every signal referenced by a check
// or print is present in Saves, and StopTime is never earlier than the last
// check or print.
//
type Compiled struct {
	Drives   map[string]Drive
	Checks   []Check
	Prints   []PrintReq
	StopTime float64
	Saves    map[string]bool
}

// Compile walks actions in order, maintaining a virtual clock, and produces
// the stimulus waveforms, checks and prints for one simulation run. Actions
// targeting a bus are first expanded into single-bit actions.
//
func (t *Target) Compile(actions []fault.Action) (*Compiled, error) {
	actions, err := t.normalize(actions)
	if err != nil {
		return nil, err
	}

	type pwc struct {
		v []Point
		s []Point
	}
	acc := make(map[string]*pwc)
	var (
		now    float64
		checks []Check
		prints []PrintReq
	)
	saves := make(map[string]bool)

	for _, a := range actions {
		switch a := a.(type) {
		case fault.Poke:
			p := acc[a.Port.Name]
			if p == nil {
				p = &pwc{}
				acc[a.Port.Name] = p
			}
			// Resolve the stimulus, converting digital levels to
			// voltages. HiZ drives 0 V behind an open switch.
			var stimV, stimS float64
			switch {
			case a.Value.IsHiZ():
			case a.Port.Kind == fault.Bit && a.Value.IsLogic():
				if a.Value.Uint64() != 0 {
					stimV = t.cfg.VSup
				}
				stimS = 1
			default:
				stimV = a.Value.Float64()
				stimS = 1
			}
			p.v = append(p.v, Point{T: now, V: stimV})
			p.s = append(p.s, Point{T: now, V: stimS})
			if a.Delay != nil {
				now += *a.Delay
			} else {
				now += t.cfg.StepDelay * 1e-9
			}
		case fault.Expect:
			checks = append(checks, Check{Time: now, Expect: a})
			saves[a.Port.Name] = true
		case fault.Print:
			prints = append(prints, PrintReq{Time: now, Print: a})
			for _, p := range a.Ports {
				saves[p.Name] = true
			}
		case fault.Delay:
			now += a.Duration
		default:
			return nil, &UnsupportedActionError{Action: a}
		}
	}

	drives := make(map[string]Drive, len(acc))
	for name, p := range acc {
		drives[name] = Drive{
			V: pwcToPWL(p.v, now, t.cfg.TTr, 0),
			// the switch starts closed so an undriven port is
			// connected until its first HiZ poke
			S: pwcToPWL(p.s, now, t.cfg.TTr, 1),
		}
	}

	t.log.Debug("compiled actions",
		"ports", len(drives), "checks", len(checks), "prints", len(prints),
		"stop_time", now)

	return &Compiled{
		Drives:   drives,
		Checks:   checks,
		Prints:   prints,
		StopTime: now,
		Saves:    saves,
	}, nil
}

// normalize expands every bus-targeted Poke and Expect into single-bit
// actions. All other actions pass through unchanged.
//
func (t *Target) normalize(actions []fault.Action) ([]fault.Action, error) {
	out := make([]fault.Action, 0, len(actions))
	for _, a := range actions {
		switch a := a.(type) {
		case fault.Poke:
			if !a.Port.IsBus() {
				out = append(out, a)
				continue
			}
			for k := 0; k < a.Port.Width; k++ {
				bit := a
				v, err := a.Value.Bit(k)
				if err != nil {
					return nil, errors.Wrapf(err, "expand poke of bus %s", a.Port.Name)
				}
				bit.Port = t.bitPort(a.Port, k)
				bit.Value = v
				out = append(out, bit)
			}
		case fault.Expect:
			if !a.Port.IsBus() {
				out = append(out, a)
				continue
			}
			for k := 0; k < a.Port.Width; k++ {
				bit := a
				v, err := a.Value.Bit(k)
				if err != nil {
					return nil, errors.Wrapf(err, "expand expect of bus %s", a.Port.Name)
				}
				bit.Port = t.bitPort(a.Port, k)
				bit.Value = v
				out = append(out, bit)
			}
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

func (t *Target) bitPort(bus fault.Port, k int) fault.Port {
	return fault.Port{
		Name:  t.cfg.BusDelim.BitName(bus.Name, k),
		Width: 1,
		Kind:  fault.Bit,
		Dir:   bus.Dir,
	}
}
