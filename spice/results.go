// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
)

// A Signal is a continuous function of time, typically obtained by
// interpolating a simulator trace.
//
type Signal func(t float64) float64

// Results maps recorded signal names to their sampled traces. It is
// produced by an external trace parser and read-only here.
//
type Results map[string]Signal

// A TraceParser turns a raw trace file into Results. Parsing the backend's
// trace format is the caller's concern; see Interp for building Signals
// from samples.
//
type TraceParser func(path string) (Results, error)

// Interp returns the piecewise linear interpolation of the given samples,
// which must be sorted by time. Outside the sampled range the signal holds
// its boundary value.
//
func Interp(samples []Point) Signal {
	pts := make([]Point, len(samples))
	copy(pts, samples)
	return func(t float64) float64 {
		if len(pts) == 0 {
			return 0
		}
		i := sort.Search(len(pts), func(i int) bool { return pts[i].T >= t })
		switch {
		case i == 0:
			return pts[0].V
		case i == len(pts):
			return pts[len(pts)-1].V
		}
		p, q := pts[i-1], pts[i]
		if q.T == p.T {
			return q.V
		}
		return p.V + (q.V-p.V)*(t-p.T)/(q.T-p.T)
	}
}

// Interpret renders every print and then evaluates every check of comp
// against the simulation results. Checks are evaluated in order and the
// first failure aborts the remaining ones.
//
func (t *Target) Interpret(res Results, comp *Compiled) error {
	for _, p := range comp.Prints {
		if err := t.implPrint(res, p); err != nil {
			return err
		}
	}
	for _, c := range comp.Checks {
		if err := t.implExpect(res, c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Target) implPrint(res Results, pr PrintReq) error {
	vals := make([]interface{}, len(pr.Print.Ports))
	for i, p := range pr.Print.Ports {
		sig, ok := res[p.Name]
		if !ok {
			return errors.Errorf("no trace recorded for signal %s", p.Name)
		}
		vals[i] = sig(pr.Time)
	}
	_, err := fmt.Fprintf(t.out, pr.Print.Format+"\n", vals...)
	return err
}

func (t *Target) implExpect(res Results, c Check) error {
	e := c.Expect

	// traces are keyed by leaf name, even for hierarchical signals
	name := e.Port.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	sig, ok := res[name]
	if !ok {
		return errors.Errorf("no trace recorded for signal %s", name)
	}
	value := sig(c.Time)

	// analog to digital conversion for single-bit digital ports
	if e.Port.Kind == fault.Bit {
		switch {
		case value <= t.cfg.VilRel*t.cfg.VSup:
			value = 0
		case value >= t.cfg.VihRel*t.cfg.VSup:
			value = 1
		default:
			return &A2DError{Signal: name, Value: value}
		}
	}

	switch {
	case e.Above != nil && e.Below != nil:
		if !(*e.Above <= value && value <= *e.Below) {
			return &AssertionError{
				Signal: name,
				Cond:   fmt.Sprintf("%v to %v", *e.Above, *e.Below),
				Actual: value,
			}
		}
	case e.Above != nil:
		if value < *e.Above {
			return &AssertionError{
				Signal: name,
				Cond:   fmt.Sprintf("above %v", *e.Above),
				Actual: value,
			}
		}
	case e.Below != nil:
		if value > *e.Below {
			return &AssertionError{
				Signal: name,
				Cond:   fmt.Sprintf("below %v", *e.Below),
				Actual: value,
			}
		}
	default:
		if e.Value.IsHiZ() {
			return errors.Errorf("cannot expect HiZ on %s", name)
		}
		if want := e.Value.Float64(); value != want {
			return &AssertionError{
				Signal: name,
				Cond:   fnum(want),
				Actual: value,
			}
		}
	}
	return nil
}
