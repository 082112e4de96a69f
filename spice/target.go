// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package spice compiles digital test vectors into analog circuit
// simulations. A Target turns an ordered action sequence into per-port PWL
// stimulus waveforms, writes a SPICE testbench netlist for one of three
// backends, maps the backend to its command invocations, and reduces the
// resulting voltage trace back to logic levels to evaluate expectations.
package spice

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
)

// Backend selects the external simulator.
//
type Backend string

// Supported simulator backends.
const (
	Ngspice Backend = "ngspice"
	Spectre Backend = "spectre"
	HSpice  Backend = "hspice"
)

// ConnOrder selects how DUT pins are ordered in the testbench instantiation.
//
type ConnOrder string

// Port ordering modes. ConnParse would derive the order from the subcircuit
// definition in the model files; it is not implemented and always fails.
const (
	ConnAlpha ConnOrder = "alpha"
	ConnParse ConnOrder = "parse"
)

// BusOrder selects the direction in which bus bits are expanded.
//
type BusOrder string

// Bus bit orderings.
const (
	Ascend  BusOrder = "ascend"
	Descend BusOrder = "descend"
)

// Config collects the per-run settings of a Target. All fields are optional
// except where noted; zero values take the documented defaults. A Config is
// read-only once the Target is constructed.
//
type Config struct {
	// Dir is the working directory for the netlist and trace files.
	// Defaults to "build". It is created on construction and never
	// cleaned up.
	Dir string

	// Backend selects the simulator. Defaults to Ngspice.
	Backend Backend

	// VSup is the supply voltage assumed for D/A and A/D conversion.
	// Defaults to 1.0.
	VSup float64

	// ROut is the driver output resistance. Defaults to 1.
	ROut float64

	// RZ emulates high impedance when a driver is switched off.
	// Defaults to 1e9.
	RZ float64

	// ModelPaths lists files included by the generated netlist.
	ModelPaths []string

	// Env holds KEY=VALUE overrides applied to the simulator environment.
	Env []string

	// TStep hints the transient print interval. When 0 the netlist uses
	// stop time / 1000.
	TStep float64

	// StepDelay is the default virtual-clock advance, in nanoseconds,
	// for a Poke without an explicit delay. Defaults to 5.
	StepDelay float64

	// TTr is the transition time inserted between stimulus levels.
	// Defaults to 0.2e-9.
	TTr float64

	// VilRel and VihRel are the logic low/high decision thresholds as
	// fractions of VSup. Defaults: 0.4 and 0.6.
	VilRel float64
	VihRel float64

	// ConnOrder defaults to ConnAlpha.
	ConnOrder ConnOrder

	// BusDelim defaults to fault.DelimAngle.
	BusDelim fault.BusDelim

	// BusOrder defaults to Descend.
	BusOrder BusOrder

	// Flags are extra arguments appended verbatim to every simulator
	// command.
	Flags []string

	// IC maps node names to initial conditions. A dotted key is treated
	// as a path inside the DUT instance.
	IC map[string]float64

	// CapLoads maps port names to load capacitances added to ground.
	CapLoads map[string]float64

	// Out receives formatted Print output. Defaults to os.Stdout.
	Out io.Writer

	// Logger receives pipeline stage logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// A Target compiles action sequences and runs them on the configured
// backend. Its configuration is immutable; a single Target may run any
// number of sequential simulations, and no state is shared between runs.
//
type Target struct {
	circ fault.Circuit
	cfg  Config
	log  *slog.Logger
	out  io.Writer
}

// New validates cfg, applies defaults, creates the working directory and
// returns a Target for the given circuit. An unsupported backend, ordering
// mode, delimiter or bus order yields a ConfigError before any filesystem
// write.
//
func New(circ fault.Circuit, cfg Config) (*Target, error) {
	if cfg.Dir == "" {
		cfg.Dir = "build"
	}
	if cfg.Backend == "" {
		cfg.Backend = Ngspice
	}
	if cfg.VSup == 0 {
		cfg.VSup = 1.0
	}
	if cfg.ROut == 0 {
		cfg.ROut = 1
	}
	if cfg.RZ == 0 {
		cfg.RZ = 1e9
	}
	if cfg.StepDelay == 0 {
		cfg.StepDelay = 5
	}
	if cfg.TTr == 0 {
		cfg.TTr = 0.2e-9
	}
	if cfg.VilRel == 0 {
		cfg.VilRel = 0.4
	}
	if cfg.VihRel == 0 {
		cfg.VihRel = 0.6
	}
	if cfg.ConnOrder == "" {
		cfg.ConnOrder = ConnAlpha
	}
	if cfg.BusDelim == "" {
		cfg.BusDelim = fault.DelimAngle
	}
	if cfg.BusOrder == "" {
		cfg.BusOrder = Descend
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	switch cfg.Backend {
	case Ngspice, Spectre, HSpice:
	default:
		return nil, configErrorf("unsupported simulator %q", cfg.Backend)
	}
	switch cfg.ConnOrder {
	case ConnAlpha, ConnParse:
	default:
		return nil, configErrorf("unknown conn order %q", cfg.ConnOrder)
	}
	if !cfg.BusDelim.Valid() {
		return nil, configErrorf("unknown bus delimiter %q", cfg.BusDelim)
	}
	switch cfg.BusOrder {
	case Ascend, Descend:
	default:
		return nil, configErrorf("unsupported bus order %q", cfg.BusOrder)
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create working directory")
	}

	return &Target{
		circ: circ,
		cfg:  cfg,
		log:  cfg.Logger,
		out:  cfg.Out,
	}, nil
}

// Circuit returns the device under test description.
//
func (t *Target) Circuit() fault.Circuit { return t.circ }

// Dir returns the working directory.
//
func (t *Target) Dir() string { return t.cfg.Dir }

// workPath returns the absolute path of a file in the working directory.
//
func (t *Target) workPath(name string) string {
	p := filepath.Join(t.cfg.Dir, name)
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// Run executes the full pipeline for one action sequence: compile, write
// the testbench, run the backend command(s), parse the raw trace with the
// supplied parser, render prints and evaluate checks. The first failing
// check aborts the remaining ones.
//
func (t *Target) Run(actions []fault.Action, parse TraceParser) error {
	comp, err := t.Compile(actions)
	if err != nil {
		return err
	}
	tb, err := t.WriteTestbench(comp)
	if err != nil {
		return err
	}
	cmds, raw, err := t.SimCommands(tb)
	if err != nil {
		return err
	}
	if err := t.RunCommands(cmds); err != nil {
		return err
	}
	res, err := parse(raw)
	if err != nil {
		return errors.Wrap(err, "parse simulation trace")
	}
	return t.Interpret(res, comp)
}
