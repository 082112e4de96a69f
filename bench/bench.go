// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench loads HCL test-bench files. A bench file declares the
// circuit under test, the simulation target configuration and the action
// sequence in one place:
//
//	circuit "mydac" {
//	  inputs = "clk, din[8]"
//	  port "out" {
//	    kind = "analog"
//	    dir  = "out"
//	  }
//	}
//
//	target {
//	  simulator = "ngspice"
//	  vsup      = 1.2
//	}
//
//	poke "clk" { value = 1 }
//	expect "out" { above = 0.4 below = 0.8 }
//
// Action blocks are compiled in the order they appear in the file.
package bench

import (
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"

	"github.com/Zuhairhadi/fault"
	"github.com/Zuhairhadi/fault/spice"
)

// A Bench is the decoded content of a test-bench file.
//
type Bench struct {
	Circuit fault.Circuit
	Config  spice.Config
	Actions []fault.Action
}

type circuitSchema struct {
	Inputs  *string       `hcl:"inputs,optional"`
	Outputs *string       `hcl:"outputs,optional"`
	Ports   []*portSchema `hcl:"port,block"`
}

type portSchema struct {
	Name  string  `hcl:"name,label"`
	Width *int    `hcl:"width,optional"`
	Kind  *string `hcl:"kind,optional"`
	Dir   *string `hcl:"dir,optional"`
}

type targetSchema struct {
	Simulator *string            `hcl:"simulator,optional"`
	Dir       *string            `hcl:"dir,optional"`
	VSup      *float64           `hcl:"vsup,optional"`
	ROut      *float64           `hcl:"rout,optional"`
	RZ        *float64           `hcl:"rz,optional"`
	Models    []string           `hcl:"model_paths,optional"`
	Env       []string           `hcl:"env,optional"`
	TStep     *float64           `hcl:"t_step,optional"`
	StepDelay *float64           `hcl:"clock_step_delay,optional"`
	TTr       *float64           `hcl:"t_tr,optional"`
	VilRel    *float64           `hcl:"vil_rel,optional"`
	VihRel    *float64           `hcl:"vih_rel,optional"`
	ConnOrder *string            `hcl:"conn_order,optional"`
	BusDelim  *string            `hcl:"bus_delim,optional"`
	BusOrder  *string            `hcl:"bus_order,optional"`
	Flags     []string           `hcl:"flags,optional"`
	IC        map[string]float64 `hcl:"ic,optional"`
	CapLoads  map[string]float64 `hcl:"cap_loads,optional"`
}

type pokeSchema struct {
	Value cty.Value `hcl:"value"`
	Delay *float64  `hcl:"delay,optional"`
}

type expectSchema struct {
	Value  *cty.Value `hcl:"value,optional"`
	Above  *float64   `hcl:"above,optional"`
	Below  *float64   `hcl:"below,optional"`
	Strict *bool      `hcl:"strict,optional"`
}

type delaySchema struct {
	Duration float64 `hcl:"duration"`
}

type printSchema struct {
	Ports  []string `hcl:"ports"`
	Format string   `hcl:"format"`
}

// LoadFile parses and decodes the bench file at path.
//
func LoadFile(path string) (*Bench, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "parse bench file")
	}
	return load(f)
}

// Load parses and decodes bench file source. The filename is used in
// diagnostics only.
//
func Load(src []byte, filename string) (*Bench, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "parse bench file")
	}
	return load(f)
}

// load walks the file body block by block. gohcl decodes each block, but
// the walk itself stays on the syntax tree: decoding poke/expect/... blocks
// through a single schema struct would group them by type and lose the
// document order the compiler depends on.
func load(f *hcl.File) (*Bench, error) {
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New("bench file must use native HCL syntax")
	}

	b := &Bench{}
	var haveCircuit bool

	for _, blk := range body.Blocks {
		switch blk.Type {
		case "circuit":
			if haveCircuit {
				return nil, errors.Errorf("%s: duplicate circuit block", blk.DefRange())
			}
			if len(blk.Labels) != 1 {
				return nil, errors.Errorf("%s: circuit block needs a name label", blk.DefRange())
			}
			c, err := decodeCircuit(blk)
			if err != nil {
				return nil, err
			}
			b.Circuit = c
			haveCircuit = true

		case "target":
			cfg, err := decodeTarget(blk)
			if err != nil {
				return nil, err
			}
			b.Config = cfg

		case "poke":
			if !haveCircuit {
				return nil, errors.Errorf("%s: poke before circuit block", blk.DefRange())
			}
			a, err := decodePoke(blk, &b.Circuit)
			if err != nil {
				return nil, err
			}
			b.Actions = append(b.Actions, a)

		case "expect":
			if !haveCircuit {
				return nil, errors.Errorf("%s: expect before circuit block", blk.DefRange())
			}
			a, err := decodeExpect(blk, &b.Circuit)
			if err != nil {
				return nil, err
			}
			b.Actions = append(b.Actions, a)

		case "delay":
			var s delaySchema
			if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
				return nil, errors.Wrap(diags, "decode delay block")
			}
			b.Actions = append(b.Actions, fault.Delay{Duration: s.Duration})

		case "print":
			if !haveCircuit {
				return nil, errors.Errorf("%s: print before circuit block", blk.DefRange())
			}
			a, err := decodePrint(blk, &b.Circuit)
			if err != nil {
				return nil, err
			}
			b.Actions = append(b.Actions, a)

		default:
			return nil, errors.Errorf("%s: unknown block type %q", blk.DefRange(), blk.Type)
		}
	}

	if !haveCircuit {
		return nil, errors.New("bench file has no circuit block")
	}
	return b, nil
}

func decodeCircuit(blk *hclsyntax.Block) (fault.Circuit, error) {
	var s circuitSchema
	if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
		return fault.Circuit{}, errors.Wrap(diags, "decode circuit block")
	}
	c := fault.Circuit{Name: blk.Labels[0]}
	if s.Inputs != nil {
		ps, err := fault.Inputs(*s.Inputs)
		if err != nil {
			return fault.Circuit{}, errors.Wrap(err, "circuit inputs")
		}
		c.Ports = append(c.Ports, ps...)
	}
	if s.Outputs != nil {
		ps, err := fault.Outputs(*s.Outputs)
		if err != nil {
			return fault.Circuit{}, errors.Wrap(err, "circuit outputs")
		}
		c.Ports = append(c.Ports, ps...)
	}
	for _, ps := range s.Ports {
		p, err := decodePort(ps)
		if err != nil {
			return fault.Circuit{}, err
		}
		c.Ports = append(c.Ports, p)
	}
	for i, p := range c.Ports {
		for _, q := range c.Ports[i+1:] {
			if p.Name == q.Name {
				return fault.Circuit{}, errors.Errorf("duplicate port %q", p.Name)
			}
		}
	}
	return c, nil
}

func decodePort(s *portSchema) (fault.Port, error) {
	p := fault.Port{Name: s.Name, Width: 1, Kind: fault.Bit}
	if s.Width != nil {
		if *s.Width < 1 {
			return fault.Port{}, errors.Errorf("port %s: width must be positive", s.Name)
		}
		p.Width = *s.Width
		if p.Width > 1 {
			p.Kind = fault.Bus
		}
	}
	if s.Kind != nil {
		switch *s.Kind {
		case "bit":
			p.Kind = fault.Bit
		case "bus":
			p.Kind = fault.Bus
		case "analog":
			p.Kind = fault.Analog
		case "elect":
			p.Kind = fault.Elect
		default:
			return fault.Port{}, errors.Errorf("port %s: unknown kind %q", s.Name, *s.Kind)
		}
	}
	if s.Dir != nil {
		switch *s.Dir {
		case "in":
			p.Dir = fault.In
		case "out":
			p.Dir = fault.Out
		case "inout":
			p.Dir = fault.InOut
		default:
			return fault.Port{}, errors.Errorf("port %s: unknown dir %q", s.Name, *s.Dir)
		}
	}
	return p, nil
}

func decodeTarget(blk *hclsyntax.Block) (spice.Config, error) {
	var s targetSchema
	if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
		return spice.Config{}, errors.Wrap(diags, "decode target block")
	}
	cfg := spice.Config{
		ModelPaths: s.Models,
		Env:        s.Env,
		Flags:      s.Flags,
		IC:         s.IC,
		CapLoads:   s.CapLoads,
	}
	if s.Simulator != nil {
		cfg.Backend = spice.Backend(*s.Simulator)
	}
	if s.Dir != nil {
		cfg.Dir = *s.Dir
	}
	if s.VSup != nil {
		cfg.VSup = *s.VSup
	}
	if s.ROut != nil {
		cfg.ROut = *s.ROut
	}
	if s.RZ != nil {
		cfg.RZ = *s.RZ
	}
	if s.TStep != nil {
		cfg.TStep = *s.TStep
	}
	if s.StepDelay != nil {
		cfg.StepDelay = *s.StepDelay
	}
	if s.TTr != nil {
		cfg.TTr = *s.TTr
	}
	if s.VilRel != nil {
		cfg.VilRel = *s.VilRel
	}
	if s.VihRel != nil {
		cfg.VihRel = *s.VihRel
	}
	if s.ConnOrder != nil {
		cfg.ConnOrder = spice.ConnOrder(*s.ConnOrder)
	}
	if s.BusDelim != nil {
		cfg.BusDelim = fault.BusDelim(*s.BusDelim)
	}
	if s.BusOrder != nil {
		cfg.BusOrder = spice.BusOrder(*s.BusOrder)
	}
	return cfg, nil
}

func actionPort(blk *hclsyntax.Block, c *fault.Circuit) (fault.Port, error) {
	if len(blk.Labels) != 1 {
		return fault.Port{}, errors.Errorf("%s: %s block needs a port label", blk.DefRange(), blk.Type)
	}
	p, ok := c.Port(blk.Labels[0])
	if !ok {
		return fault.Port{}, errors.Errorf("%s: unknown port %q", blk.DefRange(), blk.Labels[0])
	}
	return p, nil
}

func decodePoke(blk *hclsyntax.Block, c *fault.Circuit) (fault.Action, error) {
	p, err := actionPort(blk, c)
	if err != nil {
		return nil, err
	}
	var s pokeSchema
	if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decode poke %q", p.Name)
	}
	v, err := valueFromCty(s.Value, p)
	if err != nil {
		return nil, errors.Wrapf(err, "poke %q", p.Name)
	}
	return fault.Poke{Port: p, Value: v, Delay: s.Delay}, nil
}

func decodeExpect(blk *hclsyntax.Block, c *fault.Circuit) (fault.Action, error) {
	p, err := actionPort(blk, c)
	if err != nil {
		return nil, err
	}
	var s expectSchema
	if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decode expect %q", p.Name)
	}
	e := fault.Expect{Port: p, Above: s.Above, Below: s.Below}
	if s.Strict != nil {
		e.Strict = *s.Strict
	}
	if s.Value != nil {
		if s.Above != nil || s.Below != nil {
			return nil, errors.Errorf("expect %q: value is exclusive with above/below", p.Name)
		}
		v, err := valueFromCty(*s.Value, p)
		if err != nil {
			return nil, errors.Wrapf(err, "expect %q", p.Name)
		}
		e.Value = v
	} else if s.Above == nil && s.Below == nil {
		return nil, errors.Errorf("expect %q: needs value, above or below", p.Name)
	}
	return e, nil
}

func decodePrint(blk *hclsyntax.Block, c *fault.Circuit) (fault.Action, error) {
	var s printSchema
	if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
		return nil, errors.Wrap(diags, "decode print block")
	}
	ports := make([]fault.Port, len(s.Ports))
	for i, name := range s.Ports {
		p, ok := c.Port(name)
		if !ok {
			return nil, errors.Errorf("print: unknown port %q", name)
		}
		ports[i] = p
	}
	return fault.Print{Ports: ports, Format: s.Format}, nil
}

// valueFromCty translates an HCL attribute value into a fault.Value. The
// string "hiz" (any case) marks high impedance; numbers are digital words
// on bit/bus ports and analog levels otherwise; booleans are logic levels.
//
func valueFromCty(v cty.Value, p fault.Port) (fault.Value, error) {
	switch v.Type() {
	case cty.String:
		if strings.EqualFold(v.AsString(), "hiz") {
			return fault.HiZ, nil
		}
		return fault.Value{}, errors.Errorf("unknown value %q", v.AsString())
	case cty.Bool:
		if v.True() {
			return fault.Logic(1), nil
		}
		return fault.Logic(0), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		switch p.Kind {
		case fault.Analog, fault.Elect:
			return fault.Volt(f), nil
		}
		if f < 0 || f != math.Trunc(f) {
			return fault.Value{}, errors.Errorf("digital port %s needs a non-negative integer, got %v", p.Name, f)
		}
		return fault.Logic(uint64(f)), nil
	}
	return fault.Value{}, errors.Errorf("unsupported value type %s", v.Type().FriendlyName())
}
