// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
)

// netlist builds the textual testbench, statement by statement. Device
// instance names are numbered per prefix; the DUT is always instantiated
// first and therefore gets X0, which the initial-condition statements rely
// on for hierarchical node paths.
//
type netlist struct {
	b     strings.Builder
	ninst int
	nsrc  int
	ncap  int
}

func (n *netlist) println(s string) {
	n.b.WriteString(s)
	n.b.WriteByte('\n')
}

func (n *netlist) printf(format string, args ...interface{}) {
	fmt.Fprintf(&n.b, format, args...)
	n.b.WriteByte('\n')
}

func (n *netlist) comment(s string) {
	n.printf("* %s", s)
}

func (n *netlist) include(path string) {
	n.printf(".include %q", path)
}

func (n *netlist) instantiate(name string, nodes ...string) {
	n.printf("X%d %s %s", n.ninst, strings.Join(nodes, " "), name)
	n.ninst++
}

func (n *netlist) capacitor(p, m string, c float64) {
	n.printf("C%d %s %s %s", n.ncap, p, m, fnum(c))
	n.ncap++
}

func (n *netlist) voltage(p, m string, w Waveform) {
	n.printf("V%d %s %s PWL(%s)", n.nsrc, p, m, w)
	n.nsrc++
}

// vcr emits a piecewise linear voltage controlled resistor whose resistance
// between p and m is given by the (control voltage, resistance) pairs.
//
func (n *netlist) vcr(p, m, cp, cm string, pts []Point) {
	pairs := make([]string, len(pts))
	for i, pt := range pts {
		pairs[i] = fnum(pt.T) + "v," + fnum(pt.V)
	}
	n.printf("Gs %s %s vcr pwl(1) %s %s %s", p, m, cp, cm, strings.Join(pairs, " "))
}

func (n *netlist) startSubckt(name string, nodes ...string) {
	n.printf(".subckt %s %s", name, strings.Join(nodes, " "))
}

func (n *netlist) endSubckt() {
	n.println(".ends")
}

func (n *netlist) save(sigs ...string) {
	if len(sigs) == 0 {
		return
	}
	n.printf(".save %s", strings.Join(sigs, " "))
}

func (n *netlist) ic(vals map[string]float64) {
	if len(vals) == 0 {
		return
	}
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	terms := make([]string, len(keys))
	for i, k := range keys {
		terms[i] = "v(" + k + ")=" + fnum(vals[k])
	}
	n.printf(".ic %s", strings.Join(terms, " "))
}

func (n *netlist) tran(tStep, tStop float64, uic bool) {
	if uic {
		n.printf(".tran %s %s uic", fnum(tStep), fnum(tStop))
	} else {
		n.printf(".tran %s %s", fnum(tStep), fnum(tStop))
	}
}

func (n *netlist) option(opts ...string) {
	n.printf(".option %s", strings.Join(opts, " "))
}

func (n *netlist) startControl() { n.println(".control") }
func (n *netlist) endControl()   { n.println(".endc") }
func (n *netlist) endFile()      { n.println(".end") }

// switch subcircuit terminals: signal pair and control pair.
const swSubckt = "inout_sw_mod"

// renderTestbench serializes the testbench netlist for comp.
//
func (t *Target) renderTestbench(comp *Compiled) ([]byte, error) {
	ports, err := t.orderedPorts()
	if err != nil {
		return nil, err
	}

	n := &netlist{}
	n.comment("Automatically generated file.")

	for _, f := range t.cfg.ModelPaths {
		n.include(f)
	}

	// DUT first, so that it is X0
	n.instantiate(t.circ.Name, ports...)

	for _, name := range sortedKeys(t.cfg.CapLoads) {
		n.capacitor(name, "0", t.cfg.CapLoads[name])
	}

	// The switch model connects a stimulus source to a DUT pin with
	// resistance ROut when the control differential is near 1 and RZ
	// when near 0. Ngspice takes a behavioral conductance; the other
	// backends take a PWL voltage controlled resistor.
	n.startSubckt(swSubckt, "sw_p", "sw_n", "ctl_p", "ctl_n")
	if t.cfg.Backend == Ngspice {
		a := 1/t.cfg.ROut - 1/t.cfg.RZ
		b := 1 / t.cfg.RZ
		n.printf("Gs sw_p sw_n cur='V(sw_p, sw_n)*(%s*V(ctl_p, ctl_n)+%s)'", fnum(a), fnum(b))
	} else {
		n.vcr("sw_p", "sw_n", "ctl_p", "ctl_n", []Point{{0, t.cfg.RZ}, {1, t.cfg.ROut}})
	}
	n.endSubckt()

	names := make([]string, 0, len(comp.Drives))
	for name := range comp.Drives {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := comp.Drives[name]
		vnet := "__" + name + "_v"
		snet := "__" + name + "_s"
		n.instantiate(swSubckt, vnet, name, snet, "0")
		n.voltage(vnet, "0", d.V)
		n.voltage(snet, "0", d.S)
	}

	saves := make([]string, 0, len(comp.Saves))
	for s := range comp.Saves {
		saves = append(saves, s)
	}
	sort.Strings(saves)
	n.save(saves...)

	ic := make(map[string]float64, len(t.cfg.IC))
	for k, v := range t.cfg.IC {
		if strings.Contains(k, ".") {
			// hierarchical path inside the DUT instance
			ic["X0."+k] = v
		} else {
			ic[k] = v
		}
	}
	n.ic(ic)

	tStep := t.cfg.TStep
	if tStep == 0 {
		tStep = comp.StopTime / 1000
	}
	n.tran(tStep, comp.StopTime, len(ic) > 0)

	switch t.cfg.Backend {
	case Ngspice:
		n.startControl()
		n.println("run")
		n.println("set filetype=ascii")
		n.println("write")
		n.println("exit")
		n.endControl()
	case HSpice:
		n.option("post")
	}

	n.endFile()
	return []byte(n.b.String()), nil
}

// WriteTestbench serializes the testbench for comp into the working
// directory and returns the absolute path of the written file.
//
func (t *Target) WriteTestbench(comp *Compiled) (string, error) {
	b, err := t.renderTestbench(comp)
	if err != nil {
		return "", err
	}
	path := t.workPath(t.circ.Name + "_tb.sp")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", errors.Wrap(err, "write testbench")
	}
	t.log.Debug("wrote testbench", "path", path, "bytes", len(b))
	return path, nil
}

// orderedPorts returns the DUT pin names in instantiation order: port names
// sorted lexically, buses expanded bit by bit in the configured direction.
//
func (t *Target) orderedPorts() ([]string, error) {
	switch t.cfg.ConnOrder {
	case ConnAlpha:
	case ConnParse:
		return nil, configErrorf("subcircuit pin order parsing is not implemented")
	default:
		return nil, configErrorf("unknown conn order %q", t.cfg.ConnOrder)
	}

	ports := make([]fault.Port, len(t.circ.Ports))
	copy(ports, t.circ.Ports)
	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })

	var out []string
	for _, p := range ports {
		if !p.IsBus() {
			out = append(out, p.Name)
			continue
		}
		if t.cfg.BusOrder == Ascend {
			for k := 0; k < p.Width; k++ {
				out = append(out, t.cfg.BusDelim.BitName(p.Name, k))
			}
		} else {
			for k := p.Width - 1; k >= 0; k-- {
				out = append(out, t.cfg.BusDelim.BitName(p.Name, k))
			}
		}
	}
	return out, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
