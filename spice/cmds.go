// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

// A Command is one external invocation: the executable followed by its
// arguments. Commands run in the target's working directory and must be
// executed in order; a nonzero exit aborts the run.
//
type Command struct {
	Args []string
}

// SimCommands maps the configured backend to its command list for the given
// testbench file and returns, with the commands, the path of the trace file
// the last command produces.
//
// Ngspice and spectre each need a single command writing the raw trace
// directly. HSpice needs two: the simulation itself, then a conversion of
// the intermediate .tr0 trace into PSF.
//
func (t *Target) SimCommands(tbPath string) ([]Command, string, error) {
	flags := t.cfg.Flags
	switch t.cfg.Backend {
	case Ngspice:
		raw := t.workPath("out.raw")
		args := append([]string{"ngspice", "-b", tbPath, "-r", raw}, flags...)
		return []Command{{Args: args}}, raw, nil

	case Spectre:
		raw := t.workPath("out.raw")
		args := append([]string{"spectre", tbPath, "-format", "nutascii", "-raw", raw}, flags...)
		return []Command{{Args: args}}, raw, nil

	case HSpice:
		out := t.workPath("out.raw")
		sim := append([]string{"hspice", "-i", tbPath, "-o", out}, flags...)
		psf := t.workPath("out.psf")
		conv := []string{
			"converter",
			"-t", "PSF",
			"-i", out + ".tr0",
			"-o", psf[:len(psf)-len(".psf")],
			"-a",
		}
		return []Command{{Args: sim}, {Args: conv}}, psf, nil
	}
	return nil, "", configErrorf("unsupported simulator %q", t.cfg.Backend)
}
