// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// faultsim compiles an HCL test bench into a SPICE testbench netlist and
// optionally runs the configured simulator.
//
//	faultsim [-dir build] [-run] [-v] bench.hcl
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault/bench"
	"github.com/Zuhairhadi/fault/spice"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "faultsim:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("faultsim", flag.ContinueOnError)
	var (
		dir     = fs.String("dir", "", "override the working directory")
		doRun   = fs.Bool("run", false, "execute the simulator commands after writing the netlist")
		verbose = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: faultsim [flags] <bench.hcl>")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	b, err := bench.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if *dir != "" {
		b.Config.Dir = *dir
	}
	b.Config.Out = out
	b.Config.Logger = logger

	t, err := spice.New(b.Circuit, b.Config)
	if err != nil {
		return err
	}
	comp, err := t.Compile(b.Actions)
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

	fmt.Fprintln(out, "netlist:", tb)
	for _, c := range cmds {
		fmt.Fprintln(out, "command:", strings.Join(c.Args, " "))
	}

	if !*doRun {
		return nil
	}
	if err := t.RunCommands(cmds); err != nil {
		return err
	}
	fmt.Fprintln(out, "trace:", raw)
	return nil
}
