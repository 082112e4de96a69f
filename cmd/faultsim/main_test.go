package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBench = `
circuit "inv" {
  inputs  = "a"
  outputs = "y"
}

target {
  simulator   = "ngspice"
  model_paths = ["inv.sp"]
}

poke "a" { value = 1 }
expect "y" { value = 0 }
`

func TestRunCompileOnly(t *testing.T) {
	dir := t.TempDir()
	benchFile := filepath.Join(dir, "inv.hcl")
	if err := os.WriteFile(benchFile, []byte(sampleBench), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run(&out, []string{"-dir", filepath.Join(dir, "build"), benchFile})
	if err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "netlist: ") {
		t.Errorf("output missing netlist path:\n%s", got)
	}
	if !strings.Contains(got, "command: ngspice -b ") {
		t.Errorf("output missing ngspice command:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "inv_tb.sp")); err != nil {
		t.Errorf("testbench not written: %v", err)
	}
}

func TestRunUsageErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, nil); err == nil {
		t.Error("expected usage error with no arguments")
	}
	if err := run(&out, []string{"a.hcl", "b.hcl"}); err == nil {
		t.Error("expected usage error with two arguments")
	}
}
