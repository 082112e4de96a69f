package spice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
	"github.com/Zuhairhadi/fault/spice"
)

func TestNewConfigErrors(t *testing.T) {
	td := []struct {
		name string
		cfg  spice.Config
	}{
		{"unknownBackend", spice.Config{Backend: "xyzzy"}},
		{"unknownConnOrder", spice.Config{ConnOrder: "random"}},
		{"unknownBusDelim", spice.Config{BusDelim: "##"}},
		{"unknownBusOrder", spice.Config{BusOrder: "sideways"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			cfg := d.cfg
			cfg.Dir = filepath.Join(t.TempDir(), "work")
			_, err := spice.New(testCircuit(), cfg)
			var ce *spice.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
			// configuration errors come before any filesystem write
			if _, err := os.Stat(cfg.Dir); !os.IsNotExist(err) {
				t.Errorf("working directory %s was created", cfg.Dir)
			}
		})
	}
}

func TestNewCreatesWorkingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	if _, err := spice.New(testCircuit(), spice.Config{Dir: dir}); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("working directory %s not created: %v", dir, err)
	}
}

func TestRunPipeline(t *testing.T) {
	// end-to-end, substituting "true" for the simulator binary and a
	// canned trace for the parser
	tgt := newTarget(t, spice.Config{})
	c := tgt.Circuit()
	a := port(c, "a", t)

	comp, err := tgt.Compile([]fault.Action{
		fault.Poke{Port: a, Value: fault.Logic(1)},
		fault.Expect{Port: a, Value: fault.Logic(1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	tb, err := tgt.WriteTestbench(comp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(tb); err != nil {
		t.Fatal(err)
	}
	if err := tgt.RunCommands([]spice.Command{{Args: []string{"true"}}}); err != nil {
		t.Fatal(err)
	}
	res := spice.Results{"a": spice.Interp([]spice.Point{{0, 0}, {0.2e-9, 1}, {5e-9, 1}})}
	if err := tgt.Interpret(res, comp); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
}
