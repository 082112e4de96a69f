package spice_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault"
	"github.com/Zuhairhadi/fault/spice"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// testCircuit is the DUT used by most tests: two digital inputs, one of them
// a bus, and an analog output.
func testCircuit() fault.Circuit {
	return fault.Circuit{
		Name: "dut",
		Ports: []fault.Port{
			{Name: "a", Width: 1, Kind: fault.Bit, Dir: fault.In},
			{Name: "din", Width: 4, Kind: fault.Bus, Dir: fault.In},
			{Name: "out", Width: 1, Kind: fault.Analog, Dir: fault.Out},
		},
	}
}

func newTarget(t *testing.T, cfg spice.Config) *spice.Target {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	tgt, err := spice.New(testCircuit(), cfg)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return tgt
}
