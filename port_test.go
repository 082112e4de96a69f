package fault_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Zuhairhadi/fault"
)

func TestParsePorts(t *testing.T) {
	td := []struct {
		name    string
		spec    string
		want    []fault.Port
		wantErr bool
	}{
		{"scalars", "a, b", []fault.Port{
			{Name: "a", Width: 1, Kind: fault.Bit},
			{Name: "b", Width: 1, Kind: fault.Bit},
		}, false},
		{"bus", "din[4]", []fault.Port{
			{Name: "din", Width: 4, Kind: fault.Bus},
		}, false},
		{"mixed", " clk ,din[8], out ", []fault.Port{
			{Name: "clk", Width: 1, Kind: fault.Bit},
			{Name: "din", Width: 8, Kind: fault.Bus},
			{Name: "out", Width: 1, Kind: fault.Bit},
		}, false},
		{"empty", "", nil, false},
		{"badWidth", "din[x]", nil, true},
		{"noBracket", "din[4", nil, true},
		{"zeroWidth", "din[0]", nil, true},
		{"emptyBusName", "[4]", nil, true},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			got, err := fault.ParsePorts(d.spec)
			if d.wantErr {
				if err == nil {
					t.Fatalf("ParsePorts(%q): expected error", d.spec)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.want, got); diff != "" {
				t.Errorf("ParsePorts(%q) mismatch (-want +got):\n%s", d.spec, diff)
			}
		})
	}
}

func TestInputsOutputsDir(t *testing.T) {
	in, err := fault.Inputs("a, din[2]")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range in {
		if p.Dir != fault.In {
			t.Errorf("port %s: dir = %v, want In", p.Name, p.Dir)
		}
	}
	out, err := fault.Outputs("q")
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Dir != fault.Out {
		t.Errorf("port q: dir = %v, want Out", out[0].Dir)
	}
}

func TestBitName(t *testing.T) {
	td := []struct {
		delim fault.BusDelim
		want  string
	}{
		{fault.DelimAngle, "din<3>"},
		{fault.DelimBracket, "din[3]"},
		{fault.DelimUnderscore, "din_3"},
	}
	for _, d := range td {
		t.Run(string(d.delim), func(t *testing.T) {
			if got := d.delim.BitName("din", 3); got != d.want {
				t.Errorf("BitName = %q, want %q", got, d.want)
			}
		})
	}
	if fault.BusDelim("#").Valid() {
		t.Error("# should not be a valid delimiter")
	}
}

func TestCircuitPort(t *testing.T) {
	c := fault.Circuit{Name: "dut", Ports: []fault.Port{
		{Name: "a", Width: 1, Kind: fault.Bit},
		{Name: "out", Width: 1, Kind: fault.Analog},
	}}
	p, ok := c.Port("out")
	if !ok || p.Kind != fault.Analog {
		t.Errorf("Port(out) = %+v, %v", p, ok)
	}
	if _, ok := c.Port("nope"); ok {
		t.Error("Port(nope) should not exist")
	}
}
