package fault_test

import (
	"testing"

	"github.com/Zuhairhadi/fault"
)

func TestValueBit(t *testing.T) {
	v := fault.Logic(0b1010)
	td := []struct {
		k    int
		want uint64
	}{
		{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0},
	}
	for _, d := range td {
		b, err := v.Bit(d.k)
		if err != nil {
			t.Fatal(err)
		}
		if b.Uint64() != d.want {
			t.Errorf("Logic(0b1010).Bit(%d) = %v, want %d", d.k, b, d.want)
		}
	}
}

func TestValueBitHiZ(t *testing.T) {
	// HiZ has no finite bit pattern: every bit is HiZ
	for k := 0; k < 4; k++ {
		b, err := fault.HiZ.Bit(k)
		if err != nil {
			t.Fatal(err)
		}
		if !b.IsHiZ() {
			t.Errorf("HiZ.Bit(%d) = %v, want HiZ", k, b)
		}
	}
}

func TestValueBitAnalog(t *testing.T) {
	if _, err := fault.Volt(0.5).Bit(0); err == nil {
		t.Error("indexing an analog value should fail")
	}
}

func TestValueFloat64(t *testing.T) {
	td := []struct {
		name string
		v    fault.Value
		want float64
	}{
		{"logic", fault.Logic(5), 5},
		{"volt", fault.Volt(0.35), 0.35},
		{"hiz", fault.HiZ, 0},
		{"zero", fault.Value{}, 0},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if got := d.v.Float64(); got != d.want {
				t.Errorf("Float64() = %v, want %v", got, d.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	td := []struct {
		v    fault.Value
		want string
	}{
		{fault.HiZ, "HiZ"},
		{fault.Logic(12), "12"},
		{fault.Volt(0.5), "0.5"},
	}
	for _, d := range td {
		if got := d.v.String(); got != d.want {
			t.Errorf("String() = %q, want %q", got, d.want)
		}
	}
}
