package spice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPwcToPWL(t *testing.T) {
	const tTr = 0.2e-9
	td := []struct {
		name  string
		pwc   []Point
		tStop float64
		init  float64
		want  Waveform
	}{
		{
			name:  "empty",
			pwc:   nil,
			tStop: 1e-8,
			want:  Waveform{{0, 0}, {1e-8, 0}},
		},
		{
			name:  "stepAtStart",
			pwc:   []Point{{0, 1}},
			tStop: 5e-9,
			want:  Waveform{{0, 0}, {tTr, 1}, {5e-9, 1}},
		},
		{
			name:  "initMatchesFirstLevel",
			pwc:   []Point{{0, 1}},
			tStop: 5e-9,
			init:  1,
			want:  Waveform{{0, 1}, {5e-9, 1}},
		},
		{
			name:  "interiorTransitions",
			pwc:   []Point{{0, 0}, {5e-9, 1}, {1e-8, 0}},
			tStop: 2e-8,
			want: Waveform{
				{0, 0},
				{5e-9, 0}, {5e-9 + tTr, 1},
				{1e-8, 1}, {1e-8 + tTr, 0},
				{2e-8, 0},
			},
		},
		{
			name:  "repeatedLevelCollapses",
			pwc:   []Point{{0, 1}, {5e-9, 1}, {1e-8, 1}},
			tStop: 2e-8,
			init:  1,
			want:  Waveform{{0, 1}, {2e-8, 1}},
		},
		{
			name:  "switchOpensFromInit",
			pwc:   []Point{{0, 0}},
			tStop: 5e-9,
			init:  1,
			want:  Waveform{{0, 1}, {tTr, 0}, {5e-9, 0}},
		},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			got := pwcToPWL(d.pwc, d.tStop, tTr, d.init)
			if diff := cmp.Diff(d.want, got); diff != "" {
				t.Errorf("pwcToPWL mismatch (-want +got):\n%s", diff)
			}
			for i := 1; i < len(got); i++ {
				if got[i].T <= got[i-1].T {
					t.Errorf("breakpoint times not strictly increasing at %d: %v", i, got)
				}
			}
		})
	}
}

func TestWaveformString(t *testing.T) {
	w := Waveform{{0, 0}, {2e-10, 1.5}, {5e-9, 1.5}}
	const want = "0 0 2e-10 1.5 5e-09 1.5"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
