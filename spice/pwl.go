// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"strconv"
	"strings"
)

// A Point is a (time, value) breakpoint.
//
type Point struct {
	T float64
	V float64
}

// A Waveform is a piecewise linear function of time given by breakpoints
// with strictly increasing times, defined on [0, stop time].
//
type Waveform []Point

// String renders w as the breakpoint list of a SPICE PWL source.
//
func (w Waveform) String() string {
	var b strings.Builder
	for i, p := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fnum(p.T))
		b.WriteByte(' ')
		b.WriteString(fnum(p.V))
	}
	return b.String()
}

// pwcToPWL converts a piecewise constant timeline into a PWL waveform
// spanning [0, tStop]. Each level change becomes a linear ramp of duration
// tTr starting at the step time. The init level is held from t=0 until the
// first step.
//
func pwcToPWL(pwc []Point, tStop, tTr, init float64) Waveform {
	w := Waveform{{T: 0, V: init}}
	cur := init
	for _, p := range pwc {
		if p.V == cur {
			continue
		}
		if last := w[len(w)-1].T; p.T <= last {
			// step at the waveform start: ramp immediately
			w = append(w, Point{T: last + tTr, V: p.V})
		} else {
			w = append(w, Point{T: p.T, V: cur}, Point{T: p.T + tTr, V: p.V})
		}
		cur = p.V
	}
	if last := w[len(w)-1].T; tStop > last {
		w = append(w, Point{T: tStop, V: cur})
	}
	return w
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
