/*
Package fault provides the data model for driving analog circuit simulations
from digital test vectors.

A test is an ordered sequence of abstract actions: drive a pin (Poke), check a
value (Expect), wait (Delay) or report (Print). Circuits under test may be
partly or fully analog, so "0/1" semantics must be realized as voltage
waveforms and simulator traces reduced back to logic levels. This package
defines the actions, values and ports shared by the compilation pipeline; the
spice subpackage compiles action sequences into netlists for external SPICE
simulators and interprets their output.

*/
package fault
