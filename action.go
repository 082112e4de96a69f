// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package fault

// An Action is one step of a test vector. The concrete types are Poke,
// Expect, Print and Delay; no other implementations exist. Actions are
// immutable value records: bus expansion copies them by value, it never
// aliases into the original.
//
type Action interface {
	isAction()
}

// Poke drives a port to a value, then advances the virtual clock by Delay
// seconds, or by the target's default step when Delay is nil.
//
type Poke struct {
	Port  Port
	Value Value
	Delay *float64
}

// Expect checks the value of a port at the current virtual time. Exactly one
// style applies: a range check when both Above and Below are set, a single
// bound when only one is set, and equality against Value otherwise.
// It does not advance time.
//
type Expect struct {
	Port   Port
	Value  Value
	Above  *float64
	Below  *float64
	Strict bool
}

// Print samples the listed ports at the current virtual time and renders
// them with the given fmt format string. It does not advance time.
//
type Print struct {
	Ports  []Port
	Format string
}

// Delay advances the virtual clock by Duration seconds.
//
type Delay struct {
	Duration float64
}

func (Poke) isAction()   {}
func (Expect) isAction() {}
func (Print) isAction()  {}
func (Delay) isAction()  {}

// Ptr returns a pointer to v. It is a convenience for the optional Delay,
// Above and Below action fields.
//
func Ptr(v float64) *float64 { return &v }
