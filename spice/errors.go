// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"fmt"
	"strings"

	"github.com/Zuhairhadi/fault"
)

// A ConfigError reports an invalid Target configuration: an unsupported
// backend, an unknown bus delimiter, or an unimplemented port ordering mode.
// It is raised before any file or process I/O.
//
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// An UnsupportedActionError reports an action variant that has no
// compilation rule. It aborts the run.
//
type UnsupportedActionError struct {
	Action fault.Action
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("no compilation rule for action of type %T", e.Action)
}

// An A2DError reports a sampled voltage that falls strictly between the
// logic-low and logic-high thresholds during a digital check.
//
type A2DError struct {
	Signal string
	Value  float64
}

func (e *A2DError) Error() string {
	return fmt.Sprintf("invalid logic level on %s: %v", e.Signal, e.Value)
}

// An AssertionError reports a failed Expect. Cond describes the expected
// condition, Actual the observed value.
//
type AssertionError struct {
	Signal string
	Cond   string
	Actual float64
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %v", e.Signal, e.Cond, e.Actual)
}

// A ProcessError reports a simulator or converter command that exited with a
// nonzero status. It aborts the pipeline before result parsing.
//
type ProcessError struct {
	Args   []string
	Output string
	Err    error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
