// Copyright 2025 The fault authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package spice

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// RunCommands executes the commands in order in the working directory, with
// the configured environment overrides applied. Execution is strictly
// sequential and blocking; the first nonzero exit yields a ProcessError and
// aborts the remaining commands.
//
func (t *Target) RunCommands(cmds []Command) error {
	for _, c := range cmds {
		if err := t.runCommand(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Target) runCommand(c Command) error {
	if len(c.Args) == 0 {
		return errors.New("empty command")
	}
	t.log.Info("running simulator command", "args", c.Args)
	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = t.cfg.Dir
	if len(t.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), t.cfg.Env...)
	}
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		t.log.Debug("simulator output", "cmd", c.Args[0], "output", string(out))
	}
	if err != nil {
		return &ProcessError{Args: c.Args, Output: string(out), Err: err}
	}
	return nil
}
