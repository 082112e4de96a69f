package spice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/Zuhairhadi/fault/spice"
)

func TestRunCommands(t *testing.T) {
	tgt := newTarget(t, spice.Config{})
	if err := tgt.RunCommands([]spice.Command{
		{Args: []string{"true"}},
		{Args: []string{"true"}},
	}); err != nil {
		t.Fatal(err)
	}
}

func TestRunCommandsNonzeroExit(t *testing.T) {
	tgt := newTarget(t, spice.Config{})
	err := tgt.RunCommands([]spice.Command{{Args: []string{"false"}}})
	var pe *spice.ProcessError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProcessError", err)
	}
	if len(pe.Args) == 0 || pe.Args[0] != "false" {
		t.Errorf("ProcessError.Args = %v", pe.Args)
	}
}

func TestRunCommandsAbortOnFailure(t *testing.T) {
	tgt := newTarget(t, spice.Config{})
	err := tgt.RunCommands([]spice.Command{
		{Args: []string{"false"}},
		{Args: []string{"touch", "after"}},
	})
	if err == nil {
		t.Fatal("expected ProcessError")
	}
	// the second command must not have run
	if _, err := os.Stat(filepath.Join(tgt.Dir(), "after")); !os.IsNotExist(err) {
		t.Error("command after a failing one was executed")
	}
}
