package main

import (
	"fmt"

	"github.com/za-lang/zkcc/internal/testdiscovery"
)

// TestCommand runs every test-tagged template in the named programs (or,
// with no arguments, every registered program) through
// internal/testdiscovery, running every named program before returning an
// error if any of them had a failing test.
func TestCommand(args []string) error {
	names := args
	if len(names) == 0 {
		names = programNames()
	}

	rep := testdiscovery.NewTextReporter()
	anyFailed := false
	for _, name := range names {
		build, ok := programs[name]
		if !ok {
			return fmt.Errorf("unknown program %q (known: %v)", name, programNames())
		}
		fmt.Printf("-- %s --\n", name)
		stats := testdiscovery.Run(build(), nil, rep)
		if stats.Failed > 0 {
			anyFailed = true
		}
	}
	if anyFailed {
		return fmt.Errorf("one or more tests failed")
	}
	return nil
}
