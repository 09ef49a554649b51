package main

import (
	"fmt"

	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/evaluator"
	"github.com/za-lang/zkcc/internal/optimizer"
	"github.com/za-lang/zkcc/internal/r1cs"
	"github.com/za-lang/zkcc/internal/signal"
)

// CompileCommand runs GenConstraints over a registered program's "main"
// component, optimizes the resulting constraint set, and prints a summary
// of the R1CS producer contract spec.md §6 describes.
func CompileCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: zkc compile <program>")
	}
	build, ok := programs[args[0]]
	if !ok {
		return fmt.Errorf("unknown program %q (known: %v)", args[0], programNames())
	}

	signals := signal.NewStore()
	constraints := constraint.NewStore()

	ev := evaluator.New(evaluator.GenConstraints, nil, signals, constraints)
	if _, err := ev.EvalASTs(build()); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	optimized, removed := optimizer.Optimize(constraints, signals.MainInputIDs())
	circuit := r1cs.New(signals, optimized, removed)

	fmt.Printf("program:        %s\n", args[0])
	fmt.Printf("signals:        %d\n", signals.Len())
	fmt.Printf("constraints:    %d\n", circuit.Constraints.Len())
	fmt.Printf("removed:        %d\n", len(circuit.Removed))
	fmt.Printf("public inputs:  %v\n", signals.MainPublicInputNames())
	return nil
}
