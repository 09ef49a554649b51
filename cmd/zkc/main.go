// cmd/zkc is the reference CLI host for the R1CS compiler core: a thin
// wrapper dispatching to package evaluator, package optimizer and package
// r1cs against the small built-in circuit registry in programs.go, the
// way cmd/sentra wraps the language's VM and compiler passes.
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "0.1.0"

// commandAliases mirrors the teacher's short-form aliases for its own
// subcommands.
var commandAliases = map[string]string{
	"c": "compile",
	"w": "witness",
	"t": "test",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Printf("zkc %s\n", version)
	case "compile":
		if err := CompileCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "witness":
		if err := WitnessCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "test":
		if err := TestCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("zkc - R1CS arithmetic-circuit compiler core")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zkc compile <program>              Run GenConstraints + optimize, print summary   (alias: c)")
	fmt.Println("  zkc witness <program> <inputs.json> Run GenConstraints + GenWitness, check          (alias: w)")
	fmt.Println("  zkc test [program...]               Run test-tagged templates via testdiscovery     (alias: t)")
	fmt.Println()
	fmt.Printf("Known programs: %v\n", programNames())
}
