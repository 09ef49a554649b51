// Package testdiscovery finds top-level templates tagged "test" and runs
// each one end to end: a GenConstraints pass followed by a GenWitness pass
// against a fresh signal and constraint store, then a witness-satisfaction
// check, the way spec.md §6's "test discovery" contract describes. The
// shape is grounded in the teacher's internal/testing framework
// (TestResult/TestStats/TestReporter), adapted from VM script suites to
// single-template circuit checks — there are no BeforeEach hooks or nested
// suites here, since every discovered template is already an independent
// unit with its own store.
package testdiscovery

import (
	"time"

	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/evaluator"
	"github.com/za-lang/zkcc/internal/r1cs"
	"github.com/za-lang/zkcc/internal/signal"
)

// Result is the outcome of running one test-tagged template.
type Result struct {
	Name     string
	Passed   bool
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Stats aggregates a Run across every discovered template.
type Stats struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Reporter mirrors the teacher's TestReporter, minus suite grouping.
type Reporter interface {
	TestPassed(Result)
	TestFailed(Result)
	TestSkipped(Result)
	Summary(Stats)
}

// Discover returns the name of every top-level template in elements tagged
// "test", in source order.
func Discover(elements []ast.BodyElement) []string {
	var names []string
	for _, be := range elements {
		if td, ok := be.(*ast.TemplateDef); ok && td.M.Attrs.Has("test") {
			names = append(names, td.Name)
		}
	}
	return names
}

// Run drives every discovered test template in elements through
// GenConstraints and GenWitness, reporting each result through rep as it
// completes, and returns the aggregate Stats. loader is passed through to
// the evaluator for any include the program under test pulls in; it may be
// nil for a program with no includes.
func Run(elements []ast.BodyElement, loader evaluator.Loader, rep Reporter) Stats {
	start := time.Now()
	var stats Stats

	for _, name := range Discover(elements) {
		result := runOne(elements, loader, name)
		stats.Total++
		switch {
		case result.Skipped:
			stats.Skipped++
			rep.TestSkipped(result)
		case result.Passed:
			stats.Passed++
			rep.TestPassed(result)
		default:
			stats.Failed++
			rep.TestFailed(result)
		}
	}

	stats.Duration = time.Since(start)
	rep.Summary(stats)
	return stats
}

func isSkipped(elements []ast.BodyElement, name string) bool {
	for _, be := range elements {
		if td, ok := be.(*ast.TemplateDef); ok && td.Name == name {
			return td.M.Attrs.Has("skip")
		}
	}
	return false
}

// runOne evaluates a single test template against its own fresh
// signal/constraint store: a GenConstraints pass registers the template's
// declarations and emits its constraints, then a GenWitness pass computes
// every signal's value and checks each `===` along the way, and finally
// r1cs.Witness.Satisfies re-checks the whole constraint set against the
// computed witness.
func runOne(elements []ast.BodyElement, loader evaluator.Loader, name string) Result {
	t0 := time.Now()

	if isSkipped(elements, name) {
		return Result{Name: name, Skipped: true, Duration: time.Since(t0)}
	}

	signals := signal.NewStore()
	constraints := constraint.NewStore()

	cev := evaluator.New(evaluator.GenConstraints, loader, signals, constraints)
	root, err := cev.EvalASTs(elements)
	if err == nil {
		err = cev.EvalTemplate(root, name)
	}
	if err != nil {
		return Result{Name: name, Duration: time.Since(t0), Err: err}
	}

	wev := evaluator.New(evaluator.GenWitness, loader, signals, constraints)
	root, err = wev.EvalASTs(elements)
	if err == nil {
		err = wev.EvalTemplate(root, name)
	}
	if err != nil {
		return Result{Name: name, Duration: time.Since(t0), Err: err}
	}

	w := &r1cs.Witness{Signals: signals}
	if err := w.Satisfies(constraints); err != nil {
		return Result{Name: name, Duration: time.Since(t0), Err: err}
	}

	return Result{Name: name, Passed: true, Duration: time.Since(t0)}
}
