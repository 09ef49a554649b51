package testdiscovery

import (
	"fmt"
	"strings"
)

// TextReporter prints human-readable results to stdout, in the teacher's
// colored-symbol style (internal/testing/reporters.go) flattened to a
// single list since there is no suite nesting here.
type TextReporter struct{}

func NewTextReporter() *TextReporter { return &TextReporter{} }

func (r *TextReporter) TestPassed(res Result) {
	fmt.Printf("\033[32m✓\033[0m %s (%v)\n", res.Name, res.Duration)
}

func (r *TextReporter) TestFailed(res Result) {
	fmt.Printf("\033[31m✗\033[0m %s (%v)\n", res.Name, res.Duration)
	if res.Err != nil {
		fmt.Printf("  Error: %v\n", res.Err)
	}
}

func (r *TextReporter) TestSkipped(res Result) {
	fmt.Printf("\033[33m⊘\033[0m %s (skipped)\n", res.Name)
}

func (r *TextReporter) Summary(stats Stats) {
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Total: %d  Passed: %d  Failed: %d  Skipped: %d  (%v)\n",
		stats.Total, stats.Passed, stats.Failed, stats.Skipped, stats.Duration)
	if stats.Failed == 0 {
		fmt.Println("\033[32mall tests passed\033[0m")
	} else {
		fmt.Println("\033[31msome tests failed\033[0m")
	}
}
