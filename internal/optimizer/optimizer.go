// Package optimizer implements the three-pass constraint reduction spec.md
// §4.4 describes: normalize degenerate quadratic terms into pure-linear
// constraints, eliminate linear equivalences between two signals, then
// substitute the surviving replacements everywhere, repeated three times
// to catch chains the first pass only partially resolves.
package optimizer

import (
	"log"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/field"
)

// change is a pending substitution: a signal being eliminated is rewritten
// everywhere as replaceF * <replaceS>.
type change struct {
	replaceS algebra.SignalID
	replaceF field.FS
}

// Optimize runs the reduction three times in sequence, matching the
// teacher's "run it three times to converge on transitive chains" choice,
// and returns the optimized store plus every signal id the passes removed,
// sorted ascending.
func Optimize(store *constraint.Store, irreducible []algebra.SignalID) (*constraint.Store, []algebra.SignalID) {
	s1, r1 := OptimizePass(store, irreducible)
	log.Printf("optimizer pass 1: %s constraints, %s signals removed", humanize.Comma(int64(s1.Len())), humanize.Comma(int64(len(r1))))
	s2, r2 := OptimizePass(s1, irreducible)
	log.Printf("optimizer pass 2: %s constraints, %s signals removed", humanize.Comma(int64(s2.Len())), humanize.Comma(int64(len(r2))))
	s3, r3 := OptimizePass(s2, irreducible)
	log.Printf("optimizer pass 3: %s constraints, %s signals removed", humanize.Comma(int64(s3.Len())), humanize.Comma(int64(len(r3))))

	removed := append(append(r1, r2...), r3...)
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return s3, removed
}
