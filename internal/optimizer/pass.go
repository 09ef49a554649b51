package optimizer

import (
	"sort"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/field"
)

// OptimizePass runs one normalize/eliminate/substitute cycle over store and
// returns a fresh, optimized store plus the signal ids it eliminated.
func OptimizePass(store *constraint.Store, irreducible []algebra.SignalID) (*constraint.Store, []algebra.SignalID) {
	isIrreducible := make(map[algebra.SignalID]bool, len(irreducible))
	for _, s := range irreducible {
		isIrreducible[s] = true
	}

	replaces := make(map[algebra.SignalID]change)
	removedConstraint := make(map[int]bool)

	items := store.All()
	normalized := make([]algebra.QEQ, len(items))
	for i, c := range items {
		normalized[i] = normalize(c.QEQ)
	}

	// Eliminate: a pure-linear, two-term constraint `c1*s1+c2*s2=0`
	// defines s1 in terms of s2 (or vice versa), unless both are
	// irreducible — in which case nothing can be eliminated.
	for i, q := range normalized {
		if !q.A.IsZero() || !q.B.IsZero() {
			continue
		}
		terms := q.C.Terms()
		if len(terms) != 2 {
			continue
		}
		first, second := terms[0], terms[1]
		firstIrr, secondIrr := isIrreducible[first.Signal], isIrreducible[second.Signal]

		var search, replace struct {
			Signal algebra.SignalID
			Coeff  field.FS
		}
		switch {
		case !firstIrr && secondIrr:
			search, replace = first, second
		case firstIrr && !secondIrr:
			search, replace = second, first
		case !firstIrr && !secondIrr:
			if first.Signal > second.Signal {
				search, replace = first, second
			} else {
				search, replace = second, first
			}
		default:
			continue // both irreducible: cannot eliminate either
		}

		if _, already := replaces[search.Signal]; already {
			continue
		}

		quotient, err := replace.Coeff.Div(search.Coeff)
		if err != nil {
			continue // degenerate coefficient, leave the constraint intact
		}
		replaceS := replace.Signal
		replaceF := quotient.Neg()

		for {
			next, ok := replaces[replaceS]
			if !ok {
				break
			}
			replaceS = next.replaceS
			replaceF = replaceF.Mul(next.replaceF)
		}

		replaces[search.Signal] = change{replaceS: replaceS, replaceF: replaceF}
		removedConstraint[i] = true
	}

	// Close the replacement map transitively: a chain s -> r -> r2 must
	// collapse to s -> r2 directly, since r is itself being removed.
	for changed := true; changed; {
		changed = false
		for s, c := range replaces {
			if c2, ok := replaces[c.replaceS]; ok {
				replaces[s] = change{replaceS: c2.replaceS, replaceF: c.replaceF.Mul(c2.replaceF)}
				changed = true
			}
		}
	}

	out := constraint.NewStore()
	for i, q := range normalized {
		if removedConstraint[i] {
			continue
		}
		out.Push(substitute(q, replaces), items[i].Tag)
	}

	removed := make([]algebra.SignalID, 0, len(replaces))
	for s := range replaces {
		removed = append(removed, s)
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })

	return out, removed
}

// normalize rewrites a constraint whose A or B side is SIGNAL_ONE-only into
// an equivalent pure-linear constraint: [a][c2*1]+[c3] becomes
// [][]+[c2*a+c3], and symmetrically for B.
func normalize(q algebra.QEQ) algebra.QEQ {
	if aTerms := q.A.Terms(); len(aTerms) == 1 && aTerms[0].Signal == algebra.SignalOne {
		return algebra.QEQ{A: algebra.NewLC(), B: algebra.NewLC(), C: q.C.Add(q.B.MulFS(aTerms[0].Coeff))}
	}
	if bTerms := q.B.Terms(); len(bTerms) == 1 && bTerms[0].Signal == algebra.SignalOne {
		return algebra.QEQ{A: algebra.NewLC(), B: algebra.NewLC(), C: q.C.Add(q.A.MulFS(bTerms[0].Coeff))}
	}
	return q
}

// substitute rewrites every signal reference in q that appears in replaces.
func substitute(q algebra.QEQ, replaces map[algebra.SignalID]change) algebra.QEQ {
	return algebra.NewQEQ(substituteLC(q.A, replaces), substituteLC(q.B, replaces), substituteLC(q.C, replaces))
}

func substituteLC(lc algebra.LC, replaces map[algebra.SignalID]change) algebra.LC {
	out := algebra.NewLC()
	for _, t := range lc.Terms() {
		if c, ok := replaces[t.Signal]; ok {
			out = out.Set(c.replaceS, func(cur field.FS, present bool) field.FS {
				if !present {
					return t.Coeff.Mul(c.replaceF)
				}
				return cur.Add(t.Coeff.Mul(c.replaceF))
			})
			continue
		}
		out = out.Set(t.Signal, func(cur field.FS, present bool) field.FS {
			if !present {
				return t.Coeff
			}
			return cur.Add(t.Coeff)
		})
	}
	return out
}
