package algebra

import (
	"strconv"

	"github.com/za-lang/zkcc/internal/field"
)

// QEQ is a quadratic equation A*B+C, the shape every R1CS constraint takes.
type QEQ struct {
	A, B, C LC
}

// NewQEQ builds a QEQ from its three linear combinations.
func NewQEQ(a, b, c LC) QEQ { return QEQ{A: a, B: b, C: c} }

// QEQFromFS lifts a field scalar into a QEQ as a pure-constant C term.
func QEQFromFS(fs field.FS) QEQ {
	return QEQ{C: LCFromFS(fs)}
}

// QEQFromLC lifts a linear combination into a QEQ as a pure-linear C term.
func QEQFromLC(lc LC) QEQ {
	return QEQ{C: lc}
}

// IsZero reports whether the equation trivially holds for any signal
// assignment: either A or B vanishes, and C vanishes too.
func (q QEQ) IsZero() bool {
	return (q.A.IsZero() || q.B.IsZero()) && q.C.IsZero()
}

// IsLinear reports whether the quadratic term vanishes because A or B is
// empty, leaving C as the whole equation. A side that is a SIGNAL_ONE-only
// constant is not detected here; the optimizer's normalize handles that case
// itself.
func (q QEQ) IsLinear() bool {
	return q.A.IsZero() || q.B.IsZero()
}

// AddFS returns q+fs.
func (q QEQ) AddFS(fs field.FS) QEQ {
	return QEQ{A: q.A, B: q.B, C: q.C.AddFS(fs)}
}

// MulFS returns q*fs.
func (q QEQ) MulFS(fs field.FS) QEQ {
	return QEQ{A: q.A.MulFS(fs), B: q.B, C: q.C.MulFS(fs)}
}

// AddLC returns q+lc.
func (q QEQ) AddLC(lc LC) QEQ {
	return QEQ{A: q.A, B: q.B, C: q.C.Add(lc)}
}

// Neg returns -q.
func (q QEQ) Neg() QEQ {
	return QEQ{A: q.A.Neg(), B: q.B, C: q.C.Neg()}
}

// Format renders q as "[A]*[B]+[C]" using nameFn to render signal ids.
func (q QEQ) Format(nameFn func(SignalID) string) string {
	side := func(lc LC) string {
		if len(lc.terms) == 0 {
			return " "
		}
		return lc.Format(nameFn)
	}
	return "[" + side(q.A) + "]*[" + side(q.B) + "]+[" + side(q.C) + "]"
}

func (q QEQ) String() string {
	return q.Format(func(s SignalID) string { return "s" + strconv.Itoa(int(s)) })
}
