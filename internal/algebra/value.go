package algebra

import "github.com/za-lang/zkcc/internal/field"

// Kind tags which alternative a Value currently holds.
type Kind int

const (
	KindFS Kind = iota
	KindLC
	KindQEQ
)

// Value is the tagged union over the three algebraic layers every
// expression evaluates to: a field scalar, a linear combination, or a
// quadratic equation. Exactly one of fs/lc/qeq is meaningful, selected by
// Kind.
type Value struct {
	kind Kind
	fs   field.FS
	lc   LC
	qeq  QEQ
}

// FromFS wraps a field scalar as a Value.
func FromFS(fs field.FS) Value { return Value{kind: KindFS, fs: fs} }

// FromLC wraps a linear combination as a Value.
func FromLC(lc LC) Value { return Value{kind: KindLC, lc: lc} }

// FromQEQ wraps a quadratic equation as a Value.
func FromQEQ(qeq QEQ) Value { return Value{kind: KindQEQ, qeq: qeq} }

// FromSignal returns the Value `1*signal`, the representation every bare
// signal reference evaluates to.
func FromSignal(signal SignalID) Value {
	return FromLC(LCFromSignal(signal, field.One()))
}

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

// AsFS returns v's field-scalar payload and whether v.Kind() == KindFS.
func (v Value) AsFS() (field.FS, bool) { return v.fs, v.kind == KindFS }

// AsLC returns v's linear-combination payload and whether v.Kind() == KindLC.
func (v Value) AsLC() (LC, bool) { return v.lc, v.kind == KindLC }

// AsQEQ returns v's quadratic-equation payload and whether v.Kind() == KindQEQ.
func (v Value) AsQEQ() (QEQ, bool) { return v.qeq, v.kind == KindQEQ }

// IntoQEQ widens v to its QEQ representation regardless of kind, the
// universal upcast every constraint-emitting consumer uses.
func (v Value) IntoQEQ() QEQ {
	switch v.kind {
	case KindFS:
		return QEQFromFS(v.fs)
	case KindLC:
		return QEQFromLC(v.lc)
	default:
		return v.qeq
	}
}

// TryToSignal returns the sole signal v refers to, if v is exactly
// `1*signal` — used to recognize a bare signal reference on the left of a
// signal-assignment operator.
func (v Value) TryToSignal() (SignalID, bool) {
	if v.kind != KindLC {
		return 0, false
	}
	terms := v.lc.terms
	if len(terms) == 1 && terms[0].coeff.IsOne() {
		return terms[0].signal, true
	}
	return 0, false
}

// TryIntoFS returns v's field-scalar payload, if v.Kind() == KindFS.
func (v Value) TryIntoFS() (field.FS, bool) {
	return v.AsFS()
}
