// Package field implements FS, the field-scalar value described in
// spec.md §3: an element of Z/pZ where p is the BN254/BabyJubJub scalar
// field modulus. Arithmetic is delegated to gnark-crypto's generated
// Montgomery-form element type rather than hand-rolled big.Int modular
// arithmetic — every field-arithmetic-heavy repo in this corpus eventually
// bottoms out on gnark-crypto, so FS is a thin, canonicalizing wrapper
// around it instead of a reimplementation.
package field

import (
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/za-lang/zkcc/internal/zkerr"
)

// FS is a field scalar in [0, p).
type FS struct {
	v fr.Element
}

// Modulus returns the scalar field modulus, the same constant spec.md §3
// names explicitly.
func Modulus() *big.Int {
	return fr.Modulus()
}

var halfModulus = new(big.Int).Rsh(Modulus(), 1)

// Zero returns the additive identity.
func Zero() FS { return FS{} }

// One returns the multiplicative identity.
func One() FS {
	var fs FS
	fs.v.SetOne()
	return fs
}

// FromUint64 lifts a small unsigned integer into the field.
func FromUint64(n uint64) FS {
	var fs FS
	fs.v.SetUint64(n)
	return fs
}

// FromBigInt reduces an arbitrary-precision integer modulo p.
func FromBigInt(n *big.Int) FS {
	var fs FS
	fs.v.SetBigInt(n)
	return fs
}

// Parse reads a decimal or 0x-prefixed hexadecimal string into a field
// scalar, per spec.md §3 ("Parseable from decimal or 0x-hex strings").
func Parse(expr string) (FS, error) {
	base := 10
	digits := expr
	if strings.HasPrefix(expr, "0x") || strings.HasPrefix(expr, "0X") {
		base = 16
		digits = expr[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return FS{}, zkerr.New(zkerr.Parse, "%q is not a valid %s integer", expr, map[int]string{10: "decimal", 16: "hexadecimal"}[base])
	}
	return FromBigInt(n), nil
}

// BigInt returns the canonical [0, p) representative.
func (a FS) BigInt() *big.Int {
	var n big.Int
	a.v.BigInt(&n)
	return &n
}

// IsZero reports whether a is the additive identity.
func (a FS) IsZero() bool { return a.v.IsZero() }

// IsOne reports whether a is the multiplicative identity.
func (a FS) IsOne() bool { return a.v.IsOne() }

// IsNeg reports whether the canonical representative exceeds p/2 — the
// "negative" half of the field, per spec.md §3.
func (a FS) IsNeg() bool {
	return a.BigInt().Cmp(halfModulus) > 0
}

// Eq reports exact equality of the canonical representatives.
func (a FS) Eq(b FS) bool { return a.v.Equal(&b.v) }

// Cmp orders two field scalars by their canonical representative.
func (a FS) Cmp(b FS) int { return a.BigInt().Cmp(b.BigInt()) }

// Add returns a+b.
func (a FS) Add(b FS) FS {
	var r FS
	r.v.Add(&a.v, &b.v)
	return r
}

// Sub returns a-b.
func (a FS) Sub(b FS) FS {
	var r FS
	r.v.Sub(&a.v, &b.v)
	return r
}

// Neg returns -a.
func (a FS) Neg() FS {
	var r FS
	r.v.Neg(&a.v)
	return r
}

// Mul returns a*b.
func (a FS) Mul(b FS) FS {
	var r FS
	r.v.Mul(&a.v, &b.v)
	return r
}

// Inverse returns 1/a, computed via the field's extended-Euclidean based
// inversion. gcd(a, p) != 1 only ever happens for a == 0, which is the
// Algebra error spec.md §4.1 calls out.
func (a FS) Inverse() (FS, error) {
	if a.IsZero() {
		return FS{}, zkerr.New(zkerr.Algebra, "cannot invert zero")
	}
	var r FS
	r.v.Inverse(&a.v)
	return r, nil
}

// Div returns a/b.
func (a FS) Div(b FS) (FS, error) {
	inv, err := b.Inverse()
	if err != nil {
		return FS{}, zkerr.Wrap(zkerr.Algebra, err, "division by zero")
	}
	return a.Mul(inv), nil
}

// IntDiv returns the integer (truncating) quotient of the canonical
// representatives, re-reduced into the field.
func (a FS) IntDiv(b FS) (FS, error) {
	if b.IsZero() {
		return FS{}, zkerr.New(zkerr.Algebra, "integer division by zero")
	}
	q := new(big.Int).Quo(a.BigInt(), b.BigInt())
	return FromBigInt(q), nil
}

// Mod returns the canonical-representative remainder, re-reduced into the
// field.
func (a FS) Mod(b FS) (FS, error) {
	if b.IsZero() {
		return FS{}, zkerr.New(zkerr.Algebra, "modulo by zero")
	}
	m := new(big.Int).Mod(a.BigInt(), b.BigInt())
	return FromBigInt(m), nil
}

// Pow computes a^b mod p via the field's exponentiation routine. A negative
// exponent (b.IsNeg()) is an Algebra error per spec.md §9 Open Question (3).
func (a FS) Pow(b FS) (FS, error) {
	if b.IsNeg() {
		return FS{}, zkerr.New(zkerr.Algebra, "negative exponent in pow")
	}
	var r FS
	r.v.Exp(a.v, b.BigInt())
	return r, nil
}

// to64 reduces a to a uint64 iff its canonical representative fits, as
// required by shifts (spec.md §4.1: "Shifts accept only operands that fit
// in 64 bits"). The bitwise ops below do not use it: they work on the full
// canonical representatives and never fail.
func to64(a FS) (uint64, bool) {
	n := a.BigInt()
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

// Shl returns a<<b; both operands must fit in 64 bits.
func (a FS) Shl(b FS) (FS, error) {
	av, ok1 := to64(a)
	bv, ok2 := to64(b)
	if !ok1 || !ok2 {
		return FS{}, zkerr.New(zkerr.Algebra, "shl operands must fit in 64 bits")
	}
	return FromBigInt(new(big.Int).Lsh(new(big.Int).SetUint64(av), uint(bv))), nil
}

// Shr returns a>>b; both operands must fit in 64 bits.
func (a FS) Shr(b FS) (FS, error) {
	av, ok1 := to64(a)
	bv, ok2 := to64(b)
	if !ok1 || !ok2 {
		return FS{}, zkerr.New(zkerr.Algebra, "shr operands must fit in 64 bits")
	}
	return FromUint64(av >> bv), nil
}

// And returns a&b over the canonical representatives.
func (a FS) And(b FS) FS { return FromBigInt(new(big.Int).And(a.BigInt(), b.BigInt())) }

// Or returns a|b over the canonical representatives.
func (a FS) Or(b FS) FS { return FromBigInt(new(big.Int).Or(a.BigInt(), b.BigInt())) }

// Xor returns a^b over the canonical representatives.
func (a FS) Xor(b FS) FS { return FromBigInt(new(big.Int).Xor(a.BigInt(), b.BigInt())) }

// ToSmallInt converts a to a uint64 if it fits, failing with
// cannot-convert-to-small-int otherwise (spec.md §7).
func (a FS) ToSmallInt() (uint64, error) {
	v, ok := to64(a)
	if !ok {
		return 0, zkerr.New(zkerr.CannotConvertToSmallInt, "value %s exceeds 64 bits", a.BigInt().String())
	}
	return v, nil
}

// Format renders a in decimal, with an explicit sign: negative values
// print with a leading '-', and plusSignAtStart requests a leading '+' for
// non-negative values — used when formatting LC/QEQ terms after the head.
func (a FS) Format(plusSignAtStart bool) string {
	if a.IsNeg() {
		return "-" + a.Neg().BigInt().String()
	}
	if plusSignAtStart {
		return "+" + a.BigInt().String()
	}
	return a.BigInt().String()
}

// String implements fmt.Stringer.
func (a FS) String() string { return a.Format(false) }
