package field

import (
	"math/big"
	"testing"
)

func u(n uint64) FS { return FromUint64(n) }

func TestAddMul(t *testing.T) {
	one := One()
	two := one.Add(one)
	three := one.Add(one).Add(one)
	six := three.Mul(two)

	if one.String() != "1" || two.String() != "2" || three.String() != "3" || six.String() != "6" {
		t.Fatalf("got one=%s two=%s three=%s six=%s", one, two, three, six)
	}
}

func TestNeg(t *testing.T) {
	one := One()
	minusOne := one.Neg()
	if minusOne.String() != "-1" {
		t.Fatalf("expected -1, got %s", minusOne)
	}
	minusTwo := minusOne.Add(minusOne)
	if minusTwo.Neg().String() != "2" {
		t.Fatalf("expected 2, got %s", minusTwo.Neg())
	}
}

func TestAddThenSubRoundtrips(t *testing.T) {
	a := u(17)
	b := u(5)
	if got := a.Add(b).Sub(b); !got.Eq(a) {
		t.Fatalf("(a+b)-b != a: got %s want %s", got, a)
	}
}

func TestDivMulRoundtrips(t *testing.T) {
	a := u(6)
	b := u(2)
	q, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Mul(b); !got.Eq(a) {
		t.Fatalf("(a/b)*b != a: got %s want %s", got, a)
	}
}

func TestMod(t *testing.T) {
	got, err := u(1012).Mod(u(1000))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "12" {
		t.Fatalf("expected 12, got %s", got)
	}
}

func TestShlShr(t *testing.T) {
	forty, err := u(10).Shl(u(2))
	if err != nil {
		t.Fatal(err)
	}
	if forty.String() != "40" {
		t.Fatalf("expected 40, got %s", forty)
	}
	twenty, err := u(40).Shr(u(1))
	if err != nil {
		t.Fatal(err)
	}
	if twenty.String() != "20" {
		t.Fatalf("expected 20, got %s", twenty)
	}
}

func TestShiftOversizedOperandFails(t *testing.T) {
	huge := FromBigInt(new(big.Int).Lsh(big.NewInt(1), 70))
	if _, err := u(1).Shl(huge); err == nil {
		t.Fatal("expected algebra error for oversized shift operand")
	}
}

func TestDivByZeroFails(t *testing.T) {
	if _, err := u(1).Div(Zero()); err == nil {
		t.Fatal("expected algebra error dividing by zero")
	}
}

func TestPowNegativeExponentFails(t *testing.T) {
	if _, err := u(2).Pow(u(1).Neg()); err == nil {
		t.Fatal("expected algebra error for negative exponent")
	}
}

func TestParseDecimalAndHex(t *testing.T) {
	dec, err := Parse("255")
	if err != nil || dec.String() != "255" {
		t.Fatalf("Parse(255): %v %s", err, dec)
	}
	hex, err := Parse("0xff")
	if err != nil || hex.String() != "255" {
		t.Fatalf("Parse(0xff): %v %s", err, hex)
	}
}

func TestValuesAlwaysCanonical(t *testing.T) {
	huge := FromBigInt(new(big.Int).Add(Modulus(), big.NewInt(5)))
	if huge.BigInt().Cmp(Modulus()) >= 0 || huge.BigInt().Sign() < 0 {
		t.Fatalf("expected canonical representative in [0, p), got %s", huge.BigInt())
	}
	if huge.String() != "5" {
		t.Fatalf("expected 5, got %s", huge)
	}
}
