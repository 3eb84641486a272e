package field

import (
	"math/big"
)

// Element represents an element in a finite field
type Element interface {
	// Add returns a + b in the field
	Add(b Element) Element

	// Sub returns a - b in the field
	Sub(b Element) Element

	// Mul returns a * b in the field
	Mul(b Element) Element

	// Inv returns the multiplicative inverse of a in the field
	Inv() Element

	// IsZero returns true if the element is the zero element
	IsZero() bool

	// Equal returns true if two elements are equal
	Equal(b Element) bool

	// Clone returns a copy of the element
	Clone() Element

	// Bytes returns the big-endian byte representation of the element
	Bytes() []byte

	// String returns the string representation of the element
	String() string
}

// Field represents a finite field
type Field interface {
	// Zero returns the zero element of the field
	Zero() Element

	// One returns the one element of the field
	One() Element

	// FromBytes creates a field element from big-endian bytes
	FromBytes(data []byte) Element

	// Order returns the order (size) of the field
	Order() *big.Int

	// String returns a short name such as GF(7) or GF(2^8)
	String() string
}

// FromUint64 returns the field element with integer representation v.
// For prime fields this is v mod p, for binary fields the polynomial whose
// coefficient bits are the bits of v.
func FromUint64(f Field, v uint64) Element {
	return f.FromBytes(new(big.Int).SetUint64(v).Bytes())
}

// Neg returns -a.
func Neg(f Field, a Element) Element {
	return f.Zero().Sub(a)
}

// Pow returns x^n by square-and-multiply. Pow(x, 0) is one for every x,
// including zero.
func Pow(f Field, x Element, n int) Element {
	if n < 0 {
		panic("negative exponent")
	}
	result := f.One()
	base := x.Clone()
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Powers returns [1, x, x^2, ..., x^n].
func Powers(f Field, x Element, n int) []Element {
	out := make([]Element, n+1)
	out[0] = f.One()
	for i := 1; i <= n; i++ {
		out[i] = out[i-1].Mul(x)
	}
	return out
}

// Binomials returns Pascal's triangle reduced into the field: row a holds
// C(a, 0) .. C(a, a). Entries are built by field additions so they are
// correct in every characteristic.
func Binomials(f Field, n int) [][]Element {
	rows := make([][]Element, n+1)
	for a := 0; a <= n; a++ {
		rows[a] = make([]Element, a+1)
		rows[a][0] = f.One()
		rows[a][a] = f.One()
		for u := 1; u < a; u++ {
			rows[a][u] = rows[a-1][u-1].Add(rows[a-1][u])
		}
	}
	return rows
}
