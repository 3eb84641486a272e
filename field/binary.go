package field

import (
	"fmt"
	"math/big"
)

// BinaryField represents a binary finite field GF(2^n)
type BinaryField struct {
	n           int      // field extension degree
	irreducible *big.Int // irreducible polynomial
}

// NewBinaryField creates a new binary field GF(2^n) with given irreducible polynomial
func NewBinaryField(n int, irreducible *big.Int) *BinaryField {
	return &BinaryField{
		n:           n,
		irreducible: new(big.Int).Set(irreducible),
	}
}

// NewCheckedBinaryField validates that the modulus has degree exactly n
// before creating the field. Irreducibility is not checked.
func NewCheckedBinaryField(n int, irreducible *big.Int) (*BinaryField, error) {
	if n < 1 {
		return nil, fmt.Errorf("extension degree must be positive, got %d", n)
	}
	if irreducible.BitLen() != n+1 {
		return nil, fmt.Errorf("modulus 0x%x does not have degree %d", irreducible, n)
	}
	if irreducible.Bit(0) == 0 {
		return nil, fmt.Errorf("modulus 0x%x is divisible by x", irreducible)
	}
	return NewBinaryField(n, irreducible), nil
}

// NewBinaryFieldGF2_8 creates GF(2^8) with irreducible polynomial x^8 + x^4 + x^3 + x + 1
func NewBinaryFieldGF2_8() *BinaryField {
	return NewBinaryField(8, big.NewInt(0x11B))
}

// BinaryFieldElement represents an element in a binary field
type BinaryFieldElement struct {
	value *big.Int     // polynomial representation
	field *BinaryField // reference to parent field
}

// Field interface implementation for BinaryField

// Zero returns the additive identity element (0)
func (f *BinaryField) Zero() Element {
	return &BinaryFieldElement{
		value: big.NewInt(0),
		field: f,
	}
}

// One returns the multiplicative identity element (1)
func (f *BinaryField) One() Element {
	return &BinaryFieldElement{
		value: big.NewInt(1),
		field: f,
	}
}

// FromBytes creates a field element from byte array
func (f *BinaryField) FromBytes(data []byte) Element {
	val := new(big.Int).SetBytes(data)
	// Ensure the value fits in the field
	fieldMax := new(big.Int).Lsh(big.NewInt(1), uint(f.n))
	val.Mod(val, fieldMax)
	return &BinaryFieldElement{
		value: val,
		field: f,
	}
}

// Order returns 2^n
func (f *BinaryField) Order() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(f.n))
}

// Degree returns the extension degree n
func (f *BinaryField) Degree() int {
	return f.n
}

// Irreducible returns the reduction polynomial
func (f *BinaryField) Irreducible() *big.Int {
	return new(big.Int).Set(f.irreducible)
}

func (f *BinaryField) String() string {
	return fmt.Sprintf("GF(2^%d)", f.n)
}

// BinaryFieldElement methods implementing Element interface

// Add returns e + b in the field (XOR operation)
func (e *BinaryFieldElement) Add(b Element) Element {
	other := e.compatible(b)

	result := new(big.Int).Xor(e.value, other.value)

	return &BinaryFieldElement{
		value: result,
		field: e.field,
	}
}

// Sub returns e - b in the field (same as Add in GF(2^n))
func (e *BinaryFieldElement) Sub(b Element) Element {
	return e.Add(b)
}

// Mul returns e * b in the field using polynomial multiplication with reduction
func (e *BinaryFieldElement) Mul(b Element) Element {
	other := e.compatible(b)

	result := e.reduce(polyMul(e.value, other.value))

	return &BinaryFieldElement{
		value: result,
		field: e.field,
	}
}

// reduce performs polynomial reduction modulo the irreducible polynomial
func (e *BinaryFieldElement) reduce(val *big.Int) *big.Int {
	result := new(big.Int).Set(val)
	degree := e.field.irreducible.BitLen() - 1

	for result.BitLen() > e.field.n {
		pos := result.BitLen() - 1
		temp := new(big.Int).Lsh(e.field.irreducible, uint(pos-degree))
		result.Xor(result, temp)
	}

	return result
}

// Inv returns the multiplicative inverse of e using extended Euclidean algorithm
func (e *BinaryFieldElement) Inv() Element {
	if e.IsZero() {
		panic("zero element is not invertible")
	}

	// Extended Euclidean algorithm for polynomials over GF(2)
	oldR := new(big.Int).Set(e.field.irreducible)
	r := new(big.Int).Set(e.value)
	oldS := big.NewInt(0)
	s := big.NewInt(1)

	for r.Sign() > 0 {
		q, remainder := polyDivMod(oldR, r)

		oldR.Set(r)
		r.Set(remainder)

		oldS, s = s, new(big.Int).Xor(oldS, polyMul(q, s))
	}

	return &BinaryFieldElement{
		value: e.reduce(oldS),
		field: e.field,
	}
}

// polyDivMod performs polynomial division in GF(2)
func polyDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	if b.Sign() == 0 {
		panic("division by zero polynomial")
	}

	quotient := big.NewInt(0)
	remainder := new(big.Int).Set(a)

	bDegree := b.BitLen() - 1

	for remainder.BitLen() > bDegree {
		shift := remainder.BitLen() - 1 - bDegree

		quotient.SetBit(quotient, shift, 1)
		remainder.Xor(remainder, new(big.Int).Lsh(b, uint(shift)))
	}

	return quotient, remainder
}

// polyMul performs carry-less polynomial multiplication in GF(2)
func polyMul(a, b *big.Int) *big.Int {
	result := big.NewInt(0)
	tempA := new(big.Int).Set(a)
	tempB := new(big.Int).Set(b)

	for tempB.Sign() > 0 {
		if tempB.Bit(0) == 1 {
			result.Xor(result, tempA)
		}
		tempA.Lsh(tempA, 1)
		tempB.Rsh(tempB, 1)
	}

	return result
}

// IsZero returns true if e equals zero
func (e *BinaryFieldElement) IsZero() bool {
	return e.value.Sign() == 0
}

// Equal returns true if e equals b. Elements of fields with different
// moduli are never equal.
func (e *BinaryFieldElement) Equal(b Element) bool {
	other, ok := b.(*BinaryFieldElement)
	if !ok {
		return false
	}

	return e.value.Cmp(other.value) == 0 && e.field.n == other.field.n &&
		e.field.irreducible.Cmp(other.field.irreducible) == 0
}

// Clone returns a copy of e
func (e *BinaryFieldElement) Clone() Element {
	return &BinaryFieldElement{
		value: new(big.Int).Set(e.value),
		field: e.field,
	}
}

// Bytes returns the byte representation of e
func (e *BinaryFieldElement) Bytes() []byte {
	return e.value.Bytes()
}

// String returns the string representation of e
func (e *BinaryFieldElement) String() string {
	return fmt.Sprintf("0x%x", e.value)
}

// BigInt returns the underlying big.Int value
func (e *BinaryFieldElement) BigInt() *big.Int {
	return new(big.Int).Set(e.value)
}

func (e *BinaryFieldElement) compatible(b Element) *BinaryFieldElement {
	other, ok := b.(*BinaryFieldElement)
	if !ok || (other.field != e.field &&
		(other.field.n != e.field.n || other.field.irreducible.Cmp(e.field.irreducible) != 0)) {
		panic("incompatible field elements")
	}
	return other
}
