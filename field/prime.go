package field

import (
	"fmt"
	"math/big"
)

// PrimeField is the field of integers modulo a prime p
type PrimeField struct {
	p *big.Int
}

// NewPrimeField creates GF(p). The caller is responsible for p being prime;
// use NewCheckedPrimeField for untrusted input.
func NewPrimeField(p *big.Int) *PrimeField {
	return &PrimeField{p: new(big.Int).Set(p)}
}

// NewCheckedPrimeField creates GF(p) after a probabilistic primality check
func NewCheckedPrimeField(p *big.Int) (*PrimeField, error) {
	if p.Cmp(big.NewInt(2)) < 0 || !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("modulus %s is not prime", p)
	}
	return NewPrimeField(p), nil
}

// PrimeFieldElement is a residue in [0, p-1]
type PrimeFieldElement struct {
	value *big.Int
	field *PrimeField
}

// element reduces v modulo p and takes ownership of it
func (f *PrimeField) element(v *big.Int) *PrimeFieldElement {
	if v.Sign() < 0 || v.Cmp(f.p) >= 0 {
		v.Mod(v, f.p)
	}
	return &PrimeFieldElement{value: v, field: f}
}

func (f *PrimeField) Zero() Element { return f.element(new(big.Int)) }

func (f *PrimeField) One() Element { return f.element(big.NewInt(1)) }

// FromBytes interprets data as a big-endian integer reduced modulo p
func (f *PrimeField) FromBytes(data []byte) Element {
	return f.element(new(big.Int).SetBytes(data))
}

// Order returns p
func (f *PrimeField) Order() *big.Int { return new(big.Int).Set(f.p) }

// Modulus returns p
func (f *PrimeField) Modulus() *big.Int { return new(big.Int).Set(f.p) }

func (f *PrimeField) String() string {
	return fmt.Sprintf("GF(%s)", f.p)
}

func (e *PrimeFieldElement) Add(b Element) Element {
	return e.field.element(new(big.Int).Add(e.value, e.compatible(b).value))
}

func (e *PrimeFieldElement) Sub(b Element) Element {
	return e.field.element(new(big.Int).Sub(e.value, e.compatible(b).value))
}

func (e *PrimeFieldElement) Mul(b Element) Element {
	return e.field.element(new(big.Int).Mul(e.value, e.compatible(b).value))
}

// Inv panics on zero
func (e *PrimeFieldElement) Inv() Element {
	inv := new(big.Int).ModInverse(e.value, e.field.p)
	if inv == nil {
		panic("element is not invertible")
	}
	return e.field.element(inv)
}

func (e *PrimeFieldElement) IsZero() bool { return e.value.Sign() == 0 }

// Equal reports whether b is the same residue of the same field. Elements of
// other field types are never equal.
func (e *PrimeFieldElement) Equal(b Element) bool {
	other, ok := b.(*PrimeFieldElement)
	return ok && e.value.Cmp(other.value) == 0 && e.field.p.Cmp(other.field.p) == 0
}

func (e *PrimeFieldElement) Clone() Element {
	return &PrimeFieldElement{value: new(big.Int).Set(e.value), field: e.field}
}

// Bytes returns the minimal big-endian encoding; zero encodes as no bytes
func (e *PrimeFieldElement) Bytes() []byte { return e.value.Bytes() }

func (e *PrimeFieldElement) String() string { return e.value.String() }

// BigInt returns a copy of the residue
func (e *PrimeFieldElement) BigInt() *big.Int { return new(big.Int).Set(e.value) }

func (e *PrimeFieldElement) compatible(b Element) *PrimeFieldElement {
	other, ok := b.(*PrimeFieldElement)
	if !ok || (other.field != e.field && other.field.p.Cmp(e.field.p) != 0) {
		panic("incompatible field elements")
	}
	return other
}
