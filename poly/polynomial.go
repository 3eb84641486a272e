// Package poly implements univariate and bivariate polynomials with
// coefficients in a finite field.
package poly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppopth/rs-listdecode/field"
)

// DegreeZero is the degree reported for the zero polynomial. It is below
// every real degree so comparisons like p.Degree() < k hold for p = 0.
const DegreeZero = -1

// ErrDivideByZero is returned when dividing by the zero polynomial
var ErrDivideByZero = errors.New("division by zero polynomial")

// Polynomial is an immutable polynomial over a finite field. Coefficient i
// is the coefficient of x^i; trailing zero coefficients are trimmed.
type Polynomial struct {
	field  field.Field
	coeffs []field.Element
}

// New creates a polynomial from coefficients in increasing power order.
// The slice is copied.
func New(f field.Field, coeffs []field.Element) *Polynomial {
	cs := make([]field.Element, len(coeffs))
	copy(cs, coeffs)
	return newTrimmed(f, cs)
}

// newTrimmed takes ownership of coeffs
func newTrimmed(f field.Field, coeffs []field.Element) *Polynomial {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return &Polynomial{field: f, coeffs: coeffs[:n]}
}

// FromUint64s is a convenience constructor for small literal polynomials
func FromUint64s(f field.Field, coeffs ...uint64) *Polynomial {
	cs := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		cs[i] = field.FromUint64(f, c)
	}
	return newTrimmed(f, cs)
}

// Zero returns the zero polynomial
func Zero(f field.Field) *Polynomial {
	return &Polynomial{field: f}
}

// One returns the constant polynomial 1
func One(f field.Field) *Polynomial {
	return Constant(f, f.One())
}

// Constant returns the constant polynomial c
func Constant(f field.Field, c field.Element) *Polynomial {
	return newTrimmed(f, []field.Element{c})
}

// Monomial returns c·x^degree
func Monomial(f field.Field, c field.Element, degree int) *Polynomial {
	if degree < 0 {
		panic("negative degree")
	}
	cs := make([]field.Element, degree+1)
	for i := range cs {
		cs[i] = f.Zero()
	}
	cs[degree] = c
	return newTrimmed(f, cs)
}

// Field returns the coefficient field
func (p *Polynomial) Field() field.Field {
	return p.field
}

// Degree returns the degree, or DegreeZero for the zero polynomial
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial
func (p *Polynomial) IsZero() bool {
	return len(p.coeffs) == 0
}

// Coeff returns the coefficient of x^i (zero beyond the degree)
func (p *Polynomial) Coeff(i int) field.Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.field.Zero()
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the trimmed coefficient slice
func (p *Polynomial) Coefficients() []field.Element {
	out := make([]field.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// LeadingCoefficient returns the coefficient of the highest power, zero for
// the zero polynomial
func (p *Polynomial) LeadingCoefficient() field.Element {
	if p.IsZero() {
		return p.field.Zero()
	}
	return p.coeffs[len(p.coeffs)-1]
}

// Eval evaluates p at x using Horner's rule
func (p *Polynomial) Eval(x field.Element) field.Element {
	result := p.field.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// Add returns p + q
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]field.Element, n)
	for i := range out {
		out[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	return newTrimmed(p.field, out)
}

// Sub returns p - q
func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]field.Element, n)
	for i := range out {
		out[i] = p.Coeff(i).Sub(q.Coeff(i))
	}
	return newTrimmed(p.field, out)
}

// Neg returns -p
func (p *Polynomial) Neg() *Polynomial {
	return Zero(p.field).Sub(p)
}

// Mul returns p · q
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero(p.field)
	}
	out := make([]field.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return newTrimmed(p.field, out)
}

// Scale returns c · p
func (p *Polynomial) Scale(c field.Element) *Polynomial {
	out := make([]field.Element, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = a.Mul(c)
	}
	return newTrimmed(p.field, out)
}

// MulXPow returns x^j · p
func (p *Polynomial) MulXPow(j int) *Polynomial {
	if p.IsZero() || j == 0 {
		return p
	}
	out := make([]field.Element, len(p.coeffs)+j)
	for i := 0; i < j; i++ {
		out[i] = p.field.Zero()
	}
	copy(out[j:], p.coeffs)
	return &Polynomial{field: p.field, coeffs: out}
}

// Valuation returns the largest r such that x^r divides p, or DegreeZero
// for the zero polynomial
func (p *Polynomial) Valuation() int {
	for i, c := range p.coeffs {
		if !c.IsZero() {
			return i
		}
	}
	return DegreeZero
}

// DivXPow returns p / x^r, dropping the r lowest coefficients. The caller
// must ensure x^r divides p.
func (p *Polynomial) DivXPow(r int) *Polynomial {
	if r <= 0 || p.IsZero() {
		return p
	}
	if r >= len(p.coeffs) {
		return Zero(p.field)
	}
	return New(p.field, p.coeffs[r:])
}

// DivMod performs long division and returns quotient and remainder with
// p = quotient·d + remainder and deg(remainder) < deg(d).
func (p *Polynomial) DivMod(d *Polynomial) (*Polynomial, *Polynomial, error) {
	if d.IsZero() {
		return nil, nil, ErrDivideByZero
	}
	if p.Degree() < d.Degree() {
		return Zero(p.field), p, nil
	}

	remainder := make([]field.Element, len(p.coeffs))
	copy(remainder, p.coeffs)
	quotient := make([]field.Element, len(p.coeffs)-len(d.coeffs)+1)

	dDeg := d.Degree()
	invLead := d.LeadingCoefficient().Inv()
	for i := len(quotient) - 1; i >= 0; i-- {
		scale := remainder[i+dDeg].Mul(invLead)
		quotient[i] = scale
		if scale.IsZero() {
			continue
		}
		for j, c := range d.coeffs {
			remainder[i+j] = remainder[i+j].Sub(scale.Mul(c))
		}
	}

	return newTrimmed(p.field, quotient), newTrimmed(p.field, remainder[:dDeg]), nil
}

// Equal reports whether p and q have the same coefficients
func (p *Polynomial) Equal(q *Polynomial) bool {
	if q == nil || len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// String renders p from the highest power down, e.g. "3x + 1"
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		coeff := c.String()
		if c.Equal(p.field.One()) && i > 0 {
			coeff = ""
		}
		switch i {
		case 0:
			terms = append(terms, coeff)
		case 1:
			terms = append(terms, coeff+"x")
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", coeff, i))
		}
	}
	return strings.Join(terms, " + ")
}
