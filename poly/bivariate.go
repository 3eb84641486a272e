package poly

import (
	"fmt"
	"strings"

	"github.com/ppopth/rs-listdecode/field"
)

// Bivariate is a polynomial Q(x, y) = Σ_b Q_b(x)·y^b stored as a polynomial
// in y whose coefficients are polynomials in x. Trailing zero y-coefficients
// are trimmed. Values are immutable.
type Bivariate struct {
	field  field.Field
	coeffs []*Polynomial // coeffs[b] = Q_b(x)
}

// NewBivariate creates Q from its y-coefficients. The slice is copied.
func NewBivariate(f field.Field, coeffs []*Polynomial) *Bivariate {
	cs := make([]*Polynomial, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			c = Zero(f)
		}
		cs[i] = c
	}
	return newBivariateTrimmed(f, cs)
}

// BivariateFromGrid creates Q from a coefficient grid where grid[b][a] is
// the coefficient of x^a·y^b. Rows may have different lengths.
func BivariateFromGrid(f field.Field, grid [][]field.Element) *Bivariate {
	cs := make([]*Polynomial, len(grid))
	for b, row := range grid {
		cs[b] = New(f, row)
	}
	return newBivariateTrimmed(f, cs)
}

func newBivariateTrimmed(f field.Field, coeffs []*Polynomial) *Bivariate {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return &Bivariate{field: f, coeffs: coeffs[:n]}
}

// Field returns the coefficient field
func (q *Bivariate) Field() field.Field {
	return q.field
}

// IsZero reports whether Q is identically zero
func (q *Bivariate) IsZero() bool {
	return len(q.coeffs) == 0
}

// DegreeY returns the degree in y, or DegreeZero for Q = 0
func (q *Bivariate) DegreeY() int {
	return len(q.coeffs) - 1
}

// CoeffY returns Q_b(x)
func (q *Bivariate) CoeffY(b int) *Polynomial {
	if b < 0 || b >= len(q.coeffs) {
		return Zero(q.field)
	}
	return q.coeffs[b]
}

// Coeff returns the coefficient of x^a·y^b
func (q *Bivariate) Coeff(a, b int) field.Element {
	return q.CoeffY(b).Coeff(a)
}

// WeightedDegree returns max(a + w·b) over non-zero monomials x^a·y^b, or
// DegreeZero for Q = 0
func (q *Bivariate) WeightedDegree(w int) int {
	deg := DegreeZero
	for b, c := range q.coeffs {
		if c.IsZero() {
			continue
		}
		deg = max(deg, c.Degree()+w*b)
	}
	return deg
}

// Eval returns Q(x, y)
func (q *Bivariate) Eval(x, y field.Element) field.Element {
	result := q.field.Zero()
	for b := len(q.coeffs) - 1; b >= 0; b-- {
		result = result.Mul(y).Add(q.coeffs[b].Eval(x))
	}
	return result
}

// Compose returns the univariate polynomial Q(x, p(x))
func (q *Bivariate) Compose(p *Polynomial) *Polynomial {
	result := Zero(q.field)
	for b := len(q.coeffs) - 1; b >= 0; b-- {
		result = result.Mul(p).Add(q.coeffs[b])
	}
	return result
}

// AtXZero returns Q(0, y) as a polynomial in y
func (q *Bivariate) AtXZero() *Polynomial {
	cs := make([]field.Element, len(q.coeffs))
	for b, c := range q.coeffs {
		cs[b] = c.Coeff(0)
	}
	return newTrimmed(q.field, cs)
}

// XValuation returns the largest r such that x^r divides Q, or DegreeZero
// for Q = 0
func (q *Bivariate) XValuation() int {
	r := DegreeZero
	for _, c := range q.coeffs {
		if c.IsZero() {
			continue
		}
		v := c.Valuation()
		if r == DegreeZero || v < r {
			r = v
		}
	}
	return r
}

// DivXPow returns Q / x^r. The caller must ensure x^r divides Q.
func (q *Bivariate) DivXPow(r int) *Bivariate {
	if r <= 0 {
		return q
	}
	cs := make([]*Polynomial, len(q.coeffs))
	for b, c := range q.coeffs {
		cs[b] = c.DivXPow(r)
	}
	return newBivariateTrimmed(q.field, cs)
}

// ShiftY returns Q(x, x·y + gamma). The coefficient of y^j in the result is
// x^j · Σ_{b≥j} C(b, j)·gamma^(b-j)·Q_b(x).
func (q *Bivariate) ShiftY(gamma field.Element) *Bivariate {
	d := q.DegreeY()
	if d < 0 {
		return q
	}
	binom := field.Binomials(q.field, d)
	gammaPow := field.Powers(q.field, gamma, d)

	cs := make([]*Polynomial, d+1)
	for j := 0; j <= d; j++ {
		acc := Zero(q.field)
		for b := j; b <= d; b++ {
			scale := binom[b][j].Mul(gammaPow[b-j])
			if scale.IsZero() {
				continue
			}
			acc = acc.Add(q.coeffs[b].Scale(scale))
		}
		cs[j] = acc.MulXPow(j)
	}
	return newBivariateTrimmed(q.field, cs)
}

// String renders Q as a sum of (Q_b(x))·y^b terms
func (q *Bivariate) String() string {
	if q.IsZero() {
		return "0"
	}
	var terms []string
	for b := len(q.coeffs) - 1; b >= 0; b-- {
		c := q.coeffs[b]
		if c.IsZero() {
			continue
		}
		switch b {
		case 0:
			terms = append(terms, fmt.Sprintf("(%s)", c))
		case 1:
			terms = append(terms, fmt.Sprintf("(%s)y", c))
		default:
			terms = append(terms, fmt.Sprintf("(%s)y^%d", c, b))
		}
	}
	return strings.Join(terms, " + ")
}
