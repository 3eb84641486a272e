package rs

import (
	"fmt"
	"math/big"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

// MaxRootSearchOrder is the largest field order for which the list decoder
// enumerates the field to find roots of Q(0, y)
const MaxRootSearchOrder = 1 << 20

// findRoots returns every polynomial p with deg p < k and Q(x, p(x)) = 0,
// using the Roth-Ruckenstein recursion. Writing p = γ + x·p', the constant
// γ is a root of Q(0, y) (after dividing out the largest power of x), and
// p' is a root of Q(x, x·y + γ) / x^r. The recursion stops after k
// coefficients and every candidate is checked directly.
func findRoots(Q *poly.Bivariate, k int) ([]*poly.Polynomial, error) {
	f := Q.Field()
	if f.Order().Cmp(big.NewInt(MaxRootSearchOrder)) > 0 {
		return nil, fmt.Errorf("%w: root search over %s is limited to fields of order <= %d", ErrInvalidInput, f, MaxRootSearchOrder)
	}
	if Q.IsZero() {
		return nil, fmt.Errorf("%w: every polynomial is a root of Q = 0", ErrInvalidInput)
	}

	elements := make([]field.Element, f.Order().Int64())
	for i := range elements {
		elements[i] = field.FromUint64(f, uint64(i))
	}

	var candidates []*poly.Polynomial
	prefix := make([]field.Element, k)

	var search func(Q *poly.Bivariate, depth int)
	search = func(Q *poly.Bivariate, depth int) {
		Q = Q.DivXPow(Q.XValuation())
		for _, gamma := range univariateRoots(Q.AtXZero(), elements) {
			prefix[depth] = gamma
			if depth == k-1 {
				candidates = append(candidates, poly.New(f, prefix))
				continue
			}
			search(Q.ShiftY(gamma), depth+1)
		}
	}
	search(Q, 0)

	var roots []*poly.Polynomial
	for _, p := range candidates {
		if Q.Compose(p).IsZero() {
			roots = append(roots, p)
		}
	}
	return roots, nil
}

// univariateRoots returns the roots of r among elements. Linear polynomials
// are solved directly.
func univariateRoots(r *poly.Polynomial, elements []field.Element) []field.Element {
	switch r.Degree() {
	case poly.DegreeZero, 0:
		return nil
	case 1:
		f := r.Field()
		return []field.Element{field.Neg(f, r.Coeff(0)).Mul(r.Coeff(1).Inv())}
	}
	var roots []field.Element
	for _, x := range elements {
		if r.Eval(x).IsZero() {
			roots = append(roots, x)
		}
	}
	return roots
}
