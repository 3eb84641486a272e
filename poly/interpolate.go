package poly

import (
	"fmt"

	"github.com/ppopth/rs-listdecode/field"
)

// Interpolate returns the unique polynomial of degree < len(xs) passing
// through the points (xs[i], ys[i]), using the Lagrange basis.
func Interpolate(f field.Field, xs, ys []field.Element) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("got %d x values and %d y values", len(xs), len(ys))
	}
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return nil, fmt.Errorf("duplicate interpolation point %s at %d and %d", xs[i], i, j)
			}
		}
	}

	result := Zero(f)
	for i := range xs {
		if ys[i].IsZero() {
			continue
		}
		// basis_i(x) = Π_{j≠i} (x - x_j) / (x_i - x_j)
		basis := One(f)
		denom := f.One()
		for j := range xs {
			if j == i {
				continue
			}
			basis = basis.Mul(New(f, []field.Element{field.Neg(f, xs[j]), f.One()}))
			denom = denom.Mul(xs[i].Sub(xs[j]))
		}
		result = result.Add(basis.Scale(ys[i].Mul(denom.Inv())))
	}
	return result, nil
}
