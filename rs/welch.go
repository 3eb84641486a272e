package rs

import (
	"errors"
	"fmt"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

// UniqueRadius returns ⌊(n-k)/2⌋, the number of errors the unique decoder
// is guaranteed to correct
func UniqueRadius(n, k int) int {
	if n < k {
		return 0
	}
	return (n - k) / 2
}

// DecodeUnique recovers the message polynomial of degree < k from a
// received word with at most e errors, using the Berlekamp-Welch algorithm.
//
// The decoder looks for a monic error locator E of degree e and a polynomial
// N of degree < k+e with N(x_i) = y_i·E(x_i) at every position, then returns
// N/E. With E = x^e + Σ_{j<e} e_j x^j each position contributes the linear
// equation
//
//	N(x_i) - y_i·Σ_{j<e} e_j x_i^j = y_i·x_i^e
//
// in the k+2e unknowns (N_0..N_{k+e-1}, e_0..e_{e-1}). Any solution of the
// system gives the same quotient when e <= UniqueRadius(n, k). Larger e is
// accepted but the result is then not guaranteed to be unique.
func DecodeUnique(f field.Field, cw Codeword, k, e int) (*poly.Polynomial, error) {
	n := len(cw)
	if err := checkPoints(f, cw.Points()); err != nil {
		return nil, err
	}
	if err := checkK(n, k); err != nil {
		return nil, err
	}
	if e < 0 || k+e > n {
		return nil, fmt.Errorf("%w: e = %d must satisfy 0 <= e <= n-k = %d", ErrInvalidInput, e, n-k)
	}
	if e > UniqueRadius(n, k) {
		log.Debugf("decoding %d errors beyond the unique radius %d (n=%d, k=%d)", e, UniqueRadius(n, k), n, k)
	}

	numN := k + e
	cols := numN + e
	A := make([][]field.Element, n)
	b := make([]field.Element, n)
	for i, s := range cw {
		xPow := field.Powers(f, s.X, numN-1)
		row := make([]field.Element, cols)
		copy(row, xPow)
		for j := 0; j < e; j++ {
			row[numN+j] = field.Neg(f, s.Y.Mul(xPow[j]))
		}
		A[i] = row
		b[i] = s.Y.Mul(xPow[e])
	}

	z, err := field.Solve(A, b, f)
	if errors.Is(err, field.ErrNoSolution) {
		log.Debugf("Berlekamp-Welch system inconsistent (n=%d, k=%d, e=%d)", n, k, e)
		return nil, fmt.Errorf("%w: no error locator of degree %d", ErrDecodeFailure, e)
	}
	if err != nil {
		return nil, err
	}

	N := poly.New(f, z[:numN])
	locator := make([]field.Element, e+1)
	copy(locator, z[numN:])
	locator[e] = f.One()
	E := poly.New(f, locator)

	q, r, err := N.DivMod(E)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		log.Debugf("error locator does not divide N (n=%d, k=%d, e=%d)", n, k, e)
		return nil, fmt.Errorf("%w: E does not divide N", ErrDecodeFailure)
	}
	if q.Degree() >= k {
		return nil, fmt.Errorf("%w: quotient degree %d is not below k = %d", ErrDecodeFailure, q.Degree(), k)
	}
	return q, nil
}
