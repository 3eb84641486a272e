package rs

import (
	"fmt"
	"math/big"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

// DefaultMaxMultiplicity bounds the multiplicity tried by DecodeListWithin
const DefaultMaxMultiplicity = 3

// weight returns the y-weight k-1 of the (1, k-1)-weighted degree. For k = 1
// the weight is 1 so the monomial set stays finite.
func weight(k int) int {
	if k <= 1 {
		return 1
	}
	return k - 1
}

// Monomials returns the number of monomials x^a·y^b with a + b·w <= L,
// w = max(k-1, 1)
func Monomials(k, L int) int {
	if L < 0 {
		return 0
	}
	w := weight(k)
	count := 0
	for b := 0; b*w <= L; b++ {
		count += L - b*w + 1
	}
	return count
}

// Constraints returns the number of linear constraints n·m(m+1)/2 imposed by
// vanishing with multiplicity m at n points
func Constraints(n, m int) int {
	return n * m * (m + 1) / 2
}

// ListRadius returns the largest e with (n-e)·m > L: every message within
// distance e of the received word is found by DecodeList(.., m, L). The
// result is negative when no error can be tolerated.
func ListRadius(n, m, L int) int {
	return n - L/m - 1
}

// MaxListSize bounds the number of candidates DecodeList can return: the
// y-degree of the interpolated polynomial is at most ⌊L/w⌋.
func MaxListSize(k, L int) int {
	return L / weight(k)
}

// ChooseListParams returns the smallest multiplicity m <= maxM, and for it
// the smallest L, such that the interpolation system has a non-zero solution
// and every message within distance e is guaranteed to be listed:
//
//	Monomials(k, L) > Constraints(n, m)  and  (n-e)·m > L
//
// ErrInvalidInput is returned when no m <= maxM satisfies both.
func ChooseListParams(n, k, e, maxM int) (int, int, error) {
	if err := checkK(n, k); err != nil {
		return 0, 0, err
	}
	if e < 0 || e >= n {
		return 0, 0, fmt.Errorf("%w: e = %d must satisfy 0 <= e < n = %d", ErrInvalidInput, e, n)
	}
	if maxM < 1 {
		return 0, 0, fmt.Errorf("%w: maximum multiplicity %d must be positive", ErrInvalidInput, maxM)
	}
	for m := 1; m <= maxM; m++ {
		constraints := Constraints(n, m)
		limit := (n-e)*m - 1
		for L := 0; L <= limit; L++ {
			if Monomials(k, L) > constraints {
				return m, L, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: no multiplicity up to %d lists %d errors (n=%d, k=%d)", ErrInvalidInput, maxM, e, n, k)
}

// DecodeList returns every polynomial p of degree < k whose agreement t with
// the received word satisfies t·m > L, using Sudan's algorithm with
// multiplicity m (Guruswami-Sudan when m > 1).
//
// A non-zero Q(x, y) of (1, k-1)-weighted degree <= L vanishing with
// multiplicity m at every (x_i, y_i) is interpolated, then the factors
// y - p(x) of Q are found by root search. The list may be empty or hold
// several polynomials; neither is an error.
func DecodeList(f field.Field, cw Codeword, k, m, L int) ([]*poly.Polynomial, error) {
	n := len(cw)
	if err := checkPoints(f, cw.Points()); err != nil {
		return nil, err
	}
	if err := checkK(n, k); err != nil {
		return nil, err
	}
	if m < 1 || L < 0 {
		return nil, fmt.Errorf("%w: multiplicity %d and degree bound %d", ErrInvalidInput, m, L)
	}
	if Monomials(k, L) <= Constraints(n, m) {
		return nil, fmt.Errorf("%w: %d monomials do not exceed %d constraints (n=%d, k=%d, m=%d, L=%d)",
			ErrInvalidInput, Monomials(k, L), Constraints(n, m), n, k, m, L)
	}
	if f.Order().Cmp(big.NewInt(MaxRootSearchOrder)) > 0 {
		return nil, fmt.Errorf("%w: root search over %s is limited to fields of order <= %d", ErrInvalidInput, f, MaxRootSearchOrder)
	}

	Q, err := interpolateQ(f, cw, k, m, L)
	if err != nil {
		return nil, err
	}
	roots, err := findRoots(Q, k)
	if err != nil {
		return nil, err
	}

	var out []*poly.Polynomial
	for _, p := range roots {
		if Agreement(p, cw)*m <= L {
			continue
		}
		if containsPolynomial(out, p) {
			continue
		}
		out = append(out, p)
	}
	log.Debugf("list decoding found %d roots, %d within radius %d (n=%d, k=%d, m=%d, L=%d)",
		len(roots), len(out), ListRadius(n, m, L), n, k, m, L)
	return out, nil
}

// DecodeListWithin chooses (m, L) for e errors with ChooseListParams and
// returns the listed polynomials that agree with the received word in at
// least n-e positions
func DecodeListWithin(f field.Field, cw Codeword, k, e int) ([]*poly.Polynomial, error) {
	m, L, err := ChooseListParams(len(cw), k, e, DefaultMaxMultiplicity)
	if err != nil {
		return nil, err
	}
	candidates, err := DecodeList(f, cw, k, m, L)
	if err != nil {
		return nil, err
	}
	var out []*poly.Polynomial
	for _, p := range candidates {
		if Agreement(p, cw) >= len(cw)-e {
			out = append(out, p)
		}
	}
	return out, nil
}

type monomial struct {
	a, b int // x^a·y^b
}

// interpolateQ solves for the coefficients of Q. Vanishing with multiplicity
// m at (x_i, y_i) means every Hasse derivative of order (u, v) with u+v < m
// is zero there:
//
//	Σ_{a>=u, b>=v} C(a,u)·C(b,v)·q_{a,b}·x_i^(a-u)·y_i^(b-v) = 0
func interpolateQ(f field.Field, cw Codeword, k, m, L int) (*poly.Bivariate, error) {
	w := weight(k)
	maxB := L / w

	var monomials []monomial
	for b := 0; b <= maxB; b++ {
		for a := 0; a+b*w <= L; a++ {
			monomials = append(monomials, monomial{a: a, b: b})
		}
	}

	binom := field.Binomials(f, L)
	zero := f.Zero()

	A := make([][]field.Element, 0, Constraints(len(cw), m))
	for _, s := range cw {
		xPow := field.Powers(f, s.X, L)
		yPow := field.Powers(f, s.Y, maxB)
		for u := 0; u < m; u++ {
			for v := 0; u+v < m; v++ {
				row := make([]field.Element, len(monomials))
				for j, mono := range monomials {
					if mono.a < u || mono.b < v {
						row[j] = zero
						continue
					}
					row[j] = binom[mono.a][u].Mul(binom[mono.b][v]).Mul(xPow[mono.a-u]).Mul(yPow[mono.b-v])
				}
				A = append(A, row)
			}
		}
	}

	basis := field.NullSpace(A, f)
	log.Debugf("interpolation system %dx%d has a %d-dimensional null space", len(A), len(monomials), len(basis))
	if len(basis) == 0 {
		return nil, ErrUnsolvableSystem
	}

	grid := make([][]field.Element, maxB+1)
	for b := range grid {
		grid[b] = make([]field.Element, L-b*w+1)
	}
	for j, mono := range monomials {
		grid[mono.b][mono.a] = basis[0][j]
	}
	Q := poly.BivariateFromGrid(f, grid)
	if Q.IsZero() {
		return nil, ErrUnsolvableSystem
	}
	return Q, nil
}

func containsPolynomial(list []*poly.Polynomial, p *poly.Polynomial) bool {
	for _, q := range list {
		if q.Equal(p) {
			return true
		}
	}
	return false
}
