package rs

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

// Corrupt returns a copy of cw with exactly e distinct positions changed to
// a different value chosen uniformly from the field, along with the sorted
// corrupted positions. cw itself is not modified.
func Corrupt(rng *rand.Rand, f field.Field, cw Codeword, e int) (Codeword, []int, error) {
	n := len(cw)
	if e < 0 || e > n {
		return nil, nil, fmt.Errorf("%w: cannot corrupt %d of %d positions", ErrInvalidInput, e, n)
	}

	positions := rng.Perm(n)[:e]
	sort.Ints(positions)

	// y + d with d uniform in 1..q-1 is uniform over the values other than y
	nonZero := new(big.Int).Sub(f.Order(), big.NewInt(1))
	out := cw.Clone()
	for _, i := range positions {
		d := new(big.Int).Rand(rng, nonZero)
		d.Add(d, big.NewInt(1))
		out[i].Y = out[i].Y.Add(f.FromBytes(d.Bytes()))
	}
	return out, positions, nil
}

// RandomPolynomial returns a polynomial with k coefficients drawn uniformly
// from the field, so its degree is below k
func RandomPolynomial(rng *rand.Rand, f field.Field, k int) *poly.Polynomial {
	coeffs := make([]field.Element, k)
	for i := range coeffs {
		coeffs[i] = f.FromBytes(new(big.Int).Rand(rng, f.Order()).Bytes())
	}
	return poly.New(f, coeffs)
}
