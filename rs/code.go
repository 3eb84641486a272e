// Package rs implements Reed-Solomon codes over finite fields with a
// Berlekamp-Welch unique decoder and a Sudan list decoder that supports
// interpolation multiplicities.
//
// A message is a polynomial f of degree < k. Its codeword is the list of
// evaluations (x_i, f(x_i)) at n distinct points.
package rs

import (
	"fmt"
	"math/big"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rs")

// Symbol is one codeword position: the evaluation point and the value
// received there
type Symbol struct {
	X field.Element
	Y field.Element
}

// Codeword is an ordered list of symbols
type Codeword []Symbol

// Points returns the evaluation points of the codeword
func (cw Codeword) Points() []field.Element {
	xs := make([]field.Element, len(cw))
	for i, s := range cw {
		xs[i] = s.X
	}
	return xs
}

// Values returns the received values of the codeword
func (cw Codeword) Values() []field.Element {
	ys := make([]field.Element, len(cw))
	for i, s := range cw {
		ys[i] = s.Y
	}
	return ys
}

// Clone returns a copy that shares no slice with cw
func (cw Codeword) Clone() Codeword {
	out := make(Codeword, len(cw))
	copy(out, cw)
	return out
}

// Add returns the pointwise sum of two codewords over the same points
func (cw Codeword) Add(other Codeword) (Codeword, error) {
	if len(cw) != len(other) {
		return nil, fmt.Errorf("%w: codeword lengths %d and %d differ", ErrInvalidInput, len(cw), len(other))
	}
	out := make(Codeword, len(cw))
	for i := range cw {
		if !cw[i].X.Equal(other[i].X) {
			return nil, fmt.Errorf("%w: evaluation points differ at position %d", ErrInvalidInput, i)
		}
		out[i] = Symbol{X: cw[i].X, Y: cw[i].Y.Add(other[i].Y)}
	}
	return out, nil
}

// Equal reports whether both codewords hold the same symbols in the same order
func (cw Codeword) Equal(other Codeword) bool {
	if len(cw) != len(other) {
		return false
	}
	for i := range cw {
		if !cw[i].X.Equal(other[i].X) || !cw[i].Y.Equal(other[i].Y) {
			return false
		}
	}
	return true
}

// Agreement returns the number of positions where p(x_i) = y_i
func Agreement(p *poly.Polynomial, cw Codeword) int {
	t := 0
	for _, s := range cw {
		if p.Eval(s.X).Equal(s.Y) {
			t++
		}
	}
	return t
}

// HammingDistance returns the number of positions where the received
// values differ. Positions present in only one of the codewords count as
// differences.
func HammingDistance(a, b Codeword) int {
	n := min(len(a), len(b))
	d := max(len(a), len(b)) - n
	for i := 0; i < n; i++ {
		if !a[i].Y.Equal(b[i].Y) {
			d++
		}
	}
	return d
}

// Code is a Reed-Solomon code: a field, n distinct evaluation points and
// the message bound k. A Code is immutable and safe for concurrent use.
type Code struct {
	field  field.Field
	points []field.Element
	k      int
}

// NewCode validates the parameters and creates a code
func NewCode(f field.Field, points []field.Element, k int) (*Code, error) {
	if err := checkPoints(f, points); err != nil {
		return nil, err
	}
	if err := checkK(len(points), k); err != nil {
		return nil, err
	}
	ps := make([]field.Element, len(points))
	copy(ps, points)
	return &Code{field: f, points: ps, k: k}, nil
}

// Field returns the code's field
func (c *Code) Field() field.Field {
	return c.field
}

// Points returns a copy of the evaluation points
func (c *Code) Points() []field.Element {
	ps := make([]field.Element, len(c.points))
	copy(ps, c.points)
	return ps
}

// N returns the code length
func (c *Code) N() int {
	return len(c.points)
}

// K returns the message bound
func (c *Code) K() int {
	return c.k
}

// Encode evaluates msg at every point of the code
func (c *Code) Encode(msg *poly.Polynomial) (Codeword, error) {
	if msg.Degree() >= c.k {
		return nil, fmt.Errorf("%w: message degree %d is not below k = %d", ErrInvalidInput, msg.Degree(), c.k)
	}
	return evaluate(msg, c.points), nil
}

// EncodeSymbols encodes k message symbols systematically: the message
// polynomial interpolates (x_j, msg[j]) over the first k points, so the
// first k codeword values are the message itself.
func (c *Code) EncodeSymbols(msg []field.Element) (Codeword, error) {
	if len(msg) != c.k {
		return nil, fmt.Errorf("%w: got %d message symbols, expected %d", ErrInvalidInput, len(msg), c.k)
	}
	p, err := poly.Interpolate(c.field, c.points[:c.k], msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.Encode(p)
}

// MessageSymbols recovers the systematic message symbols from a decoded
// polynomial
func (c *Code) MessageSymbols(p *poly.Polynomial) []field.Element {
	out := make([]field.Element, c.k)
	for j := range out {
		out[j] = p.Eval(c.points[j])
	}
	return out
}

// GeneratorMatrix returns the n×k systematic generator matrix G = V·V_top⁻¹,
// where V is the Vandermonde matrix of the evaluation points and V_top its
// first k rows. The first k rows of G form the identity, and G·msg equals
// the values produced by EncodeSymbols(msg).
func (c *Code) GeneratorMatrix() ([][]field.Element, error) {
	n := len(c.points)

	// V[i][j] = x_i^j
	vandermonde := make([][]field.Element, n)
	for i, x := range c.points {
		vandermonde[i] = field.Powers(c.field, x, c.k-1)
	}

	// Column j of V_top⁻¹ solves V_top·z = e_j
	top := vandermonde[:c.k]
	inverse := make([][]field.Element, c.k)
	for i := range inverse {
		inverse[i] = make([]field.Element, c.k)
	}
	for j := 0; j < c.k; j++ {
		unit := make([]field.Element, c.k)
		for i := range unit {
			unit[i] = c.field.Zero()
		}
		unit[j] = c.field.One()
		z, err := field.Solve(top, unit, c.field)
		if err != nil {
			return nil, fmt.Errorf("failed to invert the Vandermonde block: %w", err)
		}
		for i := range z {
			inverse[i][j] = z[i]
		}
	}

	return field.MatrixMultiply(vandermonde, inverse, c.field), nil
}

// DecodeUnique runs the Berlekamp-Welch decoder assuming at most e errors
func (c *Code) DecodeUnique(cw Codeword, e int) (*poly.Polynomial, error) {
	return DecodeUnique(c.field, cw, c.k, e)
}

// DecodeList runs the Sudan list decoder with multiplicity m and weighted
// degree bound L
func (c *Code) DecodeList(cw Codeword, m, L int) ([]*poly.Polynomial, error) {
	return DecodeList(c.field, cw, c.k, m, L)
}

// DecodeListWithin returns every message within distance e of cw
func (c *Code) DecodeListWithin(cw Codeword, e int) ([]*poly.Polynomial, error) {
	return DecodeListWithin(c.field, cw, c.k, e)
}

// Encode evaluates msg, a polynomial of degree < k, at the given points
func Encode(f field.Field, msg *poly.Polynomial, points []field.Element, k int) (Codeword, error) {
	c, err := NewCode(f, points, k)
	if err != nil {
		return nil, err
	}
	return c.Encode(msg)
}

// DefaultPoints returns the evaluation points 0, 1, ..., n-1 in the
// natural enumeration of the field
func DefaultPoints(f field.Field, n int) ([]field.Element, error) {
	if n < 0 || big.NewInt(int64(n)).Cmp(f.Order()) > 0 {
		return nil, fmt.Errorf("%w: cannot pick %d distinct points in %s", ErrInvalidInput, n, f)
	}
	points := make([]field.Element, n)
	for i := range points {
		points[i] = field.FromUint64(f, uint64(i))
	}
	return points, nil
}

// PowerPoints returns the evaluation points 1, α, α^2, ..., α^(n-1). The
// points are distinct as long as the multiplicative order of α is at least n.
func PowerPoints(f field.Field, alpha field.Element, n int) []field.Element {
	if n <= 0 {
		return nil
	}
	points := make([]field.Element, n)
	points[0] = f.One()
	for i := 1; i < n; i++ {
		points[i] = points[i-1].Mul(alpha)
	}
	return points
}

func evaluate(p *poly.Polynomial, points []field.Element) Codeword {
	cw := make(Codeword, len(points))
	for i, x := range points {
		cw[i] = Symbol{X: x, Y: p.Eval(x)}
	}
	return cw
}

// checkPoints verifies that the points are distinct and no more numerous
// than the field
func checkPoints(f field.Field, points []field.Element) error {
	if big.NewInt(int64(len(points))).Cmp(f.Order()) > 0 {
		return fmt.Errorf("%w: %d points exceed the field order %s", ErrInvalidInput, len(points), f.Order())
	}
	seen := make(map[string]int, len(points))
	for i, x := range points {
		key := string(x.Bytes())
		if j, dup := seen[key]; dup {
			return fmt.Errorf("%w: evaluation point %s repeated at %d and %d", ErrInvalidInput, x, j, i)
		}
		seen[key] = i
	}
	return nil
}

func checkK(n, k int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k = %d must satisfy 1 <= k <= n = %d", ErrInvalidInput, k, n)
	}
	return nil
}
