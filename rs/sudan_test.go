package rs

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

func TestListParameters(t *testing.T) {
	t.Run("monomials", func(t *testing.T) {
		tests := []struct {
			k, L, expected int
		}{
			{3, 10, 36},
			{3, 11, 42},
			{2, 2, 6},
			{1, 2, 6},
			{4, 12, 35},
			{5, -1, 0},
		}
		for _, tt := range tests {
			if got := Monomials(tt.k, tt.L); got != tt.expected {
				t.Errorf("Monomials(%d, %d): expected %d, got %d", tt.k, tt.L, tt.expected, got)
			}
		}
	})

	t.Run("constraints", func(t *testing.T) {
		if got := Constraints(40, 1); got != 40 {
			t.Errorf("expected 40, got %d", got)
		}
		if got := Constraints(40, 3); got != 240 {
			t.Errorf("expected 240, got %d", got)
		}
	})

	t.Run("radius and list size", func(t *testing.T) {
		if got := ListRadius(40, 1, 11); got != 28 {
			t.Errorf("ListRadius(40, 1, 11): expected 28, got %d", got)
		}
		if got := ListRadius(40, 2, 20); got != 29 {
			t.Errorf("ListRadius(40, 2, 20): expected 29, got %d", got)
		}
		if got := MaxListSize(3, 11); got != 5 {
			t.Errorf("MaxListSize(3, 11): expected 5, got %d", got)
		}
		if got := MaxListSize(1, 4); got != 4 {
			t.Errorf("MaxListSize(1, 4): expected 4, got %d", got)
		}
	})
}

func TestChooseListParams(t *testing.T) {
	tests := []struct {
		name          string
		n, k, e, maxM int
		m, L          int
	}{
		{"single error", 5, 2, 1, 1, 1, 2},
		{"beyond unique radius", 40, 3, 25, 1, 1, 11},
		{"needs multiplicity", 40, 3, 29, 3, 2, 20},
		{"k one", 7, 1, 3, 1, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, L, err := ChooseListParams(tt.n, tt.k, tt.e, tt.maxM)
			if err != nil {
				t.Fatalf("ChooseListParams failed: %v", err)
			}
			if m != tt.m || L != tt.L {
				t.Errorf("expected (m, L) = (%d, %d), got (%d, %d)", tt.m, tt.L, m, L)
			}
			if Monomials(tt.k, L) <= Constraints(tt.n, m) {
				t.Errorf("(%d, %d) violates the monomial count", m, L)
			}
			if ListRadius(tt.n, m, L) < tt.e {
				t.Errorf("(%d, %d) has radius %d below %d", m, L, ListRadius(tt.n, m, L), tt.e)
			}
		})
	}

	t.Run("infeasible", func(t *testing.T) {
		if _, _, err := ChooseListParams(5, 4, 1, 1); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, _, err := ChooseListParams(40, 3, 29, 1); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("m=1 cannot reach 29 errors, expected ErrInvalidInput, got %v", err)
		}
		if _, _, err := ChooseListParams(5, 2, 5, 3); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("e = n should be rejected, got %v", err)
		}
		if _, _, err := ChooseListParams(5, 2, 1, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("maxM = 0 should be rejected, got %v", err)
		}
	})
}

func TestDecodeListSingleError(t *testing.T) {
	f := gf7()
	msg := poly.FromUint64s(f, 1, 3)
	cw := mustEncode(t, f, msg, elements(f, 1, 2, 3, 4, 5), 2)
	cw[1].Y = field.FromUint64(f, 5)

	list, err := DecodeListWithin(f, cw, 2, 1)
	if err != nil {
		t.Fatalf("DecodeListWithin failed: %v", err)
	}
	if len(list) != 1 || !list[0].Equal(msg) {
		t.Errorf("expected [%s], got %v", msg, list)
	}
}

// listCase encodes a random message, corrupts e positions and list decodes
// with (m, L) from ChooseListParams
func listCase(t *testing.T, f field.Field, points []field.Element, k, e, maxM int, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	n := len(points)

	m, L, err := ChooseListParams(n, k, e, maxM)
	if err != nil {
		t.Fatalf("ChooseListParams failed: %v", err)
	}
	msg := RandomPolynomial(rng, f, k)
	received, _, err := Corrupt(rng, f, mustEncode(t, f, msg, points, k), e)
	if err != nil {
		t.Fatalf("Corrupt failed: %v", err)
	}

	list, err := DecodeList(f, received, k, m, L)
	if err != nil {
		t.Fatalf("DecodeList failed: %v", err)
	}
	if len(list) > MaxListSize(k, L) {
		t.Errorf("list of %d exceeds the bound %d", len(list), MaxListSize(k, L))
	}
	found := false
	for _, p := range list {
		if p.Degree() >= k {
			t.Errorf("candidate %s has degree %d, expected < %d", p, p.Degree(), k)
		}
		if Agreement(p, received)*m <= L {
			t.Errorf("candidate %s agrees in only %d positions (m=%d, L=%d)", p, Agreement(p, received), m, L)
		}
		if p.Equal(msg) {
			found = true
		}
	}
	if !found {
		t.Errorf("message %s missing from list %v (n=%d, k=%d, e=%d, m=%d, L=%d)", msg, list, n, k, e, m, L)
	}
}

func TestDecodeListBeyondUniqueRadius(t *testing.T) {
	f := gf97()
	points := mustPoints(t, f, 40)
	if UniqueRadius(40, 3) >= 25 {
		t.Fatalf("test assumes 25 errors exceed the unique radius")
	}
	for seed := int64(0); seed < 3; seed++ {
		listCase(t, f, points, 3, 25, 1, seed)
	}
}

func TestDecodeListMultiplicity(t *testing.T) {
	f := gf97()
	listCase(t, f, mustPoints(t, f, 40), 3, 29, 2, 11)
}

func TestDecodeListBinaryField(t *testing.T) {
	f := field.NewBinaryFieldGF2_8()
	points := PowerPoints(f, f.FromBytes([]byte{0x03}), 30)
	listCase(t, f, points, 4, 16, 1, 5)
}

func TestDecodeListConstantMessage(t *testing.T) {
	f := gf7()
	msg := poly.FromUint64s(f, 5)
	cw := mustEncode(t, f, msg, mustPoints(t, f, 7), 1)
	received, _, err := Corrupt(rand.New(rand.NewSource(2)), f, cw, 3)
	if err != nil {
		t.Fatalf("Corrupt failed: %v", err)
	}

	list, err := DecodeListWithin(f, received, 1, 3)
	if err != nil {
		t.Fatalf("DecodeListWithin failed: %v", err)
	}
	if len(list) != 1 || !list[0].Equal(msg) {
		t.Errorf("expected [%s], got %v", msg, list)
	}
}

func TestDecodeListAmbiguous(t *testing.T) {
	// Half the positions follow a, the other half follow b. With n=8, k=2
	// both have agreement 4 and both are listed.
	f := gf97()
	points := mustPoints(t, f, 8)
	a := poly.FromUint64s(f, 3, 1)
	b := poly.FromUint64s(f, 50, 7)

	received := mustEncode(t, f, a, points, 2)
	other := mustEncode(t, f, b, points, 2)
	for i := 4; i < 8; i++ {
		received[i] = other[i]
	}

	m, L, err := ChooseListParams(8, 2, 4, DefaultMaxMultiplicity)
	if err != nil {
		t.Fatalf("ChooseListParams failed: %v", err)
	}
	list, err := DecodeList(f, received, 2, m, L)
	if err != nil {
		t.Fatalf("DecodeList failed: %v", err)
	}
	if !containsPolynomial(list, a) || !containsPolynomial(list, b) {
		t.Errorf("expected both %s and %s in %v (m=%d, L=%d)", a, b, list, m, L)
	}
}

func TestDecodeListInvalid(t *testing.T) {
	f := gf7()
	cw := mustEncode(t, f, poly.FromUint64s(f, 1, 3), elements(f, 1, 2, 3, 4, 5), 2)

	tests := []struct {
		name    string
		k, m, L int
	}{
		{"too few monomials", 2, 1, 1},
		{"zero multiplicity", 2, 0, 4},
		{"negative degree bound", 2, 1, -1},
		{"k zero", 0, 1, 4},
		{"k above n", 6, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeList(f, cw, tt.k, tt.m, tt.L); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	t.Run("field too large", func(t *testing.T) {
		large := field.NewPrimeField(big.NewInt(2147483647))
		points := mustPoints(t, large, 5)
		cw := mustEncode(t, large, poly.FromUint64s(large, 1, 3), points, 2)
		if _, err := DecodeList(large, cw, 2, 1, 2); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestFindRoots(t *testing.T) {
	f := gf97()
	a := poly.FromUint64s(f, 5, 11, 40)
	b := poly.FromUint64s(f, 5, 2, 9)
	c := poly.FromUint64s(f, 0, 0, 1)

	// Q = x²·(y - a)(y - b)(y - c)
	factor := func(p *poly.Polynomial) *poly.Bivariate {
		return poly.NewBivariate(f, []*poly.Polynomial{p.Neg(), poly.One(f)})
	}
	Q := factor(a)
	for _, p := range []*poly.Polynomial{b, c} {
		next := factor(p)
		coeffs := make([]*poly.Polynomial, Q.DegreeY()+2)
		for i := range coeffs {
			coeffs[i] = poly.Zero(f)
		}
		for i := 0; i <= Q.DegreeY(); i++ {
			for j := 0; j <= 1; j++ {
				coeffs[i+j] = coeffs[i+j].Add(Q.CoeffY(i).Mul(next.CoeffY(j)))
			}
		}
		Q = poly.NewBivariate(f, coeffs)
	}
	shifted := make([]*poly.Polynomial, Q.DegreeY()+1)
	for i := range shifted {
		shifted[i] = Q.CoeffY(i).MulXPow(2)
	}
	Q = poly.NewBivariate(f, shifted)

	roots, err := findRoots(Q, 3)
	if err != nil {
		t.Fatalf("findRoots failed: %v", err)
	}
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %v", roots)
	}
	for _, p := range []*poly.Polynomial{a, b, c} {
		if !containsPolynomial(roots, p) {
			t.Errorf("root %s not found in %v", p, roots)
		}
	}

	// With k=2 none of the degree 2 roots qualify
	roots, err = findRoots(Q, 2)
	if err != nil {
		t.Fatalf("findRoots failed: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("expected no roots of degree < 2, got %v", roots)
	}
}
