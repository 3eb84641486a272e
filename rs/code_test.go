package rs

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/poly"
)

func gf7() *field.PrimeField {
	return field.NewPrimeField(big.NewInt(7))
}

func gf97() *field.PrimeField {
	return field.NewPrimeField(big.NewInt(97))
}

func elements(f field.Field, values ...uint64) []field.Element {
	out := make([]field.Element, len(values))
	for i, v := range values {
		out[i] = field.FromUint64(f, v)
	}
	return out
}

func mustPoints(t testing.TB, f field.Field, n int) []field.Element {
	t.Helper()
	points, err := DefaultPoints(f, n)
	if err != nil {
		t.Fatalf("DefaultPoints failed: %v", err)
	}
	return points
}

func mustEncode(t testing.TB, f field.Field, msg *poly.Polynomial, points []field.Element, k int) Codeword {
	t.Helper()
	cw, err := Encode(f, msg, points, k)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return cw
}

func TestEncode(t *testing.T) {
	f := gf7()
	msg := poly.FromUint64s(f, 1, 3) // 3x + 1
	points := elements(f, 1, 2, 3, 4, 5)

	cw := mustEncode(t, f, msg, points, 2)

	expected := elements(f, 4, 0, 3, 6, 2)
	if len(cw) != len(expected) {
		t.Fatalf("expected %d symbols, got %d", len(expected), len(cw))
	}
	for i, s := range cw {
		if !s.X.Equal(points[i]) {
			t.Errorf("position %d: expected x = %s, got %s", i, points[i], s.X)
		}
		if !s.Y.Equal(expected[i]) {
			t.Errorf("position %d: expected y = %s, got %s", i, expected[i], s.Y)
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	f := gf7()
	msg := poly.FromUint64s(f, 1, 3)

	tests := []struct {
		name   string
		points []field.Element
		k      int
		msg    *poly.Polynomial
	}{
		{"degree not below k", elements(f, 1, 2, 3), 1, msg},
		{"duplicate points", elements(f, 1, 2, 2), 2, msg},
		{"more points than field elements", elements(f, 0, 1, 2, 3, 4, 5, 6, 7), 2, msg},
		{"k zero", elements(f, 1, 2, 3), 0, poly.Zero(f)},
		{"k above n", elements(f, 1, 2), 3, msg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(f, tt.msg, tt.points, tt.k)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEncodeLinearity(t *testing.T) {
	f := gf97()
	rng := rand.New(rand.NewSource(42))
	points := mustPoints(t, f, 20)

	for trial := 0; trial < 10; trial++ {
		a := RandomPolynomial(rng, f, 8)
		b := RandomPolynomial(rng, f, 8)

		sum, err := mustEncode(t, f, a, points, 8).Add(mustEncode(t, f, b, points, 8))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !sum.Equal(mustEncode(t, f, a.Add(b), points, 8)) {
			t.Errorf("encode(a+b) != encode(a) + encode(b)")
		}
	}
}

func TestCodewordAddMismatch(t *testing.T) {
	f := gf7()
	a := mustEncode(t, f, poly.One(f), elements(f, 1, 2, 3), 1)
	b := mustEncode(t, f, poly.One(f), elements(f, 1, 2, 4), 1)
	if _, err := a.Add(b); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("adding codewords over different points should fail, got %v", err)
	}
	if _, err := a.Add(b[:2]); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("adding codewords of different lengths should fail, got %v", err)
	}
}

func TestEncodeSymbols(t *testing.T) {
	f := gf97()
	code, err := NewCode(f, mustPoints(t, f, 12), 5)
	if err != nil {
		t.Fatalf("NewCode failed: %v", err)
	}

	msg := elements(f, 10, 20, 30, 40, 50)
	cw, err := code.EncodeSymbols(msg)
	if err != nil {
		t.Fatalf("EncodeSymbols failed: %v", err)
	}
	for j, m := range msg {
		if !cw[j].Y.Equal(m) {
			t.Errorf("systematic position %d: expected %s, got %s", j, m, cw[j].Y)
		}
	}

	decoded, err := code.DecodeUnique(cw, 0)
	if err != nil {
		t.Fatalf("DecodeUnique failed: %v", err)
	}
	for j, s := range code.MessageSymbols(decoded) {
		if !s.Equal(msg[j]) {
			t.Errorf("recovered symbol %d: expected %s, got %s", j, msg[j], s)
		}
	}

	if _, err := code.EncodeSymbols(msg[:4]); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("wrong message length should fail, got %v", err)
	}
}

func TestGeneratorMatrix(t *testing.T) {
	tests := []struct {
		name   string
		f      field.Field
		points func(f field.Field) []field.Element
	}{
		{"prime field", gf97(), func(f field.Field) []field.Element { return mustPoints(t, f, 10) }},
		{"binary field", field.NewBinaryFieldGF2_8(), func(f field.Field) []field.Element {
			return PowerPoints(f, f.FromBytes([]byte{0x03}), 10)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NewCode(tt.f, tt.points(tt.f), 4)
			if err != nil {
				t.Fatalf("NewCode failed: %v", err)
			}
			G, err := code.GeneratorMatrix()
			if err != nil {
				t.Fatalf("GeneratorMatrix failed: %v", err)
			}
			if len(G) != 10 || len(G[0]) != 4 {
				t.Fatalf("expected a 10x4 matrix, got %dx%d", len(G), len(G[0]))
			}
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					if (i == j) != G[i][j].Equal(tt.f.One()) || (i != j && !G[i][j].IsZero()) {
						t.Errorf("G[%d][%d] = %s breaks the identity block", i, j, G[i][j])
					}
				}
			}

			msg := elements(tt.f, 7, 1, 0, 9)
			cw, err := code.EncodeSymbols(msg)
			if err != nil {
				t.Fatalf("EncodeSymbols failed: %v", err)
			}
			values := field.MatrixVector(G, msg, tt.f)
			for i, v := range values {
				if !v.Equal(cw[i].Y) {
					t.Errorf("position %d: G·msg = %s, EncodeSymbols gave %s", i, v, cw[i].Y)
				}
			}
		})
	}
}

func TestDefaultPoints(t *testing.T) {
	f := gf7()
	points := mustPoints(t, f, 7)
	for i, x := range points {
		if !x.Equal(field.FromUint64(f, uint64(i))) {
			t.Errorf("point %d: got %s", i, x)
		}
	}
	if _, err := DefaultPoints(f, 8); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("8 points in GF(7) should fail, got %v", err)
	}
}

func TestPowerPoints(t *testing.T) {
	f := field.NewBinaryFieldGF2_8()
	points := PowerPoints(f, f.FromBytes([]byte{0x03}), 255)
	if _, err := NewCode(f, points, 10); err != nil {
		t.Errorf("powers of a primitive element should be distinct: %v", err)
	}
	if !points[0].Equal(f.One()) {
		t.Errorf("first point should be one, got %s", points[0])
	}
	// 0x03 has order 255, so the 256th power wraps around
	wrapped := PowerPoints(f, f.FromBytes([]byte{0x03}), 256)
	if _, err := NewCode(f, wrapped, 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected a repeated point, got %v", err)
	}
}

func TestAgreementAndDistance(t *testing.T) {
	f := gf7()
	msg := poly.FromUint64s(f, 1, 3)
	cw := mustEncode(t, f, msg, elements(f, 1, 2, 3, 4, 5), 2)

	received := cw.Clone()
	received[1].Y = field.FromUint64(f, 5)
	received[3].Y = field.FromUint64(f, 0)

	if got := Agreement(msg, received); got != 3 {
		t.Errorf("expected agreement 3, got %d", got)
	}
	if got := HammingDistance(cw, received); got != 2 {
		t.Errorf("expected distance 2, got %d", got)
	}
	if got := HammingDistance(cw, received[:4]); got != 3 {
		t.Errorf("expected distance 3 with a missing position, got %d", got)
	}
	if !cw[1].Y.Equal(field.FromUint64(f, 0)) {
		t.Errorf("Clone should not share symbols with the original")
	}
}
