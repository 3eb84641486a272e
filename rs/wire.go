package rs

import (
	"fmt"
	"math/big"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/pb"
	"github.com/ppopth/rs-listdecode/poly"

	"github.com/gogo/protobuf/proto"
)

// Transcript is a received word together with what is needed to replay a
// decode: the field, the message bound and, when known, the injected error
// positions and the transmitted message.
type Transcript struct {
	Field    field.Field
	Codeword Codeword
	K        int
	Errors   []int
	Message  *poly.Polynomial
}

// MarshalField describes f as a protobuf message
func MarshalField(f field.Field) (*pb.Field, error) {
	switch f := f.(type) {
	case *field.PrimeField:
		return &pb.Field{
			Kind:    pb.FieldKind_PRIME.Enum(),
			Modulus: f.Modulus().Bytes(),
		}, nil
	case *field.BinaryField:
		return &pb.Field{
			Kind:    pb.FieldKind_BINARY.Enum(),
			Modulus: f.Irreducible().Bytes(),
			Degree:  proto.Uint32(uint32(f.Degree())),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported field type %T", ErrInvalidInput, f)
	}
}

// FieldFromProto rebuilds a field from its protobuf description. The prime
// modulus and the degree of the binary modulus are validated.
func FieldFromProto(m *pb.Field) (field.Field, error) {
	modulus := new(big.Int).SetBytes(m.GetModulus())
	switch m.GetKind() {
	case pb.FieldKind_PRIME:
		f, err := field.NewCheckedPrimeField(modulus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return f, nil
	case pb.FieldKind_BINARY:
		f, err := field.NewCheckedBinaryField(int(m.GetDegree()), modulus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: unknown field kind %s", ErrInvalidInput, m.GetKind())
	}
}

// MarshalCodeword serializes a transcript
func MarshalCodeword(t *Transcript) ([]byte, error) {
	fm, err := MarshalField(t.Field)
	if err != nil {
		return nil, err
	}
	msg := &pb.Codeword{
		Field: fm,
		Xs:    make([][]byte, len(t.Codeword)),
		Ys:    make([][]byte, len(t.Codeword)),
	}
	for i, s := range t.Codeword {
		msg.Xs[i] = s.X.Bytes()
		msg.Ys[i] = s.Y.Bytes()
	}
	if t.K > 0 {
		msg.K = proto.Uint32(uint32(t.K))
	}
	for _, i := range t.Errors {
		msg.Errors = append(msg.Errors, uint32(i))
	}
	if t.Message != nil {
		msg.Message = &pb.Polynomial{}
		for _, c := range t.Message.Coefficients() {
			msg.Message.Coeffs = append(msg.Message.Coeffs, c.Bytes())
		}
	}
	return proto.Marshal(msg)
}

// UnmarshalCodeword parses a transcript written by MarshalCodeword
func UnmarshalCodeword(data []byte) (*Transcript, error) {
	var msg pb.Codeword
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse codeword: %w", err)
	}
	if msg.GetField() == nil {
		return nil, fmt.Errorf("%w: codeword has no field", ErrInvalidInput)
	}
	f, err := FieldFromProto(msg.GetField())
	if err != nil {
		return nil, err
	}
	if len(msg.GetXs()) != len(msg.GetYs()) {
		return nil, fmt.Errorf("%w: %d points and %d values", ErrInvalidInput, len(msg.GetXs()), len(msg.GetYs()))
	}

	t := &Transcript{
		Field:    f,
		Codeword: make(Codeword, len(msg.GetXs())),
		K:        int(msg.GetK()),
	}
	for i := range msg.GetXs() {
		t.Codeword[i] = Symbol{X: f.FromBytes(msg.Xs[i]), Y: f.FromBytes(msg.Ys[i])}
	}
	for _, i := range msg.GetErrors() {
		t.Errors = append(t.Errors, int(i))
	}
	if m := msg.GetMessage(); m != nil {
		coeffs := make([]field.Element, len(m.GetCoeffs()))
		for i, c := range m.GetCoeffs() {
			coeffs[i] = f.FromBytes(c)
		}
		t.Message = poly.New(f, coeffs)
	}
	return t, nil
}
