// Package pb holds the protobuf messages used to store received words on
// disk. The layout is described in codeword.proto; messages are encoded with
// github.com/gogo/protobuf/proto.
package pb

import (
	"strconv"

	"github.com/gogo/protobuf/proto"
)

type FieldKind int32

const (
	FieldKind_UNKNOWN FieldKind = 0
	FieldKind_PRIME   FieldKind = 1
	FieldKind_BINARY  FieldKind = 2
)

var FieldKind_name = map[int32]string{
	0: "UNKNOWN",
	1: "PRIME",
	2: "BINARY",
}

var FieldKind_value = map[string]int32{
	"UNKNOWN": 0,
	"PRIME":   1,
	"BINARY":  2,
}

func (x FieldKind) Enum() *FieldKind {
	p := new(FieldKind)
	*p = x
	return p
}

func (x FieldKind) String() string {
	if name, ok := FieldKind_name[int32(x)]; ok {
		return name
	}
	return strconv.Itoa(int(x))
}

type Field struct {
	Kind    *FieldKind `protobuf:"varint,1,opt,name=kind,enum=rslist.FieldKind" json:"kind,omitempty"`
	Modulus []byte     `protobuf:"bytes,2,opt,name=modulus" json:"modulus,omitempty"`
	Degree  *uint32    `protobuf:"varint,3,opt,name=degree" json:"degree,omitempty"`
}

func (m *Field) Reset()         { *m = Field{} }
func (m *Field) String() string { return proto.CompactTextString(m) }
func (*Field) ProtoMessage()    {}

func (m *Field) GetKind() FieldKind {
	if m != nil && m.Kind != nil {
		return *m.Kind
	}
	return FieldKind_UNKNOWN
}

func (m *Field) GetModulus() []byte {
	if m != nil {
		return m.Modulus
	}
	return nil
}

func (m *Field) GetDegree() uint32 {
	if m != nil && m.Degree != nil {
		return *m.Degree
	}
	return 0
}

type Polynomial struct {
	Coeffs [][]byte `protobuf:"bytes,1,rep,name=coeffs" json:"coeffs,omitempty"`
}

func (m *Polynomial) Reset()         { *m = Polynomial{} }
func (m *Polynomial) String() string { return proto.CompactTextString(m) }
func (*Polynomial) ProtoMessage()    {}

func (m *Polynomial) GetCoeffs() [][]byte {
	if m != nil {
		return m.Coeffs
	}
	return nil
}

type Codeword struct {
	Field   *Field      `protobuf:"bytes,1,opt,name=field" json:"field,omitempty"`
	Xs      [][]byte    `protobuf:"bytes,2,rep,name=xs" json:"xs,omitempty"`
	Ys      [][]byte    `protobuf:"bytes,3,rep,name=ys" json:"ys,omitempty"`
	K       *uint32     `protobuf:"varint,4,opt,name=k" json:"k,omitempty"`
	Errors  []uint32    `protobuf:"varint,5,rep,name=errors" json:"errors,omitempty"`
	Message *Polynomial `protobuf:"bytes,6,opt,name=message" json:"message,omitempty"`
}

func (m *Codeword) Reset()         { *m = Codeword{} }
func (m *Codeword) String() string { return proto.CompactTextString(m) }
func (*Codeword) ProtoMessage()    {}

func (m *Codeword) GetField() *Field {
	if m != nil {
		return m.Field
	}
	return nil
}

func (m *Codeword) GetXs() [][]byte {
	if m != nil {
		return m.Xs
	}
	return nil
}

func (m *Codeword) GetYs() [][]byte {
	if m != nil {
		return m.Ys
	}
	return nil
}

func (m *Codeword) GetK() uint32 {
	if m != nil && m.K != nil {
		return *m.K
	}
	return 0
}

func (m *Codeword) GetErrors() []uint32 {
	if m != nil {
		return m.Errors
	}
	return nil
}

func (m *Codeword) GetMessage() *Polynomial {
	if m != nil {
		return m.Message
	}
	return nil
}

func init() {
	proto.RegisterEnum("rslist.FieldKind", FieldKind_name, FieldKind_value)
	proto.RegisterType((*Field)(nil), "rslist.Field")
	proto.RegisterType((*Polynomial)(nil), "rslist.Polynomial")
	proto.RegisterType((*Codeword)(nil), "rslist.Codeword")
}
