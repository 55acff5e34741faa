package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed reports protobuf wire data that cannot be parsed.
var ErrMalformed = errors.New("codec: malformed wire data")

// Builder appends protobuf wire fields. Scalar setters skip zero values.
type Builder struct {
	b []byte
}

func (w *Builder) Bytes() []byte {
	return w.b
}

func (w *Builder) Varint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.VarintType)
	w.b = protowire.AppendVarint(w.b, v)
}

// Int64 writes a signed value as a two's-complement varint.
func (w *Builder) Int64(num protowire.Number, v int64) {
	w.Varint(num, uint64(v))
}

func (w *Builder) Bool(num protowire.Number, v bool) {
	w.Varint(num, protowire.EncodeBool(v))
}

func (w *Builder) String(num protowire.Number, s string) {
	if s == "" {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendString(w.b, s)
}

// Message writes a length-delimited field even when msg is empty, so
// repeated entries keep their position.
func (w *Builder) Message(num protowire.Number, msg []byte) {
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendBytes(w.b, msg)
}

// Field is one decoded wire field. Varint holds the value of varint and
// fixed fields; Bytes holds length-delimited payloads.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// Walk decodes b field by field. Groups are rejected. fn may return an error
// to stop the walk.
func Walk(b []byte, fn func(Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.Varint = uint64(v)
		case protowire.Fixed64Type:
			f.Varint, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(b)
		default:
			return fmt.Errorf("%w: unsupported wire type %d for field %d", ErrMalformed, typ, num)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// Expect checks that f has the given wire type.
func (f Field) Expect(typ protowire.Type) error {
	if f.Type != typ {
		return fmt.Errorf("%w: field %d has wire type %d, expected %d", ErrMalformed, f.Num, f.Type, typ)
	}
	return nil
}
