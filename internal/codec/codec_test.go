package codec

import (
	"bytes"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestCryptPreservesZeros(t *testing.T) {
	key := []byte("<>")
	tests := []struct {
		name     string
		in       []byte
		expected []byte
	}{
		{"plain", []byte{0x41, 0x42}, []byte{0x41 ^ '<', 0x42 ^ '>'}},
		{"zero kept", []byte{0x00, 0x10}, []byte{0x00, 0x10 ^ '>'}},
		{"key byte kept", []byte{'<', '>'}, []byte{'<', '>'}},
		{"empty", []byte{}, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Crypt(tt.in, key)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("Crypt() = %v, expected %v", got, tt.expected)
			}
			if back := Crypt(got, key); !bytes.Equal(back, tt.in) {
				t.Errorf("Crypt(Crypt()) = %v, expected %v", back, tt.in)
			}
		})
	}
}

func TestCryptInvolutionAllBytes(t *testing.T) {
	in := make([]byte, 512)
	for i := range in {
		in[i] = byte(i)
	}
	key := []byte("a longer obfuscation key")
	if back := Crypt(Crypt(in, key), key); !bytes.Equal(back, in) {
		t.Error("Crypt is not self-inverse over all byte values")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("iispace replay "), 200)
	c, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(c) >= len(data) {
		t.Errorf("Compress() = %d bytes, expected fewer than %d", len(c), len(data))
	}
	d, err := Decompress(c)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(d, data) {
		t.Error("Decompress(Compress(x)) != x")
	}
}

func TestDecompressIgnoresTrailingBytes(t *testing.T) {
	data := []byte("replay body")
	c, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	d, err := Decompress(append(c, "trailing"...))
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(d, data) {
		t.Errorf("Decompress() = %q, expected %q", d, data)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"not zlib", []byte("hello world")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decompress(tt.in); err == nil {
				t.Error("Decompress() error = nil, expected failure")
			}
		})
	}

	c, _ := Compress([]byte("some data that will be truncated"))
	if _, err := Decompress(c[:len(c)-3]); err == nil {
		t.Error("Decompress(truncated) error = nil, expected failure")
	}
}

func TestWireWalk(t *testing.T) {
	var inner Builder
	inner.Int64(1, -5)
	var w Builder
	w.String(1, "iispace")
	w.Varint(2, 0)
	w.Bool(3, true)
	w.Message(4, inner.Bytes())
	w.Message(4, nil)

	var names []string
	msgs := 0
	err := Walk(w.Bytes(), func(f Field) error {
		switch f.Num {
		case 1:
			names = append(names, string(f.Bytes))
		case 2:
			t.Error("zero varint was written")
		case 3:
			if f.Varint != 1 {
				t.Errorf("bool field = %d, expected 1", f.Varint)
			}
		case 4:
			msgs++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(names) != 1 || names[0] != "iispace" || msgs != 2 {
		t.Errorf("Walk() names=%v msgs=%d, expected [iispace] 2", names, msgs)
	}

	var v int64
	_ = Walk(inner.Bytes(), func(f Field) error {
		v = int64(f.Varint)
		return nil
	})
	if v != -5 {
		t.Errorf("Int64 round trip = %d, expected -5", v)
	}

	bad := protowire.AppendTag(nil, 1, protowire.BytesType)
	bad = append(bad, 10, 'x')
	if err := Walk(bad, func(Field) error { return nil }); !errors.Is(err, ErrMalformed) {
		t.Errorf("Walk(truncated) error = %v, expected ErrMalformed", err)
	}
}
