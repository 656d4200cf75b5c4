package binary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

func encodeValue(t *testing.T, v value.Value) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteValue(v); err != nil {
		t.Fatalf("WriteValue(%v): %v", v, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return buf.Bytes()
}

func TestIntEncodingMatchesZigzagVarint(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{1000, []byte{byteInt, 0xD0, 0x0F}},
		{-310138, []byte{byteInt, 0xF3, 0xED, 0x25}},
	}
	for _, c := range cases {
		got := encodeValue(t, value.Int(c.v))
		if !bytes.Equal(got, c.want) {
			t.Errorf("Int(%d) encoded as %x, want %x", c.v, got, c.want)
		}
	}
}

func TestVec2EncodingIsLittleEndianDoubles(t *testing.T) {
	got := encodeValue(t, value.Vec2{X: 67245.375, Y: 3464.85})
	want := []byte{
		byteVec2,
		0x00, 0x00, 0x00, 0x00, 0xD6, 0x6A, 0xF0, 0x40,
		0x33, 0x33, 0x33, 0x33, 0xB3, 0x11, 0xAB, 0x40,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Vec2 encoded as %x, want %x", got, want)
	}
}

func TestTagEncodingIsBigEndianFourCC(t *testing.T) {
	got := encodeValue(t, value.MakeTag('S', 'H', 'A', 'P'))
	want := []byte{byteTag, 0x53, 0x48, 0x41, 0x50}
	if !bytes.Equal(got, want) {
		t.Fatalf("Tag SHAP encoded as %x, want %x", got, want)
	}

	r := NewReader(bytes.NewReader(got))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext: %v", err)
	}
	if tag, ok := tok.Value.(value.Tag); !ok || tag.String() != "SHAP" {
		t.Fatalf("decoded tag = %#v, want SHAP", tok.Value)
	}
}

func TestReadIntOutOfRangeIsRejected(t *testing.T) {
	// A varint whose zigzag-decoded value exceeds signed 32-bit range.
	var buf bytes.Buffer
	buf.WriteByte(byteInt)
	if err := writeSvarint(&buf, int64(1)<<33); err != nil {
		t.Fatalf("writeSvarint: %v", err)
	}
	r := NewReader(&buf)
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrRangeViolation) {
		t.Fatalf("ReadNext() error = %v, want ErrRangeViolation", err)
	}
}

func TestVarintLongerThanTenBytesIsRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byteInt)
	for i := 0; i < 11; i++ {
		buf.WriteByte(0x80)
	}
	buf.WriteByte(0x00)
	r := NewReader(&buf)
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrRangeViolation) {
		t.Fatalf("ReadNext() error = %v, want ErrRangeViolation", err)
	}
}

func TestValueRoundTripsThroughBinary(t *testing.T) {
	values := []value.Value{
		value.Bool(true),
		value.Bool(false),
		value.Int(1000),
		value.Int(-310138),
		value.Double(3.25),
		value.MakeTag('S', 'H', 'A', 'P'),
		value.Vec2{X: 1, Y: 2},
		value.Vec3{X: 1, Y: 2, Z: 3},
		value.Vec4{X: 1, Y: 2, Z: 3, W: 4},
		value.Box2{Min: value.Vec2{X: 0, Y: 0}, Max: value.Vec2{X: 1, Y: 1}},
		value.String("hello, scene"),
		value.Blob{0xde, 0xad, 0xbe, 0xef},
		value.BoolArray{true, false, true},
		value.IntArray{1, -2, 3},
		value.DoubleArray{1.5, -2.5},
		value.Vec2Array{{X: 1, Y: 2}, {X: 3, Y: 4}},
		value.Box2Array(nil),
	}
	for _, v := range values {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.WriteValue(v); err != nil {
			t.Fatalf("WriteValue(%v): %v", v, err)
		}
		w.Flush()

		r := NewReader(&buf)
		tok, err := r.ReadNext()
		if err != nil {
			t.Fatalf("ReadNext after writing %v: %v", v, err)
		}
		if tok.Kind != value.TokenValue {
			t.Fatalf("ReadNext() kind = %s, want Value", tok.Kind)
		}
		if tok.Value.Kind() != v.Kind() {
			t.Errorf("round-tripped kind = %s, want %s", tok.Value.Kind(), v.Kind())
		}
	}
}

func TestStartEndRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteStart()
	w.WriteValue(value.MakeTag('G', 'R', 'U', 'P'))
	w.WriteEnd()
	w.Flush()

	r := NewReader(&buf)
	kinds := []value.TokenKind{}
	for {
		tok, err := r.ReadNext()
		if err != nil {
			t.Fatalf("ReadNext: %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == value.TokenEOF {
			break
		}
	}
	want := []value.TokenKind{value.TokenStart, value.TokenValue, value.TokenEnd, value.TokenEOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestCleanEOFAtTokenBoundary(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext on empty stream: %v", err)
	}
	if tok.Kind != value.TokenEOF {
		t.Fatalf("ReadNext() = %s, want EndOfFile", tok.Kind)
	}
}

func TestTruncatedPayloadIsUnexpectedEOF(t *testing.T) {
	// A double type byte with no payload bytes behind it.
	r := NewReader(bytes.NewReader([]byte{byteDouble}))
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrUnexpectedEOF) {
		t.Fatalf("ReadNext() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestUnknownTypeByteIsInvalidToken(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x55}))
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrInvalidToken) {
		t.Fatalf("ReadNext() error = %v, want ErrInvalidToken", err)
	}
}
