package text

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// TestWriterMatchesGroundingExample reproduces the grouping/indentation
// example a group Start always starts its own line at depth*2 spaces,
// an array's elements sit one level deeper than the group they're in,
// and End never carries a leading separator.
func TestWriterMatchesGroundingExample(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteStart()
	w.WriteValue(value.MakeTag('D', 'I', 'C', 'T'))
	w.WriteValue(value.String("one"))
	w.WriteValue(value.Int(1))
	w.WriteValue(value.String("two"))
	w.WriteStart()
	w.WriteValue(value.MakeTag('A', 'B', 'C', 'D'))
	w.WriteValue(value.Vec2Array{{X: 1, Y: 2}, {X: 3, Y: 4}})
	w.WriteEnd()
	w.WriteValue(value.String("three"))
	w.WriteValue(value.Bool(false))
	w.WriteEnd()
	w.Flush()

	want := "(DICT \"one\" 1 \"two\"\n  (ABCD {\n      [1.0 2.0]\n      [3.0 4.0]\n    }) \"three\" false)"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestStreamNormalizesOnRewrite drains a loosely formatted stream and
// replays it through the writer, which must produce the canonical
// layout regardless of the input's spacing.
func TestStreamNormalizesOnRewrite(t *testing.T) {
	input := `( DICT "one" 1
	"two" ( ABCD { [1.0 2.0] [3.0 4.0] } ) "three" false )`
	r := NewReader(strings.NewReader(input))
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for {
		tok, err := r.ReadNext()
		if err != nil {
			t.Fatalf("ReadNext: %v", err)
		}
		if tok.Kind == value.TokenEOF {
			break
		}
		switch tok.Kind {
		case value.TokenStart:
			err = w.WriteStart()
		case value.TokenEnd:
			err = w.WriteEnd()
		case value.TokenValue:
			err = w.WriteValue(tok.Value)
		}
		if err != nil {
			t.Fatalf("rewrite: %v", err)
		}
	}
	w.Flush()

	want := "(DICT \"one\" 1 \"two\"\n  (ABCD {\n      [1.0 2.0]\n      [3.0 4.0]\n    }) \"three\" false)"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestReaderParsesWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteStart()
	w.WriteValue(value.MakeTag('W', 'D', 'G', 'T'))
	w.WriteValue(value.Vec2{X: 1, Y: 2})
	w.WriteValue(value.DoubleArray{1, 2, 3})
	w.WriteEnd()
	w.Flush()

	r := NewReader(&buf)
	var kinds []value.TokenKind
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
	want := []value.TokenKind{
		value.TokenStart, value.TokenValue, value.TokenValue, value.TokenValue,
		value.TokenEnd, value.TokenEOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestStringEscapesDoubledQuotes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteValue(value.String(`say "hi"`))
	w.Flush()
	if got, want := buf.String(), `"say ""hi"""`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	r := NewReader(strings.NewReader(buf.String()))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext: %v", err)
	}
	if s, ok := tok.Value.(value.String); !ok || string(s) != `say "hi"` {
		t.Fatalf("round-tripped string = %#v, want %q", tok.Value, `say "hi"`)
	}
}

func TestUnterminatedStringIsUnexpectedEOF(t *testing.T) {
	r := NewReader(strings.NewReader(`"unterminated`))
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrUnexpectedEOF) {
		t.Fatalf("ReadNext() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestEmptyArrayDefaultsToDoubleArray(t *testing.T) {
	r := NewReader(strings.NewReader("{}"))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext: %v", err)
	}
	arr, ok := tok.Value.(value.DoubleArray)
	if !ok {
		t.Fatalf("value = %#v, want DoubleArray", tok.Value)
	}
	if len(arr) != 0 {
		t.Fatalf("len(arr) = %d, want 0", len(arr))
	}
}

func TestMixedArrayElementKindsRejected(t *testing.T) {
	r := NewReader(strings.NewReader("{ 1 2.5 }"))
	if _, err := r.ReadNext(); !errors.Is(err, codec.ErrInvalidToken) {
		t.Fatalf("ReadNext() error = %v, want ErrInvalidToken", err)
	}
}

func TestBlobHexRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteValue(value.Blob{0xde, 0xad, 0xbe, 0xef})
	w.Flush()
	if got, want := buf.String(), "0xdeadbeef"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	r := NewReader(strings.NewReader(buf.String()))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext: %v", err)
	}
	blob, ok := tok.Value.(value.Blob)
	if !ok || !bytes.Equal(blob, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("round-tripped blob = %#v", tok.Value)
	}
}

func TestBox2BracketNesting(t *testing.T) {
	r := NewReader(strings.NewReader("[[0.0 0.0] [1.0 1.0]]"))
	tok, err := r.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext: %v", err)
	}
	box, ok := tok.Value.(value.Box2)
	if !ok {
		t.Fatalf("value = %#v, want Box2", tok.Value)
	}
	want := value.Box2{Min: value.Vec2{X: 0, Y: 0}, Max: value.Vec2{X: 1, Y: 1}}
	if box != want {
		t.Fatalf("got %+v, want %+v", box, want)
	}
}

func TestDoubleAlwaysHasDecimalPoint(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteValue(value.Double(5))
	w.Flush()
	if got, want := buf.String(), "5.0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
