package codec

import (
	"fmt"

	"github.com/sceneproto/scene/value"
)

// Reader is the minimal capability a token source must provide. Every
// other read operation in this package is a default-provided helper
// built strictly on top of ReadNext — binary and text codecs each
// supply only this one method.
type Reader interface {
	ReadNext() (value.Token, error)
}

// R wraps any Reader with the full set of expect_*/skip_to_end schema
// helpers. Binary and text readers are plain Readers; callers wrap them
// with New to get the helper vocabulary.
type R struct {
	Reader
}

// New wraps an underlying Reader with the expect_*/skip_to_end helpers.
func New(underlying Reader) *R {
	return &R{Reader: underlying}
}

// SkipToEnd consumes values and balanced nested groups until it
// encounters the End that closes the currently open group. Any
// EndOfFile before that End, including one read immediately, fails with
// ErrUnexpectedEOF.
func (r *R) SkipToEnd() error {
	depth := 1
	for depth > 0 {
		tok, err := r.ReadNext()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case value.TokenStart:
			depth++
		case value.TokenEnd:
			depth--
		case value.TokenEOF:
			return fmt.Errorf("skip_to_end: %w", ErrUnexpectedEOF)
		}
	}
	return nil
}

// ExpectStart reads the next token and fails unless it is Start.
func (r *R) ExpectStart() error {
	tok, err := r.ReadNext()
	if err != nil {
		return err
	}
	if tok.Kind != value.TokenStart {
		return fmt.Errorf("expect_start: got %s: %w", tok.Kind, ErrUnexpectedToken)
	}
	return nil
}

// ExpectStartOrEnd reads the next token; it returns started=true on
// Start, started=false on End, and treats EndOfFile at depth zero as
// "no group" (started=false, err=nil).
func (r *R) ExpectStartOrEnd() (started bool, err error) {
	tok, err := r.ReadNext()
	if err != nil {
		return false, err
	}
	switch tok.Kind {
	case value.TokenStart:
		return true, nil
	case value.TokenEnd, value.TokenEOF:
		return false, nil
	default:
		return false, fmt.Errorf("expect_start_or_end: got %s: %w", tok.Kind, ErrUnexpectedToken)
	}
}

// ExpectEnd reads the next token and fails unless it is End.
func (r *R) ExpectEnd() error {
	tok, err := r.ReadNext()
	if err != nil {
		return err
	}
	if tok.Kind != value.TokenEnd {
		return fmt.Errorf("expect_end: got %s: %w", tok.Kind, ErrUnexpectedToken)
	}
	return nil
}

func (r *R) expectValue(kind value.Kind) (value.Value, error) {
	tok, err := r.ReadNext()
	if err != nil {
		return nil, err
	}
	if tok.Kind != value.TokenValue || tok.Value.Kind() != kind {
		return nil, fmt.Errorf("expect_%s: got %s: %w", kind, tok.Kind, ErrUnexpectedToken)
	}
	return tok.Value, nil
}

// expectValueOrEnd reads the next token; it accepts End (returning
// ok=false) in addition to a value of the requested kind.
func (r *R) expectValueOrEnd(kind value.Kind) (v value.Value, ok bool, err error) {
	tok, err := r.ReadNext()
	if err != nil {
		return nil, false, err
	}
	if tok.Kind == value.TokenEnd {
		return nil, false, nil
	}
	if tok.Kind != value.TokenValue || tok.Value.Kind() != kind {
		return nil, false, fmt.Errorf("expect_%s_or_end: got %s: %w", kind, tok.Kind, ErrUnexpectedToken)
	}
	return tok.Value, true, nil
}

func (r *R) ExpectBool() (bool, error) {
	v, err := r.expectValue(value.KindBool)
	if err != nil {
		return false, err
	}
	return bool(v.(value.Bool)), nil
}

func (r *R) ExpectBoolOrEnd() (result bool, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindBool)
	if err != nil || !ok {
		return false, ok, err
	}
	return bool(v.(value.Bool)), true, nil
}

func (r *R) ExpectInt() (int32, error) {
	v, err := r.expectValue(value.KindInt)
	if err != nil {
		return 0, err
	}
	return int32(v.(value.Int)), nil
}

func (r *R) ExpectIntOrEnd() (result int32, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindInt)
	if err != nil || !ok {
		return 0, ok, err
	}
	return int32(v.(value.Int)), true, nil
}

func (r *R) ExpectDouble() (float64, error) {
	v, err := r.expectValue(value.KindDouble)
	if err != nil {
		return 0, err
	}
	return float64(v.(value.Double)), nil
}

func (r *R) ExpectDoubleOrEnd() (result float64, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindDouble)
	if err != nil || !ok {
		return 0, ok, err
	}
	return float64(v.(value.Double)), true, nil
}

func (r *R) ExpectTag() (value.Tag, error) {
	v, err := r.expectValue(value.KindTag)
	if err != nil {
		return 0, err
	}
	return v.(value.Tag), nil
}

func (r *R) ExpectTagOrEnd() (result value.Tag, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindTag)
	if err != nil || !ok {
		return 0, ok, err
	}
	return v.(value.Tag), true, nil
}

func (r *R) ExpectVec2() (value.Vec2, error) {
	v, err := r.expectValue(value.KindVec2)
	if err != nil {
		return value.Vec2{}, err
	}
	return v.(value.Vec2), nil
}

func (r *R) ExpectVec2OrEnd() (result value.Vec2, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec2)
	if err != nil || !ok {
		return value.Vec2{}, ok, err
	}
	return v.(value.Vec2), true, nil
}

func (r *R) ExpectVec3() (value.Vec3, error) {
	v, err := r.expectValue(value.KindVec3)
	if err != nil {
		return value.Vec3{}, err
	}
	return v.(value.Vec3), nil
}

func (r *R) ExpectVec3OrEnd() (result value.Vec3, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec3)
	if err != nil || !ok {
		return value.Vec3{}, ok, err
	}
	return v.(value.Vec3), true, nil
}

func (r *R) ExpectVec4() (value.Vec4, error) {
	v, err := r.expectValue(value.KindVec4)
	if err != nil {
		return value.Vec4{}, err
	}
	return v.(value.Vec4), nil
}

func (r *R) ExpectVec4OrEnd() (result value.Vec4, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec4)
	if err != nil || !ok {
		return value.Vec4{}, ok, err
	}
	return v.(value.Vec4), true, nil
}

func (r *R) ExpectBox2() (value.Box2, error) {
	v, err := r.expectValue(value.KindBox2)
	if err != nil {
		return value.Box2{}, err
	}
	return v.(value.Box2), nil
}

func (r *R) ExpectBox2OrEnd() (result value.Box2, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindBox2)
	if err != nil || !ok {
		return value.Box2{}, ok, err
	}
	return v.(value.Box2), true, nil
}

func (r *R) ExpectString() (string, error) {
	v, err := r.expectValue(value.KindString)
	if err != nil {
		return "", err
	}
	return string(v.(value.String)), nil
}

func (r *R) ExpectStringOrEnd() (result string, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindString)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(v.(value.String)), true, nil
}

func (r *R) ExpectBlob() ([]byte, error) {
	v, err := r.expectValue(value.KindBlob)
	if err != nil {
		return nil, err
	}
	return []byte(v.(value.Blob)), nil
}

func (r *R) ExpectBlobOrEnd() (result []byte, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindBlob)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []byte(v.(value.Blob)), true, nil
}

func (r *R) ExpectBoolArray() ([]bool, error) {
	v, err := r.expectValue(value.KindBoolArray)
	if err != nil {
		return nil, err
	}
	return []bool(v.(value.BoolArray)), nil
}

func (r *R) ExpectBoolArrayOrEnd() (result []bool, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindBoolArray)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []bool(v.(value.BoolArray)), true, nil
}

func (r *R) ExpectIntArray() ([]int32, error) {
	v, err := r.expectValue(value.KindIntArray)
	if err != nil {
		return nil, err
	}
	return []int32(v.(value.IntArray)), nil
}

func (r *R) ExpectIntArrayOrEnd() (result []int32, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindIntArray)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []int32(v.(value.IntArray)), true, nil
}

func (r *R) ExpectDoubleArray() ([]float64, error) {
	v, err := r.expectValue(value.KindDoubleArray)
	if err != nil {
		return nil, err
	}
	return []float64(v.(value.DoubleArray)), nil
}

func (r *R) ExpectDoubleArrayOrEnd() (result []float64, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindDoubleArray)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []float64(v.(value.DoubleArray)), true, nil
}

func (r *R) ExpectVec2Array() ([]value.Vec2, error) {
	v, err := r.expectValue(value.KindVec2Array)
	if err != nil {
		return nil, err
	}
	return []value.Vec2(v.(value.Vec2Array)), nil
}

func (r *R) ExpectVec2ArrayOrEnd() (result []value.Vec2, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec2Array)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []value.Vec2(v.(value.Vec2Array)), true, nil
}

func (r *R) ExpectVec3Array() ([]value.Vec3, error) {
	v, err := r.expectValue(value.KindVec3Array)
	if err != nil {
		return nil, err
	}
	return []value.Vec3(v.(value.Vec3Array)), nil
}

func (r *R) ExpectVec3ArrayOrEnd() (result []value.Vec3, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec3Array)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []value.Vec3(v.(value.Vec3Array)), true, nil
}

func (r *R) ExpectVec4Array() ([]value.Vec4, error) {
	v, err := r.expectValue(value.KindVec4Array)
	if err != nil {
		return nil, err
	}
	return []value.Vec4(v.(value.Vec4Array)), nil
}

func (r *R) ExpectVec4ArrayOrEnd() (result []value.Vec4, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindVec4Array)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []value.Vec4(v.(value.Vec4Array)), true, nil
}

func (r *R) ExpectBox2Array() ([]value.Box2, error) {
	v, err := r.expectValue(value.KindBox2Array)
	if err != nil {
		return nil, err
	}
	return []value.Box2(v.(value.Box2Array)), nil
}

func (r *R) ExpectBox2ArrayOrEnd() (result []value.Box2, ok bool, err error) {
	v, ok, err := r.expectValueOrEnd(value.KindBox2Array)
	if err != nil || !ok {
		return nil, ok, err
	}
	return []value.Box2(v.(value.Box2Array)), true, nil
}
