package text

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// Reader reads tokens from the text encoding. It satisfies
// codec.Reader; wrap it with codec.New to get the expect_*/skip_to_end
// helpers.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an io.Reader as a text Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isStructural(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}', '"':
		return true
	}
	return false
}

func (tr *Reader) skipWhitespace() error {
	for {
		b, err := tr.r.Peek(1)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !isWhitespace(b[0]) {
			return nil
		}
		tr.r.ReadByte()
	}
}

func (tr *Reader) peekByte() (byte, bool, error) {
	b, err := tr.r.Peek(1)
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, err
	}
	return b[0], true, nil
}

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+(e-?[0-9]+)?)?$`)
var tagPattern = regexp.MustCompile(`^[A-Z0-9_]{4}$`)

// readWord consumes a maximal run of bytes that are neither whitespace
// nor structural, for tags/numbers/booleans/blobs.
func (tr *Reader) readWord() (string, error) {
	var buf bytes.Buffer
	for {
		b, ok, err := tr.peekByte()
		if err != nil {
			return "", err
		}
		if !ok || isWhitespace(b) || isStructural(b) {
			break
		}
		buf.WriteByte(b)
		tr.r.ReadByte()
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("text reader: empty token: %w", codec.ErrInvalidToken)
	}
	return buf.String(), nil
}

func classifyWord(w string) (value.Value, error) {
	switch w {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if len(w) >= 2 && w[0] == '0' && w[1] == 'x' {
		hexPart := w[2:]
		if len(hexPart)%2 != 0 {
			return nil, fmt.Errorf("text reader: blob %q has odd hex length: %w", w, codec.ErrInvalidToken)
		}
		buf := make([]byte, len(hexPart)/2)
		for i := 0; i < len(buf); i++ {
			hi, ok1 := hexDigit(hexPart[2*i])
			lo, ok2 := hexDigit(hexPart[2*i+1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("text reader: blob %q has invalid hex digit: %w", w, codec.ErrInvalidToken)
			}
			buf[i] = hi<<4 | lo
		}
		return value.Blob(buf), nil
	}
	if numberPattern.MatchString(w) {
		if isDoubleLiteral(w) {
			f, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("text reader: number %q: %w", w, codec.ErrInvalidToken)
			}
			return value.Double(f), nil
		}
		n, err := strconv.ParseInt(w, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("text reader: number %q: %w", w, codec.ErrInvalidToken)
		}
		if n < -(1<<31) || n > (1<<31)-1 {
			return nil, fmt.Errorf("text reader: int %q out of range: %w", w, codec.ErrRangeViolation)
		}
		return value.Int(int32(n)), nil
	}
	if tagPattern.MatchString(w) {
		return value.MakeTag(w[0], w[1], w[2], w[3]), nil
	}
	return nil, fmt.Errorf("text reader: %q does not match any token: %w", w, codec.ErrInvalidToken)
}

func isDoubleLiteral(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] == '.' {
			return true
		}
	}
	return false
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}

// ReadNext decodes exactly one token.
func (tr *Reader) ReadNext() (value.Token, error) {
	if err := tr.skipWhitespace(); err != nil {
		return value.Token{}, err
	}
	b, ok, err := tr.peekByte()
	if err != nil {
		return value.Token{}, err
	}
	if !ok {
		return value.EndOfFile, nil
	}

	switch b {
	case '(':
		tr.r.ReadByte()
		return value.Start, nil
	case ')':
		tr.r.ReadByte()
		return value.End, nil
	case '[':
		v, err := tr.readVectorOrBox()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case '{':
		v, err := tr.readArray()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case '"':
		v, err := tr.readString()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	}

	word, err := tr.readWord()
	if err != nil {
		return value.Token{}, err
	}
	v, err := classifyWord(word)
	if err != nil {
		return value.Token{}, err
	}
	return value.Val(v), nil
}

func (tr *Reader) expectByte(want byte) error {
	b, ok, err := tr.peekByte()
	if err != nil {
		return err
	}
	if !ok || b != want {
		return fmt.Errorf("text reader: expected %q: %w", want, codec.ErrInvalidToken)
	}
	tr.r.ReadByte()
	return nil
}

func (tr *Reader) readDoubleLiteral() (float64, error) {
	if err := tr.skipWhitespace(); err != nil {
		return 0, err
	}
	word, err := tr.readWord()
	if err != nil {
		return 0, err
	}
	if !numberPattern.MatchString(word) {
		return 0, fmt.Errorf("text reader: %q is not a number: %w", word, codec.ErrInvalidToken)
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, fmt.Errorf("text reader: number %q: %w", word, codec.ErrInvalidToken)
	}
	return f, nil
}

// readVec2Bracket reads a "[x y]" with the leading '[' not yet consumed.
func (tr *Reader) readVec2Bracket() (value.Vec2, error) {
	if err := tr.expectByte('['); err != nil {
		return value.Vec2{}, err
	}
	x, err := tr.readDoubleLiteral()
	if err != nil {
		return value.Vec2{}, err
	}
	y, err := tr.readDoubleLiteral()
	if err != nil {
		return value.Vec2{}, err
	}
	if err := tr.skipWhitespace(); err != nil {
		return value.Vec2{}, err
	}
	if err := tr.expectByte(']'); err != nil {
		return value.Vec2{}, err
	}
	return value.Vec2{X: x, Y: y}, nil
}

// readVectorOrBox reads "[x y]", "[x y z]", "[x y z w]" or
// "[[x y] [z w]]" with the leading '[' not yet consumed.
func (tr *Reader) readVectorOrBox() (value.Value, error) {
	if err := tr.expectByte('['); err != nil {
		return nil, err
	}
	if err := tr.skipWhitespace(); err != nil {
		return nil, err
	}
	b, ok, err := tr.peekByte()
	if err != nil {
		return nil, err
	}
	if ok && b == '[' {
		min, err := tr.readVec2Bracket()
		if err != nil {
			return nil, err
		}
		if err := tr.skipWhitespace(); err != nil {
			return nil, err
		}
		max, err := tr.readVec2Bracket()
		if err != nil {
			return nil, err
		}
		if err := tr.skipWhitespace(); err != nil {
			return nil, err
		}
		if err := tr.expectByte(']'); err != nil {
			return nil, err
		}
		return value.Box2{Min: min, Max: max}, nil
	}

	var nums []float64
	for {
		if err := tr.skipWhitespace(); err != nil {
			return nil, err
		}
		b, ok, err := tr.peekByte()
		if err != nil {
			return nil, err
		}
		if ok && b == ']' {
			tr.r.ReadByte()
			break
		}
		f, err := tr.readDoubleLiteral()
		if err != nil {
			return nil, err
		}
		nums = append(nums, f)
	}
	switch len(nums) {
	case 2:
		return value.Vec2{X: nums[0], Y: nums[1]}, nil
	case 3:
		return value.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}, nil
	case 4:
		return value.Vec4{X: nums[0], Y: nums[1], Z: nums[2], W: nums[3]}, nil
	default:
		return nil, fmt.Errorf("text reader: vector with %d components: %w", len(nums), codec.ErrInvalidToken)
	}
}

func (tr *Reader) readString() (value.String, error) {
	if err := tr.expectByte('"'); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for {
		b, err := tr.r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("text reader: %w", codec.ErrUnexpectedEOF)
		}
		if b != '"' {
			buf.WriteByte(b)
			continue
		}
		next, ok, err := tr.peekByte()
		if err != nil {
			return "", err
		}
		if ok && next == '"' {
			tr.r.ReadByte()
			buf.WriteByte('"')
			continue
		}
		if !ok || isWhitespace(next) || next == ')' || next == ']' || next == '}' {
			return value.String(buf.String()), nil
		}
		return "", fmt.Errorf("text reader: quote in string not doubled or terminated: %w", codec.ErrInvalidToken)
	}
}

// readArray reads "{ elem elem ... }" with the leading '{' not yet
// consumed. The element kind is taken from the first element; an empty
// array defaults to DoubleArray, since the text grammar carries no kind
// tag for "{}".
func (tr *Reader) readArray() (value.Value, error) {
	if err := tr.expectByte('{'); err != nil {
		return nil, err
	}
	if err := tr.skipWhitespace(); err != nil {
		return nil, err
	}
	if b, ok, err := tr.peekByte(); err != nil {
		return nil, err
	} else if ok && b == '}' {
		tr.r.ReadByte()
		return value.DoubleArray(nil), nil
	}

	first, err := tr.readArrayElement()
	if err != nil {
		return nil, err
	}

	switch v := first.(type) {
	case value.Bool:
		arr := value.BoolArray{bool(v)}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			b, ok := e.(value.Bool)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, bool(b))
		}
	case value.Int:
		arr := value.IntArray{int32(v)}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			n, ok := e.(value.Int)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, int32(n))
		}
	case value.Double:
		arr := value.DoubleArray{float64(v)}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			d, ok := e.(value.Double)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, float64(d))
		}
	case value.Vec2:
		arr := value.Vec2Array{v}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			x, ok := e.(value.Vec2)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, x)
		}
	case value.Vec3:
		arr := value.Vec3Array{v}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			x, ok := e.(value.Vec3)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, x)
		}
	case value.Vec4:
		arr := value.Vec4Array{v}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			x, ok := e.(value.Vec4)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, x)
		}
	case value.Box2:
		arr := value.Box2Array{v}
		for {
			done, err := tr.arrayDone()
			if err != nil {
				return nil, err
			}
			if done {
				return arr, nil
			}
			e, err := tr.readArrayElement()
			if err != nil {
				return nil, err
			}
			x, ok := e.(value.Box2)
			if !ok {
				return nil, fmt.Errorf("text reader: mixed array element kinds: %w", codec.ErrInvalidToken)
			}
			arr = append(arr, x)
		}
	default:
		return nil, fmt.Errorf("text reader: %s is not a valid array element kind: %w", first.Kind(), codec.ErrInvalidToken)
	}
}

func (tr *Reader) arrayDone() (bool, error) {
	if err := tr.skipWhitespace(); err != nil {
		return false, err
	}
	b, ok, err := tr.peekByte()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("text reader: %w", codec.ErrUnexpectedEOF)
	}
	if b == '}' {
		tr.r.ReadByte()
		return true, nil
	}
	return false, nil
}

// readArrayElement reads one array element: a bool, number or vector.
func (tr *Reader) readArrayElement() (value.Value, error) {
	if err := tr.skipWhitespace(); err != nil {
		return nil, err
	}
	b, ok, err := tr.peekByte()
	if err != nil {
		return nil, err
	}
	if ok && b == '[' {
		return tr.readVectorOrBox()
	}
	word, err := tr.readWord()
	if err != nil {
		return nil, err
	}
	return classifyWord(word)
}
