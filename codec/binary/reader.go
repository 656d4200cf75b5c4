package binary

import (
	"bufio"
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// Reader reads tokens from the compact binary encoding. It satisfies
// codec.Reader; wrap it with codec.New to get the expect_*/skip_to_end
// helpers.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an io.Reader as a binary Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (br *Reader) readDouble() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(br.r, buf[:]); err != nil {
		return 0, eofToUnexpected(err)
	}
	return math.Float64frombits(stdbinary.LittleEndian.Uint64(buf[:])), nil
}

func (br *Reader) readTagBytes() (value.Tag, error) {
	var buf [4]byte
	if _, err := io.ReadFull(br.r, buf[:]); err != nil {
		return 0, eofToUnexpected(err)
	}
	return value.Tag(stdbinary.BigEndian.Uint32(buf[:])), nil
}

func (br *Reader) readVec2() (value.Vec2, error) {
	x, err := br.readDouble()
	if err != nil {
		return value.Vec2{}, err
	}
	y, err := br.readDouble()
	if err != nil {
		return value.Vec2{}, err
	}
	return value.Vec2{X: x, Y: y}, nil
}

func (br *Reader) readVec3() (value.Vec3, error) {
	x, err := br.readDouble()
	if err != nil {
		return value.Vec3{}, err
	}
	y, err := br.readDouble()
	if err != nil {
		return value.Vec3{}, err
	}
	z, err := br.readDouble()
	if err != nil {
		return value.Vec3{}, err
	}
	return value.Vec3{X: x, Y: y, Z: z}, nil
}

func (br *Reader) readVec4() (value.Vec4, error) {
	x, err := br.readDouble()
	if err != nil {
		return value.Vec4{}, err
	}
	y, err := br.readDouble()
	if err != nil {
		return value.Vec4{}, err
	}
	z, err := br.readDouble()
	if err != nil {
		return value.Vec4{}, err
	}
	w, err := br.readDouble()
	if err != nil {
		return value.Vec4{}, err
	}
	return value.Vec4{X: x, Y: y, Z: z, W: w}, nil
}

func (br *Reader) readBox2() (value.Box2, error) {
	min, err := br.readVec2()
	if err != nil {
		return value.Box2{}, err
	}
	max, err := br.readVec2()
	if err != nil {
		return value.Box2{}, err
	}
	return value.Box2{Min: min, Max: max}, nil
}

func eofToUnexpected(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("binary reader: %w", codec.ErrUnexpectedEOF)
	}
	return err
}

// ReadNext decodes exactly one token. A clean EOF on the very first byte
// of the token yields EndOfFile; an EOF anywhere inside a value's
// payload is an error regardless of nesting depth. The reader tracks no
// depth itself: at the helper layer SkipToEnd rejects an EndOfFile inside
// the group it skips, while ExpectStartOrEnd reports any EndOfFile as
// "no group".
func (br *Reader) ReadNext() (value.Token, error) {
	tb, err := br.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return value.EndOfFile, nil
		}
		return value.Token{}, err
	}

	switch tb {
	case byteStart:
		return value.Start, nil
	case byteEnd:
		return value.End, nil
	case byteTag:
		t, err := br.readTagBytes()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(t), nil
	case byteBool:
		b, err := br.r.ReadByte()
		if err != nil {
			return value.Token{}, eofToUnexpected(err)
		}
		return value.Val(value.Bool(b != 0)), nil
	case byteInt:
		n, err := readInt32(br.r)
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(value.Int(n)), nil
	case byteDouble:
		d, err := br.readDouble()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(value.Double(d)), nil
	case byteVec2:
		v, err := br.readVec2()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case byteVec3:
		v, err := br.readVec3()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case byteVec4:
		v, err := br.readVec4()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case byteBox2:
		v, err := br.readBox2()
		if err != nil {
			return value.Token{}, err
		}
		return value.Val(v), nil
	case byteString:
		n, err := readLength(br.r)
		if err != nil {
			return value.Token{}, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(br.r, buf); err != nil {
			return value.Token{}, eofToUnexpected(err)
		}
		return value.Val(value.String(buf)), nil
	case byteBlob:
		n, err := readLength(br.r)
		if err != nil {
			return value.Token{}, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(br.r, buf); err != nil {
			return value.Token{}, eofToUnexpected(err)
		}
		return value.Val(value.Blob(buf)), nil
	}

	if tb >= byteArrayBase && tb <= byteArrayBase|byteBox2 {
		n, err := readLength(br.r)
		if err != nil {
			return value.Token{}, err
		}
		switch tb &^ byteArrayBase {
		case byteBool:
			arr := make(value.BoolArray, n)
			for i := range arr {
				b, err := br.r.ReadByte()
				if err != nil {
					return value.Token{}, eofToUnexpected(err)
				}
				arr[i] = b != 0
			}
			return value.Val(arr), nil
		case byteInt:
			arr := make(value.IntArray, n)
			for i := range arr {
				v, err := readInt32(br.r)
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		case byteDouble:
			arr := make(value.DoubleArray, n)
			for i := range arr {
				v, err := br.readDouble()
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		case byteVec2:
			arr := make(value.Vec2Array, n)
			for i := range arr {
				v, err := br.readVec2()
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		case byteVec3:
			arr := make(value.Vec3Array, n)
			for i := range arr {
				v, err := br.readVec3()
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		case byteVec4:
			arr := make(value.Vec4Array, n)
			for i := range arr {
				v, err := br.readVec4()
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		case byteBox2:
			arr := make(value.Box2Array, n)
			for i := range arr {
				v, err := br.readBox2()
				if err != nil {
					return value.Token{}, err
				}
				arr[i] = v
			}
			return value.Val(arr), nil
		}
	}

	return value.Token{}, fmt.Errorf("binary reader: byte 0x%02x: %w", tb, codec.ErrInvalidToken)
}
