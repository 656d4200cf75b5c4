package binary

import (
	"bufio"
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/sceneproto/scene/value"
)

// Writer writes tokens in the compact binary encoding. It satisfies
// codec.Writer.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps an io.Writer as a binary Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush pushes any buffered bytes to the underlying writer.
func (bw *Writer) Flush() error {
	return bw.w.Flush()
}

func (bw *Writer) WriteStart() error {
	return bw.w.WriteByte(byteStart)
}

func (bw *Writer) WriteEnd() error {
	return bw.w.WriteByte(byteEnd)
}

func (bw *Writer) writeDouble(v float64) error {
	var buf [8]byte
	stdbinary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := bw.w.Write(buf[:])
	return err
}

func (bw *Writer) writeTagBytes(t value.Tag) error {
	var buf [4]byte
	stdbinary.BigEndian.PutUint32(buf[:], uint32(t))
	_, err := bw.w.Write(buf[:])
	return err
}

func (bw *Writer) writeVec2(v value.Vec2) error {
	if err := bw.writeDouble(v.X); err != nil {
		return err
	}
	return bw.writeDouble(v.Y)
}

func (bw *Writer) writeVec3(v value.Vec3) error {
	if err := bw.writeDouble(v.X); err != nil {
		return err
	}
	if err := bw.writeDouble(v.Y); err != nil {
		return err
	}
	return bw.writeDouble(v.Z)
}

func (bw *Writer) writeVec4(v value.Vec4) error {
	if err := bw.writeDouble(v.X); err != nil {
		return err
	}
	if err := bw.writeDouble(v.Y); err != nil {
		return err
	}
	if err := bw.writeDouble(v.Z); err != nil {
		return err
	}
	return bw.writeDouble(v.W)
}

func (bw *Writer) writeBox2(v value.Box2) error {
	if err := bw.writeVec2(v.Min); err != nil {
		return err
	}
	return bw.writeVec2(v.Max)
}

// WriteValue writes the type byte followed by the value's payload.
func (bw *Writer) WriteValue(v value.Value) error {
	switch vv := v.(type) {
	case value.Bool:
		if err := bw.w.WriteByte(byteBool); err != nil {
			return err
		}
		if vv {
			return bw.w.WriteByte(1)
		}
		return bw.w.WriteByte(0)
	case value.Int:
		if err := bw.w.WriteByte(byteInt); err != nil {
			return err
		}
		return writeInt32(bw.w, int32(vv))
	case value.Double:
		if err := bw.w.WriteByte(byteDouble); err != nil {
			return err
		}
		return bw.writeDouble(float64(vv))
	case value.Tag:
		if err := bw.w.WriteByte(byteTag); err != nil {
			return err
		}
		return bw.writeTagBytes(vv)
	case value.Vec2:
		if err := bw.w.WriteByte(byteVec2); err != nil {
			return err
		}
		return bw.writeVec2(vv)
	case value.Vec3:
		if err := bw.w.WriteByte(byteVec3); err != nil {
			return err
		}
		return bw.writeVec3(vv)
	case value.Vec4:
		if err := bw.w.WriteByte(byteVec4); err != nil {
			return err
		}
		return bw.writeVec4(vv)
	case value.Box2:
		if err := bw.w.WriteByte(byteBox2); err != nil {
			return err
		}
		return bw.writeBox2(vv)
	case value.String:
		if err := bw.w.WriteByte(byteString); err != nil {
			return err
		}
		b := []byte(vv)
		if err := writeLength(bw.w, len(b)); err != nil {
			return err
		}
		_, err := bw.w.Write(b)
		return err
	case value.Blob:
		if err := bw.w.WriteByte(byteBlob); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		_, err := bw.w.Write(vv)
		return err
	case value.BoolArray:
		if err := bw.w.WriteByte(byteArrayBase | byteBool); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			b := byte(0)
			if e {
				b = 1
			}
			if err := bw.w.WriteByte(b); err != nil {
				return err
			}
		}
		return nil
	case value.IntArray:
		if err := bw.w.WriteByte(byteArrayBase | byteInt); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := writeInt32(bw.w, e); err != nil {
				return err
			}
		}
		return nil
	case value.DoubleArray:
		if err := bw.w.WriteByte(byteArrayBase | byteDouble); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := bw.writeDouble(e); err != nil {
				return err
			}
		}
		return nil
	case value.Vec2Array:
		if err := bw.w.WriteByte(byteArrayBase | byteVec2); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := bw.writeVec2(e); err != nil {
				return err
			}
		}
		return nil
	case value.Vec3Array:
		if err := bw.w.WriteByte(byteArrayBase | byteVec3); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := bw.writeVec3(e); err != nil {
				return err
			}
		}
		return nil
	case value.Vec4Array:
		if err := bw.w.WriteByte(byteArrayBase | byteVec4); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := bw.writeVec4(e); err != nil {
				return err
			}
		}
		return nil
	case value.Box2Array:
		if err := bw.w.WriteByte(byteArrayBase | byteBox2); err != nil {
			return err
		}
		if err := writeLength(bw.w, len(vv)); err != nil {
			return err
		}
		for _, e := range vv {
			if err := bw.writeBox2(e); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("binary writer: unhandled value kind %s", v.Kind())
	}
}
