package binary

import (
	"fmt"
	"io"

	"github.com/sceneproto/scene/codec"
)

// writeUvarint emits v as LEB128: 7 payload bits per byte, high bit set
// on every byte but the last.
func writeUvarint(w io.ByteWriter, v uint64) error {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
	}
}

// readUvarint decodes a LEB128 value, rejecting streams longer than
// maxVarintBytes bytes.
func readUvarint(r io.ByteReader) (uint64, error) {
	var result uint64
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, fmt.Errorf("varint: %w", codec.ErrUnexpectedEOF)
			}
			return 0, err
		}
		result |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, fmt.Errorf("varint longer than %d bytes: %w", maxVarintBytes, codec.ErrRangeViolation)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func writeSvarint(w io.ByteWriter, v int64) error {
	return writeUvarint(w, zigzagEncode(v))
}

func readSvarint(r io.ByteReader) (int64, error) {
	u, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	return zigzagDecode(u), nil
}

// writeInt32 writes a signed 32-bit value via the zigzag varint.
func writeInt32(w io.ByteWriter, v int32) error {
	return writeSvarint(w, int64(v))
}

// readInt32 decodes a zigzag varint and rejects values outside the
// signed 32-bit range.
func readInt32(r io.ByteReader) (int32, error) {
	v, err := readSvarint(r)
	if err != nil {
		return 0, err
	}
	if v < -(1<<31) || v > (1<<31)-1 {
		return 0, fmt.Errorf("int %d out of signed 32-bit range: %w", v, codec.ErrRangeViolation)
	}
	return int32(v), nil
}

// writeLength writes an element/byte count as an unsigned varint.
func writeLength(w io.ByteWriter, n int) error {
	return writeUvarint(w, uint64(n))
}

// readLength decodes an unsigned varint length.
func readLength(r io.ByteReader) (int, error) {
	u, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if u > (1<<31)-1 {
		return 0, fmt.Errorf("length %d out of range: %w", u, codec.ErrRangeViolation)
	}
	return int(u), nil
}
