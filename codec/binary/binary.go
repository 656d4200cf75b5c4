// Package binary implements the compact binary codec: a type-byte-first
// framing over zigzag-varint integers, little-endian doubles and
// big-endian tags.
package binary

const (
	byteEnd       = 0xef
	byteStart     = 0xfe
	byteTag       = 0xee
	byteBool      = 0x00
	byteInt       = 0x01
	byteDouble    = 0x02
	byteVec2      = 0x03
	byteVec3      = 0x04
	byteVec4      = 0x05
	byteBox2      = 0x06
	byteString    = 0x07
	byteBlob      = 0x08
	byteArrayBase = 0x80 // byteArrayBase + (byteBool..byteBox2) = array-of-that-kind
)

// maxVarintBytes bounds a LEB128 varint at 10 bytes (70 payload bits,
// comfortably more than the 32-bit zigzag range ever needs, but callers
// must still reject anything longer).
const maxVarintBytes = 10
