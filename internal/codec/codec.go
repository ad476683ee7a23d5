// Package codec implements the primitive wire transforms of the binary
// scene container: zig-zag integers, rotated floats, length-prefixed
// strings, and the byte-interleaved columnar value layouts.
package codec

import (
	"math"

	"github.com/SergeyMakeev/RbxDoc/internal/blob"
)

// DecodeZigZag32 maps the unsigned zig-zag representation back to a
// signed 32-bit integer.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// DecodeZigZag64 is the 64-bit variant of DecodeZigZag32.
func DecodeZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// DecodeRotatedFloat32 undoes the encoder's rotate-left-by-one of the
// IEEE-754 bit pattern (the sign bit is stored in the LSB).
func DecodeRotatedFloat32(u uint32) float32 {
	return math.Float32frombits(u>>1 | u<<31)
}

// ReadString reads a u32 length prefix followed by that many bytes.
func ReadString(b *blob.Blob) (string, error) {
	length, err := b.ReadUint32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if err := b.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
