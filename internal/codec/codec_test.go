package codec

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/SergeyMakeev/RbxDoc/internal/blob"
)

func encodeZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func encodeZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func encodeRotatedFloat32(f float32) uint32 {
	u := math.Float32bits(f)
	return u<<1 | u>>31
}

func TestZigZag32RoundTrip(t *testing.T) {
	values := []int32{0, -1, 1, -2, 2, 127, -128, math.MaxInt32, math.MinInt32}
	for _, v := range values {
		if got := DecodeZigZag32(encodeZigZag32(v)); got != v {
			t.Fatalf("zigzag32 roundtrip %d -> %d", v, got)
		}
	}
	// Small magnitudes map to small unsigned values.
	if encodeZigZag32(-1) != 1 || encodeZigZag32(1) != 2 {
		t.Fatalf("zigzag32 encoding shape broken")
	}
}

func TestZigZag64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, math.MaxInt64, math.MinInt64, 1 << 40, -(1 << 40)}
	for _, v := range values {
		if got := DecodeZigZag64(encodeZigZag64(v)); got != v {
			t.Fatalf("zigzag64 roundtrip %d -> %d", v, got)
		}
	}
}

func TestRotatedFloatRoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, -0.5, math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(1))}
	for _, f := range values {
		got := DecodeRotatedFloat32(encodeRotatedFloat32(f))
		if math.Float32bits(got) != math.Float32bits(f) {
			t.Fatalf("rotated float roundtrip %v -> %v", f, got)
		}
	}
	// Every bit pattern survives, not just valid floats.
	for _, u := range []uint32{0, 1, 0x80000000, 0xffffffff, 0x12345678} {
		enc := u<<1 | u>>31
		if got := math.Float32bits(DecodeRotatedFloat32(enc)); got != u {
			t.Fatalf("bit pattern %#x -> %#x", u, got)
		}
	}
}

func TestReadString(t *testing.T) {
	data := make([]byte, 4+5)
	binary.LittleEndian.PutUint32(data, 5)
	copy(data[4:], "hello")

	s, err := ReadString(blob.FromBytes(data))
	if err != nil || s != "hello" {
		t.Fatalf("read string: %v %q", err, s)
	}

	empty := make([]byte, 4)
	s, err = ReadString(blob.FromBytes(empty))
	if err != nil || s != "" {
		t.Fatalf("read empty string: %v %q", err, s)
	}

	short := make([]byte, 4+2)
	binary.LittleEndian.PutUint32(short, 9)
	if _, err := ReadString(blob.FromBytes(short)); !errors.Is(err, blob.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
