package codec

// Columnar values are stored transposed: a run of N values of width W
// occupies W consecutive runs of N bytes, most significant byte first,
// so bytes of equal significance sit together for the compressor. The
// readers below random-access the runs through Blob.At and advance the
// cursor once with a single Skip.

import "github.com/SergeyMakeev/RbxDoc/internal/blob"

// ReadUint32Column reads count byte-interleaved big-endian uint32
// values with no numeric transform.
func ReadUint32Column(b *blob.Blob, count int) ([]uint32, error) {
	if b.Tell()+count*4 > b.Len() {
		return nil, blob.ErrTruncated
	}
	values := make([]uint32, 0, count)
	base := b.Tell()
	for i := 0; i < count; i++ {
		v0 := uint32(b.At(base + count*0 + i))
		v1 := uint32(b.At(base + count*1 + i))
		v2 := uint32(b.At(base + count*2 + i))
		v3 := uint32(b.At(base + count*3 + i))
		values = append(values, v0<<24|v1<<16|v2<<8|v3)
	}
	if err := b.Skip(count * 4); err != nil {
		return nil, err
	}
	return values, nil
}

// ReadInt32Column reads count interleaved uint32 values and zig-zag
// decodes each one.
func ReadInt32Column(b *blob.Blob, count int) ([]int32, error) {
	raw, err := ReadUint32Column(b, count)
	if err != nil {
		return nil, err
	}
	values := make([]int32, count)
	for i, v := range raw {
		values[i] = DecodeZigZag32(v)
	}
	return values, nil
}

// ReadFloat32Column reads count interleaved uint32 values and applies
// the rotated-float transform to each one.
func ReadFloat32Column(b *blob.Blob, count int) ([]float32, error) {
	raw, err := ReadUint32Column(b, count)
	if err != nil {
		return nil, err
	}
	values := make([]float32, count)
	for i, v := range raw {
		values[i] = DecodeRotatedFloat32(v)
	}
	return values, nil
}

// ReadInt64Column reads count 8-byte interleaved values, transposing
// all eight byte runs, and zig-zag decodes each one.
func ReadInt64Column(b *blob.Blob, count int) ([]int64, error) {
	if b.Tell()+count*8 > b.Len() {
		return nil, blob.ErrTruncated
	}
	values := make([]int64, 0, count)
	base := b.Tell()
	for i := 0; i < count; i++ {
		var v uint64
		for k := 0; k < 8; k++ {
			v = v<<8 | uint64(b.At(base+count*k+i))
		}
		values = append(values, DecodeZigZag64(v))
	}
	if err := b.Skip(count * 8); err != nil {
		return nil, err
	}
	return values, nil
}

// ReadUint8Column reads count contiguous bytes; byte columns are not
// interleaved.
func ReadUint8Column(b *blob.Blob, count int) ([]uint8, error) {
	values := make([]uint8, count)
	if err := b.Read(values); err != nil {
		return nil, err
	}
	return values, nil
}

// ReadIDColumn reads an int32 column and restores absolute ids by
// running sum over the zig-zag deltas.
func ReadIDColumn(b *blob.Blob, count int) ([]int32, error) {
	values, err := ReadInt32Column(b, count)
	if err != nil {
		return nil, err
	}
	var last int32
	for i := range values {
		values[i] += last
		last = values[i]
	}
	return values, nil
}
