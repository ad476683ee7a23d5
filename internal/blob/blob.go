package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrTruncated reports a read that would cross the end of the buffer.
var ErrTruncated = errors.New("blob: read beyond end of data")

// Blob is a forward-reading cursor over a byte buffer it owns.
type Blob struct {
	buf []byte
	off int
}

// FromFile loads the entire file at path into a fresh blob.
func FromFile(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blob: read %s: %w", path, err)
	}
	return &Blob{buf: data}, nil
}

// FromBytes wraps data in a blob positioned at offset zero. The blob
// takes ownership of data; callers must not mutate it afterwards.
func FromBytes(data []byte) *Blob {
	return &Blob{buf: data}
}

// Slice consumes the next n bytes of b and returns them as a fresh blob
// with independent read progress.
func (b *Blob) Slice(n int) (*Blob, error) {
	if n < 0 || b.off+n > len(b.buf) {
		return nil, ErrTruncated
	}
	out := make([]byte, n)
	copy(out, b.buf[b.off:b.off+n])
	b.off += n
	return &Blob{buf: out}, nil
}

// Read fills dst from the cursor, advancing by len(dst).
func (b *Blob) Read(dst []byte) error {
	if b.off+len(dst) > len(b.buf) {
		return ErrTruncated
	}
	copy(dst, b.buf[b.off:])
	b.off += len(dst)
	return nil
}

func (b *Blob) ReadUint8() (uint8, error) {
	if b.off+1 > len(b.buf) {
		return 0, ErrTruncated
	}
	v := b.buf[b.off]
	b.off++
	return v, nil
}

func (b *Blob) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

func (b *Blob) ReadUint16() (uint16, error) {
	if b.off+2 > len(b.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(b.buf[b.off:])
	b.off += 2
	return v, nil
}

func (b *Blob) ReadUint32() (uint32, error) {
	if b.off+4 > len(b.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(b.buf[b.off:])
	b.off += 4
	return v, nil
}

func (b *Blob) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *Blob) ReadUint64() (uint64, error) {
	if b.off+8 > len(b.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(b.buf[b.off:])
	b.off += 8
	return v, nil
}

func (b *Blob) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

func (b *Blob) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

// At returns the byte at absolute offset i without moving the cursor.
// The caller must have bounds-checked i against Len.
func (b *Blob) At(i int) byte {
	return b.buf[i]
}

// Skip advances the cursor by n bytes.
func (b *Blob) Skip(n int) error {
	if n < 0 || b.off+n > len(b.buf) {
		return ErrTruncated
	}
	b.off += n
	return nil
}

// Tell reports the current cursor offset.
func (b *Blob) Tell() int { return b.off }

// Len reports the total buffer size.
func (b *Blob) Len() int { return len(b.buf) }

// Remaining reports the unread byte count.
func (b *Blob) Remaining() int { return len(b.buf) - b.off }
