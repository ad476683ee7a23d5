package xcompress

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// zstd frame magic (RFC 8878, 3.1.1). Payloads that do not start with it
// are lz4 block-compressed.
var zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrSizeMismatch reports a payload that did not inflate to the declared
// uncompressed size.
var ErrSizeMismatch = errors.New("xcompress: decompressed size mismatch")

// Inflate decompresses src into a fresh buffer of exactly expectedLen
// bytes, picking the codec by the zstd frame magic.
func Inflate(src []byte, expectedLen int) ([]byte, error) {
	if len(src) > 4 && bytes.Equal(src[:4], zstdFrameMagic) {
		return inflateZstd(src, expectedLen)
	}
	return inflateLZ4(src, expectedLen)
}

func inflateZstd(src []byte, expectedLen int) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("xcompress: zstd init: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, make([]byte, 0, expectedLen))
	if err != nil {
		return nil, fmt.Errorf("xcompress: zstd decode: %w", err)
	}
	if len(out) != expectedLen {
		return nil, fmt.Errorf("%w: got %d want %d", ErrSizeMismatch, len(out), expectedLen)
	}
	return out, nil
}

func inflateLZ4(src []byte, expectedLen int) ([]byte, error) {
	out := make([]byte, expectedLen)
	n, err := lz4.UncompressBlock(src, out)
	if err != nil {
		return nil, fmt.Errorf("xcompress: lz4 decode: %w", err)
	}
	if n != expectedLen {
		return nil, fmt.Errorf("%w: got %d want %d", ErrSizeMismatch, n, expectedLen)
	}
	return out, nil
}
