package xcompress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func lz4Block(t *testing.T, src []byte) []byte {
	t.Helper()
	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		t.Fatalf("lz4 compress: %v", err)
	}
	if n == 0 {
		t.Fatalf("lz4 compress: incompressible test payload")
	}
	return dst[:n]
}

func zstdFrame(t *testing.T, src []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil)
}

func testPayload() []byte {
	payload := make([]byte, 512)
	for i := range payload {
		payload[i] = byte(i / 16)
	}
	return payload
}

func TestInflateLZ4Block(t *testing.T) {
	want := testPayload()
	got, err := Inflate(lz4Block(t, want), len(want))
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("lz4 payload mismatch")
	}
}

func TestInflateZstdFrame(t *testing.T) {
	want := testPayload()
	compressed := zstdFrame(t, want)
	if !bytes.Equal(compressed[:4], zstdFrameMagic) {
		t.Fatalf("zstd frame missing magic: % x", compressed[:4])
	}

	got, err := Inflate(compressed, len(want))
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("zstd payload mismatch")
	}
}

func TestInflateSizeMismatch(t *testing.T) {
	payload := testPayload()
	if _, err := Inflate(zstdFrame(t, payload), len(payload)-1); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch for zstd, got %v", err)
	}
	if _, err := Inflate(lz4Block(t, payload), len(payload)+16); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch for lz4, got %v", err)
	}
}

func TestInflateGarbageFails(t *testing.T) {
	if _, err := Inflate([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, 64); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
