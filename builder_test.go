package rbxdoc

// Test-side wire builders: enough of an encoder to assemble container
// images in memory, kept out of the library on purpose.

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type wire struct {
	bytes.Buffer
}

func (w *wire) u8(v uint8) { w.WriteByte(v) }
func (w *wire) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}
func (w *wire) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}
func (w *wire) f32(v float32) { w.u32(math.Float32bits(v)) }
func (w *wire) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.Write(b[:])
}
func (w *wire) str(s string) {
	w.u32(uint32(len(s)))
	w.WriteString(s)
}

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

func interleave32(values []uint32) []byte {
	n := len(values)
	out := make([]byte, n*4)
	for i, v := range values {
		out[n*0+i] = byte(v >> 24)
		out[n*1+i] = byte(v >> 16)
		out[n*2+i] = byte(v >> 8)
		out[n*3+i] = byte(v)
	}
	return out
}

func interleave64(values []uint64) []byte {
	n := len(values)
	out := make([]byte, n*8)
	for i, v := range values {
		for k := 0; k < 8; k++ {
			out[n*k+i] = byte(v >> (56 - 8*k))
		}
	}
	return out
}

func intColumn(values []int32) []byte {
	enc := make([]uint32, len(values))
	for i, v := range values {
		enc[i] = encodeZigZag32(v)
	}
	return interleave32(enc)
}

func int64Column(values []int64) []byte {
	enc := make([]uint64, len(values))
	for i, v := range values {
		enc[i] = encodeZigZag64(v)
	}
	return interleave64(enc)
}

func uintColumn(values []uint32) []byte {
	return interleave32(values)
}

func floatColumn(values []float32) []byte {
	enc := make([]uint32, len(values))
	for i, v := range values {
		enc[i] = encodeRotatedFloat32(v)
	}
	return interleave32(enc)
}

// idColumn encodes absolute ids as zig-zag deltas.
func idColumn(ids []int32) []byte {
	deltas := make([]int32, len(ids))
	var last int32
	for i, id := range ids {
		deltas[i] = id - last
		last = id
	}
	return intColumn(deltas)
}

func fileHeader(typeCount, objectCount uint32) []byte {
	var w wire
	w.WriteString("<roblox!")
	w.Write([]byte{0x89, 0xff, 0x0d, 0x0a, 0x1a, 0x0a})
	w.u16(0) // version
	w.u32(typeCount)
	w.u32(objectCount)
	w.u32(0) // reserved
	w.u32(0)
	return w.Bytes()
}

// rawChunk frames payload uncompressed under the given 4-byte tag.
func rawChunk(name string, payload []byte) []byte {
	var w wire
	w.Write(chunkName(name))
	w.u32(0) // compressedSize: stored verbatim
	w.u32(uint32(len(payload)))
	w.u32(0) // reserved
	w.Write(payload)
	return w.Bytes()
}

func chunkWithReserved(name string, payload []byte, reserved uint32) []byte {
	var w wire
	w.Write(chunkName(name))
	w.u32(0)
	w.u32(uint32(len(payload)))
	w.u32(reserved)
	w.Write(payload)
	return w.Bytes()
}

func lz4Chunk(t *testing.T, name string, payload []byte) []byte {
	t.Helper()
	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := c.CompressBlock(payload, dst)
	if err != nil {
		t.Fatalf("lz4 compress: %v", err)
	}
	if n == 0 {
		t.Fatalf("lz4 compress: incompressible test payload")
	}

	var w wire
	w.Write(chunkName(name))
	w.u32(uint32(n))
	w.u32(uint32(len(payload)))
	w.u32(0)
	w.Write(dst[:n])
	return w.Bytes()
}

func zstdChunk(t *testing.T, name string, payload []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	compressed := enc.EncodeAll(payload, nil)

	var w wire
	w.Write(chunkName(name))
	w.u32(uint32(len(compressed)))
	w.u32(uint32(len(payload)))
	w.u32(0)
	w.Write(compressed)
	return w.Bytes()
}

func chunkName(name string) []byte {
	out := make([]byte, 4)
	copy(out, name)
	return out
}

func endChunk() []byte {
	return rawChunk("END\x00", nil)
}

// instChunk declares a type slot and its instance ids. rooted may be
// nil for plain types.
func instChunk(typeIndex uint32, typeName string, format uint8, ids []int32, rooted []bool) []byte {
	var w wire
	w.u32(typeIndex)
	w.str(typeName)
	w.u8(format)
	w.u32(uint32(len(ids)))
	w.Write(idColumn(ids))
	for _, r := range rooted {
		if r {
			w.u8(1)
		} else {
			w.u8(0)
		}
	}
	return rawChunk("INST", w.Bytes())
}

func prntChunk(children, parents []int32) []byte {
	var w wire
	w.u8(0) // plain link format
	w.u32(uint32(len(children)))
	w.Write(idColumn(children))
	w.Write(idColumn(parents))
	return rawChunk("PRNT", w.Bytes())
}

// propPayload starts a PROP chunk body; column bytes follow.
func propPayload(typeIndex uint32, name string, format uint8) *wire {
	var w wire
	w.u32(typeIndex)
	w.str(name)
	w.u8(format)
	return &w
}

func propChunk(typeIndex uint32, name string, format uint8, column []byte) []byte {
	w := propPayload(typeIndex, name, format)
	w.Write(column)
	return rawChunk("PROP", w.Bytes())
}

func buildFile(typeCount, objectCount uint32, chunks ...[]byte) []byte {
	var w wire
	w.Write(fileHeader(typeCount, objectCount))
	for _, chunk := range chunks {
		w.Write(chunk)
	}
	w.Write(endChunk())
	return w.Bytes()
}

func mustRead(t *testing.T, data []byte) *Document {
	t.Helper()
	doc, err := Read(data)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	return doc
}
