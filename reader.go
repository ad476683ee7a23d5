package rbxdoc

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/SergeyMakeev/RbxDoc/internal/blob"
	"github.com/SergeyMakeev/RbxDoc/internal/codec"
	"github.com/SergeyMakeev/RbxDoc/internal/xcompress"
)

var (
	magicHeader     = []byte("<roblox!")
	headerSignature = []byte{0x89, 0xff, 0x0d, 0x0a, 0x1a, 0x0a}
)

const (
	chunkInstances     = "INST"
	chunkProperty      = "PROP"
	chunkParents       = "PRNT"
	chunkMetadata      = "META"
	chunkSharedStrings = "SSTR"
	chunkSignatures    = "SIGN"
	chunkHash          = "HASH"
	chunkEnd           = "END\x00"
)

// Object formats inside INST chunks.
const (
	objectFormatPlain       = 0
	objectFormatServiceType = 1
)

// Parent link formats inside PRNT chunks.
const parentLinkFormatPlain = 0

// noTypeIndex marks an instance slot no INST chunk has declared yet.
const noTypeIndex = ^uint32(0)

type chunkHeader struct {
	name [4]byte
	// compressedSize of 0 means the payload is stored verbatim.
	compressedSize uint32
	size           uint32
	reserved       uint32
}

// LoadFile reads and decodes the container at path. Paths ending in
// 'x'/'X' belong to the textual sibling format and are rejected before
// the file is opened.
func LoadFile(path string, opts ...Option) (*Document, error) {
	if n := len(path); n > 0 && (path[n-1] == 'x' || path[n-1] == 'X') {
		return nil, fmt.Errorf("%w: %q is the textual sibling format", ErrUnrecognizedFormat, path)
	}
	fileBlob, err := blob.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return load(fileBlob, opts...)
}

// Read decodes an in-memory container image.
func Read(data []byte, opts ...Option) (*Document, error) {
	buf := make([]byte, len(data))
	copy(buf, data)
	return load(blob.FromBytes(buf), opts...)
}

func load(fileBlob *blob.Blob, opts ...Option) (*Document, error) {
	options := loadOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger

	typeCount, objectCount, err := readFileHeader(fileBlob)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Types:     make([]Type, typeCount),
		Instances: make([]Instance, objectCount),
	}
	// Slots start unassigned; INST chunks fill them in. The no-type
	// sentinel keeps never-declared slots out of PROP column matching.
	for i := range doc.Instances {
		doc.Instances[i] = Instance{ID: int32(i), TypeIndex: noTypeIndex, ParentID: -1}
	}

	chunkIndex := 0
	for fileBlob.Remaining() > 0 {
		chunk, err := readChunkHeader(fileBlob)
		if err != nil {
			return nil, err
		}
		payload, err := readChunkData(chunk, fileBlob)
		if err != nil {
			return nil, err
		}

		name := string(chunk.name[:])
		switch name {
		case chunkInstances:
			err = readInstances(payload, doc)
		case chunkProperty:
			err = readProperties(payload, doc)
		case chunkParents:
			err = readParents(payload, doc)
		case chunkMetadata:
			// Historically META comes first; real files do not always
			// honor that, so it is a warning, not a failure.
			if chunkIndex > 0 {
				logger.Warn().Int("chunk", chunkIndex).Msg("META chunk is not first")
			}
			err = readMetadata(chunk, payload, doc)
		case chunkSharedStrings:
			err = readSharedStrings(payload, doc)
		case chunkSignatures, chunkHash:
			logger.Debug().Str("chunk", name).Msg("skipping opaque chunk")
		case chunkEnd:
			resolveSharedStrings(doc)
			return doc, nil
		default:
			logger.Debug().Str("chunk", name).Msg("skipping unknown chunk")
		}
		if err != nil {
			return nil, err
		}
		chunkIndex++
	}

	resolveSharedStrings(doc)
	return doc, nil
}

func readFileHeader(b *blob.Blob) (typeCount, objectCount uint32, err error) {
	var magic [8]byte
	if err := b.Read(magic[:]); err != nil {
		return 0, 0, err
	}
	if !bytes.Equal(magic[:], magicHeader) {
		return 0, 0, fmt.Errorf("%w: bad magic", ErrUnrecognizedFormat)
	}

	var signature [6]byte
	if err := b.Read(signature[:]); err != nil {
		return 0, 0, err
	}
	if !bytes.Equal(signature[:], headerSignature) {
		return 0, 0, fmt.Errorf("%w: bad signature", ErrUnrecognizedFormat)
	}

	version, err := b.ReadUint16()
	if err != nil {
		return 0, 0, err
	}
	if version != 0 {
		return 0, 0, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	if typeCount, err = b.ReadUint32(); err != nil {
		return 0, 0, err
	}
	if objectCount, err = b.ReadUint32(); err != nil {
		return 0, 0, err
	}
	if err = b.Skip(8); err != nil { // reserved words
		return 0, 0, err
	}
	return typeCount, objectCount, nil
}

func readChunkHeader(b *blob.Blob) (chunkHeader, error) {
	var chunk chunkHeader
	if err := b.Read(chunk.name[:]); err != nil {
		return chunkHeader{}, err
	}
	var err error
	if chunk.compressedSize, err = b.ReadUint32(); err != nil {
		return chunkHeader{}, err
	}
	if chunk.size, err = b.ReadUint32(); err != nil {
		return chunkHeader{}, err
	}
	if chunk.reserved, err = b.ReadUint32(); err != nil {
		return chunkHeader{}, err
	}
	return chunk, nil
}

// readChunkData resolves one chunk payload into a fresh cursor,
// inflating it when a compressed size is present.
func readChunkData(chunk chunkHeader, b *blob.Blob) (*blob.Blob, error) {
	if chunk.size == 0 {
		return blob.FromBytes(nil), nil
	}
	if chunk.compressedSize == 0 {
		return b.Slice(int(chunk.size))
	}

	compressed := make([]byte, chunk.compressedSize)
	if err := b.Read(compressed); err != nil {
		return nil, err
	}
	data, err := xcompress.Inflate(compressed, int(chunk.size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return blob.FromBytes(data), nil
}

func readInstances(b *blob.Blob, doc *Document) error {
	typeIndex, err := b.ReadUint32()
	if err != nil {
		return err
	}
	typeName, err := codec.ReadString(b)
	if err != nil {
		return err
	}
	format, err := b.ReadUint8()
	if err != nil {
		return err
	}
	if format != objectFormatPlain && format != objectFormatServiceType {
		return fmt.Errorf("%w: object format %d", ErrUnrecognizedLayout, format)
	}

	idCount, err := b.ReadUint32()
	if err != nil {
		return err
	}
	ids, err := codec.ReadIDColumn(b, int(idCount))
	if err != nil {
		return err
	}

	isServiceType := format == objectFormatServiceType
	var isServiceRooted []bool
	if isServiceType {
		isServiceRooted = make([]bool, len(ids))
		for i := range isServiceRooted {
			v, err := b.ReadUint8()
			if err != nil {
				return err
			}
			isServiceRooted[i] = v != 0
		}
	}

	if int(typeIndex) >= len(doc.Types) {
		return fmt.Errorf("%w: type index %d of %d", ErrCorruptPayload, typeIndex, len(doc.Types))
	}
	doc.Types[typeIndex] = Type{Name: typeName}

	for i, id := range ids {
		if id < 0 || int(id) >= len(doc.Instances) {
			return fmt.Errorf("%w: instance id %d of %d", ErrCorruptPayload, id, len(doc.Instances))
		}
		rooted := isServiceType && isServiceRooted[i]
		doc.Instances[id] = Instance{
			ID:              id,
			TypeIndex:       typeIndex,
			ParentID:        -1,
			IsService:       isServiceType,
			IsServiceRooted: rooted,
		}
	}
	return nil
}

func readParents(b *blob.Blob, doc *Document) error {
	format, err := b.ReadUint8()
	if err != nil {
		return err
	}
	if format != parentLinkFormatPlain {
		return fmt.Errorf("%w: parent link format %d", ErrUnrecognizedLayout, format)
	}

	linkCount, err := b.ReadUint32()
	if err != nil {
		return err
	}
	childIDs, err := codec.ReadIDColumn(b, int(linkCount))
	if err != nil {
		return err
	}
	parentIDs, err := codec.ReadIDColumn(b, int(linkCount))
	if err != nil {
		return err
	}

	for i := range childIDs {
		childID := childIDs[i]
		parentID := parentIDs[i]

		if childID < 0 || int(childID) >= len(doc.Instances) {
			return fmt.Errorf("%w: child id %d of %d", ErrCorruptPayload, childID, len(doc.Instances))
		}
		if parentID < 0 {
			doc.Instances[childID].ParentID = -1
			continue
		}
		if int(parentID) >= len(doc.Instances) {
			return fmt.Errorf("%w: parent id %d of %d", ErrCorruptPayload, parentID, len(doc.Instances))
		}
		doc.Instances[childID].ParentID = parentID
		parent := &doc.Instances[parentID]
		parent.childIDs = append(parent.childIDs, childID)
	}
	return nil
}

func readMetadata(chunk chunkHeader, b *blob.Blob, doc *Document) error {
	if chunk.reserved != 0 {
		return fmt.Errorf("%w: metadata chunk version %d", ErrUnrecognizedLayout, chunk.reserved)
	}

	count, err := b.ReadUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := codec.ReadString(b)
		if err != nil {
			return err
		}
		value, err := codec.ReadString(b)
		if err != nil {
			return err
		}
		doc.Metadata = append(doc.Metadata, MetadataEntry{Name: name, Value: value})
	}
	return nil
}

func readSharedStrings(b *blob.Blob, doc *Document) error {
	version, err := b.ReadUint32()
	if err != nil {
		return err
	}
	if version != 0 {
		return fmt.Errorf("%w: shared string dictionary version %d", ErrUnrecognizedLayout, version)
	}

	count, err := b.ReadUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		var entry SharedString
		if err := b.Read(entry.MD5[:]); err != nil {
			return err
		}
		length, err := b.ReadUint32()
		if err != nil {
			return err
		}
		entry.Content = make([]byte, length)
		if err := b.Read(entry.Content); err != nil {
			return err
		}
		doc.SharedStrings = append(doc.SharedStrings, entry)
	}
	return nil
}

// resolveSharedStrings replaces the stored dictionary index of every
// SharedStringDictionaryIndex property with the content of the SSTR
// entry it names. SSTR may appear after the PROP chunks that reference
// it, so resolution runs once the chunk loop is done.
func resolveSharedStrings(doc *Document) {
	for i := range doc.Instances {
		props := doc.Instances[i].properties
		for j := range props {
			if props[j].kind != KindSharedStringDictionaryIndex {
				continue
			}
			index, ok := props[j].value.(uint32)
			props[j].value = ""
			if ok && int(index) < len(doc.SharedStrings) {
				props[j].value = string(doc.SharedStrings[index].Content)
			}
		}
	}
}
