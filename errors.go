package rbxdoc

import (
	"errors"

	"github.com/SergeyMakeev/RbxDoc/internal/blob"
)

var (
	// ErrIO reports a failure to open or read the input file.
	ErrIO = errors.New("rbxdoc: io error")

	// ErrUnrecognizedFormat reports a magic or signature mismatch in
	// the file header.
	ErrUnrecognizedFormat = errors.New("rbxdoc: unrecognized format")

	// ErrUnsupportedVersion reports a file header version other than 0.
	ErrUnsupportedVersion = errors.New("rbxdoc: unsupported version")

	// ErrUnrecognizedLayout reports a format tag byte outside the
	// enumerated set for a recognized chunk.
	ErrUnrecognizedLayout = errors.New("rbxdoc: unrecognized layout")

	// ErrCorruptPayload reports a decompression size mismatch, an index
	// out of the declared type or object range, or inconsistent counts.
	ErrCorruptPayload = errors.New("rbxdoc: corrupt payload")

	// ErrTruncated reports a read that would cross the end of a buffer.
	ErrTruncated = blob.ErrTruncated
)
