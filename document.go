// Package rbxdoc reads the binary scene container format: a sequence of
// tagged, optionally compressed chunks holding a typed object graph
// with columnar property data. A Document is created by a single load
// call and is read-only afterwards.
package rbxdoc

import (
	"strings"

	"github.com/rs/zerolog"
)

// Type is one slot of the document's type table.
type Type struct {
	Name string
}

// Instance is one object of the scene graph. Instances live in a dense
// array indexed by ID; parent/child links are index references into
// that array, never pointers.
type Instance struct {
	ID              int32
	TypeIndex       uint32
	ParentID        int32
	IsService       bool
	IsServiceRooted bool

	properties []Property
	childIDs   []int32
}

// Properties returns the instance's properties in wire order.
func (inst *Instance) Properties() []Property { return inst.properties }

// ChildIDs returns the ids of the instance's children.
func (inst *Instance) ChildIDs() []int32 { return inst.childIDs }

// MetadataEntry is one name/value pair from the META chunk.
type MetadataEntry struct {
	Name  string
	Value string
}

// SharedString is one entry of the SSTR dictionary.
type SharedString struct {
	MD5     [16]byte
	Content []byte
}

// Document is the decoded container: type table, dense instance array,
// and the optional metadata and shared-string tables.
type Document struct {
	Types         []Type
	Instances     []Instance
	Metadata      []MetadataEntry
	SharedStrings []SharedString
}

// TypeName returns the type-table name for inst, or "" when inst is nil
// or references a slot outside this document's type table.
func (d *Document) TypeName(inst *Instance) string {
	if inst == nil || int(inst.TypeIndex) >= len(d.Types) {
		return ""
	}
	return d.Types[inst.TypeIndex].Name
}

// InstancesOfType returns the instances whose type name matches name
// (case-insensitive), in id order.
func (d *Document) InstancesOfType(name string) []*Instance {
	var out []*Instance
	for i := range d.Instances {
		if strings.EqualFold(d.TypeName(&d.Instances[i]), name) {
			out = append(out, &d.Instances[i])
		}
	}
	return out
}

type loadOptions struct {
	logger zerolog.Logger
}

// Option adjusts loader behavior.
type Option func(*loadOptions)

// WithLogger routes loader diagnostics (skipped chunks, soft ordering
// violations) to logger. Decoding never logs per value.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}
