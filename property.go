package rbxdoc

// PropertyKind tags the wire format of one property column. The values
// match the single-byte format tags in PROP chunks, in declaration
// order.
type PropertyKind uint8

const (
	KindUnknown PropertyKind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindDouble
	KindUDim
	KindUDim2
	KindRay
	KindFaces
	KindAxes
	KindBrickColor
	KindColor3
	KindVector2
	KindVector3
	KindVector2int16
	KindCFrameMatrix
	KindCFrameQuat
	KindEnum
	KindRef
	KindVector3int16
	KindNumberSequence
	KindColorSequenceV1
	KindNumberRange
	KindRect2D
	KindPhysicalProperties
	KindColor3uint8
	KindInt64
	KindSharedStringDictionaryIndex
	KindBytecode
	KindOptionalCFrame
	KindUniqueId
	KindFont
	KindSecurityCapabilities
	KindContent
)

func (k PropertyKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

var kindNames = []string{
	"Unknown", "String", "Bool", "Int", "Float", "Double", "UDim",
	"UDim2", "Ray", "Faces", "Axes", "BrickColor", "Color3", "Vector2",
	"Vector3", "Vector2int16", "CFrameMatrix", "CFrameQuat", "Enum",
	"Ref", "Vector3int16", "NumberSequence", "ColorSequenceV1",
	"NumberRange", "Rect2D", "PhysicalProperties", "Color3uint8",
	"Int64", "SharedStringDictionaryIndex", "Bytecode", "OptionalCFrame",
	"UniqueId", "Font", "SecurityCapabilities", "Content",
}

type Vector2 struct {
	X float32
	Y float32
}

type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 struct {
	V [9]float32
}

// CFrame is a rigid pose: rotation plus translation.
type CFrame struct {
	Rotation    Mat3
	Translation Vector3
}

// OptionalCFrame carries a pose slot plus a validity flag. Absent
// entries still occupy a column slot; only HasData distinguishes them.
type OptionalCFrame struct {
	Value   CFrame
	HasData bool
}

type Color3 struct {
	R float32
	G float32
	B float32
}

type BrickColor struct {
	Index uint32
}

type UniqueId struct {
	Index     uint32
	Timestamp uint32
	RawBits   int64
}

type NumberKey struct {
	Time     float32
	Value    float32
	Envelope float32
}

type NumberSequence struct {
	Keys []NumberKey
}

type ColorKey struct {
	Time     float32
	Value    Color3
	Envelope float32
}

type ColorSequence struct {
	Keys []ColorKey
}

type NumberRange struct {
	Min float32
	Max float32
}

type UDim2 struct {
	ScaleX  float32
	ScaleY  float32
	OffsetX int32
	OffsetY int32
}

type Rect2D struct {
	X0 float32
	Y0 float32
	X1 float32
	Y1 float32
}

type PhysicalProperties struct {
	Density            float32
	Friction           float32
	Elasticity         float32
	FrictionWeight     float32
	ElasticityWeight   float32
	AcousticAbsorption float32
}

type Font struct {
	Family       string
	Weight       uint16
	Style        uint8
	CachedFaceId string
}

// Property is one named, variant-typed value attached to an instance.
type Property struct {
	name  string
	kind  PropertyKind
	value any
}

// Name returns the property name as declared in its PROP chunk.
func (p *Property) Name() string { return p.name }

// Kind returns the decoded kind tag; unsupported wire formats are
// retained as KindUnknown.
func (p *Property) Kind() PropertyKind { return p.kind }

// Value returns the raw variant value; nil for KindUnknown.
func (p *Property) Value() any { return p.value }

// AsString returns the string payload of String and resolved
// SharedStringDictionaryIndex properties, or def on kind mismatch.
func (p *Property) AsString(def string) string {
	if v, ok := p.value.(string); ok {
		return v
	}
	return def
}

// AsBool returns the boolean payload, or def on kind mismatch.
func (p *Property) AsBool(def bool) bool {
	if v, ok := p.value.(bool); ok {
		return v
	}
	return def
}

// AsInt returns the 32-bit integer payload, or def on kind mismatch.
func (p *Property) AsInt(def int32) int32 {
	if v, ok := p.value.(int32); ok {
		return v
	}
	return def
}

// AsInt64 returns the 64-bit integer payload, or def on kind mismatch.
func (p *Property) AsInt64(def int64) int64 {
	if v, ok := p.value.(int64); ok {
		return v
	}
	return def
}

// AsFloat returns the 32-bit float payload, or def on kind mismatch.
func (p *Property) AsFloat(def float32) float32 {
	if v, ok := p.value.(float32); ok {
		return v
	}
	return def
}

// AsDouble returns the 64-bit float payload, or def on kind mismatch.
func (p *Property) AsDouble(def float64) float64 {
	if v, ok := p.value.(float64); ok {
		return v
	}
	return def
}

// AsVector3 returns the vector payload, or def on kind mismatch.
func (p *Property) AsVector3(def Vector3) Vector3 {
	if v, ok := p.value.(Vector3); ok {
		return v
	}
	return def
}

// AsCFrame returns the pose carried by any of the coordinate-frame
// kinds. An optional frame yields its inner pose when present and def
// when it has no data.
func (p *Property) AsCFrame(def CFrame) CFrame {
	switch v := p.value.(type) {
	case CFrame:
		return v
	case OptionalCFrame:
		if v.HasData {
			return v.Value
		}
	}
	return def
}
