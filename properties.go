package rbxdoc

import (
	"fmt"

	"github.com/SergeyMakeev/RbxDoc/internal/blob"
	"github.com/SergeyMakeev/RbxDoc/internal/codec"
)

// readProperties decodes one PROP chunk: one named column of values,
// one value per instance of the referenced type. Instances are matched
// to column elements in ascending instance-id order, the same order the
// encoder wrote them.
func readProperties(b *blob.Blob, doc *Document) error {
	typeIndex, err := b.ReadUint32()
	if err != nil {
		return err
	}
	if int(typeIndex) >= len(doc.Types) {
		return fmt.Errorf("%w: type index %d of %d", ErrCorruptPayload, typeIndex, len(doc.Types))
	}

	name, err := codec.ReadString(b)
	if err != nil {
		return err
	}
	format, err := b.ReadUint8()
	if err != nil {
		return err
	}
	kind := PropertyKind(format)

	var typeInstances []int32
	for i := range doc.Instances {
		if doc.Instances[i].TypeIndex == typeIndex {
			typeInstances = append(typeInstances, int32(i))
		}
	}

	switch kind {
	case KindString:
		return readStringProperties(name, b, doc, typeInstances)
	case KindBool:
		return readBoolProperties(name, b, doc, typeInstances)
	case KindInt:
		return readIntProperties(name, b, doc, typeInstances)
	case KindInt64:
		return readInt64Properties(name, b, doc, typeInstances)
	case KindFloat:
		return readFloatProperties(name, b, doc, typeInstances)
	case KindDouble:
		return readDoubleProperties(name, b, doc, typeInstances)
	case KindColor3:
		return readColor3Properties(name, b, doc, typeInstances)
	case KindColor3uint8:
		return readColor3uint8Properties(name, b, doc, typeInstances)
	case KindVector3:
		return readVector3Properties(name, b, doc, typeInstances)
	case KindVector2:
		return readVector2Properties(name, b, doc, typeInstances)
	case KindEnum:
		return readEnumProperties(name, b, doc, typeInstances)
	case KindRef:
		return readRefProperties(name, b, doc, typeInstances)
	case KindBrickColor:
		return readBrickColorProperties(name, b, doc, typeInstances)
	case KindUniqueId:
		return readUniqueIdProperties(name, b, doc, typeInstances)
	case KindCFrameMatrix:
		return readCFrameProperties(name, b, doc, typeInstances)
	case KindOptionalCFrame:
		return readOptionalCFrameProperties(name, b, doc, typeInstances)
	case KindColorSequenceV1:
		return readColorSequenceProperties(name, b, doc, typeInstances)
	case KindNumberSequence:
		return readNumberSequenceProperties(name, b, doc, typeInstances)
	case KindUDim2:
		return readUDim2Properties(name, b, doc, typeInstances)
	case KindRect2D:
		return readRect2DProperties(name, b, doc, typeInstances)
	case KindSharedStringDictionaryIndex:
		return readSharedStringProperties(name, b, doc, typeInstances)
	case KindPhysicalProperties:
		return readPhysicalProperties(name, b, doc, typeInstances)
	case KindNumberRange:
		return readNumberRangeProperties(name, b, doc, typeInstances)
	case KindFont:
		return readFontProperties(name, b, doc, typeInstances)
	default:
		// Unsupported wire formats still occupy a property slot on
		// every instance so positional parity holds across siblings.
		for _, id := range typeInstances {
			appendProperty(doc, id, Property{name: name, kind: KindUnknown})
		}
		return nil
	}
}

func appendProperty(doc *Document, id int32, p Property) {
	inst := &doc.Instances[id]
	inst.properties = append(inst.properties, p)
}

func readStringProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		v, err := codec.ReadString(b)
		if err != nil {
			return err
		}
		appendProperty(doc, id, Property{name: name, kind: KindString, value: v})
	}
	return nil
}

func readBoolProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		v, err := b.ReadUint8()
		if err != nil {
			return err
		}
		appendProperty(doc, id, Property{name: name, kind: KindBool, value: v != 0})
	}
	return nil
}

func readIntProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadInt32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindInt, value: values[i]})
	}
	return nil
}

func readInt64Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadInt64Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindInt64, value: values[i]})
	}
	return nil
}

func readFloatProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindFloat, value: values[i]})
	}
	return nil
}

func readDoubleProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	// Doubles are stored raw and in element order, not columnar.
	for _, id := range typeInstances {
		v, err := b.ReadFloat64()
		if err != nil {
			return err
		}
		appendProperty(doc, id, Property{name: name, kind: KindDouble, value: v})
	}
	return nil
}

func readColor3Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	r, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	g, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	bl, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindColor3, value: Color3{R: r[i], G: g[i], B: bl[i]}})
	}
	return nil
}

func readColor3uint8Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	r, err := codec.ReadUint8Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	g, err := codec.ReadUint8Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	bl, err := codec.ReadUint8Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		value := Color3{
			R: float32(r[i]) / 255.0,
			G: float32(g[i]) / 255.0,
			B: float32(bl[i]) / 255.0,
		}
		appendProperty(doc, id, Property{name: name, kind: KindColor3uint8, value: value})
	}
	return nil
}

func readVector3Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	x, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	y, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	z, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindVector3, value: Vector3{X: x[i], Y: y[i], Z: z[i]}})
	}
	return nil
}

func readVector2Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	x, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	y, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindVector2, value: Vector2{X: x[i], Y: y[i]}})
	}
	return nil
}

func readEnumProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadUint32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindEnum, value: values[i]})
	}
	return nil
}

func readRefProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadIDColumn(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindRef, value: values[i]})
	}
	return nil
}

func readBrickColorProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	values, err := codec.ReadUint32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindBrickColor, value: BrickColor{Index: values[i]}})
	}
	return nil
}

func readUniqueIdProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	indices, err := codec.ReadUint32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	timestamps, err := codec.ReadUint32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	rawBits, err := codec.ReadInt64Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		value := UniqueId{Index: indices[i], Timestamp: timestamps[i], RawBits: rawBits[i]}
		appendProperty(doc, id, Property{name: name, kind: KindUniqueId, value: value})
	}
	return nil
}

func readCFrameProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	rotations := make([]Mat3, len(typeInstances))
	for i := range rotations {
		rot, err := readExactRotation(b)
		if err != nil {
			return err
		}
		rotations[i] = rot
	}
	tx, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	ty, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	tz, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		value := CFrame{Rotation: rotations[i], Translation: Vector3{X: tx[i], Y: ty[i], Z: tz[i]}}
		appendProperty(doc, id, Property{name: name, kind: KindCFrameMatrix, value: value})
	}
	return nil
}

func readOptionalCFrameProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	subformat, err := b.ReadUint8()
	if err != nil {
		return err
	}
	if PropertyKind(subformat) != KindCFrameMatrix {
		return fmt.Errorf("%w: optional cframe subformat %d", ErrUnrecognizedLayout, subformat)
	}

	rotations := make([]Mat3, len(typeInstances))
	for i := range rotations {
		rot, err := readExactRotation(b)
		if err != nil {
			return err
		}
		rotations[i] = rot
	}
	tx, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	ty, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	tz, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}

	subformat, err = b.ReadUint8()
	if err != nil {
		return err
	}
	if PropertyKind(subformat) != KindBool {
		return fmt.Errorf("%w: optional cframe flag subformat %d", ErrUnrecognizedLayout, subformat)
	}

	for i, id := range typeInstances {
		flag, err := b.ReadUint8()
		if err != nil {
			return err
		}
		value := OptionalCFrame{
			Value:   CFrame{Rotation: rotations[i], Translation: Vector3{X: tx[i], Y: ty[i], Z: tz[i]}},
			HasData: flag != 0,
		}
		appendProperty(doc, id, Property{name: name, kind: KindOptionalCFrame, value: value})
	}
	return nil
}

func readNumberSequenceProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		count, err := b.ReadUint32()
		if err != nil {
			return err
		}
		seq := NumberSequence{Keys: make([]NumberKey, count)}
		for k := range seq.Keys {
			if seq.Keys[k].Time, err = b.ReadFloat32(); err != nil {
				return err
			}
			if seq.Keys[k].Value, err = b.ReadFloat32(); err != nil {
				return err
			}
			if seq.Keys[k].Envelope, err = b.ReadFloat32(); err != nil {
				return err
			}
		}
		appendProperty(doc, id, Property{name: name, kind: KindNumberSequence, value: seq})
	}
	return nil
}

func readColorSequenceProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		count, err := b.ReadUint32()
		if err != nil {
			return err
		}
		seq := ColorSequence{Keys: make([]ColorKey, count)}
		for k := range seq.Keys {
			key := &seq.Keys[k]
			if key.Time, err = b.ReadFloat32(); err != nil {
				return err
			}
			if key.Value.R, err = b.ReadFloat32(); err != nil {
				return err
			}
			if key.Value.G, err = b.ReadFloat32(); err != nil {
				return err
			}
			if key.Value.B, err = b.ReadFloat32(); err != nil {
				return err
			}
			if key.Envelope, err = b.ReadFloat32(); err != nil {
				return err
			}
		}
		appendProperty(doc, id, Property{name: name, kind: KindColorSequenceV1, value: seq})
	}
	return nil
}

func readNumberRangeProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		min, err := b.ReadFloat32()
		if err != nil {
			return err
		}
		max, err := b.ReadFloat32()
		if err != nil {
			return err
		}
		appendProperty(doc, id, Property{name: name, kind: KindNumberRange, value: NumberRange{Min: min, Max: max}})
	}
	return nil
}

func readUDim2Properties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	sx, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	sy, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	ox, err := codec.ReadInt32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	oy, err := codec.ReadInt32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		value := UDim2{ScaleX: sx[i], ScaleY: sy[i], OffsetX: ox[i], OffsetY: oy[i]}
		appendProperty(doc, id, Property{name: name, kind: KindUDim2, value: value})
	}
	return nil
}

func readRect2DProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	x0, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	y0, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	x1, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	y1, err := codec.ReadFloat32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		value := Rect2D{X0: x0[i], Y0: y0[i], X1: x1[i], Y1: y1[i]}
		appendProperty(doc, id, Property{name: name, kind: KindRect2D, value: value})
	}
	return nil
}

func readPhysicalProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	const customizeMask = 0x01

	for _, id := range typeInstances {
		flag, err := b.ReadUint8()
		if err != nil {
			return err
		}

		value := PhysicalProperties{FrictionWeight: 1, ElasticityWeight: 1, AcousticAbsorption: 1}
		if flag&customizeMask != 0 {
			if value.Density, err = b.ReadFloat32(); err != nil {
				return err
			}
			if value.Friction, err = b.ReadFloat32(); err != nil {
				return err
			}
			if value.Elasticity, err = b.ReadFloat32(); err != nil {
				return err
			}
			if value.FrictionWeight, err = b.ReadFloat32(); err != nil {
				return err
			}
			if value.ElasticityWeight, err = b.ReadFloat32(); err != nil {
				return err
			}
			if flag >= 2 {
				if value.AcousticAbsorption, err = b.ReadFloat32(); err != nil {
					return err
				}
			}
		}
		appendProperty(doc, id, Property{name: name, kind: KindPhysicalProperties, value: value})
	}
	return nil
}

// readSharedStringProperties stores the raw dictionary index; it is
// swapped for the SSTR entry content once all chunks are in.
func readSharedStringProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	indices, err := codec.ReadUint32Column(b, len(typeInstances))
	if err != nil {
		return err
	}
	for i, id := range typeInstances {
		appendProperty(doc, id, Property{name: name, kind: KindSharedStringDictionaryIndex, value: indices[i]})
	}
	return nil
}

func readFontProperties(name string, b *blob.Blob, doc *Document, typeInstances []int32) error {
	for _, id := range typeInstances {
		var value Font
		var err error
		if value.Family, err = codec.ReadString(b); err != nil {
			return err
		}
		if value.Weight, err = b.ReadUint16(); err != nil {
			return err
		}
		if value.Style, err = b.ReadUint8(); err != nil {
			return err
		}
		if value.CachedFaceId, err = codec.ReadString(b); err != nil {
			return err
		}
		appendProperty(doc, id, Property{name: name, kind: KindFont, value: value})
	}
	return nil
}
