package rbxdoc

import "github.com/SergeyMakeev/RbxDoc/internal/blob"

// Axis-aligned rotations compress to a single orientation id: the x
// axis comes from id/6, the y axis from id%6, and z is their cross
// product. Normal ids 0..2 are +X,+Y,+Z; 3..5 are the negated axes.

func normalIDToVector3(id int) Vector3 {
	var coords [3]float32
	sign := float32(1)
	if id >= 3 {
		sign = -1
	}
	coords[id%3] = sign
	return Vector3{X: coords[0], Y: coords[1], Z: coords[2]}
}

func cross(a, b Vector3) Vector3 {
	return Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func orientIDToMatrix(orientID int) Mat3 {
	x := normalIDToVector3(orientID / 6)
	y := normalIDToVector3(orientID % 6)
	z := cross(x, y)
	return Mat3{V: [9]float32{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	}}
}

// readExactRotation reads one per-instance rotation: a nonzero orient
// id selects a canonical axis-aligned matrix, zero is followed by the
// full row-major 3x3 as nine raw floats.
func readExactRotation(b *blob.Blob) (Mat3, error) {
	orientID, err := b.ReadInt8()
	if err != nil {
		return Mat3{}, err
	}
	if orientID != 0 {
		return orientIDToMatrix(int(orientID) - 1), nil
	}

	var m Mat3
	for i := range m.V {
		if m.V[i], err = b.ReadFloat32(); err != nil {
			return Mat3{}, err
		}
	}
	return m, nil
}
