package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// World-space basis vectors. The engine uses a left-handed system where +Z points
// away from the viewer.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// PerspectiveLH builds a left-handed perspective projection matrix that maps view-space
// depth along +Z into clip space [-1, 1]. Pairs with a clockwise front face.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: viewport width divided by height
//   - near: distance to the near clip plane
//   - far: distance to the far clip plane
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func PerspectiveLH(fov, aspect, near, far float32) mgl32.Mat4 {
	tanHalf := math32.Tan(fov / 2)
	zRange := near - far

	return mgl32.Mat4FromRows(
		mgl32.Vec4{1 / (tanHalf * aspect), 0, 0, 0},
		mgl32.Vec4{0, 1 / tanHalf, 0, 0},
		mgl32.Vec4{0, 0, (-near - far) / zRange, 2 * far * near / zRange},
		mgl32.Vec4{0, 0, 1, 0},
	)
}

// RotationFromBasis returns the rotation that turns +Z into forward and +Y into the
// component of up orthogonal to forward.
//
// Parameters:
//   - forward: the desired forward direction (normalized internally)
//   - up: an approximate up direction
//
// Returns:
//   - mgl32.Quat: the rotation, normalized
func RotationFromBasis(forward, up mgl32.Vec3) mgl32.Quat {
	f := forward.Normalize()
	r := up.Normalize().Cross(f)
	if r.Len() < 1e-6 {
		// forward is parallel to up; any perpendicular right axis will do
		r = AxisX.Cross(f)
		if r.Len() < 1e-6 {
			r = AxisZ.Cross(f)
		}
	}
	r = r.Normalize()
	u := f.Cross(r)

	// Rows of the view basis; Mat4ToQuat expects the rotation matrix whose columns are
	// the basis, which is the transpose of the rows above.
	m := mgl32.Mat3FromRows(r, u, f).Transpose()
	return mgl32.Mat4ToQuat(m.Mat4()).Normalize()
}

// Forward returns the +Z axis rotated by q.
func Forward(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisZ) }

// Back returns the -Z axis rotated by q.
func Back(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisZ.Mul(-1)) }

// Up returns the +Y axis rotated by q.
func Up(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisY) }

// Down returns the -Y axis rotated by q.
func Down(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisY.Mul(-1)) }

// Right returns the +X axis rotated by q.
func Right(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisX) }

// Left returns the -X axis rotated by q.
func Left(q mgl32.Quat) mgl32.Vec3 { return q.Rotate(AxisX.Mul(-1)) }

// MaxComponent returns the largest of the three components of v.
//
// Parameters:
//   - v: the vector to inspect
//
// Returns:
//   - float32: max(v.X, v.Y, v.Z)
func MaxComponent(v mgl32.Vec3) float32 {
	return math32.Max(v[0], math32.Max(v[1], v[2]))
}
