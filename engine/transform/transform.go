// Package transform holds hierarchical position/rotation/scale state with a cached,
// change-detected parent world matrix.
package transform

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// commitState tracks how many commits a Transform has seen. Until a transform has been
// committed twice there is no previous frame to compare against, so it always reports
// itself as changed.
type commitState uint8

// nextStamp orders every local or link mutation of every Transform.
var nextStamp atomic.Uint64

const (
	commitNone commitState = iota
	commitFirst
	commitTracked
)

// Transform is the local position, rotation and scale of a scene node relative to its
// parent. The zero value is not usable; create one with New.
//
// A Transform holds a non-owning pointer to its parent's Transform. The parent's world
// matrix is cached together with the newest mutation stamp of the parent chain, and is
// recomputed only when an ancestor was mutated or re-linked since.
type Transform struct {
	parent       *Transform
	parentMatrix mgl32.Mat4
	parentStamp  uint64
	stamp        uint64

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	oldPosition mgl32.Vec3
	oldRotation mgl32.Quat
	oldScale    mgl32.Vec3
	state       commitState
}

// New creates a Transform at the origin with identity rotation and unit scale.
//
// Returns:
//   - *Transform: the new transform
func New() *Transform {
	return &Transform{
		parentMatrix: mgl32.Ident4(),
		rotation:     mgl32.QuatIdent(),
		scale:        mgl32.Vec3{1, 1, 1},
		stamp:        nextStamp.Add(1),
	}
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// SetParent links this transform beneath parent. Pass nil to detach.
// The cached parent matrix of this transform and of every descendant is discarded.
//
// Parameters:
//   - parent: the new parent transform, or nil
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
	t.touch()
}

// touch records a mutation, invalidating the parent caches below this transform.
func (t *Transform) touch() {
	t.stamp = nextStamp.Add(1)
}

// SetLocal replaces position, rotation and scale in one call.
//
// Parameters:
//   - pos: local position
//   - rot: local rotation
//   - scale: local scale
func (t *Transform) SetLocal(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	t.position = pos
	t.rotation = rot
	t.scale = scale
	t.touch()
}

// Position returns the local position.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// Rotation returns the local rotation.
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

// Scale returns the local scale.
func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

// SetPosition sets the local position.
func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.position = pos
	t.touch()
}

// SetRotation sets the local rotation.
func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.rotation = rot
	t.touch()
}

// SetScale sets the local scale.
func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.scale = scale
	t.touch()
}

// Rotate applies an additional rotation of angle radians about axis, on top of the
// current local rotation.
//
// Parameters:
//   - axis: the rotation axis (normalized internally)
//   - angle: the rotation angle in radians
func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	t.rotation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(t.rotation).Normalize()
	t.touch()
}

// LookAt rotates the transform so that its forward axis points from its world position
// toward point.
//
// Parameters:
//   - point: world-space target
//   - up: approximate up direction
func (t *Transform) LookAt(point, up mgl32.Vec3) {
	t.rotation = t.LookAtRotation(point, up)
	t.touch()
}

// LookAtRotation returns the rotation LookAt would apply without changing the transform.
//
// Parameters:
//   - point: world-space target
//   - up: approximate up direction
//
// Returns:
//   - mgl32.Quat: the rotation that faces point
func (t *Transform) LookAtRotation(point, up mgl32.Vec3) mgl32.Quat {
	dir := point.Sub(t.WorldPosition())
	if dir.Len() == 0 {
		return t.rotation
	}
	return common.RotationFromBasis(dir, up)
}

// Commit snapshots the current local state. Called once per frame before any change
// detection query of that frame.
func (t *Transform) Commit() {
	if t.state < commitTracked {
		t.state++
	}
	t.oldPosition = t.position
	t.oldRotation = t.rotation
	t.oldScale = t.scale
}

// HasChanged reports whether this transform or any of its ancestors differs from the
// state captured by the last Commit.
//
// Returns:
//   - bool: true if the world matrix may differ from the previous frame
func (t *Transform) HasChanged() bool {
	if t.parent != nil && t.parent.HasChanged() {
		return true
	}
	if t.state != commitTracked {
		return true
	}
	return t.position != t.oldPosition ||
		t.rotation != t.oldRotation ||
		t.scale != t.oldScale
}

// LocalMatrix returns Translation * Rotation * Scale for the local state.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.position[0], t.position[1], t.position[2])
	rotation := t.rotation.Mat4()
	scale := mgl32.Scale3D(t.scale[0], t.scale[1], t.scale[2])
	return translation.Mul4(rotation).Mul4(scale)
}

// WorldMatrix returns the cached parent world matrix multiplied by the local matrix.
//
// Returns:
//   - mgl32.Mat4: the object-to-world transform
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	return t.parentWorldMatrix().Mul4(t.LocalMatrix())
}

// WorldPosition returns the local position transformed by the parent chain.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.parentWorldMatrix().Mul4x1(t.position.Vec4(1)).Vec3()
}

// WorldRotation composes the local rotation with every ancestor's rotation.
func (t *Transform) WorldRotation() mgl32.Quat {
	if t.parent == nil {
		return t.rotation
	}
	return t.parent.WorldRotation().Mul(t.rotation)
}

func (t *Transform) parentWorldMatrix() mgl32.Mat4 {
	if t.parent == nil {
		return mgl32.Ident4()
	}
	if stamp := t.parent.chainStamp(); stamp != t.parentStamp {
		t.parentMatrix = t.parent.WorldMatrix()
		t.parentStamp = stamp
	}
	return t.parentMatrix
}

// chainStamp returns the newest mutation stamp of this transform and its ancestors.
// Stamps only grow, so any mutation or re-link in the chain changes the result.
func (t *Transform) chainStamp() uint64 {
	stamp := t.stamp
	for p := t.parent; p != nil; p = p.parent {
		stamp = max(stamp, p.stamp)
	}
	return stamp
}
