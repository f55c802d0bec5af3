package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// Uniform name prefixes that select the value provider.
const (
	// TransformPrefix marks values derived from the drawn object's transform.
	TransformPrefix = "T_"
	// EnginePrefix marks values owned by the rendering engine: globals and the active light.
	EnginePrefix = "R_"
	// CameraPrefix marks values derived from the main camera.
	CameraPrefix = "C_"
)

var (
	// ErrUnresolvableUniform is returned when no resolution rule covers a uniform.
	ErrUnresolvableUniform = errors.New("shader: unresolvable uniform")

	// ErrActiveLightTypeMismatch is returned when a light struct uniform is resolved
	// while the active light is of a different kind, or there is no active light.
	ErrActiveLightTypeMismatch = errors.New("shader: active light type mismatch")

	// ErrReflectionMismatch is reported when a reflected identifier has no location in the
	// compiled program.
	ErrReflectionMismatch = errors.New("shader: reflection mismatch")

	// ErrMissingCamera is returned when a camera-dependent uniform is resolved without a
	// main camera.
	ErrMissingCamera = errors.New("shader: no main camera")
)

// ValueKind tags the payload of a ResolvedValue.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindVec3
	KindMat4
	KindSampler
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec3:
		return "vec3"
	case KindMat4:
		return "mat4"
	case KindSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// ResolvedValue is the value selected for one uniform leaf. Only the field matching
// Kind is meaningful. A sampler carries its texture unit in Int and the texture to bind
// in Texture.
type ResolvedValue struct {
	Kind    ValueKind
	Int     int32
	Float   float32
	Vec3    mgl32.Vec3
	Mat4    mgl32.Mat4
	Texture material.Texture
}

// IntValue wraps an integer.
func IntValue(v int32) ResolvedValue { return ResolvedValue{Kind: KindInt, Int: v} }

// FloatValue wraps a scalar.
func FloatValue(v float32) ResolvedValue { return ResolvedValue{Kind: KindFloat, Float: v} }

// Vec3Value wraps a vector.
func Vec3Value(v mgl32.Vec3) ResolvedValue { return ResolvedValue{Kind: KindVec3, Vec3: v} }

// Mat4Value wraps a matrix.
func Mat4Value(v mgl32.Mat4) ResolvedValue { return ResolvedValue{Kind: KindMat4, Mat4: v} }

// SamplerValue pairs a texture with the unit it is bound to.
func SamplerValue(unit int32, tex material.Texture) ResolvedValue {
	return ResolvedValue{Kind: KindSampler, Int: unit, Texture: tex}
}

// EngineSource is the rendering engine as seen by the resolver.
type EngineSource interface {
	// Vec3 returns a named global vector, zero if unset.
	Vec3(name string) mgl32.Vec3

	// Float returns a named global scalar, zero if unset.
	Float(name string) float32

	// SamplerSlot returns the texture unit assigned to a sampler name.
	SamplerSlot(name string) int32

	// MainCamera returns the camera the frame is rendered from, or nil.
	MainCamera() camera.Camera

	// ResolveUniformStruct resolves an engine-prefixed uniform that is neither a plain
	// value nor a light struct. Implementations return ErrUnresolvableUniform for
	// types they do not handle.
	ResolveUniformStruct(entry UniformEntry, ctx DrawContext) (ResolvedValue, error)
}

// Pass identifies the render pass a draw belongs to. Light is nil for the ambient pass.
type Pass struct {
	Engine EngineSource
	Light  light.Light
}

// DrawContext is everything the resolver may read for one object in one pass.
type DrawContext struct {
	Transform *transform.Transform
	Material  material.Material
	Pass      Pass
}

// Resolve selects the value for one uniform leaf. Rules apply in order:
//
//  1. sampler types bind the material texture of the same name to the engine's slot
//  2. T_ names resolve model and MVP from the transform
//  3. R_ names resolve engine globals, the active light, or the engine hook
//  4. C_ names resolve camera fields
//  5. anything else resolves from the material by exact name
//
// Parameters:
//   - entry: the uniform leaf
//   - ctx: the object and pass being drawn
//
// Returns:
//   - ResolvedValue: the value to upload
//   - error: ErrUnresolvableUniform, ErrActiveLightTypeMismatch or ErrMissingCamera
func Resolve(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	var (
		v   ResolvedValue
		err error
	)
	switch {
	case isSamplerType(entry.Type):
		v, err = resolveSampler(entry, ctx)
	case strings.HasPrefix(entry.Name, TransformPrefix):
		v, err = resolveTransform(entry, ctx)
	case strings.HasPrefix(entry.Name, EnginePrefix):
		v, err = resolveEngine(entry, ctx)
	case strings.HasPrefix(entry.Name, CameraPrefix):
		v, err = resolveCamera(entry, ctx)
	default:
		v, err = resolveMaterial(entry, ctx)
	}
	if err != nil {
		return ResolvedValue{}, err
	}

	if want, ok := kindForType(entry.Type); !ok || want != v.Kind {
		return ResolvedValue{}, fmt.Errorf("%w: %s is declared %s but resolved to %s", ErrUnresolvableUniform, entry.Name, entry.Type, v.Kind)
	}
	return v, nil
}

func resolveSampler(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	if ctx.Material == nil {
		return ResolvedValue{}, fmt.Errorf("%w: sampler %s drawn without a material", ErrUnresolvableUniform, entry.Name)
	}
	return SamplerValue(ctx.Pass.Engine.SamplerSlot(entry.Name), ctx.Material.Texture(entry.Name)), nil
}

func resolveTransform(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	var world mgl32.Mat4
	if ctx.Transform != nil {
		world = ctx.Transform.WorldMatrix()
	} else {
		world = mgl32.Ident4()
	}

	switch strings.TrimPrefix(entry.Name, TransformPrefix) {
	case "model":
		return Mat4Value(world), nil
	case "MVP":
		cam := ctx.Pass.Engine.MainCamera()
		if cam == nil {
			return ResolvedValue{}, fmt.Errorf("%w: resolving %s", ErrMissingCamera, entry.Name)
		}
		return Mat4Value(cam.ViewProjection().Mul4(world)), nil
	}
	return ResolvedValue{}, fmt.Errorf("%w: unknown transform field %s", ErrUnresolvableUniform, entry.Name)
}

func resolveEngine(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	if lt, ok := light.TypeFromStructName(entry.RootType); ok {
		active := ctx.Pass.Light
		if active == nil {
			return ResolvedValue{}, fmt.Errorf("%w: %s needs a %s but no light is active", ErrActiveLightTypeMismatch, entry.Name, lt)
		}
		if active.Type() != lt {
			return ResolvedValue{}, fmt.Errorf("%w: %s is a %s but the active light is a %s", ErrActiveLightTypeMismatch, entry.Name, lt, active.Type())
		}
		v, ok := lightField(active, lt, entry.Path)
		if !ok {
			return ResolvedValue{}, fmt.Errorf("%w: unknown %s field %s", ErrUnresolvableUniform, lt, entry.Name)
		}
		return v, nil
	}

	if entry.Name == entry.Root {
		name := strings.TrimPrefix(entry.Name, EnginePrefix)
		switch entry.Type {
		case "vec3":
			return Vec3Value(ctx.Pass.Engine.Vec3(name)), nil
		case "float":
			return FloatValue(ctx.Pass.Engine.Float(name)), nil
		}
	}
	return ctx.Pass.Engine.ResolveUniformStruct(entry, ctx)
}

// lightField maps a member path of a light struct to the light's value.
func lightField(l light.Light, lt light.LightType, path []string) (ResolvedValue, bool) {
	if len(path) == 2 && path[0] == "base" && lt != light.LightTypeSpot {
		switch path[1] {
		case "color":
			return Vec3Value(l.Color()), true
		case "intensity":
			return FloatValue(l.Intensity()), true
		}
		return ResolvedValue{}, false
	}

	switch lt {
	case light.LightTypeDirectional:
		if len(path) == 1 && path[0] == "direction" {
			return Vec3Value(l.Direction()), true
		}
	case light.LightTypePoint:
		if len(path) == 2 && path[0] == "atten" {
			att := l.Attenuation()
			switch path[1] {
			case "constant":
				return FloatValue(att.Constant), true
			case "linear":
				return FloatValue(att.Linear), true
			case "exponent":
				return FloatValue(att.Exponent), true
			}
			return ResolvedValue{}, false
		}
		if len(path) == 1 {
			switch path[0] {
			case "position":
				return Vec3Value(l.Position()), true
			case "range":
				return FloatValue(l.Range()), true
			}
		}
	case light.LightTypeSpot:
		if len(path) > 1 && path[0] == "pointLight" {
			return lightField(l, light.LightTypePoint, path[1:])
		}
		if len(path) == 1 {
			switch path[0] {
			case "direction":
				return Vec3Value(l.Direction()), true
			case "cutoff":
				return FloatValue(l.Cutoff()), true
			}
		}
	}
	return ResolvedValue{}, false
}

func resolveCamera(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	cam := ctx.Pass.Engine.MainCamera()
	if cam == nil {
		return ResolvedValue{}, fmt.Errorf("%w: resolving %s", ErrMissingCamera, entry.Name)
	}
	switch strings.TrimPrefix(entry.Name, CameraPrefix) {
	case "eyePos":
		return Vec3Value(cam.EyePosition()), nil
	}
	return ResolvedValue{}, fmt.Errorf("%w: unknown camera field %s", ErrUnresolvableUniform, entry.Name)
}

func resolveMaterial(entry UniformEntry, ctx DrawContext) (ResolvedValue, error) {
	if ctx.Material == nil {
		return ResolvedValue{}, fmt.Errorf("%w: %s drawn without a material", ErrUnresolvableUniform, entry.Name)
	}
	switch entry.Type {
	case "vec3":
		return Vec3Value(ctx.Material.Vec3(entry.Name)), nil
	case "float":
		return FloatValue(ctx.Material.Float(entry.Name)), nil
	}
	return ResolvedValue{}, fmt.Errorf("%w: material has no %s values (%s)", ErrUnresolvableUniform, entry.Type, entry.Name)
}

func isSamplerType(t string) bool {
	return strings.HasPrefix(t, "sampler")
}

func kindForType(t string) (ValueKind, bool) {
	switch t {
	case "int", "bool":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "vec3":
		return KindVec3, true
	case "mat4":
		return KindMat4, true
	}
	if isSamplerType(t) {
		return KindSampler, true
	}
	return 0, false
}
