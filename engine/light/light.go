package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// ColorDepth is the number of distinguishable levels per color channel. A light's range
// is the distance at which its contribution drops below one of these levels.
const ColorDepth = 256

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a range derived from its attenuation.
	LightTypePoint

	// LightTypeSpot represents a point light restricted to a cone around its direction.
	LightTypeSpot
)

// String returns the shading-language struct name that carries this light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "DirectionalLight"
	case LightTypePoint:
		return "PointLight"
	case LightTypeSpot:
		return "SpotLight"
	default:
		return "UnknownLight"
	}
}

// TypeFromStructName maps a shading-language struct name back to its LightType.
//
// Parameters:
//   - name: the struct type name, e.g. "PointLight"
//
// Returns:
//   - LightType: the matching light type
//   - bool: false if name is not a light struct
func TypeFromStructName(name string) (LightType, bool) {
	switch name {
	case "DirectionalLight":
		return LightTypeDirectional, true
	case "PointLight":
		return LightTypePoint, true
	case "SpotLight":
		return LightTypeSpot, true
	}
	return 0, false
}

// Attenuation holds the coefficients of the distance falloff
// 1 / (Constant + Linear*d + Exponent*d^2).
type Attenuation struct {
	Constant float32
	Linear   float32
	Exponent float32
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	color       mgl32.Vec3
	intensity   float32
	attenuation Attenuation
	lightRange  float32
	cutoff      float32 // stored as cos(half-angle)
	enabled     bool
	transform   *transform.Transform
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface. Position and direction are not stored on the
// light; they are read from the transform the light is attached to, so a light follows
// the scene node that owns it. Type-specific properties return zero values when not
// applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Attenuation returns the distance falloff coefficients.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - Attenuation: the coefficients
	Attenuation() Attenuation

	// Range returns the distance beyond which the light contributes less than one color
	// level. Recomputed whenever color, intensity or attenuation change.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Cutoff returns the cosine of the spot cone half-angle.
	// Meaningless for directional and point lights.
	//
	// Returns:
	//   - float32: cos(half-angle)
	Cutoff() float32

	// Position returns the world-space position of the attached transform.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Direction returns the world-space forward axis of the attached transform.
	// Meaningless for point lights.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Enabled returns whether this light is active for rendering.
	// Disabled lights get no light pass.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Transform returns the transform the light reads its position and direction from.
	//
	// Returns:
	//   - *transform.Transform: the attached transform
	Transform() *transform.Transform

	// SetTransform attaches the light to a transform, usually its owning node's.
	//
	// Parameters:
	//   - t: the transform to follow; nil detaches to a private identity transform
	SetTransform(t *transform.Transform)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetAttenuation replaces the falloff coefficients.
	//
	// Parameters:
	//   - att: the new coefficients
	SetAttenuation(att Attenuation)

	// SetCutoff sets the cosine of the spot cone half-angle.
	//
	// Parameters:
	//   - cutoff: cos(half-angle)
	SetCutoff(cutoff float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable the light
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   lightType,
		color:       mgl32.Vec3{1, 1, 1},
		intensity:   1.0,
		attenuation: Attenuation{Constant: 0, Linear: 0, Exponent: 1},
		cutoff:      0.8192, // cos(35°)
		enabled:     true,
		transform:   transform.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.updateRange()
	return l
}

// NewDirectionalLight creates a directional light.
func NewDirectionalLight(opts ...LightBuilderOption) Light {
	return NewLight(LightTypeDirectional, opts...)
}

// NewPointLight creates a point light.
func NewPointLight(opts ...LightBuilderOption) Light {
	return NewLight(LightTypePoint, opts...)
}

// NewSpotLight creates a spot light.
func NewSpotLight(opts ...LightBuilderOption) Light {
	return NewLight(LightTypeSpot, opts...)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Attenuation() Attenuation {
	return l.attenuation
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Cutoff() float32 {
	return l.cutoff
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.transform.WorldPosition()
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return common.Forward(l.transform.WorldRotation()).Normalize()
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Transform() *transform.Transform {
	return l.transform
}

func (l *lightImpl) SetTransform(t *transform.Transform) {
	if t == nil {
		t = transform.New()
	}
	l.transform = t
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.color = color
	l.updateRange()
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
	l.updateRange()
}

func (l *lightImpl) SetAttenuation(att Attenuation) {
	l.attenuation = att
	l.updateRange()
}

func (l *lightImpl) SetCutoff(cutoff float32) {
	l.cutoff = cutoff
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) updateRange() {
	if l.lightType == LightTypeDirectional {
		l.lightRange = 0
		return
	}
	l.lightRange = CalcRange(l.attenuation, l.intensity, l.color)
}

// CalcRange solves Exponent*r^2 + Linear*r + (Constant - ColorDepth*intensity*max(color)) = 0
// for its positive root: the distance at which the light falls below one color level.
//
// With Exponent == 0 the equation is linear and solved as such. With both Exponent and
// Linear zero the light never falls off and the range is math32.MaxFloat32. A light
// that is already below one level at distance zero has range 0.
//
// Parameters:
//   - att: the attenuation coefficients
//   - intensity: the light intensity
//   - color: the light color
//
// Returns:
//   - float32: the range, never NaN
func CalcRange(att Attenuation, intensity float32, color mgl32.Vec3) float32 {
	a := att.Exponent
	b := att.Linear
	c := att.Constant - ColorDepth*intensity*common.MaxComponent(color)

	if a == 0 {
		if b == 0 {
			return math32.MaxFloat32
		}
		return math32.Max(-c/b, 0)
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	return math32.Max((-b+math32.Sqrt(disc))/(2*a), 0)
}
