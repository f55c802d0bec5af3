package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = mgl32.Vec3{r, g, b}
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithAttenuation is an option builder that sets the distance falloff coefficients of
// point and spot lights. The range is derived from these after all options apply.
//
// Parameters:
//   - constant: the constant term
//   - linear: the linear term
//   - exponent: the quadratic term
//
// Returns:
//   - LightBuilderOption: a function that applies the attenuation option to a lightImpl
func WithAttenuation(constant, linear, exponent float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.attenuation = Attenuation{Constant: constant, Linear: linear, Exponent: exponent}
	}
}

// WithCutoff is an option builder that sets the spot cone as the cosine of its
// half-angle, the form the shading programs compare against.
//
// Parameters:
//   - cutoff: cos(half-angle)
//
// Returns:
//   - LightBuilderOption: a function that applies the cutoff option to a lightImpl
func WithCutoff(cutoff float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.cutoff = cutoff
	}
}

// WithCutoffAngle is an option builder that sets the spot cone half-angle in degrees.
//
// Parameters:
//   - deg: cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the cutoff option to a lightImpl
func WithCutoffAngle(deg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.cutoff = math32.Cos(mgl32.DegToRad(deg))
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
