package material

import "github.com/go-gl/mathgl/mgl32"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithFallbackTexture is an option builder that sets the texture returned for sampler
// names the material has no texture for.
//
// Parameters:
//   - tex: the fallback texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the fallback option to a material
func WithFallbackTexture(tex Texture) MaterialBuilderOption {
	return func(m *material) {
		m.fallback = tex
	}
}

// WithTexture is an option builder that sets a named texture.
//
// Parameters:
//   - name: the sampler name the texture binds to
//   - tex: the texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(name string, tex Texture) MaterialBuilderOption {
	return func(m *material) {
		if tex != nil {
			m.SetTexture(name, tex)
		}
	}
}

// WithDiffuse is an option builder that sets the diffuse (albedo) texture.
//
// Parameters:
//   - tex: the diffuse texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(tex Texture) MaterialBuilderOption {
	return WithTexture(Diffuse, tex)
}

// WithNormalMap is an option builder that sets the tangent-space normal map.
//
// Parameters:
//   - tex: the normal map texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal map option to a material
func WithNormalMap(tex Texture) MaterialBuilderOption {
	return WithTexture(NormalMap, tex)
}

// WithDisplacementMap is an option builder that sets the parallax displacement map and
// its scale. The stored bias centers the displacement range on offset:
// bias = -scale/2 + scale/2*offset.
//
// Parameters:
//   - tex: the displacement map texture
//   - scale: the depth of the displacement
//   - offset: shifts the displacement range, 0 centers it
//
// Returns:
//   - MaterialBuilderOption: a function that applies the displacement option to a material
func WithDisplacementMap(tex Texture, scale, offset float32) MaterialBuilderOption {
	return func(m *material) {
		if tex != nil {
			m.SetTexture(DispMap, tex)
		}
		baseBias := scale / 2
		m.values.SetFloat(DispMapScale, scale)
		m.values.SetFloat(DispMapBias, -baseBias+baseBias*offset)
	}
}

// WithSpecular is an option builder that sets the specular intensity and exponent.
//
// Parameters:
//   - intensity: the specular reflection strength
//   - power: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(intensity, power float32) MaterialBuilderOption {
	return func(m *material) {
		m.values.SetFloat(SpecularIntensity, intensity)
		m.values.SetFloat(SpecularPower, power)
	}
}

// WithFloat is an option builder that sets an arbitrary named scalar.
//
// Parameters:
//   - name: the value name
//   - v: the value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the value to a material
func WithFloat(name string, v float32) MaterialBuilderOption {
	return func(m *material) {
		m.values.SetFloat(name, v)
	}
}

// WithVec3 is an option builder that sets an arbitrary named vector.
//
// Parameters:
//   - name: the value name
//   - v: the value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the value to a material
func WithVec3(name string, v mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.values.SetVec3(name, v)
	}
}
