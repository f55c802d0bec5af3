package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passthroughVS = `#version 330
in vec3 position;
void main() { gl_Position = vec4(position, 1.0); }
`

func uniformNames(r Reflection) []string {
	names := make([]string, len(r.Uniforms))
	for i, u := range r.Uniforms {
		names[i] = u.Name
	}
	return names
}

func TestReflectFlattensStructIntoLeaves(t *testing.T) {
	fs := `
struct S
{
    vec3 a;
    float b;
};
uniform S u;
`
	r, err := Reflect(passthroughVS, fs)
	require.NoError(t, err)

	require.Len(t, r.Uniforms, 2)
	assert.Equal(t, "u.a", r.Uniforms[0].Name)
	assert.Equal(t, "vec3", r.Uniforms[0].Type)
	assert.Equal(t, "u.b", r.Uniforms[1].Name)
	assert.Equal(t, "float", r.Uniforms[1].Type)

	_, ok := r.Uniform("u")
	assert.False(t, ok)

	leaf, ok := r.Uniform("u.a")
	require.True(t, ok)
	assert.Equal(t, "u", leaf.Root)
	assert.Equal(t, "S", leaf.RootType)
	assert.Equal(t, []string{"a"}, leaf.Path)
}

func TestReflectNestedStructs(t *testing.T) {
	fs := `
struct BaseLight { vec3 color; float intensity; };
struct DirectionalLight { BaseLight base; vec3 direction; };
uniform DirectionalLight dirLight;
`
	r, err := Reflect(passthroughVS, fs)
	require.NoError(t, err)

	assert.Equal(t, []string{"dirLight.base.color", "dirLight.base.intensity", "dirLight.direction"}, uniformNames(r))

	leaf, _ := r.Uniform("dirLight.base.intensity")
	assert.Equal(t, "float", leaf.Type)
	assert.Equal(t, "DirectionalLight", leaf.RootType)
	assert.Equal(t, []string{"base", "intensity"}, leaf.Path)
}

func TestReflectArrays(t *testing.T) {
	fs := `
struct P { vec3 position; float range; };
uniform P lights[2];
uniform float weights[3], bias;
`
	r, err := Reflect(passthroughVS, fs)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"lights[0].position", "lights[0].range",
		"lights[1].position", "lights[1].range",
		"weights[0]", "weights[1]", "weights[2]",
		"bias",
	}, uniformNames(r))

	leaf, _ := r.Uniform("lights[1].range")
	assert.Equal(t, "lights", leaf.Root)
	assert.Equal(t, []string{"range"}, leaf.Path)
}

func TestReflectAttributes(t *testing.T) {
	vs := `#version 330
layout(location = 0) in vec3 position;
in vec2 texCoord;
attribute vec3 normal;
out vec2 texCoord0;
vec3 helper(in vec3 v) { return v; }
void main() { texCoord0 = texCoord; gl_Position = vec4(helper(position) + normal, 1.0); }
`
	r, err := Reflect(vs, "in vec2 texCoord0;")
	require.NoError(t, err)

	assert.Equal(t, []string{"position", "texCoord", "normal"}, r.AttributeNames())
	for i, a := range r.Attributes {
		assert.Equal(t, i, a.Slot)
	}
	assert.Equal(t, "vec2", r.Attributes[1].Type)
}

func TestReflectIgnoresComments(t *testing.T) {
	fs := `
// uniform float hidden;
/* uniform vec3 alsoHidden;
   uniform vec3 stillHidden; */
uniform float visible; // trailing
`
	r, err := Reflect(passthroughVS, fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"visible"}, uniformNames(r))
}

func TestReflectDeduplicatesAcrossStages(t *testing.T) {
	vs := passthroughVS + "uniform mat4 T_MVP;\nuniform vec3 C_eyePos;\n"
	fs := "uniform vec3 C_eyePos;\nuniform float specularPower;\n"

	r, err := Reflect(vs, fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"T_MVP", "C_eyePos", "specularPower"}, uniformNames(r))
}

func TestReflectConflictingUniform(t *testing.T) {
	_, err := Reflect(passthroughVS+"uniform float x;\n", "uniform vec3 x;\n")
	assert.ErrorIs(t, err, ErrConflictingUniform)
}

func TestReflectRecursiveStruct(t *testing.T) {
	fs := `
struct A { B b; };
struct B { A a; };
uniform A u;
`
	_, err := Reflect(passthroughVS, fs)
	assert.ErrorIs(t, err, ErrRecursiveStruct)
}

func TestReflectRejectsSymbolicArraySize(t *testing.T) {
	tests := []struct {
		name string
		fs   string
		want string
	}{
		{"uniform", "const int N = 4;\nuniform float w[N];\n", "w[N]"},
		{"uniform list", "uniform vec3 a, b[COUNT];\n", "b[COUNT]"},
		{"struct member", "struct S { float k[N]; };\nuniform S s;\n", "k[N]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reflect(passthroughVS, tt.fs)
			assert.ErrorIs(t, err, ErrUnsupportedDeclarator)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestReflectBuiltinPrograms(t *testing.T) {
	tests := []struct {
		name  string
		light []string
	}{
		{ProgramForwardAmbient, []string{"R_ambient"}},
		{ProgramForwardDirectional, []string{
			"R_directionalLight.base.color",
			"R_directionalLight.base.intensity",
			"R_directionalLight.direction",
		}},
		{ProgramForwardPoint, []string{
			"R_pointLight.base.color",
			"R_pointLight.base.intensity",
			"R_pointLight.atten.constant",
			"R_pointLight.atten.linear",
			"R_pointLight.atten.exponent",
			"R_pointLight.position",
			"R_pointLight.range",
		}},
		{ProgramForwardSpot, []string{
			"R_spotLight.pointLight.base.color",
			"R_spotLight.pointLight.base.intensity",
			"R_spotLight.pointLight.atten.constant",
			"R_spotLight.pointLight.atten.linear",
			"R_spotLight.pointLight.atten.exponent",
			"R_spotLight.pointLight.position",
			"R_spotLight.pointLight.range",
			"R_spotLight.direction",
			"R_spotLight.cutoff",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := LoadSource(BuiltinFS(), tt.name)
			require.NoError(t, err)

			r, err := Reflect(src.Vertex, src.Fragment)
			require.NoError(t, err)

			assert.Equal(t, []string{"position", "texCoord", "normal", "tangent"}, r.AttributeNames())

			names := uniformNames(r)
			for _, want := range append([]string{"T_model", "T_MVP", "C_eyePos", "diffuse", "dispMap", "dispMapScale", "dispMapBias"}, tt.light...) {
				assert.Contains(t, names, want)
			}
			for _, u := range r.Uniforms {
				assert.NotContains(t, []string{"BaseLight", "Attenuation"}, u.Type, u.Name)
			}
		})
	}
}
