package shader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandIncludes(t *testing.T) {
	fsys := fstest.MapFS{
		"main.fs":         {Data: []byte("#version 330\n#include \"lib/common.glh\"\nvoid main() {}\n")},
		"lib/common.glh":  {Data: []byte("#include \"helpers.glh\"\nuniform float a;\n")},
		"lib/helpers.glh": {Data: []byte("uniform float b;\n")},
	}

	out, err := ExpandIncludes(fsys, "main.fs")
	require.NoError(t, err)

	assert.Contains(t, out, "uniform float a;")
	assert.Contains(t, out, "uniform float b;")
	assert.Less(t, strings.Index(out, "uniform float b;"), strings.Index(out, "uniform float a;"))
	for _, line := range strings.Split(out, "\n") {
		assert.False(t, strings.HasPrefix(strings.TrimSpace(line), includeDirective), line)
	}
}

func TestExpandIncludesRootFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"programs/main.fs": {Data: []byte("#include \"shared.glh\"\n")},
		"shared.glh":       {Data: []byte("uniform vec3 shared;\n")},
	}

	out, err := ExpandIncludes(fsys, "programs/main.fs")
	require.NoError(t, err)
	assert.Contains(t, out, "uniform vec3 shared;")
}

func TestExpandIncludesCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"a.glh": {Data: []byte("#include \"b.glh\"\n")},
		"b.glh": {Data: []byte("#include \"a.glh\"\n")},
	}

	_, err := ExpandIncludes(fsys, "a.glh")
	assert.ErrorIs(t, err, ErrIncludeCycle)
}

func TestExpandIncludesRepeatedIsNotCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"main.fs": {Data: []byte("#include \"x.glh\"\n#include \"x.glh\"\n")},
		"x.glh":   {Data: []byte("// x\n")},
	}

	_, err := ExpandIncludes(fsys, "main.fs")
	assert.NoError(t, err)
}

func TestExpandIncludesMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"main.fs": {Data: []byte("#include \"nope.glh\"\n")},
	}

	_, err := ExpandIncludes(fsys, "main.fs")
	assert.ErrorIs(t, err, ErrMissingInclude)
	assert.Contains(t, err.Error(), "main.fs:1")
}

func TestExpandIncludesMalformed(t *testing.T) {
	fsys := fstest.MapFS{
		"main.fs": {Data: []byte("#include <nope.glh>\n")},
	}

	_, err := ExpandIncludes(fsys, "main.fs")
	assert.Error(t, err)
}

func TestLoadSourceBuiltins(t *testing.T) {
	for _, name := range []string{ProgramForwardAmbient, ProgramForwardDirectional, ProgramForwardPoint, ProgramForwardSpot} {
		src, err := LoadSource(BuiltinFS(), name)
		require.NoError(t, err, name)

		assert.Equal(t, name, src.Name)
		assert.True(t, strings.HasPrefix(src.Vertex, "#version 330"), name)
		assert.True(t, strings.HasPrefix(src.Fragment, "#version 330"), name)
	}
}

func TestLoadSourceMissingStage(t *testing.T) {
	fsys := fstest.MapFS{
		"only.vs": {Data: []byte("void main() {}\n")},
	}

	_, err := LoadSource(fsys, "only")
	assert.Error(t, err)
}
