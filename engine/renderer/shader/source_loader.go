package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Names of the built-in forward rendering programs.
const (
	ProgramForwardAmbient     = "forward-ambient"
	ProgramForwardDirectional = "forward-directional"
	ProgramForwardPoint       = "forward-point"
	ProgramForwardSpot        = "forward-spot"
)

// Stage file extensions appended to a program name by LoadSource.
const (
	VertexExt   = ".vs"
	FragmentExt = ".fs"
)

const includeDirective = "#include"

var (
	// ErrIncludeCycle is returned when an included file transitively includes itself.
	ErrIncludeCycle = errors.New("shader: include cycle")

	// ErrMissingInclude is returned when an #include names a file that cannot be read.
	ErrMissingInclude = errors.New("shader: missing include")
)

//go:embed builtin/*
var builtinFS embed.FS

// BuiltinFS returns the file system holding the built-in forward programs and the
// headers they include.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("shader: builtin sources: %v", err))
	}
	return sub
}

// Source is the include-expanded text of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// LoadSource reads name.vs and name.fs from fsys and expands their includes.
//
// Parameters:
//   - fsys: the file system to read from
//   - name: the program name without extension
//
// Returns:
//   - Source: the expanded stages
//   - error: read failures, ErrMissingInclude or ErrIncludeCycle
func LoadSource(fsys fs.FS, name string) (Source, error) {
	vs, err := ExpandIncludes(fsys, name+VertexExt)
	if err != nil {
		return Source{}, err
	}
	fsrc, err := ExpandIncludes(fsys, name+FragmentExt)
	if err != nil {
		return Source{}, err
	}
	return Source{Name: name, Vertex: vs, Fragment: fsrc}, nil
}

// ExpandIncludes reads file and replaces every `#include "other"` line with the expanded
// contents of other. Include paths are tried relative to the including file first and
// then relative to the root of fsys.
//
// Parameters:
//   - fsys: the file system to read from
//   - file: path of the top-level file
//
// Returns:
//   - string: the expanded source
//   - error: read failures, ErrMissingInclude or ErrIncludeCycle
func ExpandIncludes(fsys fs.FS, file string) (string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return "", fmt.Errorf("shader: read %s: %w", file, err)
	}
	return expand(fsys, file, string(data), []string{file})
}

func expand(fsys fs.FS, file, source string, stack []string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		target, ok, err := parseInclude(line)
		if err != nil {
			return "", fmt.Errorf("%s:%d: %w", file, i+1, err)
		}
		if !ok {
			out = append(out, line)
			continue
		}

		resolved, data, err := readInclude(fsys, file, target)
		if err != nil {
			return "", fmt.Errorf("%s:%d: %w", file, i+1, err)
		}
		for _, s := range stack {
			if s == resolved {
				return "", fmt.Errorf("%w: %s -> %s", ErrIncludeCycle, strings.Join(stack, " -> "), resolved)
			}
		}

		body, err := expand(fsys, resolved, data, append(stack, resolved))
		if err != nil {
			return "", err
		}
		out = append(out, "// "+strings.TrimSpace(line), body)
	}
	return strings.Join(out, "\n"), nil
}

// parseInclude reports whether line is an include directive and returns its target.
func parseInclude(line string) (string, bool, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
	if !ok {
		return "", false, nil
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' {
		return "", false, fmt.Errorf("malformed include %q", strings.TrimSpace(line))
	}
	end := strings.IndexByte(rest[1:], '"')
	if end <= 0 {
		return "", false, fmt.Errorf("malformed include %q", strings.TrimSpace(line))
	}
	return rest[1 : end+1], true, nil
}

func readInclude(fsys fs.FS, from, target string) (string, string, error) {
	candidates := []string{path.Join(path.Dir(from), target)}
	if root := path.Clean(target); root != candidates[0] {
		candidates = append(candidates, root)
	}
	for _, c := range candidates {
		data, err := fs.ReadFile(fsys, c)
		if err == nil {
			return c, string(data), nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrMissingInclude, target)
}
