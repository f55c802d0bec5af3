package shader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxStructDepth bounds struct flattening. Real programs nest two or three levels.
const maxStructDepth = 16

var (
	// ErrRecursiveStruct is returned when a struct contains itself, directly or indirectly.
	ErrRecursiveStruct = errors.New("shader: recursive struct")

	// ErrConflictingUniform is returned when two stages declare the same uniform with
	// different types.
	ErrConflictingUniform = errors.New("shader: conflicting uniform declarations")

	// ErrUnsupportedDeclarator is returned when a declaration cannot be reflected, such
	// as an array sized by a named constant.
	ErrUnsupportedDeclarator = errors.New("shader: unsupported declarator")
)

// Attribute is a vertex input and the slot it is bound to.
type Attribute struct {
	Name string
	Type string
	Slot int
}

// Field is one member of a reflected struct.
type Field struct {
	Name     string
	Type     string
	ArrayLen int
}

// UniformEntry is one leaf of the uniform table. A struct-typed uniform never appears
// itself; each primitive member is listed with its dotted path instead.
type UniformEntry struct {
	// Name is the full GPU-visible name, e.g. "R_pointLight.base.color".
	Name string
	// Type is the leaf's declared primitive type, e.g. "vec3".
	Type string
	// Root is the declared uniform the leaf belongs to, e.g. "R_pointLight".
	Root string
	// RootType is the declared type of Root, e.g. "PointLight". Equals Type for
	// uniforms that are not structs.
	RootType string
	// Path holds the member names between Root and the leaf, e.g. ["base", "color"].
	// Array elements appear as "name[i]".
	Path []string
}

// Reflection is the interface of a program recovered from its source text.
type Reflection struct {
	// Attributes are the vertex inputs in slot order.
	Attributes []Attribute
	// Uniforms are the flattened uniform leaves in declaration order, vertex stage first.
	Uniforms []UniformEntry
	// Structs maps every struct name declared in either stage to its members.
	Structs map[string][]Field
}

// AttributeNames returns the attribute names in slot order.
func (r Reflection) AttributeNames() []string {
	names := make([]string, len(r.Attributes))
	for i, a := range r.Attributes {
		names[i] = a.Name
	}
	return names
}

// Uniform returns the leaf entry with the given full name.
func (r Reflection) Uniform(name string) (UniformEntry, bool) {
	for _, u := range r.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return UniformEntry{}, false
}

// Reflect scans vertex and fragment stage source for struct, uniform and attribute
// declarations. Sources must already have includes expanded.
//
// Structs are discovered first. Every uniform whose type names a struct is then
// flattened recursively into one entry per primitive member. Attributes are taken from
// the vertex stage only and assigned slots 0, 1, 2, ... in first-seen order. A uniform
// declared in both stages is listed once.
//
// Parameters:
//   - vertexSrc: vertex stage source
//   - fragmentSrc: fragment stage source
//
// Returns:
//   - Reflection: the recovered interface
//   - error: ErrRecursiveStruct, ErrConflictingUniform or ErrUnsupportedDeclarator
func Reflect(vertexSrc, fragmentSrc string) (Reflection, error) {
	r := Reflection{Structs: make(map[string][]Field)}

	vertex := stripComments(vertexSrc)
	fragment := stripComments(fragmentSrc)

	attributes, err := parseAttributeDecls(vertex)
	if err != nil {
		return Reflection{}, err
	}
	for _, decl := range attributes {
		r.Attributes = append(r.Attributes, Attribute{
			Name: decl.name,
			Type: decl.typeName,
			Slot: len(r.Attributes),
		})
	}

	seen := make(map[string]string)
	for _, stage := range []string{vertex, fragment} {
		structs := make(map[string][]Field)
		parsedStructs, err := parseStructBlocks(stage)
		if err != nil {
			return Reflection{}, err
		}
		for _, ps := range parsedStructs {
			fields := make([]Field, len(ps.fields))
			for i, f := range ps.fields {
				fields[i] = Field{Name: f.name, Type: f.typeName, ArrayLen: f.arrayLen}
			}
			structs[ps.name] = fields
			r.Structs[ps.name] = fields
		}

		uniforms, err := parseUniformDecls(stage)
		if err != nil {
			return Reflection{}, err
		}
		for _, decl := range uniforms {
			if prev, ok := seen[decl.name]; ok {
				if prev != decl.typeName {
					return Reflection{}, fmt.Errorf("%w: %s declared as %s and %s", ErrConflictingUniform, decl.name, prev, decl.typeName)
				}
				continue
			}
			seen[decl.name] = decl.typeName

			root := UniformEntry{Root: decl.name, RootType: decl.typeName}
			leaves, err := flatten(root, decl.name, decl.typeName, decl.arrayLen, nil, structs, nil)
			if err != nil {
				return Reflection{}, err
			}
			r.Uniforms = append(r.Uniforms, leaves...)
		}
	}

	return r, nil
}

// flatten expands one declarator into its primitive leaves.
//
// Parameters:
//   - root: the entry carrying Root and RootType for every produced leaf
//   - name: the full name so far
//   - typeName: the declared type of name
//   - arrayLen: element count, or 0 for a non-array
//   - path: member names between the root and name
//   - structs: struct table of the declaring stage
//   - stack: struct types currently being expanded, for cycle detection
//
// Returns:
//   - []UniformEntry: the leaves
//   - error: ErrRecursiveStruct if a struct contains itself
func flatten(root UniformEntry, name, typeName string, arrayLen int, path []string, structs map[string][]Field, stack []string) ([]UniformEntry, error) {
	if arrayLen > 0 {
		var out []UniformEntry
		for i := 0; i < arrayLen; i++ {
			elem := name + "[" + strconv.Itoa(i) + "]"
			elemPath := path
			if len(path) > 0 {
				elemPath = append(append([]string(nil), path[:len(path)-1]...), path[len(path)-1]+"["+strconv.Itoa(i)+"]")
			}
			leaves, err := flatten(root, elem, typeName, 0, elemPath, structs, stack)
			if err != nil {
				return nil, err
			}
			out = append(out, leaves...)
		}
		return out, nil
	}

	fields, isStruct := structs[typeName]
	if !isStruct {
		leaf := root
		leaf.Name = name
		leaf.Type = typeName
		leaf.Path = append([]string(nil), path...)
		return []UniformEntry{leaf}, nil
	}

	for _, s := range stack {
		if s == typeName {
			return nil, fmt.Errorf("%w: %s -> %s", ErrRecursiveStruct, strings.Join(stack, " -> "), typeName)
		}
	}
	if len(stack) >= maxStructDepth {
		return nil, fmt.Errorf("%w: %s nests deeper than %d", ErrRecursiveStruct, root.Root, maxStructDepth)
	}
	stack = append(stack, typeName)

	var out []UniformEntry
	for _, f := range fields {
		leaves, err := flatten(root, name+"."+f.Name, f.Type, f.ArrayLen, append(append([]string(nil), path...), f.Name), structs, stack)
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
	}
	return out, nil
}
