package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`\bstruct\s+(\w+)\s*\{([^}]*)\}`)

	// uniformDeclRegex matches a uniform declaration statement and captures the type and
	// the declarator list. Interface blocks (uniform Name { ... }) do not match.
	uniformDeclRegex = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;{]+);`)

	// attributeDeclRegex matches a vertex input declared with the legacy attribute keyword
	// or a global in qualifier, optionally preceded by a layout qualifier
	attributeDeclRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;{(]+);`)

	// declaratorRegex matches one declarator: a name with an optional constant array size
	declaratorRegex = regexp.MustCompile(`^(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)

	// precisionRegex matches a precision qualifier at the start of a struct member
	precisionRegex = regexp.MustCompile(`^(?:lowp|mediump|highp)\s+`)
)

// parseStructBlocks extracts every struct declaration from comment-free GLSL source.
// Members are split on ';' and each may declare several comma-separated names.
//
// Parameters:
//   - source: GLSL source with comments removed
//
// Returns:
//   - []parsedStruct: the structs in source order
//   - error: ErrUnsupportedDeclarator if a member cannot be parsed
func parseStructBlocks(source string) ([]parsedStruct, error) {
	var result []parsedStruct
	for _, match := range structBlockRegex.FindAllStringSubmatch(source, -1) {
		ps := parsedStruct{name: match[1]}
		for _, member := range strings.Split(match[2], ";") {
			member = precisionRegex.ReplaceAllString(strings.TrimSpace(member), "")
			if member == "" {
				continue
			}
			words := strings.Fields(member)
			if len(words) < 2 {
				continue
			}
			decls, err := parseDeclarators(words[0], strings.Join(words[1:], " "))
			if err != nil {
				return nil, fmt.Errorf("struct %s: %w", ps.name, err)
			}
			for _, decl := range decls {
				ps.fields = append(ps.fields, parsedField(decl))
			}
		}
		result = append(result, ps)
	}
	return result, nil
}

// parseUniformDecls extracts every top-level uniform declaration from comment-free
// GLSL source, in source order.
//
// Parameters:
//   - source: GLSL source with comments removed
//
// Returns:
//   - []parsedDecl: one entry per declared name
//   - error: ErrUnsupportedDeclarator if a declarator cannot be parsed
func parseUniformDecls(source string) ([]parsedDecl, error) {
	var result []parsedDecl
	for _, match := range uniformDeclRegex.FindAllStringSubmatch(source, -1) {
		decls, err := parseDeclarators(match[1], match[2])
		if err != nil {
			return nil, fmt.Errorf("uniform: %w", err)
		}
		result = append(result, decls...)
	}
	return result, nil
}

// parseAttributeDecls extracts vertex inputs from comment-free vertex stage source.
// Only declarations at the start of a line are considered, which excludes in
// parameters of function signatures.
//
// Parameters:
//   - source: vertex stage GLSL source with comments removed
//
// Returns:
//   - []parsedDecl: one entry per declared input, in source order
//   - error: ErrUnsupportedDeclarator if a declarator cannot be parsed
func parseAttributeDecls(source string) ([]parsedDecl, error) {
	var result []parsedDecl
	for _, match := range attributeDeclRegex.FindAllStringSubmatch(source, -1) {
		decls, err := parseDeclarators(match[1], match[2])
		if err != nil {
			return nil, fmt.Errorf("attribute: %w", err)
		}
		result = append(result, decls...)
	}
	return result, nil
}

// parseDeclarators splits a comma-separated declarator list such as "a, b[4]" that
// shares the given type. Initializers are ignored. Array sizes must be integer
// literals; a size given by a constant or expression is rejected.
//
// Parameters:
//   - typeName: the shared type
//   - list: the declarator list
//
// Returns:
//   - []parsedDecl: the declared names
//   - error: ErrUnsupportedDeclarator naming the first declarator that cannot be parsed
func parseDeclarators(typeName, list string) ([]parsedDecl, error) {
	var result []parsedDecl
	for _, part := range strings.Split(list, ",") {
		if before, _, ok := strings.Cut(part, "="); ok {
			part = before
		}
		part = strings.TrimSpace(part)
		m := declaratorRegex.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedDeclarator, typeName, part)
		}
		decl := parsedDecl{name: m[1], typeName: typeName}
		if m[2] != "" {
			decl.arrayLen, _ = strconv.Atoi(m[2])
		}
		result = append(result, decl)
	}
	return result, nil
}
