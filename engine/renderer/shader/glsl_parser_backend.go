package shader

import "strings"

// stripComments removes both single-line (//) and block (/* */) comments from GLSL source.
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with all comments removed
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from GLSL source so they
// do not interfere with struct and declaration parsing
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with line comments removed
func stripLineComments(source string) string {
	var sb strings.Builder
	lines := strings.SplitSeq(source, "\n")
	for line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from GLSL source. GLSL block
// comments do not nest, so the first */ closes the comment. Newlines inside a comment
// are kept so line-anchored patterns still see line starts.
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with block comments removed
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if !inComment && source[i] == '/' && source[i+1] == '*' {
				inComment = true
				i += 2
				continue
			}
			if inComment && source[i] == '*' && source[i+1] == '/' {
				inComment = false
				i += 2
				continue
			}
		}
		if !inComment || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}
