package shader

// parsedField represents a single member extracted from a GLSL struct block during parsing.
// Array members carry their element count in arrayLen; scalars have arrayLen 0.
type parsedField struct {
	name     string
	typeName string
	arrayLen int
}

// parsedStruct represents a GLSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// parsedDecl is a top-level uniform or attribute declaration. One source line may
// declare several names sharing a type, so each name becomes its own parsedDecl.
type parsedDecl struct {
	name     string
	typeName string
	arrayLen int
}
