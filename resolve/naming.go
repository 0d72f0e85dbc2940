package resolve

import "github.com/iancoleman/strcase"

// pathName is the single function spec §9 requires every generated nested
// type name to flow through: PascalCase the segment and concatenate it onto
// prefix. Because strcase.ToCamel is idempotent on already-PascalCase input
// (type condition segments like "Dog" pass through unchanged), the same
// function serves both "concat a field/alias name" and "concat On<Type>"
// call sites without a second naming path.
func pathName(prefix, segment string) string {
	return prefix + strcase.ToCamel(segment)
}

// variantSegment builds the "On<TypeName>" segment spec §4.5 describes for
// an inline-fragment/spread narrowing onto a concrete implementor.
func variantSegment(typeName string) string {
	return "On" + typeName
}
