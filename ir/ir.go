// Package ir is the normalized, language-agnostic intermediate
// representation the Selection Resolver and Variables Resolver produce and
// IR Assembly gathers into a single Module (spec §4.4, §4.8). An emitter
// (outside this spec) renders a Module to source text; nothing in this
// package knows what that target language is.
package ir

// TypeRef is the recursive IR shape mirroring schema.FieldType, but
// referencing IR-level names (which may be schema scalar/enum/input-object
// names, or resolver-generated record/sum names) instead of schema entries.
type TypeRef struct {
	Named    string // non-empty iff Optional/List below are both nil
	Optional *TypeRef
	List     *TypeRef
}

func NamedRef(name string) TypeRef       { return TypeRef{Named: name} }
func OptionalRef(inner TypeRef) TypeRef  { return TypeRef{Optional: &inner} }
func ListRef(inner TypeRef) TypeRef      { return TypeRef{List: &inner} }

// FieldIR is one field of a Record.
type FieldIR struct {
	// Name is the response JSON key this field reads (the alias, or the
	// field name when no alias was given).
	Name string
	Type TypeRef
	// Deprecated is non-empty when the deprecation policy is Warn and this
	// field's schema declaration is deprecated; it carries the schema's
	// deprecation reason, or "deprecated" when the schema gives none.
	// Empty when not deprecated, or when the policy is Allow.
	Deprecated string
	// Default is the opaque literal default value text for a variables
	// record field (spec §4.7 "Default values are preserved in the IR as
	// opaque literal strings to be interpreted by the emitter"); empty when
	// the variable declares no default, and unused on response fields.
	Default string
}

// Record is one generated struct-shaped type: a response type, a nested
// selection type, or a variant payload.
type Record struct {
	Name   string
	Fields []FieldIR
}

// Variant is one member of a Sum: either an Object name with a payload
// Record, or an Object name with no payload (spec §4.5/§4.6 "empty
// variants").
type Variant struct {
	TypeName string
	// Payload is nil for an unreferenced/empty variant.
	Payload *Record
}

// Sum is the `on`-discriminated union produced for an interface or union
// selection (spec §4.5/§4.6). Discriminator is always the literal
// "__typename" (spec §9 "Keep the discriminator key literal `__typename`").
type Sum struct {
	Name          string
	Discriminator string
	Variants      []Variant
}

// ScalarDecl/EnumDecl/InputObjectDecl are the referenced-type declarations
// IR Assembly gathers (spec §4.8).
type ScalarDecl struct {
	Name string
}

type EnumDecl struct {
	Name     string
	Variants []string
}

type InputFieldDecl struct {
	Name string
	Type TypeRef
}

type InputObjectDecl struct {
	Name   string
	Fields []InputFieldDecl
}

// Module is the complete, self-contained output of one Generate call for
// one operation (spec §4.8 "Module IR").
type Module struct {
	OperationName string
	// OperationKind is the literal "query"/"mutation"/"subscription"
	// (spec §8 S6: "the operation kind ... is recorded in the Module IR").
	OperationKind string

	// ModuleName labels the emitted grouping namespace (spec §6
	// module_name), defaulting to the snake_case form of OperationName.
	ModuleName string

	Scalars      []ScalarDecl
	Enums        []EnumDecl
	InputObjects []InputObjectDecl

	// Records and Sums are every type the response selection produced,
	// with the variables record appended last to Records, in the order
	// they were first emitted (deterministic: invariant 1 in spec §8).
	Records []Record
	Sums    []Sum

	// ResponseRecordName names the top-level response record within
	// Records (spec §6 struct_name, defaulting to the operation name).
	ResponseRecordName string

	// VariablesRecordName names the top-level variables record, always
	// present even if it has zero fields.
	VariablesRecordName string

	// AdditionalDerives is the opaque, emitter-interpreted derive list
	// (spec §6 additional_derives), applied uniformly to every Record and
	// Sum this Module declares (SPEC_FULL "SUPPLEMENTED FEATURES" #3).
	AdditionalDerives []string

	// ModuleVisibility is an opaque, emitter-interpreted visibility label
	// (spec §6 module_visibility).
	ModuleVisibility string
}
