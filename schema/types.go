// Package schema is the Schema Model: a normalized, read-only-after-build
// in-memory form of a GraphQL schema (spec §3, §4.1).
//
// The type graph is deliberately flat: Object/Interface/Union entities refer
// to each other by name only (never by embedded pointer), and FieldType
// resolves through the central Model rather than holding a direct reference.
// This is what keeps Person.friends: [Person] representable without the Go
// value graph itself being cyclic (spec §9 "Cyclic type graphs"), the same
// discipline the teacher's graphql.Schema applies by storing Type via
// interface values looked up by name rather than via struct embedding.
package schema

import (
	"fmt"
	"sort"
)

// Scalar is a leaf value. Builtin is true for the five spec scalars
// (String, Int, Float, Boolean, ID); custom scalars carry Builtin=false.
type Scalar struct {
	Name        string
	Builtin     bool
	Description string

	referenced bool
}

// Enum is a leaf value with an ordered, named variant set.
type Enum struct {
	Name        string
	Variants    []string
	Description string

	referenced bool
}

// Field is a single field declaration on an Object or Interface.
type Field struct {
	Name string
	Type FieldType

	Deprecated bool
	// DeprecationReason is only meaningful when Deprecated is true; it may
	// still be empty (deprecated with no reason given).
	DeprecationReason string
}

// Object is a concrete GraphQL object type.
type Object struct {
	Name   string
	Fields []Field

	referenced bool
}

// FieldByName returns the field named n, or (Field{}, false).
func (o *Object) FieldByName(n string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == n {
			return f, true
		}
	}
	return Field{}, false
}

// Interface is an abstract type with its own declared fields, plus the set
// of concrete Object names that implement it.
type Interface struct {
	Name         string
	Fields       []Field
	Implementors []string // Object names, schema declaration order

	referenced bool
}

// FieldByName returns the interface's own field named n, or (Field{}, false).
// Variant-specific fields are not visible here; they require an inline
// fragment (spec §3 "Field selections... on interfaces, only the
// interface's own fields").
func (i *Interface) FieldByName(n string) (Field, bool) {
	for _, f := range i.Fields {
		if f.Name == n {
			return f, true
		}
	}
	return Field{}, false
}

// Union is an abstract type with no declared fields, just a member set.
type Union struct {
	Name    string
	Members []string // Object names, schema declaration order

	referenced bool
}

// InputField is a single field of an InputObject.
type InputField struct {
	Name string
	Type FieldType
}

// InputObject is a GraphQL input type, used only for variables (spec §4.7).
type InputObject struct {
	Name   string
	Fields []InputField

	referenced bool
}

// FieldType is the recursive, algebraic description of a type reference:
// exactly one of Named, Optional(inner), or List(inner). By GraphQL
// semantics a bare reference is nullable; Optional is the default wrapper a
// loader must apply unless the source type carried `!` (spec §3).
type FieldType struct {
	kind fieldTypeKind
	name string       // valid iff kind == kindNamed
	elem *FieldType    // valid iff kind == kindOptional || kind == kindList
}

type fieldTypeKind int

const (
	kindNamed fieldTypeKind = iota
	kindOptional
	kindList
)

// Named constructs a FieldType referencing the schema type named n.
func Named(n string) FieldType { return FieldType{kind: kindNamed, name: n} }

// Optional wraps inner in one nullable layer.
func Optional(inner FieldType) FieldType { return FieldType{kind: kindOptional, elem: &inner} }

// List wraps inner in one list layer.
func List(inner FieldType) FieldType { return FieldType{kind: kindList, elem: &inner} }

// NonNull strips one Optional layer, per GraphQL `!` semantics. If t is not
// currently Optional (e.g. it is already non-null, or a bare Named/List with
// no wrapper — which this Model always represents as Optional by default),
// NonNull is a no-op, mirroring the spec's "`!` strips one Optional layer".
func NonNull(t FieldType) FieldType {
	if t.kind == kindOptional {
		return *t.elem
	}
	return t
}

func (t FieldType) IsNamed() bool    { return t.kind == kindNamed }
func (t FieldType) IsOptional() bool { return t.kind == kindOptional }
func (t FieldType) IsList() bool     { return t.kind == kindList }

// NamedType returns the leaf type name and true if t is a Named type.
func (t FieldType) NamedType() (string, bool) {
	if t.kind == kindNamed {
		return t.name, true
	}
	return "", false
}

// Elem returns the wrapped type for Optional/List, or t itself for Named.
func (t FieldType) Elem() FieldType {
	if t.elem != nil {
		return *t.elem
	}
	return t
}

func (t FieldType) String() string {
	switch t.kind {
	case kindNamed:
		return t.name
	case kindOptional:
		return t.elem.String() + "?"
	case kindList:
		return "[" + t.elem.String() + "]"
	default:
		return "<invalid>"
	}
}

// Kind enumerates the closed set of Schema entity kinds.
type Kind int

const (
	KindScalar Kind = iota
	KindEnum
	KindObject
	KindInterface
	KindUnion
	KindInputObject
)

// Entry is the result of a Model lookup: exactly one of the pointer fields
// is non-nil, selected by Kind.
type Entry struct {
	Kind        Kind
	Scalar      *Scalar
	Enum        *Enum
	Object      *Object
	Interface   *Interface
	Union       *Union
	InputObject *InputObject
}

// Model is the Schema Model: lookup by type name, plus the implements
// predicate (spec §4.1). It is built once by a Loader and is read-only
// thereafter except for the `referenced` marks (spec §3 "Lifecycle").
type Model struct {
	entries map[string]Entry
	// queryType, mutationType, subscriptionType name the three root
	// operation types, when declared.
	queryType, mutationType, subscriptionType string

	// scalarHints overrides/extends defaultScalarHints on a per-Model
	// basis (see scalarhints.go). Never consulted during resolution.
	scalarHints map[string]ScalarHint
}

// NewModel constructs an empty Model. Loaders populate it via the Add*
// methods, then callers use it read-only.
func NewModel() *Model {
	return &Model{entries: make(map[string]Entry)}
}

func (m *Model) add(name string, e Entry) error {
	if _, exists := m.entries[name]; exists {
		return fmt.Errorf("duplicate type definition %q", name)
	}
	m.entries[name] = e
	return nil
}

func (m *Model) AddScalar(s *Scalar) error      { return m.add(s.Name, Entry{Kind: KindScalar, Scalar: s}) }
func (m *Model) AddEnum(e *Enum) error          { return m.add(e.Name, Entry{Kind: KindEnum, Enum: e}) }
func (m *Model) AddObject(o *Object) error      { return m.add(o.Name, Entry{Kind: KindObject, Object: o}) }
func (m *Model) AddInterface(i *Interface) error {
	return m.add(i.Name, Entry{Kind: KindInterface, Interface: i})
}
func (m *Model) AddUnion(u *Union) error { return m.add(u.Name, Entry{Kind: KindUnion, Union: u}) }
func (m *Model) AddInputObject(io *InputObject) error {
	return m.add(io.Name, Entry{Kind: KindInputObject, InputObject: io})
}

// SetRootTypes records the names of the query/mutation/subscription root
// object types. Either of mutation/subscription may be empty.
func (m *Model) SetRootTypes(query, mutation, subscription string) {
	m.queryType, m.mutationType, m.subscriptionType = query, mutation, subscription
}

func (m *Model) RootType(kind string) (string, bool) {
	switch kind {
	case "query":
		return m.queryType, m.queryType != ""
	case "mutation":
		return m.mutationType, m.mutationType != ""
	case "subscription":
		return m.subscriptionType, m.subscriptionType != ""
	default:
		return "", false
	}
}

// Lookup returns the Entry for name, or (Entry{}, false) if name is not a
// known type — the UnknownTypeError / SchemaError case at the boundary.
func (m *Model) Lookup(name string) (Entry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Implements reports whether the object named objectName implements the
// interface named interfaceName (spec §4.1 "implements(object, interface)").
func (m *Model) Implements(objectName, interfaceName string) bool {
	iface, ok := m.entries[interfaceName]
	if !ok || iface.Kind != KindInterface {
		return false
	}
	for _, name := range iface.Interface.Implementors {
		if name == objectName {
			return true
		}
	}
	return false
}

// MarkReferenced sets the `referenced` flag on the entity named name, the
// side effect the Selection Resolver performs on every type it visits (spec
// §3 "Lifecycle and ownership"). Unknown names are silently ignored — the
// resolver only calls this after a successful Lookup.
func (m *Model) MarkReferenced(name string) {
	e, ok := m.entries[name]
	if !ok {
		return
	}
	switch e.Kind {
	case KindScalar:
		e.Scalar.referenced = true
	case KindEnum:
		e.Enum.referenced = true
	case KindObject:
		e.Object.referenced = true
	case KindInterface:
		e.Interface.referenced = true
	case KindUnion:
		e.Union.referenced = true
	case KindInputObject:
		e.InputObject.referenced = true
	}
}

// Referenced reports whether the entity named name has been marked
// referenced by a prior resolution pass.
func (m *Model) Referenced(name string) bool {
	e, ok := m.entries[name]
	if !ok {
		return false
	}
	switch e.Kind {
	case KindScalar:
		return e.Scalar.referenced
	case KindEnum:
		return e.Enum.referenced
	case KindObject:
		return e.Object.referenced
	case KindInterface:
		return e.Interface.referenced
	case KindUnion:
		return e.Union.referenced
	case KindInputObject:
		return e.InputObject.referenced
	}
	return false
}

// ReferencedNames returns the names of every referenced entity of the given
// Kind, in a deterministic (lexicographic) order — the ordering spec §4.4
// requires whenever the resolver must sort rather than preserve source
// order.
func (m *Model) ReferencedNames(kind Kind) []string {
	var names []string
	for name, e := range m.entries {
		if e.Kind != kind {
			continue
		}
		if m.Referenced(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ResetReferences clears every `referenced` mark. Spec §5 requires callers
// reusing a Model across multiple operations to either clone it per
// operation or reset marks between runs; this implements the latter.
func (m *Model) ResetReferences() {
	for name, e := range m.entries {
		switch e.Kind {
		case KindScalar:
			e.Scalar.referenced = false
		case KindEnum:
			e.Enum.referenced = false
		case KindObject:
			e.Object.referenced = false
		case KindInterface:
			e.Interface.referenced = false
		case KindUnion:
			e.Union.referenced = false
		case KindInputObject:
			e.InputObject.referenced = false
		}
		m.entries[name] = e
	}
}
