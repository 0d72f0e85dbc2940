// Package query is the Query Model: a normalized AST for an operation
// document (spec §3 "Query entities"), built once by FromDocument and read
// only thereafter by the resolver.
package query

import "go.appointy.com/gqlclientgen/schema"

// OperationKind is one of the three spec-recognized kinds.
type OperationKind string

const (
	Query        OperationKind = "query"
	Mutation     OperationKind = "mutation"
	Subscription OperationKind = "subscription"
)

// Variable is a single declared operation variable.
type Variable struct {
	Name string
	Type schema.FieldType
	// Default is the opaque literal source text of the default value, if
	// any was given (spec §4.7 "Default values are preserved ... as opaque
	// literal strings"). Empty string means no default.
	Default string
}

// Operation is a single named query/mutation/subscription (spec requires
// anonymous operations to be rejected before this type is constructed).
type Operation struct {
	Kind      OperationKind
	Name      string
	Variables []Variable
	Root      Selection
}

// Fragment is a named, reusable selection targeting a type condition.
type Fragment struct {
	Name          string
	TypeCondition string
	Root          Selection
}

// SelectionKind discriminates the three selection item shapes (spec §3).
type SelectionKind int

const (
	KindField SelectionKind = iota
	KindFragmentSpread
	KindInlineFragment
)

// Item is one entry of a Selection, in source order. Exactly the fields
// relevant to Kind are populated.
type Item struct {
	Kind SelectionKind

	// KindField
	Alias     string // equals Name when no alias was given
	Name      string
	Arguments map[string]string // opaque literal argument source, keyed by name
	Sub       Selection

	// KindFragmentSpread
	FragmentName string

	// KindInlineFragment
	TypeCondition string
	// Sub is reused for InlineFragment's nested selection too.
}

// ResponseKey is the key this field contributes to the response object:
// the alias when one was given, the field name otherwise (spec §4.4
// "Aliases replace the field name in naming").
func (it Item) ResponseKey() string {
	if it.Alias != "" {
		return it.Alias
	}
	return it.Name
}

// Selection is an ordered list of selection items (spec §3); order is
// preserved end-to-end for deterministic codegen (spec §4.4).
type Selection struct {
	Items []Item
}

// HasTypename reports whether __typename appears directly in sel as a
// KindField Item; a __typename contributed only through a fragment spread or
// inline fragment is not seen.
func (sel Selection) HasTypename() bool {
	for _, it := range sel.Items {
		if it.Kind == KindField && it.Name == "__typename" {
			return true
		}
	}
	return false
}

// Document is the normalized form of one parsed operation document (spec
// §4.2 "A parsed document is normalized into...").
type Document struct {
	Operations map[string]*Operation
	Fragments  map[string]*Fragment
	// OperationOrder preserves declaration order, used when a caller asks
	// to generate every operation in the document (SPEC_FULL "Multiple
	// operations per document").
	OperationOrder []string
}
