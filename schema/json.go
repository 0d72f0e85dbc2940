package schema

import (
	"encoding/json"
	"fmt"
)

// The structs below mirror the canonical GraphQL introspection response
// shape (the `__schema` query every spec-compliant server answers), the
// same shape the teacher's introspection package emits from the opposite
// direction (a live graphql.Schema → JSON, via registerType/registerField
// switching on graphql.Object/Interface/Union/Scalar/Enum/InputObject/
// List/NonNull). FromJSON walks the same type kinds back into a Model.

type introspectionResult struct {
	Schema introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *introspectionNamed `json:"queryType"`
	MutationType     *introspectionNamed `json:"mutationType"`
	SubscriptionType *introspectionNamed `json:"subscriptionType"`
	Types            []introspectionType `json:"types"`
}

type introspectionNamed struct {
	Name string `json:"name"`
}

type introspectionType struct {
	Kind          string                `json:"kind"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Fields        []introspectionField  `json:"fields"`
	InputFields   []introspectionField  `json:"inputFields"`
	Interfaces    []introspectionNamed  `json:"interfaces"`
	PossibleTypes []introspectionNamed  `json:"possibleTypes"`
	EnumValues    []introspectionEnumValue `json:"enumValues"`
}

type introspectionField struct {
	Name              string            `json:"name"`
	Type              introspectionTypeRef `json:"type"`
	IsDeprecated      bool              `json:"isDeprecated"`
	DeprecationReason string            `json:"deprecationReason"`
}

type introspectionEnumValue struct {
	Name string `json:"name"`
}

type introspectionTypeRef struct {
	Kind   string                 `json:"kind"`
	Name   string                 `json:"name"`
	OfType *introspectionTypeRef `json:"ofType"`
}

// toFieldType recursively unwraps a TypeRef the way registerType's `ofType`
// FieldFunc unwraps graphql.List/graphql.NonNull in the teacher, except run
// in reverse: JSON → FieldType instead of graphql.Type → JSON. Every
// reference is nullable (wrapped in Optional) unless a NON_NULL layer says
// otherwise, matching spec §3.
func toFieldType(ref introspectionTypeRef) (FieldType, error) {
	t, nonNull, err := toFieldTypeInner(ref)
	if err != nil {
		return FieldType{}, err
	}
	if nonNull {
		return t, nil
	}
	return Optional(t), nil
}

// toFieldTypeInner returns the type without its outermost nullability
// wrapper applied, plus whether that outermost layer was NON_NULL.
func toFieldTypeInner(ref introspectionTypeRef) (FieldType, bool, error) {
	switch ref.Kind {
	case "NON_NULL":
		if ref.OfType == nil {
			return FieldType{}, false, fmt.Errorf("NON_NULL type ref missing ofType")
		}
		inner, _, err := toFieldTypeInner(*ref.OfType)
		if err != nil {
			return FieldType{}, false, err
		}
		return inner, true, nil
	case "LIST":
		if ref.OfType == nil {
			return FieldType{}, false, fmt.Errorf("LIST type ref missing ofType")
		}
		inner, err := toFieldType(*ref.OfType)
		if err != nil {
			return FieldType{}, false, err
		}
		return List(inner), false, nil
	default:
		if ref.Name == "" {
			return FieldType{}, false, fmt.Errorf("named type ref missing name")
		}
		return Named(ref.Name), false, nil
	}
}

// FromJSON loads a Model from a canonical GraphQL introspection JSON
// response (spec §6 "JSON introspection result"). It is the external Loader
// interface's JSON-shaped implementation.
func FromJSON(data []byte) (*Model, error) {
	var result introspectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errSchema("invalid introspection JSON: %v", err)
	}

	m := NewModel()

	// First pass: create every named entity with no cross-references
	// resolved yet, so forward references between types (e.g. Person
	// referencing Organization before Organization is declared) work the
	// same two-phase way spec §9 requires for fragments.
	for _, t := range result.Schema.Types {
		if err := addEmptyEntity(m, t); err != nil {
			return nil, err
		}
	}

	// Second pass: fill in fields/members now that every name resolves.
	for _, t := range result.Schema.Types {
		if err := fillEntity(m, t); err != nil {
			return nil, err
		}
	}

	ensureBuiltinScalars(m)

	var query, mutation, subscription string
	if result.Schema.QueryType != nil {
		query = result.Schema.QueryType.Name
	}
	if result.Schema.MutationType != nil {
		mutation = result.Schema.MutationType.Name
	}
	if result.Schema.SubscriptionType != nil {
		subscription = result.Schema.SubscriptionType.Name
	}
	if query == "" {
		return nil, errSchema("introspection result has no query root type")
	}
	m.SetRootTypes(query, mutation, subscription)

	return m, nil
}

func addEmptyEntity(m *Model, t introspectionType) error {
	switch t.Kind {
	case "SCALAR":
		builtin := false
		for _, name := range builtinScalars {
			if name == t.Name {
				builtin = true
			}
		}
		return m.AddScalar(&Scalar{Name: t.Name, Builtin: builtin, Description: t.Description})
	case "ENUM":
		return m.AddEnum(&Enum{Name: t.Name, Description: t.Description})
	case "OBJECT":
		return m.AddObject(&Object{Name: t.Name})
	case "INTERFACE":
		return m.AddInterface(&Interface{Name: t.Name})
	case "UNION":
		return m.AddUnion(&Union{Name: t.Name})
	case "INPUT_OBJECT":
		return m.AddInputObject(&InputObject{Name: t.Name})
	default:
		return errSchema("unknown introspection type kind %q for %q", t.Kind, t.Name)
	}
}

func fillEntity(m *Model, t introspectionType) error {
	entry, ok := m.Lookup(t.Name)
	if !ok {
		return errSchema("dangling type reference %q", t.Name)
	}
	switch entry.Kind {
	case KindEnum:
		for _, v := range t.EnumValues {
			entry.Enum.Variants = append(entry.Enum.Variants, v.Name)
		}
	case KindObject:
		fields, err := toFields(t.Fields)
		if err != nil {
			return err
		}
		entry.Object.Fields = fields
	case KindInterface:
		fields, err := toFields(t.Fields)
		if err != nil {
			return err
		}
		entry.Interface.Fields = fields
		for _, p := range t.PossibleTypes {
			entry.Interface.Implementors = append(entry.Interface.Implementors, p.Name)
		}
	case KindUnion:
		for _, p := range t.PossibleTypes {
			entry.Union.Members = append(entry.Union.Members, p.Name)
		}
	case KindInputObject:
		for _, f := range t.InputFields {
			ft, err := toFieldType(f.Type)
			if err != nil {
				return errSchema("input field %s.%s: %v", t.Name, f.Name, err)
			}
			entry.InputObject.Fields = append(entry.InputObject.Fields, InputField{Name: f.Name, Type: ft})
		}
	}
	return nil
}

func toFields(in []introspectionField) ([]Field, error) {
	fields := make([]Field, 0, len(in))
	for _, f := range in {
		ft, err := toFieldType(f.Type)
		if err != nil {
			return nil, errSchema("field %s: %v", f.Name, err)
		}
		fields = append(fields, Field{
			Name:               f.Name,
			Type:               ft,
			Deprecated:         f.IsDeprecated,
			DeprecationReason:  f.DeprecationReason,
		})
	}
	return fields, nil
}
