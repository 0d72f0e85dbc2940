package schema

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

// FromSDL loads a Model from a GraphQL SDL document (spec §6 "a GraphQL SDL
// document"), using github.com/graphql-go/graphql's own lexer/parser as the
// "conforming third-party parser" spec §1 assumes the generator has
// available. Only the type-system definitions are consulted; executable
// definitions in the same document (there should be none in a schema file)
// are ignored.
func FromSDL(name, doc string) (*Model, error) {
	astDoc, err := parser.Parse(parser.ParseParams{
		Source: &source.Source{Body: []byte(doc), Name: name},
	})
	if err != nil {
		return nil, errSchema("parsing SDL %q: %v", name, err)
	}

	m := NewModel()

	var schemaDef *ast.SchemaDefinition
	for _, def := range astDoc.Definitions {
		if err := addEmptySDLEntity(m, def); err != nil {
			return nil, err
		}
		if sd, ok := def.(*ast.SchemaDefinition); ok {
			schemaDef = sd
		}
	}
	for _, def := range astDoc.Definitions {
		if err := fillSDLEntity(m, def); err != nil {
			return nil, err
		}
	}

	ensureBuiltinScalars(m)

	query, mutation, subscription := rootTypesFromSchemaDef(schemaDef)
	if query == "" {
		// No explicit `schema { ... }` block: fall back to the
		// conventional root type names, the way every SDL-first tool does.
		if _, ok := m.Lookup("Query"); ok {
			query = "Query"
		}
	}
	if mutation == "" {
		if _, ok := m.Lookup("Mutation"); ok {
			mutation = "Mutation"
		}
	}
	if subscription == "" {
		if _, ok := m.Lookup("Subscription"); ok {
			subscription = "Subscription"
		}
	}
	if query == "" {
		return nil, errSchema("SDL document %q declares no query root type", name)
	}
	m.SetRootTypes(query, mutation, subscription)

	return m, nil
}

func rootTypesFromSchemaDef(sd *ast.SchemaDefinition) (query, mutation, subscription string) {
	if sd == nil {
		return "", "", ""
	}
	for _, ot := range sd.OperationTypes {
		if ot.Type == nil || ot.Type.Name == nil {
			continue
		}
		switch ot.Operation {
		case "query":
			query = ot.Type.Name.Value
		case "mutation":
			mutation = ot.Type.Name.Value
		case "subscription":
			subscription = ot.Type.Name.Value
		}
	}
	return query, mutation, subscription
}

func addEmptySDLEntity(m *Model, def ast.Node) error {
	switch d := def.(type) {
	case *ast.ObjectDefinition:
		return m.AddObject(&Object{Name: d.Name.Value})
	case *ast.InterfaceDefinition:
		return m.AddInterface(&Interface{Name: d.Name.Value})
	case *ast.UnionDefinition:
		return m.AddUnion(&Union{Name: d.Name.Value})
	case *ast.ScalarDefinition:
		return m.AddScalar(&Scalar{Name: d.Name.Value, Description: descriptionOf(d.Description)})
	case *ast.EnumDefinition:
		return m.AddEnum(&Enum{Name: d.Name.Value, Description: descriptionOf(d.Description)})
	case *ast.InputObjectDefinition:
		return m.AddInputObject(&InputObject{Name: d.Name.Value})
	default:
		// SchemaDefinition, DirectiveDefinition, executable definitions:
		// nothing to register.
		return nil
	}
}

func fillSDLEntity(m *Model, def ast.Node) error {
	switch d := def.(type) {
	case *ast.ObjectDefinition:
		entry, _ := m.Lookup(d.Name.Value)
		fields, err := sdlFields(d.Fields)
		if err != nil {
			return err
		}
		entry.Object.Fields = fields
		for _, iface := range d.Interfaces {
			if impl, ok := m.Lookup(iface.Name.Value); ok && impl.Kind == KindInterface {
				impl.Interface.Implementors = append(impl.Interface.Implementors, d.Name.Value)
			}
		}
	case *ast.InterfaceDefinition:
		entry, _ := m.Lookup(d.Name.Value)
		fields, err := sdlFields(d.Fields)
		if err != nil {
			return err
		}
		entry.Interface.Fields = fields
	case *ast.UnionDefinition:
		entry, _ := m.Lookup(d.Name.Value)
		for _, t := range d.Types {
			entry.Union.Members = append(entry.Union.Members, t.Name.Value)
		}
	case *ast.EnumDefinition:
		entry, _ := m.Lookup(d.Name.Value)
		for _, v := range d.Values {
			entry.Enum.Variants = append(entry.Enum.Variants, v.Name.Value)
		}
	case *ast.InputObjectDefinition:
		entry, _ := m.Lookup(d.Name.Value)
		for _, f := range d.Fields {
			ft, err := fromASTType(f.Type)
			if err != nil {
				return errSchema("input field %s.%s: %v", d.Name.Value, f.Name.Value, err)
			}
			entry.InputObject.Fields = append(entry.InputObject.Fields, InputField{Name: f.Name.Value, Type: ft})
		}
	}
	return nil
}

func sdlFields(in []*ast.FieldDefinition) ([]Field, error) {
	fields := make([]Field, 0, len(in))
	for _, f := range in {
		ft, err := fromASTType(f.Type)
		if err != nil {
			return nil, errSchema("field %s: %v", f.Name.Value, err)
		}
		deprecated, reason := deprecationFromDirectives(f.Directives)
		fields = append(fields, Field{
			Name:              f.Name.Value,
			Type:              ft,
			Deprecated:        deprecated,
			DeprecationReason: reason,
		})
	}
	return fields, nil
}

// fromASTType mirrors toFieldType/toFieldTypeInner in json.go but walks the
// parser's ast.Type (Named/List/NonNull) instead of an introspection
// TypeRef — the same unwrap, two different source shapes.
func fromASTType(t ast.Type) (FieldType, error) {
	ft, nonNull, err := fromASTTypeInner(t)
	if err != nil {
		return FieldType{}, err
	}
	if nonNull {
		return ft, nil
	}
	return Optional(ft), nil
}

func fromASTTypeInner(t ast.Type) (FieldType, bool, error) {
	switch n := t.(type) {
	case *ast.NonNull:
		inner, _, err := fromASTTypeInner(n.Type)
		return inner, true, err
	case *ast.List:
		inner, err := fromASTType(n.Type)
		if err != nil {
			return FieldType{}, false, err
		}
		return List(inner), false, nil
	case *ast.Named:
		return Named(n.Name.Value), false, nil
	default:
		return FieldType{}, false, errSchema("unsupported SDL type node %T", t)
	}
}

func deprecationFromDirectives(directives []*ast.Directive) (bool, string) {
	for _, d := range directives {
		if d.Name == nil || d.Name.Value != "deprecated" {
			continue
		}
		reason := ""
		for _, arg := range d.Arguments {
			if arg.Name != nil && arg.Name.Value == "reason" {
				if sv, ok := arg.Value.(*ast.StringValue); ok {
					reason = sv.Value
				}
			}
		}
		return true, reason
	}
	return false, ""
}

func descriptionOf(desc *ast.StringValue) string {
	if desc == nil {
		return ""
	}
	return desc.Value
}
