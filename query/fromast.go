package query

import (
	"fmt"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"

	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/schema"
)

// Parse parses raw GraphQL operation document text with
// github.com/graphql-go/graphql's parser (the conforming third-party parser
// spec §1 assumes exists) and normalizes the result into a Document.
func Parse(name, doc string) (*Document, error) {
	astDoc, err := parser.Parse(parser.ParseParams{
		Source: &source.Source{Body: []byte(doc), Name: name},
	})
	if err != nil {
		return nil, jerrors.Namedf(jerrors.QueryParseError, name, nil, "%v", err)
	}
	return FromDocument(astDoc)
}

// FromDocument normalizes an already-parsed *ast.Document into the Query
// Model (spec §4.2). Anonymous operations and duplicate names within a kind
// are rejected here, per spec.
func FromDocument(astDoc *ast.Document) (*Document, error) {
	doc := &Document{
		Operations: make(map[string]*Operation),
		Fragments:  make(map[string]*Fragment),
	}

	// Two-phase handling (spec §9): collect every fragment definition
	// first, so operations (and fragments themselves) can spread fragments
	// defined later in the document.
	for _, def := range astDoc.Definitions {
		if fd, ok := def.(*ast.FragmentDefinition); ok {
			name := fd.Name.Value
			if _, exists := doc.Fragments[name]; exists {
				return nil, jerrors.Namedf(jerrors.QueryParseError, name, nil, "duplicate fragment %q", name)
			}
			frag := &Fragment{
				Name:          name,
				TypeCondition: fd.TypeCondition.Name.Value,
				Root:          fromSelectionSet(fd.SelectionSet),
			}
			doc.Fragments[name] = frag
		}
	}

	for _, def := range astDoc.Definitions {
		od, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if od.Name == nil || od.Name.Value == "" {
			return nil, jerrors.New(jerrors.QueryParseError, "anonymous operations are not supported", nil)
		}
		name := od.Name.Value
		if _, exists := doc.Operations[name]; exists {
			return nil, jerrors.Namedf(jerrors.QueryParseError, name, nil, "duplicate operation %q", name)
		}

		kind, err := operationKind(od.Operation)
		if err != nil {
			return nil, jerrors.Namedf(jerrors.QueryParseError, name, nil, "%v", err)
		}

		vars, err := fromVariableDefinitions(od.VariableDefinitions)
		if err != nil {
			return nil, jerrors.Namedf(jerrors.QueryParseError, name, nil, "%v", err)
		}

		op := &Operation{
			Kind:      kind,
			Name:      name,
			Variables: vars,
			Root:      fromSelectionSet(od.SelectionSet),
		}
		doc.Operations[name] = op
		doc.OperationOrder = append(doc.OperationOrder, name)
	}

	if err := CheckCycles(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func operationKind(s string) (OperationKind, error) {
	switch s {
	case "query", "":
		return Query, nil
	case "mutation":
		return Mutation, nil
	case "subscription":
		return Subscription, nil
	default:
		return "", fmt.Errorf("unknown operation kind %q", s)
	}
}

func fromVariableDefinitions(defs []*ast.VariableDefinition) ([]Variable, error) {
	vars := make([]Variable, 0, len(defs))
	for _, d := range defs {
		ft, err := fromQueryASTType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", d.Variable.Name.Value, err)
		}
		v := Variable{Name: d.Variable.Name.Value, Type: ft}
		if d.DefaultValue != nil {
			v.Default = valueToString(d.DefaultValue)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// fromQueryASTType mirrors schema.fromASTType; duplicated rather than
// shared because the Query Model must not import parser internals beyond
// what it needs to build schema.FieldType values, and schema's version is
// unexported.
func fromQueryASTType(t ast.Type) (schema.FieldType, error) {
	ft, nonNull, err := fromQueryASTTypeInner(t)
	if err != nil {
		return schema.FieldType{}, err
	}
	if nonNull {
		return ft, nil
	}
	return schema.Optional(ft), nil
}

func fromQueryASTTypeInner(t ast.Type) (schema.FieldType, bool, error) {
	switch n := t.(type) {
	case *ast.NonNull:
		inner, _, err := fromQueryASTTypeInner(n.Type)
		return inner, true, err
	case *ast.List:
		inner, err := fromQueryASTType(n.Type)
		if err != nil {
			return schema.FieldType{}, false, err
		}
		return schema.List(inner), false, nil
	case *ast.Named:
		return schema.Named(n.Name.Value), false, nil
	default:
		return schema.FieldType{}, false, fmt.Errorf("unsupported variable type node %T", t)
	}
}

func fromSelectionSet(ss *ast.SelectionSet) Selection {
	if ss == nil {
		return Selection{}
	}
	sel := Selection{Items: make([]Item, 0, len(ss.Selections))}
	for _, s := range ss.Selections {
		switch n := s.(type) {
		case *ast.Field:
			name := n.Name.Value
			alias := name
			if n.Alias != nil && n.Alias.Value != "" {
				alias = n.Alias.Value
			}
			sel.Items = append(sel.Items, Item{
				Kind:      KindField,
				Alias:     alias,
				Name:      name,
				Arguments: fromArguments(n.Arguments),
				Sub:       fromSelectionSet(n.SelectionSet),
			})
		case *ast.FragmentSpread:
			sel.Items = append(sel.Items, Item{
				Kind:         KindFragmentSpread,
				FragmentName: n.Name.Value,
			})
		case *ast.InlineFragment:
			typeCondition := ""
			if n.TypeCondition != nil {
				typeCondition = n.TypeCondition.Name.Value
			}
			sel.Items = append(sel.Items, Item{
				Kind:          KindInlineFragment,
				TypeCondition: typeCondition,
				Sub:           fromSelectionSet(n.SelectionSet),
			})
		}
	}
	return sel
}

func fromArguments(args []*ast.Argument) map[string]string {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]string, len(args))
	for _, a := range args {
		out[a.Name.Value] = valueToString(a.Value)
	}
	return out
}

// valueToString renders an argument/default value as opaque literal source
// text, the way spec §4.7 requires default values to be preserved for the
// emitter to interpret. It is not a full GraphQL value printer — just
// enough fidelity for the emitter to parse back unambiguously.
func valueToString(v ast.Value) string {
	switch n := v.(type) {
	case *ast.IntValue:
		return n.Value
	case *ast.FloatValue:
		return n.Value
	case *ast.StringValue:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BooleanValue:
		return fmt.Sprintf("%t", n.Value)
	case *ast.EnumValue:
		return n.Value
	case *ast.NullValue:
		return "null"
	case *ast.Variable:
		return "$" + n.Name.Value
	case *ast.ListValue:
		out := "["
		for i, item := range n.Values {
			if i > 0 {
				out += ", "
			}
			out += valueToString(item)
		}
		return out + "]"
	case *ast.ObjectValue:
		out := "{"
		for i, f := range n.Fields {
			if i > 0 {
				out += ", "
			}
			out += f.Name.Value + ": " + valueToString(f.Value)
		}
		return out + "}"
	default:
		return ""
	}
}
