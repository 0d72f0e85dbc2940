package resolve

import (
	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

// buildVariablesRecord implements the Variables Resolver (spec §4.7): one
// field per declared operation variable, in declaration order, with the
// same Optional/List shape-stack handling resolveField uses on the response
// side, and default values preserved verbatim as opaque literal strings.
func (b *builder) buildVariablesRecord(op *query.Operation, name string) (ir.Record, error) {
	rec := ir.Record{Name: name}
	for _, v := range op.Variables {
		path := []string{op.Name, "$" + v.Name}
		leafName, shape := unwrapShape(v.Type)

		leaf, err := b.resolveInputLeaf(leafName, path)
		if err != nil {
			return ir.Record{}, err
		}

		field := ir.FieldIR{Name: v.Name, Type: rewrapShape(leaf, shape), Default: v.Default}
		rec.Fields = append(rec.Fields, field)
	}
	return rec, nil
}

// resolveInputLeaf dispatches an input-position named type the way
// resolveLeaf dispatches an output-position one (spec §4.4 step 3, mirrored
// for §4.7): scalars and enums mark themselves referenced and resolve to
// themselves; input objects recursively resolve their own fields; any
// output-only kind (object, interface, union) cannot appear in variable
// position and is rejected.
func (b *builder) resolveInputLeaf(leafName string, path []string) (ir.TypeRef, error) {
	entry, ok := b.ctx.Schema.Lookup(leafName)
	if !ok {
		return ir.TypeRef{}, jerrors.Namedf(jerrors.SchemaError, leafName, path, "unknown type %q", leafName)
	}
	switch entry.Kind {
	case schema.KindScalar:
		b.markScalar(leafName)
		return ir.NamedRef(leafName), nil
	case schema.KindEnum:
		b.markEnum(entry.Enum)
		return ir.NamedRef(leafName), nil
	case schema.KindInputObject:
		return b.resolveInputObject(entry.InputObject, path)
	default:
		return ir.TypeRef{}, jerrors.Namedf(jerrors.SchemaError, leafName, path,
			"type %q cannot appear in variable position", leafName)
	}
}

// resolveInputObject registers obj's InputObjectDecl the first time it is
// reached, recursing into its own fields. obj is marked seen before
// recursing so a self-referential input object (legal in GraphQL, e.g. a
// tree-shaped filter) terminates instead of looping.
func (b *builder) resolveInputObject(obj *schema.InputObject, path []string) (ir.TypeRef, error) {
	b.ctx.Schema.MarkReferenced(obj.Name)
	if b.inputSeen[obj.Name] {
		return ir.NamedRef(obj.Name), nil
	}
	b.inputSeen[obj.Name] = true
	b.inputOrder = append(b.inputOrder, obj.Name)

	decl := ir.InputObjectDecl{Name: obj.Name}
	for _, f := range obj.Fields {
		fieldPath := append(append([]string{}, path...), f.Name)
		leafName, shape := unwrapShape(f.Type)
		leaf, err := b.resolveInputLeaf(leafName, fieldPath)
		if err != nil {
			return ir.TypeRef{}, err
		}
		decl.Fields = append(decl.Fields, ir.InputFieldDecl{Name: f.Name, Type: rewrapShape(leaf, shape)})
	}
	b.inputDecls[obj.Name] = decl
	return ir.NamedRef(obj.Name), nil
}

// inputObjectDecls returns every resolved InputObjectDecl in first-reached
// order (spec §4.4 "Deterministic ordering" applied to §4.7's own
// declarations).
func (b *builder) inputObjectDecls() []ir.InputObjectDecl {
	out := make([]ir.InputObjectDecl, 0, len(b.inputOrder))
	for _, name := range b.inputOrder {
		out = append(out, b.inputDecls[name])
	}
	return out
}
