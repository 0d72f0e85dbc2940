package resolve

import (
	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

// fieldLookup abstracts "look up a declared field by name" over Object and
// Interface parent types (spec §4.4 step 1), since the resolver's field
// expansion logic is otherwise identical for both.
type fieldLookup func(name string) (schema.Field, bool)

// buildObjectRecord resolves sel against the concrete object type named
// objectTypeName, registers the resulting Record under name, and returns a
// TypeRef naming it. This is the entry point for: the top-level response
// record, any nested object-typed field, and every non-empty interface/
// union variant payload.
func (b *builder) buildObjectRecord(objectTypeName string, sel query.Selection, name string, path []string) (ir.TypeRef, error) {
	if err := b.enterSelection(path); err != nil {
		return ir.TypeRef{}, err
	}
	defer b.leaveSelection()

	entry, ok := b.ctx.Schema.Lookup(objectTypeName)
	if !ok || entry.Kind != schema.KindObject {
		return ir.TypeRef{}, jerrors.Namedf(jerrors.SchemaError, objectTypeName, path, "unknown object type %q", objectTypeName)
	}
	b.ctx.Schema.MarkReferenced(objectTypeName)
	obj := entry.Object

	fields, err := b.flattenObjectFields(sel, objectTypeName, path)
	if err != nil {
		return ir.TypeRef{}, err
	}

	rec := ir.Record{Name: name}
	for _, it := range fields {
		fieldIR, err := b.resolveField(it, obj.FieldByName, name, path)
		if err != nil {
			return ir.TypeRef{}, err
		}
		rec.Fields = append(rec.Fields, fieldIR)
	}

	b.addRecord(rec)
	b.ctx.Options.trace("object", name)
	return ir.NamedRef(name), nil
}

// resolveField implements spec §4.4 "Per-field expansion" for a single
// field selection item against a parent type's declared fields.
func (b *builder) resolveField(it query.Item, lookup fieldLookup, prefix string, path []string) (ir.FieldIR, error) {
	key := it.ResponseKey()
	fieldPath := append(append([]string{}, path...), key)

	if it.Name == "__typename" {
		b.markScalar("String")
		return ir.FieldIR{Name: key, Type: ir.NamedRef("String")}, nil
	}

	field, ok := lookup(it.Name)
	if !ok {
		return ir.FieldIR{}, jerrors.Namedf(jerrors.UnknownFieldError, it.Name, fieldPath, "unknown field %q", it.Name)
	}

	if field.Deprecated {
		switch b.ctx.Options.DeprecationStrategy {
		case Deny:
			return ir.FieldIR{}, jerrors.Namedf(jerrors.DeprecatedFieldError, it.Name, fieldPath, "field %q is deprecated", it.Name)
		}
	}

	leafName, shape := unwrapShape(field.Type)

	leaf, err := b.resolveLeaf(leafName, it.Sub, pathName(prefix, key), fieldPath)
	if err != nil {
		return ir.FieldIR{}, err
	}

	fieldIR := ir.FieldIR{Name: key, Type: rewrapShape(leaf, shape)}
	if field.Deprecated && b.ctx.Options.DeprecationStrategy == Warn {
		reason := field.DeprecationReason
		if reason == "" {
			reason = "deprecated"
		}
		fieldIR.Deprecated = reason
	}
	return fieldIR, nil
}

// shapeOp is one layer of the shape stack spec §4.4 step 2 describes
// ("Optional(List(Optional(T)))").
type shapeOp int

const (
	opOptional shapeOp = iota
	opList
)

// unwrapShape peels every Optional/List layer off t, returning the leaf
// type name and the stack of operations in outside-in order, so
// rewrapShape can reapply them in reverse (inside-out) to the resolved
// leaf IR type.
func unwrapShape(t schema.FieldType) (string, []shapeOp) {
	var ops []shapeOp
	for {
		switch {
		case t.IsOptional():
			ops = append(ops, opOptional)
			t = t.Elem()
		case t.IsList():
			ops = append(ops, opList)
			t = t.Elem()
		default:
			name, _ := t.NamedType()
			return name, ops
		}
	}
}

// rewrapShape reapplies ops (outside-in order, as produced by unwrapShape)
// to leaf, innermost-first.
func rewrapShape(leaf ir.TypeRef, ops []shapeOp) ir.TypeRef {
	t := leaf
	for i := len(ops) - 1; i >= 0; i-- {
		switch ops[i] {
		case opOptional:
			t = ir.OptionalRef(t)
		case opList:
			t = ir.ListRef(t)
		}
	}
	return t
}

// resolveLeaf dispatches on the leaf named type's Schema kind (spec §4.4
// step 3).
func (b *builder) resolveLeaf(leafName string, sub query.Selection, prefix string, path []string) (ir.TypeRef, error) {
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
	case schema.KindObject:
		return b.buildObjectRecord(leafName, sub, prefix, path)
	case schema.KindInterface:
		return b.buildInterfaceSelection(entry.Interface, sub, prefix, path)
	case schema.KindUnion:
		return b.buildUnionSelection(entry.Union, sub, prefix, path)
	default:
		return ir.TypeRef{}, jerrors.Namedf(jerrors.SchemaError, leafName, path, "type %q cannot appear as a response field", leafName)
	}
}
