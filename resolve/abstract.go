package resolve

import (
	"sort"

	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

// classification is the result of walking an abstract-type selection apart
// into its three GraphQL-meaningful buckets (spec §4.5/§4.6): fields
// selected directly against the abstract type itself, fields selected per
// concrete implementor/member via inline fragment or fragment spread, and
// whether `__typename` was present anywhere at the abstract selection's own
// level (spec §9 "may be inherited via a spread").
type classification struct {
	common      []query.Item
	variants    map[string][]query.Item
	hasTypename bool
}

func newClassification() *classification {
	return &classification{variants: map[string][]query.Item{}}
}

func (c *classification) merge(o *classification) {
	c.common = append(c.common, o.common...)
	c.hasTypename = c.hasTypename || o.hasTypename
	for name, items := range o.variants {
		c.variants[name] = append(c.variants[name], items...)
	}
}

// classifyAbstract walks sel, resolving fragment spreads recursively
// (spec §9 "Implementations should resolve spreads recursively inside each
// variant's selection" — and, per the same design note, recursively at the
// abstract level too, so PublicStatus-shaped base-field fragments nest
// arbitrarily deep) and sorting every item into classification.
func (b *builder) classifyAbstract(sel query.Selection, selfTypeName string, isMember func(string) bool, path []string) (*classification, error) {
	c := newClassification()
	for _, it := range sel.Items {
		switch it.Kind {
		case query.KindField:
			if it.Name == "__typename" {
				c.hasTypename = true
				continue
			}
			c.common = append(c.common, it)
		case query.KindInlineFragment:
			if it.TypeCondition == "" || it.TypeCondition == selfTypeName {
				nested, err := b.classifyAbstract(it.Sub, selfTypeName, isMember, path)
				if err != nil {
					return nil, err
				}
				c.merge(nested)
				continue
			}
			if !isMember(it.TypeCondition) {
				return nil, jerrors.Namedf(jerrors.UnknownTypeError, it.TypeCondition, path,
					"inline fragment targets %q, which is not %q or one of its members", it.TypeCondition, selfTypeName)
			}
			c.variants[it.TypeCondition] = append(c.variants[it.TypeCondition], it.Sub.Items...)
		case query.KindFragmentSpread:
			frag, ok := b.ctx.Query.Fragments[it.FragmentName]
			if !ok {
				return nil, jerrors.Namedf(jerrors.UnknownTypeError, it.FragmentName, path, "undefined fragment %q", it.FragmentName)
			}
			if frag.TypeCondition == selfTypeName {
				nested, err := b.classifyAbstract(frag.Root, selfTypeName, isMember, path)
				if err != nil {
					return nil, err
				}
				c.merge(nested)
				continue
			}
			if !isMember(frag.TypeCondition) {
				return nil, jerrors.Namedf(jerrors.UnknownTypeError, it.FragmentName, path,
					"fragment %q targets %q, which is not %q or one of its members", it.FragmentName, frag.TypeCondition, selfTypeName)
			}
			c.variants[frag.TypeCondition] = append(c.variants[frag.TypeCondition], frag.Root.Items...)
		}
	}
	return c, nil
}

// buildInterfaceSelection implements spec §4.5 in full: a base record of
// common fields, an `on` sum with one variant per implementor (payload-less
// for implementors with no inline fragment/spread), discriminated by
// `__typename`.
func (b *builder) buildInterfaceSelection(iface *schema.Interface, sel query.Selection, prefix string, path []string) (ir.TypeRef, error) {
	if err := b.enterSelection(path); err != nil {
		return ir.TypeRef{}, err
	}
	defer b.leaveSelection()

	b.ctx.Schema.MarkReferenced(iface.Name)

	implementorSet := map[string]bool{}
	for _, name := range iface.Implementors {
		implementorSet[name] = true
	}

	c, err := b.classifyAbstract(sel, iface.Name, func(n string) bool { return implementorSet[n] }, path)
	if err != nil {
		return ir.TypeRef{}, err
	}
	if !c.hasTypename {
		return ir.TypeRef{}, jerrors.Namedf(jerrors.MissingTypenameError, prefix, path,
			"interface selection %q must include __typename", prefix)
	}

	mergedCommon, err := mergeFields(c.common, path)
	if err != nil {
		return ir.TypeRef{}, err
	}

	rec := ir.Record{Name: prefix}
	for _, it := range mergedCommon {
		fieldIR, err := b.resolveField(it, iface.FieldByName, prefix, path)
		if err != nil {
			return ir.TypeRef{}, err
		}
		rec.Fields = append(rec.Fields, fieldIR)
	}

	sumName := prefix + "On"
	variants, err := b.buildVariants(iface.Implementors, c.variants, prefix, path)
	if err != nil {
		return ir.TypeRef{}, err
	}
	b.addSum(ir.Sum{Name: sumName, Discriminator: "__typename", Variants: variants})

	rec.Fields = append(rec.Fields, ir.FieldIR{Name: "on", Type: ir.NamedRef(sumName)})
	b.addRecord(rec)
	b.ctx.Options.trace("interface", prefix)

	return ir.NamedRef(prefix), nil
}

// buildUnionSelection implements spec §4.6: no common fields (unions
// declare none), just the sum itself, discriminated by `__typename`. The
// field's IR type *is* the sum — there is no wrapping base record.
func (b *builder) buildUnionSelection(u *schema.Union, sel query.Selection, prefix string, path []string) (ir.TypeRef, error) {
	if err := b.enterSelection(path); err != nil {
		return ir.TypeRef{}, err
	}
	defer b.leaveSelection()

	b.ctx.Schema.MarkReferenced(u.Name)

	memberSet := map[string]bool{}
	for _, name := range u.Members {
		memberSet[name] = true
	}

	c, err := b.classifyAbstract(sel, u.Name, func(n string) bool { return memberSet[n] }, path)
	if err != nil {
		return ir.TypeRef{}, err
	}
	if !c.hasTypename {
		return ir.TypeRef{}, jerrors.Namedf(jerrors.MissingTypenameError, prefix, path,
			"union selection %q must include __typename", prefix)
	}
	if len(c.common) > 0 {
		return ir.TypeRef{}, jerrors.Namedf(jerrors.UnknownFieldError, c.common[0].Name, path,
			"union type %q declares no fields; select __typename and inline fragments only", u.Name)
	}

	variants, err := b.buildVariants(u.Members, c.variants, prefix, path)
	if err != nil {
		return ir.TypeRef{}, err
	}
	b.addSum(ir.Sum{Name: prefix, Discriminator: "__typename", Variants: variants})
	b.ctx.Options.trace("union", prefix)

	return ir.NamedRef(prefix), nil
}

// buildVariants produces one ir.Variant per member (schema declaration
// order is irrelevant here; spec §4.4 requires lexicographic order of type
// names whenever the resolver must sort rather than preserve source order),
// payload-less for members with no entry in variantItems (spec §4.5/§4.6
// "exhaustive variants", invariant 5 in spec §8).
func (b *builder) buildVariants(members []string, variantItems map[string][]query.Item, prefix string, path []string) ([]ir.Variant, error) {
	sorted := append([]string{}, members...)
	sort.Strings(sorted)

	variants := make([]ir.Variant, 0, len(sorted))
	for _, typeName := range sorted {
		b.ctx.Schema.MarkReferenced(typeName)
		items, ok := variantItems[typeName]
		if !ok || len(items) == 0 {
			variants = append(variants, ir.Variant{TypeName: typeName})
			b.ctx.Options.trace("variant-empty", typeName)
			continue
		}
		variantPrefix := pathName(prefix, variantSegment(typeName))
		ref, err := b.buildObjectRecord(typeName, query.Selection{Items: items}, variantPrefix, append(append([]string{}, path...), "on "+typeName))
		if err != nil {
			return nil, err
		}
		payload := b.recordByName(ref.Named)
		variants = append(variants, ir.Variant{TypeName: typeName, Payload: payload})
	}
	return variants, nil
}

// recordByName returns a pointer to the just-added record named name. It is
// always found: buildObjectRecord only just appended it.
func (b *builder) recordByName(name string) *ir.Record {
	for i := range b.records {
		if b.records[i].Name == name {
			return &b.records[i]
		}
	}
	return nil
}
