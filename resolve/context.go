// Package resolve is the Selection Resolver and Variables Resolver: the
// hard core of the generator (spec §4.4-§4.7). Context is the single value
// threaded through every call (spec §4.3 "Query Context").
package resolve

import (
	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

// DeprecationStrategy is the generation-wide policy spec §4.4 step 5
// applies whenever a selected field is deprecated. Warn is the zero value,
// matching spec §6's stated default so a zero-value Options/Config never
// silently reverts to Allow.
type DeprecationStrategy int

const (
	Warn DeprecationStrategy = iota
	Allow
	Deny
)

// DefaultMaxDepth is the suggested default recursion guard (spec §5 "a
// configurable depth limit (default suggested ≥128)").
const DefaultMaxDepth = 128

// TraceFunc is an optional, no-op-by-default hook a host program can use to
// observe coarse-grained resolver events without the core depending on any
// particular logger (SPEC_FULL "Logging"). event is a short machine-stable
// tag ("generation", "object", "interface", "union", "variant-empty");
// detail is human-readable context.
type TraceFunc func(event, detail string)

// Options is the response-shaping configuration spec §4.3 says the Query
// Context carries, translated from the public Config (spec §6).
type Options struct {
	DeprecationStrategy DeprecationStrategy
	AdditionalDerives    []string
	ModuleVisibility     string
	MaxDepth             int
	Trace                TraceFunc
}

func (o Options) trace(event, detail string) {
	if o.Trace != nil {
		o.Trace(event, detail)
	}
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// Context pairs the Schema Model and Query Model together with Options
// (spec §4.3). It is the sole argument threaded through resolution, save
// for the per-call accumulating builder.
type Context struct {
	Schema *schema.Model
	Query  *query.Document
	Options Options
}

// builder accumulates the IR produced while resolving one operation: every
// referenced scalar/enum/input-object, and every record/sum, in first-seen
// order (spec §4.4 "Deterministic ordering").
type builder struct {
	ctx   *Context
	depth int

	scalarSeen map[string]bool
	scalars    []ir.ScalarDecl

	enumSeen map[string]bool
	enums    []ir.EnumDecl

	inputSeen  map[string]bool
	inputOrder []string
	inputDecls map[string]ir.InputObjectDecl

	recordNames map[string]bool
	records     []ir.Record

	sumNames map[string]bool
	sums     []ir.Sum
}

func newBuilder(ctx *Context) *builder {
	return &builder{
		ctx:         ctx,
		scalarSeen:  map[string]bool{},
		enumSeen:    map[string]bool{},
		inputSeen:   map[string]bool{},
		inputDecls:  map[string]ir.InputObjectDecl{},
		recordNames: map[string]bool{},
		sumNames:    map[string]bool{},
	}
}

func (b *builder) enterSelection(path []string) error {
	b.depth++
	if b.depth > b.ctx.Options.maxDepth() {
		return jerrors.Namedf(jerrors.SelectionTooDeepError, "", path,
			"selection nesting exceeds max depth %d", b.ctx.Options.maxDepth())
	}
	return nil
}

func (b *builder) leaveSelection() { b.depth-- }

func (b *builder) markScalar(name string) {
	b.ctx.Schema.MarkReferenced(name)
	if b.scalarSeen[name] {
		return
	}
	b.scalarSeen[name] = true
	b.scalars = append(b.scalars, ir.ScalarDecl{Name: name})
}

func (b *builder) markEnum(e *schema.Enum) {
	b.ctx.Schema.MarkReferenced(e.Name)
	if b.enumSeen[e.Name] {
		return
	}
	b.enumSeen[e.Name] = true
	b.enums = append(b.enums, ir.EnumDecl{Name: e.Name, Variants: append([]string{}, e.Variants...)})
}

func (b *builder) addRecord(rec ir.Record) {
	// Names are deterministic by construction (spec §4.4 "This guarantees
	// that equal structural positions produce equal names... and siblings
	// cannot collide"). A record whose name is already registered is
	// dropped: the first record added under a name is the one kept.
	if b.recordNames[rec.Name] {
		return
	}
	b.recordNames[rec.Name] = true
	b.records = append(b.records, rec)
}

func (b *builder) addSum(s ir.Sum) {
	if b.sumNames[s.Name] {
		return
	}
	b.sumNames[s.Name] = true
	b.sums = append(b.sums, s)
}
