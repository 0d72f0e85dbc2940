// Package gqlclientgen is the public entry point: given a Schema Model and
// a parsed Query Model document, Generate produces the Module IR for one
// named operation (spec §4.8, §6 "Configuration").
package gqlclientgen

import (
	"github.com/iancoleman/strcase"

	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/resolve"
	"go.appointy.com/gqlclientgen/schema"
)

// DeprecationStrategy re-exports resolve.DeprecationStrategy so callers
// configuring generation never need to import the resolve package directly.
type DeprecationStrategy = resolve.DeprecationStrategy

const (
	DeprecationAllow = resolve.Allow
	DeprecationWarn  = resolve.Warn
	DeprecationDeny  = resolve.Deny
)

// TraceFunc re-exports resolve.TraceFunc for the same reason.
type TraceFunc = resolve.TraceFunc

// Config is the public, per-operation generation configuration (spec §6).
type Config struct {
	// OperationName selects which operation in the document to generate.
	// Required.
	OperationName string

	// StructName names the top-level response record. Defaults to
	// OperationName.
	StructName string

	// VariablesName names the top-level variables record. Defaults to
	// StructName+"Variables".
	VariablesName string

	// ModuleName labels the emitted grouping namespace (spec §6
	// module_name). Defaults to the snake_case form of OperationName.
	ModuleName string

	// AdditionalDerives is an opaque, emitter-interpreted list applied to
	// every generated Record and Sum (spec §6 additional_derives).
	AdditionalDerives []string

	// DeprecationStrategy governs what happens when a selected field is
	// deprecated (spec §4.4 step 5). Zero value is DeprecationWarn, the
	// spec §6 default.
	DeprecationStrategy DeprecationStrategy

	// ModuleVisibility is an opaque, emitter-interpreted visibility label
	// (spec §6 module_visibility).
	ModuleVisibility string

	// MaxDepth overrides resolve.DefaultMaxDepth when non-zero (spec §5
	// "a configurable depth limit").
	MaxDepth int

	// Trace, if set, receives coarse-grained resolver events. Optional.
	Trace TraceFunc
}

func (c Config) options() resolve.Options {
	return resolve.Options{
		DeprecationStrategy: c.DeprecationStrategy,
		AdditionalDerives:   c.AdditionalDerives,
		ModuleVisibility:    c.ModuleVisibility,
		MaxDepth:            c.MaxDepth,
		Trace:               c.Trace,
	}
}

// Generate produces the Module IR for the single operation named by
// cfg.OperationName (spec §6, §4.8). schemaModel and doc are read-only;
// schemaModel's `referenced` marks are mutated as a side effect (spec §3
// "Lifecycle") — call schemaModel.ResetReferences() between independent
// Generate calls sharing one Model if that mutation is unwanted (spec §5).
func Generate(schemaModel *schema.Model, doc *query.Document, cfg Config) (*ir.Module, error) {
	op, ok := doc.Operations[cfg.OperationName]
	if !ok {
		return nil, jerrors.Namedf(jerrors.UnknownOperationError, cfg.OperationName, nil,
			"document has no operation named %q", cfg.OperationName)
	}

	structName := cfg.StructName
	if structName == "" {
		structName = op.Name
	}
	variablesName := cfg.VariablesName
	if variablesName == "" {
		variablesName = structName + "Variables"
	}
	moduleName := cfg.ModuleName
	if moduleName == "" {
		moduleName = strcase.ToSnake(op.Name)
	}

	ctx := &resolve.Context{Schema: schemaModel, Query: doc, Options: cfg.options()}
	module, err := resolve.Resolve(ctx, op, structName, variablesName)
	if err != nil {
		return nil, err
	}
	module.ModuleName = moduleName
	return module, nil
}

// GenerateAll produces one Module per operation in doc, in the document's
// declaration order (SPEC_FULL "Multiple operations per document"). Each
// uses base with OperationName set to that operation and StructName,
// VariablesName and ModuleName cleared, so those take their per-operation
// defaults; every other setting of base applies to all operations.
func GenerateAll(schemaModel *schema.Model, doc *query.Document, base Config) ([]*ir.Module, error) {
	modules := make([]*ir.Module, 0, len(doc.OperationOrder))
	for _, name := range doc.OperationOrder {
		cfg := base
		cfg.OperationName = name
		cfg.StructName = ""
		cfg.VariablesName = ""
		cfg.ModuleName = ""
		m, err := Generate(schemaModel, doc, cfg)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}
