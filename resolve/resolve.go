package resolve

import (
	"github.com/google/uuid"

	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
)

// Resolve runs the Selection Resolver and Variables Resolver over op and
// assembles the result into a complete ir.Module (spec §4.4-§4.8 end to
// end). responseRecordName and variablesRecordName are the already-resolved
// (Config-defaulted) names for the two top-level records; everything below
// them is named by pathName off of responseRecordName.
func Resolve(ctx *Context, op *query.Operation, responseRecordName, variablesRecordName string) (*ir.Module, error) {
	rootTypeName, ok := ctx.Schema.RootType(string(op.Kind))
	if !ok {
		return nil, jerrors.Namedf(jerrors.SchemaError, string(op.Kind), []string{op.Name},
			"schema declares no root type for operation kind %q", op.Kind)
	}

	// A correlation ID for this single Resolve call, stamped through the
	// trace hook only — it never enters the Module IR, which would break
	// the determinism invariant two equal Generate calls must satisfy.
	ctx.Options.trace("generation", op.Name+" "+uuid.New().String())

	b := newBuilder(ctx)

	if _, err := b.buildObjectRecord(rootTypeName, op.Root, responseRecordName, []string{op.Name}); err != nil {
		return nil, err
	}

	varsRecord, err := b.buildVariablesRecord(op, variablesRecordName)
	if err != nil {
		return nil, err
	}
	b.addRecord(varsRecord)

	return &ir.Module{
		OperationName:       op.Name,
		OperationKind:       string(op.Kind),
		Scalars:             b.scalars,
		Enums:               b.enums,
		InputObjects:        b.inputObjectDecls(),
		Records:             b.records,
		Sums:                b.sums,
		ResponseRecordName:  responseRecordName,
		VariablesRecordName: variablesRecordName,
		AdditionalDerives:   ctx.Options.AdditionalDerives,
		ModuleVisibility:    ctx.Options.ModuleVisibility,
	}, nil
}
