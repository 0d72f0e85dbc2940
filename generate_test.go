package gqlclientgen_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"
	gqlclientgen "go.appointy.com/gqlclientgen"
	"go.appointy.com/gqlclientgen/ir"
	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

const testSDL = `
schema { query: Query mutation: Mutation subscription: Subscription }
type Query { everything: [Named!]! }
type Mutation { renameDog(id: ID!, name: String!): Dog }
type Subscription { dogBirthdays: [Dog!] }
interface Named { name: String! }
type Dog implements Named { name: String! isGoodDog: Boolean! }
type Person implements Named { name: String! birthday: String }
`

func loadModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.FromSDL("test.graphql", testSDL)
	require.NoError(t, err)
	return m
}

func TestGenerateDefaultsStructAndVariablesNames(t *testing.T) {
	const doc = `query Everything { everything { __typename name } }`
	m := loadModel(t)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	module, err := gqlclientgen.Generate(m, parsed, gqlclientgen.Config{OperationName: "Everything"})
	require.NoError(t, err)
	require.Equal(t, "Everything", module.ResponseRecordName)
	require.Equal(t, "EverythingVariables", module.VariablesRecordName)
	require.Equal(t, "everything", module.ModuleName)
}

func TestGenerateHonorsExplicitStructAndVariablesNames(t *testing.T) {
	const doc = `query Everything { everything { __typename name } }`
	m := loadModel(t)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	module, err := gqlclientgen.Generate(m, parsed, gqlclientgen.Config{
		OperationName: "Everything",
		StructName:    "EverythingResponse",
		VariablesName: "EverythingArgs",
		ModuleName:    "everything_module",
	})
	require.NoError(t, err)
	require.Equal(t, "EverythingResponse", module.ResponseRecordName)
	require.Equal(t, "EverythingArgs", module.VariablesRecordName)
	require.Equal(t, "everything_module", module.ModuleName)
}

// TestGenerateDefaultDeprecationStrategyIsWarn exercises an entirely unset
// Config (spec §6: the default deprecation_strategy is "warn") straight
// through the public entry point, not just resolve.Options directly.
func TestGenerateDefaultDeprecationStrategyIsWarn(t *testing.T) {
	const sdl = `
	schema { query: Query }
	type Query { thing: Thing }
	type Thing { old: String @deprecated(reason: "gone") fresh: String }
	`
	const doc = `query Q { thing { old fresh } }`

	m, err := schema.FromSDL("dep.graphql", sdl)
	require.NoError(t, err)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	module, err := gqlclientgen.Generate(m, parsed, gqlclientgen.Config{OperationName: "Q"})
	require.NoError(t, err)

	top := recordNamed(module, module.ResponseRecordName)
	require.NotNil(t, top)
	var thingType ir.TypeRef
	for _, f := range top.Fields {
		if f.Name == "thing" {
			thingType = f.Type
		}
	}
	thing := recordNamed(module, leafRefName(thingType))
	require.NotNil(t, thing)

	var old, fresh *ir.FieldIR
	for i := range thing.Fields {
		switch thing.Fields[i].Name {
		case "old":
			old = &thing.Fields[i]
		case "fresh":
			fresh = &thing.Fields[i]
		}
	}
	require.NotNil(t, old)
	require.Equal(t, "gone", old.Deprecated)
	require.NotNil(t, fresh)
	require.Empty(t, fresh.Deprecated)
}

func recordNamed(module *ir.Module, name string) *ir.Record {
	for i := range module.Records {
		if module.Records[i].Name == name {
			return &module.Records[i]
		}
	}
	return nil
}

// leafRefName unwraps a TypeRef's Optional/List layers down to its Named leaf.
func leafRefName(t ir.TypeRef) string {
	for {
		if t.Named != "" {
			return t.Named
		}
		switch {
		case t.Optional != nil:
			t = *t.Optional
		case t.List != nil:
			t = *t.List
		default:
			return ""
		}
	}
}

func TestGenerateUnknownOperationErrors(t *testing.T) {
	const doc = `query Everything { everything { __typename name } }`
	m := loadModel(t)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	_, err = gqlclientgen.Generate(m, parsed, gqlclientgen.Config{OperationName: "DoesNotExist"})
	require.Error(t, err)

	var jerr *jerrors.Error
	require.True(t, errors.As(err, &jerr))
	require.Equal(t, jerrors.UnknownOperationError, jerr.Code)
}

func TestGenerateRecordsSubscriptionOperationKind(t *testing.T) {
	const doc = `subscription Birthdays { dogBirthdays { name } }`
	m := loadModel(t)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	module, err := gqlclientgen.Generate(m, parsed, gqlclientgen.Config{OperationName: "Birthdays"})
	require.NoError(t, err)
	require.Equal(t, "subscription", module.OperationKind)
}

func TestGenerateAllProducesOneModulePerOperationInOrder(t *testing.T) {
	const doc = `
	query Everything { everything { __typename name } }
	mutation RenameDog($id: ID!, $name: String!) { renameDog(id: $id, name: $name) { name } }
	subscription Birthdays { dogBirthdays { name } }
	`
	m := loadModel(t)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)

	modules, err := gqlclientgen.GenerateAll(m, parsed, gqlclientgen.Config{})
	require.NoError(t, err)
	require.Len(t, modules, 3)

	require.Equal(t, "Everything", modules[0].OperationName)
	require.Equal(t, "query", modules[0].OperationKind)
	require.Equal(t, "RenameDog", modules[1].OperationName)
	require.Equal(t, "mutation", modules[1].OperationKind)
	require.Equal(t, "Birthdays", modules[2].OperationName)
	require.Equal(t, "subscription", modules[2].OperationKind)

	// Each module gets its own default struct/variables names, not the
	// first operation's.
	require.Equal(t, "RenameDog", modules[1].ResponseRecordName)
	require.Equal(t, "RenameDogVariables", modules[1].VariablesRecordName)
}

// TestGenerateIsDeterministic exercises spec invariant 1: generating the
// same operation against independent Model/Document instances must produce
// byte-identical IR.
func TestGenerateIsDeterministic(t *testing.T) {
	const doc = `
	query Everything {
		everything {
			__typename
			name
			... on Dog { isGoodDog }
			... on Person { birthday }
		}
	}
	`

	first, err := gqlclientgen.Generate(loadModel(t), mustParse(t, doc), gqlclientgen.Config{OperationName: "Everything"})
	require.NoError(t, err)
	second, err := gqlclientgen.Generate(loadModel(t), mustParse(t, doc), gqlclientgen.Config{OperationName: "Everything"})
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	if diff := pretty.Compare(string(firstJSON), string(secondJSON)); diff != "" {
		t.Errorf("expected two independent Generate runs to produce identical IR, but got diff: %s\nfirst:\n%s\nsecond:\n%s",
			diff, spew.Sdump(first), spew.Sdump(second))
	}
}

func mustParse(t *testing.T, doc string) *query.Document {
	t.Helper()
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)
	return parsed
}
