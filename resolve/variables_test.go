package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/resolve"
	"go.appointy.com/gqlclientgen/schema"
)

func TestVariablesRecordOrderAndDefaults(t *testing.T) {
	const doc = `
	query Everything($limit: Int = 10, $label: String!) {
		everything { __typename name }
	}
	`
	module, err := build(t, doc, "Everything")
	require.NoError(t, err)

	vars := findRecord(module, "EverythingVariables")
	require.NotNil(t, vars)
	require.Len(t, vars.Fields, 2)

	require.Equal(t, "limit", vars.Fields[0].Name)
	require.True(t, vars.Fields[0].Type.Optional != nil || vars.Fields[0].Type.Named != "")
	require.Equal(t, "Int", leafNamed(vars.Fields[0].Type))
	require.Equal(t, "10", vars.Fields[0].Default)

	require.Equal(t, "label", vars.Fields[1].Name)
	require.Equal(t, "String", leafNamed(vars.Fields[1].Type))
	require.Empty(t, vars.Fields[1].Default)
}

func TestVariablesRecordResolvesInputObjectFields(t *testing.T) {
	const sdl = `
	schema { query: Query }
	type Query { search(filter: Filter): [Dog!]! }
	type Dog { name: String! }
	input Filter { name: String breed: String }
	`
	const doc = `query Search($filter: Filter) { search(filter: $filter) { name } }`

	m, err := schema.FromSDL("filter.graphql", sdl)
	require.NoError(t, err)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)
	op := parsed.Operations["Search"]

	ctx := &resolve.Context{Schema: m, Query: parsed, Options: resolve.Options{}}
	module, err := resolve.Resolve(ctx, op, "Search", "SearchVariables")
	require.NoError(t, err)

	vars := findRecord(module, "SearchVariables")
	require.NotNil(t, vars)
	require.Len(t, vars.Fields, 1)
	require.Equal(t, "filter", vars.Fields[0].Name)
	require.Equal(t, "Filter", leafNamed(vars.Fields[0].Type))

	require.Len(t, module.InputObjects, 1)
	decl := module.InputObjects[0]
	require.Equal(t, "Filter", decl.Name)
	require.Len(t, decl.Fields, 2)
	require.Equal(t, "name", decl.Fields[0].Name)
	require.Equal(t, "breed", decl.Fields[1].Name)
}

func TestVariablesRecordHandlesSelfReferentialInputObject(t *testing.T) {
	const sdl = `
	schema { query: Query }
	type Query { search(filter: Filter): [Dog!]! }
	type Dog { name: String! }
	input Filter { name: String not: Filter and: [Filter!] }
	`
	const doc = `query Search($filter: Filter) { search(filter: $filter) { name } }`

	m, err := schema.FromSDL("filter.graphql", sdl)
	require.NoError(t, err)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)
	op := parsed.Operations["Search"]

	ctx := &resolve.Context{Schema: m, Query: parsed, Options: resolve.Options{}}
	module, err := resolve.Resolve(ctx, op, "Search", "SearchVariables")
	require.NoError(t, err)

	require.Len(t, module.InputObjects, 1)
	decl := module.InputObjects[0]
	require.Equal(t, "Filter", decl.Name)
	require.Len(t, decl.Fields, 3)
	require.Equal(t, "Filter", leafNamed(decl.Fields[1].Type))
	require.Equal(t, "Filter", leafNamed(decl.Fields[2].Type))
}

func TestVariablesRecordMarksEnumReferenced(t *testing.T) {
	const sdl = `
	schema { query: Query }
	type Query { search(industry: Industry): [Dog!]! }
	type Dog { name: String! }
	enum Industry { OTHER TECH }
	`
	const doc = `query Search($industry: Industry) { search(industry: $industry) { name } }`

	m, err := schema.FromSDL("industry.graphql", sdl)
	require.NoError(t, err)
	parsed, err := query.Parse("ops.graphql", doc)
	require.NoError(t, err)
	op := parsed.Operations["Search"]

	ctx := &resolve.Context{Schema: m, Query: parsed, Options: resolve.Options{}}
	_, err = resolve.Resolve(ctx, op, "Search", "SearchVariables")
	require.NoError(t, err)
	require.True(t, m.Referenced("Industry"))
}
