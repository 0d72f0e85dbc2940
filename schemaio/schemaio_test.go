package schemaio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/schemaio"
)

const memSDL = `
schema { query: Query }
type Query { dog: Dog }
type Dog { name: String! }
`

const memQuery = `query Q { dog { name } }`

func writeToMemBucket(t *testing.T, bucketURL, key, contents string) {
	t.Helper()
	ctx := context.Background()
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	require.NoError(t, err)
	defer bucket.Close()
	require.NoError(t, bucket.WriteAll(ctx, key, []byte(contents), nil))
}

func TestLoadSchemaFromSDLKey(t *testing.T) {
	const bucketURL = "mem://schemaio-sdl-bucket"
	writeToMemBucket(t, bucketURL, "schema.graphql", memSDL)

	m, err := schemaio.LoadSchema(context.Background(), bucketURL, "schema.graphql")
	require.NoError(t, err)

	queryType, ok := m.RootType("query")
	require.True(t, ok)
	require.Equal(t, "Query", queryType)
}

func TestLoadSchemaFromJSONKeyDispatchesToFromJSON(t *testing.T) {
	const introspectionJSON = `
	{
		"__schema": {
			"queryType": {"name": "Query"},
			"mutationType": null,
			"subscriptionType": null,
			"types": [
				{"kind": "OBJECT", "name": "Query", "fields": [
					{"name": "dog", "type": {"kind": "OBJECT", "name": "Dog", "ofType": null}, "isDeprecated": false, "deprecationReason": ""}
				]},
				{"kind": "OBJECT", "name": "Dog", "fields": [
					{"name": "name", "type": {"kind": "NON_NULL", "name": "", "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}, "isDeprecated": false, "deprecationReason": ""}
				]},
				{"kind": "SCALAR", "name": "String"}
			]
		}
	}`
	const bucketURL = "mem://schemaio-json-bucket"
	writeToMemBucket(t, bucketURL, "schema.json", introspectionJSON)

	m, err := schemaio.LoadSchema(context.Background(), bucketURL, "schema.json")
	require.NoError(t, err)

	queryType, ok := m.RootType("query")
	require.True(t, ok)
	require.Equal(t, "Query", queryType)
}

func TestLoadQueryParsesDocument(t *testing.T) {
	const bucketURL = "mem://schemaio-query-bucket"
	writeToMemBucket(t, bucketURL, "op.graphql", memQuery)

	doc, err := schemaio.LoadQuery(context.Background(), bucketURL, "op.graphql")
	require.NoError(t, err)
	require.Equal(t, []string{"Q"}, doc.OperationOrder)
}

func TestReadAllSurfacesMissingKeyAsSchemaError(t *testing.T) {
	const bucketURL = "mem://schemaio-missing-bucket"
	_, err := schemaio.ReadAll(context.Background(), bucketURL, "does-not-exist.graphql")
	require.Error(t, err)

	var jerr *jerrors.Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, jerrors.SchemaError, jerr.Code)
}
