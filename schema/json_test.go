package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/gqlclientgen/schema"
)

const introspectionJSON = `
{
	"__schema": {
		"queryType": {"name": "Query"},
		"mutationType": null,
		"subscriptionType": null,
		"types": [
			{
				"kind": "OBJECT",
				"name": "Query",
				"fields": [
					{"name": "dog", "type": {"kind": "OBJECT", "name": "Dog", "ofType": null}, "isDeprecated": false, "deprecationReason": ""}
				]
			},
			{
				"kind": "OBJECT",
				"name": "Dog",
				"fields": [
					{"name": "name", "type": {"kind": "NON_NULL", "name": "", "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}, "isDeprecated": false, "deprecationReason": ""},
					{"name": "nicknames", "type": {"kind": "LIST", "name": "", "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}, "isDeprecated": false, "deprecationReason": ""}
				]
			},
			{"kind": "SCALAR", "name": "String"}
		]
	}
}`

func TestFromJSONBuildsModel(t *testing.T) {
	m, err := schema.FromJSON([]byte(introspectionJSON))
	require.NoError(t, err)

	queryType, ok := m.RootType("query")
	require.True(t, ok)
	require.Equal(t, "Query", queryType)

	entry, ok := m.Lookup("Dog")
	require.True(t, ok)

	nameField, ok := entry.Object.FieldByName("name")
	require.True(t, ok)
	require.False(t, nameField.Type.IsOptional())
	leafName, isNamed := nameField.Type.NamedType()
	require.True(t, isNamed)
	require.Equal(t, "String", leafName)

	nicknamesField, ok := entry.Object.FieldByName("nicknames")
	require.True(t, ok)
	require.True(t, nicknamesField.Type.IsOptional())
	list := nicknamesField.Type.Elem()
	require.True(t, list.IsList())
	elem := list.Elem()
	require.True(t, elem.IsOptional())
}

func TestFromJSONRejectsInvalidPayload(t *testing.T) {
	_, err := schema.FromJSON([]byte("not json"))
	require.Error(t, err)
}

func TestFromJSONRequiresQueryRoot(t *testing.T) {
	_, err := schema.FromJSON([]byte(`{"__schema": {"types": []}}`))
	require.Error(t, err)
}
