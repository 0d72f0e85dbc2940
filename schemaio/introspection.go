package schemaio

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/schema"
)

// introspectionQuery is the canonical introspection document (per
// graphql/graphiql's utility/introspectionQueries.js, extended with
// specifiedByURL per the post-June-2018 spec) posted to a live endpoint by
// FetchSchema. Its response shape is exactly what schema.FromJSON expects.
const introspectionQuery = `
query IntrospectionQuery {
	__schema {
		queryType { name }
		mutationType { name }
		subscriptionType { name }
		types {
			...FullType
		}
	}
}
fragment FullType on __Type {
	kind
	name
	description
	fields(includeDeprecated: true) {
		name
		description
		type { ...TypeRef }
		isDeprecated
		deprecationReason
	}
	inputFields {
		...InputValue
	}
	interfaces {
		...TypeRef
	}
	enumValues(includeDeprecated: true) {
		name
		description
		isDeprecated
		deprecationReason
	}
	possibleTypes {
		...TypeRef
	}
	specifiedByURL
}
fragment InputValue on __InputValue {
	name
	description
	type { ...TypeRef }
	defaultValue
}
fragment TypeRef on __Type {
	kind
	name
	ofType {
		kind
		name
		ofType {
			kind
			name
			ofType {
				kind
				name
				ofType {
					kind
					name
					ofType {
						kind
						name
						ofType {
							kind
							name
						}
					}
				}
			}
		}
	}
}`

type introspectionPostBody struct {
	Query string `json:"query"`
}

type introspectionHTTPResponse struct {
	Data   json.RawMessage        `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

// FetchSchema posts the canonical introspection query to endpointURL and
// builds a Schema Model from the response (the mirror image of the
// teacher's HTTPHandler: that code serves a query over HTTP, this client
// sends one). client may be nil, in which case http.DefaultClient is used.
func FetchSchema(ctx context.Context, client *http.Client, endpointURL string) (*schema.Model, error) {
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(introspectionPostBody{Query: introspectionQuery})
	if err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, endpointURL, nil, "marshal introspection request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, endpointURL, nil, "build introspection request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := client.Do(req)
	if err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, endpointURL, nil, "introspection request: %v", err)
	}
	defer resp.Body.Close()

	var decoded introspectionHTTPResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, endpointURL, nil, "decode introspection response: %v", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, jerrors.Namedf(jerrors.SchemaError, endpointURL, nil, "introspection query returned errors: %v", decoded.Errors)
	}

	return schema.FromJSON(decoded.Data)
}
