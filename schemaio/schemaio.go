// Package schemaio is a boundary convenience layer: it resolves a schema or
// query document from a gocloud.dev/blob bucket URL (a file:// directory or
// an in-memory mem:// bucket) and hands the bytes to the Schema Model / Query Model
// loaders in schema and query. None of this package's logic is part of the
// generator core (spec §5 "File reads are performed by external loaders
// before the core is entered"); it exists purely so a host program does not
// have to hand-roll bucket-vs-local-file branching itself.
package schemaio

import (
	"context"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"go.appointy.com/gqlclientgen/jerrors"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

// ReadAll fetches the bytes named by key within the bucket identified by
// bucketURL. This package registers only the "file://" and "mem://" drivers;
// other gocloud.dev/blob schemes ("s3://", "gs://", "azblob://", ...) open
// only when the program also imports the matching driver package.
func ReadAll(ctx context.Context, bucketURL, key string) ([]byte, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, bucketURL, nil, "open bucket: %v", err)
	}
	defer bucket.Close()

	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, jerrors.Namedf(jerrors.SchemaError, key, nil, "read %q from %q: %v", key, bucketURL, err)
	}
	return data, nil
}

// LoadSchema fetches bucketURL/key and builds a Schema Model from it,
// dispatching on the key's extension: ".json" is treated as introspection
// JSON (schema.FromJSON), anything else as SDL text (schema.FromSDL).
func LoadSchema(ctx context.Context, bucketURL, key string) (*schema.Model, error) {
	data, err := ReadAll(ctx, bucketURL, key)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(key, ".json") {
		return schema.FromJSON(data)
	}
	return schema.FromSDL(key, string(data))
}

// LoadQuery fetches bucketURL/key and parses it as a Query Model document.
func LoadQuery(ctx context.Context, bucketURL, key string) (*query.Document, error) {
	data, err := ReadAll(ctx, bucketURL, key)
	if err != nil {
		return nil, err
	}
	return query.Parse(key, string(data))
}
