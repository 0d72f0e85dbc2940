// Command gqlclientgen-example exercises the whole pipeline end to end: it
// loads a schema and a query document from disk, resolves one named
// operation, and prints the resulting Module IR as JSON. There is no
// emitter here (spec "Non-goals": rendering the IR to source text is an
// external collaborator's job) — this is a debugging aid, the same role
// the teacher's example/main.go plays for its own schema package.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	gqlclientgen "go.appointy.com/gqlclientgen"
	"go.appointy.com/gqlclientgen/query"
	"go.appointy.com/gqlclientgen/schema"
)

func main() {
	schemaPath := flag.String("schema", "", "path to a GraphQL SDL schema file")
	queryPath := flag.String("query", "", "path to a GraphQL query document")
	operation := flag.String("operation", "", "operation name to generate")
	flag.Parse()

	if *schemaPath == "" || *queryPath == "" || *operation == "" {
		log.Fatalln("usage: gqlclientgen-example -schema schema.graphql -query ops.graphql -operation MyQuery")
	}

	schemaSrc, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalln(err)
	}
	querySrc, err := os.ReadFile(*queryPath)
	if err != nil {
		log.Fatalln(err)
	}

	model, err := schema.FromSDL(*schemaPath, string(schemaSrc))
	if err != nil {
		log.Fatalln(err)
	}

	doc, err := query.Parse(*queryPath, string(querySrc))
	if err != nil {
		log.Fatalln(err)
	}

	module, err := gqlclientgen.Generate(model, doc, gqlclientgen.Config{
		OperationName:       *operation,
		DeprecationStrategy: gqlclientgen.DeprecationWarn,
	})
	if err != nil {
		log.Fatalln(err)
	}

	encoded, err := json.MarshalIndent(module, "", "  ")
	if err != nil {
		log.Fatalln(err)
	}
	os.Stdout.Write(encoded)
	os.Stdout.Write([]byte("\n"))
}
