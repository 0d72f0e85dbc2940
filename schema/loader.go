package schema

import "go.appointy.com/gqlclientgen/jerrors"

// Loader turns schema source material into a fully-populated Model. Spec §1
// treats the schema loader as an external collaborator; Loader is that
// collaborator's interface. FromJSON and FromSDL below are the two
// concrete implementations spec §6 names ("JSON introspection result, or a
// GraphQL SDL document").
type Loader interface {
	Load() (*Model, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func() (*Model, error)

func (f LoaderFunc) Load() (*Model, error) { return f() }

// builtinScalars is the set of scalar names every schema has regardless of
// how it declares them (spec §3 Scalar table).
var builtinScalars = []string{"String", "Int", "Float", "Boolean", "ID"}

// ensureBuiltinScalars adds any of the five builtin scalars not already
// present in m. SDL documents conventionally omit them; introspection
// results normally include them explicitly.
func ensureBuiltinScalars(m *Model) {
	for _, name := range builtinScalars {
		if _, ok := m.Lookup(name); ok {
			continue
		}
		_ = m.AddScalar(&Scalar{Name: name, Builtin: true})
	}
}

func errSchema(format string, args ...interface{}) error {
	return jerrors.Namedf(jerrors.SchemaError, "", nil, format, args...)
}
