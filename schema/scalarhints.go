package schema

import (
	"time"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/timestamp"
)

// ScalarHint is optional, additive emitter-facing metadata attached to a
// well-known custom scalar name. The Schema Model itself stores only names
// (spec §4.1); a hint is a side-table an emitter may consult and that never
// affects resolution. Grounded on the teacher's schemabuilder.Timestamp/
// Duration wrapper types (schemabuilder/types.go), which wrap the protobuf
// well-known message types and render them via a custom MarshalJSON;
// WellKnownType/Example here describe the same conversion for an emitter
// that never runs the teacher's server-side marshaling path.
type ScalarHint struct {
	// WellKnownType names the protobuf well-known type a custom scalar
	// mirrors, e.g. "google.protobuf.Timestamp". Empty for scalars with no
	// known mapping.
	WellKnownType string
	// Example is a sample literal rendered the way the teacher's own
	// MarshalJSON methods render the well-known type's zero value.
	Example string
}

func timestampExample() string {
	var ts timestamp.Timestamp
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC().Format(time.RFC3339)
}

func durationExample() string {
	var d duration.Duration
	return time.Duration(d.Seconds * int64(time.Second)).String()
}

// defaultScalarHints seeds the two well-known hints the teacher's own
// schemabuilder recognizes, keyed by the conventional custom scalar names a
// schema commonly assigns them.
var defaultScalarHints = map[string]ScalarHint{
	"DateTime": {WellKnownType: "google.protobuf.Timestamp", Example: timestampExample()},
	"Duration": {WellKnownType: "google.protobuf.Duration", Example: durationExample()},
}

// ScalarHint returns the registered hint for name, checking per-Model
// overrides (SetScalarHint) before the built-in defaults.
func (m *Model) ScalarHint(name string) (ScalarHint, bool) {
	if h, ok := m.scalarHints[name]; ok {
		return h, true
	}
	h, ok := defaultScalarHints[name]
	return h, ok
}

// SetScalarHint registers or overrides the hint for a custom scalar name on
// this Model.
func (m *Model) SetScalarHint(name string, hint ScalarHint) {
	if m.scalarHints == nil {
		m.scalarHints = map[string]ScalarHint{}
	}
	m.scalarHints[name] = hint
}
