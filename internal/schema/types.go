// Package schema holds the in-memory model of a message contract schema and
// the walker that validates it before code generation.
//
// A schema is a closed, ordered set of kinds. Each kind declares a topic
// template annotation and a field shape. Loaders (see the gosrc and yamlsrc
// subpackages) build a Schema from source; Walk validates it in one fail-fast
// pass.
package schema

import (
	"go/token"
)

// Syntax identifies the source form a schema was declared in. Diagnostics use
// it to show the expected annotation syntax.
type Syntax int

const (
	SyntaxGo   Syntax = iota // Go struct with `topic:"..."` field tags
	SyntaxYAML               // YAML document with topic keys
)

// String returns the syntax name.
func (s Syntax) String() string {
	switch s {
	case SyntaxGo:
		return "go"
	case SyntaxYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Import is an import carried from the schema source into generated code so
// that field types such as time.Time resolve.
type Import struct {
	Name string // explicit package name, empty when implicit
	Path string
}

// Schema is an ordered set of kind declarations.
type Schema struct {
	// Name is the name of the declaring type, e.g. "Message".
	Name string
	// Package is the Go package generated code belongs to.
	Package string
	Syntax  Syntax
	Pos     token.Position
	Imports []Import
	Kinds   []KindDeclaration
}

// KindDeclaration is one member of the schema.
type KindDeclaration struct {
	Name string
	Pos  token.Position
	// Topics holds every topic annotation found on the kind. A valid kind has
	// exactly one.
	Topics []Annotation
	Fields FieldShape
}

// Annotation is a topic template annotation as written in the source.
type Annotation struct {
	Value string
	// Literal is false when the annotation was present but its argument was
	// not a plain string literal.
	Literal bool
	Pos     token.Position
}

// FieldShape is the closed set of field arrangements a kind can have:
// NoFields, NamedFields or UnsupportedFields.
type FieldShape interface {
	isFieldShape()
}

// NoFields is a kind without payload fields.
type NoFields struct{}

// NamedFields is a kind with a flat, ordered set of named fields.
type NamedFields struct {
	Fields []Field
}

// UnsupportedFields records a field arrangement a loader found but which
// cannot be generated, such as positional or embedded fields.
type UnsupportedFields struct {
	Reason string
}

func (NoFields) isFieldShape()          {}
func (NamedFields) isFieldShape()       {}
func (UnsupportedFields) isFieldShape() {}

// Field is a named payload field.
type Field struct {
	// Name is the exported Go field name.
	Name string
	// Type is the Go type expression, e.g. "uint64" or "time.Time".
	Type string
	// Key is the json tag value, options included, e.g. "timeout_ms,omitempty"
	// or "-". Empty means the field is serialized under Name.
	Key string
	Pos token.Position
}
