package schema

import (
	"go/token"
)

// ErrorType classifies schema errors.
type ErrorType string

const (
	ErrorMissingTopicTemplate   ErrorType = "missing_topic_template"
	ErrorMalformedTopicTemplate ErrorType = "malformed_topic_template"
	ErrorDuplicateTopicTemplate ErrorType = "duplicate_topic_template"
	ErrorUnsupportedFieldShape  ErrorType = "unsupported_field_shape"
	ErrorDuplicateKind          ErrorType = "duplicate_kind"
	ErrorInvalidKindName        ErrorType = "invalid_kind_name"
	ErrorNameCollision          ErrorType = "name_collision"
)

// SchemaError is a fatal validation failure attached to a schema location.
type SchemaError struct {
	Type    ErrorType
	Kind    string
	Pos     token.Position
	Message string
	Cause   error
}

// Sentinels for errors.Is. A *SchemaError matches the sentinel of its Type.
var (
	ErrMissingTopicTemplate   = &SchemaError{Type: ErrorMissingTopicTemplate, Message: "missing topic template"}
	ErrMalformedTopicTemplate = &SchemaError{Type: ErrorMalformedTopicTemplate, Message: "malformed topic template"}
	ErrDuplicateTopicTemplate = &SchemaError{Type: ErrorDuplicateTopicTemplate, Message: "duplicate topic template"}
	ErrUnsupportedFieldShape  = &SchemaError{Type: ErrorUnsupportedFieldShape, Message: "unsupported field shape"}
	ErrDuplicateKind          = &SchemaError{Type: ErrorDuplicateKind, Message: "duplicate kind"}
	ErrInvalidKindName        = &SchemaError{Type: ErrorInvalidKindName, Message: "invalid kind name"}
	ErrNameCollision          = &SchemaError{Type: ErrorNameCollision, Message: "generated name collision"}
)

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msg := e.Message
	if e.Pos.IsValid() {
		msg = e.Pos.String() + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's Type.
func (e *SchemaError) Is(target error) bool {
	t, ok := target.(*SchemaError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Kind == "" && !t.Pos.IsValid()
}
