// Package diagnostics turns schema errors into reports attached to the
// offending schema location, in the file:line:col form editors and go
// generate understand.
package diagnostics

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/nfrund/contractgen/internal/schema"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a reportable schema failure.
type Diagnostic struct {
	Pos      token.Position
	Severity Severity
	Code     schema.ErrorType
	Kind     string
	Message  string
	// Hint shows the expected annotation shape, when one applies.
	Hint string
}

// FromError converts a schema error into a diagnostic. It reports false when
// err does not wrap a *schema.SchemaError.
func FromError(err error, syntax schema.Syntax) (Diagnostic, bool) {
	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		return Diagnostic{}, false
	}

	message := schemaErr.Message
	if schemaErr.Cause != nil {
		message += ": " + schemaErr.Cause.Error()
	}

	return Diagnostic{
		Pos:      schemaErr.Pos,
		Severity: SeverityError,
		Code:     schemaErr.Type,
		Kind:     schemaErr.Kind,
		Message:  message,
		Hint:     hint(schemaErr.Type, syntax),
	}, true
}

// Warnings returns a warning diagnostic for every kind that validated with a
// tolerated problem, in declaration order.
func Warnings(kinds []schema.ValidatedKind, syntax schema.Syntax) []Diagnostic {
	var warnings []Diagnostic
	for _, kind := range kinds {
		if kind.Warning == nil {
			continue
		}
		if d, ok := FromError(kind.Warning, syntax); ok {
			d.Severity = SeverityWarning
			warnings = append(warnings, d)
		}
	}
	return warnings
}

// String renders "file:line:col: error: message" followed by an indented hint.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Hint != "" {
		b.WriteString("\n\t")
		b.WriteString(d.Hint)
	}
	return b.String()
}

// Write prints d on its own line.
func Write(w io.Writer, d Diagnostic) error {
	_, err := fmt.Fprintln(w, d.String())
	return err
}

// Report writes err to w as a diagnostic when it is a schema error, or as a
// plain error line otherwise.
func Report(w io.Writer, err error, syntax schema.Syntax) error {
	if d, ok := FromError(err, syntax); ok {
		return Write(w, d)
	}
	_, werr := fmt.Fprintf(w, "error: %v\n", err)
	return werr
}

// Example returns the annotation syntax for a topic template in the given
// schema syntax.
func Example(syntax schema.Syntax) string {
	switch syntax {
	case schema.SyntaxYAML:
		return `topic: "system/{id}/start"`
	default:
		return "`topic:\"system/{id}/start\"`"
	}
}

func hint(code schema.ErrorType, syntax schema.Syntax) string {
	switch code {
	case schema.ErrorMissingTopicTemplate:
		return "every kind requires a topic annotation. Example: " + Example(syntax)
	case schema.ErrorMalformedTopicTemplate:
		return "the topic annotation takes a non-empty string with {placeholder} segments. Example: " + Example(syntax)
	case schema.ErrorDuplicateTopicTemplate:
		return "declare exactly one topic annotation per kind. Example: " + Example(syntax)
	case schema.ErrorUnsupportedFieldShape:
		if syntax == schema.SyntaxYAML {
			return "use no fields or a mapping of field name to type. Example: fields: {immediate: bool}"
		}
		return "use struct{} or a struct with named fields. Example: Start struct{ Immediate bool } `topic:\"system/{id}/start\"`"
	case schema.ErrorInvalidKindName:
		return "kind names are exported Go identifiers, e.g. NotifyAll"
	default:
		return ""
	}
}
