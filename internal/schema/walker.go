package schema

import (
	"fmt"
	"strings"

	"github.com/nfrund/contractgen/internal/naming"
	"github.com/nfrund/contractgen/internal/topictmpl"
)

// WalkOptions tunes validation.
type WalkOptions struct {
	// LenientTemplates parses topic templates permissively instead of
	// rejecting unbalanced braces and empty placeholders.
	LenientTemplates bool
}

// ValidatedKind is a kind that passed validation, with its parsed template
// and canonical snake name.
type ValidatedKind struct {
	Decl     KindDeclaration
	Template topictmpl.Template
	Snake    string
	// Warning is set when lenient parsing kept a template that strict
	// parsing rejects.
	Warning *SchemaError
}

// Placeholders returns the kind's placeholder set in extraction order.
func (k ValidatedKind) Placeholders() []string {
	return k.Template.Placeholders
}

// Walk validates every kind in declaration order and stops at the first
// error. On error no kinds are returned.
func Walk(s *Schema, opts WalkOptions) ([]ValidatedKind, error) {
	if s == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	seen := make(map[string]KindDeclaration, len(s.Kinds))
	kinds := make([]ValidatedKind, 0, len(s.Kinds))

	for _, decl := range s.Kinds {
		if !naming.IsExportedIdent(decl.Name) {
			return nil, &SchemaError{
				Type:    ErrorInvalidKindName,
				Kind:    decl.Name,
				Pos:     decl.Pos,
				Message: fmt.Sprintf("kind name %q must be an identifier starting with an uppercase letter", decl.Name),
			}
		}
		if prev, dup := seen[decl.Name]; dup {
			return nil, &SchemaError{
				Type:    ErrorDuplicateKind,
				Kind:    decl.Name,
				Pos:     decl.Pos,
				Message: fmt.Sprintf("kind %q is already declared at %s", decl.Name, prev.Pos),
			}
		}
		seen[decl.Name] = decl

		topic, err := topicAnnotation(decl)
		if err != nil {
			return nil, err
		}

		if err := checkFieldShape(decl); err != nil {
			return nil, err
		}

		kind := ValidatedKind{Decl: decl, Snake: naming.ToSnake(decl.Name)}
		tmpl, err := topictmpl.ParseStrict(topic.Value)
		switch {
		case err == nil:
			kind.Template = tmpl
		case opts.LenientTemplates:
			kind.Template = topictmpl.Parse(topic.Value)
			kind.Warning = &SchemaError{
				Type:    ErrorMalformedTopicTemplate,
				Kind:    decl.Name,
				Pos:     topic.Pos,
				Message: fmt.Sprintf("topic template %q on kind %q is kept as literal text", topic.Value, decl.Name),
				Cause:   err,
			}
		default:
			return nil, &SchemaError{
				Type:    ErrorMalformedTopicTemplate,
				Kind:    decl.Name,
				Pos:     topic.Pos,
				Message: fmt.Sprintf("invalid topic template %q on kind %q", topic.Value, decl.Name),
				Cause:   err,
			}
		}

		kinds = append(kinds, kind)
	}

	return kinds, nil
}

// topicAnnotation returns the single topic annotation of decl.
func topicAnnotation(decl KindDeclaration) (Annotation, error) {
	switch len(decl.Topics) {
	case 0:
		return Annotation{}, &SchemaError{
			Type:    ErrorMissingTopicTemplate,
			Kind:    decl.Name,
			Pos:     decl.Pos,
			Message: fmt.Sprintf("the 'topic' annotation is required on kind %q", decl.Name),
		}
	case 1:
	default:
		return Annotation{}, &SchemaError{
			Type:    ErrorDuplicateTopicTemplate,
			Kind:    decl.Name,
			Pos:     decl.Topics[1].Pos,
			Message: fmt.Sprintf("kind %q declares %d 'topic' annotations, expected exactly one", decl.Name, len(decl.Topics)),
		}
	}

	topic := decl.Topics[0]
	if !topic.Literal {
		return Annotation{}, &SchemaError{
			Type:    ErrorMalformedTopicTemplate,
			Kind:    decl.Name,
			Pos:     topic.Pos,
			Message: fmt.Sprintf("the 'topic' annotation on kind %q is missing a string argument", decl.Name),
		}
	}
	if strings.TrimSpace(topic.Value) == "" {
		return Annotation{}, &SchemaError{
			Type:    ErrorMalformedTopicTemplate,
			Kind:    decl.Name,
			Pos:     topic.Pos,
			Message: fmt.Sprintf("the 'topic' annotation on kind %q is empty", decl.Name),
		}
	}
	return topic, nil
}

func checkFieldShape(decl KindDeclaration) error {
	switch shape := decl.Fields.(type) {
	case NoFields, NamedFields:
		return nil
	case UnsupportedFields:
		return &SchemaError{
			Type:    ErrorUnsupportedFieldShape,
			Kind:    decl.Name,
			Pos:     decl.Pos,
			Message: fmt.Sprintf("kind %q: only kinds without fields or with named fields are supported (%s)", decl.Name, shape.Reason),
		}
	default:
		return &SchemaError{
			Type:    ErrorUnsupportedFieldShape,
			Kind:    decl.Name,
			Pos:     decl.Pos,
			Message: fmt.Sprintf("kind %q: only kinds without fields or with named fields are supported (got %T)", decl.Name, shape),
		}
	}
}
