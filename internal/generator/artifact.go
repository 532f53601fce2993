// Package generator derives the generated artifacts of a validated schema and
// emits them as Go source.
//
// Build maps each validated kind to a language-neutral Artifact: a payload
// type, a topic-builder function named "<snake>_topic" and a message
// constructor named "<snake>", both taking one string per placeholder. The
// GoEmitter then spells those names as exported Go identifiers and renders the
// file.
package generator

import (
	"fmt"

	"github.com/nfrund/contractgen/internal/naming"
	"github.com/nfrund/contractgen/internal/schema"
	"github.com/nfrund/contractgen/internal/topictmpl"
)

// Param is a generated function parameter bound to a topic placeholder.
type Param struct {
	Name        string
	Placeholder string
}

// Function is a generated function.
type Function struct {
	// Name is the canonical snake name, e.g. "notify_all_topic".
	Name string
	// GoName is the exported Go spelling, e.g. "NotifyAllTopic".
	GoName string
	Params []Param
}

// PayloadField is a field of a generated payload type.
type PayloadField struct {
	Name string
	Type string
	Key  string
}

// Payload is a generated payload type. A kind without fields gets an empty
// payload.
type Payload struct {
	Name   string
	Fields []PayloadField
}

// Artifact is everything generated for one kind.
type Artifact struct {
	Kind     string
	ID       string
	Template topictmpl.Template

	Payload     Payload
	TopicFunc   Function
	MessageFunc Function

	// KindConst is the Go constant naming the kind.
	KindConst string
	// NewMessageFunc is the watermill message constructor, empty when
	// watermill helpers are disabled.
	NewMessageFunc string
	// PublishFunc publishes a default payload through a watermill
	// publisher, empty when watermill helpers are disabled.
	PublishFunc string
}

// BuildOptions selects optional artifacts.
type BuildOptions struct {
	Watermill bool
}

// KindTypeName is the name of the generated kind enumeration type.
func KindTypeName(schemaName string) string {
	return schemaName + "Kind"
}

// KindsFuncName is the name of the generated kind listing function.
func KindsFuncName(schemaName string) string {
	return schemaName + "Kinds"
}

// Build derives the artifacts for kinds. It fails when two generated Go
// identifiers collide anywhere in the schema.
func Build(schemaName string, kinds []schema.ValidatedKind, opts BuildOptions) ([]Artifact, error) {
	names := newNameSet()
	names.reserve(schemaName, "schema type", schema.KindDeclaration{Name: schemaName})
	names.reserve(KindTypeName(schemaName), "kind type", schema.KindDeclaration{Name: schemaName})
	names.reserve(KindsFuncName(schemaName), "kind listing", schema.KindDeclaration{Name: schemaName})

	artifacts := make([]Artifact, 0, len(kinds))
	for _, kind := range kinds {
		artifact, err := buildArtifact(schemaName, kind, opts)
		if err != nil {
			return nil, err
		}

		decl := kind.Decl
		claims := []struct{ ident, what string }{
			{artifact.KindConst, "kind constant"},
			{artifact.Payload.Name, "payload type"},
			{artifact.TopicFunc.GoName, "topic function"},
			{artifact.MessageFunc.GoName, "message function"},
		}
		if artifact.NewMessageFunc != "" {
			claims = append(claims,
				struct{ ident, what string }{artifact.NewMessageFunc, "watermill constructor"},
				struct{ ident, what string }{artifact.PublishFunc, "watermill publisher"},
			)
		}
		for _, c := range claims {
			if err := names.claim(c.ident, c.what, decl); err != nil {
				return nil, err
			}
		}

		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func buildArtifact(schemaName string, kind schema.ValidatedKind, opts BuildOptions) (Artifact, error) {
	payload, err := buildPayload(kind.Decl)
	if err != nil {
		return Artifact{}, err
	}

	topicName := kind.Snake + "_topic"
	topicFunc := naming.GoExported(topicName)
	messageFunc := naming.GoExported(kind.Snake)

	// Parameters must not shadow what the generated bodies call.
	placeholders := kind.Placeholders()
	paramNames := naming.Params(placeholders, payload.Name, topicFunc, messageFunc)
	params := make([]Param, len(placeholders))
	for i, placeholder := range placeholders {
		params[i] = Param{Name: paramNames[i], Placeholder: placeholder}
	}

	artifact := Artifact{
		Kind:     kind.Decl.Name,
		ID:       kind.Snake,
		Template: kind.Template,
		Payload:  payload,
		TopicFunc: Function{
			Name:   topicName,
			GoName: topicFunc,
			Params: params,
		},
		MessageFunc: Function{
			Name:   kind.Snake,
			GoName: messageFunc,
			Params: params,
		},
		KindConst: KindTypeName(schemaName) + messageFunc,
	}
	if opts.Watermill {
		artifact.NewMessageFunc = "New" + messageFunc + "Message"
		artifact.PublishFunc = "Publish" + messageFunc
	}
	return artifact, nil
}

// payloadMethods are the methods emitted on every payload type.
var payloadMethods = map[string]bool{
	"String":     true,
	"Equal":      true,
	"ToJSON":     true,
	"FromJSON":   true,
	"ToBinary":   true,
	"FromBinary": true,
}

func buildPayload(decl schema.KindDeclaration) (Payload, error) {
	payload := Payload{Name: decl.Name + "Payload"}

	switch shape := decl.Fields.(type) {
	case schema.NoFields:
		return payload, nil
	case schema.NamedFields:
		seen := make(map[string]bool, len(shape.Fields))
		for _, f := range shape.Fields {
			if seen[f.Name] {
				return Payload{}, &schema.SchemaError{
					Type:    schema.ErrorNameCollision,
					Kind:    decl.Name,
					Pos:     f.Pos,
					Message: fmt.Sprintf("field %q is declared more than once in kind %q", f.Name, decl.Name),
				}
			}
			seen[f.Name] = true

			if payloadMethods[f.Name] {
				return Payload{}, &schema.SchemaError{
					Type:    schema.ErrorNameCollision,
					Kind:    decl.Name,
					Pos:     f.Pos,
					Message: fmt.Sprintf("field %q of kind %q collides with the %s method of %s", f.Name, decl.Name, f.Name, payload.Name),
				}
			}

			key := f.Key
			if key == "" {
				key = f.Name
			}
			payload.Fields = append(payload.Fields, PayloadField{Name: f.Name, Type: f.Type, Key: key})
		}
		return payload, nil
	default:
		return Payload{}, &schema.SchemaError{
			Type:    schema.ErrorUnsupportedFieldShape,
			Kind:    decl.Name,
			Pos:     decl.Pos,
			Message: fmt.Sprintf("kind %q has an unsupported field shape %T", decl.Name, shape),
		}
	}
}

type owner struct {
	what string
	decl schema.KindDeclaration
}

type nameSet map[string]owner

func newNameSet() nameSet {
	return make(nameSet)
}

func (n nameSet) reserve(ident, what string, decl schema.KindDeclaration) {
	n[ident] = owner{what: what, decl: decl}
}

func (n nameSet) claim(ident, what string, decl schema.KindDeclaration) error {
	if prev, taken := n[ident]; taken {
		return &schema.SchemaError{
			Type: schema.ErrorNameCollision,
			Kind: decl.Name,
			Pos:  decl.Pos,
			Message: fmt.Sprintf("%s %s of kind %q collides with the %s of %q",
				what, ident, decl.Name, prev.what, prev.decl.Name),
		}
	}
	n.reserve(ident, what, decl)
	return nil
}
