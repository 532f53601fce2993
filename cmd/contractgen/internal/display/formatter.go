package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/contractgen/internal/generator"
	"github.com/nfrund/contractgen/internal/schema"
)

// FieldDisplay represents a payload field for display purposes
type FieldDisplay struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

// KindDisplay represents a kind and its generated names for display purposes
type KindDisplay struct {
	Kind         string         `json:"kind"`
	ID           string         `json:"id"`
	Topic        string         `json:"topic"`
	Placeholders []string       `json:"placeholders"`
	Payload      string         `json:"payload"`
	Fields       []FieldDisplay `json:"fields"`
	TopicFunc    string         `json:"topic_func"`
	MessageFunc  string         `json:"message_func"`
	NewMessage   string         `json:"new_message,omitempty"`
	Publish      string         `json:"publish,omitempty"`
}

// SchemaDisplay is the JSON document written by DisplayKindsJSON.
type SchemaDisplay struct {
	Schema  string        `json:"schema"`
	Package string        `json:"package"`
	Syntax  string        `json:"syntax"`
	Kinds   []KindDisplay `json:"kinds"`
	Count   int           `json:"count"`
}

// NewKindDisplay flattens an artifact for display.
func NewKindDisplay(a generator.Artifact) KindDisplay {
	placeholders := a.Template.Placeholders
	if placeholders == nil {
		placeholders = []string{}
	}
	fields := make([]FieldDisplay, len(a.Payload.Fields))
	for i, f := range a.Payload.Fields {
		fields[i] = FieldDisplay{Name: f.Name, Type: f.Type, Key: f.Key}
	}
	return KindDisplay{
		Kind:         a.Kind,
		ID:           a.ID,
		Topic:        a.Template.Raw,
		Placeholders: placeholders,
		Payload:      a.Payload.Name,
		Fields:       fields,
		TopicFunc:    a.TopicFunc.GoName,
		MessageFunc:  a.MessageFunc.GoName,
		NewMessage:   a.NewMessageFunc,
		Publish:      a.PublishFunc,
	}
}

// DisplayKindsTable displays kinds in a formatted table
func DisplayKindsTable(w io.Writer, artifacts []generator.Artifact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "KIND\tTOPIC\tPARAMS\tPAYLOAD\tFIELDS")
	fmt.Fprintln(tw, "----\t-----\t------\t-------\t------")

	if len(artifacts) == 0 {
		fmt.Fprintln(tw, "No kinds found")
	} else {
		for _, a := range artifacts {
			params := make([]string, len(a.TopicFunc.Params))
			for i, p := range a.TopicFunc.Params {
				params[i] = p.Name
			}
			fields := make([]string, len(a.Payload.Fields))
			for i, f := range a.Payload.Fields {
				fields[i] = f.Name + " " + f.Type
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				a.Kind,
				truncateString(a.Template.Raw, 40),
				orDash(strings.Join(params, ", ")),
				a.Payload.Name,
				orDash(truncateString(strings.Join(fields, ", "), 40)))
		}
	}
	return tw.Flush()
}

// DisplayKindsJSON displays the schema and its kinds in JSON format
func DisplayKindsJSON(w io.Writer, s *schema.Schema, artifacts []generator.Artifact) error {
	kinds := make([]KindDisplay, len(artifacts))
	for i, a := range artifacts {
		kinds[i] = NewKindDisplay(a)
	}

	output := SchemaDisplay{
		Schema:  s.Name,
		Package: s.Package,
		Syntax:  s.Syntax.String(),
		Kinds:   kinds,
		Count:   len(kinds),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// DisplayValidationResult prints the success summary of a validated schema
func DisplayValidationResult(w io.Writer, s *schema.Schema, kinds []schema.ValidatedKind) {
	fmt.Fprintf(w, "✅ Schema '%s' is valid\n", s.Name)
	fmt.Fprintf(w, "   Syntax: %s\n", s.Syntax)
	if s.Package != "" {
		fmt.Fprintf(w, "   Package: %s\n", s.Package)
	}
	fmt.Fprintf(w, "   Kinds: %d\n", len(kinds))
	for _, k := range kinds {
		fmt.Fprintf(w, "     %s  %s\n", k.Decl.Name, k.Template.Raw)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
