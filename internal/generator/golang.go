package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/nfrund/contractgen/internal/schema"
)

const (
	contractImport  = "github.com/nfrund/contractgen/contract"
	watermillImport = "github.com/ThreeDotsLabs/watermill/message"
)

// EmitOptions configures Go source emission.
type EmitOptions struct {
	// Package overrides the schema's package name.
	Package string
	// Source is the schema file name mentioned in the generated header.
	Source string
	// Filename is the output file name, used when formatting.
	Filename string
}

// GoEmitter renders artifacts as a Go source file.
type GoEmitter struct {
	opts EmitOptions
	tmpl *template.Template
}

// NewGoEmitter creates a new emitter.
func NewGoEmitter(opts EmitOptions) *GoEmitter {
	return &GoEmitter{
		opts: opts,
		tmpl: template.Must(template.New("file").Funcs(template.FuncMap{
			"params":    paramList,
			"args":      argList,
			"structTag": structTag,
			"quote":     strconv.Quote,
		}).Parse(fileTemplate)),
	}
}

type fileData struct {
	Source    string
	Package   string
	Imports   []schema.Import
	Enum      string
	KindType  string
	KindsFunc string
	Artifacts []Artifact
}

// Emit renders the file for s and its artifacts, formatted with goimports.
func (e *GoEmitter) Emit(s *schema.Schema, artifacts []Artifact) ([]byte, error) {
	pkg := e.opts.Package
	if pkg == "" {
		pkg = s.Package
	}
	if pkg == "" {
		return nil, fmt.Errorf("no package name for schema %s", s.Name)
	}

	data := fileData{
		Source:    e.opts.Source,
		Package:   pkg,
		Imports:   e.imports(s, artifacts),
		Enum:      s.Name,
		KindType:  KindTypeName(s.Name),
		KindsFunc: KindsFuncName(s.Name),
		Artifacts: artifacts,
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	filename := e.opts.Filename
	if filename == "" {
		filename = strings.ToLower(s.Name) + "_contract.go"
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return out, nil
}

func (e *GoEmitter) imports(s *schema.Schema, artifacts []Artifact) []schema.Import {
	list := []schema.Import{{Path: "fmt"}, {Path: contractImport}}
	for _, a := range artifacts {
		if a.NewMessageFunc != "" {
			list = append(list, schema.Import{Path: watermillImport})
			break
		}
	}

	seen := make(map[string]bool, len(list)+len(s.Imports))
	for _, imp := range list {
		seen[imp.Path] = true
	}
	for _, imp := range s.Imports {
		if seen[imp.Path] {
			continue
		}
		seen[imp.Path] = true
		list = append(list, imp)
	}
	return list
}

func paramList(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	return argList(params) + " string"
}

func argList(params []Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// structTag renders the json tag literal for a payload field.
func structTag(key string) string {
	tag := "json:" + strconv.Quote(key)
	if strings.ContainsRune(tag, '`') {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}

const fileTemplate = `// Code generated by contractgen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.KindType}} identifies a {{.Enum}} kind by its canonical name.
type {{.KindType}} string

const (
{{- range .Artifacts}}
	{{.KindConst}} {{$.KindType}} = {{quote .ID}}
{{- end}}
)

// {{.KindsFunc}} returns every {{.Enum}} kind in declaration order.
func {{.KindsFunc}}() []{{.KindType}} {
	return []{{.KindType}}{
{{- range .Artifacts}}
		{{.KindConst}},
{{- end}}
	}
}
{{range .Artifacts}}{{template "kind" .}}{{end}}
{{- define "kind"}}
// {{.Payload.Name}} is the payload of a {{.Kind}} message.
{{- if .Payload.Fields}}
type {{.Payload.Name}} struct {
{{- range .Payload.Fields}}
	{{.Name}} {{.Type}} {{structTag .Key}}
{{- end}}
}
{{- else}}
type {{.Payload.Name}} struct{}
{{- end}}

// String returns a debug representation of the payload.
func (p {{.Payload.Name}}) String() string {
	type plain {{.Payload.Name}}
	return fmt.Sprintf("{{.Payload.Name}}%+v", plain(p))
}

// Equal reports whether p and other hold the same values.
func (p {{.Payload.Name}}) Equal(other {{.Payload.Name}}) bool {
	return contract.Equal(p, other)
}

// ToJSON encodes the payload as JSON.
func (p {{.Payload.Name}}) ToJSON() ([]byte, error) {
	return contract.MarshalJSON(p)
}

// FromJSON decodes JSON data into the payload.
func (p *{{.Payload.Name}}) FromJSON(data []byte) error {
	return contract.UnmarshalJSON(data, p)
}

// ToBinary encodes the payload as CBOR.
func (p {{.Payload.Name}}) ToBinary() ([]byte, error) {
	return contract.MarshalBinary(p)
}

// FromBinary decodes CBOR data into the payload.
func (p *{{.Payload.Name}}) FromBinary(data []byte) error {
	return contract.UnmarshalBinary(data, p)
}

// {{.TopicFunc.GoName}} renders the {{.Kind}} topic {{quote .Template.Raw}}.
func {{.TopicFunc.GoName}}({{params .TopicFunc.Params}}) string {
{{- if .TopicFunc.Params}}
	return fmt.Sprintf({{quote .Template.Format}}, {{args .TopicFunc.Params}})
{{- else}}
	return {{quote .Template.Raw}}
{{- end}}
}

// {{.MessageFunc.GoName}} returns the rendered {{.Kind}} topic and a default payload.
// The arguments only fill topic placeholders.
func {{.MessageFunc.GoName}}({{params .MessageFunc.Params}}) (string, {{.Payload.Name}}) {
	return {{.TopicFunc.GoName}}({{args .MessageFunc.Params}}), {{.Payload.Name}}{}
}
{{- if .NewMessageFunc}}

// {{.NewMessageFunc}} renders the {{.Kind}} topic and wraps a default payload in a watermill message.
func {{.NewMessageFunc}}({{params .MessageFunc.Params}}) (string, *message.Message, error) {
	topic, payload := {{.MessageFunc.GoName}}({{args .MessageFunc.Params}})
	msg, err := contract.NewMessage(topic, payload)
	return topic, msg, err
}

// {{.PublishFunc}} publishes a default {{.Kind}} payload on the rendered topic.
func {{.PublishFunc}}(pub message.Publisher{{if .MessageFunc.Params}}, {{params .MessageFunc.Params}}{{end}}) error {
	topic, payload := {{.MessageFunc.GoName}}({{args .MessageFunc.Params}})
	return contract.Publish(pub, topic, payload)
}
{{- end}}
{{end}}`
