// Package yamlsrc loads a schema declared as a YAML document:
//
//	name: Message
//	package: message
//	imports: [time]
//	kinds:
//	  - name: Notify
//	    topic: notify/{group}
//	  - name: Start
//	    topic: system/{id}/start/{mode}
//	    fields:
//	      immediate: bool
//	      timeout: uint64
//
// The document is walked as a yaml.Node tree rather than decoded into
// structs so that positions, repeated topic keys and non-string topic values
// survive for validation.
package yamlsrc

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/nfrund/contractgen/internal/naming"
	"github.com/nfrund/contractgen/internal/schema"
)

// Load parses data and builds the schema it declares.
func Load(filename string, data []byte) (*schema.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: empty schema document", filename)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: schema must be a mapping", position(filename, root))
	}

	s := &schema.Schema{
		Name:   defaultName(filename),
		Syntax: schema.SyntaxYAML,
		Pos:    position(filename, root),
	}

	var kindsNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "name":
			s.Name = value.Value
		case "package":
			s.Package = value.Value
		case "imports":
			imports, err := loadImports(filename, value)
			if err != nil {
				return nil, err
			}
			s.Imports = imports
		case "kinds":
			kindsNode = value
		default:
			return nil, fmt.Errorf("%s: unknown schema key %q", position(filename, key), key.Value)
		}
	}

	if kindsNode == nil {
		return s, nil
	}
	if kindsNode.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: kinds must be a sequence", position(filename, kindsNode))
	}

	for _, node := range kindsNode.Content {
		decl, err := loadKind(filename, node)
		if err != nil {
			return nil, err
		}
		s.Kinds = append(s.Kinds, decl)
	}
	return s, nil
}

func loadKind(filename string, node *yaml.Node) (schema.KindDeclaration, error) {
	if node.Kind != yaml.MappingNode {
		return schema.KindDeclaration{}, fmt.Errorf("%s: kind must be a mapping", position(filename, node))
	}

	decl := schema.KindDeclaration{
		Pos:    position(filename, node),
		Fields: schema.NoFields{},
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			decl.Name = value.Value
		case "topic":
			decl.Topics = append(decl.Topics, schema.Annotation{
				Value:   value.Value,
				Literal: value.Kind == yaml.ScalarNode && value.ShortTag() == "!!str",
				Pos:     position(filename, value),
			})
		case "fields":
			decl.Fields = fieldShape(filename, value)
		default:
			return schema.KindDeclaration{}, fmt.Errorf("%s: unknown kind key %q", position(filename, key), key.Value)
		}
	}
	return decl, nil
}

func fieldShape(filename string, node *yaml.Node) schema.FieldShape {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return schema.NoFields{}
		}
		return schema.UnsupportedFields{Reason: fmt.Sprintf("fields must be a mapping of name to type, got %q", node.Value)}
	case yaml.SequenceNode:
		return schema.UnsupportedFields{Reason: "positional fields are not supported, give every field a name"}
	case yaml.MappingNode:
	default:
		return schema.UnsupportedFields{Reason: "fields must be a mapping of name to type"}
	}

	fields := make([]schema.Field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return schema.UnsupportedFields{Reason: fmt.Sprintf("field %q must have a type", key.Value)}
		}
		name, serialized := goFieldName(key.Value)
		fields = append(fields, schema.Field{
			Name: name,
			Type: value.Value,
			Key:  serialized,
			Pos:  position(filename, key),
		})
	}
	return schema.NamedFields{Fields: fields}
}

// goFieldName returns the exported Go field name for a YAML field key and the
// serialized key to keep, empty when the Go name can be used as is.
func goFieldName(key string) (string, string) {
	if naming.IsExportedIdent(key) {
		return key, ""
	}
	if token.IsIdentifier(key) {
		return naming.ExportField(key), key
	}

	sanitized := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, key)
	name := naming.GoExported(sanitized)
	if !naming.IsExportedIdent(name) {
		name = "F" + name
	}
	return name, key
}

func loadImports(filename string, node *yaml.Node) ([]schema.Import, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: imports must be a sequence", position(filename, node))
	}

	imports := make([]schema.Import, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s: import must be a string", position(filename, item))
		}
		// "name path" gives the import an explicit package name.
		if name, path, ok := strings.Cut(item.Value, " "); ok {
			imports = append(imports, schema.Import{Name: name, Path: strings.TrimSpace(path)})
			continue
		}
		imports = append(imports, schema.Import{Path: item.Value})
	}
	return imports, nil
}

func position(filename string, node *yaml.Node) token.Position {
	return token.Position{Filename: filename, Line: node.Line, Column: node.Column}
}

// defaultName derives the schema name from the file name: "message.yaml"
// declares "Message".
func defaultName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, base)
	return naming.GoExported(base)
}
