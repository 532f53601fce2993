// Package gosrc loads a schema declared as a Go struct type.
//
// Each field of the struct is a kind. The field's `topic:"..."` tag is the
// kind's topic template and the field's type is its field shape:
//
//	type Message struct {
//		Notify    struct{} `topic:"notify/{group}"`
//		NotifyAll struct{} `topic:"notify_all"`
//		Start     struct {
//			Immediate bool
//			Timeout   uint64
//		} `topic:"system/{id}/start/{mode}"`
//	}
package gosrc

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/nfrund/contractgen/internal/naming"
	"github.com/nfrund/contractgen/internal/schema"
)

// TopicTag is the struct tag key holding a kind's topic template.
const TopicTag = "topic"

// Loader parses Go schema sources.
type Loader struct {
	fileSet *token.FileSet
}

// NewLoader creates a new loader.
func NewLoader() *Loader {
	return &Loader{
		fileSet: token.NewFileSet(),
	}
}

// Load parses src and builds the schema declared by typeName. When typeName
// is empty the first struct type with a topic tag is used.
func (l *Loader) Load(filename string, src []byte, typeName string) (*schema.Schema, error) {
	file, err := parser.ParseFile(l.fileSet, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	spec := l.findType(file, typeName)
	if spec == nil {
		if typeName == "" {
			return nil, fmt.Errorf("no struct type with %q tags found in %s", TopicTag, filename)
		}
		return nil, fmt.Errorf("type %q not found in %s", typeName, filename)
	}

	s := &schema.Schema{
		Name:    spec.Name.Name,
		Package: file.Name.Name,
		Syntax:  schema.SyntaxGo,
		Pos:     l.fileSet.Position(spec.Name.Pos()),
		Imports: l.imports(file),
	}

	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, &schema.SchemaError{
			Type:    schema.ErrorUnsupportedFieldShape,
			Kind:    s.Name,
			Pos:     s.Pos,
			Message: fmt.Sprintf("type %s must be a struct whose fields declare the message kinds", s.Name),
		}
	}

	for _, field := range structType.Fields.List {
		s.Kinds = append(s.Kinds, l.kinds(field)...)
	}
	return s, nil
}

// findType locates the named type spec, or the first struct carrying topic
// tags when name is empty.
func (l *Loader) findType(file *ast.File, name string) *ast.TypeSpec {
	var found *ast.TypeSpec
	ast.Inspect(file, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		spec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		if name != "" {
			if spec.Name.Name == name {
				found = spec
			}
			return false
		}
		if st, ok := spec.Type.(*ast.StructType); ok && hasTopicTags(st) {
			found = spec
		}
		return false
	})
	return found
}

func hasTopicTags(st *ast.StructType) bool {
	for _, field := range st.Fields.List {
		if field.Tag != nil && strings.Contains(field.Tag.Value, TopicTag+":") {
			return true
		}
	}
	return false
}

// kinds converts one struct field into kind declarations. A field line with
// several names declares several kinds sharing the tag and type.
func (l *Loader) kinds(field *ast.Field) []schema.KindDeclaration {
	topics := l.topics(field.Tag)
	shape := l.fieldShape(field.Type)

	if len(field.Names) == 0 {
		return []schema.KindDeclaration{{
			Name:   embeddedName(field.Type),
			Pos:    l.fileSet.Position(field.Pos()),
			Topics: topics,
			Fields: schema.UnsupportedFields{Reason: "embedded kinds are not supported"},
		}}
	}

	decls := make([]schema.KindDeclaration, 0, len(field.Names))
	for _, name := range field.Names {
		decls = append(decls, schema.KindDeclaration{
			Name:   name.Name,
			Pos:    l.fileSet.Position(name.Pos()),
			Topics: topics,
			Fields: shape,
		})
	}
	return decls
}

// embeddedName is the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	default:
		return types.ExprString(expr)
	}
}

func (l *Loader) fieldShape(expr ast.Expr) schema.FieldShape {
	st, ok := expr.(*ast.StructType)
	if !ok {
		return schema.UnsupportedFields{
			Reason: fmt.Sprintf("field type %s is not a struct", types.ExprString(expr)),
		}
	}
	if len(st.Fields.List) == 0 {
		return schema.NoFields{}
	}

	var fields []schema.Field
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return schema.UnsupportedFields{
				Reason: fmt.Sprintf("embedded field %s has no name", types.ExprString(f.Type)),
			}
		}
		tag := jsonTag(f.Tag)
		for _, name := range f.Names {
			fields = append(fields, schema.Field{
				Name: naming.ExportField(name.Name),
				Type: types.ExprString(f.Type),
				Key:  fieldKey(name.Name, tag),
				Pos:  l.fileSet.Position(name.Pos()),
			})
		}
	}
	return schema.NamedFields{Fields: fields}
}

// topics extracts every topic annotation from a field tag.
func (l *Loader) topics(tag *ast.BasicLit) []schema.Annotation {
	if tag == nil {
		return nil
	}
	pos := l.fileSet.Position(tag.Pos())

	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil
	}

	var annotations []schema.Annotation
	for _, v := range lookupAll(raw, TopicTag) {
		annotations = append(annotations, schema.Annotation{
			Value:   v.value,
			Literal: v.literal,
			Pos:     pos,
		})
	}
	return annotations
}

// jsonTag returns the json tag of a field as written, options included.
func jsonTag(tag *ast.BasicLit) string {
	if tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(raw).Get("json")
}

// fieldKey is the serialized key of a field declared as name. An unexported
// name is kept as the key of its exported spelling, including when the tag
// only carries options.
func fieldKey(name, tag string) string {
	if naming.ExportField(name) == name {
		return tag
	}
	if tag == "" || strings.HasPrefix(tag, ",") {
		return name + tag
	}
	return tag
}

func (l *Loader) imports(file *ast.File) []schema.Import {
	imports := make([]schema.Import, 0, len(file.Imports))
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports = append(imports, schema.Import{Name: name, Path: path})
	}
	return imports
}
