package generator_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/contractgen/internal/generator"
	"github.com/nfrund/contractgen/internal/schema"
	"github.com/nfrund/contractgen/internal/schema/gosrc"
)

// stubSources declare the parts of each imported package that generated code
// refers to.
var stubSources = map[string]string{
	"fmt": `package fmt

func Sprintf(format string, a ...any) string { return "" }
`,
	"time": `package time

type Time struct{ wall uint64 }
`,
	"github.com/ThreeDotsLabs/watermill/message": `package message

type Message struct{ UUID string }

type Publisher interface {
	Publish(topic string, messages ...*Message) error
	Close() error
}
`,
	"github.com/nfrund/contractgen/contract": `package contract

import "github.com/ThreeDotsLabs/watermill/message"

type Payload interface {
	ToJSON() ([]byte, error)
	ToBinary() ([]byte, error)
}

func MarshalJSON(v any) ([]byte, error)       { return nil, nil }
func UnmarshalJSON(data []byte, v any) error   { return nil }
func MarshalBinary(v any) ([]byte, error)     { return nil, nil }
func UnmarshalBinary(data []byte, v any) error { return nil }
func Equal(a, b any) bool                      { return false }

func NewMessage(topic string, p Payload) (*message.Message, error) { return nil, nil }

func Publish(pub message.Publisher, topic string, p Payload) error { return nil }
`,
}

type stubImporter struct {
	fset *token.FileSet
	pkgs map[string]*types.Package
}

func (s *stubImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := s.pkgs[path]; ok {
		return pkg, nil
	}
	src, ok := stubSources[path]
	if !ok {
		return nil, fmt.Errorf("no stub for %s", path)
	}
	file, err := parser.ParseFile(s.fset, path+"/stub.go", src, 0)
	if err != nil {
		return nil, err
	}
	pkg, err := (&types.Config{Importer: s}).Check(path, s.fset, []*ast.File{file}, nil)
	if err != nil {
		return nil, err
	}
	s.pkgs[path] = pkg
	return pkg, nil
}

// typeCheck compiles src against the stub packages and returns the package.
func typeCheck(t *testing.T, src []byte) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "contract.go", src, 0)
	require.NoError(t, err)

	var errs []error
	conf := types.Config{
		Importer: &stubImporter{fset: fset, pkgs: make(map[string]*types.Package)},
		Error:    func(err error) { errs = append(errs, err) },
	}
	pkg, _ := conf.Check(file.Name.Name, fset, []*ast.File{file}, nil)
	require.Empty(t, errs, "generated code does not type-check:\n%s", src)
	return pkg
}

func TestEmittedCodeTypeChecks(t *testing.T) {
	tests := []struct {
		name   string
		fields string
		topic  string
		target error
	}{
		{
			name:   "lowercase fields",
			fields: "struct {\n\t\timmediate bool\n\t\ttimeout uint64 `json:\",omitempty\"`\n\t}",
			topic:  "system/{id}/start/{mode}",
		},
		{
			name:   "fields named like payload methods",
			fields: "struct{ String string }",
			topic:  "label/{id}",
			target: schema.ErrNameCollision,
		},
		{
			name:   "placeholders named like generated identifiers",
			fields: "struct{}",
			topic:  "notify/{KindPayload}/{KindTopic}/{Kind}/{fmt}/{message}/{pub}",
		},
		{
			name:   "repeated placeholders",
			fields: "struct{ At time.Time `json:\"-\"` }",
			topic:  "{id}/{id}/{id}",
		},
		{
			name:   "percent in template",
			fields: "struct{ Load float64 }",
			topic:  "cpu/100%/{host}",
		},
		{
			name:   "percent without placeholders",
			fields: "struct{}",
			topic:  "cpu/100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fmt.Sprintf("package events\n\nimport \"time\"\n\nvar _ time.Time\n\n"+
				"type Event struct {\n\tKind %s `topic:%q`\n}\n", tt.fields, tt.topic)
			s, err := gosrc.NewLoader().Load("events.go", []byte(src), "Event")
			require.NoError(t, err)

			kinds, err := schema.Walk(s, schema.WalkOptions{})
			require.NoError(t, err)
			artifacts, err := generator.Build(s.Name, kinds, generator.BuildOptions{Watermill: true})
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
				return
			}
			require.NoError(t, err)

			out, err := generator.NewGoEmitter(generator.EmitOptions{}).Emit(s, artifacts)
			require.NoError(t, err)
			pkg := typeCheck(t, out)

			payload := pkg.Scope().Lookup(artifacts[0].Payload.Name)
			require.NotNil(t, payload)
			st, ok := payload.Type().Underlying().(*types.Struct)
			require.True(t, ok)
			for i := 0; i < st.NumFields(); i++ {
				assert.True(t, st.Field(i).Exported(), "payload field %s is not exported", st.Field(i).Name())
			}
		})
	}
}
