package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/contractgen/internal/app"
	"github.com/nfrund/contractgen/internal/compiler"
	"github.com/nfrund/contractgen/internal/config"
	"github.com/nfrund/contractgen/internal/diagnostics"
	"github.com/nfrund/contractgen/internal/logging"
	"github.com/nfrund/contractgen/internal/schema"
)

// errReported marks an error whose diagnostics were already printed.
var errReported = errors.New("schema has errors")

var (
	cfg      *config.Config
	logger   *slog.Logger
	injector do.Injector
)

var rootCmd = &cobra.Command{
	Use:   "contractgen",
	Short: "Generate typed message contracts from schemas",
	Long: `contractgen compiles a message schema into Go code: one payload type per kind,
a topic builder that fills the kind's topic template placeholders, and a message
constructor that returns the rendered topic together with a default payload.

Schemas are declared as a Go struct with topic tags or as a YAML document.

Available commands:
  generate    Generate the contract file for a schema
  validate    Check a schema and print diagnostics
  inspect     Show the kinds and generated names of a schema
  version     Print the version number

Use "contractgen [command] --help" for more information about a specific command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger = logging.New(cfg.LogFormat, cfg.LogLevel)
		injector = app.NewInjector(cfg, logger, afero.NewOsFs())
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func schemaCompiler() *compiler.Compiler {
	return do.MustInvoke[*compiler.Compiler](injector)
}

// report prints err as a diagnostic when it is a schema error. It returns
// errReported in that case so Execute does not print it again.
func report(w io.Writer, path string, res *compiler.Result, err error) error {
	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		return err
	}

	syntax := syntaxOf(path)
	if res != nil && res.Schema != nil {
		syntax = res.Schema.Syntax
	}
	if writeErr := diagnostics.Report(w, err, syntax); writeErr != nil {
		return err
	}
	return errReported
}

// warn prints the warnings of a successful pass.
func warn(w io.Writer, s *schema.Schema, kinds []schema.ValidatedKind) {
	for _, d := range diagnostics.Warnings(kinds, s.Syntax) {
		_ = diagnostics.Write(w, d)
	}
}

func syntaxOf(path string) schema.Syntax {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.SyntaxYAML
	default:
		return schema.SyntaxGo
	}
}

// compilerOptions merges command flags over the configuration.
func compilerOptions(cmd *cobra.Command, f *schemaFlags) compiler.Options {
	opts := compiler.OptionsFromConfig(cfg)
	opts.TypeName = f.typeName
	if cmd.Flags().Changed("lenient-templates") {
		opts.LenientTemplates = f.lenient
	}
	if cmd.Flags().Changed("watermill") {
		opts.Watermill = f.watermill
	}
	return opts
}

// schemaFlags are shared by the commands that read a schema.
type schemaFlags struct {
	typeName  string
	lenient   bool
	watermill bool
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typeName, "type", "t", "", "Schema struct type in a Go source file (default: first struct with topic tags)")
	cmd.Flags().BoolVar(&f.lenient, "lenient-templates", false, "Treat unbalanced braces in topic templates as literal text")
	cmd.Flags().BoolVar(&f.watermill, "watermill", false, "Generate watermill message constructors")
}
