// Package compiler runs one complete generation pass: load a schema file,
// validate it, derive the artifacts, render the Go source and write it.
//
// A pass either succeeds completely or fails without writing anything.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nfrund/contractgen/internal/config"
	"github.com/nfrund/contractgen/internal/generator"
	"github.com/nfrund/contractgen/internal/schema"
	"github.com/nfrund/contractgen/internal/schema/gosrc"
	"github.com/nfrund/contractgen/internal/schema/yamlsrc"
	"github.com/nfrund/contractgen/internal/storage"
)

// Options configures a pass.
type Options struct {
	// TypeName selects the schema struct in a Go source file.
	TypeName string
	// Output is the generated file path. Empty means next to the schema.
	Output string
	// Package overrides the generated package name.
	Package string
	// OutputSuffix replaces the schema file extension to form the default
	// output name.
	OutputSuffix     string
	LenientTemplates bool
	Watermill        bool
}

// OptionsFromConfig returns the options implied by cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OutputSuffix:     cfg.OutputSuffix,
		LenientTemplates: cfg.LenientTemplates,
		Watermill:        cfg.Watermill,
	}
}

// Result is the outcome of a successful pass.
type Result struct {
	Schema    *schema.Schema
	Kinds     []schema.ValidatedKind
	Artifacts []generator.Artifact
	Output    string
	Source    []byte
}

// Compiler runs generation passes against a Store.
type Compiler struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates a new Compiler.
func New(store storage.Store, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{store: store, logger: logger}
}

// Load reads and parses the schema at path. The loader is chosen by file
// extension: .go for Go sources, .yaml or .yml for YAML documents.
func (c *Compiler) Load(ctx context.Context, path, typeName string) (*schema.Schema, error) {
	data, err := storage.ReadFile(ctx, c.store, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return gosrc.NewLoader().Load(path, data, typeName)
	case ".yaml", ".yml":
		if typeName != "" {
			c.logger.Warn("Ignoring type name for YAML schema", "path", path, "type", typeName)
		}
		return yamlsrc.Load(path, data)
	default:
		return nil, fmt.Errorf("unsupported schema file %s: expected .go, .yaml or .yml", path)
	}
}

// Check loads and validates the schema at path without generating code.
func (c *Compiler) Check(ctx context.Context, path string, opts Options) (*schema.Schema, []schema.ValidatedKind, error) {
	s, err := c.Load(ctx, path, opts.TypeName)
	if err != nil {
		return nil, nil, err
	}
	kinds, err := schema.Walk(s, schema.WalkOptions{LenientTemplates: opts.LenientTemplates})
	if err != nil {
		return s, nil, err
	}
	return s, kinds, nil
}

// Compile runs a pass in memory and returns the rendered source without
// writing it. The returned schema is non-nil whenever loading succeeded, so
// callers can report errors in the schema's syntax.
func (c *Compiler) Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	s, kinds, err := c.Check(ctx, path, opts)
	if err != nil {
		return &Result{Schema: s}, err
	}

	artifacts, err := generator.Build(s.Name, kinds, generator.BuildOptions{Watermill: opts.Watermill})
	if err != nil {
		return &Result{Schema: s}, err
	}

	output := opts.Output
	if output == "" {
		output = OutputPath(path, opts.OutputSuffix)
	}
	if filepath.Clean(output) == filepath.Clean(path) {
		return &Result{Schema: s}, fmt.Errorf("output %s would overwrite the schema", output)
	}

	src, err := generator.NewGoEmitter(generator.EmitOptions{
		Package:  opts.Package,
		Source:   filepath.Base(path),
		Filename: output,
	}).Emit(s, artifacts)
	if err != nil {
		return &Result{Schema: s}, err
	}

	return &Result{
		Schema:    s,
		Kinds:     kinds,
		Artifacts: artifacts,
		Output:    output,
		Source:    src,
	}, nil
}

// Generate runs a pass and writes the generated file. Nothing is written when
// any step fails.
func (c *Compiler) Generate(ctx context.Context, path string, opts Options) (*Result, error) {
	res, err := c.Compile(ctx, path, opts)
	if err != nil {
		return res, err
	}

	if c.upToDate(ctx, res) {
		c.logger.Debug("Contract is up to date", "output", res.Output)
		return res, nil
	}
	if err := storage.WriteFile(ctx, c.store, res.Output, res.Source); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", res.Output, err)
	}

	c.logger.Info("Generated contract",
		"schema", path,
		"output", res.Output,
		"kinds", len(res.Artifacts),
	)
	return res, nil
}

// upToDate reports whether the output already holds the generated source, so
// an unchanged contract keeps its modification time.
func (c *Compiler) upToDate(ctx context.Context, res *Result) bool {
	exists, err := c.store.Exists(ctx, res.Output)
	if err != nil || !exists {
		return false
	}
	current, err := storage.ReadFile(ctx, c.store, res.Output)
	if err != nil {
		return false
	}
	return bytes.Equal(current, res.Source)
}

// OutputPath returns the default generated file path for a schema: the schema
// path with its extension replaced by suffix, "_contract.go" when empty.
func OutputPath(path, suffix string) string {
	if suffix == "" {
		suffix = config.DefaultOutputSuffix
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
