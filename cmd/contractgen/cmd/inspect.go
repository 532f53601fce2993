package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/contractgen/cmd/contractgen/internal/display"
	"github.com/nfrund/contractgen/internal/compiler"
	"github.com/nfrund/contractgen/internal/generator"
)

var (
	inspectFlags  schemaFlags
	inspectFormat string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <schema>",
	Short: "Show the kinds and generated names of a schema",
	Long: `Inspect a schema and show, for every kind, its topic template, the topic
builder parameters and the generated payload type.

Examples:
  contractgen inspect message.go                  # Table format
  contractgen inspect --format json message.go    # JSON format with generated names

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	Args: cobra.ExactArgs(1),
	RunE: inspectHandler,
}

func inspectHandler(cmd *cobra.Command, args []string) error {
	if inspectFormat != "table" && inspectFormat != "json" {
		return fmt.Errorf("invalid format %q: valid formats are table, json", inspectFormat)
	}

	path := args[0]
	opts := compilerOptions(cmd, &inspectFlags)

	s, kinds, err := schemaCompiler().Check(cmd.Context(), path, opts)
	if err != nil {
		return report(cmd.ErrOrStderr(), path, &compiler.Result{Schema: s}, err)
	}
	artifacts, err := generator.Build(s.Name, kinds, generator.BuildOptions{Watermill: opts.Watermill})
	if err != nil {
		return report(cmd.ErrOrStderr(), path, &compiler.Result{Schema: s}, err)
	}
	warn(cmd.ErrOrStderr(), s, kinds)

	if inspectFormat == "json" {
		return display.DisplayKindsJSON(cmd.OutOrStdout(), s, artifacts)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema '%s' (%s):\n\n", s.Name, s.Syntax)
	return display.DisplayKindsTable(cmd.OutOrStdout(), artifacts)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectFlags.register(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "table", "Output format (table, json)")
}
