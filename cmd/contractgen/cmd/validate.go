package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/contractgen/cmd/contractgen/internal/display"
)

var (
	validateFlags   schemaFlags
	validatePackage string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <schema>",
	Short: "Check a schema and print diagnostics",
	Long: `Validate a schema by running a complete generation pass in memory. Nothing
is written, and a schema passes exactly when generate would accept it.

The validation process checks, for every kind in declaration order:
- The kind name is an exported identifier and is declared once
- Exactly one topic annotation with a string template is present
- The kind has no fields or named fields only
- The topic template has balanced braces and no empty placeholders
- No generated identifier collides with another one, including the
  watermill constructors when --watermill is set

The first problem is reported with its position and the expected annotation
syntax, and the command exits with status 1.

Examples:
  contractgen validate message.go
  contractgen validate --type Message message.go
  contractgen validate --watermill message.go
  contractgen validate --package events schemas/events.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: validateHandler,
}

func validateHandler(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := compilerOptions(cmd, &validateFlags)
	opts.Package = validatePackage

	res, err := schemaCompiler().Compile(cmd.Context(), path, opts)
	if err != nil {
		return report(cmd.ErrOrStderr(), path, res, err)
	}

	warn(cmd.ErrOrStderr(), res.Schema, res.Kinds)
	display.DisplayValidationResult(cmd.OutOrStdout(), res.Schema, res.Kinds)
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateFlags.register(validateCmd)
	validateCmd.Flags().StringVarP(&validatePackage, "package", "p", "", "Package name of the generated file (default: the schema's package)")
}
