package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nfrund/contractgen/internal/watch"
)

var (
	generateFlags   schemaFlags
	generateOutput  string
	generatePackage string
	generateWatch   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <schema>",
	Short: "Generate the contract file for a schema",
	Long: `Generate the Go contract file for a schema. For every kind the file declares
a payload type with JSON and CBOR codecs, a topic builder and a message constructor.

The schema is either a Go source file containing a struct whose fields carry
topic tags, or a YAML document (.yaml or .yml). By default the output is written
next to the schema as <name>_contract.go. Nothing is written when the schema has
errors.

Examples:
  # Typical go:generate directive in the schema file
  //go:generate go run github.com/nfrund/contractgen/cmd/contractgen generate --type Message $GOFILE

  # Basic usage
  contractgen generate message.go                        # Writes message_contract.go
  contractgen generate --type Message message.go         # Select the schema struct
  contractgen generate schemas/events.yaml -o gen/events/events.go --package events

  # Options
  contractgen generate --watermill message.go            # Add NewXMessage constructors
  contractgen generate --lenient-templates message.go    # Accept unbalanced braces
  contractgen generate --watch message.go                # Regenerate on every change`,
	Args: cobra.ExactArgs(1),
	RunE: generateHandler,
}

func generateHandler(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := compilerOptions(cmd, &generateFlags)
	opts.Output = generateOutput
	opts.Package = generatePackage

	c := schemaCompiler()
	run := func(ctx context.Context) error {
		res, err := c.Generate(ctx, path, opts)
		if err != nil {
			return report(cmd.ErrOrStderr(), path, res, err)
		}
		warn(cmd.ErrOrStderr(), res.Schema, res.Kinds)
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated %s (%d kinds)\n", res.Output, len(res.Artifacts))
		return nil
	}

	if !generateWatch {
		return run(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("Initial generation failed", "path", path, "error", err)
	}
	return watch.New(path, cfg.WatchDebounce, run, logger).Run(ctx)
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateFlags.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: <schema>_contract.go next to the schema)")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "Package name of the generated file (default: the schema's package)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the schema changes")
}
