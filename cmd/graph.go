package cmd

import (
	"topoorder/internal/formatting"

	"github.com/spf13/cobra"
)

type graphOptions struct {
	scanOptions
	format   string
	template string
}

func newGraphCmd(global *globalOptions) *cobra.Command {
	opts := &graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the import graph in dependency order",
		Long: `Scans the root and prints every file in dependency order together with
the files it imports and the files that import it. Nothing is written to
the output file.

Files that are imported but do not exist under the root are marked as
missing; they are still ordered, without dependencies of their own.`,
		Example: `  topoorder graph
  topoorder graph -f json
  topoorder graph -f template --template '{{ .ID }} <- {{ join ", " .Dependents }}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, global, opts)
		},
	}

	addScanFlags(cmd, &opts.scanOptions)
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatting.FormatTable), "Output format: table, lines, json, yaml or template")
	cmd.Flags().StringVar(&opts.template, "template", "", "Go template rendered once per file (with --format template)")
	return cmd
}

func runGraph(cmd *cobra.Command, global *globalOptions, opts *graphOptions) error {
	format, err := formatting.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	overrides := opts.overrides(cmd)
	overrides.Template = opts.template

	application, err := newApplication(cmd, global, overrides, false)
	if err != nil {
		return err
	}

	result, err := application.Analyze(commandContext(cmd))
	if err != nil {
		return err
	}

	data, err := application.Render(result, format, true)
	if err != nil {
		return err
	}
	return formatting.WriteOutput(formatting.StdoutPath, data, cmd.OutOrStdout())
}
