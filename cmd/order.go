package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"topoorder/internal/app"
	"topoorder/internal/config"
	"topoorder/internal/dependency"
	"topoorder/internal/formatting"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// scanOptions are the flags that control which files are scanned and how
// imports are recognized.
type scanOptions struct {
	root          string
	pkg           string
	commentMarker string
	exclude       []string
	gitignore     bool
}

// orderOptions are the flags of the order command (and the root command).
type orderOptions struct {
	scanOptions
	output   string
	format   string
	template string
	watch    bool
	debounce time.Duration
}

func newOrderCmd(global *globalOptions) *cobra.Command {
	opts := &orderOptions{}
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Write the files under the root in dependency order",
		Long: `Scans the root directory, builds the import graph and writes every file
after all of the files it imports.

By default the order goes to topo_order.txt, one path per line. Use
--output - to print it instead, and --format to choose between lines, json,
yaml, template and table output.

With --watch the order is rewritten whenever a file under the root changes,
until interrupted with Ctrl+C. A cycle introduced while watching is reported
and the previous output is left in place.`,
		Example: `  topoorder order
  topoorder order --root lib --output build/order.txt
  topoorder order -o - -f json
  topoorder order -f template --template '{{ .Index }} {{ .ID }}'
  topoorder order --exclude '*.g.dart' --gitignore --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, global, opts)
		},
	}
	addOrderFlags(cmd, opts)
	return cmd
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", config.DefaultRoot, "Directory to scan")
	flags.StringVar(&opts.pkg, "package", config.DefaultPackage, "Package name whose imports form the graph")
	flags.StringVar(&opts.commentMarker, "comment-marker", config.DefaultCommentMarker, "Text that marks an import as commented out (empty disables the check)")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Glob of files or directories to skip (repeatable)")
	flags.BoolVar(&opts.gitignore, "gitignore", false, "Skip paths ignored by <root>/.gitignore")
}

func addOrderFlags(cmd *cobra.Command, opts *orderOptions) {
	addScanFlags(cmd, &opts.scanOptions)

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output file, or - for stdout")
	flags.StringVarP(&opts.format, "format", "f", config.DefaultFormat, "Output format: lines, json, yaml, template or table")
	flags.StringVar(&opts.template, "template", "", "Go template rendered once per file (with --format template)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Rewrite the output whenever the root changes")
	flags.DurationVar(&opts.debounce, "debounce", config.DefaultDebounce, "Quiet period before a rebuild in watch mode")
}

// overrides collects only the flags the user actually set, so unset flags
// never mask values from the configuration file or environment.
func (o *scanOptions) overrides(cmd *cobra.Command) config.Overrides {
	var ov config.Overrides
	flags := cmd.Flags()
	if flags.Changed("root") {
		ov.Root = o.root
	}
	if flags.Changed("package") {
		ov.Package = o.pkg
	}
	if flags.Changed("comment-marker") {
		marker := o.commentMarker
		ov.CommentMarker = &marker
	}
	if flags.Changed("exclude") {
		ov.Exclude = o.exclude
	}
	if flags.Changed("gitignore") {
		gitignore := o.gitignore
		ov.RespectGitignore = &gitignore
	}
	return ov
}

func (o *orderOptions) overrides(cmd *cobra.Command) config.Overrides {
	ov := o.scanOptions.overrides(cmd)
	flags := cmd.Flags()
	if flags.Changed("output") {
		ov.Output = o.output
	}
	if flags.Changed("format") {
		ov.Format = o.format
	}
	if flags.Changed("template") {
		ov.Template = o.template
	}
	if flags.Changed("debounce") {
		ov.Debounce = o.debounce
	}
	return ov
}

// newApplication bootstraps the application for one command invocation.
func newApplication(cmd *cobra.Command, global *globalOptions, overrides config.Overrides, watch bool) (*app.Application, error) {
	cfg := app.NewConfig(global.debug, global.quiet, global.configPath)
	cfg.Verbose = global.verbose
	cfg.LogFormat = global.logFormat
	cfg.Overrides = overrides
	cfg.Watch = watch
	cfg.Stdout = cmd.OutOrStdout()
	cfg.LogOutput = cmd.ErrOrStderr()
	cfg.Color = isTerminal(cmd.OutOrStdout())

	application, err := app.NewApplication(cfg)
	if err != nil {
		printConfigurationHint(cmd, err)
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

func runOrder(cmd *cobra.Command, global *globalOptions, opts *orderOptions) error {
	application, err := newApplication(cmd, global, opts.overrides(cmd), opts.watch)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if opts.watch {
		return application.Run(ctx)
	}

	settings := application.Settings()
	s := newProgress(cmd, global, settings.Output)
	if s != nil {
		s.Suffix = fmt.Sprintf(" Ordering files under %s...", settings.Root)
		s.Start()
	}

	result, err := application.Order(ctx)

	if s != nil {
		if err != nil {
			s.FinalMSG = text.FgRed.Sprint("Failed to order files") + "\n"
		} else {
			s.FinalMSG = text.FgGreen.Sprintf("Wrote %d files to %s", len(result.Order), settings.Output) + "\n"
		}
		s.Stop()
	}

	if err != nil {
		var cycleErr *dependency.CycleError
		if errors.As(err, &cycleErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Nothing was written. Break the cycle and run again.\n")
		}
		return err
	}
	return nil
}

// newProgress returns a spinner when progress can be shown without mixing
// into other output: an interactive stderr, no log output and the result
// going to a file.
func newProgress(cmd *cobra.Command, global *globalOptions, output string) *spinner.Spinner {
	if global.quiet || global.debug || global.verbose || output == formatting.StdoutPath {
		return nil
	}
	if !isTerminal(cmd.ErrOrStderr()) {
		return nil
	}
	return spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
