package cmd

import (
	"errors"
	"fmt"
	"os"

	"topoorder/internal/config"
	"topoorder/internal/dependency"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// These follow common conventions so scripts can tell a broken tree from a
// broken invocation.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCycle indicates the source tree contains a dependency cycle.
	ExitCodeCycle = 2
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	debug      bool
	verbose    bool
	quiet      bool
	logFormat  string
}

// rootCmd represents the base command for the topoorder application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Running the root command without a
// subcommand behaves like `topoorder order`.
func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	order := &orderOptions{}

	cmd := &cobra.Command{
		Use:   "topoorder",
		Short: "Order source files so that dependencies come first",
		Long: `topoorder scans a directory tree, extracts package imports of the form

    import 'package:manim_web/util/color.dart';

from every file and writes the files in dependency order: a file is only
listed after everything it imports. The order is written to topo_order.txt,
one path per line, ready for concatenation or bundling.

Imports that are commented out with "// import '...'" are ignored. A
dependency cycle aborts the run without writing anything (exit code 2).

Configuration is read from .topoorder.yaml if present, then from TOPOORDER_*
environment variables (and a .env file), then from flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, global, order)
		},
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		// This is useful for providing cleaner error output to the user.
		SilenceUsage: true,
	}

	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	cmd.SetVersionTemplate(`{{printf "topoorder version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVar(&global.configPath, "config", "", "Configuration file (default: "+config.DefaultConfigFile+" if present)")
	flags.BoolVar(&global.debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "Log progress at info level")
	flags.BoolVarP(&global.quiet, "quiet", "q", false, "Suppress log output and progress indicators")
	flags.StringVar(&global.logFormat, "log-format", "text", "Log format: text or json")

	addOrderFlags(cmd, order)

	cmd.AddCommand(newOrderCmd(global))
	cmd.AddCommand(newGraphCmd(global))
	cmd.AddCommand(newCheckCmd(global))
	cmd.AddCommand(newInitCmd(global))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		// Check for specific error types and return appropriate exit codes
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cycleErr *dependency.CycleError
	if errors.As(err, &cycleErr) {
		return ExitCodeCycle
	}

	// Default to general error
	return ExitCodeError
}

// printConfigurationHint prints the detailed form of a configuration error,
// which includes the file, line and suggestions that Error() leaves out.
func printConfigurationHint(cmd *cobra.Command, err error) {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), cfgErr.DetailedError())
	}
}
