// Package cmd contains all CLI commands for the phrasekit binary.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/phrasekit/cmd/browse"
	"github.com/klytics/phrasekit/cmd/completion"
	cmdconfig "github.com/klytics/phrasekit/cmd/config"
	"github.com/klytics/phrasekit/cmd/doc"
	cmdhistory "github.com/klytics/phrasekit/cmd/history"
	cmdinsert "github.com/klytics/phrasekit/cmd/insert"
	"github.com/klytics/phrasekit/cmd/sample"
	"github.com/klytics/phrasekit/cmd/search"
	"github.com/klytics/phrasekit/cmd/shell"
	"github.com/klytics/phrasekit/cmd/tree"
	"github.com/klytics/phrasekit/cmd/version"
	cmdwatch "github.com/klytics/phrasekit/cmd/watch"
	"github.com/klytics/phrasekit/internal/app"
	"github.com/klytics/phrasekit/internal/catalog"
	"github.com/klytics/phrasekit/internal/config"
	"github.com/klytics/phrasekit/internal/logging"
	"github.com/klytics/phrasekit/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
	configFile string
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phrasekit",
		Short: "Browse and insert canned phrases from a spreadsheet",
		Long: `phrasekit — canned phrases, one keystroke away.

Loads a phrase spreadsheet (.xlsx), groups the phrases by category and
sub-category, searches them by words, and inserts the one you pick into a
.docx document at its cursor marker, the clipboard or stdout.

Spreadsheet columns: work types | themes | title | rating | phrase.
Work types and themes may hold comma-separated lists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if noColor || !cfg.Output.Color {
				color.NoColor = true
			}
			logger, err := logging.New(verbose, cfg.Log.Level)
			if err != nil {
				return err
			}
			cmd.SetContext(app.WithEnv(cmd.Context(), &app.Env{Config: cfg, Logger: logger}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.FromContext(cmd.Context()).Logger.Sync()
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.phrasekit/config.yaml)")

	// Register subcommands
	rootCmd.AddCommand(tree.NewCommand())
	rootCmd.AddCommand(search.NewCommand())
	rootCmd.AddCommand(cmdinsert.NewCommand())
	rootCmd.AddCommand(browse.NewCommand())
	rootCmd.AddCommand(shell.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdhistory.NewCommand())
	rootCmd.AddCommand(doc.NewCommand())
	rootCmd.AddCommand(sample.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, NewRootCommand(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs root and reports a failure as a JSON error envelope on stdout
// when --json is set, or as an "Error:" line on stderr.
func execute(ctx context.Context, root *cobra.Command, stdout, stderr io.Writer) int {
	ran, err := root.ExecuteContextC(ctx)
	if err == nil {
		return output.ExitOK
	}

	code := exitCode(err)
	if jsonOutput {
		if ran == nil {
			ran = root
		}
		name := strings.TrimPrefix(strings.TrimPrefix(ran.CommandPath(), root.Name()), " ")
		if encErr := output.FprintJSONError(stdout, name, err, code); encErr == nil {
			return code
		}
	}
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return code
}

// exitCode maps spreadsheet and file system failures to ExitSystemError and
// everything else to ExitUserError.
func exitCode(err error) int {
	var pathErr *fs.PathError
	if errors.Is(err, catalog.ErrUnreadable) || errors.As(err, &pathErr) {
		return output.ExitSystemError
	}
	return output.ExitUserError
}
