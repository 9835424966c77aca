package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seabearDEV/scaf/internal/config"
	"github.com/seabearDEV/scaf/internal/format"
	"github.com/seabearDEV/scaf/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
	// Debug enables debug output when true.
	Debug bool
)

// NewRootCmd creates the root cobra command with all subcommands registered.
// Run without arguments it writes the dashboard scaffold with the configured
// defaults.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scaf",
		Short: "Write the dashboard page scaffold into the current project",
		Long: `Write a fixed starter file into the current project.

With no arguments scaf writes the dashboard page to src/app/dashboard/page.tsx,
replacing whatever is there. The parent directory must already exist.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if os.Getenv("DEBUG") == "true" {
				Debug = true
			}
			setupLogging(cmd.ErrOrStderr(), Debug)
			cfg := config.Load()
			format.SetColorsEnabled(cfg.Colors)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, scaffold.DefaultTemplate, writeFlags{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug output")
	rootCmd.SetVersionTemplate(fmt.Sprintf("scaf version %s (commit: %s)\n", Version, Commit))

	rootCmd.AddCommand(
		newWriteCmd(),
		newListCmd(),
		newShowCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the process arguments and exits with
// the resulting status.
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the root command and returns the exit status: 0 on success,
// 1 after printing the error to stderr.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, format.Error(err.Error()))
		return 1
	}
	return 0
}

// setupLogging points the global zerolog logger at w. Only warnings and
// errors are shown unless debug is set.
func setupLogging(w io.Writer, debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
