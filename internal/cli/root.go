package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/config"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
)

func Execute(build BuildInfo, streams IOStreams) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &AppContext{Build: build, IO: streams}
	root := newRootCommand(app)

	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil && !errors.As(err, new(*ExitError)) {
			return exitcode.Interrupted
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(streams.ErrOut, "ERROR:", msg)
		}
		return mapExitCode(err)
	}
	return exitcode.Success
}

func newRootCommand(app *AppContext) *cobra.Command {
	showVersion := false

	root := &cobra.Command{
		Use:   "songmatch",
		Short: "Check and tune fuzzy song-title guesses",
		Long:  "songmatch scores free-form guesses against a track's title and artists, explains the scores, and evaluates labeled guesses to tune the acceptance thresholds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(app)
				return nil
			}
			return cmd.Help()
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	defaultConfigPath := os.Getenv(config.EnvConfigPath)
	root.PersistentFlags().StringVarP(&app.Opts.ConfigPath, "config", "c", defaultConfigPath, "Path to config file")
	root.PersistentFlags().BoolVar(&app.Opts.JSON, "json", false, "Emit JSON output")
	root.PersistentFlags().StringVar(&app.Opts.LogLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	root.Flags().BoolVar(&showVersion, "version", false, "Print version info")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(exitcode.InvalidUsage, err)
	})

	root.AddCommand(newCheckCommand(app))
	root.AddCommand(newExplainCommand(app))
	root.AddCommand(newEvaluateCommand(app))
	root.AddCommand(newInteractiveCommand(app))
	root.AddCommand(newThresholdsCommand(app))
	root.AddCommand(newValidateCommand(app))
	root.AddCommand(newVersionCommand(app))

	return root
}

func printVersion(app *AppContext) {
	version := app.Build.Version
	if version == "" {
		version = "dev"
	}
	commit := app.Build.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := app.Build.Date
	if date == "" {
		date = "unknown"
	}

	fmt.Fprintf(app.IO.Out, "songmatch version %s\ncommit: %s\nbuild_date: %s\n", version, commit, date)
}
