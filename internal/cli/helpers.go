package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/config"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/logging"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

func loadConfig(app *AppContext) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path: strings.TrimSpace(app.Opts.ConfigPath),
		Env:  app.Env,
	})
	if err != nil {
		return config.Config{}, err
	}

	if level := strings.TrimSpace(app.Opts.LogLevel); level != "" {
		if !logging.ValidLevel(level) {
			return config.Config{}, withExitCode(exitcode.InvalidUsage, fmt.Errorf("invalid --log-level %q", level))
		}
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// session is the per-command runtime: config, logger and matcher.
type session struct {
	cfg     config.Config
	logs    *logging.Manager
	logger  *slog.Logger
	matcher *songmatch.Matcher
}

func openSession(app *AppContext) (*session, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		var coded *ExitError
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, withExitCode(exitcode.InvalidConfig, err)
	}

	logs, logger := logging.NewManager(cfg.Logging, app.IO.ErrOut)

	matcher, err := cfg.NewMatcher(logger)
	if err != nil {
		logs.Close() //nolint:errcheck
		return nil, withExitCode(exitcode.InvalidConfig, err)
	}

	logger.Debug("session ready", "config", app.Opts.ConfigPath, "logging", cfg.Logging.String())
	return &session{cfg: cfg, logs: logs, logger: logger, matcher: matcher}, nil
}

func (s *session) Close() {
	s.logs.Close() //nolint:errcheck
}

// trackFlags binds the --title and --artist flags shared by check, explain and interactive.
type trackFlags struct {
	title   string
	artists []string
}

func (f *trackFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Track title")
	cmd.Flags().StringArrayVar(&f.artists, "artist", nil, "Track artist (repeatable, in credit order)")
}

func (f *trackFlags) track() (songmatch.TrackDescriptor, error) {
	if strings.TrimSpace(f.title) == "" && len(f.artists) == 0 {
		return songmatch.TrackDescriptor{}, withExitCode(exitcode.InvalidUsage, fmt.Errorf("--title or --artist is required"))
	}
	return songmatch.NewTrack(f.title, f.artists...), nil
}

// guessArgs accepts one or more words forming the guess.
func guessArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return withExitCode(exitcode.InvalidUsage, fmt.Errorf("%s requires a guess", cmd.Name()))
	}
	return nil
}

func writeJSON(app *AppContext, v any) error {
	enc := json.NewEncoder(app.IO.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describeVariant(v *songmatch.Variant) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%q (%s)", v.Text, v.Kind)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
