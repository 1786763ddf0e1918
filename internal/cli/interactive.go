package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/reload"
)

func newInteractiveCommand(app *AppContext) *cobra.Command {
	var flags trackFlags
	watch := false

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Check guesses read line by line from stdin",
		Long:  "interactive checks each line of standard input as a guess for the track. With --watch, threshold edits in the config file apply to the following guesses without a restart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := flags.track()
			if err != nil {
				return err
			}
			if watch && strings.TrimSpace(app.Opts.ConfigPath) == "" {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("--watch requires --config"))
			}

			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			var wg sync.WaitGroup
			defer func() {
				cancel()
				wg.Wait()
			}()

			if watch {
				w := reload.New(app.Opts.ConfigPath, s.matcher, s.logs, s.logger)
				w.SetEnv(app.Env)
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := w.Run(ctx); err != nil {
						s.logger.Error("config watcher stopped", "error", err)
					}
				}()
			}

			enc := json.NewEncoder(app.IO.Out)
			scanner := bufio.NewScanner(app.IO.In)
			for scanner.Scan() {
				if err := ctx.Err(); err != nil {
					return err
				}

				guess := strings.TrimSpace(scanner.Text())
				if guess == "" {
					continue
				}

				result := s.matcher.CheckMatch(guess, track)
				if app.Opts.JSON {
					if err := enc.Encode(result); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(app.IO.Out, "%s\tmatch=%s score=%.4f quality=%s\n", guess, yesNo(result.IsValid), result.Score, result.Quality)
			}
			return scanner.Err()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload thresholds when the config file changes")
	return cmd
}
