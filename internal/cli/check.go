package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
)

func newCheckCommand(app *AppContext) *cobra.Command {
	var flags trackFlags

	cmd := &cobra.Command{
		Use:   "check GUESS...",
		Short: "Decide whether a guess names a track",
		Long:  "check scores the guess against every variant of the track and prints the verdict. It exits with status 4 when the guess is rejected.",
		Example: `  songmatch check --title "Bohemian Rhapsody" --artist Queen bohemian rapsody
  songmatch check --json --title "Stay (feat. Justin Bieber)" --artist "The Kid LAROI" --artist "Justin Bieber" stay`,
		Args: guessArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := flags.track()
			if err != nil {
				return err
			}

			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			result := s.matcher.CheckMatch(strings.Join(args, " "), track)

			if app.Opts.JSON {
				if err := writeJSON(app, result); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(app.IO.Out, "match: %s\nscore: %.4f\nquality: %s\nvariant: %s\n",
					yesNo(result.IsValid), result.Score, result.Quality, describeVariant(result.MatchedVariant))
			}

			if !result.IsValid {
				return silentExit(exitcode.NoMatch)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
