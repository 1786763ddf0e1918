package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

func newExplainCommand(app *AppContext) *cobra.Command {
	var flags trackFlags

	cmd := &cobra.Command{
		Use:   "explain GUESS...",
		Short: "Show the per-variant, per-metric scores of a guess",
		Args:  guessArgs,
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

			explain := s.matcher.ExplainMatch(strings.Join(args, " "), track)
			if app.Opts.JSON {
				return writeJSON(app, explain)
			}
			return printExplain(app.IO.Out, explain)
		},
	}

	flags.register(cmd)
	return cmd
}

func printExplain(out io.Writer, explain songmatch.ExplainResult) error {
	names := songmatch.MetricNames()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "KIND\tTEXT\t%s\tSCORE\tQUALITY\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, v := range explain.Variants {
		fmt.Fprintf(tw, "%s\t%s", v.Variant.Kind, v.Variant.Text)
		for _, name := range names {
			fmt.Fprintf(tw, "\t%.3f", v.Metrics[name])
		}
		fmt.Fprintf(tw, "\t%.4f\t%s\n", v.Score, v.Quality)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	r := explain.Result
	fmt.Fprintf(out, "\nbest: %s score=%.4f quality=%s match=%s (acceptable >= %.2f)\n",
		describeVariant(r.MatchedVariant), r.Score, r.Quality, yesNo(r.IsValid), explain.Thresholds.Acceptable)
	return nil
}
