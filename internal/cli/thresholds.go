package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThresholdsCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Print the effective quality thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			t := s.matcher.Thresholds()
			if app.Opts.JSON {
				return writeJSON(app, t)
			}
			fmt.Fprintf(app.IO.Out, "perfect:    %.4f\nexcellent:  %.4f\ngood:       %.4f\nacceptable: %.4f\n",
				t.Perfect, t.Excellent, t.Good, t.Acceptable)
			return nil
		},
	}
}
