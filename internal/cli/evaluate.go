package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/evaluation"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/exitcode"
)

type evaluateOptions struct {
	workers int
	sweep   bool
	from    float64
	to      float64
	step    float64
}

type evaluateOutput struct {
	Report    evaluation.Report       `json:"report"`
	Accuracy  float64                 `json:"accuracy"`
	Precision float64                 `json:"precision"`
	Recall    float64                 `json:"recall"`
	Sweep     []evaluation.SweepPoint `json:"sweep,omitempty"`
	Best      *evaluation.SweepPoint  `json:"best,omitempty"`
}

func newEvaluateCommand(app *AppContext) *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate CASES.yaml",
		Short: "Score labeled guesses and report accuracy",
		Long:  "evaluate checks every labeled case in a YAML file against the configured thresholds. With --sweep it also reports the accuracy of a range of acceptance thresholds. It exits with status 5 when a case fails.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("evaluate requires exactly one cases file"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			cases, err := evaluation.LoadCases(args[0])
			if err != nil {
				return withExitCode(exitcode.InvalidUsage, err)
			}

			workers := opts.workers
			if workers <= 0 {
				workers = s.cfg.Evaluation.Workers
			}

			s.logger.Info("evaluating cases", "file", args[0], "cases", len(cases), "workers", workers)
			outcomes, err := evaluation.Run(cmd.Context(), s.matcher, cases, workers)
			if err != nil {
				return err
			}

			report := evaluation.NewReport(s.matcher.Thresholds(), outcomes)
			out := evaluateOutput{
				Report:    report,
				Accuracy:  report.Accuracy(),
				Precision: report.Precision(),
				Recall:    report.Recall(),
			}

			if opts.sweep {
				points, err := evaluation.Sweep(outcomes, opts.from, opts.to, opts.step)
				if err != nil {
					return withExitCode(exitcode.InvalidUsage, err)
				}
				out.Sweep = points
				if best, ok := evaluation.Best(points); ok {
					out.Best = &best
				}
			}

			if app.Opts.JSON {
				if err := writeJSON(app, out); err != nil {
					return err
				}
			} else if err := printEvaluation(app.IO.Out, out); err != nil {
				return err
			}

			if report.Passed < report.Total {
				return silentExit(exitcode.CasesFailed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent checks (default from config)")
	cmd.Flags().BoolVar(&opts.sweep, "sweep", false, "Report accuracy over a range of acceptance thresholds")
	cmd.Flags().Float64Var(&opts.from, "from", 0.3, "First acceptance threshold of the sweep")
	cmd.Flags().Float64Var(&opts.to, "to", 0.9, "Last acceptance threshold of the sweep")
	cmd.Flags().Float64Var(&opts.step, "step", 0.05, "Sweep increment")
	return cmd
}

func printEvaluation(w io.Writer, out evaluateOutput) error {
	r := out.Report
	fmt.Fprintf(w, "cases: %d  passed: %d  failed: %d\n", r.Total, r.Passed, len(r.Failures))
	fmt.Fprintf(w, "accuracy: %.3f  precision: %.3f  recall: %.3f\n", out.Accuracy, out.Precision, out.Recall)
	fmt.Fprintf(w, "tp: %d  tn: %d  fp: %d  fn: %d\n", r.TruePositives, r.TrueNegatives, r.FalsePositives, r.FalseNegatives)

	for _, f := range r.Failures {
		expected := "match"
		if !f.Case.Match {
			expected = "no match"
		}
		fmt.Fprintf(w, "FAIL %s: expected %s, got score %.4f (%s)\n", f.Case.Label(), expected, f.Result.Score, f.Result.Quality)
	}

	if len(out.Sweep) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCEPTABLE\tACCURACY\tPRECISION\tRECALL\tFP\tFN")
	for _, p := range out.Sweep {
		fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t%.3f\t%d\t%d\n", p.Acceptable, p.Accuracy, p.Precision, p.Recall, p.FalsePositives, p.FalseNegatives)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if out.Best != nil {
		fmt.Fprintf(w, "best acceptable threshold: %.3f (accuracy %.3f)\n", out.Best.Acceptable, out.Best.Accuracy)
	}
	return nil
}
