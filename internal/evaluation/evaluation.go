package evaluation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

// Checker scores a guess against a track.
type Checker interface {
	CheckMatch(guess string, track songmatch.TrackDescriptor) songmatch.MatchResult
	Thresholds() songmatch.ThresholdConfig
}

// Outcome is the result of one case.
type Outcome struct {
	Case   Case                  `json:"case"`
	Result songmatch.MatchResult `json:"result"`
	Passed bool                  `json:"passed"`
	// Degenerate marks an empty guess or a track without title and artists.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Run checks every case with at most workers concurrent calls. Outcomes keep
// the order of cases. Run stops early when ctx is cancelled.
func Run(ctx context.Context, checker Checker, cases []Case, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			track := c.Track()
			result := checker.CheckMatch(c.Guess, track)
			outcomes[i] = Outcome{
				Case:       c,
				Result:     result,
				Passed:     passed(c, result),
				Degenerate: strings.TrimSpace(c.Guess) == "" || len(songmatch.GenerateVariants(track, 0)) == 0,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func passed(c Case, result songmatch.MatchResult) bool {
	if result.IsValid != c.Match {
		return false
	}
	if c.Match && c.MinQuality != nil {
		return result.Quality.AtLeast(*c.MinQuality)
	}
	return true
}

// Report summarizes a run.
type Report struct {
	Thresholds     songmatch.ThresholdConfig `json:"thresholds"`
	Total          int                       `json:"total"`
	Passed         int                       `json:"passed"`
	TruePositives  int                       `json:"true_positives"`
	TrueNegatives  int                       `json:"true_negatives"`
	FalsePositives int                       `json:"false_positives"`
	FalseNegatives int                       `json:"false_negatives"`
	Failures       []Outcome                 `json:"failures"`
}

// NewReport builds a report from the outcomes of a run.
func NewReport(thresholds songmatch.ThresholdConfig, outcomes []Outcome) Report {
	r := Report{
		Thresholds: thresholds,
		Total:      len(outcomes),
		Failures:   []Outcome{},
	}

	for _, o := range outcomes {
		switch {
		case o.Case.Match && o.Result.IsValid:
			r.TruePositives++
		case !o.Case.Match && !o.Result.IsValid:
			r.TrueNegatives++
		case !o.Case.Match && o.Result.IsValid:
			r.FalsePositives++
		default:
			r.FalseNegatives++
		}

		if o.Passed {
			r.Passed++
		} else {
			r.Failures = append(r.Failures, o)
		}
	}
	return r
}

// Accuracy is the share of cases whose verdict matched the label.
func (r Report) Accuracy() float64 {
	return ratio(r.TruePositives+r.TrueNegatives, r.Total)
}

// Precision is the share of accepted guesses that were labeled matches.
func (r Report) Precision() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalsePositives)
}

// Recall is the share of labeled matches that were accepted.
func (r Report) Recall() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalseNegatives)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// SweepPoint is the verdict quality at one candidate acceptance threshold.
type SweepPoint struct {
	Acceptable     float64 `json:"acceptable"`
	Accuracy       float64 `json:"accuracy"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
}

// Sweep re-classifies the outcomes for every acceptance threshold from from
// to to (inclusive) in increments of step. Scores do not depend on the
// thresholds, so no case is scored again. Degenerate inputs never match at
// any threshold.
func Sweep(outcomes []Outcome, from, to, step float64) ([]SweepPoint, error) {
	switch {
	case math.IsNaN(from) || math.IsNaN(to) || math.IsNaN(step):
		return nil, fmt.Errorf("sweep bounds must be numbers")
	case from < 0 || to > 1 || from > to:
		return nil, fmt.Errorf("sweep range [%v, %v] must lie within [0, 1] in ascending order", from, to)
	case step <= 0:
		return nil, fmt.Errorf("sweep step must be positive, got %v", step)
	}

	count := int(math.Floor((to-from)/step+1e-9)) + 1
	points := make([]SweepPoint, 0, count)

	for i := range count {
		acceptable := from + float64(i)*step

		var tp, tn, fp, fn int
		for _, o := range outcomes {
			accepted := !o.Degenerate && o.Result.Score >= acceptable
			switch {
			case o.Case.Match && accepted:
				tp++
			case !o.Case.Match && !accepted:
				tn++
			case accepted:
				fp++
			default:
				fn++
			}
		}

		points = append(points, SweepPoint{
			Acceptable:     acceptable,
			Accuracy:       ratio(tp+tn, len(outcomes)),
			Precision:      ratio(tp, tp+fp),
			Recall:         ratio(tp, tp+fn),
			FalsePositives: fp,
			FalseNegatives: fn,
		})
	}
	return points, nil
}

// Best returns the point with the highest accuracy, preferring the lowest
// threshold on ties.
func Best(points []SweepPoint) (SweepPoint, bool) {
	if len(points) == 0 {
		return SweepPoint{}, false
	}
	return lo.MaxBy(points, func(a, b SweepPoint) bool {
		return a.Accuracy > b.Accuracy
	}), true
}
