// Package matching provides the string similarity metrics and the weighted
// scorer used to compare a guess against a candidate text.
package matching

import (
	"strings"
)

// Metric identifies one of the similarity measures combined by the scorer.
type Metric int

// The metrics, in evaluation order.
const (
	Levenshtein Metric = iota
	JaroWinkler
	Hamming
	Trigram
	Jaccard
	Jaro
	Dice
	Cosine

	metricCount
)

// weightPercent holds each metric's weight in percent. Integer weights keep
// the table summing to exactly 100, so an identical pair scores exactly 1.0.
var weightPercent = [metricCount]int{
	Levenshtein: 20,
	JaroWinkler: 25,
	Hamming:     10,
	Trigram:     15,
	Jaccard:     10,
	Jaro:        10,
	Dice:        5,
	Cosine:      5,
}

var metricNames = [metricCount]string{
	Levenshtein: "levenshtein",
	JaroWinkler: "jaroWinkler",
	Hamming:     "hamming",
	Trigram:     "trigram",
	Jaccard:     "jaccard",
	Jaro:        "jaro",
	Dice:        "dice",
	Cosine:      "cosine",
}

var metricFuncs = [metricCount]func(a, b string) float64{
	Levenshtein: LevenshteinSimilarity,
	JaroWinkler: JaroWinklerSimilarity,
	Hamming:     HammingSimilarity,
	Trigram:     TrigramSimilarity,
	Jaccard:     JaccardSimilarity,
	Jaro:        JaroSimilarity,
	Dice:        DiceSimilarity,
	Cosine:      CosineSimilarity,
}

// Metrics returns all metrics in evaluation order.
func Metrics() []Metric {
	all := make([]Metric, metricCount)
	for i := range all {
		all[i] = Metric(i)
	}
	return all
}

// String returns the metric name used in score breakdowns.
func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return "unknown"
	}
	return metricNames[m]
}

// Weight returns the metric's share of the weighted score.
func (m Metric) Weight() float64 {
	if m < 0 || m >= metricCount {
		return 0
	}
	return float64(weightPercent[m]) / 100
}

// Compare returns the metric's similarity of a and b in [0, 1].
func (m Metric) Compare(a, b string) float64 {
	if m < 0 || m >= metricCount {
		return 0
	}
	return metricFuncs[m](a, b)
}

// Scores holds one score per metric for a single pair of strings.
type Scores [metricCount]float64

// Get returns the score recorded for m.
func (s Scores) Get(m Metric) float64 {
	if m < 0 || m >= metricCount {
		return 0
	}
	return s[m]
}

// Weighted combines the scores with the fixed weight table. No rounding is applied.
func (s Scores) Weighted() float64 {
	var total float64
	for m, score := range s {
		total += float64(weightPercent[m]) * score
	}
	return clamp(total / 100)
}

// Evaluate computes every metric for the trimmed pair.
func Evaluate(a, b string) Scores {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)

	var s Scores
	for m := range s {
		s[m] = clamp(metricFuncs[m](a, b))
	}
	return s
}

// WeightedSimilarity returns the weighted score of a and b.
func WeightedSimilarity(a, b string) float64 {
	return Evaluate(a, b).Weighted()
}

// FindBestMatch finds the candidate with the highest weighted score against guess.
// A later candidate only replaces the current best when it scores strictly
// higher, so ties keep the earliest candidate. It returns (-1, 0) when no
// candidate scores above zero.
func FindBestMatch(guess string, candidates []string) (int, float64) {
	best := -1
	var bestScore float64

	for i, candidate := range candidates {
		score := WeightedSimilarity(guess, candidate)
		if score > bestScore {
			best = i
			bestScore = score

			// Nothing can beat a perfect match
			if score == 1.0 {
				break
			}
		}
	}

	return best, bestScore
}

func clamp(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
