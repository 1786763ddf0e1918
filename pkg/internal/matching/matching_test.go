package matching

import (
	"math"
	"testing"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/testutil"
)

func metricByName(name string) (Metric, bool) {
	for _, m := range Metrics() {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

func TestMetricSimilarity(t *testing.T) {
	loader, err := testutil.NewLoaderFromRepo()
	if err != nil {
		t.Fatalf("Failed to create test data loader: %v", err)
	}

	testCases, err := loader.GetTestCases("matching", "metrics")
	if err != nil {
		t.Fatalf("Failed to load test cases: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.ID, func(t *testing.T) {
			input, ok := tc.InputMap()
			if !ok {
				t.Fatalf("Invalid input format")
			}

			name, _ := input["metric"].(string)
			a, _ := input["a"].(string)
			b, _ := input["b"].(string)

			metric, ok := metricByName(name)
			if !ok {
				t.Fatalf("Unknown metric %q", name)
			}

			result := metric.Compare(a, b)

			if expected, ok := tc.ExpectedFloat(); ok {
				if math.Abs(result-expected) > tc.Tolerance() {
					t.Errorf("%s(%q, %q) = %v, expected %v", name, a, b, result, expected)
				}
			}
			if tc.ExpectedMin != nil && result < *tc.ExpectedMin {
				t.Errorf("%s(%q, %q) = %v, expected >= %v", name, a, b, result, *tc.ExpectedMin)
			}
			if tc.ExpectedMax != nil && result > *tc.ExpectedMax {
				t.Errorf("%s(%q, %q) = %v, expected <= %v", name, a, b, result, *tc.ExpectedMax)
			}
		})
	}
}

func TestWeightsSumToOne(t *testing.T) {
	var percent int
	var total float64
	for _, m := range Metrics() {
		percent += weightPercent[m]
		total += m.Weight()
	}

	if percent != 100 {
		t.Errorf("weight percentages sum to %d, expected 100", percent)
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("weights sum to %v, expected 1", total)
	}
}

func TestMetricNames(t *testing.T) {
	expected := []string{"levenshtein", "jaroWinkler", "hamming", "trigram", "jaccard", "jaro", "dice", "cosine"}

	all := Metrics()
	if len(all) != len(expected) {
		t.Fatalf("Metrics() returned %d metrics, expected %d", len(all), len(expected))
	}
	for i, m := range all {
		if m.String() != expected[i] {
			t.Errorf("Metrics()[%d] = %q, expected %q", i, m.String(), expected[i])
		}
	}

	if Metric(-1).String() != "unknown" || metricCount.String() != "unknown" {
		t.Error("out of range metrics should be named unknown")
	}
	if metricCount.Weight() != 0 || metricCount.Compare("a", "a") != 0 {
		t.Error("out of range metrics should have no weight or score")
	}
}

func TestIdentityScoresOne(t *testing.T) {
	inputs := []string{
		"bohemian rhapsody",
		"Shape of You",
		"a",
		"the the the",
		"Beyoncé",
		"日本語のタイトル",
	}

	for _, s := range inputs {
		scores := Evaluate(s, s)
		for _, m := range Metrics() {
			if scores.Get(m) != 1 {
				t.Errorf("%s(%q, %q) = %v, expected 1", m, s, s, scores.Get(m))
			}
		}
		if w := scores.Weighted(); w != 1 {
			t.Errorf("Weighted(%q, %q) = %v, expected exactly 1", s, s, w)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	if got := WeightedSimilarity("BOHEMIAN RHAPSODY", "bohemian rhapsody"); got != 1 {
		t.Errorf("WeightedSimilarity ignoring case = %v, expected 1", got)
	}
}

func TestSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"bohemian rapsody", "bohemian rhapsody"},
		{"martha", "marhta"},
		{"dwayne", "duane"},
		{"queen", "bohemian rhapsody queen"},
		{"abc", ""},
		{"crate", "trace"},
		{"completely unrelated text", "shape of you"},
	}

	for _, p := range pairs {
		ab, ba := Evaluate(p[0], p[1]), Evaluate(p[1], p[0])
		for _, m := range Metrics() {
			if math.Abs(ab.Get(m)-ba.Get(m)) > 1e-12 {
				t.Errorf("%s not symmetric for %q/%q: %v vs %v", m, p[0], p[1], ab.Get(m), ba.Get(m))
			}
		}
		if math.Abs(ab.Weighted()-ba.Weighted()) > 1e-12 {
			t.Errorf("weighted score not symmetric for %q/%q", p[0], p[1])
		}
	}
}

func TestScoresInRange(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "abc"},
		{"a", "b"},
		{"a b c", "c b a"},
		{"aaaa", "aa"},
		{"Mötley Crüe", "motley crue"},
	}

	for _, p := range pairs {
		scores := Evaluate(p[0], p[1])
		for _, m := range Metrics() {
			if s := scores.Get(m); s < 0 || s > 1 || math.IsNaN(s) {
				t.Errorf("%s(%q, %q) = %v, expected value in [0, 1]", m, p[0], p[1], s)
			}
		}
		if w := scores.Weighted(); w < 0 || w > 1 {
			t.Errorf("Weighted(%q, %q) = %v, expected value in [0, 1]", p[0], p[1], w)
		}
	}
}

func TestEvaluateTrims(t *testing.T) {
	if got := WeightedSimilarity("  queen ", "queen"); got != 1 {
		t.Errorf("WeightedSimilarity with padding = %v, expected 1", got)
	}
}

func TestTypoScoresHigh(t *testing.T) {
	got := WeightedSimilarity("bohemian rapsody", "bohemian rhapsody")
	if got <= 0.8 || got >= 1 {
		t.Errorf("WeightedSimilarity(typo) = %v, expected in (0.8, 1)", got)
	}

	unrelated := WeightedSimilarity("completely unrelated text", "bohemian rhapsody")
	if unrelated >= 0.5 {
		t.Errorf("WeightedSimilarity(unrelated) = %v, expected < 0.5", unrelated)
	}
}

func TestFindBestMatch(t *testing.T) {
	tests := []struct {
		name          string
		guess         string
		candidates    []string
		expectedIndex int
		expectedScore float64
	}{
		{
			name:          "exact match wins",
			guess:         "bohemian rhapsody",
			candidates:    []string{"queen", "bohemian rhapsody", "bohemian rhapsody queen"},
			expectedIndex: 1,
			expectedScore: 1,
		},
		{
			name:          "ties keep earliest",
			guess:         "abd",
			candidates:    []string{"abc", "abc"},
			expectedIndex: 0,
		},
		{
			name:          "no candidates",
			guess:         "anything",
			candidates:    nil,
			expectedIndex: -1,
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, score := FindBestMatch(tt.guess, tt.candidates)
			if index != tt.expectedIndex {
				t.Errorf("FindBestMatch index = %d, expected %d", index, tt.expectedIndex)
			}
			if tt.expectedScore != 0 && score != tt.expectedScore {
				t.Errorf("FindBestMatch score = %v, expected %v", score, tt.expectedScore)
			}
			if index >= 0 && score != WeightedSimilarity(tt.guess, tt.candidates[index]) {
				t.Errorf("FindBestMatch score %v does not match the candidate's weighted score", score)
			}
		})
	}
}
