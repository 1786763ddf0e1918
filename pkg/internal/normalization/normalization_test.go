package normalization

import (
	"slices"
	"testing"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/testutil"
)

func TestTitleForms(t *testing.T) {
	loader, err := testutil.NewLoaderFromRepo()
	if err != nil {
		t.Fatalf("Failed to create test data loader: %v", err)
	}

	testCases, err := loader.GetTestCases("normalization", "title_forms")
	if err != nil {
		t.Fatalf("Failed to load test cases: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.ID, func(t *testing.T) {
			title, ok := tc.InputString()
			if !ok {
				t.Fatalf("Invalid input format")
			}
			expected, ok := tc.ExpectedStringSlice()
			if !ok {
				t.Fatalf("Invalid expected format")
			}

			result := TitleForms(title)
			if !slices.Equal(result, expected) {
				t.Errorf("TitleForms(%q) = %q, expected %q", title, result, expected)
			}
		})
	}
}

func TestNormalizeGuess(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BOHEMIAN RHAPSODY", "bohemian rhapsody"},
		{"  Queen  ", "queen"},
		{"\t\n", ""},
		{"", ""},
		{"ÉCOLE", "école"},
		{"Beyoncé", "beyoncé"},
	}

	for _, tt := range tests {
		result := NormalizeGuess(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizeGuess(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Beyoncé", "Beyonce"},
		{"Sigur Rós", "Sigur Ros"},
		{"Mötley Crüe", "Motley Crue"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		result := FoldAccents(tt.input)
		if result != tt.expected {
			t.Errorf("FoldAccents(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestStripFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		expected string
	}{
		{"dash", StripDashSuffix, "Shape of You - Radio Edit", "Shape of You"},
		{"dash none", StripDashSuffix, "Re-Wind", "Re-Wind"},
		{"paren", StripTrailingParenthetical, "Song (Live)", "Song"},
		{"paren not trailing", StripTrailingParenthetical, "(Don't Fear) The Reaper", "(Don't Fear) The Reaper"},
		{"bracket", StripTrailingBracketed, "Song [Remix]", "Song"},
		{"feat paren", StripTrailingFeatParenthetical, "Song (Feat. Someone)", "Song"},
		{"ft paren", StripTrailingFeatParenthetical, "Song (ft. Someone)", "Song"},
		{"feat paren other group", StripTrailingFeatParenthetical, "Song (Live)", "Song (Live)"},
		{"feat bare", StripTrailingFeat, "Song feat. Someone & Other", "Song"},
		{"featuring bare", StripTrailingFeat, "Song featuring Someone", "Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.input)
			if result != tt.expected {
				t.Errorf("%s(%q) = %q, expected %q", tt.name, tt.input, result, tt.expected)
			}
		})
	}
}

func TestHasNonASCII(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"hello", false},
		{"café", true},
		{"", false},
		{"日本語", true},
	}

	for _, tt := range tests {
		result := hasNonASCII(tt.input)
		if result != tt.expected {
			t.Errorf("hasNonASCII(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}
