package matching

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hbollon/go-edlib"
	"github.com/samber/lo"
)

// Reusable metric instances. They hold configuration only and are safe for
// concurrent use.
var (
	levenshtein = metrics.NewLevenshtein()
	hamming     = metrics.NewHamming()
)

// LevenshteinSimilarity returns 1 - distance/maxLen over the lower-cased runes.
func LevenshteinSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	return strutil.Similarity(a, b, levenshtein)
}

// JaroSimilarity returns the Jaro similarity of the lower-cased strings.
func JaroSimilarity(a, b string) float64 {
	a, b = canonicalPair(strings.ToLower(a), strings.ToLower(b))
	if a == b {
		return 1
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Jaro)
	if err != nil {
		return 0
	}
	return float64(sim)
}

// JaroWinklerSimilarity returns the Jaro similarity boosted by the length of
// the common prefix (up to four runes, scaling factor 0.1).
func JaroWinklerSimilarity(a, b string) float64 {
	a, b = canonicalPair(strings.ToLower(a), strings.ToLower(b))
	if a == b {
		return 1
	}
	return float64(edlib.JaroWinklerSimilarity(a, b))
}

// HammingSimilarity returns the share of equal runes at equal positions.
// Runes past the end of the shorter string count as mismatches.
func HammingSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	return strutil.Similarity(a, b, hamming)
}

// TrigramSimilarity returns the Dice ratio of the trigram multisets of the
// lower-cased strings, padded as "  s " so short strings still yield trigrams.
func TrigramSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	_, common, totalA, totalB := strutil.NgramIntersection(padTrigram(a), padTrigram(b), 3)
	if totalA+totalB == 0 {
		return 0
	}
	return 2 * float64(common) / float64(totalA+totalB)
}

// JaccardSimilarity returns |A ∩ B| / |A ∪ B| over the sets of words.
func JaccardSimilarity(a, b string) float64 {
	wordsA, wordsB := lo.Uniq(words(a)), lo.Uniq(words(b))
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1
	}
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	common := lo.CountBy(wordsA, func(w string) bool {
		return lo.Contains(wordsB, w)
	})
	return float64(common) / float64(len(wordsA)+len(wordsB)-common)
}

// DiceSimilarity returns 2|A ∩ B| / (|A| + |B|) over the sets of character bigrams.
func DiceSimilarity(a, b string) float64 {
	bigramsA, bigramsB := bigrams(strings.ToLower(a)), bigrams(strings.ToLower(b))
	if len(bigramsA) == 0 && len(bigramsB) == 0 {
		return 1
	}
	if len(bigramsA) == 0 || len(bigramsB) == 0 {
		return 0
	}

	common := 0
	for bigram := range bigramsA {
		if _, ok := bigramsB[bigram]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(bigramsA)+len(bigramsB))
}

// CosineSimilarity returns the cosine of the word term-frequency vectors.
func CosineSimilarity(a, b string) float64 {
	wordsA, wordsB := words(a), words(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1
	}
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	freqA, freqB := lo.CountValues(wordsA), lo.CountValues(wordsB)

	var dot, normA, normB int
	for word, countA := range freqA {
		dot += countA * freqB[word]
		normA += countA * countA
	}
	for _, countB := range freqB {
		normB += countB * countB
	}
	if dot == 0 {
		return 0
	}

	// One square root over the product keeps identical vectors at exactly 1.
	return math.Min(1, float64(dot)/math.Sqrt(float64(normA)*float64(normB)))
}

// words splits the lower-cased string on whitespace.
func words(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// bigrams returns the set of character bigrams of s. A single rune is its own bigram.
func bigrams(s string) map[string]struct{} {
	switch utf8.RuneCountInString(s) {
	case 0:
		return nil
	case 1:
		return map[string]struct{}{s: {}}
	}

	counts, _ := strutil.NgramMap(s, 2)
	set := make(map[string]struct{}, len(counts))
	for bigram := range counts {
		set[bigram] = struct{}{}
	}
	return set
}

func padTrigram(s string) string {
	return "  " + s + " "
}

// canonicalPair orders a and b by rune length, then lexically, so that
// order-sensitive algorithms return the same score for (a, b) and (b, a).
func canonicalPair(a, b string) (string, string) {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la > lb || (la == lb && a > b) {
		return b, a
	}
	return a, b
}
