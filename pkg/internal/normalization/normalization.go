// Package normalization provides text normalization utilities for guess and title matching.
package normalization

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// trailingParenPattern matches a trailing "(...)" group
	trailingParenPattern = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

	// trailingBracketPattern matches a trailing "[...]" group
	trailingBracketPattern = regexp.MustCompile(`\s*\[[^\[\]]*\]\s*$`)

	// trailingFeatParenPattern matches a trailing "(feat. ...)" group
	trailingFeatParenPattern = regexp.MustCompile(`(?i)\s*\(\s*(?:feat\.|ft\.|featuring\s)[^()]*\)\s*$`)

	// trailingFeatPattern matches a trailing "feat. ..." suffix without parentheses
	trailingFeatPattern = regexp.MustCompile(`(?i)\s+(?:feat\.|ft\.|featuring\s).*$`)
)

// NormalizeGuess trims surrounding whitespace and case-folds s so that
// "BOHEMIAN RHAPSODY" and "bohemian rhapsody" compare equal.
func NormalizeGuess(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// FoldAccents removes diacritical marks, so "Beyoncé" becomes "Beyonce".
func FoldAccents(s string) string {
	if !hasNonASCII(s) {
		return s
	}
	return removeAccents(s)
}

// hasNonASCII checks if the string contains non-ASCII characters.
func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// removeAccents removes diacritical marks from Unicode characters.
func removeAccents(s string) string {
	// Normalize to NFD form (decomposed)
	normalized := norm.NFD.String(s)

	var result strings.Builder
	result.Grow(len(normalized))
	for _, r := range normalized {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			result.WriteRune(r)
		}
	}

	// Recompose whatever survived (e.g. Hangul) so output stays in NFC.
	return norm.NFC.String(result.String())
}

// StripDashSuffix removes everything from the first " - " onward,
// e.g. "Shape of You - Radio Edit" becomes "Shape of You".
func StripDashSuffix(title string) string {
	if idx := strings.Index(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[:idx])
	}
	return strings.TrimSpace(title)
}

// StripTrailingParenthetical removes a trailing "(...)" group.
func StripTrailingParenthetical(title string) string {
	return strings.TrimSpace(trailingParenPattern.ReplaceAllString(title, ""))
}

// StripTrailingBracketed removes a trailing "[...]" group.
func StripTrailingBracketed(title string) string {
	return strings.TrimSpace(trailingBracketPattern.ReplaceAllString(title, ""))
}

// StripTrailingFeatParenthetical removes a trailing "(feat. ...)" group, case-insensitive.
func StripTrailingFeatParenthetical(title string) string {
	return strings.TrimSpace(trailingFeatParenPattern.ReplaceAllString(title, ""))
}

// StripTrailingFeat removes a trailing "feat. ..." suffix written without parentheses.
func StripTrailingFeat(title string) string {
	return strings.TrimSpace(trailingFeatPattern.ReplaceAllString(title, ""))
}

// TitleForms returns the raw title followed by its cleaned sub-forms, in a
// fixed order, keeping only distinct non-empty results.
func TitleForms(title string) []string {
	candidates := []string{
		title,
		StripDashSuffix(title),
		StripTrailingParenthetical(title),
		StripTrailingBracketed(title),
		StripTrailingFeatParenthetical(title),
		StripTrailingFeat(title),
	}

	forms := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, form := range candidates {
		if strings.TrimSpace(form) == "" {
			continue
		}
		if _, ok := seen[form]; ok {
			continue
		}
		seen[form] = struct{}{}
		forms = append(forms, form)
	}
	return forms
}
