// Package songmatch decides whether a free-form guess names the song that is
// currently playing, tolerating typos, casing, featured-artist suffixes,
// parenthetical remarks and artist/title ordering.
package songmatch

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/internal/matching"
)

// Artist is a credited artist of a track.
type Artist struct {
	// Name is the artist display name
	Name string `json:"name" yaml:"name"`
}

// TrackDescriptor holds the track fields a guess is compared against.
type TrackDescriptor struct {
	// Title is the track title as published
	Title string `json:"title" yaml:"title"`
	// Artists are the credited artists in display order
	Artists []Artist `json:"artists,omitempty" yaml:"artists,omitempty"`
}

// NewTrack creates a TrackDescriptor from a title and artist names.
func NewTrack(title string, artists ...string) TrackDescriptor {
	return TrackDescriptor{
		Title: title,
		Artists: lo.Map(artists, func(name string, _ int) Artist {
			return Artist{Name: name}
		}),
	}
}

// ArtistNames returns the artist names in order, skipping blank names.
func (t TrackDescriptor) ArtistNames() []string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		names = append(names, a.Name)
	}
	return names
}

// VariantKind describes how a variant was built from a track.
type VariantKind int

// Variant kinds, in generation order.
const (
	KindTitle VariantKind = iota
	KindArtist
	KindArtistTitle
	KindTitleArtist
)

var variantKindNames = map[VariantKind]string{
	KindTitle:       "title",
	KindArtist:      "artist",
	KindArtistTitle: "artist_title",
	KindTitleArtist: "title_artist",
}

// String returns the kind name.
func (k VariantKind) String() string {
	if name, ok := variantKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("VariantKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k VariantKind) MarshalText() ([]byte, error) {
	if _, ok := variantKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown variant kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *VariantKind) UnmarshalText(text []byte) error {
	for kind, name := range variantKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown variant kind %q", text)
}

// Variant is one textual form of a track that a guess is compared against.
type Variant struct {
	// Text is the candidate text
	Text string `json:"text"`
	// Kind tells how Text was built
	Kind VariantKind `json:"kind"`
	// SourceTitle is the title form used, or the raw title for artist variants
	SourceTitle string `json:"source_title"`
	// SourceArtist is the artist used, empty for title variants
	SourceArtist string `json:"source_artist,omitempty"`
}

// QualityTier is an ordered classification of a weighted score.
type QualityTier int

// Quality tiers from worst to best.
const (
	Poor QualityTier = iota
	Acceptable
	Good
	Excellent
	Perfect
)

var qualityTierNames = [...]string{
	Poor:       "POOR",
	Acceptable: "ACCEPTABLE",
	Good:       "GOOD",
	Excellent:  "EXCELLENT",
	Perfect:    "PERFECT",
}

// String returns the upper-case tier name.
func (q QualityTier) String() string {
	if q < Poor || q > Perfect {
		return fmt.Sprintf("QualityTier(%d)", int(q))
	}
	return qualityTierNames[q]
}

// AtLeast reports whether q is the same as or better than other.
func (q QualityTier) AtLeast(other QualityTier) bool {
	return q >= other
}

// ParseQualityTier parses a tier name, ignoring case.
func ParseQualityTier(s string) (QualityTier, error) {
	for i, name := range qualityTierNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return QualityTier(i), nil
		}
	}
	return Poor, fmt.Errorf("unknown quality tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (q QualityTier) MarshalText() ([]byte, error) {
	if q < Poor || q > Perfect {
		return nil, fmt.Errorf("unknown quality tier %d", int(q))
	}
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *QualityTier) UnmarshalText(text []byte) error {
	parsed, err := ParseQualityTier(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// MetricScores maps a metric name to its score for one guess/variant pair.
type MetricScores map[string]float64

// MetricNames returns the metric names in evaluation order.
func MetricNames() []string {
	return lo.Map(matching.Metrics(), func(m matching.Metric, _ int) string {
		return m.String()
	})
}

func newMetricScores(s matching.Scores) MetricScores {
	out := make(MetricScores, len(s))
	for _, m := range matching.Metrics() {
		out[m.String()] = s.Get(m)
	}
	return out
}

// MatchResult is the verdict for one guess against one track.
type MatchResult struct {
	// IsValid reports whether the guess is accepted
	IsValid bool `json:"match"`
	// Score is the best weighted score over all variants
	Score float64 `json:"score"`
	// Quality is the tier of Score
	Quality QualityTier `json:"quality"`
	// MatchedVariant is the variant that produced Score, if any
	MatchedVariant *Variant `json:"variant,omitempty"`
}

// VariantExplanation is the full breakdown for one variant.
type VariantExplanation struct {
	Variant Variant      `json:"variant"`
	Metrics MetricScores `json:"metrics"`
	Score   float64      `json:"score"`
	Quality QualityTier  `json:"quality"`
}

// ExplainResult is the diagnostic form of MatchResult.
type ExplainResult struct {
	// Guess is the guess as it was compared
	Guess string `json:"guess"`
	// Result is identical to what CheckMatch returns for the same call
	Result MatchResult `json:"result"`
	// Thresholds is the snapshot used for classification
	Thresholds ThresholdConfig `json:"thresholds"`
	// Variants lists every variant in generation order
	Variants []VariantExplanation `json:"variants"`
}
