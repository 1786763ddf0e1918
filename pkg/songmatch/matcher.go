package songmatch

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/samber/lo"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/cache"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/internal/hashing"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/internal/matching"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/internal/normalization"
)

// cacheKeyVersion changes whenever the cached score would change for the same inputs.
const cacheKeyVersion = "songmatch/v1"

// Matcher scores guesses against tracks. It is safe for concurrent use;
// only the thresholds are mutable, through SetThresholds.
type Matcher struct {
	mu         sync.RWMutex
	thresholds ThresholdConfig

	maxComboArtists int
	foldAccents     bool
	logger          *slog.Logger
	cache           cache.Cache
}

// bestScore is the threshold-independent part of a match result.
type bestScore struct {
	score   float64
	variant *Variant
}

// NewMatcher creates a Matcher with the given options.
func NewMatcher(opts ...Option) (*Matcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Matcher{
		thresholds:      config.Thresholds,
		maxComboArtists: config.MaxComboArtists,
		foldAccents:     config.FoldAccents,
		logger:          logger,
		cache:           config.Cache,
	}, nil
}

// Thresholds returns a snapshot of the current thresholds.
func (m *Matcher) Thresholds() ThresholdConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.thresholds
}

// SetThresholds merges update into the current thresholds. If the merged
// config is invalid it returns a *ConfigError and the current thresholds
// stay in effect.
func (m *Matcher) SetThresholds(update ThresholdUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := update.Apply(m.thresholds)
	if err := next.Validate(); err != nil {
		m.logger.Warn("rejected threshold update", "error", err)
		return err
	}

	previous := m.thresholds
	m.thresholds = next
	m.logger.Info("thresholds updated",
		"acceptable", next.Acceptable,
		"good", next.Good,
		"excellent", next.Excellent,
		"perfect", next.Perfect,
		"previous_acceptable", previous.Acceptable,
	)
	return nil
}

// CheckMatch decides whether guess names track. An empty guess or a track
// without a title or artists never matches.
func (m *Matcher) CheckMatch(guess string, track TrackDescriptor) MatchResult {
	thresholds := m.Thresholds()

	prepared := m.prepare(guess)
	if prepared == "" {
		return MatchResult{Quality: Poor}
	}

	best, ok := m.cachedBest(prepared, track)
	if !ok {
		variants := GenerateVariants(track, m.maxComboArtists)
		if len(variants) == 0 {
			return MatchResult{Quality: Poor}
		}
		best = m.findBest(prepared, variants)
		m.storeBest(prepared, track, best)
	}

	result := newMatchResult(thresholds, best)
	m.logger.Debug("checked guess",
		"guess", guess,
		"title", track.Title,
		"score", result.Score,
		"quality", result.Quality,
		"valid", result.IsValid,
	)
	return result
}

// ExplainMatch is CheckMatch with a per-variant, per-metric breakdown. Its
// Result equals what CheckMatch returns for the same call. It never uses the cache.
func (m *Matcher) ExplainMatch(guess string, track TrackDescriptor) ExplainResult {
	thresholds := m.Thresholds()

	explain := ExplainResult{
		Guess:      guess,
		Result:     MatchResult{Quality: Poor},
		Thresholds: thresholds,
		Variants:   []VariantExplanation{},
	}

	prepared := m.prepare(guess)
	if prepared == "" {
		return explain
	}

	variants := GenerateVariants(track, m.maxComboArtists)
	if len(variants) == 0 {
		return explain
	}

	var best bestScore
	explain.Variants = make([]VariantExplanation, len(variants))
	for i, v := range variants {
		scores := matching.Evaluate(prepared, m.prepare(v.Text))
		score := scores.Weighted()

		explain.Variants[i] = VariantExplanation{
			Variant: v,
			Metrics: newMetricScores(scores),
			Score:   score,
			Quality: thresholds.Classify(score),
		}
		if score > best.score {
			best = bestScore{score: score, variant: &explain.Variants[i].Variant}
		}
	}

	explain.Result = newMatchResult(thresholds, best)
	return explain
}

// prepare applies the normalization shared by guesses and variant texts.
func (m *Matcher) prepare(s string) string {
	s = normalization.NormalizeGuess(s)
	if m.foldAccents {
		s = normalization.FoldAccents(s)
	}
	return s
}

func (m *Matcher) findBest(prepared string, variants []Variant) bestScore {
	texts := lo.Map(variants, func(v Variant, _ int) string {
		return m.prepare(v.Text)
	})

	index, score := matching.FindBestMatch(prepared, texts)
	if index < 0 {
		return bestScore{}
	}

	v := variants[index]
	return bestScore{score: score, variant: &v}
}

func newMatchResult(thresholds ThresholdConfig, best bestScore) MatchResult {
	result := MatchResult{
		IsValid: thresholds.Accepts(best.score),
		Score:   best.score,
		Quality: thresholds.Classify(best.score),
	}
	if best.variant != nil {
		v := *best.variant
		result.MatchedVariant = &v
	}
	return result
}

func (m *Matcher) cacheKey(prepared string, track TrackDescriptor) string {
	parts := []string{
		cacheKeyVersion,
		prepared,
		strconv.FormatBool(m.foldAccents),
		strconv.Itoa(m.maxComboArtists),
		track.Title,
	}
	for _, a := range track.Artists {
		parts = append(parts, a.Name)
	}
	return hashing.Key(parts...)
}

func (m *Matcher) cachedBest(prepared string, track TrackDescriptor) (bestScore, bool) {
	if m.cache == nil {
		return bestScore{}, false
	}

	value, err := m.cache.Get(context.Background(), m.cacheKey(prepared, track))
	if err != nil {
		m.logger.Debug("cache lookup failed", "error", err)
		return bestScore{}, false
	}

	best, ok := value.(bestScore)
	return best, ok
}

func (m *Matcher) storeBest(prepared string, track TrackDescriptor, best bestScore) {
	if m.cache == nil {
		return
	}

	if err := m.cache.Set(context.Background(), m.cacheKey(prepared, track), best, 0); err != nil {
		m.logger.Debug("cache store failed", "error", err)
	}
}
