package songmatch

import (
	"fmt"
	"math"
)

// ThresholdConfig holds the ascending score boundaries of the quality tiers.
// A valid config satisfies 0 <= Acceptable <= Good <= Excellent <= Perfect <= 1.
type ThresholdConfig struct {
	Perfect    float64 `json:"perfect" yaml:"perfect"`
	Excellent  float64 `json:"excellent" yaml:"excellent"`
	Good       float64 `json:"good" yaml:"good"`
	Acceptable float64 `json:"acceptable" yaml:"acceptable"`
}

// DefaultThresholds returns the default tier boundaries.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		Perfect:    0.95,
		Excellent:  0.8,
		Good:       0.65,
		Acceptable: 0.5,
	}
}

// Validate checks every boundary is in [0, 1] and the boundaries are ordered.
func (t ThresholdConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"acceptable", t.Acceptable},
		{"good", t.Good},
		{"excellent", t.Excellent},
		{"perfect", t.Perfect},
	}

	for i, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return &ConfigError{
				Field:   "thresholds." + f.name,
				Details: fmt.Sprintf("must be between 0 and 1, got %v", f.value),
			}
		}
		if i > 0 && f.value < fields[i-1].value {
			return &ConfigError{
				Field:   "thresholds." + f.name,
				Details: fmt.Sprintf("%v is below %s (%v)", f.value, fields[i-1].name, fields[i-1].value),
			}
		}
	}
	return nil
}

// Classify maps a score to its quality tier.
func (t ThresholdConfig) Classify(score float64) QualityTier {
	switch {
	case score >= t.Perfect:
		return Perfect
	case score >= t.Excellent:
		return Excellent
	case score >= t.Good:
		return Good
	case score >= t.Acceptable:
		return Acceptable
	default:
		return Poor
	}
}

// Accepts reports whether score clears the acceptable boundary.
func (t ThresholdConfig) Accepts(score float64) bool {
	return score >= t.Acceptable
}

// Update returns a ThresholdUpdate that sets every boundary to t's values.
func (t ThresholdConfig) Update() ThresholdUpdate {
	return ThresholdUpdate{
		Perfect:    &t.Perfect,
		Excellent:  &t.Excellent,
		Good:       &t.Good,
		Acceptable: &t.Acceptable,
	}
}

// ThresholdUpdate is a partial ThresholdConfig. Nil fields keep their current value.
type ThresholdUpdate struct {
	Perfect    *float64 `json:"perfect,omitempty" yaml:"perfect,omitempty"`
	Excellent  *float64 `json:"excellent,omitempty" yaml:"excellent,omitempty"`
	Good       *float64 `json:"good,omitempty" yaml:"good,omitempty"`
	Acceptable *float64 `json:"acceptable,omitempty" yaml:"acceptable,omitempty"`
}

// IsEmpty reports whether the update sets no field.
func (u ThresholdUpdate) IsEmpty() bool {
	return u.Perfect == nil && u.Excellent == nil && u.Good == nil && u.Acceptable == nil
}

// Apply merges the update into t and returns the result without validating it.
func (u ThresholdUpdate) Apply(t ThresholdConfig) ThresholdConfig {
	if u.Perfect != nil {
		t.Perfect = *u.Perfect
	}
	if u.Excellent != nil {
		t.Excellent = *u.Excellent
	}
	if u.Good != nil {
		t.Good = *u.Good
	}
	if u.Acceptable != nil {
		t.Acceptable = *u.Acceptable
	}
	return t
}
