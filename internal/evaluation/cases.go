// Package evaluation scores labeled guesses against a matcher and sweeps the
// acceptance threshold over the results.
package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

// Case is one labeled guess.
type Case struct {
	Name    string   `yaml:"name,omitempty" json:"name,omitempty"`
	Guess   string   `yaml:"guess" json:"guess"`
	Title   string   `yaml:"title" json:"title"`
	Artists []string `yaml:"artists,omitempty" json:"artists,omitempty"`
	// Match is the expected verdict.
	Match bool `yaml:"match" json:"match"`
	// MinQuality, when set, is the lowest acceptable tier for a matching case.
	MinQuality *songmatch.QualityTier `yaml:"min_quality,omitempty" json:"min_quality,omitempty"`
}

// Track returns the descriptor the guess is checked against.
func (c Case) Track() songmatch.TrackDescriptor {
	return songmatch.NewTrack(c.Title, c.Artists...)
}

// Label returns the case name, falling back to the guess.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Guess
}

// LoadCases reads a YAML list of cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, c := range cases {
		if c.Title == "" && len(c.Artists) == 0 && c.Guess == "" {
			return nil, fmt.Errorf("%s: case %d is empty", path, i+1)
		}
	}
	return cases, nil
}
