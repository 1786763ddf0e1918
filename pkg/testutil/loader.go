// Package testutil loads golden test cases shared between packages from testdata/.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTolerance is the absolute tolerance used for float comparisons
// when a case does not set its own.
const DefaultTolerance = 1e-6

// Suite is the structure of a golden test data file.
type Suite struct {
	Version     string `json:"version"`
	TestSuite   string `json:"test_suite"`
	Description string `json:"description"`
	Cases       []Case `json:"test_cases"`
}

// Case is a single golden test case.
type Case struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Input       any      `json:"input"`
	Expected    any      `json:"expected"`
	ExpectedMin *float64 `json:"expected_min,omitempty"`
	ExpectedMax *float64 `json:"expected_max,omitempty"`
	Epsilon     *float64 `json:"epsilon,omitempty"`
	Skip        string   `json:"skip,omitempty"`
}

// Tolerance returns the case's float tolerance, or DefaultTolerance.
func (tc *Case) Tolerance() float64 {
	if tc.Epsilon != nil {
		return *tc.Epsilon
	}
	return DefaultTolerance
}

// InputMap returns the input as a map, if it is one.
func (tc *Case) InputMap() (map[string]any, bool) {
	m, ok := tc.Input.(map[string]any)
	return m, ok
}

// InputString returns the input as a string, if it is one.
func (tc *Case) InputString() (string, bool) {
	s, ok := tc.Input.(string)
	return s, ok
}

// ExpectedFloat returns the expected value as a float64, if it is one.
func (tc *Case) ExpectedFloat() (float64, bool) {
	f, ok := tc.Expected.(float64)
	return f, ok
}

// ExpectedBool returns the expected value as a bool, if it is one.
func (tc *Case) ExpectedBool() (bool, bool) {
	b, ok := tc.Expected.(bool)
	return b, ok
}

// ExpectedMap returns the expected value as a map, if it is one.
func (tc *Case) ExpectedMap() (map[string]any, bool) {
	m, ok := tc.Expected.(map[string]any)
	return m, ok
}

// ExpectedStringSlice returns the expected value as a string slice, if it is one.
func (tc *Case) ExpectedStringSlice() ([]string, bool) {
	return StringSlice(tc.Expected)
}

// StringSlice converts a decoded JSON array into a []string.
func StringSlice(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// Loader reads golden suites from a testdata directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at testdataDir.
func NewLoader(testdataDir string) *Loader {
	return &Loader{dir: testdataDir}
}

// NewLoaderFromRepo creates a loader for the nearest testdata directory
// found by walking up from the working directory.
func NewLoaderFromRepo() (*Loader, error) {
	dir, err := findTestdataDir()
	if err != nil {
		return nil, err
	}
	return NewLoader(dir), nil
}

func findTestdataDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "testdata")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("testdata directory not found")
		}
		dir = parent
	}
}

// Path joins elem onto the testdata directory, for fixtures that are not JSON suites.
func (l *Loader) Path(elem ...string) string {
	return filepath.Join(append([]string{l.dir}, elem...)...)
}

// Load reads testdata/<category>/<suite>.json.
func (l *Loader) Load(category, suite string) (*Suite, error) {
	path := filepath.Join(l.dir, category, suite+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading test data file %s: %w", path, err)
	}

	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing test data file %s: %w", path, err)
	}
	return &s, nil
}

// GetTestCases returns the non-skipped cases of a suite.
func (l *Loader) GetTestCases(category, suite string) ([]Case, error) {
	s, err := l.Load(category, suite)
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(s.Cases))
	for _, tc := range s.Cases {
		if tc.Skip == "" {
			cases = append(cases, tc)
		}
	}
	return cases, nil
}
