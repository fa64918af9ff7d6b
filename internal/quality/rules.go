package quality

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the policy constants for summary acceptance and tiering.
// The acceptance window gates pass/fail; the ideal window only feeds tier
// classification.
type Rules struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
	IdealMin  int `yaml:"ideal_min"`
	IdealMax  int `yaml:"ideal_max"`

	BannedPhrases []string `yaml:"banned_phrases"`
	VaguePhrases  []string `yaml:"vague_phrases"`
}

// DefaultRules returns the built-in acceptance policy.
func DefaultRules() Rules {
	return Rules{
		MinLength: 100,
		MaxLength: 400,
		IdealMin:  120,
		IdealMax:  320,
		BannedPhrases: []string{
			"industry-leading",
			"leading-edge",
			"cutting-edge",
			"best-in-class",
			"world-class",
			"state-of-the-art",
			"innovative solutions",
			"leading provider",
			"one-stop shop",
			"unparalleled",
		},
		VaguePhrases: []string{
			"wide range of",
			"various",
			"numerous",
			"many different",
			"all your needs",
			"comprehensive suite",
		},
	}
}

// LoadRules reads a YAML rules file and overlays it on the defaults.
// Zero-valued fields keep their default.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	b, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	var overlay Rules
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}

	if overlay.MinLength > 0 {
		rules.MinLength = overlay.MinLength
	}
	if overlay.MaxLength > 0 {
		rules.MaxLength = overlay.MaxLength
	}
	if overlay.IdealMin > 0 {
		rules.IdealMin = overlay.IdealMin
	}
	if overlay.IdealMax > 0 {
		rules.IdealMax = overlay.IdealMax
	}
	if len(overlay.BannedPhrases) > 0 {
		rules.BannedPhrases = overlay.BannedPhrases
	}
	if len(overlay.VaguePhrases) > 0 {
		rules.VaguePhrases = overlay.VaguePhrases
	}

	if rules.MinLength > rules.MaxLength {
		return rules, fmt.Errorf("rules: min_length %d exceeds max_length %d", rules.MinLength, rules.MaxLength)
	}
	return rules, nil
}
