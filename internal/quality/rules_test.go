package quality_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prospectforge/prospectforge/internal/quality"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules_OverlaysOnDefaults(t *testing.T) {
	t.Parallel()
	path := writeRules(t, `
min_length: 80
banned_phrases:
  - "synergy"
`)
	rules, err := quality.LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}

	defaults := quality.DefaultRules()
	if rules.MinLength != 80 {
		t.Fatalf("min_length = %d, want 80", rules.MinLength)
	}
	if rules.MaxLength != defaults.MaxLength {
		t.Fatalf("max_length = %d, want default %d", rules.MaxLength, defaults.MaxLength)
	}
	if rules.IdealMin != defaults.IdealMin || rules.IdealMax != defaults.IdealMax {
		t.Fatalf("ideal window changed unexpectedly: %+v", rules)
	}
	if len(rules.BannedPhrases) != 1 || rules.BannedPhrases[0] != "synergy" {
		t.Fatalf("banned_phrases = %v", rules.BannedPhrases)
	}
	if len(rules.VaguePhrases) != len(defaults.VaguePhrases) {
		t.Fatalf("vague_phrases = %v, want defaults", rules.VaguePhrases)
	}
}

func TestLoadRules_RejectsInvertedWindow(t *testing.T) {
	t.Parallel()
	path := writeRules(t, "min_length: 500\nmax_length: 100\n")
	if _, err := quality.LoadRules(path); err == nil {
		t.Fatal("expected an error for min_length > max_length")
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	t.Parallel()
	if _, err := quality.LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadRules_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := writeRules(t, "min_length: [not a number\n")
	if _, err := quality.LoadRules(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
