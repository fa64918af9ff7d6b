package logo_test

import (
	"strings"
	"testing"

	"github.com/prospectforge/prospectforge/internal/logo"
)

func TestInitials(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Apple Inc.":              "AP",
		"Microsoft Corporation":   "MI",
		"Acme Rentals":            "AR",
		"Acme Widgets, Inc.":      "AW",
		"Smith Holdings LLC":      "SH",
		"Tanaka Co.":              "TA",
		"X":                       "X",
		"":                        "??",
		"Inc. LLC Corp":           "??",
		"harbor freight tools co": "HF",
	}
	for in, want := range cases {
		if got := logo.Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHue_IsStableAndBounded(t *testing.T) {
	t.Parallel()

	first := logo.Hue("Acme Widgets")
	for i := 0; i < 10; i++ {
		if got := logo.Hue("Acme Widgets"); got != first {
			t.Fatalf("hue changed between calls: %d then %d", first, got)
		}
	}
	for _, name := range []string{"", "Acme", "Globex", "Initech", "Umbrella Corp"} {
		h := logo.Hue(name)
		if h < 0 || h >= 360 {
			t.Errorf("Hue(%q) = %d, outside [0, 360)", name, h)
		}
	}
	if logo.Hue("Acme") == logo.Hue("Globex") {
		t.Log("hash collision between fixture names; harmless but surprising")
	}
}

func TestPlaceholderSVG(t *testing.T) {
	t.Parallel()

	svg := string(logo.PlaceholderSVG("Acme Rentals"))
	if !strings.Contains(svg, ">AR</text>") {
		t.Errorf("placeholder missing initials: %s", svg)
	}
	if !strings.Contains(svg, "hsl(") {
		t.Errorf("placeholder missing color fill: %s", svg)
	}
	if again := string(logo.PlaceholderSVG("Acme Rentals")); again != svg {
		t.Error("placeholder must be deterministic for a given name")
	}
	if other := string(logo.PlaceholderSVG("Globex Corporation")); other == svg {
		t.Error("different names produced identical placeholders")
	}
}

func TestPlaceholderDataURI(t *testing.T) {
	t.Parallel()
	uri := logo.PlaceholderDataURI("Acme Rentals")
	if !strings.HasPrefix(uri, "data:image/svg+xml;base64,") {
		t.Fatalf("unexpected data URI prefix: %s", uri)
	}
}

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"https://www.acme.com/about?ref=1": "acme.com",
		"http://acme.com":                  "acme.com",
		"WWW.ACME.COM":                     "acme.com",
		"acme.co.uk/path":                  "acme.co.uk",
		"sub.acme.com":                     "sub.acme.com",
		"acme.com.":                        "acme.com",
		"not a domain":                     "",
		"localhost":                        "",
		"":                                 "",
		"   ":                              "",
	}
	for in, want := range cases {
		if got := logo.NormalizeDomain(in); got != want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
