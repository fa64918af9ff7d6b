package logo

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"
)

// legal-entity suffixes ignored when deriving initials from a display name.
var legalSuffixes = map[string]bool{
	"inc": true, "llc": true, "corp": true, "ltd": true, "co": true,
	"corporation": true, "incorporated": true, "company": true, "gmbh": true,
}

// Initials derives the two-letter placeholder token from a display name:
// strip legal suffixes, then take the first letter of the first two
// remaining words; with a single word left, its first two characters; `??`
// for an empty name.
func Initials(name string) string {
	var words []string
	for _, w := range strings.Fields(name) {
		cleaned := strings.ToLower(strings.Trim(w, ".,;:()"))
		if cleaned == "" || legalSuffixes[cleaned] {
			continue
		}
		words = append(words, strings.Trim(w, ".,;:()"))
	}

	switch {
	case len(words) == 0:
		return "??"
	case len(words) == 1:
		runes := []rune(words[0])
		if len(runes) == 1 {
			return strings.ToUpper(string(runes[0]))
		}
		return strings.ToUpper(string(runes[:2]))
	default:
		a, _ := utf8.DecodeRuneInString(words[0])
		b, _ := utf8.DecodeRuneInString(words[1])
		return strings.ToUpper(string(a) + string(b))
	}
}

// Hue maps a display name into hue space with a stable hash. Same name,
// same color, every run.
func Hue(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % 360)
}

// PlaceholderSVG renders the minimal vector placeholder for a display name:
// a colored tile with the initials token centered on it.
func PlaceholderSVG(name string) []byte {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128">`+
			`<rect width="128" height="128" rx="16" fill="hsl(%d, 55%%, 45%%)"/>`+
			`<text x="64" y="64" font-family="Helvetica, Arial, sans-serif" font-size="52" `+
			`fill="#ffffff" text-anchor="middle" dominant-baseline="central">%s</text>`+
			`</svg>`,
		Hue(name), Initials(name))
	return []byte(svg)
}

// PlaceholderDataURI returns the synthesized placeholder as a base64 data URI.
func PlaceholderDataURI(name string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(PlaceholderSVG(name))
}
