package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Defect identifies one category of rule violation in a candidate summary.
type Defect string

const (
	DefectTooShort      Defect = "too_short"
	DefectTooLong       Defect = "too_long"
	DefectMissingName   Defect = "missing_name"
	DefectBannedPhrase  Defect = "banned_phrase"
	DefectNoDomainTerms Defect = "no_domain_terms"
	DefectMalformed     Defect = "malformed"
	DefectTruncated     Defect = "truncated"
	DefectVague         Defect = "vague"
)

// Issue is one defect descriptor with its human-readable detail.
type Issue struct {
	Defect Defect
	Detail string
}

// Verdict is the deterministic scoring result for one candidate summary.
// Never mutated after creation.
type Verdict struct {
	Passed bool
	Issues []Issue
	Length int

	HasRequiredName    bool
	HasBannedPhrase    bool
	BannedPhrases      []string
	DomainTermsChecked bool
	HasDomainTerms     bool
	WellFormed         bool
	Truncated          bool
	VaguePhrases       []string

	InIdealWindow bool
}

// Evaluator scores candidate summaries against a fixed rule set.
// Pure: same inputs always produce the same Verdict.
type Evaluator struct {
	rules Rules
}

func NewEvaluator(rules Rules) *Evaluator {
	return &Evaluator{rules: rules}
}

func (e *Evaluator) Rules() Rules {
	return e.rules
}

var etcRe = regexp.MustCompile(`\betc\.?(\s|$)`)

// legal-entity suffixes stripped when deriving a company's core name.
var legalSuffixes = []string{
	"incorporated", "corporation", "company", "inc", "llc", "corp", "ltd", "co",
}

// CoreName strips trailing legal-entity suffixes and trailing punctuation
// from a canonical company name. "Acme Widgets, Inc." -> "Acme Widgets".
func CoreName(name string) string {
	out := strings.TrimSpace(name)
	for {
		trimmed := strings.TrimRight(out, " .,;:-")
		lower := strings.ToLower(trimmed)
		stripped := false
		for _, suffix := range legalSuffixes {
			if strings.HasSuffix(lower, " "+suffix) {
				trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
				stripped = true
				break
			}
		}
		out = strings.TrimRight(trimmed, " .,;:-")
		if !stripped {
			return out
		}
	}
}

// Evaluate scores a candidate against all rules. Every rule is computed
// independently; no short-circuiting, so Issues always reflects the full
// defect set and can drive refinement guidance.
//
// Pass/fail depends only on the length window, the required-name check and
// the truncation check. The remaining rules feed Issues and tiering.
func (e *Evaluator) Evaluate(candidate, canonicalName, domainTerms string) Verdict {
	v := Verdict{}
	text := strings.TrimSpace(candidate)
	lower := strings.ToLower(text)

	v.Length = utf8.RuneCountInString(text)
	v.InIdealWindow = v.Length >= e.rules.IdealMin && v.Length <= e.rules.IdealMax
	lengthOK := v.Length >= e.rules.MinLength && v.Length <= e.rules.MaxLength
	if v.Length < e.rules.MinLength {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectTooShort,
			Detail: fmt.Sprintf("summary is %d characters, below the minimum of %d", v.Length, e.rules.MinLength),
		})
	}
	if v.Length > e.rules.MaxLength {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectTooLong,
			Detail: fmt.Sprintf("summary is %d characters, above the maximum of %d", v.Length, e.rules.MaxLength),
		})
	}

	fullName := strings.ToLower(strings.TrimSpace(canonicalName))
	coreName := strings.ToLower(CoreName(canonicalName))
	v.HasRequiredName = (fullName != "" && strings.Contains(lower, fullName)) ||
		(coreName != "" && strings.Contains(lower, coreName))
	if !v.HasRequiredName {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectMissingName,
			Detail: fmt.Sprintf("summary does not mention the company name %q", canonicalName),
		})
	}

	for _, phrase := range e.rules.BannedPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			v.BannedPhrases = append(v.BannedPhrases, phrase)
		}
	}
	v.HasBannedPhrase = len(v.BannedPhrases) > 0
	if v.HasBannedPhrase {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectBannedPhrase,
			Detail: fmt.Sprintf("contains banned marketing phrases: %s", strings.Join(v.BannedPhrases, ", ")),
		})
	}

	terms := splitDomainTerms(domainTerms)
	v.DomainTermsChecked = len(terms) > 0
	if v.DomainTermsChecked {
		for _, term := range terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				v.HasDomainTerms = true
				break
			}
		}
		if !v.HasDomainTerms {
			v.Issues = append(v.Issues, Issue{
				Defect: DefectNoDomainTerms,
				Detail: fmt.Sprintf("mentions none of the industry terms: %s", strings.Join(terms, ", ")),
			})
		}
	}

	v.WellFormed = isWellFormed(text)
	if !v.WellFormed {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectMalformed,
			Detail: "summary must start with a capital letter and end with a period",
		})
	}

	v.Truncated = isTruncated(text, lower)
	if v.Truncated {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectTruncated,
			Detail: "summary looks cut off (ellipsis, \"etc.\" or a trailing \"and more\")",
		})
	}

	for _, phrase := range e.rules.VaguePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			v.VaguePhrases = append(v.VaguePhrases, phrase)
		}
	}
	if len(v.VaguePhrases) > 0 {
		v.Issues = append(v.Issues, Issue{
			Defect: DefectVague,
			Detail: fmt.Sprintf("contains vague filler: %s", strings.Join(v.VaguePhrases, ", ")),
		})
	}

	v.Passed = lengthOK && v.HasRequiredName && !v.Truncated
	return v
}

func splitDomainTerms(source string) []string {
	var out []string
	for _, frag := range strings.Split(source, ",") {
		frag = strings.TrimSpace(frag)
		if len(frag) <= 3 {
			continue
		}
		out = append(out, frag)
	}
	return out
}

func isWellFormed(text string) bool {
	if text == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text)
	if unicode.ToUpper(first) != first {
		return false
	}
	return strings.HasSuffix(text, ".")
}

func isTruncated(text, lower string) bool {
	if strings.Contains(text, "...") {
		return true
	}
	if etcRe.MatchString(lower) {
		return true
	}
	trimmed := strings.TrimRight(lower, ". ")
	return strings.HasSuffix(trimmed, " and more")
}
