package prompt

import (
	"fmt"
	"strings"

	"github.com/prospectforge/prospectforge/internal/quality"
)

// Inputs carries the row fields the prompt embeds. All values are raw
// strings from the normalized row; empty fields are simply omitted.
type Inputs struct {
	CompanyName string
	Industry    string
	Revenue     string
	Employees   string
	Location    string
	Keywords    string
	Description string
}

// Initial composes the first-attempt generation request: all row fields,
// the structural constraints, worked examples, and a reasoning scaffold
// that ends by asking for only the final answer.
func Initial(in Inputs, rules quality.Rules) string {
	var b strings.Builder

	b.WriteString("You write one-sentence company profiles for a sales prospect workbook.\n\n")

	b.WriteString("Company details:\n")
	writeField(&b, "Name", in.CompanyName)
	writeField(&b, "Industry", in.Industry)
	writeField(&b, "Revenue", in.Revenue)
	writeField(&b, "Employees", in.Employees)
	writeField(&b, "Location", in.Location)
	writeField(&b, "Specialties", in.Keywords)
	writeField(&b, "Raw description", in.Description)
	b.WriteString("\n")

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Length between %d and %d characters (aim for %d-%d).\n",
		rules.MinLength, rules.MaxLength, rules.IdealMin, rules.IdealMax)
	fmt.Fprintf(&b, "- Begin with the exact company name: %s\n", in.CompanyName)
	b.WriteString("- One complete sentence. Start with a capital letter, end with a period.\n")
	b.WriteString("- No ellipsis, no \"etc.\", no trailing \"and more\".\n")
	if in.Keywords != "" {
		fmt.Fprintf(&b, "- Work in at least one of these specialties: %s\n", in.Keywords)
	}
	fmt.Fprintf(&b, "- Never use marketing filler such as: %s.\n",
		strings.Join(excerpt(rules.BannedPhrases, 5), ", "))
	b.WriteString("\n")

	b.WriteString("Good examples:\n")
	b.WriteString("- Harbor Freight Logistics moves refrigerated produce for Pacific Northwest grocers, running a 240-truck cold chain between Seattle and Sacramento.\n")
	b.WriteString("- Caldwell Instruments builds pressure calibration rigs for aerospace test labs, supplying Boeing and Airbus tier-one suppliers since 1987.\n\n")

	b.WriteString("Think through what the company actually does, who its customers are, ")
	b.WriteString("and which concrete details from the raw description prove it. ")
	b.WriteString("Then output ONLY the final sentence, nothing else.\n")

	return b.String()
}

// Retry re-embeds the full initial prompt under an escalating emphasis line,
// so the model sees complete context on every attempt rather than a delta.
// Wording escalates between the first retry and later ones.
func Retry(in Inputs, rules quality.Rules, attempt int) string {
	var emphasis string
	if attempt <= 1 {
		emphasis = "Your previous answer was rejected. Read the requirements again and follow every one of them exactly.\n\n"
	} else {
		emphasis = fmt.Sprintf(
			"FINAL ATTEMPT %d. Earlier answers repeatedly violated the requirements below. Satisfy ALL of them or the output will be discarded.\n\n",
			attempt)
	}
	return emphasis + Initial(in, rules)
}

// RefinementInstruction turns a verdict's defects into imperative fix-it
// directions for the refinement turn. Order follows the verdict's issues.
func RefinementInstruction(v quality.Verdict, in Inputs, rules quality.Rules) string {
	var b strings.Builder
	b.WriteString("Rewrite your previous answer. Fix every problem listed:\n")

	for _, issue := range v.Issues {
		switch issue.Defect {
		case quality.DefectMissingName:
			fmt.Fprintf(&b, "- It must include the exact company name %q.\n", in.CompanyName)
		case quality.DefectBannedPhrase:
			for _, phrase := range v.BannedPhrases {
				fmt.Fprintf(&b, "- Remove the phrase %q.\n", phrase)
			}
		case quality.DefectTooShort:
			fmt.Fprintf(&b, "- Expand it to between %d and %d characters.\n", rules.MinLength, rules.MaxLength)
		case quality.DefectTooLong:
			fmt.Fprintf(&b, "- Shorten it to between %d and %d characters.\n", rules.MinLength, rules.MaxLength)
		case quality.DefectMalformed:
			b.WriteString("- Start with a capital letter and end with a period.\n")
		case quality.DefectTruncated:
			b.WriteString("- Write one complete sentence with no ellipsis, \"etc.\" or trailing \"and more\".\n")
		case quality.DefectNoDomainTerms:
			fmt.Fprintf(&b, "- Mention at least one of: %s.\n", in.Keywords)
		case quality.DefectVague:
			for _, phrase := range v.VaguePhrases {
				fmt.Fprintf(&b, "- Replace the vague filler %q with a concrete detail.\n", phrase)
			}
		}
	}

	b.WriteString("Output ONLY the corrected sentence.\n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func excerpt(phrases []string, n int) []string {
	if len(phrases) <= n {
		return phrases
	}
	return phrases[:n]
}
