package quality

// Tier is the coarse quality bucket attached to an enriched record.
type Tier string

const (
	TierExcellent   Tier = "excellent"
	TierGood        Tier = "good"
	TierNeedsReview Tier = "needs_review"
)

// ClassifyTier derives the quality tier from a final verdict. Deterministic:
// the tier is a pure function of the verdict.
func ClassifyTier(v Verdict) Tier {
	domainOK := !v.DomainTermsChecked || v.HasDomainTerms
	if v.Passed && v.InIdealWindow && v.HasRequiredName && !v.HasBannedPhrase &&
		domainOK && v.WellFormed && !v.Truncated {
		return TierExcellent
	}
	if v.Passed && v.HasRequiredName && !v.Truncated {
		return TierGood
	}
	return TierNeedsReview
}
