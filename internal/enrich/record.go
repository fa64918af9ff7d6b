package enrich

import (
	"github.com/prospectforge/prospectforge/internal/logo"
	"github.com/prospectforge/prospectforge/internal/quality"
	"github.com/prospectforge/prospectforge/internal/row"
)

// Record is one fully enriched prospect, created once the retry loop and
// asset fetch complete and immutable thereafter. The renderers consume it
// as-is.
type Record struct {
	Company      string
	Website      string
	Domain       string
	Industry     string
	Location     string
	Revenue      string
	Employees    string
	ContactName  string
	ContactTitle string

	Summary    string
	QualityTag quality.Tier
	RetryCount int

	Asset logo.Asset
}

func newRecord(r row.NormalizedRow) Record {
	return Record{
		Company:      r.CompanyName,
		Website:      r.Website,
		Domain:       logo.NormalizeDomain(r.Website),
		Industry:     r.Industry,
		Location:     r.Location(),
		Revenue:      r.Revenue,
		Employees:    r.Employees,
		ContactName:  r.ContactName,
		ContactTitle: r.ContactTitle,
	}
}

// Stats aggregates run-level quality numbers for the statistics sheet and
// the run summary log line.
type Stats struct {
	Total        int
	Excellent    int
	Good         int
	NeedsReview  int
	TotalRetries int

	AssetPrimary     int
	AssetSecondary   int
	AssetSynthesized int
	AssetNone        int
}

// Summarize tallies quality tags, retries and asset provenance.
func Summarize(records []Record) Stats {
	s := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.QualityTag {
		case quality.TierExcellent:
			s.Excellent++
		case quality.TierGood:
			s.Good++
		default:
			s.NeedsReview++
		}
		s.TotalRetries += rec.RetryCount

		switch rec.Asset.Provenance {
		case logo.ProvenancePrimary:
			s.AssetPrimary++
		case logo.ProvenanceSecondary:
			s.AssetSecondary++
		case logo.ProvenanceSynthesized:
			s.AssetSynthesized++
		default:
			s.AssetNone++
		}
	}
	return s
}
