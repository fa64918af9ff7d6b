package row

import (
	"strconv"
	"strings"
)

// NormalizedRow is one source record with its raw field values as extracted
// from the input table. Immutable once parsed; the enrichment core treats it
// as read-only.
type NormalizedRow struct {
	CompanyName  string
	Website      string
	Industry     string
	Description  string
	Revenue      string
	Employees    string
	City         string
	State        string
	Country      string
	ContactName  string
	ContactTitle string
	Keywords     string
}

// Location joins the populated location parts into a display string.
func (r NormalizedRow) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.City, r.State, r.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// Validation is the parse-time gate result. The enrichment core trusts that
// required fields are present when OK is true; callers must not invoke it
// otherwise.
type Validation struct {
	OK             bool
	RowCount       int
	MissingColumns []string
	Errors         []string
	Warnings       []string
}

// requiredColumns must be present in the input header for a run to start.
var requiredColumns = []string{"company", "description"}

// columnAliases maps accepted header spellings to canonical column names.
var columnAliases = map[string]string{
	"company":        "company",
	"company name":   "company",
	"company_name":   "company",
	"name":           "company",
	"website":        "website",
	"domain":         "website",
	"url":            "website",
	"industry":       "industry",
	"sector":         "industry",
	"description":    "description",
	"about":          "description",
	"revenue":        "revenue",
	"annual revenue": "revenue",
	"employees":      "employees",
	"employee count": "employees",
	"headcount":      "employees",
	"city":           "city",
	"state":          "state",
	"region":         "state",
	"country":        "country",
	"contact":        "contact_name",
	"contact name":   "contact_name",
	"contact_name":   "contact_name",
	"ceo":            "contact_name",
	"title":          "contact_title",
	"contact title":  "contact_title",
	"contact_title":  "contact_title",
	"keywords":       "keywords",
	"tags":           "keywords",
	"specialties":    "keywords",
}

func canonicalColumn(header string) (string, bool) {
	name, ok := columnAliases[strings.ToLower(strings.TrimSpace(header))]
	return name, ok
}

func fromFields(fields map[string]string) NormalizedRow {
	return NormalizedRow{
		CompanyName:  strings.TrimSpace(fields["company"]),
		Website:      strings.TrimSpace(fields["website"]),
		Industry:     strings.TrimSpace(fields["industry"]),
		Description:  strings.TrimSpace(fields["description"]),
		Revenue:      strings.TrimSpace(fields["revenue"]),
		Employees:    strings.TrimSpace(fields["employees"]),
		City:         strings.TrimSpace(fields["city"]),
		State:        strings.TrimSpace(fields["state"]),
		Country:      strings.TrimSpace(fields["country"]),
		ContactName:  strings.TrimSpace(fields["contact_name"]),
		ContactTitle: strings.TrimSpace(fields["contact_title"]),
		Keywords:     strings.TrimSpace(fields["keywords"]),
	}
}

// validate builds the gate result for a parsed table.
func validate(columns map[string]int, rows []NormalizedRow) Validation {
	v := Validation{RowCount: len(rows)}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			v.MissingColumns = append(v.MissingColumns, required)
		}
	}
	if len(v.MissingColumns) > 0 {
		v.Errors = append(v.Errors, "missing required columns: "+strings.Join(v.MissingColumns, ", "))
	}
	if len(rows) == 0 {
		v.Errors = append(v.Errors, "input contains no data rows")
	}

	for i, r := range rows {
		if r.CompanyName == "" {
			v.Errors = append(v.Errors, rowError(i, "empty company name"))
			continue
		}
		if r.Description == "" {
			v.Warnings = append(v.Warnings, rowError(i, "empty description; fallback summaries will be thin"))
		}
		if r.Website == "" {
			v.Warnings = append(v.Warnings, rowError(i, "no website; logo lookup will use a placeholder"))
		}
	}

	v.OK = len(v.Errors) == 0
	return v
}

func rowError(idx int, msg string) string {
	// Reported 1-based, matching spreadsheet row numbering (header is row 1).
	return "row " + strconv.Itoa(idx+2) + ": " + msg
}
