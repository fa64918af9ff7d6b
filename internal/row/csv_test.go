package row_test

import (
	"strings"
	"testing"

	"github.com/prospectforge/prospectforge/internal/row"
)

const sampleCSV = `Company Name,Website,Industry,Description,Annual Revenue,Headcount,City,State,Country,Contact,Title,Specialties
"Acme Widgets, Inc.",https://www.acme.com,Manufacturing,"Acme makes custom widgets and tooling.",$12M,85,Columbus,OH,USA,Jane Doe,VP Sales,"precision tooling, rapid prototyping"
Globex Corporation,globex.com,Energy,"Globex operates regional power plants.",,,,,,,,
`

func TestReadCSV_AliasedHeaders(t *testing.T) {
	t.Parallel()
	rows, validation, err := row.ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if !validation.OK {
		t.Fatalf("validation failed: %+v", validation)
	}
	if validation.RowCount != 2 || len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}

	first := rows[0]
	if first.CompanyName != "Acme Widgets, Inc." {
		t.Errorf("company = %q", first.CompanyName)
	}
	if first.Website != "https://www.acme.com" {
		t.Errorf("website = %q", first.Website)
	}
	if first.Revenue != "$12M" || first.Employees != "85" {
		t.Errorf("aliased columns lost: revenue=%q employees=%q", first.Revenue, first.Employees)
	}
	if first.ContactName != "Jane Doe" || first.ContactTitle != "VP Sales" {
		t.Errorf("contact columns lost: %q / %q", first.ContactName, first.ContactTitle)
	}
	if first.Keywords != "precision tooling, rapid prototyping" {
		t.Errorf("keywords = %q", first.Keywords)
	}
	if got := first.Location(); got != "Columbus, OH, USA" {
		t.Errorf("location = %q", got)
	}

	// Sparse row: empty optional columns stay empty, no padding errors.
	if rows[1].CompanyName != "Globex Corporation" || rows[1].Location() != "" {
		t.Errorf("sparse row mishandled: %+v", rows[1])
	}
}

func TestReadCSV_MissingRequiredColumn(t *testing.T) {
	t.Parallel()
	input := "Website,Industry\nacme.com,Manufacturing\n"

	_, validation, err := row.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if validation.OK {
		t.Fatal("expected validation to fail")
	}
	if len(validation.MissingColumns) != 2 {
		t.Fatalf("missing columns = %v, want company and description", validation.MissingColumns)
	}
}

func TestReadCSV_EmptyCompanyNameIsError(t *testing.T) {
	t.Parallel()
	input := "Company,Description\n,Some description here.\n"

	_, validation, err := row.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if validation.OK {
		t.Fatal("expected validation to fail")
	}
	if len(validation.Errors) != 1 || !strings.Contains(validation.Errors[0], "row 2") {
		t.Fatalf("errors = %v, want a row-2 complaint", validation.Errors)
	}
}

func TestReadCSV_EmptyOptionalFieldsAreWarnings(t *testing.T) {
	t.Parallel()
	input := "Company,Description,Website\nAcme,,\n"

	_, validation, err := row.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if !validation.OK {
		t.Fatalf("warnings must not fail validation: %+v", validation)
	}
	if len(validation.Warnings) != 2 {
		t.Fatalf("warnings = %v, want description and website warnings", validation.Warnings)
	}
}

func TestReadCSV_NoDataRows(t *testing.T) {
	t.Parallel()
	_, validation, err := row.ReadCSV(strings.NewReader("Company,Description\n"))
	if err != nil {
		t.Fatal(err)
	}
	if validation.OK {
		t.Fatal("header-only input must fail validation")
	}
}

func TestReadCSV_GarbageInput(t *testing.T) {
	t.Parallel()
	if _, _, err := row.ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for empty input")
	}
}
