package pipeline

import (
	"testing"

	"pacesetter/internal"
	"pacesetter/internal/util"
)

func TestValidateFlagsErrorsAndWarnings(t *testing.T) {
	records := []internal.MappedRecord{
		{
			Product:       "Broken",
			Transport:     nil,
			Materials:     util.FloatPtr(-5),
			Production:    util.FloatPtr(0),
			UseKWhPerYear: util.FloatPtr(1e8),
		},
	}

	summary := Validate(records)
	if summary.Status != internal.QualityRed {
		t.Fatalf("status = %s, want red", summary.Status)
	}
	if len(summary.Issues) != 3 {
		t.Fatalf("got %d issues, want 3: %+v", len(summary.Issues), summary.Issues)
	}

	errs, warns := 0, 0
	for _, issue := range summary.Issues {
		if issue.RowIndex != 1 {
			t.Fatalf("row index = %d, want 1", issue.RowIndex)
		}
		switch issue.Severity {
		case internal.SeverityError:
			errs++
		case internal.SeverityWarning:
			warns++
		}
	}
	if errs != 2 || warns != 1 {
		t.Fatalf("got %d errors and %d warnings, want 2 and 1", errs, warns)
	}
}

func TestValidateAmberOnWarningsOnly(t *testing.T) {
	records := []internal.MappedRecord{
		{
			Transport:     util.FloatPtr(10),
			Materials:     util.FloatPtr(2e7),
			Production:    util.FloatPtr(30),
			UseKWhPerYear: util.FloatPtr(100),
		},
	}
	summary := Validate(records)
	if summary.Status != internal.QualityAmber {
		t.Fatalf("status = %s, want amber", summary.Status)
	}
	if len(summary.Issues) != 1 || summary.Issues[0].Field != internal.FieldMaterials {
		t.Fatalf("issues = %+v", summary.Issues)
	}
}

func TestValidateGreenWhenClean(t *testing.T) {
	records := []internal.MappedRecord{
		{
			Transport:     util.FloatPtr(10),
			Materials:     util.FloatPtr(80),
			Production:    util.FloatPtr(40),
			UseKWhPerYear: util.FloatPtr(95),
		},
		{
			Transport:     util.FloatPtr(0),
			Materials:     util.FloatPtr(0),
			Production:    util.FloatPtr(0),
			UseKWhPerYear: util.FloatPtr(0),
		},
	}
	summary := Validate(records)
	if summary.Status != internal.QualityGreen {
		t.Fatalf("status = %s, want green", summary.Status)
	}
	if len(summary.Issues) != 0 {
		t.Fatalf("issues = %+v", summary.Issues)
	}
}
