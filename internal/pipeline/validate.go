package pipeline

import (
	"math"

	"pacesetter/internal"
)

const suspiciousValueLimit = 1e7

// Validate scans the required numeric fields of every record and
// aggregates a traffic-light verdict: red on any error, amber on
// warnings only, green otherwise. Row indices are 1-based.
func Validate(records []internal.MappedRecord) internal.DataQualitySummary {
	issues := []internal.ValidationIssue{}

	for i, rec := range records {
		rowIndex := i + 1
		for _, field := range internal.RequiredNumericFields {
			value := requiredValue(rec, field)
			switch {
			case value == nil || math.IsNaN(*value):
				issues = append(issues, internal.ValidationIssue{
					RowIndex: rowIndex, Field: field,
					Severity: internal.SeverityError, Message: "missing required value",
				})
			case *value < 0:
				issues = append(issues, internal.ValidationIssue{
					RowIndex: rowIndex, Field: field,
					Severity: internal.SeverityError, Message: "negative value",
				})
			case *value > suspiciousValueLimit:
				issues = append(issues, internal.ValidationIssue{
					RowIndex: rowIndex, Field: field,
					Severity: internal.SeverityWarning, Message: "suspiciously large",
				})
			}
		}
	}

	status := internal.QualityGreen
	for _, issue := range issues {
		if issue.Severity == internal.SeverityError {
			status = internal.QualityRed
			break
		}
		status = internal.QualityAmber
	}

	return internal.DataQualitySummary{Status: status, Issues: issues}
}

func requiredValue(rec internal.MappedRecord, field internal.CanonicalField) *float64 {
	switch field {
	case internal.FieldTransport:
		return rec.Transport
	case internal.FieldMaterials:
		return rec.Materials
	case internal.FieldProduction:
		return rec.Production
	case internal.FieldUseKWhPerYear:
		return rec.UseKWhPerYear
	}
	return nil
}
