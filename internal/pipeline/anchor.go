package pipeline

import (
	"strconv"
	"strings"

	"pacesetter/internal"
	"pacesetter/internal/util"
)

// anchorSynonyms locate label cells for label/value extraction. The CO2
// entries require explicit CO2/emission context to avoid false positives
// on generic words.
var anchorSynonyms = map[internal.CanonicalField][]string{
	internal.FieldUseKWhPerYear: {
		"annual energy consumption", "energy consumption", "kwh/year", "kwh per year",
		"kwh/a", "electricity consumption", "power consumption", "annual consumption",
		"yearly consumption", "use phase energy", "energy use",
	},
	internal.FieldTransport: {
		"transport co2", "transport kgco2", "transport emissions", "logistics co2",
		"logistics emissions", "shipping co2", "co2 transport", "co2e transport", "a1 a2",
	},
	internal.FieldMaterials: {
		"materials co2", "materials kgco2", "material emissions", "materials emissions",
		"raw materials co2", "bom co2", "co2 materials", "co2e materials", "upstream emissions",
	},
	internal.FieldProduction: {
		"production co2", "production kgco2", "production emissions", "manufacturing co2",
		"manufacturing emissions", "assembly co2", "factory co2", "co2 production", "co2e production",
	},
}

// ScanAnchors previews values for the required numeric fields by locating
// anchor text and probing for the nearest positive number: rightward in
// the same row first, then the cell below, then leftward. Fields without
// a hit are absent from the result.
func ScanAnchors(rows [][]string, sheetName string) map[internal.CanonicalField]internal.AnchorHit {
	out := map[internal.CanonicalField]internal.AnchorHit{}
	for _, field := range internal.RequiredNumericFields {
		if hit := findAnchorValue(rows, anchorSynonyms[field], sheetName, field); hit != nil {
			out[field] = *hit
		}
	}
	return out
}

func findAnchorValue(rows [][]string, anchors []string, sheetName string, field internal.CanonicalField) *internal.AnchorHit {
	for _, anchor := range anchors {
		anchorNorm := util.NormalizeHeader(anchor)
		for rowIdx, row := range rows {
			for colIdx, cell := range row {
				if !strings.Contains(util.NormalizeHeader(cell), anchorNorm) {
					continue
				}
				anchorText := truncate(cell, 50)

				// Rightward in the same row.
				for c := colIdx + 1; c < len(row); c++ {
					if v := positiveNumber(row[c]); v != nil {
						return hit(field, *v, sheetName, cellRef(c, rowIdx), anchorText, 0.9)
					}
				}
				// Same column, next row.
				if rowIdx+1 < len(rows) && colIdx < len(rows[rowIdx+1]) {
					if v := positiveNumber(rows[rowIdx+1][colIdx]); v != nil {
						return hit(field, *v, sheetName, cellRef(colIdx, rowIdx+1), anchorText, 0.8)
					}
				}
				// Leftward, value before label.
				for c := colIdx - 1; c >= 0; c-- {
					if v := positiveNumber(row[c]); v != nil {
						return hit(field, *v, sheetName, cellRef(c, rowIdx), anchorText, 0.7)
					}
				}
			}
		}
	}
	return nil
}

func hit(field internal.CanonicalField, value float64, sheet, ref, anchorText string, confidence float64) *internal.AnchorHit {
	return &internal.AnchorHit{
		Field: field,
		Value: value,
		Provenance: internal.Provenance{
			Method:     internal.MethodAnchor,
			Sheet:      sheet,
			CellRef:    ref,
			AnchorText: util.StringPtr(anchorText),
			Confidence: confidence,
		},
	}
}

func positiveNumber(cell string) *float64 {
	v := util.CoerceNumber(cell)
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func cellRef(colIdx, rowIdx int) string {
	return util.ColumnLetter(colIdx) + strconv.Itoa(rowIdx+1)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
