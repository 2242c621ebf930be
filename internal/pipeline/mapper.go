package pipeline

import (
	"strings"

	"pacesetter/internal"
	"pacesetter/internal/util"
)

// fieldSynonyms lists accepted header texts per canonical field, already
// in normalized form. The canonical field name itself is always accepted
// in addition to this list.
var fieldSynonyms = map[internal.CanonicalField][]string{
	internal.FieldProduct:       {"product", "model", "name", "item", "appliance", "sku"},
	internal.FieldCategory:      {"category", "type", "product type", "product group", "segment"},
	internal.FieldTransport:     {"transport", "logistics", "shipping", "co2e transport", "co2 transport", "transporte"},
	internal.FieldMaterials:     {"material", "materials", "bill of materials", "bom", "co2e material", "co2 material"},
	internal.FieldProduction:    {"production", "manufacturing", "factory", "co2e production", "co2 production"},
	internal.FieldUseKWhPerYear: {"kwh/a", "kwh/year", "kwh per year", "annual consumption", "annual energy consumption", "electricity consumption", "use kwh", "energy use"},
	internal.FieldWaterL:        {"water", "water consumption", "l/year", "liters", "litres"},
	internal.FieldRecyclingPct:  {"recycling", "recycling quota", "recyclate", "recycled content"},
	internal.FieldLocalPct:      {"local", "local quota", "local content", "local share"},
	internal.FieldEULabel:       {"label", "energy label", "eu label", "energy class", "efficiency class"},
}

func synonymsFor(field internal.CanonicalField) []string {
	out := []string{util.NormalizeHeader(string(field))}
	out = append(out, fieldSynonyms[field]...)
	return out
}

// Suggest matches raw headers against the canonical field set. A synonym
// contained in the normalized header scores 1.0, an exact equal adds 0.5.
// Exactly one suggestion per field is returned, in stable field order;
// the first header with the strictly highest score wins.
func Suggest(headers []string) []internal.MappingSuggestion {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = util.NormalizeHeader(h)
	}

	out := make([]internal.MappingSuggestion, 0, len(internal.CanonicalFields))
	for _, field := range internal.CanonicalFields {
		syns := synonymsFor(field)

		bestIdx, bestScore := -1, 0.0
		for i, header := range normalized {
			if header == "" {
				continue
			}
			score := 0.0
			for _, syn := range syns {
				if strings.Contains(header, syn) {
					score = 1.0
					break
				}
			}
			if score > 0 {
				for _, syn := range syns {
					if header == syn {
						score += 0.5
						break
					}
				}
			}
			if score > bestScore {
				bestScore, bestIdx = score, i
			}
		}

		suggestion := internal.MappingSuggestion{Target: field}
		if bestIdx >= 0 {
			suggestion.FromHeader = util.StringPtr(headers[bestIdx])
			suggestion.Confidence = bestScore
			if suggestion.Confidence > 1 {
				suggestion.Confidence = 1
			}
		}
		out = append(out, suggestion)
	}
	return out
}

// SuggestionsToMapping collapses suggestions into a field-to-header
// assignment, the starting point for user edits.
func SuggestionsToMapping(suggestions []internal.MappingSuggestion) internal.Mapping {
	mapping := internal.Mapping{}
	for _, s := range suggestions {
		if s.FromHeader != nil {
			mapping[s.Target] = *s.FromHeader
		}
	}
	return mapping
}

// Apply resolves a mapping into typed records. Fields with no chosen
// header are reported in missing, regardless of row contents; the record
// set is built wholesale, never patched.
func Apply(rows []internal.Row, mapping internal.Mapping) ([]internal.MappedRecord, []internal.CanonicalField) {
	missing := []internal.CanonicalField{}
	for _, field := range internal.CanonicalFields {
		if strings.TrimSpace(mapping[field]) == "" {
			missing = append(missing, field)
		}
	}

	cell := func(row internal.Row, field internal.CanonicalField) string {
		header := mapping[field]
		if header == "" {
			return ""
		}
		return strings.TrimSpace(row[header])
	}

	records := make([]internal.MappedRecord, 0, len(rows))
	for _, row := range rows {
		rec := internal.MappedRecord{
			Product:           cell(row, internal.FieldProduct),
			Category:          ClassifyCategory(cell(row, internal.FieldCategory)),
			Transport:         util.CoerceNumber(cell(row, internal.FieldTransport)),
			Materials:         util.CoerceNumber(cell(row, internal.FieldMaterials)),
			Production:        util.CoerceNumber(cell(row, internal.FieldProduction)),
			UseKWhPerYear:     util.CoerceNumber(cell(row, internal.FieldUseKWhPerYear)),
			WaterL:            util.CoerceNumber(cell(row, internal.FieldWaterL)),
			RecyclingQuotaPct: util.CoerceNumber(cell(row, internal.FieldRecyclingPct)),
			LocalQuotaPct:     util.CoerceNumber(cell(row, internal.FieldLocalPct)),
		}
		if label := cell(row, internal.FieldEULabel); label != "" {
			rec.EULabel = util.StringPtr(label)
		}
		records = append(records, rec)
	}
	return records, missing
}

// ClassifyCategory maps free category text onto the fixed enum. Unmatched
// text falls through to Unknown without flagging an error.
func ClassifyCategory(text string) internal.Category {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lower, "cook"):
		return internal.CategoryCooking
	case strings.HasPrefix(lower, "cool") || strings.Contains(lower, "fridge"):
		return internal.CategoryCooling
	case strings.HasPrefix(lower, "wash"):
		return internal.CategoryWashing
	default:
		return internal.CategoryUnknown
	}
}
