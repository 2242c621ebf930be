package pipeline

import (
	"regexp"
	"strings"
)

const maxHeaderScanRows = 20

var headerKeywords = []string{"transport", "materials", "production", "use", "kwh", "product"}

// DetectHeaderRow scores the first rows of a sheet and returns the index
// of the most header-like one: +1 per cell containing a keyword, +0.2 per
// non-empty cell. Ties resolve to the lowest index. This is a heuristic;
// callers must tolerate a wrong guess.
func DetectHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}

	bestIdx, bestScore := 0, -1.0
	for i := 0; i < limit; i++ {
		score := 0.0
		for _, cell := range rows[i] {
			lower := strings.ToLower(strings.TrimSpace(cell))
			for _, kw := range headerKeywords {
				if strings.Contains(lower, kw) {
					score += 1
					break
				}
			}
			if lower != "" {
				score += 0.2
			}
		}
		if score > bestScore {
			bestScore, bestIdx = score, i
		}
	}
	return bestIdx
}

var modelSheetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(dryer|washer|cooler|refrigerator|fridge|cooling|cooking|washing)`),
	regexp.MustCompile(`\([A-Z0-9]{3,}\)`),
	regexp.MustCompile(`(?i)(GTD|SMG|WTW|WMH|GFE|GSS)`),
}

// DetectModelSheets flags sheet names that look like product/model sheets
// (category prefixes, SKU in parentheses, known model-code fragments),
// falling back to the first sheet.
func DetectModelSheets(sheetNames []string) []string {
	out := []string{}
	for _, name := range sheetNames {
		for _, re := range modelSheetPatterns {
			if re.MatchString(name) {
				out = append(out, name)
				break
			}
		}
	}
	if len(out) == 0 && len(sheetNames) > 0 {
		out = append(out, sheetNames[0])
	}
	return out
}
