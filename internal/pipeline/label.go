package pipeline

import "pacesetter/internal"

// kWh/year upper limits for labels A through F; G sits above the last band.
var labelBands = map[internal.Category][]float64{
	internal.CategoryCooking: {50, 70, 95, 120, 150, 180},
	internal.CategoryCooling: {100, 150, 200, 250, 300, 350},
	internal.CategoryWashing: {80, 110, 140, 170, 200, 240},
}

var defaultLabelBands = []float64{110, 140, 180, 220, 270, 330}

const labelLetters = "ABCDEFG"

// SuggestLabel maps annual consumption onto an EU energy label using
// category-specific efficiency bands.
func SuggestLabel(kwhPerYear float64, category internal.Category) string {
	bands, ok := labelBands[category]
	if !ok {
		bands = defaultLabelBands
	}
	for i, limit := range bands {
		if kwhPerYear <= limit {
			return string(labelLetters[i])
		}
	}
	return "G"
}
