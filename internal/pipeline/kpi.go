package pipeline

import (
	"github.com/shopspring/decimal"

	"pacesetter/internal"
)

const (
	defaultLifetimeYears = 10.0
	defaultGridFactor    = 0.25
)

// ComputeKPIs derives the per-product footprint KPIs. The use-phase
// formula divides by 1000 on purpose; it reconciles the stated unit chain
// and is a contractual constant. All numeric outputs are rounded to two
// decimals, half away from zero.
func ComputeKPIs(records []internal.MappedRecord, grid internal.GridFactor, lifetimeYears map[internal.Category]float64, thresholds internal.Thresholds) []internal.KPIResult {
	factor := grid.Factor
	if factor <= 0 {
		factor = defaultGridFactor
	}

	out := make([]internal.KPIResult, 0, len(records))
	for _, rec := range records {
		life, ok := lifetimeYears[rec.Category]
		if !ok {
			life = defaultLifetimeYears
		}

		transport := orZero(rec.Transport)
		materials := orZero(rec.Materials)
		production := orZero(rec.Production)
		useKWh := orZero(rec.UseKWhPerYear)

		useKg := useKWh * factor * life / 1000
		total := transport + materials + production + useKg
		share := 0.0
		if total > 0 {
			share = useKg / total * 100
		}

		label := ""
		if rec.EULabel != nil {
			label = *rec.EULabel
		} else if rec.UseKWhPerYear != nil {
			label = SuggestLabel(useKWh, rec.Category)
		}

		out = append(out, internal.KPIResult{
			Product:  rec.Product,
			Category: rec.Category,
			Stages: internal.StageBreakdown{
				Transport:  round2(transport),
				Materials:  round2(materials),
				Production: round2(production),
				Use:        round2(useKg),
			},
			UsePhaseCO2e:     round2(useKg),
			TotalCO2e:        round2(total),
			UsePhaseSharePct: round2(share),
			EnergyLabel:      label,
			Status: internal.StatusSet{
				UsePhase:   bandAbove(share, thresholds.UsePhasePercentRed),
				Materials:  bandAbove(materials, thresholds.MaterialsKgRed),
				Production: bandBelow(production, thresholds.ProductionKgGreen),
			},
		})
	}
	return out
}

// bandAbove grades a higher-is-worse value: red at the limit, amber from
// 70% of it.
func bandAbove(value, redLimit float64) internal.StatusColor {
	switch {
	case value >= redLimit:
		return internal.StatusRed
	case value >= 0.7*redLimit:
		return internal.StatusAmber
	default:
		return internal.StatusGreen
	}
}

// bandBelow grades a lower-is-better value: green up to the limit, amber
// up to 1.5x of it.
func bandBelow(value, greenLimit float64) internal.StatusColor {
	switch {
	case value <= greenLimit:
		return internal.StatusGreen
	case value <= 1.5*greenLimit:
		return internal.StatusAmber
	default:
		return internal.StatusRed
	}
}

func round2(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
