package pipeline

import (
	"testing"

	"pacesetter/internal"
	"pacesetter/internal/util"
)

var testThresholds = internal.Thresholds{
	UsePhasePercentRed: 60,
	MaterialsKgRed:     120,
	ProductionKgGreen:  25,
}

func TestComputeKPIsFormula(t *testing.T) {
	records := []internal.MappedRecord{{
		Product:       "Cooker A",
		Category:      internal.CategoryCooking,
		Transport:     util.FloatPtr(10),
		Materials:     util.FloatPtr(20),
		Production:    util.FloatPtr(30),
		UseKWhPerYear: util.FloatPtr(100),
	}}
	grid := internal.GridFactor{Region: internal.GridEU27, Factor: 0.25}
	life := map[internal.Category]float64{internal.CategoryCooking: 10}

	kpis := ComputeKPIs(records, grid, life, testThresholds)
	if len(kpis) != 1 {
		t.Fatalf("got %d KPIs", len(kpis))
	}
	kpi := kpis[0]
	if kpi.UsePhaseCO2e != 0.25 {
		t.Fatalf("use phase = %v, want 0.25", kpi.UsePhaseCO2e)
	}
	if kpi.TotalCO2e != 60.25 {
		t.Fatalf("total = %v, want 60.25", kpi.TotalCO2e)
	}
	if kpi.UsePhaseSharePct != 0.41 {
		t.Fatalf("share = %v, want 0.41", kpi.UsePhaseSharePct)
	}
	if kpi.Stages.Use != 0.25 || kpi.Stages.Materials != 20 {
		t.Fatalf("stages = %+v", kpi.Stages)
	}
}

func TestComputeKPIsDefaultsOnBadFactorAndUnknownCategory(t *testing.T) {
	records := []internal.MappedRecord{{
		Product:       "Mystery",
		Category:      internal.CategoryUnknown,
		Transport:     util.FloatPtr(0),
		Materials:     util.FloatPtr(0),
		Production:    util.FloatPtr(0),
		UseKWhPerYear: util.FloatPtr(400),
	}}

	kpis := ComputeKPIs(records, internal.GridFactor{Factor: -1}, map[internal.Category]float64{}, testThresholds)
	// 400 kWh * 0.25 default factor * 10 default years / 1000 = 1 kg.
	if kpis[0].UsePhaseCO2e != 1 {
		t.Fatalf("use phase = %v, want 1", kpis[0].UsePhaseCO2e)
	}
}

func TestComputeKPIsZeroTotalShare(t *testing.T) {
	records := []internal.MappedRecord{{
		Product:       "Empty",
		Category:      internal.CategoryWashing,
		Transport:     util.FloatPtr(0),
		Materials:     util.FloatPtr(0),
		Production:    util.FloatPtr(0),
		UseKWhPerYear: util.FloatPtr(0),
	}}
	kpis := ComputeKPIs(records, internal.GridFactor{Factor: 0.25}, nil, testThresholds)
	if kpis[0].UsePhaseSharePct != 0 {
		t.Fatalf("share = %v, want 0", kpis[0].UsePhaseSharePct)
	}
}

func TestComputeKPIsStatusBands(t *testing.T) {
	grid := internal.GridFactor{Factor: 0.25}
	mk := func(materials, production, kwh float64) internal.KPIResult {
		records := []internal.MappedRecord{{
			Product:       "P",
			Category:      internal.CategoryCooling,
			Transport:     util.FloatPtr(0),
			Materials:     util.FloatPtr(materials),
			Production:    util.FloatPtr(production),
			UseKWhPerYear: util.FloatPtr(kwh),
		}}
		return ComputeKPIs(records, grid, nil, testThresholds)[0]
	}

	if s := mk(130, 10, 0).Status.Materials; s != internal.StatusRed {
		t.Fatalf("materials 130 = %s, want red", s)
	}
	if s := mk(90, 10, 0).Status.Materials; s != internal.StatusAmber {
		t.Fatalf("materials 90 = %s, want amber", s)
	}
	if s := mk(50, 10, 0).Status.Materials; s != internal.StatusGreen {
		t.Fatalf("materials 50 = %s, want green", s)
	}

	if s := mk(10, 20, 0).Status.Production; s != internal.StatusGreen {
		t.Fatalf("production 20 = %s, want green", s)
	}
	if s := mk(10, 30, 0).Status.Production; s != internal.StatusAmber {
		t.Fatalf("production 30 = %s, want amber", s)
	}
	if s := mk(10, 50, 0).Status.Production; s != internal.StatusRed {
		t.Fatalf("production 50 = %s, want red", s)
	}

	// 4000 kWh/a at 0.25 over 10 years is a 10 kg use phase.
	if s := mk(10, 10, 4000).Status.UsePhase; s != internal.StatusGreen {
		t.Fatalf("use share 33%% = %s, want green", s)
	}
	if s := mk(5, 5, 4000).Status.UsePhase; s != internal.StatusAmber {
		t.Fatalf("use share 50%% = %s, want amber", s)
	}
	if s := mk(2, 2, 4000).Status.UsePhase; s != internal.StatusRed {
		t.Fatalf("use share 71%% = %s, want red", s)
	}
}

func TestComputeKPIsLabel(t *testing.T) {
	records := []internal.MappedRecord{
		{
			Product:       "Labelled",
			Category:      internal.CategoryCooling,
			Transport:     util.FloatPtr(1),
			Materials:     util.FloatPtr(1),
			Production:    util.FloatPtr(1),
			UseKWhPerYear: util.FloatPtr(500),
			EULabel:       util.StringPtr("B"),
		},
		{
			Product:       "Suggested",
			Category:      internal.CategoryCooling,
			Transport:     util.FloatPtr(1),
			Materials:     util.FloatPtr(1),
			Production:    util.FloatPtr(1),
			UseKWhPerYear: util.FloatPtr(120),
		},
		{
			Product:    "NoConsumption",
			Category:   internal.CategoryCooling,
			Transport:  util.FloatPtr(1),
			Materials:  util.FloatPtr(1),
			Production: util.FloatPtr(1),
		},
	}
	kpis := ComputeKPIs(records, internal.GridFactor{Factor: 0.25}, nil, testThresholds)

	if kpis[0].EnergyLabel != "B" {
		t.Fatalf("provided label = %q, want B", kpis[0].EnergyLabel)
	}
	if kpis[1].EnergyLabel != "B" {
		t.Fatalf("suggested label for 120 kWh cooling = %q, want B", kpis[1].EnergyLabel)
	}
	if kpis[2].EnergyLabel != "" {
		t.Fatalf("label without consumption = %q, want empty", kpis[2].EnergyLabel)
	}
}

func TestSuggestLabelBands(t *testing.T) {
	cases := []struct {
		kwh  float64
		cat  internal.Category
		want string
	}{
		{40, internal.CategoryCooking, "A"},
		{95, internal.CategoryCooking, "C"},
		{200, internal.CategoryCooking, "G"},
		{100, internal.CategoryCooling, "A"},
		{360, internal.CategoryCooling, "G"},
		{80, internal.CategoryWashing, "A"},
		{100, internal.CategoryUnknown, "A"},
		{340, internal.CategoryUnknown, "G"},
	}
	for _, tc := range cases {
		if got := SuggestLabel(tc.kwh, tc.cat); got != tc.want {
			t.Fatalf("SuggestLabel(%v, %s) = %q, want %q", tc.kwh, tc.cat, got, tc.want)
		}
	}
}
