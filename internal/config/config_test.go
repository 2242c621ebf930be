package config

import (
	"testing"

	"pacesetter/internal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridRegion != internal.GridEU27 || cfg.GridFactor != 0.25 {
		t.Fatalf("grid = %s %v", cfg.GridRegion, cfg.GridFactor)
	}
	if cfg.LifetimeYears[internal.CategoryCooling] != 12 {
		t.Fatalf("lifetimes = %+v", cfg.LifetimeYears)
	}
	if cfg.UsePhasePercentRed != 60 || cfg.MaterialsKgRed != 120 || cfg.ProductionKgGreen != 25 {
		t.Fatalf("thresholds = %+v", cfg.Thresholds())
	}
	if cfg.ParseChunkRows != 1000 {
		t.Fatalf("chunk rows = %d", cfg.ParseChunkRows)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GRID_REGION", "Mexico")
	t.Setenv("LIFETIME_WASHING", "8")
	t.Setenv("MATERIALS_RED_KG", "150")
	t.Setenv("PARSE_CHUNK_ROWS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridRegion != internal.GridMexico || cfg.GridFactor != 0.42 {
		t.Fatalf("grid = %s %v", cfg.GridRegion, cfg.GridFactor)
	}
	if cfg.LifetimeYears[internal.CategoryWashing] != 8 {
		t.Fatalf("lifetimes = %+v", cfg.LifetimeYears)
	}
	if cfg.MaterialsKgRed != 150 {
		t.Fatalf("materials red = %v", cfg.MaterialsKgRed)
	}
	if cfg.ParseChunkRows != 250 {
		t.Fatalf("chunk rows = %d", cfg.ParseChunkRows)
	}
}

func TestLoadUnknownRegionFallsBack(t *testing.T) {
	t.Setenv("GRID_REGION", "Atlantis")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridFactor != 0.25 {
		t.Fatalf("factor = %v, want EU-27 fallback", cfg.GridFactor)
	}
}
