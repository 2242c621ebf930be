package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pacesetter/internal"
)

type Config struct {
	DBPath    string
	OutputDir string

	GridRegion internal.GridRegion
	GridFactor float64

	LifetimeYears map[internal.Category]float64

	UsePhasePercentRed float64
	MaterialsKgRed     float64
	ProductionKgGreen  float64

	ParseChunkRows int
}

// GridFactorPresets are the selectable grid intensities in kg CO2e/kWh.
var GridFactorPresets = map[internal.GridRegion]float64{
	internal.GridMexico:     0.42,
	internal.GridEU27:       0.25,
	internal.GridUSA:        0.40,
	internal.GridRenewables: 0.10,
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	region := internal.GridRegion(getEnv("GRID_REGION", string(internal.GridEU27)))
	factor := GridFactorPresets[region]
	if factor == 0 {
		factor = GridFactorPresets[internal.GridEU27]
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		GridRegion: region,
		GridFactor: getEnvFloat("GRID_FACTOR", factor),

		LifetimeYears: map[internal.Category]float64{
			internal.CategoryCooking: getEnvFloat("LIFETIME_COOKING", 10),
			internal.CategoryCooling: getEnvFloat("LIFETIME_COOLING", 12),
			internal.CategoryWashing: getEnvFloat("LIFETIME_WASHING", 10),
		},

		UsePhasePercentRed: getEnvFloat("USE_PHASE_RED_PCT", 60),
		MaterialsKgRed:     getEnvFloat("MATERIALS_RED_KG", 120),
		ProductionKgGreen:  getEnvFloat("PRODUCTION_GREEN_KG", 25),

		ParseChunkRows: getEnvInt("PARSE_CHUNK_ROWS", 1000),
	}

	return cfg, nil
}

// Thresholds bundles the traffic-light limits currently configured.
func (c Config) Thresholds() internal.Thresholds {
	return internal.Thresholds{
		UsePhasePercentRed: c.UsePhasePercentRed,
		MaterialsKgRed:     c.MaterialsKgRed,
		ProductionKgGreen:  c.ProductionKgGreen,
	}
}

func (c Config) Grid() internal.GridFactor {
	return internal.GridFactor{Region: c.GridRegion, Factor: c.GridFactor}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
