package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/awaistahir/ecohome/internal/engine"
	"github.com/spf13/viper"
)

// Config holds the runtime settings the binaries read at startup. The
// appliance catalog and tariff schedules are deliberately not here: those live
// in the store so they can change without a redeploy.
type Config struct {
	ModelPath         string
	FallbackBaseWatts float64
	PeakHoursPerDay   float64
	Timezone          string
	Latitude          float64
	Longitude         float64
	Bounds            engine.Bounds
}

// Init wires viper to the config file. An empty cfgFile falls back to
// $HOME/.ecohome/config.yaml, created on demand.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".ecohome")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("model_path", defaultModelPath())
	viper.SetDefault("fallback_base_watts", 50.0)
	viper.SetDefault("peak_hours_per_day", 6.0)
	viper.SetDefault("timezone", "Asia/Karachi")
	viper.SetDefault("latitude", 24.8607) // Karachi
	viper.SetDefault("longitude", 67.0011)
	viper.SetDefault("min_temp_c", -10.0)
	viper.SetDefault("max_temp_c", 55.0)

	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// Load materializes the current viper state into a Config
func Load() *Config {
	return &Config{
		ModelPath:         viper.GetString("model_path"),
		FallbackBaseWatts: viper.GetFloat64("fallback_base_watts"),
		PeakHoursPerDay:   viper.GetFloat64("peak_hours_per_day"),
		Timezone:          viper.GetString("timezone"),
		Latitude:          viper.GetFloat64("latitude"),
		Longitude:         viper.GetFloat64("longitude"),
		Bounds: engine.Bounds{
			MinTempC:       viper.GetFloat64("min_temp_c"),
			MaxTempC:       viper.GetFloat64("max_temp_c"),
			MinHumidityPct: 0,
			MaxHumidityPct: 100,
		},
	}
}

func defaultModelPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ecohome", "ecohome_model.json")
}

// DefaultCatalog is the illustrative appliance catalog used to seed a new
// store. Wattages are typical for Pakistani households; only the fridge runs
// by default. These are configuration, not algorithmic truths.
func DefaultCatalog() []engine.ApplianceSpec {
	return []engine.ApplianceSpec{
		{Name: "Air Conditioner", RatedWatts: 1500, Active: false, DutyCycle: 1.0},
		{Name: "Ceiling Fan", RatedWatts: 80, Active: false, DutyCycle: 1.0},
		{Name: "LED Bulb", RatedWatts: 20, Active: false, DutyCycle: 1.0},
		{Name: "Refrigerator", RatedWatts: 250, Active: true, DutyCycle: 1.0},
		{Name: "UPS Charger", RatedWatts: 300, Active: false, DutyCycle: 1.0},
		{Name: "Iron", RatedWatts: 1000, Active: false, DutyCycle: 1.0},
		{Name: "Water Motor", RatedWatts: 1000, Active: false, DutyCycle: 1.0},
	}
}

// DefaultSchedule is an illustrative residential slab schedule in PKR per
// unit, seeded into a new store and replaceable at runtime
func DefaultSchedule() engine.TariffSchedule {
	return engine.TariffSchedule{
		Name: "residential",
		Tiers: []engine.TariffTier{
			{UpperBoundUnits: 100, RatePerUnit: 22.95},
			{UpperBoundUnits: 200, RatePerUnit: 28.07},
			{UpperBoundUnits: 300, RatePerUnit: 32.03},
			{UpperBoundUnits: 700, RatePerUnit: 42.07},
			{UpperBoundUnits: 0, RatePerUnit: 47.69},
		},
	}
}
