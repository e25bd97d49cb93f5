package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/awaistahir/ecohome/internal/config"
	"github.com/awaistahir/ecohome/internal/engine"
	"github.com/awaistahir/ecohome/internal/model"
	"github.com/awaistahir/ecohome/internal/store"
	"github.com/awaistahir/ecohome/internal/weather"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecohome",
		Short: "EcoHome - Estimate household power draw and tiered electricity cost",
		Long: `EcoHome combines an AI base load prediction (driven by weather) with your
selected appliances to estimate live power draw and the resulting PKR bill
under progressive tariff slabs.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ecohome/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.ecohome/ecohome.db)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(tariffCmd())
	rootCmd.AddCommand(weatherCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	config.Init(cfgFile)

	if dbPath == "" {
		home, _ := os.UserHomeDir()
		dbPath = filepath.Join(home, ".ecohome", "ecohome.db")
	}
}

// baseLoad wires the configured model artifact into the engine
func baseLoad(cfg *config.Config) engine.BaseLoad {
	return engine.BaseLoad{
		Model:         &model.Loader{Path: cfg.ModelPath},
		Bounds:        cfg.Bounds,
		FallbackWatts: cfg.FallbackBaseWatts,
	}
}

func estimateCmd() *cobra.Command {
	var tempC, humidity, hours float64
	var monthly bool
	var activate []string
	var scheduleName string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate current load and cost for the selected appliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			st, err := store.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			specs, err := st.GetAppliances()
			if err != nil {
				return fmt.Errorf("loading catalog: %w (run 'ecohome init' first)", err)
			}
			if len(specs) == 0 {
				return fmt.Errorf("empty catalog (run 'ecohome init' first)")
			}

			for i := range specs {
				for _, name := range activate {
					if specs[i].Name == name {
						specs[i].Active = true
					}
				}
			}

			var schedule *engine.TariffSchedule
			if scheduleName != "" {
				schedule, err = st.GetSchedule(scheduleName)
			} else {
				schedule, err = st.ActiveSchedule()
			}
			if err != nil {
				return fmt.Errorf("loading tariff schedule: %w", err)
			}

			if monthly {
				hours = cfg.PeakHoursPerDay * 30
			}

			result, err := engine.Estimate(baseLoad(cfg), engine.Request{
				Weather:       engine.WeatherSample{TemperatureC: tempC, HumidityPct: humidity},
				Appliances:    specs,
				DurationHours: hours,
				Schedule:      *schedule,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().Float64VarP(&tempC, "temp", "t", 30, "Outside temperature in Celsius")
	cmd.Flags().Float64VarP(&humidity, "humidity", "u", 50, "Relative humidity percentage")
	cmd.Flags().Float64Var(&hours, "hours", 1, "Billing duration in hours")
	cmd.Flags().BoolVarP(&monthly, "monthly", "m", false, "Project a monthly bill instead of an hourly one")
	cmd.Flags().StringSliceVar(&activate, "on", nil, "Appliance names to switch on for this estimate (repeatable)")
	cmd.Flags().StringVarP(&scheduleName, "schedule", "s", "", "Tariff schedule name (default: active schedule)")

	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize EcoHome with the default catalog and tariff schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, spec := range config.DefaultCatalog() {
				if err := st.SaveAppliance(spec); err != nil {
					return err
				}
			}

			schedule := config.DefaultSchedule()
			if err := st.SaveSchedule(schedule); err != nil {
				return err
			}
			if err := st.SetActiveSchedule(schedule.Name); err != nil {
				return err
			}

			fmt.Println("✓ Initialized default catalog and tariff schedule")
			fmt.Printf("Database: %s\n", dbPath)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. List the catalog: ecohome catalog list")
			fmt.Println("  2. Estimate a load:  ecohome estimate --on \"Air Conditioner\" --temp 36")

			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the appliance catalog",
	}

	cmd.AddCommand(catalogAddCmd())
	cmd.AddCommand(catalogListCmd())

	return cmd
}

func catalogAddCmd() *cobra.Command {
	var name string
	var watts, dutyCycle float64
	var active bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update an appliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			spec := engine.ApplianceSpec{
				Name:       name,
				RatedWatts: watts,
				Active:     active,
				DutyCycle:  dutyCycle,
			}
			if err := spec.Validate(); err != nil {
				return err
			}

			if err := st.SaveAppliance(spec); err != nil {
				return err
			}

			fmt.Printf("✓ Saved appliance: %s\n", name)
			fmt.Printf("  Rated: %.0f W\n", watts)
			fmt.Printf("  Duty cycle: %.2f\n", dutyCycle)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Appliance name (required)")
	cmd.Flags().Float64VarP(&watts, "watts", "w", 0, "Rated wattage (required)")
	cmd.Flags().Float64Var(&dutyCycle, "duty", 1.0, "Duty cycle 0-1")
	cmd.Flags().BoolVar(&active, "active", false, "Switched on by default")

	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("watts")

	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the appliance catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			specs, err := st.GetAppliances()
			if err != nil {
				return err
			}

			if len(specs) == 0 {
				fmt.Println("Catalog is empty (run 'ecohome init')")
				return nil
			}

			fmt.Printf("%-25s %10s %8s %8s\n", "NAME", "WATTS", "DUTY", "ON")
			fmt.Println("-----------------------------------------------------")

			for _, s := range specs {
				on := "No"
				if s.Active {
					on = "Yes"
				}
				fmt.Printf("%-25s %9.0fW %8.2f %8s\n", s.Name, s.RatedWatts, s.DutyCycle, on)
			}

			return nil
		},
	}
}

func tariffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tariff",
		Short: "Manage tariff schedules",
	}

	cmd.AddCommand(tariffListCmd())
	cmd.AddCommand(tariffShowCmd())
	cmd.AddCommand(tariffActivateCmd())

	return cmd
}

func tariffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tariff schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			schedules, err := st.ListSchedules()
			if err != nil {
				return err
			}

			if len(schedules) == 0 {
				fmt.Println("No tariff schedules stored (run 'ecohome init')")
				return nil
			}

			for name, active := range schedules {
				marker := " "
				if active {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}

			return nil
		},
	}
}

func tariffShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a schedule's slabs (default: active schedule)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			var schedule *engine.TariffSchedule
			if len(args) == 1 {
				schedule, err = st.GetSchedule(args[0])
			} else {
				schedule, err = st.ActiveSchedule()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Schedule: %s\n", schedule.Name)
			fmt.Printf("%-6s %15s %14s\n", "TIER", "UP TO (UNITS)", "RATE (PKR)")
			for i, tier := range schedule.Tiers {
				bound := "unbounded"
				if !tier.Unbounded() {
					bound = fmt.Sprintf("%.0f", tier.UpperBoundUnits)
				}
				fmt.Printf("%-6d %15s %14.2f\n", i, bound, tier.RatePerUnit)
			}

			return nil
		},
	}
}

func tariffActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "Make a stored schedule the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetActiveSchedule(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Active schedule: %s\n", args[0])
			return nil
		},
	}
}

func weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Fetch current conditions for the configured location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			client := weather.NewClient(cfg.Latitude, cfg.Longitude)
			sample, err := client.Current(context.Background())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sample)
		},
	}
}
