package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/awaistahir/ecohome/internal/config"
	"github.com/awaistahir/ecohome/internal/engine"
	"github.com/awaistahir/ecohome/internal/model"
	"github.com/awaistahir/ecohome/internal/store"
	"github.com/awaistahir/ecohome/internal/uiapi"
	"github.com/spf13/cobra"
)

func main() {
	var port int
	var cfgFile, dbPath string

	rootCmd := &cobra.Command{
		Use:   "ecohomed",
		Short: "EcoHome estimation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Init(cfgFile)
			cfg := config.Load()

			if dbPath == "" {
				home, _ := os.UserHomeDir()
				dbPath = filepath.Join(home, ".ecohome", "ecohome.db")
			}

			st, err := store.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			base := engine.BaseLoad{
				Model:         &model.Loader{Path: cfg.ModelPath},
				Bounds:        cfg.Bounds,
				FallbackWatts: cfg.FallbackBaseWatts,
			}

			srv := uiapi.NewServer(st, base, cfg)

			addr := fmt.Sprintf(":%d", port)
			log.Printf("EcoHome API server starting on port %d", port)
			log.Printf("Database: %s", dbPath)
			log.Printf("Model artifact: %s", cfg.ModelPath)

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Config file")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
