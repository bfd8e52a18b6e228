package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/config"
	"github.com/ngmaloney/warehouse-map/internal/geocoding"
	"github.com/ngmaloney/warehouse-map/internal/ui"
	"github.com/ngmaloney/warehouse-map/internal/warehouses"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "warehouse-map",
	Short: "Interactive terminal map of e-commerce warehouses",
	Long: "Shows every known warehouse on a zoomable map of the United States with a Puerto Rico inset, " +
		"and finds the warehouse closest to any searched address.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(flagBindings(cmd)...)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		zap.L().Info("starting map", zap.String("db_path", cfg.Data.DBPath))

		m := ui.NewModel(dataSources(cfg), newGateway(cfg), cfg.UI.Debounce())
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running map: %w", err)
		}
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("db", "", "path of the local sqlite cache")
	f.String("warehouses-file", "", "read warehouses from a local CSV instead of the feed")
	f.String("boundaries-file", "", "read state outlines from a local GeoJSON file")
	f.String("log-level", "", "log level (debug, info, warn, error)")
}

// flagBindings maps persistent flags onto config keys
func flagBindings(cmd *cobra.Command) []config.Binding {
	f := cmd.Flags()
	return []config.Binding{
		{Key: "data.db_path", Flag: f.Lookup("db")},
		{Key: "data.warehouses_file", Flag: f.Lookup("warehouses-file")},
		{Key: "data.boundaries_file", Flag: f.Lookup("boundaries-file")},
		{Key: "log.level", Flag: f.Lookup("log-level")},
	}
}

func dataSources(c *config.Config) ui.DataSources {
	return ui.DataSources{
		DBPath:     c.Data.DBPath,
		Warehouses: warehouses.Source{URL: c.Data.WarehousesURL, File: c.Data.WarehousesFile},
		Boundaries: boundaries.Source{URL: c.Data.BoundariesURL, File: c.Data.BoundariesFile},
	}
}

func newGateway(c *config.Config) *geocoding.Gateway {
	return geocoding.NewGateway(
		geocoding.WithBaseURL(c.Geocoder.BaseURL),
		geocoding.WithUserAgent(c.Geocoder.UserAgent, c.Geocoder.Contact),
		geocoding.WithRateLimit(c.Geocoder.RatePerSec),
		geocoding.WithTimeout(c.Geocoder.Timeout()),
		geocoding.WithCache(c.Geocoder.CacheSize, c.Geocoder.CacheTTL()),
		geocoding.WithLogger(zap.L().Named("geocoding")),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
