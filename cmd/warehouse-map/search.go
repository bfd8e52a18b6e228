package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/warehouse-map/internal/highlight"
	"github.com/ngmaloney/warehouse-map/internal/status"
	"github.com/ngmaloney/warehouse-map/internal/suggest"
	"github.com/ngmaloney/warehouse-map/internal/warehouses"
)

var searchCmd = &cobra.Command{
	Use:   "search <address or zip code>",
	Short: "Find the warehouse nearest to an address",
	Long:  "Geocodes the query like pressing enter in the map and prints the searched location and the closest warehouse.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		query := strings.TrimSpace(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if query == "" {
			fmt.Fprintln(out, status.New(status.EmptyQuery))
			return eris.New("search: empty query")
		}

		src := dataSources(cfg)
		ws, err := warehouses.Load(ctx, src.DBPath, src.Warehouses, nil)
		if err != nil {
			return eris.Wrap(err, "search: load warehouses")
		}

		hits, err := newGateway(cfg).Lookup(ctx, query, suggest.DirectSearchLimit)
		if err != nil {
			// A failing service reads the same as no match
			fmt.Fprintln(out, status.New(status.NotFound))
			return eris.Wrap(err, "search: geocode")
		}
		if len(hits) == 0 {
			fmt.Fprintln(out, status.New(status.NotFound))
			return eris.Errorf("search: no match for %q", query)
		}

		// No panner: the headless search reports whether the map could pan
		// without moving one.
		sel, err := highlight.NewManager(nil, nil).SelectLocation(hits[0], ws)
		if err != nil {
			return eris.Wrap(err, "search: nearest warehouse")
		}

		zap.L().Info("search complete",
			zap.String("query", query),
			zap.String("nearest", sel.Nearest.Warehouse.Company),
			zap.Float64("miles", sel.Nearest.Miles),
		)
		fmt.Fprintln(out, status.Summary(sel.DisplayName, sel.MapPanned, sel.Nearest.Warehouse, sel.Nearest.Miles))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
