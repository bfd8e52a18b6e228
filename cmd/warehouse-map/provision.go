package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/database"
	"github.com/ngmaloney/warehouse-map/internal/warehouses"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Download warehouses and state outlines into the local cache",
	Long:  "Fetches the warehouse feed and the Census state boundaries and stores both in sqlite, replacing what was cached.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.GetDB(cfg.Data.DBPath)
		if err != nil {
			return eris.Wrap(err, "provision: open database")
		}

		out := cmd.OutOrStdout()
		progressChan := make(chan string)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for line := range progressChan {
				fmt.Fprintln(out, line)
			}
		}()

		src := dataSources(cfg)
		nw, err := warehouses.Provision(ctx, db, src.Warehouses, progressChan)
		if err == nil {
			var nb int
			nb, err = boundaries.Provision(ctx, db, src.Boundaries, progressChan)
			if err == nil {
				zap.L().Info("cache provisioned", zap.Int("warehouses", nw), zap.Int("boundaries", nb))
				fmt.Fprintf(out, "Cached %d warehouses and %d state outlines in %s\n", nw, nb, cfg.Data.DBPath)
			}
		}
		close(progressChan)
		<-done

		if err != nil {
			return eris.Wrap(err, "provision")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
