package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndwells/wellbook/internal/enrich"
)

var (
	enrichRescrape bool
	enrichLimit    int
	enrichDelay    float64
	enrichDryRun   bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich extracted wells with DrillingEdge data",
	Long:  "Looks each extracted well up on drillingedge.com and merges status, type, closest city and production totals into the stored record. Already-visited wells are skipped unless --rescrape is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		delay := enrichDelay
		if delay <= 0 {
			delay = cfg.Enrich.DelaySecs
		}

		fetcher := enrich.NewDrillingEdge(enrich.DrillingEdgeOptions{
			BaseURL:    cfg.Enrich.BaseURL,
			State:      cfg.Enrich.State,
			Timeout:    time.Duration(cfg.Enrich.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Enrich.MaxRetries,
			Delay:      time.Duration(delay * float64(time.Second)),
		})

		res, err := enrich.NewSweeper(st, fetcher).Run(ctx, enrich.SweepOptions{
			Rescrape: enrichRescrape,
			Limit:    enrichLimit,
			DryRun:   enrichDryRun,
		})
		if err != nil {
			return err
		}

		fmt.Printf("candidates %d, enriched %d, not found %d, failed %d\n",
			res.Candidates, res.Enriched, res.NotFound, res.Failed)
		return nil
	},
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichRescrape, "rescrape", false, "revisit wells that were already enriched")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "enrich at most N wells")
	enrichCmd.Flags().Float64Var(&enrichDelay, "delay", 0, "seconds between requests (default from config)")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "fetch and merge without writing to the database")
	rootCmd.AddCommand(enrichCmd)
}
