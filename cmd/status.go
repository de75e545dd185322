package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("wells:             %d\n", stats.Wells)
		fmt.Printf("with coordinates:  %d\n", stats.WithCoordinates)
		fmt.Printf("stimulation rows:  %d\n", stats.Stimulations)
		fmt.Printf("enriched:          %d\n", stats.Enriched)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
