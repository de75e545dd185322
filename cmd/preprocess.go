package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndwells/wellbook/internal/normalize"
)

var preprocessDryRun bool

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Re-run the normalization engine over stored records",
	Long:  "Applies the current cleaning and validation rules to every persisted well and stimulation row. Safe to run repeatedly; records already clean are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		wells, err := st.ListWells(ctx)
		if err != nil {
			return err
		}

		var changedWells, changedStims, findings int
		for _, w := range wells {
			res := normalize.Well(w)
			findings += len(res.Findings)
			for _, f := range res.Findings {
				zap.L().Info("validation finding",
					zap.Int64("well_id", w.ID),
					zap.String("field", f.Field),
					zap.String("value", f.Value),
					zap.String("reason", f.Reason))
			}
			if res.Well != w {
				changedWells++
				if preprocessDryRun {
					fmt.Printf("well %d (%s) would change\n", w.ID, w.PDFSource)
				} else if err := st.UpdateWell(ctx, res.Well); err != nil {
					return err
				}
			}

			stims, err := st.ListStimulations(ctx, w.ID)
			if err != nil {
				return err
			}
			for _, s := range stims {
				sres := normalize.Stim(s)
				findings += len(sres.Findings)
				if sres.Stim != s {
					changedStims++
					if preprocessDryRun {
						fmt.Printf("stimulation %d of well %d would change\n", s.ID, w.ID)
					} else if err := st.UpdateStimulation(ctx, sres.Stim); err != nil {
						return err
					}
				}
			}
		}

		verb := "updated"
		if preprocessDryRun {
			verb = "would update"
		}
		fmt.Printf("%d wells checked, %s %d wells and %d stimulation rows, %d findings\n",
			len(wells), verb, changedWells, changedStims, findings)
		return nil
	},
}

func init() {
	preprocessCmd.Flags().BoolVar(&preprocessDryRun, "dry-run", false, "report changes without writing them")
	rootCmd.AddCommand(preprocessCmd)
}
