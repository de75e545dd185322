package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"

	"github.com/ndwells/wellbook/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export wells and stimulation data to an XLSX workbook",
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

		file := xlsx.NewFile()

		wellSheet, err := file.AddSheet("Wells")
		if err != nil {
			return eris.Wrap(err, "export: add wells sheet")
		}
		addHeader(wellSheet,
			"ID", "API Number", "Well File No", "Well Name", "Latitude", "Longitude",
			"Address", "County", "Field", "Operator", "Permit Number", "Permit Date",
			"Total Depth", "Formation", "Well Status", "Well Type", "Closest City",
			"Barrels Oil Produced", "MCF Gas Produced", "PDF Source")

		stimSheet, err := file.AddSheet("Stimulations")
		if err != nil {
			return eris.Wrap(err, "export: add stimulations sheet")
		}
		addHeader(stimSheet,
			"Well ID", "API Number", "Date Stimulated", "Stimulated Formation",
			"Top (Ft)", "Bottom (Ft)", "Stages", "Volume", "Volume Units",
			"Type Treatment", "Acid %", "Lbs Proppant", "Max Pressure (PSI)", "Max Rate")

		var stimRows int
		for _, w := range wells {
			addWellRow(wellSheet, w)

			stims, err := st.ListStimulations(ctx, w.ID)
			if err != nil {
				return err
			}
			for _, s := range stims {
				addStimRow(stimSheet, w.APINumber, s)
				stimRows++
			}
		}

		if err := file.Save(exportOut); err != nil {
			return eris.Wrapf(err, "export: save %s", exportOut)
		}

		fmt.Printf("wrote %d wells and %d stimulation rows to %s\n",
			len(wells), stimRows, exportOut)
		return nil
	},
}

func addHeader(sheet *xlsx.Sheet, labels ...string) {
	row := sheet.AddRow()
	for _, l := range labels {
		row.AddCell().SetString(l)
	}
}

func addWellRow(sheet *xlsx.Sheet, w model.WellRecord) {
	row := sheet.AddRow()
	row.AddCell().SetInt64(w.ID)
	for _, v := range []string{w.APINumber, w.WellFileNo, w.WellName} {
		row.AddCell().SetString(v)
	}
	addCoordinate(row, w.Latitude)
	addCoordinate(row, w.Longitude)
	for _, v := range []string{
		w.Address, w.County, w.Field, w.Operator, w.PermitNumber, w.PermitDate,
		w.TotalDepth, w.Formation, w.WellStatus, w.WellType, w.ClosestCity,
		w.BarrelsOilProduced, w.MCFGasProduced, w.PDFSource,
	} {
		row.AddCell().SetString(v)
	}
}

func addStimRow(sheet *xlsx.Sheet, api string, s model.StimulationRecord) {
	row := sheet.AddRow()
	row.AddCell().SetInt64(s.WellID)
	row.AddCell().SetString(api)
	row.AddCell().SetString(s.DateStimulated)
	row.AddCell().SetString(s.StimulatedFormation)
	row.AddCell().SetFloat(s.TopFt)
	row.AddCell().SetFloat(s.BottomFt)
	row.AddCell().SetInt(s.StimulationStages)
	row.AddCell().SetFloat(s.Volume)
	row.AddCell().SetString(s.VolumeUnits)
	row.AddCell().SetString(s.TypeTreatment)
	row.AddCell().SetString(s.AcidPct)
	row.AddCell().SetFloat(s.LbsProppant)
	row.AddCell().SetFloat(s.MaxTreatmentPressurePSI)
	row.AddCell().SetFloat(s.MaxTreatmentRate)
}

func addCoordinate(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "oil_wells.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
