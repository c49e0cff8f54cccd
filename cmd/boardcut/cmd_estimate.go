package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
)

func newEstimateCmd() *cobra.Command {
	var (
		cutsPath     string
		unit         string
		boardLength  float64
		boardUnit    string
		wastePercent float64
		price        float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how many boards to buy",
		Long: `Estimates the number of boards of a single length needed for a cut list,
charging one kerf per cut and adding a waste factor.

Example:
  boardcut estimate --cuts cuts.csv --length 8 --length-unit ft --waste 15 --price 4.98`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if unit == "" {
				unit = cfg.DefaultUnit
			}
			res, err := importList(cutsPath, unit)
			if err != nil {
				return fmt.Errorf("cuts: %w", err)
			}
			boardInches, err := units.ToInches(boardLength, boardUnit)
			if err != nil {
				return err
			}
			if boardInches <= 0 {
				return fmt.Errorf("--length must be positive")
			}

			est, err := model.CalculatePurchaseEstimate(res.Cuts(), boardInches, cfg.KerfInches, wastePercent, price)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Total demand:\t%s\t(%.2f linear ft)\n", units.FormatFeetAndInches(est.TotalCutInches), est.TotalLinearFeet)
			fmt.Fprintf(tw, "Boards (exact):\t%.2f\n", est.BoardsNeededExact)
			fmt.Fprintf(tw, "Boards (minimum):\t%d\n", est.BoardsNeededMin)
			fmt.Fprintf(tw, "Boards (+%.0f%% waste):\t%d\n", est.WastePercent, est.BoardsWithWaste)
			if est.PricePerBoard > 0 {
				fmt.Fprintf(tw, "Estimated cost:\t%.2f\n", est.EstimatedCost)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&cutsPath, "cuts", "", "Cut list (CSV, XLSX or DXF) (required)")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit for rows without one (default: config default_unit)")
	cmd.Flags().Float64Var(&boardLength, "length", 8, "Stock board length")
	cmd.Flags().StringVar(&boardUnit, "length-unit", "ft", "Unit of --length")
	cmd.Flags().Float64Var(&wastePercent, "waste", 15, "Waste factor in percent")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per board")
	_ = cmd.MarkFlagRequired("cuts")
	return cmd
}
