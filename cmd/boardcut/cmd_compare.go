package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
	"github.com/piwi3910/BoardCut/internal/units"
)

func newCompareCmd() *cobra.Command {
	var (
		cutsPath string
		unit     string
		presets  []string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare stock lengths for a cut list",
		Long: `Plans the cut list once per board preset, stocking enough boards of each
length, and shows which length wastes the least.

Examples:
  boardcut compare --cuts cuts.csv
  boardcut compare --cuts cuts.csv --presets "2x4 8ft,2x4 12ft"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if unit == "" {
				unit = cfg.DefaultUnit
			}
			res, err := importList(cutsPath, unit)
			if err != nil {
				return fmt.Errorf("cuts: %w", err)
			}
			cuts := res.Cuts()
			model.AssignIDs(nil, cuts)
			if err := model.ValidateCuts(cuts); err != nil {
				return err
			}

			inv, err := project.LoadInventory(cfg.InventoryPath())
			if err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			selected, err := selectPresets(inv, presets)
			if err != nil {
				return err
			}

			opt := engine.New(cfg.PlanSettings())
			scenarios, err := opt.BuildPresetScenarios(selected, cuts)
			if err != nil {
				return err
			}
			results, err := opt.CompareScenarios(scenarios, cuts)
			if err != nil {
				return err
			}

			best := engine.BestScenario(results)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tSTOCK\tBOARDS\tWASTE\tSHORT\tEFFICIENCY\tCOST")
			for i, r := range results {
				mark := ""
				if i == best {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%.1f%%\t%.2f\n",
					mark, r.Scenario.Name, r.BoardsUsed,
					units.FormatFeetAndInches(r.WasteInches),
					units.FormatFeetAndInches(r.ShortfallInches),
					r.EfficiencyPct, r.EstimatedCost)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&cutsPath, "cuts", "", "Cut list (CSV, XLSX or DXF) (required)")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit for rows without one (default: config default_unit)")
	cmd.Flags().StringSliceVar(&presets, "presets", nil, "Preset IDs or names to compare (default: whole inventory)")
	_ = cmd.MarkFlagRequired("cuts")
	return cmd
}

// selectPresets resolves preset IDs or names against the inventory. No
// selectors selects every preset.
func selectPresets(inv model.Inventory, selectors []string) ([]model.BoardPreset, error) {
	if len(selectors) == 0 {
		if len(inv.Boards) == 0 {
			return nil, errors.New("inventory is empty")
		}
		return inv.Boards, nil
	}
	out := make([]model.BoardPreset, 0, len(selectors))
	for _, s := range selectors {
		p := inv.FindByID(s)
		if p == nil {
			p = inv.FindByName(s)
		}
		if p == nil {
			return nil, fmt.Errorf("preset %q not found", s)
		}
		out = append(out, *p)
	}
	return out, nil
}
