package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
	"github.com/piwi3910/BoardCut/internal/units"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage board presets",
	}
	cmd.AddCommand(newInventoryListCmd(), newInventoryAddCmd(), newInventoryRemoveCmd(), newInventoryImportCmd())
	return cmd
}

func newInventoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List board presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(cfg.InventoryPath())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLENGTH\tMATERIAL\tPRICE")
			for _, b := range inv.Boards {
				fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%.2f\n", b.ID, b.Name, number(b.Length), b.Unit, b.Material, b.PricePerBoard)
			}
			return tw.Flush()
		},
	}
}

func newInventoryAddCmd() *cobra.Command {
	var (
		name     string
		length   float64
		unit     string
		material string
		price    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a board preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := units.Canonical(unit)
			if err != nil {
				return err
			}
			if length <= 0 {
				return fmt.Errorf("--length must be positive")
			}

			path := cfg.InventoryPath()
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			bp := model.NewBoardPresetWithPrice(name, length, string(u), material, price)
			inv.Add(bp)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			logger.Debug().Str("id", bp.ID).Str("name", bp.Name).Msg("preset added")
			fmt.Fprintln(cmd.OutOrStdout(), bp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Preset name (required)")
	cmd.Flags().Float64Var(&length, "length", 0, "Board length (required)")
	cmd.Flags().StringVar(&unit, "unit", "ft", "Unit of --length")
	cmd.Flags().StringVar(&material, "material", "", "Material or species")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per board")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}

func newInventoryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a board preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.InventoryPath()
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			if !inv.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			return project.SaveInventory(path, inv)
		},
	}
}

func newInventoryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge presets from another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.InventoryPath()
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			before := len(inv.Boards)
			inv, err = project.ImportInventory(args[0], inv)
			if err != nil {
				return err
			}
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d presets\n", len(inv.Boards)-before)
			return nil
		},
	}
}
