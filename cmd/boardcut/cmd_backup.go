package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/project"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore presets and templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write presets and templates to one backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(cfg.InventoryPath())
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(cfg.TemplatesPath())
			if err != nil {
				return err
			}
			return project.ExportAllData(args[0], inv, store)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <file>",
		Short: "Merge a backup file into the local presets and templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.RestoreBackup(cfg.DataDir, backup); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d presets and %d templates\n",
				len(backup.Inventory.Boards), len(backup.Templates.Templates))
			return nil
		},
	})

	return cmd
}
