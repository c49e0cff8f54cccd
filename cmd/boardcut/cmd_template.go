package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage project templates",
	}
	cmd.AddCommand(newTemplateSaveCmd(), newTemplateListCmd(), newTemplateApplyCmd(), newTemplateRemoveCmd())
	return cmd
}

func newTemplateSaveCmd() *cobra.Command {
	var (
		projectPath string
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a project's boards, cuts and settings as a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.LoadProject(projectPath)
			if err != nil {
				return err
			}
			if name == "" {
				name = proj.Name
			}

			path := cfg.TemplatesPath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			tpl := model.NewProjectTemplate(name, description, proj.Boards, proj.Cuts, proj.Settings)
			id, replaced := store.Save(tpl)
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			if replaced {
				logger.Info().Str("template", id).Str("name", name).Msg("replaced existing template")
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", "", "Project file to capture (required)")
	cmd.Flags().StringVar(&name, "name", "", "Template name (default: project name)")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(cfg.TemplatesPath())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBOARDS\tCUTS\tDESCRIPTION")
			for _, t := range store.Sorted() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", t.ID, t.Name, len(t.Boards), len(t.Cuts), t.Description)
			}
			return tw.Flush()
		},
	}
}

func newTemplateApplyCmd() *cobra.Command {
	var (
		out  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "apply <id|name>",
		Short: "Create a new project file from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(cfg.TemplatesPath())
			if err != nil {
				return err
			}
			tpl := store.Find(args[0])
			if tpl == nil {
				return fmt.Errorf("template %q not found", args[0])
			}
			if name == "" {
				name = tpl.Name
			}

			path := project.EnsureExt(out)
			if err := project.SaveProject(path, tpl.ToProject(name)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Project file to write (required)")
	cmd.Flags().StringVar(&name, "name", "", "Project name (default: template name)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newTemplateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.TemplatesPath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if !store.Delete(args[0]) {
				return fmt.Errorf("template %q not found", args[0])
			}
			return project.SaveTemplates(path, store)
		},
	}
}
