package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/export"
	"github.com/piwi3910/BoardCut/internal/importer"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

type planOptions struct {
	projectPath string
	boardsPath  string
	cutsPath    string
	unit        string
	kerf        float64
	minRemnant  float64
	pdfPath     string
	labelsPath  string
	xlsxPath    string
	dxfPath     string
	savePath    string
	asJSON      bool
}

func newPlanCmd() *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a cutting plan",
		Long: `Plans the desired cuts against the available boards, longest cut first,
choosing the board that leaves the least leftover.

Input comes from a saved project or from board and cut lists (CSV, XLSX or,
for cuts, DXF drawings whose LINE entities are the cut lengths).

Examples:
  boardcut plan --project shed.boardcut --pdf shed.pdf
  boardcut plan --boards stock.csv --cuts cuts.csv --kerf 0.125 --json
  boardcut plan --boards stock.xlsx --cuts frame.dxf --unit in --labels labels.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectPath, "project", "", "Project file to plan")
	cmd.Flags().StringVar(&opts.boardsPath, "boards", "", "Board list (CSV or XLSX)")
	cmd.Flags().StringVar(&opts.cutsPath, "cuts", "", "Cut list (CSV, XLSX or DXF)")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "Unit for rows without one (default: config default_unit)")
	cmd.Flags().Float64Var(&opts.kerf, "kerf", 0, "Blade kerf in inches (default: config kerf_inches)")
	cmd.Flags().Float64Var(&opts.minRemnant, "min-remnant", 0, "Smallest leftover to report, in inches")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write a PDF cut report")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "Write a PDF sheet of QR cut labels")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "Write an XLSX workbook")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "Write a DXF board layout")
	cmd.Flags().StringVar(&opts.savePath, "save", "", "Save inputs and plan as a project file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the plan as JSON")
	cmd.MarkFlagsMutuallyExclusive("project", "boards")
	cmd.MarkFlagsMutuallyExclusive("project", "cuts")
	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	proj, err := loadPlanInput(opts)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("kerf") {
		proj.Settings.KerfInches = opts.kerf
	}
	if cmd.Flags().Changed("min-remnant") {
		proj.Settings.MinRemnantInches = opts.minRemnant
	}

	model.AssignIDs(proj.Boards, proj.Cuts)
	if err := model.Validate(proj.Boards, proj.Cuts, proj.Settings); err != nil {
		return err
	}

	result, err := engine.New(proj.Settings).Optimize(proj.Boards, proj.Cuts)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	logger.Debug().
		Int("boards", len(proj.Boards)).
		Int("cuts", len(proj.Cuts)).
		Int("assignments", len(result.Assignments)).
		Msg("plan computed")

	if err := writeExports(opts, result, proj.Settings); err != nil {
		return err
	}

	if opts.savePath != "" {
		proj.Result = &result
		path := project.EnsureExt(opts.savePath)
		if err := project.SaveProject(path, proj); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		logger.Info().Str("path", path).Msg("project saved")
	}

	if opts.asJSON {
		return writeJSONTo(cmd.OutOrStdout(), result)
	}
	return writeCutSheet(cmd.OutOrStdout(), result)
}

func loadPlanInput(opts *planOptions) (model.Project, error) {
	if opts.projectPath != "" {
		proj, err := project.LoadProject(opts.projectPath)
		if err != nil {
			return model.Project{}, err
		}
		// Plans are always recomputed from the inputs.
		proj.Result = nil
		return proj, nil
	}

	if opts.boardsPath == "" || opts.cutsPath == "" {
		return model.Project{}, errors.New("either --project or both --boards and --cuts are required")
	}

	unit := opts.unit
	if unit == "" {
		unit = cfg.DefaultUnit
	}

	boards, err := importList(opts.boardsPath, unit)
	if err != nil {
		return model.Project{}, fmt.Errorf("boards: %w", err)
	}
	cuts, err := importList(opts.cutsPath, unit)
	if err != nil {
		return model.Project{}, fmt.Errorf("cuts: %w", err)
	}

	proj := model.NewProject()
	proj.Boards = boards.Boards()
	proj.Cuts = cuts.Cuts()
	proj.Settings = cfg.PlanSettings()
	return proj, nil
}

// importList reads one list file. Row errors are logged and skipped; a file
// that yields no rows at all is an error.
func importList(path, unit string) (importer.ImportResult, error) {
	res := importer.ImportFile(path, unit)
	for _, w := range res.Warnings {
		logger.Warn().Str("file", path).Msg(w)
	}
	if len(res.Entries) == 0 {
		if len(res.Errors) > 0 {
			return res, fmt.Errorf("%s: %s", path, res.Errors[0])
		}
		return res, fmt.Errorf("%s: no rows found", path)
	}
	for _, e := range res.Errors {
		logger.Warn().Str("file", path).Msg(e)
	}
	logger.Debug().Str("file", path).Int("rows", len(res.Entries)).Msg("imported")
	return res, nil
}

func writeExports(opts *planOptions, result model.PlanResult, settings model.PlanSettings) error {
	exports := []struct {
		path string
		kind string
		fn   func(string) error
	}{
		{opts.pdfPath, "pdf", func(p string) error { return export.ExportPDF(p, result, settings) }},
		{opts.labelsPath, "labels", func(p string) error { return export.ExportLabels(p, result) }},
		{opts.xlsxPath, "xlsx", func(p string) error { return export.ExportXLSX(p, result) }},
		{opts.dxfPath, "dxf", func(p string) error { return export.ExportDXF(p, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path); err != nil {
			return fmt.Errorf("export %s: %w", e.kind, err)
		}
		logger.Info().Str("kind", e.kind).Str("path", e.path).Msg("exported")
	}
	return nil
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
