package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

// isolate points config and data at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("BOARDCUT_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("BOARDCUT_ENVIRONMENT", "test")
	t.Setenv("BOARDCUT_LOG_LEVEL", "error")
	cfgFile = ""
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleLists(t *testing.T, dir string) (string, string) {
	t.Helper()
	boards := writeFile(t, dir, "boards.csv", "Label,Length,Unit,Quantity\n2x4,8,ft,1\n")
	cuts := writeFile(t, dir, "cuts.csv", "Label,Length,Unit,Quantity\nleg,3,ft,2\n")
	return boards, cuts
}

func TestConvertCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "convert", "2", "ft", "in")
	require.NoError(t, err)
	assert.Equal(t, "2 ft = 24.0000 in (2 ft 0 in)\n", out)
}

func TestConvertCmd_Errors(t *testing.T) {
	isolate(t)
	_, err := execute(t, "convert", "2", "yd", "in")
	assert.Error(t, err)

	_, err = execute(t, "convert", "two", "ft", "in")
	assert.Error(t, err)

	_, err = execute(t, "convert", "2", "ft")
	assert.Error(t, err)
}

func TestPlanCmd_CutSheet(t *testing.T) {
	dir := isolate(t)
	boards, cuts := sampleLists(t, dir)

	out, err := execute(t, "plan", "--boards", boards, "--cuts", cuts)
	require.NoError(t, err)

	assert.Contains(t, out, "Board 1")
	assert.Contains(t, out, "2x4")
	assert.Contains(t, out, "leg")
	assert.Contains(t, out, "Remaining boards:")
	assert.Contains(t, out, "2 ft 0 in")
	assert.Contains(t, out, model.MessageComplete)
}

func TestPlanCmd_JSON(t *testing.T) {
	dir := isolate(t)
	boards, cuts := sampleLists(t, dir)

	out, err := execute(t, "plan", "--boards", boards, "--cuts", cuts, "--json")
	require.NoError(t, err)

	var result model.PlanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Assignments, 2)
	assert.InDelta(t, 24.0, result.TotalWasteInches, 1e-9)
}

func TestPlanCmd_KerfFlag(t *testing.T) {
	dir := isolate(t)
	boards := writeFile(t, dir, "boards.csv", "stock,96,in,1\n")
	cuts := writeFile(t, dir, "cuts.csv", "shelf,24,in,4\n")

	out, err := execute(t, "plan", "--boards", boards, "--cuts", cuts, "--kerf", "0.25", "--json")
	require.NoError(t, err)

	var result model.PlanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Assignments, 3)
	assert.InDelta(t, 24.0, result.AdditionalMaterialNeededInches, 1e-9)
}

func TestPlanCmd_ExportsAndSave(t *testing.T) {
	dir := isolate(t)
	boards, cuts := sampleLists(t, dir)

	pdf := filepath.Join(dir, "plan.pdf")
	labels := filepath.Join(dir, "labels.pdf")
	xlsx := filepath.Join(dir, "plan.xlsx")
	dxf := filepath.Join(dir, "plan.dxf")
	save := filepath.Join(dir, "shed")

	_, err := execute(t, "plan", "--boards", boards, "--cuts", cuts,
		"--pdf", pdf, "--labels", labels, "--xlsx", xlsx, "--dxf", dxf, "--save", save)
	require.NoError(t, err)

	for _, p := range []string{pdf, labels, xlsx, dxf} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}

	proj, err := project.LoadProject(save + project.ProjectExt)
	require.NoError(t, err)
	require.NotNil(t, proj.Result)
	assert.Len(t, proj.Result.Assignments, 2)
	assert.Len(t, proj.Boards, 1)
}

func TestPlanCmd_Project(t *testing.T) {
	dir := isolate(t)
	proj := model.NewProject()
	proj.Name = "Bench"
	proj.Boards = []model.BoardSpec{model.NewBoardSpec("2x4", 8, "ft", 1)}
	proj.Cuts = []model.CutSpec{model.NewCutSpec("leg", 3, "ft", 3)}
	path := filepath.Join(dir, "bench.boardcut")
	require.NoError(t, project.SaveProject(path, proj))

	out, err := execute(t, "plan", "--project", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Cuts that did not fit:")
	assert.Contains(t, out, "Not enough material. Additional needed: 3 ft 0 in")
}

func TestPlanCmd_MissingInput(t *testing.T) {
	isolate(t)
	_, err := execute(t, "plan")
	assert.Error(t, err)
}

func TestPlanCmd_ProjectExcludesLists(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "p.boardcut")
	require.NoError(t, project.SaveProject(src, model.NewProject()))
	cuts := writeFile(t, dir, "cuts.csv", "leg,4,ft,2\n")

	_, err := execute(t, "plan", "--project", src, "--cuts", cuts)
	assert.Error(t, err)
}

func TestPlanCmd_InvalidRows(t *testing.T) {
	dir := isolate(t)
	boards := writeFile(t, dir, "boards.csv", "Label,Length,Unit,Quantity\nbad,8,yd,1\n")
	cuts := writeFile(t, dir, "cuts.csv", "leg,3,ft,1\n")

	_, err := execute(t, "plan", "--boards", boards, "--cuts", cuts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boards")
}

func TestInventoryCmds(t *testing.T) {
	isolate(t)

	out, err := execute(t, "inventory", "add", "--name", "Oak 6ft", "--length", "6", "--unit", "ft", "--material", "Oak", "--price", "12.5")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = execute(t, "inventory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Oak 6ft")
	assert.Contains(t, out, "2x4 8ft")

	_, err = execute(t, "inventory", "remove", id)
	require.NoError(t, err)

	out, err = execute(t, "inventory", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Oak 6ft")

	_, err = execute(t, "inventory", "remove", id)
	assert.Error(t, err)
}

func TestInventoryAdd_BadUnit(t *testing.T) {
	isolate(t)
	_, err := execute(t, "inventory", "add", "--name", "x", "--length", "6", "--unit", "yd")
	assert.Error(t, err)
}

func TestTemplateCmds(t *testing.T) {
	dir := isolate(t)
	proj := model.NewProject()
	proj.Name = "Shelf"
	proj.Boards = []model.BoardSpec{{ID: 1, Label: "1x6", Length: 8, Unit: "ft", Quantity: 2}}
	proj.Cuts = []model.CutSpec{{ID: 1, Label: "shelf", Length: 30, Unit: "in", Quantity: 4}}
	src := filepath.Join(dir, "shelf.boardcut")
	require.NoError(t, project.SaveProject(src, proj))

	first, err := execute(t, "template", "save", "--project", src)
	require.NoError(t, err)
	second, err := execute(t, "template", "save", "--project", src, "--description", "wall shelf")
	require.NoError(t, err)
	assert.Equal(t, first, second, "saving under the same name keeps the template ID")

	out, err := execute(t, "template", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Shelf"))
	assert.Contains(t, out, "wall shelf")

	dst := filepath.Join(dir, "copy")
	out, err = execute(t, "template", "apply", "Shelf", "-o", dst, "--name", "Shelf 2")
	require.NoError(t, err)
	assert.Equal(t, dst+project.ProjectExt, strings.TrimSpace(out))

	applied, err := project.LoadProject(dst + project.ProjectExt)
	require.NoError(t, err)
	assert.Equal(t, "Shelf 2", applied.Name)
	require.Len(t, applied.Cuts, 1)
	assert.Equal(t, 0, applied.Cuts[0].ID)

	_, err = execute(t, "template", "remove", "Shelf")
	require.NoError(t, err)
	_, err = execute(t, "template", "apply", "Shelf", "-o", dst)
	assert.Error(t, err)
}

func TestCompareCmd(t *testing.T) {
	dir := isolate(t)
	cuts := writeFile(t, dir, "cuts.csv", "leg,4,ft,2\n")

	out, err := execute(t, "compare", "--cuts", cuts, "--presets", "2x4 8ft,2x4 12ft")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "*"), "8ft stock fits two 4ft cuts exactly: %q", lines[1])
	assert.Contains(t, lines[2], "2x4 12ft")
}

func TestCompareCmd_UnknownPreset(t *testing.T) {
	dir := isolate(t)
	cuts := writeFile(t, dir, "cuts.csv", "leg,4,ft,2\n")
	_, err := execute(t, "compare", "--cuts", cuts, "--presets", "nope")
	assert.Error(t, err)
}

func TestEstimateCmd(t *testing.T) {
	dir := isolate(t)
	cuts := writeFile(t, dir, "cuts.csv", "shelf,24,in,4\n")

	out, err := execute(t, "estimate", "--cuts", cuts, "--length", "8", "--length-unit", "ft", "--waste", "10", "--price", "5")
	require.NoError(t, err)
	assert.Equal(t, "1", lastField(t, out, "Boards (minimum):"))
	assert.Equal(t, "2", lastField(t, out, "Boards (+10% waste):"))
	assert.Equal(t, "10.00", lastField(t, out, "Estimated cost:"))
}

// lastField returns the last whitespace-separated field of the line that
// starts with prefix.
func lastField(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, out)
	return ""
}

func TestBackupCmds(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "inventory", "add", "--name", "Walnut", "--length", "2", "--unit", "m")
	require.NoError(t, err)

	backup := filepath.Join(dir, "backup.json")
	_, err = execute(t, "backup", "export", backup)
	require.NoError(t, err)

	// Restore into a fresh data dir.
	t.Setenv("BOARDCUT_DATA_DIR", filepath.Join(dir, "other"))
	out, err := execute(t, "backup", "restore", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	out, err = execute(t, "inventory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Walnut")
}

func TestWriteCutSheet_Kerf(t *testing.T) {
	result := model.PlanResult{
		Assignments: []model.Assignment{
			{Cut: model.CutSpec{ID: 1, Length: 24, Unit: "in"}, CutLengthInches: 24},
			{Cut: model.CutSpec{ID: 1, Length: 24, Unit: "in"}, CutLengthInches: 24},
		},
		Pieces: []model.PieceUsage{
			{PieceID: 0, Board: model.BoardSpec{Length: 96, Unit: "in"}, StartInches: 96, RemainingInches: 47.875, KerfInches: 0.125, Assignments: []int{0, 1}},
			{PieceID: 1, Board: model.BoardSpec{Length: 96, Unit: "in"}, StartInches: 96, RemainingInches: 96},
		},
		TotalKerfInches:  0.125,
		TotalWasteInches: 47.875,
		Message:          model.MessageComplete,
	}

	var buf bytes.Buffer
	require.NoError(t, writeCutSheet(&buf, result))
	out := buf.String()

	assert.Contains(t, out, "Board 1")
	assert.NotContains(t, out, "Board 2")
	assert.Contains(t, out, "Cut 1")
	assert.Contains(t, out, "kerf")
	assert.Contains(t, out, "47.88 in")
	assert.Contains(t, out, "Boards used:  1")
}
