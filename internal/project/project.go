package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ErrInvalidProject is returned when a project file cannot be parsed.
var ErrInvalidProject = errors.New("invalid project file")

// SaveProject writes the project as indented JSON.
func SaveProject(path string, p model.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return writeJSONFile(path, data)
}

// LoadProject reads a project file. Missing fields fall back to the defaults
// of a new project.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Untitled"
	}
	if p.Boards == nil {
		p.Boards = []model.BoardSpec{}
	}
	if p.Cuts == nil {
		p.Cuts = []model.CutSpec{}
	}
	return p, nil
}

// EnsureExt appends ProjectExt when path has no extension.
func EnsureExt(path string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + ProjectExt
}
