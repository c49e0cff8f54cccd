package project

import (
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
)

// SaveTemplates writes the template store to path.
func SaveTemplates(path string, store model.TemplateStore) error {
	if err := writeJSON(path, store); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}
	return nil
}

// LoadTemplates reads the template store at path. A missing file is an empty
// store. Templates are normalized so that Boards and Cuts are never nil.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, &store); err != nil {
		return model.TemplateStore{}, fmt.Errorf("load templates: %w", err)
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	for i := range store.Templates {
		t := &store.Templates[i]
		if t.Boards == nil {
			t.Boards = []model.BoardSpec{}
		}
		if t.Cuts == nil {
			t.Cuts = []model.CutSpec{}
		}
	}
	return store, nil
}
