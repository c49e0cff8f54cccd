package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that captures
// boards, cuts, and settings but not plan results.
type ProjectTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Boards      []BoardSpec  `json:"boards"`
	Cuts        []CutSpec    `json:"cuts"`
	Settings    PlanSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
// It copies boards, cuts and settings but excludes results.
func NewProjectTemplate(name, description string, boards []BoardSpec, cuts []CutSpec, settings PlanSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Boards:      copyBoards(boards),
		Cuts:        copyCuts(cuts),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template. Entry IDs are cleared
// so the caller assigns fresh ones before planning.
func (t ProjectTemplate) ToProject(projectName string) Project {
	boards := copyBoards(t.Boards)
	for i := range boards {
		boards[i].ID = 0
	}
	cuts := copyCuts(t.Cuts)
	for i := range cuts {
		cuts[i].ID = 0
	}
	return Project{
		Name:     projectName,
		Boards:   boards,
		Cuts:     cuts,
		Settings: t.Settings,
	}
}

// TemplateStore holds project templates keyed by ID and, case-insensitively,
// by name. Names are unique within a store.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Save stores t, replacing any template with the same name, and returns the
// stored ID. A replacement keeps the original ID and creation time and
// reports replaced=true.
func (ts *TemplateStore) Save(t ProjectTemplate) (id string, replaced bool) {
	idx := ts.indexOfName(t.Name)
	if idx < 0 {
		ts.Templates = append(ts.Templates, t)
		return t.ID, false
	}
	prev := ts.Templates[idx]
	t.ID = prev.ID
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	ts.Templates[idx] = t
	return t.ID, true
}

// Find resolves key as an ID first, then as a name. Returns nil when neither matches.
func (ts *TemplateStore) Find(key string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == key {
			return &ts.Templates[i]
		}
	}
	if idx := ts.indexOfName(key); idx >= 0 {
		return &ts.Templates[idx]
	}
	return nil
}

// Delete removes the template Find(key) resolves to.
func (ts *TemplateStore) Delete(key string) bool {
	t := ts.Find(key)
	if t == nil {
		return false
	}
	id := t.ID
	ts.Templates = slices.DeleteFunc(ts.Templates, func(t ProjectTemplate) bool { return t.ID == id })
	return true
}

// Merge adds every template from other whose ID and name are both new, and
// returns how many were added.
func (ts *TemplateStore) Merge(other TemplateStore) int {
	added := 0
	for _, t := range other.Templates {
		if ts.Find(t.ID) != nil || ts.indexOfName(t.Name) >= 0 {
			continue
		}
		ts.Templates = append(ts.Templates, t)
		added++
	}
	return added
}

// Sorted returns the templates ordered by name.
func (ts *TemplateStore) Sorted() []ProjectTemplate {
	out := slices.Clone(ts.Templates)
	slices.SortStableFunc(out, func(a, b ProjectTemplate) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

func (ts *TemplateStore) indexOfName(name string) int {
	name = strings.TrimSpace(name)
	for i := range ts.Templates {
		if strings.EqualFold(strings.TrimSpace(ts.Templates[i].Name), name) {
			return i
		}
	}
	return -1
}

func copyBoards(boards []BoardSpec) []BoardSpec {
	if boards == nil {
		return []BoardSpec{}
	}
	cp := make([]BoardSpec, len(boards))
	copy(cp, boards)
	return cp
}

func copyCuts(cuts []CutSpec) []CutSpec {
	if cuts == nil {
		return []CutSpec{}
	}
	cp := make([]CutSpec, len(cuts))
	copy(cp, cuts)
	return cp
}
