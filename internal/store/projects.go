package store

import (
	"context"

	"github.com/ucielsola/trackit/internal/stats"
)

// NewProject is the payload for creating a project.
type NewProject struct {
	Name       string   `json:"name"`
	ClientID   *uint    `json:"client_id,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

// ProjectPatch is a partial project update.
type ProjectPatch struct {
	Name       *string  `json:"name,omitempty"`
	ClientID   *uint    `json:"client_id,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

type ProjectStore struct {
	api *APIClient

	projects  []stats.ProjectWithStats
	loaded    bool
	loading   bool
	lastError string
	success   string

	observers []Observer
}

func NewProjectStore(api *APIClient) *ProjectStore {
	return &ProjectStore{api: api}
}

func (s *ProjectStore) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *ProjectStore) notify() {
	for _, o := range s.observers {
		o.StoreChanged()
	}
}

// Projects returns a copy of the current collection.
func (s *ProjectStore) Projects() []stats.ProjectWithStats {
	out := make([]stats.ProjectWithStats, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s *ProjectStore) Loaded() bool    { return s.loaded }
func (s *ProjectStore) Loading() bool   { return s.loading }
func (s *ProjectStore) Error() string   { return s.lastError }
func (s *ProjectStore) Success() string { return s.success }

func (s *ProjectStore) ProjectByID(id uint) *stats.ProjectWithStats {
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p
		}
	}

	return nil
}

// Load replaces the whole collection, sorted by name.
func (s *ProjectStore) Load(ctx context.Context) {
	s.loading = true
	s.lastError = ""
	s.notify()

	projects, err := s.api.ListProjects(ctx)

	if err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	stats.SortProjects(projects, stats.SortByName, stats.OrderAsc)

	s.projects = projects
	s.loaded = true
	s.loading = false
	s.notify()
}

// Create appends the server-confirmed record and re-sorts.
func (s *ProjectStore) Create(ctx context.Context, input NewProject) {
	s.loading = true
	s.lastError = ""
	s.notify()

	project, err := s.api.CreateProject(ctx, input)

	if err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	s.projects = append(s.projects, *project)
	stats.SortProjects(s.projects, stats.SortByName, stats.OrderAsc)
	s.success = "Project created successfully"
	s.loading = false
	s.notify()
}

// Update applies the patch optimistically, remembering the prior
// record, and restores it if the server rejects the change.
func (s *ProjectStore) Update(ctx context.Context, id uint, patch ProjectPatch) {
	s.lastError = ""

	index := s.indexOf(id)

	if index == -1 {
		s.lastError = "Project not found"
		s.notify()
		return
	}

	snapshot := s.projects[index]

	nameChanged := false

	if patch.Name != nil {
		s.projects[index].Name = *patch.Name
		nameChanged = true
	}

	if patch.ClientID != nil {
		s.projects[index].ClientID = patch.ClientID
	}

	if patch.HourlyRate != nil {
		s.projects[index].HourlyRate = patch.HourlyRate
	}

	if nameChanged {
		stats.SortProjects(s.projects, stats.SortByName, stats.OrderAsc)
	}

	s.notify()

	if _, err := s.api.UpdateProject(ctx, id, patch); err != nil {
		s.lastError = err.Error()

		if restoreIndex := s.indexOf(id); restoreIndex != -1 {
			s.projects[restoreIndex] = snapshot
			stats.SortProjects(s.projects, stats.SortByName, stats.OrderAsc)
		}

		s.notify()
		return
	}

	s.success = "Project updated successfully"
	s.notify()
}

// Delete removes the record locally only after the server confirms.
func (s *ProjectStore) Delete(ctx context.Context, id uint) {
	s.loading = true
	s.lastError = ""
	s.notify()

	if err := s.api.DeleteProject(ctx, id); err != nil {
		s.lastError = err.Error()
		s.loading = false
		s.notify()
		return
	}

	filtered := s.projects[:0]

	for _, p := range s.projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}

	s.projects = filtered
	s.success = "Project deleted successfully"
	s.loading = false
	s.notify()
}

func (s *ProjectStore) indexOf(id uint) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}

	return -1
}
