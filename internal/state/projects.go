package state

import (
	"context"
	"fmt"
	"sync"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// ProjectStore owns the projects collection. It always holds every project
// the server returned; team filtering happens in derived views so several
// screens can filter the same data differently without re-fetching.
type ProjectStore struct {
	api      ProjectAPI
	notifier notify.Notifier

	mu       sync.RWMutex
	projects []models.Project
	loading  bool
	err      string
}

// NewProjectStore creates an empty project store.
func NewProjectStore(api ProjectAPI, notifier notify.Notifier) *ProjectStore {
	return &ProjectStore{api: api, notifier: notifier}
}

// Load replaces the projects collection with the server's. On failure the
// previous collection stays visible and the inline error is set.
func (s *ProjectStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	defer s.clearLoading()

	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		msg := "Failed to load projects"
		s.mu.Lock()
		s.err = msg
		s.mu.Unlock()
		notifyLoadError(s.notifier, err, msg)
		return err
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// Create posts a new project and appends the server-assigned entity.
func (s *ProjectStore) Create(ctx context.Context, p models.CreateProjectPayload) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	project, err := s.api.CreateProject(ctx, p)
	if err != nil {
		notifyMutationError(s.notifier, err, "Failed to create project")
		return err
	}

	s.mu.Lock()
	s.projects = append(s.projects, *project)
	s.mu.Unlock()
	s.notifier.Success(fmt.Sprintf("Project %q created", project.Name))
	return nil
}

// Delete removes a project on the server, then locally by identity match.
func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	if err := s.api.DeleteProject(ctx, id); err != nil {
		notifyMutationError(s.notifier, err, "Failed to delete project")
		return err
	}

	s.mu.Lock()
	s.projects = removeByID(s.projects, id, func(p models.Project) int64 { return p.ID })
	s.mu.Unlock()
	s.notifier.Success("Project deleted")
	return nil
}

// Projects returns a snapshot of the collection.
func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

// Get returns the project with the given id, or nil.
func (s *ProjectStore) Get(id int64) *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			project := p
			return &project
		}
	}
	return nil
}

// Loading reports whether an operation is in flight.
func (s *ProjectStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the inline load error, or "".
func (s *ProjectStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProjectStore) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
