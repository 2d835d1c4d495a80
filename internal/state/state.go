// Package state holds the entity state containers: one in-memory
// collection per entity kind, synchronized with the remote API. Each
// container is the single writer for its collection; any goroutine may
// read a snapshot. Derived views over the collections live in views.go
// and are recomputed on every call, never cached.
package state

import (
	"context"

	"teamboard/internal/api"
	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// AuthAPI is the slice of the API the auth store needs.
type AuthAPI interface {
	Login(ctx context.Context, p models.LoginPayload) (*models.AuthResponse, error)
	Register(ctx context.Context, p models.RegisterPayload) (*models.AuthResponse, error)
}

// TeamAPI is the slice of the API the team store needs.
type TeamAPI interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	CreateTeam(ctx context.Context, p models.CreateTeamPayload) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int64) error
	ListTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error)
	AddTeamMember(ctx context.Context, teamID int64, p models.AddMemberPayload) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ProjectAPI is the slice of the API the project store needs.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.CreateProjectPayload) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// TaskAPI is the slice of the API the task store needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, projectID int64) ([]models.Task, error)
	CreateTask(ctx context.Context, p models.CreateTaskPayload) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// CommentAPI is the slice of the API the comment store needs.
type CommentAPI interface {
	ListComments(ctx context.Context, taskID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, p models.CreateCommentPayload) (*models.Comment, error)
}

// notifyMutationError applies the per-container notification policy for a
// failed create/update/delete: statuses the API client already toasted
// (0, 401, 403, 404) stay silent here, validation failures (400/422) use
// the server message when present, everything else gets the fallback.
func notifyMutationError(n notify.Notifier, err error, fallback string) {
	if api.CentrallyHandled(err) {
		return
	}
	if msg, ok := api.ValidationMessage(err); ok && msg != "" {
		n.Error(msg)
		return
	}
	n.Error(fallback)
}

// notifyLoadError is the same policy for failed loads: the message is
// always the container's own (load failures carry no validation detail).
func notifyLoadError(n notify.Notifier, err error, message string) {
	if api.CentrallyHandled(err) {
		return
	}
	n.Error(message)
}
