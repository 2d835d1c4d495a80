package state

import (
	"context"
	"fmt"
	"sync"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// TeamStore owns the teams collection, plus the member list of the team
// currently being inspected and the user directory for member assignment.
type TeamStore struct {
	api      TeamAPI
	notifier notify.Notifier

	mu      sync.RWMutex
	teams   []models.Team
	members []models.TeamMember
	users   []models.User
	loading bool
	err     string
}

// NewTeamStore creates an empty team store.
func NewTeamStore(api TeamAPI, notifier notify.Notifier) *TeamStore {
	return &TeamStore{api: api, notifier: notifier}
}

// Load replaces the teams collection with the server's. On failure the
// previously loaded teams stay visible and the inline error is set.
func (s *TeamStore) Load(ctx context.Context) error {
	s.beginLoad()
	defer s.endLoad()

	teams, err := s.api.ListTeams(ctx)
	if err != nil {
		msg := "Couldn't load teams"
		s.setErr(msg)
		notifyLoadError(s.notifier, err, msg)
		return err
	}

	s.mu.Lock()
	s.teams = teams
	s.mu.Unlock()
	return nil
}

// Create posts a new team and appends the server-assigned entity.
func (s *TeamStore) Create(ctx context.Context, name string) error {
	s.beginLoad()
	defer s.endLoad()

	team, err := s.api.CreateTeam(ctx, models.CreateTeamPayload{Name: name})
	if err != nil {
		notifyMutationError(s.notifier, err, "Failed to create team")
		return err
	}

	s.mu.Lock()
	s.teams = append(s.teams, *team)
	s.mu.Unlock()
	s.notifier.Success(fmt.Sprintf("Team %q created", team.Name))
	return nil
}

// Delete removes a team on the server, then locally by identity match.
func (s *TeamStore) Delete(ctx context.Context, id int64) error {
	s.beginLoad()
	defer s.endLoad()

	if err := s.api.DeleteTeam(ctx, id); err != nil {
		notifyMutationError(s.notifier, err, "Failed to delete team, try again later")
		return err
	}

	s.mu.Lock()
	s.teams = removeByID(s.teams, id, func(t models.Team) int64 { return t.ID })
	s.mu.Unlock()
	s.notifier.Success("Team deleted")
	return nil
}

// LoadMembers replaces the member list with the given team's. The list is
// cleared before the fetch so a stale team's members never show.
func (s *TeamStore) LoadMembers(ctx context.Context, teamID int64) error {
	s.mu.Lock()
	s.members = nil
	s.loading = true
	s.mu.Unlock()
	defer s.endLoad()

	members, err := s.api.ListTeamMembers(ctx, teamID)
	if err != nil {
		notifyLoadError(s.notifier, err, "Failed to load team members")
		return err
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return nil
}

// AddMember adds a user to a team and refreshes both the member list and
// the teams collection (member counts change).
func (s *TeamStore) AddMember(ctx context.Context, teamID, userID int64, role models.TeamRole) error {
	if role == "" {
		role = models.RoleMember
	}
	if err := s.api.AddTeamMember(ctx, teamID, models.AddMemberPayload{UserID: userID, Role: role}); err != nil {
		notifyMutationError(s.notifier, err, "Failed to add the member to the team")
		return err
	}

	s.notifier.Success("Member added to the team")
	if err := s.LoadMembers(ctx, teamID); err != nil {
		return err
	}
	return s.Load(ctx)
}

// LoadUsers replaces the user directory with the server's.
func (s *TeamStore) LoadUsers(ctx context.Context) error {
	s.beginLoad()
	defer s.endLoad()

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		notifyLoadError(s.notifier, err, "Failed to load the user list")
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// ClearMembers empties the member list, e.g. when the members panel closes.
func (s *TeamStore) ClearMembers() {
	s.mu.Lock()
	s.members = nil
	s.mu.Unlock()
}

// Teams returns a snapshot of the teams collection.
func (s *TeamStore) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Team(nil), s.teams...)
}

// Members returns a snapshot of the inspected team's members.
func (s *TeamStore) Members() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TeamMember(nil), s.members...)
}

// Users returns a snapshot of the user directory.
func (s *TeamStore) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Loading reports whether an operation is in flight.
func (s *TeamStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the inline load error, or "".
func (s *TeamStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *TeamStore) beginLoad() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *TeamStore) endLoad() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *TeamStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// removeByID returns items without the element whose id matches.
func removeByID[T any](items []T, id int64, idOf func(T) int64) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
