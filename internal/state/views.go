package state

import (
	"strings"

	"teamboard/internal/models"
)

// Derived views: pure projections over container snapshots, recomputed on
// every call. They never mutate their inputs and hold no state of their
// own, so they can never go stale.

// FilterTeams returns the teams whose name contains query,
// case-insensitively. An empty query matches everything.
func FilterTeams(teams []models.Team, query string) []models.Team {
	query = normalize(query)
	if query == "" {
		return append([]models.Team(nil), teams...)
	}
	var out []models.Team
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), query) {
			out = append(out, t)
		}
	}
	return out
}

// FilterProjects returns the projects whose name contains query and, when
// teamID is non-zero, that belong to that team. Both conditions must pass.
func FilterProjects(projects []models.Project, query string, teamID int64) []models.Project {
	query = normalize(query)
	var out []models.Project
	for _, p := range projects {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if teamID != 0 && p.TeamID != teamID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TasksForColumn returns the tasks in one board column: exact status match
// plus a case-insensitive substring match of query against title or
// description. An empty query matches everything.
func TasksForColumn(tasks []models.Task, status models.Status, query string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status && matchesSearch(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// BoardColumns returns the three board columns in todo, in_progress, done
// order.
func BoardColumns(tasks []models.Task, query string) [][]models.Task {
	columns := make([][]models.Task, len(models.Statuses))
	for i, status := range models.Statuses {
		columns[i] = TasksForColumn(tasks, status, query)
	}
	return columns
}

func matchesSearch(t models.Task, query string) bool {
	query = normalize(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query)
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
