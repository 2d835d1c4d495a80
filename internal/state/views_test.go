package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/models"
)

func TestFilterTeams(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Platform"},
		{ID: 2, Name: "Frontend"},
		{ID: 3, Name: "Data platform"},
	}

	t.Run("case-insensitive substring on name", func(t *testing.T) {
		got := FilterTeams(teams, "PLAT")
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("empty query returns the full set", func(t *testing.T) {
		assert.Equal(t, teams, FilterTeams(teams, ""))
	})

	t.Run("the input is never mutated", func(t *testing.T) {
		before := append([]models.Team(nil), teams...)
		FilterTeams(teams, "front")
		assert.Equal(t, before, teams)
	})
}

func TestFilterProjects(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Name: "Website", TeamID: 1},
		{ID: 2, Name: "Web API", TeamID: 2},
		{ID: 3, Name: "Billing", TeamID: 1},
	}

	t.Run("text and team filter must both pass", func(t *testing.T) {
		got := FilterProjects(projects, "web", 1)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("zero team id passes all teams", func(t *testing.T) {
		assert.Len(t, FilterProjects(projects, "web", 0), 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, FilterProjects(projects, "web", 3))
	})
}

func TestTasksForColumn(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "Fix login page", Description: "", Status: models.StatusTodo},
		{ID: 2, Title: "Deploy", Description: "staging login test", Status: models.StatusTodo},
		{ID: 3, Title: "Fix logout", Status: models.StatusDone},
	}

	t.Run("status and search must both match", func(t *testing.T) {
		got := TasksForColumn(tasks, models.StatusTodo, "login")
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("search matches descriptions too", func(t *testing.T) {
		got := TasksForColumn(tasks, models.StatusTodo, "staging")
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("empty search matches everything in the column", func(t *testing.T) {
		assert.Len(t, TasksForColumn(tasks, models.StatusTodo, ""), 2)
	})
}

func TestBoardColumns(t *testing.T) {
	tasks := boardFixture()

	columns := BoardColumns(tasks, "")
	require.Len(t, columns, 3)
	assert.Len(t, columns[0], 3)
	assert.Len(t, columns[1], 1)
	assert.Len(t, columns[2], 1)
}

// Filters are pure: same inputs, same outputs, every time.
func TestDerivedViewsAreStable(t *testing.T) {
	tasks := boardFixture()

	first := BoardColumns(tasks, "re")
	second := BoardColumns(tasks, "re")
	assert.Equal(t, first, second)

	unfiltered := BoardColumns(tasks, "")
	total := 0
	for _, col := range unfiltered {
		total += len(col)
	}
	assert.Equal(t, len(tasks), total)
}
