package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamboard/internal/api"
	"teamboard/internal/models"
	"teamboard/internal/notify"
)

func newTeamStore(t *testing.T) (*TeamStore, *MockAPI, *notify.Recorder) {
	t.Helper()
	mockAPI := new(MockAPI)
	recorder := new(notify.Recorder)
	return NewTeamStore(mockAPI, recorder), mockAPI, recorder
}

func TestTeamStoreLoad(t *testing.T) {
	t.Run("success replaces the collection exactly", func(t *testing.T) {
		store, mockAPI, _ := newTeamStore(t)
		teams := []models.Team{
			{ID: 1, Name: "Alpha", CreatedAt: time.Now()},
			{ID: 2, Name: "Beta"},
		}
		mockAPI.On("ListTeams", mock.Anything).Return(teams, nil).Once()

		require.NoError(t, store.Load(context.Background()))

		assert.Equal(t, teams, store.Teams())
		assert.False(t, store.Loading())
		assert.Empty(t, store.Err())
	})

	t.Run("failure keeps the previous collection visible", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		teams := []models.Team{{ID: 1, Name: "Alpha"}}
		mockAPI.On("ListTeams", mock.Anything).Return(teams, nil).Once()
		require.NoError(t, store.Load(context.Background()))

		mockAPI.On("ListTeams", mock.Anything).Return(nil, &api.Error{Status: 500}).Once()
		err := store.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, teams, store.Teams())
		assert.Equal(t, "Couldn't load teams", store.Err())
		assert.Equal(t, []string{"Couldn't load teams"}, recorder.Errors())
	})

	t.Run("a 401 is left to the central interceptor", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		mockAPI.On("ListTeams", mock.Anything).Return(nil, &api.Error{Status: 401}).Once()

		require.Error(t, store.Load(context.Background()))
		assert.Empty(t, recorder.Errors())
	})
}

func TestTeamStoreCreate(t *testing.T) {
	t.Run("success appends and announces the team by name", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		created := &models.Team{ID: 3, Name: "Gamma"}
		mockAPI.On("CreateTeam", mock.Anything, models.CreateTeamPayload{Name: "Gamma"}).
			Return(created, nil).Once()

		require.NoError(t, store.Create(context.Background(), "Gamma"))

		require.Len(t, store.Teams(), 1)
		assert.Equal(t, *created, store.Teams()[0])
		all := recorder.All()
		require.Len(t, all, 1)
		assert.Equal(t, notify.LevelSuccess, all[0].Level)
		assert.Contains(t, all[0].Message, `"Gamma"`)
	})

	t.Run("failure leaves the collection untouched", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		mockAPI.On("CreateTeam", mock.Anything, mock.Anything).
			Return(nil, &api.Error{Status: 500}).Once()

		require.Error(t, store.Create(context.Background(), "Gamma"))

		assert.Empty(t, store.Teams())
		assert.False(t, store.Loading())
		assert.Equal(t, []string{"Failed to create team"}, recorder.Errors())
	})
}

func TestTeamStoreDelete(t *testing.T) {
	t.Run("success removes by identity", func(t *testing.T) {
		store, mockAPI, _ := newTeamStore(t)
		mockAPI.On("ListTeams", mock.Anything).
			Return([]models.Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}, nil).Once()
		require.NoError(t, store.Load(context.Background()))

		mockAPI.On("DeleteTeam", mock.Anything, int64(1)).Return(nil).Once()
		require.NoError(t, store.Delete(context.Background(), 1))

		teams := store.Teams()
		require.Len(t, teams, 1)
		assert.Equal(t, int64(2), teams[0].ID)
	})

	t.Run("failure keeps the team and stays silent on a central 403", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		mockAPI.On("ListTeams", mock.Anything).
			Return([]models.Team{{ID: 1, Name: "Alpha"}}, nil).Once()
		require.NoError(t, store.Load(context.Background()))

		mockAPI.On("DeleteTeam", mock.Anything, int64(1)).Return(&api.Error{Status: 403}).Once()
		require.Error(t, store.Delete(context.Background(), 1))

		assert.Len(t, store.Teams(), 1)
		assert.Empty(t, recorder.Errors())
	})
}

func TestTeamStoreMembers(t *testing.T) {
	t.Run("load clears the previous team's members first", func(t *testing.T) {
		store, mockAPI, _ := newTeamStore(t)
		first := []models.TeamMember{{ID: 1, TeamID: 1, UserID: 10, Role: models.RoleOwner}}
		mockAPI.On("ListTeamMembers", mock.Anything, int64(1)).Return(first, nil).Once()
		require.NoError(t, store.LoadMembers(context.Background(), 1))
		require.Len(t, store.Members(), 1)

		mockAPI.On("ListTeamMembers", mock.Anything, int64(2)).
			Return(nil, &api.Error{Status: 500}).Once()
		require.Error(t, store.LoadMembers(context.Background(), 2))

		assert.Empty(t, store.Members())
	})

	t.Run("adding a member reloads members and teams", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		payload := models.AddMemberPayload{UserID: 10, Role: models.RoleMember}
		mockAPI.On("AddTeamMember", mock.Anything, int64(1), payload).Return(nil).Once()
		mockAPI.On("ListTeamMembers", mock.Anything, int64(1)).
			Return([]models.TeamMember{{ID: 5, TeamID: 1, UserID: 10, Role: models.RoleMember}}, nil).Once()
		mockAPI.On("ListTeams", mock.Anything).
			Return([]models.Team{{ID: 1, Name: "Alpha", MembersCount: 2}}, nil).Once()

		require.NoError(t, store.AddMember(context.Background(), 1, 10, ""))

		assert.Len(t, store.Members(), 1)
		assert.Len(t, store.Teams(), 1)
		all := recorder.All()
		require.NotEmpty(t, all)
		assert.Equal(t, notify.LevelSuccess, all[0].Level)
		mockAPI.AssertExpectations(t)
	})

	t.Run("validation failure surfaces the server message", func(t *testing.T) {
		store, mockAPI, recorder := newTeamStore(t)
		mockAPI.On("AddTeamMember", mock.Anything, int64(1), mock.Anything).
			Return(&api.Error{Status: 400, Message: "user is already a member"}).Once()

		require.Error(t, store.AddMember(context.Background(), 1, 10, models.RoleMember))

		assert.Equal(t, []string{"user is already a member"}, recorder.Errors())
	})

	t.Run("clear empties the member list", func(t *testing.T) {
		store, mockAPI, _ := newTeamStore(t)
		mockAPI.On("ListTeamMembers", mock.Anything, int64(1)).
			Return([]models.TeamMember{{ID: 1, TeamID: 1, UserID: 10}}, nil).Once()
		require.NoError(t, store.LoadMembers(context.Background(), 1))

		store.ClearMembers()

		assert.Empty(t, store.Members())
	})
}

func TestTeamStoreLoadUsers(t *testing.T) {
	store, mockAPI, _ := newTeamStore(t)
	users := []models.User{{ID: 1, Name: "Dana", Email: "dana@example.com"}}
	mockAPI.On("ListUsers", mock.Anything).Return(users, nil).Once()

	require.NoError(t, store.LoadUsers(context.Background()))

	assert.Equal(t, users, store.Users())
}
