package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared = true
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *fakeSession, *notify.Recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := &fakeSession{token: token}
	recorder := new(notify.Recorder)
	return New(srv.URL, 5*time.Second, sess, recorder, nil), sess, recorder
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode([]models.Team{})
	}, "tok-123")

	_, err := client.ListTeams(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "t", User: models.User{ID: 1}})
	}, "")

	_, err := client.Login(context.Background(), models.LoginPayload{Email: "a@b.c", Password: "pw"})

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientDecodesEntities(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("projectId"))
		_ = json.NewEncoder(w).Encode([]models.Task{
			{ID: 1, Title: "a", Status: models.StatusTodo, ProjectID: 7},
		})
	}, "tok")

	tasks, err := client.ListTasks(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusTodo, tasks[0].Status)
}

func TestClientUnauthorized(t *testing.T) {
	client, sess, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "expired")

	var calledBack bool
	client.SetUnauthorizedHandler(func() { calledBack = true })

	_, err := client.ListTeams(context.Background())

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.True(t, apiErr.CentrallyHandled())
	assert.True(t, sess.cleared)
	assert.True(t, calledBack)
	// exactly one notification for the failure
	assert.Len(t, recorder.All(), 1)
}

func TestClientForbiddenUsesServerMessage(t *testing.T) {
	client, _, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "only team owners can add members"})
	}, "tok")

	err := client.AddTeamMember(context.Background(), 1, models.AddMemberPayload{UserID: 2})

	require.Error(t, err)
	assert.Equal(t, []string{"only team owners can add members"}, recorder.Errors())
}

func TestClientNotFound(t *testing.T) {
	client, _, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, "tok")

	err := client.DeleteTask(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, []string{"The requested item was not found"}, recorder.Errors())
}

func TestClientConnectivityFailure(t *testing.T) {
	sess := &fakeSession{}
	recorder := new(notify.Recorder)
	// nothing listens on this address
	client := New("http://127.0.0.1:1", 500*time.Millisecond, sess, recorder, nil)

	_, err := client.ListTeams(context.Background())

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Len(t, recorder.Errors(), 1)
}

func TestClientValidationErrorIsNotCentrallyNotified(t *testing.T) {
	client, _, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "title is required"})
	}, "tok")

	_, err := client.CreateTask(context.Background(), models.CreateTaskPayload{ProjectID: 7})

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "title is required", apiErr.Message)
	assert.False(t, apiErr.CentrallyHandled())
	assert.Empty(t, recorder.All())
}

func TestClientSendsCamelCasePayloads(t *testing.T) {
	var body map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(models.Project{ID: 1, Name: "X", TeamID: 3})
	}, "tok")

	_, err := client.CreateProject(context.Background(), models.CreateProjectPayload{TeamID: 3, Name: "X"})

	require.NoError(t, err)
	assert.Equal(t, float64(3), body["teamId"])
	assert.Equal(t, "X", body["name"])
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, (&Error{Status: 0}).CentrallyHandled())
	assert.True(t, (&Error{Status: 401}).CentrallyHandled())
	assert.True(t, (&Error{Status: 403}).CentrallyHandled())
	assert.True(t, (&Error{Status: 404}).CentrallyHandled())
	assert.False(t, (&Error{Status: 400}).CentrallyHandled())
	assert.False(t, (&Error{Status: 422}).CentrallyHandled())
	assert.False(t, (&Error{Status: 500}).CentrallyHandled())

	msg, ok := ValidationMessage(&Error{Status: 400, Message: "bad"})
	assert.True(t, ok)
	assert.Equal(t, "bad", msg)

	_, ok = ValidationMessage(&Error{Status: 500, Message: "boom"})
	assert.False(t, ok)
}
