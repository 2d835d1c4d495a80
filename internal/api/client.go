package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// Session is the authenticated-session state the client reads on every
// request and tears down on a 401.
type Session interface {
	Token() string
	Clear() error
}

// Client talks JSON over HTTP to the teamboard server. Every outbound
// request carries a bearer token when the session has one; transport and
// auth failures (status 0, 401, 403, 404) are notified centrally here,
// exactly once per failed request.
type Client struct {
	base           string
	http           *http.Client
	session        Session
	notifier       notify.Notifier
	log            *slog.Logger
	onUnauthorized func()
}

// New creates a client for the API rooted at baseURL (no trailing slash).
func New(baseURL string, timeout time.Duration, session Session, notifier notify.Notifier, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:     baseURL,
		http:     &http.Client{Timeout: timeout},
		session:  session,
		notifier: notifier,
		log:      log,
	}
}

// SetUnauthorizedHandler registers the callback run after a 401 tears the
// session down (the UI uses it to fall back to the login screen).
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// errorBody is the shape of the server's error responses.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		c.notifier.Error("Connection problem, please check your network")
		return &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("read response", "method", method, "path", path, "request_id", requestID, "error", err)
		c.notifier.Error("Connection problem, please check your network")
		return &Error{Status: 0, Message: err.Error()}
	}

	c.log.Info("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode >= 400 {
		return c.failure(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// failure maps an error response to a typed error and applies the central
// notification policy.
func (c *Client) failure(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)

	switch status {
	case 401:
		c.notifier.Error("Session expired, please sign in again")
		if err := c.session.Clear(); err != nil {
			c.log.Warn("clear session", "error", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case 403:
		if eb.Message != "" {
			c.notifier.Error(eb.Message)
		} else {
			c.notifier.Error("You don't have permission to do that")
		}
	case 404:
		c.notifier.Error("The requested item was not found")
	}

	return &Error{Status: status, Message: eb.Message}
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, p models.LoginPayload) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and authenticates it.
func (c *Client) Register(ctx context.Context, p models.RegisterPayload) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTeams returns the current user's teams.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := c.do(ctx, http.MethodGet, "/teams", nil, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam creates a team and returns the server-assigned entity.
func (c *Client) CreateTeam(ctx context.Context, p models.CreateTeamPayload) (*models.Team, error) {
	var team models.Team
	if err := c.do(ctx, http.MethodPost, "/teams", nil, p, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam deletes a team by id.
func (c *Client) DeleteTeam(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ListTeamMembers returns the members of one team.
func (c *Client) ListTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	path := "/teams/" + strconv.FormatInt(teamID, 10) + "/members"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddTeamMember adds a user to a team.
func (c *Client) AddTeamMember(ctx context.Context, teamID int64, p models.AddMemberPayload) error {
	path := "/teams/" + strconv.FormatInt(teamID, 10) + "/members"
	return c.do(ctx, http.MethodPost, path, nil, p, nil)
}

// ListUsers returns the user directory for member assignment.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListProjects returns all projects visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project within a team.
func (c *Client) CreateProject(ctx context.Context, p models.CreateProjectPayload) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, p, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ListTasks returns the tasks of one project.
func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	var tasks []models.Task
	q := url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server-assigned entity.
func (c *Client) CreateTask(ctx context.Context, p models.CreateTaskPayload) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, p, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask patches a task and returns the updated server entity.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	path := "/tasks/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPatch, path, nil, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ListComments returns the comments of one task, oldest first.
func (c *Client) ListComments(ctx context.Context, taskID int64) ([]models.Comment, error) {
	var comments []models.Comment
	q := url.Values{"taskId": {strconv.FormatInt(taskID, 10)}}
	if err := c.do(ctx, http.MethodGet, "/comments", q, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a comment on a task.
func (c *Client) CreateComment(ctx context.Context, p models.CreateCommentPayload) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, p, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
