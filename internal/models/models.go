package models

import "time"

// Status is a task's board column.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is a task's priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// TeamRole is a member's role within a team.
type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleMember TeamRole = "member"
)

// User is an authenticated account or a directory entry
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is the server's answer to login and register
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Team represents a team the current user belongs to
type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	MembersCount int       `json:"members_count,omitempty"`
}

// Project belongs to exactly one team
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TeamID      int64     `json:"team_id"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task belongs to exactly one project. DueDate is a date-only string
// as sent by the server (no time component).
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	ProjectID   int64    `json:"project_id"`
	AssigneeID  *int64   `json:"assignee_id,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	OrderIndex  int      `json:"order_index,omitempty"`
}

// Comment is attached to a task
type Comment struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	UserID     int64     `json:"user_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
}

// TeamMember associates one user with one team
type TeamMember struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	Role      TeamRole  `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
}

// Request payloads. The server expects camelCase keys here, unlike the
// snake_case entity bodies it returns.

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTeamPayload struct {
	Name string `json:"name"`
}

type AddMemberPayload struct {
	UserID int64    `json:"userId"`
	Role   TeamRole `json:"role,omitempty"`
}

type CreateProjectPayload struct {
	TeamID      int64  `json:"teamId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateTaskPayload struct {
	ProjectID   int64    `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	AssigneeID  *int64   `json:"assigneeId,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	OrderIndex  int      `json:"orderIndex"`
}

// TaskPatch carries a partial task update; nil fields are left untouched
// by the server.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	AssigneeID  *int64    `json:"assigneeId,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	OrderIndex  *int      `json:"orderIndex,omitempty"`
}

type CreateCommentPayload struct {
	TaskID int64  `json:"taskId"`
	Body   string `json:"body"`
}
