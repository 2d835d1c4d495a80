// Package ui holds the terminal interface. The App model owns view
// switching; each view talks to the stores and reports back through
// messages.
package ui

import (
	"context"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/notify"
	"teamboard/internal/settings"
	"teamboard/internal/state"
	"teamboard/internal/ui/keys"
	"teamboard/internal/ui/styles"
	"teamboard/internal/ui/views"
)

// SessionExpired tells the app to drop back to the login screen after the
// server rejected the session.
type SessionExpired struct{}

// ToastMsg carries a transient notification into the UI loop.
type ToastMsg struct {
	Notification notify.Notification
}

type toastClearMsg struct {
	seq int
}

const toastDuration = 4 * time.Second

type viewID int

const (
	viewLogin viewID = iota
	viewTeams
	viewProjects
	viewBoard
)

// App is the root model
type App struct {
	auth     *state.AuthStore
	teams    *state.TeamStore
	projects *state.ProjectStore
	tasks    *state.TaskStore
	comments *state.CommentStore
	settings *settings.Store
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	view         viewID
	login        *views.LoginView
	teamsView    *views.TeamsView
	projectsView *views.ProjectsView
	board        *views.BoardView

	// teamFilter is remembered so leaving a board returns to the same
	// project list.
	teamFilter int64

	toast    *notify.Notification
	toastSeq int
}

// NewApp wires the root model. The settings store may be nil when local
// persistence is unavailable; the app then skips remembering the last
// opened project.
func NewApp(auth *state.AuthStore, teams *state.TeamStore, projects *state.ProjectStore, tasks *state.TaskStore, comments *state.CommentStore, st *settings.Store) *App {
	return &App{
		auth:     auth,
		teams:    teams,
		projects: projects,
		tasks:    tasks,
		comments: comments,
		settings: st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		login:    views.NewLoginView(auth),
	}
}

func (a *App) Init() tea.Cmd {
	if a.auth.IsAuthenticated() {
		return tea.Batch(a.showTeams(), a.restoreLastProject())
	}
	a.view = viewLogin
	return a.login.Init()
}

// restoreLastProject reopens the board the user had open last time, if
// that project still exists.
func (a *App) restoreLastProject() tea.Cmd {
	if a.settings == nil {
		return nil
	}
	return func() tea.Msg {
		raw, err := a.settings.Get(settings.KeyLastProject)
		if err != nil || raw == "" {
			return nil
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		if err := a.projects.Load(context.Background()); err != nil {
			return nil
		}
		project := a.projects.Get(id)
		if project == nil {
			return nil
		}
		return views.SelectedProject{Project: *project}
	}
}

func (a *App) showTeams() tea.Cmd {
	a.view = viewTeams
	a.teamsView = views.NewTeamsView(a.teams, a.auth)
	a.teamsView, _ = a.teamsView.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	return a.teamsView.Init()
}

func (a *App) showProjects(teamFilter int64) tea.Cmd {
	a.view = viewProjects
	a.teamFilter = teamFilter
	a.projectsView = views.NewProjectsView(a.projects, a.teams, teamFilter)
	a.projectsView, _ = a.projectsView.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	return a.projectsView.Init()
}

func (a *App) showBoard(msg views.SelectedProject) tea.Cmd {
	a.view = viewBoard
	a.board = views.NewBoardView(a.tasks, a.comments, a.projects, a.teams, msg.Project)
	a.board, _ = a.board.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	cmds := []tea.Cmd{a.board.Init()}
	if a.settings != nil {
		id := msg.Project.ID
		cmds = append(cmds, func() tea.Msg {
			a.settings.Set(settings.KeyLastProject, strconv.FormatInt(id, 10))
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func (a *App) showLogin() tea.Cmd {
	a.view = viewLogin
	a.login = views.NewLoginView(a.auth)
	a.login, _ = a.login.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	return a.login.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case ToastMsg:
		a.toast = &msg.Notification
		a.toastSeq++
		seq := a.toastSeq
		return a, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastClearMsg{seq: seq}
		})

	case toastClearMsg:
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case views.LoggedIn:
		return a, tea.Batch(a.showTeams(), a.restoreLastProject())

	case views.SelectedTeam:
		return a, a.showProjects(msg.Team.ID)

	case views.SelectedProject:
		return a, a.showBoard(msg)

	case views.BackToTeams:
		return a, a.showTeams()

	case views.BackToProjects:
		return a, a.showProjects(a.teamFilter)

	case views.LoggedOut:
		return a, a.showLogin()

	case SessionExpired:
		return a, a.showLogin()
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewTeams:
		a.teamsView, cmd = a.teamsView.Update(msg)
	case viewProjects:
		a.projectsView, cmd = a.projectsView.Update(msg)
	case viewBoard:
		a.board, cmd = a.board.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	var body string
	switch a.view {
	case viewLogin:
		body = a.login.View()
	case viewTeams:
		body = a.teamsView.View()
	case viewProjects:
		body = a.projectsView.View()
	case viewBoard:
		body = a.board.View()
	}

	status := a.statusBar()
	if status == "" {
		return body
	}
	if a.height > 1 {
		body = lipgloss.NewStyle().Height(a.height - 1).Render(body)
	}
	return body + "\n" + status
}

func (a *App) statusBar() string {
	if a.toast == nil {
		return ""
	}
	var style lipgloss.Style
	switch a.toast.Level {
	case notify.LevelSuccess:
		style = a.styles.ToastSuccess
	case notify.LevelError:
		style = a.styles.ToastError
	case notify.LevelWarning:
		style = a.styles.ToastWarning
	default:
		style = a.styles.ToastInfo
	}
	return style.Render(a.toast.Message)
}

// ProgramNotifier delivers notifications into the running bubbletea
// program as ToastMsg values. Notifications raised before Attach (e.g.
// during startup) are buffered and flushed on attach.
type ProgramNotifier struct {
	mu      sync.Mutex
	program *tea.Program
	pending []notify.Notification
}

// Attach binds the notifier to a program and flushes anything buffered.
func (n *ProgramNotifier) Attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	pending := n.pending
	n.pending = nil
	n.mu.Unlock()
	for _, notification := range pending {
		p.Send(ToastMsg{Notification: notification})
	}
}

func (n *ProgramNotifier) send(level notify.Level, message string) {
	notification := notify.Notification{Level: level, Message: message}
	n.mu.Lock()
	p := n.program
	if p == nil {
		n.pending = append(n.pending, notification)
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()
	p.Send(ToastMsg{Notification: notification})
}

func (n *ProgramNotifier) Success(message string) { n.send(notify.LevelSuccess, message) }
func (n *ProgramNotifier) Error(message string)   { n.send(notify.LevelError, message) }
func (n *ProgramNotifier) Warning(message string) { n.send(notify.LevelWarning, message) }
func (n *ProgramNotifier) Info(message string)    { n.send(notify.LevelInfo, message) }
