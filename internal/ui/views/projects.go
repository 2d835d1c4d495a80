package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"teamboard/internal/models"
	"teamboard/internal/state"
	"teamboard/internal/ui/keys"
	"teamboard/internal/ui/styles"
)

// SelectedProject is emitted when the user opens a project's board.
type SelectedProject struct {
	Project models.Project
}

// BackToTeams is emitted when the user leaves the projects screen.
type BackToTeams struct{}

// ProjectsView lists projects, filtered by search text and team
type ProjectsView struct {
	projects *state.ProjectStore
	teams    *state.TeamStore
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	// teamFilter is 0 for "all teams"
	teamFilter int64

	cursor    int
	search    textinput.Model
	searching bool

	creating   bool
	nameInput  textinput.Model
	descInput  textinput.Model
	createTeam int64
	focusIdx   int // 0=name, 1=desc

	confirmingDelete bool
	deleteTarget     models.Project
}

// NewProjectsView creates the projects screen. A non-zero teamFilter
// scopes the list to that team.
func NewProjectsView(projects *state.ProjectStore, teams *state.TeamStore, teamFilter int64) *ProjectsView {
	search := textinput.New()
	search.Placeholder = "Search projects..."
	search.CharLimit = 100

	name := textinput.New()
	name.Placeholder = "Project name"
	name.CharLimit = 100

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 200

	return &ProjectsView{
		projects:   projects,
		teams:      teams,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		teamFilter: teamFilter,
		search:     search,
		nameInput:  name,
		descInput:  desc,
	}
}

func (v *ProjectsView) Init() tea.Cmd {
	return func() tea.Msg {
		if err := v.projects.Load(context.Background()); err != nil {
			return OpDone{Err: err}
		}
		return OpDone{Err: v.teams.Load(context.Background())}
	}
}

func (v *ProjectsView) filtered() []models.Project {
	return state.FilterProjects(v.projects.Projects(), v.search.Value(), v.teamFilter)
}

func (v *ProjectsView) Update(msg tea.Msg) (*ProjectsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case OpDone:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.searching:
			return v.updateSearch(msg)
		case v.creating:
			return v.updateCreate(msg)
		case v.confirmingDelete:
			return v.updateDeleteConfirm(msg)
		}
		return v.updateList(msg)
	}
	return v, nil
}

func (v *ProjectsView) updateList(msg tea.KeyMsg) (*ProjectsView, tea.Cmd) {
	projects := v.filtered()
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(projects)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink
	case msg.String() == "t":
		v.cycleTeamFilter()
		v.clampCursor()
	case key.Matches(msg, v.keys.New):
		v.creating = true
		v.focusIdx = 0
		v.createTeam = v.teamFilter
		if v.createTeam == 0 {
			if teams := v.teams.Teams(); len(teams) > 0 {
				v.createTeam = teams[0].ID
			}
		}
		v.nameInput.SetValue("")
		v.descInput.SetValue("")
		v.nameInput.Focus()
		v.descInput.Blur()
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(projects) {
			v.confirmingDelete = true
			v.deleteTarget = projects[v.cursor]
		}
	case key.Matches(msg, v.keys.Refresh):
		return v, v.Init()
	case key.Matches(msg, v.keys.Enter):
		if v.cursor < len(projects) {
			project := projects[v.cursor]
			return v, func() tea.Msg { return SelectedProject{Project: project} }
		}
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToTeams{} }
	}
	return v, nil
}

// cycleTeamFilter steps through all-teams and each loaded team in turn.
func (v *ProjectsView) cycleTeamFilter() {
	teams := v.teams.Teams()
	if len(teams) == 0 {
		v.teamFilter = 0
		return
	}
	if v.teamFilter == 0 {
		v.teamFilter = teams[0].ID
		return
	}
	for i, team := range teams {
		if team.ID == v.teamFilter {
			if i+1 < len(teams) {
				v.teamFilter = teams[i+1].ID
			} else {
				v.teamFilter = 0
			}
			return
		}
	}
	v.teamFilter = 0
}

func (v *ProjectsView) updateSearch(msg tea.KeyMsg) (*ProjectsView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.search.Blur()
		v.clampCursor()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.clampCursor()
	return v, cmd
}

func (v *ProjectsView) updateCreate(msg tea.KeyMsg) (*ProjectsView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		v.nameInput.Blur()
		v.descInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 2
		if v.focusIdx == 0 {
			v.nameInput.Focus()
			v.descInput.Blur()
		} else {
			v.nameInput.Blur()
			v.descInput.Focus()
		}
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		name := strings.TrimSpace(v.nameInput.Value())
		if name == "" {
			return v, nil
		}
		if v.createTeam == 0 {
			return v, nil
		}
		v.creating = false
		v.nameInput.Blur()
		v.descInput.Blur()
		payload := models.CreateProjectPayload{
			TeamID:      v.createTeam,
			Name:        name,
			Description: strings.TrimSpace(v.descInput.Value()),
		}
		return v, func() tea.Msg {
			return OpDone{Err: v.projects.Create(context.Background(), payload)}
		}
	}
	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.nameInput, cmd = v.nameInput.Update(msg)
	} else {
		v.descInput, cmd = v.descInput.Update(msg)
	}
	return v, cmd
}

func (v *ProjectsView) updateDeleteConfirm(msg tea.KeyMsg) (*ProjectsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTarget.ID
		return v, func() tea.Msg {
			return OpDone{Err: v.projects.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *ProjectsView) clampCursor() {
	if n := len(v.filtered()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *ProjectsView) teamName(id int64) string {
	for _, team := range v.teams.Teams() {
		if team.ID == id {
			return team.Name
		}
	}
	return ""
}

func (v *ProjectsView) View() string {
	var b strings.Builder

	title := "Projects"
	if v.teamFilter != 0 {
		if name := v.teamName(v.teamFilter); name != "" {
			title = "Projects · " + name
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.styles.InputFocused.Width(40).Render(v.search.View()))
		b.WriteString("\n\n")
	}

	if err := v.projects.Err(); err != "" {
		b.WriteString(v.styles.ErrorBanner.Render(err + "  (r to retry)"))
		b.WriteString("\n\n")
	}

	switch {
	case v.creating:
		b.WriteString(v.createView())
	case v.confirmingDelete:
		b.WriteString(fmt.Sprintf("Delete project %q? (y/n)", v.deleteTarget.Name))
	default:
		b.WriteString(v.listView())
	}

	return b.String()
}

func (v *ProjectsView) createView() string {
	var b strings.Builder
	team := v.teamName(v.createTeam)
	if team == "" {
		team = "(no team)"
	}
	b.WriteString("New project in " + team + "\n")

	nameStyle, descStyle := v.styles.InputFocused, v.styles.Input
	if v.focusIdx == 1 {
		nameStyle, descStyle = v.styles.Input, v.styles.InputFocused
	}
	b.WriteString(nameStyle.Width(40).Render(v.nameInput.View()))
	b.WriteString("\n")
	b.WriteString(descStyle.Width(40).Render(v.descInput.View()))
	b.WriteString("\n" + v.styles.Help.Render("tab switch field · enter create · esc cancel"))
	return b.String()
}

func (v *ProjectsView) listView() string {
	projects := v.filtered()
	if v.projects.Loading() && len(projects) == 0 {
		return v.styles.TitleMuted.Render("Loading projects...")
	}
	if len(projects) == 0 {
		return v.styles.ColumnEmpty.Render("No projects here. Press n to create one.")
	}

	var b strings.Builder
	for i, project := range projects {
		line := project.Name
		if team := v.teamName(project.TeamID); team != "" {
			line += v.styles.TitleMuted.Render("  · " + team)
		}
		if project.Description != "" {
			line += v.styles.TitleMuted.Render("  — " + project.Description)
		}
		if i == v.cursor {
			b.WriteString(v.styles.ListSelected.Render(line))
		} else {
			b.WriteString(v.styles.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("enter open board · n new · t team filter · d delete · / search · esc teams"))
	return b.String()
}
