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

// SelectedTeam is emitted when the user opens a team's projects.
type SelectedTeam struct {
	Team models.Team
}

// LoggedOut is emitted when the user signs out.
type LoggedOut struct{}

// TeamsView lists the user's teams and manages their members
type TeamsView struct {
	teams  *state.TeamStore
	auth   *state.AuthStore
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor    int
	search    textinput.Model
	searching bool

	creating  bool
	nameInput textinput.Model

	confirmingDelete bool
	deleteTarget     models.Team

	// Members panel
	showingMembers bool
	membersTeam    models.Team
	memberCursor   int
	pickingUser    bool
	userCursor     int
}

// NewTeamsView creates the teams screen
func NewTeamsView(teams *state.TeamStore, auth *state.AuthStore) *TeamsView {
	search := textinput.New()
	search.Placeholder = "Search teams..."
	search.CharLimit = 100

	name := textinput.New()
	name.Placeholder = "Team name"
	name.CharLimit = 100

	return &TeamsView{
		teams:     teams,
		auth:      auth,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		search:    search,
		nameInput: name,
	}
}

func (v *TeamsView) Init() tea.Cmd {
	return func() tea.Msg {
		return OpDone{Err: v.teams.Load(context.Background())}
	}
}

func (v *TeamsView) filtered() []models.Team {
	return state.FilterTeams(v.teams.Teams(), v.search.Value())
}

func (v *TeamsView) Update(msg tea.Msg) (*TeamsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case OpDone:
		v.clampCursors()
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.searching:
			return v.updateSearch(msg)
		case v.creating:
			return v.updateCreate(msg)
		case v.confirmingDelete:
			return v.updateDeleteConfirm(msg)
		case v.showingMembers:
			return v.updateMembers(msg)
		}
		return v.updateList(msg)
	}
	return v, nil
}

func (v *TeamsView) updateList(msg tea.KeyMsg) (*TeamsView, tea.Cmd) {
	teams := v.filtered()
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(teams)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink
	case key.Matches(msg, v.keys.New):
		v.creating = true
		v.nameInput.SetValue("")
		v.nameInput.Focus()
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(teams) {
			v.confirmingDelete = true
			v.deleteTarget = teams[v.cursor]
		}
	case key.Matches(msg, v.keys.Members):
		if v.cursor < len(teams) {
			v.showingMembers = true
			v.membersTeam = teams[v.cursor]
			v.memberCursor = 0
			teamID := v.membersTeam.ID
			return v, func() tea.Msg {
				if err := v.teams.LoadMembers(context.Background(), teamID); err != nil {
					return OpDone{Err: err}
				}
				return OpDone{Err: v.teams.LoadUsers(context.Background())}
			}
		}
	case key.Matches(msg, v.keys.Refresh):
		return v, v.Init()
	case key.Matches(msg, v.keys.Enter):
		if v.cursor < len(teams) {
			team := teams[v.cursor]
			return v, func() tea.Msg { return SelectedTeam{Team: team} }
		}
	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg {
			v.auth.Logout()
			return LoggedOut{}
		}
	}
	return v, nil
}

func (v *TeamsView) updateSearch(msg tea.KeyMsg) (*TeamsView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.search.Blur()
		v.clampCursors()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.clampCursors()
	return v, cmd
}

func (v *TeamsView) updateCreate(msg tea.KeyMsg) (*TeamsView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		v.nameInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		name := strings.TrimSpace(v.nameInput.Value())
		if name == "" {
			return v, nil
		}
		v.creating = false
		v.nameInput.Blur()
		return v, func() tea.Msg {
			return OpDone{Err: v.teams.Create(context.Background(), name)}
		}
	}
	var cmd tea.Cmd
	v.nameInput, cmd = v.nameInput.Update(msg)
	return v, cmd
}

func (v *TeamsView) updateDeleteConfirm(msg tea.KeyMsg) (*TeamsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTarget.ID
		return v, func() tea.Msg {
			return OpDone{Err: v.teams.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TeamsView) updateMembers(msg tea.KeyMsg) (*TeamsView, tea.Cmd) {
	if v.pickingUser {
		users := v.teams.Users()
		switch {
		case key.Matches(msg, v.keys.Back):
			v.pickingUser = false
		case key.Matches(msg, v.keys.Up):
			if v.userCursor > 0 {
				v.userCursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.userCursor < len(users)-1 {
				v.userCursor++
			}
		case key.Matches(msg, v.keys.Enter):
			if v.userCursor < len(users) {
				v.pickingUser = false
				teamID := v.membersTeam.ID
				userID := users[v.userCursor].ID
				return v, func() tea.Msg {
					return OpDone{Err: v.teams.AddMember(context.Background(), teamID, userID, models.RoleMember)}
				}
			}
		}
		return v, nil
	}

	members := v.teams.Members()
	switch {
	case key.Matches(msg, v.keys.Back):
		v.showingMembers = false
		v.teams.ClearMembers()
	case key.Matches(msg, v.keys.Up):
		if v.memberCursor > 0 {
			v.memberCursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.memberCursor < len(members)-1 {
			v.memberCursor++
		}
	case key.Matches(msg, v.keys.New):
		v.pickingUser = true
		v.userCursor = 0
	}
	return v, nil
}

func (v *TeamsView) clampCursors() {
	if n := len(v.filtered()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *TeamsView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Teams"))
	if user := v.auth.CurrentUser(); user != nil {
		b.WriteString(v.styles.TitleMuted.Render("  ·  " + user.Name))
	}
	b.WriteString("\n\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.styles.InputFocused.Width(40).Render(v.search.View()))
		b.WriteString("\n\n")
	}

	if err := v.teams.Err(); err != "" {
		b.WriteString(v.styles.ErrorBanner.Render(err + "  (r to retry)"))
		b.WriteString("\n\n")
	}

	switch {
	case v.creating:
		b.WriteString("New team\n")
		b.WriteString(v.styles.InputFocused.Width(40).Render(v.nameInput.View()))
		b.WriteString("\n" + v.styles.Help.Render("enter create · esc cancel"))
	case v.confirmingDelete:
		b.WriteString(fmt.Sprintf("Delete team %q? (y/n)", v.deleteTarget.Name))
	case v.showingMembers:
		b.WriteString(v.membersView())
	default:
		b.WriteString(v.listView())
	}

	return b.String()
}

func (v *TeamsView) listView() string {
	teams := v.filtered()
	if v.teams.Loading() && len(teams) == 0 {
		return v.styles.TitleMuted.Render("Loading teams...")
	}
	if len(teams) == 0 {
		return v.styles.ColumnEmpty.Render("No teams yet. Press n to create one.")
	}

	var b strings.Builder
	for i, team := range teams {
		line := team.Name
		if team.MembersCount > 0 {
			line += fmt.Sprintf("  (%d members)", team.MembersCount)
		}
		if i == v.cursor {
			b.WriteString(v.styles.ListSelected.Render(line))
		} else {
			b.WriteString(v.styles.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("enter open · n new · m members · d delete · / search · ctrl+l sign out"))
	return b.String()
}

func (v *TeamsView) membersView() string {
	var b strings.Builder
	b.WriteString(v.styles.ColumnHeader.Render("Members of " + v.membersTeam.Name))
	b.WriteString("\n")

	if v.pickingUser {
		b.WriteString(v.styles.TitleMuted.Render("Pick a user to add:"))
		b.WriteString("\n")
		for i, user := range v.teams.Users() {
			line := fmt.Sprintf("%s <%s>", user.Name, user.Email)
			if i == v.userCursor {
				b.WriteString(v.styles.ListSelected.Render(line))
			} else {
				b.WriteString(v.styles.ListItem.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Help.Render("enter add · esc cancel"))
		return b.String()
	}

	members := v.teams.Members()
	if v.teams.Loading() && len(members) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("Loading members..."))
		return b.String()
	}
	for i, member := range members {
		name := member.UserName
		if name == "" {
			name = fmt.Sprintf("user %d", member.UserID)
		}
		line := fmt.Sprintf("%s · %s", name, member.Role)
		if member.UserEmail != "" {
			line = fmt.Sprintf("%s <%s> · %s", name, member.UserEmail, member.Role)
		}
		if i == v.memberCursor {
			b.WriteString(v.styles.ListSelected.Render(line))
		} else {
			b.WriteString(v.styles.ListItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("n add member · esc close"))
	return b.String()
}
