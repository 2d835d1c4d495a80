package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/state"
	"teamboard/internal/ui/keys"
	"teamboard/internal/ui/styles"
)

// LoggedIn is emitted when authentication succeeds.
type LoggedIn struct{}

// OpDone is emitted when a background store operation finishes; the UI
// re-renders from fresh store snapshots either way.
type OpDone struct {
	Err error
}

// LoginView handles sign-in and registration
type LoginView struct {
	auth   *state.AuthStore
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	registering bool
	submitting  bool
	focusIdx    int // 0=name (register only), then email, password, submit, toggle

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
}

// NewLoginView creates the login screen
func NewLoginView(auth *state.AuthStore) *LoginView {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 150
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	return &LoginView{
		auth:     auth,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		email:    email,
		password: password,
		name:     name,
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount returns the number of focusable rows in the current mode.
func (v *LoginView) fieldCount() int {
	if v.registering {
		return 5 // name, email, password, submit, toggle
	}
	return 4 // email, password, submit, toggle
}

func (v *LoginView) inputs() []*textinput.Model {
	if v.registering {
		return []*textinput.Model{&v.name, &v.email, &v.password}
	}
	return []*textinput.Model{&v.email, &v.password}
}

func (v *LoginView) Update(msg tea.Msg) (*LoginView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case OpDone:
		v.submitting = false
		return v, nil

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Down):
			v.setFocus((v.focusIdx + 1) % v.fieldCount())
			return v, nil
		case msg.String() == "shift+tab", key.Matches(msg, v.keys.Up):
			v.setFocus((v.focusIdx - 1 + v.fieldCount()) % v.fieldCount())
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			inputs := len(v.inputs())
			switch v.focusIdx {
			case v.fieldCount() - 1: // toggle mode
				v.registering = !v.registering
				v.setFocus(0)
				return v, nil
			case inputs, inputs - 1: // submit button, or enter on the last input
				return v, v.submit()
			default:
				v.setFocus(v.focusIdx + 1)
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	inputs := v.inputs()
	if v.focusIdx < len(inputs) {
		*inputs[v.focusIdx], cmd = inputs[v.focusIdx].Update(msg)
	}
	return v, cmd
}

func (v *LoginView) setFocus(idx int) {
	v.focusIdx = idx
	inputs := v.inputs()
	for i, input := range inputs {
		if i == idx {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (v *LoginView) submit() tea.Cmd {
	v.submitting = true
	registering := v.registering
	name := v.name.Value()
	email := v.email.Value()
	password := v.password.Value()

	return func() tea.Msg {
		var err error
		if registering {
			err = v.auth.Register(context.Background(), name, email, password)
		} else {
			err = v.auth.Login(context.Background(), email, password)
		}
		if err != nil {
			return OpDone{Err: err}
		}
		return LoggedIn{}
	}
}

func (v *LoginView) View() string {
	title := "Sign in to teamboard"
	submitLabel := "Sign in"
	toggleLabel := "Need an account? Register"
	if v.registering {
		title = "Create a teamboard account"
		submitLabel = "Register"
		toggleLabel = "Have an account? Sign in"
	}

	rows := []string{v.styles.Title.Render(title), ""}

	inputs := v.inputs()
	for i, input := range inputs {
		style := v.styles.Input
		if i == v.focusIdx {
			style = v.styles.InputFocused
		}
		rows = append(rows, style.Width(42).Render(input.View()))
	}

	submit := v.styles.Button.Render(submitLabel)
	if v.focusIdx == len(inputs) {
		submit = v.styles.ButtonFocused.Render(submitLabel)
	}
	if v.submitting {
		submit = v.styles.Button.Render("Working...")
	}
	rows = append(rows, "", submit)

	toggle := v.styles.TitleMuted.Render(toggleLabel)
	if v.focusIdx == v.fieldCount()-1 {
		toggle = v.styles.Title.Render(toggleLabel)
	}
	rows = append(rows, "", toggle)

	box := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if v.width == 0 {
		return box
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}
