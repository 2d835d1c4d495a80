package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/models"
	"teamboard/internal/state"
	"teamboard/internal/ui/keys"
	"teamboard/internal/ui/styles"
)

// BackToProjects is emitted when the user leaves the board.
type BackToProjects struct{}

var columnTitles = map[models.Status]string{
	models.StatusTodo:       "To do",
	models.StatusInProgress: "In progress",
	models.StatusDone:       "Done",
}

var emptyColumnText = map[models.Status]string{
	models.StatusTodo:       "Nothing to do yet",
	models.StatusInProgress: "Nothing in progress",
	models.StatusDone:       "Nothing done yet",
}

// BoardView shows one project's tasks in three status columns. Moving a
// card across columns is the drag-and-drop of the board: the change is
// applied locally first and rolled back by the store if the server
// rejects it.
type BoardView struct {
	tasks    *state.TaskStore
	comments *state.CommentStore
	projects *state.ProjectStore
	teams    *state.TeamStore
	project  models.Project
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	col int // 0..2, board column of the cursor
	row int // position within the column

	search    textinput.Model
	searching bool

	// Task create/edit form
	editing    bool
	editTarget *models.Task // nil when creating
	editStatus models.Status
	titleInput textinput.Model
	descInput  textarea.Model
	dueInput   textinput.Model
	priority   models.Priority
	focusIdx   int // 0=title, 1=desc, 2=due, 3=priority, 4=save

	// Task detail with comments
	viewing      bool
	viewTask     models.Task
	commentInput textinput.Model

	confirmingDelete bool
	deleteTarget     models.Task
}

// NewBoardView creates the board for one project
func NewBoardView(tasks *state.TaskStore, comments *state.CommentStore, projects *state.ProjectStore, teams *state.TeamStore, project models.Project) *BoardView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = "Due date (YYYY-MM-DD, optional)"
	due.CharLimit = 10

	comment := textinput.New()
	comment.Placeholder = "Add a comment..."
	comment.CharLimit = 500

	return &BoardView{
		tasks:        tasks,
		comments:     comments,
		projects:     projects,
		teams:        teams,
		project:      project,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		search:       search,
		titleInput:   title,
		descInput:    desc,
		dueInput:     due,
		commentInput: comment,
		priority:     models.PriorityNormal,
	}
}

func (v *BoardView) Init() tea.Cmd {
	projectID := v.project.ID
	return func() tea.Msg {
		return OpDone{Err: v.tasks.Load(context.Background(), projectID)}
	}
}

func (v *BoardView) columns() [][]models.Task {
	return state.BoardColumns(v.tasks.Tasks(), v.search.Value())
}

// teamName resolves the project's team through the loaded teams.
func (v *BoardView) teamName() string {
	project := v.projects.Get(v.project.ID)
	if project == nil {
		project = &v.project
	}
	for _, team := range v.teams.Teams() {
		if team.ID == project.TeamID {
			return team.Name
		}
	}
	return ""
}

func (v *BoardView) selected() *models.Task {
	columns := v.columns()
	if v.col >= len(columns) || v.row >= len(columns[v.col]) {
		return nil
	}
	task := columns[v.col][v.row]
	return &task
}

func (v *BoardView) Update(msg tea.Msg) (*BoardView, tea.Cmd) {
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
		case v.editing:
			return v.updateForm(msg)
		case v.viewing:
			return v.updateDetail(msg)
		case v.confirmingDelete:
			return v.updateDeleteConfirm(msg)
		}
		return v.updateBoard(msg)
	}
	return v, nil
}

func (v *BoardView) updateBoard(msg tea.KeyMsg) (*BoardView, tea.Cmd) {
	columns := v.columns()
	switch {
	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.clampCursor()
		}
	case key.Matches(msg, v.keys.Right):
		if v.col < len(columns)-1 {
			v.col++
			v.clampCursor()
		}
	case key.Matches(msg, v.keys.Up):
		if v.row > 0 {
			v.row--
		}
	case key.Matches(msg, v.keys.Down):
		if v.row < len(columns[v.col])-1 {
			v.row++
		}

	case key.Matches(msg, v.keys.MoveLeft):
		return v.moveAcross(-1)
	case key.Matches(msg, v.keys.MoveRight):
		return v.moveAcross(1)
	case key.Matches(msg, v.keys.MoveUp):
		return v.moveWithin(-1)
	case key.Matches(msg, v.keys.MoveDown):
		return v.moveWithin(1)

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink
	case key.Matches(msg, v.keys.New):
		v.openForm(nil, models.Statuses[v.col])
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Edit):
		if task := v.selected(); task != nil {
			v.openForm(task, task.Status)
			return v, textinput.Blink
		}
	case key.Matches(msg, v.keys.Delete):
		if task := v.selected(); task != nil {
			v.confirmingDelete = true
			v.deleteTarget = *task
		}
	case key.Matches(msg, v.keys.Priority):
		if task := v.selected(); task != nil {
			return v, v.cyclePriority(*task)
		}
	case key.Matches(msg, v.keys.Enter):
		if task := v.selected(); task != nil {
			v.viewing = true
			v.viewTask = *task
			v.commentInput.SetValue("")
			taskID := task.ID
			return v, func() tea.Msg {
				return OpDone{Err: v.comments.Load(context.Background(), taskID)}
			}
		}
	case key.Matches(msg, v.keys.Refresh):
		return v, v.Init()
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }
	}
	return v, nil
}

// moveAcross moves the selected card to the adjacent column, keeping its
// row where possible. The cursor follows the card.
func (v *BoardView) moveAcross(dir int) (*BoardView, tea.Cmd) {
	task := v.selected()
	if task == nil {
		return v, nil
	}
	dest := v.col + dir
	if dest < 0 || dest >= len(models.Statuses) {
		return v, nil
	}
	columns := v.columns()
	toIndex := min(v.row, len(columns[dest]))
	toStatus := models.Statuses[dest]
	query := v.search.Value()
	id := task.ID

	v.col = dest
	v.row = toIndex
	return v, func() tea.Msg {
		return OpDone{Err: v.tasks.Move(context.Background(), id, toStatus, toIndex, query)}
	}
}

// moveWithin reorders the selected card inside its column; this is
// presentation-only and never touches the server.
func (v *BoardView) moveWithin(dir int) (*BoardView, tea.Cmd) {
	task := v.selected()
	if task == nil {
		return v, nil
	}
	columns := v.columns()
	toIndex := v.row + dir
	if toIndex < 0 || toIndex >= len(columns[v.col]) {
		return v, nil
	}
	toStatus := models.Statuses[v.col]
	query := v.search.Value()
	id := task.ID

	v.row = toIndex
	return v, func() tea.Msg {
		return OpDone{Err: v.tasks.Move(context.Background(), id, toStatus, toIndex, query)}
	}
}

func (v *BoardView) cyclePriority(task models.Task) tea.Cmd {
	var next models.Priority
	switch task.Priority {
	case models.PriorityLow:
		next = models.PriorityNormal
	case models.PriorityNormal:
		next = models.PriorityHigh
	default:
		next = models.PriorityLow
	}
	id := task.ID
	return func() tea.Msg {
		return OpDone{Err: v.tasks.Update(context.Background(), id, models.TaskPatch{Priority: &next})}
	}
}

func (v *BoardView) openForm(task *models.Task, status models.Status) {
	v.editing = true
	v.editTarget = task
	v.editStatus = status
	v.focusIdx = 0
	if task != nil {
		v.titleInput.SetValue(task.Title)
		v.descInput.SetValue(task.Description)
		v.dueInput.SetValue(task.DueDate)
		v.priority = task.Priority
	} else {
		v.titleInput.SetValue("")
		v.descInput.SetValue("")
		v.dueInput.SetValue("")
		v.priority = models.PriorityNormal
	}
	v.titleInput.Focus()
	v.descInput.Blur()
	v.dueInput.Blur()
}

func (v *BoardView) closeForm() {
	v.editing = false
	v.editTarget = nil
	v.titleInput.Blur()
	v.descInput.Blur()
	v.dueInput.Blur()
}

func (v *BoardView) updateForm(msg tea.KeyMsg) (*BoardView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeForm()
		return v, nil
	case key.Matches(msg, v.keys.Tab):
		v.setFormFocus((v.focusIdx + 1) % 5)
		return v, nil
	case msg.String() == "shift+tab":
		v.setFormFocus((v.focusIdx + 4) % 5)
		return v, nil
	}

	if v.focusIdx == 3 {
		switch msg.String() {
		case "left", "h":
			v.priority = prevPriority(v.priority)
			return v, nil
		case "right", "l", " ":
			v.priority = nextPriority(v.priority)
			return v, nil
		}
	}

	if key.Matches(msg, v.keys.Enter) && v.focusIdx != 1 {
		if v.focusIdx == 4 {
			return v.submitForm()
		}
		v.setFormFocus(v.focusIdx + 1)
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.titleInput, cmd = v.titleInput.Update(msg)
	case 1:
		v.descInput, cmd = v.descInput.Update(msg)
	case 2:
		v.dueInput, cmd = v.dueInput.Update(msg)
	}
	return v, cmd
}

func (v *BoardView) setFormFocus(idx int) {
	v.focusIdx = idx
	v.titleInput.Blur()
	v.descInput.Blur()
	v.dueInput.Blur()
	switch idx {
	case 0:
		v.titleInput.Focus()
	case 1:
		v.descInput.Focus()
	case 2:
		v.dueInput.Focus()
	}
}

func (v *BoardView) submitForm() (*BoardView, tea.Cmd) {
	title := strings.TrimSpace(v.titleInput.Value())
	if title == "" {
		return v, nil
	}
	desc := v.descInput.Value()
	due := strings.TrimSpace(v.dueInput.Value())
	priority := v.priority

	if v.editTarget != nil {
		id := v.editTarget.ID
		patch := models.TaskPatch{
			Title:       &title,
			Description: &desc,
			Priority:    &priority,
			DueDate:     &due,
		}
		v.closeForm()
		return v, func() tea.Msg {
			return OpDone{Err: v.tasks.Update(context.Background(), id, patch)}
		}
	}

	payload := models.CreateTaskPayload{
		ProjectID:   v.project.ID,
		Title:       title,
		Description: desc,
		Status:      v.editStatus,
		Priority:    priority,
		DueDate:     due,
	}
	v.closeForm()
	return v, func() tea.Msg {
		return OpDone{Err: v.tasks.Create(context.Background(), payload)}
	}
}

func (v *BoardView) updateDetail(msg tea.KeyMsg) (*BoardView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewing = false
		v.commentInput.Blur()
		v.comments.Clear()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		if !v.commentInput.Focused() {
			v.commentInput.Focus()
			return v, textinput.Blink
		}
		body := v.commentInput.Value()
		if strings.TrimSpace(body) == "" {
			v.commentInput.Blur()
			return v, nil
		}
		v.commentInput.SetValue("")
		taskID := v.viewTask.ID
		return v, func() tea.Msg {
			return OpDone{Err: v.comments.Add(context.Background(), taskID, body)}
		}
	}
	if v.commentInput.Focused() {
		var cmd tea.Cmd
		v.commentInput, cmd = v.commentInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *BoardView) updateDeleteConfirm(msg tea.KeyMsg) (*BoardView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTarget.ID
		return v, func() tea.Msg {
			return OpDone{Err: v.tasks.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *BoardView) updateSearch(msg tea.KeyMsg) (*BoardView, tea.Cmd) {
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

func (v *BoardView) clampCursor() {
	columns := v.columns()
	if v.col >= len(columns) {
		v.col = len(columns) - 1
	}
	if n := len(columns[v.col]); v.row >= n {
		v.row = max(n-1, 0)
	}
}

func (v *BoardView) View() string {
	var b strings.Builder

	header := v.project.Name
	if team := v.teamName(); team != "" {
		header += "  ·  " + team
	}
	b.WriteString(v.styles.Title.Render(header))
	b.WriteString("\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.styles.InputFocused.Width(40).Render(v.search.View()))
		b.WriteString("\n")
	}

	if err := v.tasks.Err(); err != "" {
		b.WriteString(v.styles.ErrorBanner.Render(err + "  (r to retry)"))
		b.WriteString("\n")
	}

	switch {
	case v.editing:
		b.WriteString(v.formView())
	case v.viewing:
		b.WriteString(v.detailView())
	case v.confirmingDelete:
		b.WriteString(fmt.Sprintf("Delete task %q? (y/n)", v.deleteTarget.Title))
	default:
		b.WriteString(v.boardView())
	}

	return b.String()
}

func (v *BoardView) boardView() string {
	columns := v.columns()
	if v.tasks.Loading() && len(v.tasks.Tasks()) == 0 {
		return v.styles.TitleMuted.Render("Loading tasks...")
	}

	colWidth := max((styles.ContentWidth(v.width)-6)/3, 24)
	rendered := make([]string, len(columns))
	for i, column := range columns {
		rendered[i] = v.renderColumn(i, column, colWidth)
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := v.styles.Help.Render("hjkl navigate · HJKL move card · enter details · n new · e edit · p priority · d delete · / search · esc back")
	return board + "\n" + help
}

func (v *BoardView) renderColumn(idx int, column []models.Task, width int) string {
	status := models.Statuses[idx]
	var rows []string
	rows = append(rows, v.styles.ColumnHeader.Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(column))))

	if len(column) == 0 {
		text := emptyColumnText[status]
		if strings.TrimSpace(v.search.Value()) != "" {
			text = "No matching tasks"
		}
		rows = append(rows, v.styles.ColumnEmpty.Render(text))
	}

	for i, task := range column {
		marker := v.styles.Priority(task.Priority).Render("●")
		line := marker + " " + task.Title
		if task.DueDate != "" {
			line += v.styles.TitleMuted.Render(" ⏰" + task.DueDate)
		}
		style := v.styles.Card
		if idx == v.col && i == v.row {
			style = v.styles.CardSelected
		}
		rows = append(rows, style.Width(width-4).Render(line))
	}

	colStyle := v.styles.Column
	if idx == v.col {
		colStyle = v.styles.ColumnFocused
	}
	return colStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (v *BoardView) formView() string {
	var b strings.Builder
	if v.editTarget != nil {
		b.WriteString(v.styles.ColumnHeader.Render("Edit task"))
	} else {
		b.WriteString(v.styles.ColumnHeader.Render("New task in " + columnTitles[v.editStatus]))
	}
	b.WriteString("\n")

	inputStyle := func(i int) lipgloss.Style {
		if v.focusIdx == i {
			return v.styles.InputFocused
		}
		return v.styles.Input
	}
	b.WriteString(inputStyle(0).Width(52).Render(v.titleInput.View()))
	b.WriteString("\n")
	b.WriteString(inputStyle(1).Width(52).Render(v.descInput.View()))
	b.WriteString("\n")
	b.WriteString(inputStyle(2).Width(52).Render(v.dueInput.View()))
	b.WriteString("\n")

	priorityLine := "Priority: " + v.styles.Priority(v.priority).Render(string(v.priority))
	if v.focusIdx == 3 {
		priorityLine = v.styles.ListSelected.Render(priorityLine + "  (←/→ to change)")
	} else {
		priorityLine = v.styles.ListItem.Render(priorityLine)
	}
	b.WriteString(priorityLine)
	b.WriteString("\n")

	save := v.styles.Button.Render("Save")
	if v.focusIdx == 4 {
		save = v.styles.ButtonFocused.Render("Save")
	}
	b.WriteString(save)
	b.WriteString("\n" + v.styles.Help.Render("tab next field · enter save · esc cancel"))
	return b.String()
}

func (v *BoardView) detailView() string {
	var b strings.Builder
	task := v.tasks.Get(v.viewTask.ID)
	if task == nil {
		task = &v.viewTask
	}

	b.WriteString(v.styles.ColumnHeader.Render(task.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s · %s priority", columnTitles[task.Status], task.Priority)
	if task.DueDate != "" {
		meta += " · due " + task.DueDate
	}
	b.WriteString(v.styles.TitleMuted.Render(meta))
	b.WriteString("\n\n")
	if task.Description != "" {
		b.WriteString(task.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.ColumnHeader.Render("Comments"))
	b.WriteString("\n")
	comments := v.comments.Comments()
	if v.comments.Loading() && len(comments) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("Loading comments..."))
		b.WriteString("\n")
	} else if len(comments) == 0 {
		b.WriteString(v.styles.ColumnEmpty.Render("No comments yet"))
		b.WriteString("\n")
	}
	for _, comment := range comments {
		author := comment.AuthorName
		if author == "" {
			author = fmt.Sprintf("user %d", comment.UserID)
		}
		b.WriteString(v.styles.HelpKey.Render(author))
		b.WriteString(v.styles.TitleMuted.Render("  " + comment.CreatedAt.Format("2006-01-02 15:04")))
		b.WriteString("\n")
		b.WriteString(v.styles.ListItem.Render(comment.Body))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	inputStyle := v.styles.Input
	if v.commentInput.Focused() {
		inputStyle = v.styles.InputFocused
	}
	b.WriteString(inputStyle.Width(52).Render(v.commentInput.View()))
	b.WriteString("\n" + v.styles.Help.Render("enter focus/post comment · esc close"))
	return b.String()
}

func nextPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityLow:
		return models.PriorityNormal
	case models.PriorityNormal:
		return models.PriorityHigh
	}
	return models.PriorityLow
}

func prevPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityHigh:
		return models.PriorityNormal
	case models.PriorityNormal:
		return models.PriorityLow
	}
	return models.PriorityHigh
}
