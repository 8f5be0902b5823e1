package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// todoKeys is the key map for the todo list, rendered by bubbles/help.
type todoKeys struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Profile key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func newTodoKeys() todoKeys {
	return todoKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Profile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		Logout:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k todoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Profile, k.Quit}
}

func (k todoKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.Edit, k.Delete, k.Reload},
		{k.Profile, k.Logout, k.Quit},
	}
}

// todoListModel is the authenticated main view. Its collection is the
// in-memory source for display only; every mutation goes to the server
// first and the collection is reconciled from the server's answer. The
// display order is derived per render and never persisted.
type todoListModel struct {
	todos ports.TodoService
	users ports.UserService

	loading bool
	seq     int // fetch generation; stale results are dropped
	items   []domain.Todo
	banner  string

	profile    domain.Profile
	hasProfile bool

	cursor int
	form   *todoFormModel

	keys todoKeys
	help help.Model
}

func newTodoListModel(todos ports.TodoService, users ports.UserService) todoListModel {
	return todoListModel{
		todos: todos,
		users: users,
		keys:  newTodoKeys(),
		help:  help.New(),
	}
}

// mount (re)enters the loading state and issues the list and profile
// fetches concurrently.
func (m todoListModel) mount() (todoListModel, tea.Cmd) {
	m.loading = true
	m.banner = ""
	m.form = nil
	m.seq++

	seq := m.seq
	todos := m.todos
	users := m.users
	return m, tea.Batch(
		func() tea.Msg {
			items, err := todos.List(context.Background())
			return todosLoadedMsg{seq: seq, todos: items, err: err}
		},
		func() tea.Msg {
			profile, err := users.Get(context.Background())
			return profileLoadedMsg{seq: seq, profile: profile, err: err}
		},
	)
}

func (m todoListModel) Update(msg tea.Msg) (todoListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = errorLine(msg.err)
			return m, nil
		}
		m.items = msg.todos
		m.banner = ""
		m.clampCursor()
		return m, nil

	case profileLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err == nil {
			m.profile = msg.profile
			m.hasProfile = true
		}
		// A failed profile fetch is cosmetic here; the header simply
		// omits the name.
		return m, nil

	case todoSavedMsg:
		return m.onSaved(msg)

	case todoToggledMsg:
		if msg.err != nil {
			m.banner = errorLine(msg.err)
			return m, nil
		}
		m.replaceByID(msg.todo)
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			m.banner = errorLine(msg.err)
			return m, nil
		}
		m.removeByID(msg.id)
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m todoListModel) handleKey(msg tea.KeyMsg) (todoListModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.toggleCmd(t)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		form := newTodoForm(nil)
		m.form = &form
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			form := newTodoForm(&t)
			m.form = &form
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.deleteCmd(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.mount()

	case key.Matches(msg, m.keys.Profile):
		return m, gotoCmd(RouteProfile)
	}

	return m, nil
}

// selected returns the todo under the cursor in display order.
func (m todoListModel) selected() (domain.Todo, bool) {
	ordered := m.displayOrder()
	if m.cursor < 0 || m.cursor >= len(ordered) {
		return domain.Todo{}, false
	}
	return ordered[m.cursor], true
}

// displayOrder flattens the grouped presentation: incomplete first.
func (m todoListModel) displayOrder() []domain.Todo {
	groups := domain.GroupForDisplay(m.items)
	return append(append([]domain.Todo{}, groups.Incomplete...), groups.Completed...)
}

func (m *todoListModel) clampCursor() {
	if max := len(m.items) - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *todoListModel) replaceByID(t *domain.Todo) {
	if t == nil {
		return
	}
	for i := range m.items {
		if m.items[i].ID == t.ID {
			m.items[i] = *t
			return
		}
	}
}

func (m *todoListModel) removeByID(id int64) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.clampCursor()
			return
		}
	}
}

func (m todoListModel) toggleCmd(t domain.Todo) tea.Cmd {
	completed := !t.Completed
	todos := m.todos
	id := t.ID
	return func() tea.Msg {
		updated, err := todos.Update(context.Background(), id, domain.TodoUpdate{Completed: &completed})
		return todoToggledMsg{todo: updated, err: err}
	}
}

func (m todoListModel) deleteCmd(id int64) tea.Cmd {
	todos := m.todos
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: todos.Delete(context.Background(), id)}
	}
}

// onSaved handles a create/update result: reconcile the collection from
// the server's entity, or surface validation errors into the open form.
func (m todoListModel) onSaved(msg todoSavedMsg) (todoListModel, tea.Cmd) {
	if m.form != nil {
		m.form.submitting = false
	}

	if msg.err != nil {
		if m.form != nil {
			m.form.errors = fieldErrors(msg.err)
		} else {
			m.banner = errorLine(msg.err)
		}
		return m, nil
	}

	if msg.created {
		m.items = append(m.items, *msg.todo)
		if m.form != nil {
			m.form.clear()
		}
	} else {
		m.replaceByID(msg.todo)
		m.form = nil
	}
	return m, nil
}

func (m todoListModel) updateForm(msg tea.KeyMsg) (todoListModel, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		m.form.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusNext(-1)
		return m, nil
	case "enter":
		cmd := m.form.submit(m.todos)
		return m, cmd
	}

	var cmd tea.Cmd
	in := m.form.inputs()[m.form.focus]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m todoListModel) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(errorStyle.Render(m.banner))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading todos..."))
	case len(m.items) == 0:
		b.WriteString(mutedStyle.Render("No todos yet. Press a to add one."))
	default:
		b.WriteString(m.renderGroups())
	}

	if m.form != nil {
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m todoListModel) header() string {
	done := 0
	for _, t := range m.items {
		if t.Completed {
			done++
		}
	}

	title := fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(m.items)-done,
	)
	if m.hasProfile {
		title += "   " + mutedStyle.Render(m.profile.DisplayName())
	}
	return title
}

func (m todoListModel) renderGroups() string {
	groups := domain.GroupForDisplay(m.items)

	var b strings.Builder
	row := 0
	renderGroup := func(label string, todos []domain.Todo) {
		if len(todos) == 0 {
			return
		}
		b.WriteString(headingStyle.Render(label))
		b.WriteString("\n")
		for _, t := range todos {
			b.WriteString(m.renderRow(t, row == m.cursor))
			b.WriteString("\n")
			row++
		}
	}

	renderGroup("Incomplete", groups.Incomplete)
	renderGroup("Completed", groups.Completed)
	return strings.TrimRight(b.String(), "\n")
}

func (m todoListModel) renderRow(t domain.Todo, selected bool) string {
	box := mutedStyle.Render(boxUnchecked)
	text := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	var due string
	if t.DueDate != nil {
		badge := "due " + t.DueDate.Format(dueDateLayout)
		if t.Completed {
			due = " " + mutedStyle.Render(badge)
		} else {
			due = " " + pendingStyle.Render(badge)
		}
	}

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s%s", prefix, box, text, due)
}

// errorLine renders a non-validation failure as a single banner string.
func errorLine(err error) string {
	if msg, ok := fieldErrors(err)[domain.GlobalField]; ok {
		return msg
	}
	return err.Error()
}
