package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// todoFormModel is the inline add/edit form under the list. Its state is
// purely local: input values, a field-keyed error map, and a submitting
// flag. Validation failures land in the error map without clearing the
// inputs; a successful add clears the form for the next entry, a
// successful edit closes it.
type todoFormModel struct {
	editing *domain.Todo // nil for add

	title       textinput.Model
	description textinput.Model
	due         textinput.Model

	focus      int
	errors     map[string]string
	submitting bool
}

func newTodoForm(editing *domain.Todo) todoFormModel {
	title := newInput("Buy milk")
	title.Focus()

	due := newInput(dueDateLayout)

	f := todoFormModel{
		editing:     editing,
		title:       title,
		description: newInput("optional details"),
		due:         due,
		errors:      map[string]string{},
	}

	if editing != nil {
		f.title.SetValue(editing.Title)
		f.description.SetValue(editing.Description)
		if editing.DueDate != nil {
			f.due.SetValue(editing.DueDate.Format(dueDateLayout))
		}
		f.title.CursorEnd()
	}
	return f
}

func (f *todoFormModel) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.due}
}

func (f *todoFormModel) focusNext(delta int) {
	n := len(f.inputs())
	f.focus = (f.focus + delta + n) % n
	focusInput(f.inputs(), f.focus)
}

// clear resets the inputs for the next entry (add form only).
func (f *todoFormModel) clear() {
	f.title.SetValue("")
	f.description.SetValue("")
	f.due.SetValue("")
	f.errors = map[string]string{}
	f.focus = 0
	focusInput(f.inputs(), 0)
}

// submit validates locally and issues the create or update command. An
// empty title or malformed due date never reaches the network.
func (f *todoFormModel) submit(todos ports.TodoService) tea.Cmd {
	title := strings.TrimSpace(f.title.Value())
	description := strings.TrimSpace(f.description.Value())

	f.errors = map[string]string{}
	if title == "" {
		f.errors["title"] = domain.MsgRequired
	}
	due, dueErr := parseDueDate(f.due.Value())
	if dueErr != "" {
		f.errors["dueDate"] = dueErr
	}
	if len(f.errors) > 0 {
		return nil
	}

	f.submitting = true
	if f.editing == nil {
		t := domain.Todo{Title: title, Description: description, DueDate: due}
		return func() tea.Msg {
			created, err := todos.Create(context.Background(), t)
			return todoSavedMsg{created: true, todo: created, err: err}
		}
	}

	u := f.diff(title, description, due)
	if u.IsZero() {
		// Nothing changed; behave like a successful edit and close.
		f.submitting = false
		prev := *f.editing
		return func() tea.Msg {
			return todoSavedMsg{todo: &prev}
		}
	}
	id := f.editing.ID
	return func() tea.Msg {
		updated, err := todos.Update(context.Background(), id, u)
		return todoSavedMsg{todo: updated, err: err}
	}
}

// diff builds the partial update against the entry being edited, so
// unchanged fields are never resent. An emptied description or due date
// is treated as "unset" and omitted, matching the create contract; the
// payload cannot express clearing those fields.
func (f *todoFormModel) diff(title, description string, due *time.Time) domain.TodoUpdate {
	var u domain.TodoUpdate
	if title != f.editing.Title {
		u.Title = &title
	}
	if description != "" && description != f.editing.Description {
		u.Description = &description
	}
	if due != nil && !sameDate(due, f.editing.DueDate) {
		u.DueDate = due
	}
	return u
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (f *todoFormModel) View() string {
	heading := "Add todo"
	if f.editing != nil {
		heading = "Edit todo"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	if msg, ok := f.errors[domain.GlobalField]; ok {
		b.WriteString("  " + errorStyle.Render(msg))
	}
	b.WriteString("\n")
	b.WriteString(renderField("Title", f.title, f.errors["title"]))
	b.WriteString("\n")
	b.WriteString(renderField("Description", f.description, f.errors["description"]))
	b.WriteString("\n")
	b.WriteString(renderField("Due date", f.due, f.errors["dueDate"]))
	b.WriteString("\n")
	if f.submitting {
		b.WriteString(mutedStyle.Render("Saving..."))
	} else {
		b.WriteString(helpStyle.Render("enter save • tab next field • esc cancel"))
	}
	return formBoxStyle.Render(b.String())
}
