package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/wtek/todoterm/internal/domain"
)

// dueDateLayout is what the due-date inputs accept and display.
const dueDateLayout = "2006-01-02"

// fieldErrors flattens any error into a field-keyed message map for
// inline display. Validation failures land next to their inputs; anything
// else becomes a single entry under domain.GlobalField, rendered as the
// form's banner line.
func fieldErrors(err error) map[string]string {
	verr := domain.AsValidationError(err)

	m := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		if _, seen := m[f.Field]; !seen {
			m[f.Field] = f.Message
		}
	}
	return m
}

// parseDueDate validates a due-date input. Returns the parsed date, or a
// message for the field error map when the input is neither empty nor a
// calendar date.
func parseDueDate(s string) (*time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ""
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, "must be a date like 2026-09-01"
	}
	return &t, ""
}

// newInput builds a textinput with the conventions every form here uses.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return ti
}

// focusInput moves focus to index i within inputs, blurring the rest.
func focusInput(inputs []*textinput.Model, i int) {
	for n, in := range inputs {
		if n == i {
			in.Focus()
			in.CursorEnd()
		} else {
			in.Blur()
		}
	}
}

// renderField renders a labelled input with its inline error, if any.
func renderField(label string, in textinput.Model, errMsg string) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(in.View())
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(errMsg))
	}
	return b.String()
}
