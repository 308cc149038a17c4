package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"togglr/internal/booking"
	"togglr/internal/domain"
	"togglr/internal/notify"
	"togglr/internal/state"
)

type formField int

const (
	fieldProject formField = iota
	fieldDescription
	fieldStart
	fieldStop
	fieldAction
)

const fieldCount = 5

type commitMsg struct {
	entry *domain.TimeEntry
	err   error
}

// Form is the booking editor: project picker, description and start/stop
// clock inputs over the draft held in the store, with one action button that
// stops or updates the entry depending on the draft's phase.
type Form struct {
	store    *state.Store
	api      booking.API
	notifier *notify.Notifier

	draft      booking.Draft
	projects   []domain.Project
	projectIdx int

	field     formField
	textInput textinput.Model
	editing   bool

	stopInvalid bool
	errMsg      string
	committed   bool
}

func NewForm(st *state.Store, api booking.API, notifier *notify.Notifier) *Form {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	f := &Form{
		store:      st,
		api:        api,
		notifier:   notifier,
		draft:      st.Booking(),
		projects:   st.Projects(),
		projectIdx: -1,
		textInput:  ti,
	}
	if f.draft.ProjectID != nil {
		for i := range f.projects {
			if f.projects[i].ID == *f.draft.ProjectID {
				f.projectIdx = i
				break
			}
		}
	}
	return f
}

func (f *Form) Init() tea.Cmd {
	return nil
}

// ActionLabel is what the action button reads: "Stop" closes a running
// entry, "Update" rewrites both bounds.
func (f *Form) ActionLabel() string {
	if booking.PhaseOf(f.draft) == booking.Completable {
		return "Update"
	}
	if f.draft.Stoppable() {
		return "Stop"
	}
	return "Save"
}

// CommitAllowed gates the action button: nothing to commit, or an invalid
// stop time, disables it.
func (f *Form) CommitAllowed() bool {
	if f.stopInvalid {
		return false
	}
	return f.draft.Stoppable() || booking.PhaseOf(f.draft) == booking.Completable
}

// ProjectLabel is the picker's current display value, "Name | Client".
func (f *Form) ProjectLabel() string {
	if f.projectIdx < 0 || f.projectIdx >= len(f.projects) {
		return "(no project)"
	}
	return f.projects[f.projectIdx].Label()
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commitMsg:
		return f.handleCommit(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return f, tea.Quit
		}
	}

	if f.editing {
		return f.updateEditing(msg)
	}
	return f.updateNavigating(msg)
}

func (f *Form) updateNavigating(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case "q", "esc":
		return f, tea.Quit
	case "tab", "down", "j":
		f.field = (f.field + 1) % fieldCount
	case "shift+tab", "up", "k":
		f.field = (f.field + fieldCount - 1) % fieldCount
	case "left", "h":
		if f.field == fieldProject {
			f.cycleProject(-1)
		}
	case "right", "l":
		if f.field == fieldProject {
			f.cycleProject(1)
		}
	case "enter":
		switch f.field {
		case fieldProject:
			f.cycleProject(1)
		case fieldDescription:
			return f.startEditing("Description", f.draft.Description)
		case fieldStart:
			return f.startEditing("Start (HH:MM)", f.draft.TimeStart)
		case fieldStop:
			return f.startEditing("Stop (HH:MM)", f.draft.TimeStop)
		case fieldAction:
			if f.CommitAllowed() {
				return f, f.commit()
			}
		}
	}
	return f, nil
}

func (f *Form) startEditing(placeholder, value string) (tea.Model, tea.Cmd) {
	f.editing = true
	f.textInput.Placeholder = placeholder
	f.textInput.SetValue(value)
	return f, f.textInput.Focus()
}

func (f *Form) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			f.applyEdit()
			f.editing = false
			f.textInput.Blur()
			return f, nil
		case "esc":
			f.editing = false
			f.textInput.Blur()
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.textInput, cmd = f.textInput.Update(msg)
	return f, cmd
}

func (f *Form) applyEdit() {
	value := f.textInput.Value()
	switch f.field {
	case fieldDescription:
		f.draft.Description = value
	case fieldStart:
		if value != f.draft.TimeStart {
			f.draft.TimeStart = value
			f.draft.StartEdited = true
		}
	case fieldStop:
		f.draft.TimeStop = value
	}
	f.stopInvalid = booking.ValidateStop(f.draft.TimeStart, f.draft.TimeStop) != nil
	f.store.SetBooking(f.draft)
}

func (f *Form) cycleProject(dir int) {
	if len(f.projects) == 0 {
		return
	}
	f.projectIdx = (f.projectIdx + dir + len(f.projects)) % len(f.projects)
	id := f.projects[f.projectIdx].ID
	f.draft.ProjectID = &id
	f.store.SetBooking(f.draft)
}

func (f *Form) commit() tea.Cmd {
	draft := f.draft
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		entry, err := booking.Commit(ctx, f.api, draft)
		return commitMsg{entry: entry, err: err}
	}
}

func (f *Form) handleCommit(msg commitMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		f.errMsg = msg.err.Error()
		return f, nil
	}
	// A nil entry without an error is a swallowed update failure; the
	// remote state is unchanged, so this must not read as success.
	if msg.entry == nil {
		f.errMsg = "update failed, entry unchanged"
		return f, nil
	}
	f.committed = true
	if f.notifier != nil {
		f.notifier.Updated()
	}
	return f, tea.Quit
}

// Committed reports whether the form quit after a successful commit.
func (f *Form) Committed() bool {
	return f.committed
}

func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Booking — " + f.draft.Day.Format("Mon 02 Jan")))
	sb.WriteString("\n")

	stopValue := f.draft.TimeStop
	if f.stopInvalid {
		stopValue = errorStyle.Render(stopValue + " (before start)")
	}

	rows := []struct {
		field formField
		label string
		value string
	}{
		{fieldProject, "Project", f.ProjectLabel()},
		{fieldDescription, "Task", f.draft.Description},
		{fieldStart, "Start", f.draft.TimeStart},
		{fieldStop, "Stop", stopValue},
	}
	for _, row := range rows {
		prefix := "  "
		line := fmt.Sprintf("%s%-12s %s", prefix, row.label, row.value)
		if row.field == f.field && !f.editing {
			line = highlightStyle.Render("> " + line[2:])
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	action := fmt.Sprintf("[ %s ]", f.ActionLabel())
	switch {
	case !f.CommitAllowed():
		action = dimStyle.Render(action)
	case f.field == fieldAction:
		action = selectedStyle.Render(action)
	}
	sb.WriteString("  " + action + "\n")

	if f.editing {
		sb.WriteString("\n")
		sb.WriteString(f.textInput.View())
		sb.WriteString("\n")
	}
	if f.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("Error: ") + f.errMsg + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: edit/commit • Tab: next field • ←/→: project • q: quit"))

	return boxStyle.Render(sb.String())
}
