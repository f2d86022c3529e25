// Package ui provides the interactive task list screen.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/output"
	"todo/internal/service"
)

const (
	// EmptyHint is the empty-state subtitle on the interactive screen.
	EmptyHint = "Add a task using a"

	// LoadingText is shown while the store is still loading.
	LoadingText = "Loading tasks..."

	loadPollInterval = 100 * time.Millisecond
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

type loadTickMsg time.Time

// Model is the bubbletea model for the task list screen.
type Model struct {
	svc    service.Service
	styles styles

	tasks  []service.Task // display order snapshot
	cursor int
	mode   mode
	input  textinput.Model

	// targetID is the task being edited or confirmed for deletion.
	targetID string
	status   string
}

// New creates a model over svc.
func New(svc service.Service, darkMode bool) Model {
	// No CharLimit: SetValue would truncate long titles on edit.
	ti := textinput.New()
	ti.CharLimit = 0
	ti.Width = 48

	m := Model{
		svc:    svc,
		styles: newStyles(darkMode),
		input:  ti,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.svc.IsLoading() {
		return pollLoad()
	}
	return nil
}

func pollLoad() tea.Cmd {
	return tea.Tick(loadPollInterval, func(t time.Time) tea.Msg {
		return loadTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTickMsg:
		m.refresh()
		if m.svc.IsLoading() {
			return m, pollLoad()
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 12 {
			m.input.Width = msg.Width - 12
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.tasks)-1, 0)
	case " ", "space", "x":
		if task, ok := m.selected(); ok {
			m.svc.ToggleComplete(task.ID)
			m.refresh()
			m.follow(task.ID)
		}
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "New task"
		m.input.SetValue("")
		return m, m.input.Focus()
	case "e":
		if task, ok := m.selected(); ok {
			m.mode = modeEdit
			m.targetID = task.ID
			m.input.Placeholder = "Task title"
			m.input.SetValue(task.Title)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case "d":
		if task, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.targetID = task.ID
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		title := m.input.Value()
		if m.mode == modeAdd {
			if task, ok := m.svc.Add(title); ok {
				m.refresh()
				m.follow(task.ID)
				m.status = "Added"
			}
		} else if m.svc.Edit(m.targetID, title) {
			m.refresh()
			m.follow(m.targetID)
			m.status = "Saved"
		}
		m.leaveInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.svc.Delete(m.targetID)
		m.refresh()
		m.status = "Deleted"
	case "n", "N", "esc":
	default:
		return m, nil
	}
	m.mode = modeList
	m.targetID = ""
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.targetID = ""
	m.input.SetValue("")
	m.input.Blur()
}

// refresh snapshots the store and keeps the cursor in range.
func (m *Model) refresh() {
	m.tasks = service.DisplayOrder(m.svc.Tasks())
	m.cursor = min(m.cursor, len(m.tasks)-1)
	m.cursor = max(m.cursor, 0)
}

// follow moves the cursor onto the task with id, if it is listed.
func (m *Model) follow(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return service.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m Model) findTask(id string) (service.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Todo"))
	b.WriteString("\n\n")

	if m.svc.IsLoading() {
		b.WriteString(m.styles.muted.Render(LoadingText))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.task.Render(output.EmptyTitle))
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render(EmptyHint))
		b.WriteString("\n")
	} else {
		m.renderSections(&b)
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString(m.styles.prompt.Render("Add: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("enter save • esc cancel"))
	case modeEdit:
		b.WriteString(m.styles.prompt.Render("Edit: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("enter save • esc cancel"))
	case modeConfirmDelete:
		title := m.targetID
		if task, ok := m.findTask(m.targetID); ok {
			title = task.Title
		}
		b.WriteString(m.styles.errText.Render(fmt.Sprintf("Delete %q? (y/n)", title)))
	default:
		if m.status != "" {
			b.WriteString(m.styles.muted.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.muted.Render("j/k move • space toggle • a add • e edit • d delete • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSections(b *strings.Builder) {
	incomplete, completed := service.Partition(m.tasks)

	b.WriteString(m.styles.header.Render(fmt.Sprintf("%s (%d)", output.TasksHeader, len(incomplete))))
	b.WriteString("\n")
	for i, t := range incomplete {
		m.renderRow(b, i, t)
	}

	if len(completed) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.header.Render(fmt.Sprintf("%s (%d)", output.CompletedHeader, len(completed))))
		b.WriteString("\n")
		for i, t := range completed {
			m.renderRow(b, len(incomplete)+i, t)
		}
	}
}

func (m Model) renderRow(b *strings.Builder, index int, t service.Task) {
	cursor := "  "
	if index == m.cursor {
		cursor = m.styles.selected.Render("> ")
	}
	title := strings.ReplaceAll(t.Title, "\n", " ")
	line := output.Checkbox(t.Completed) + " " + title

	style := m.styles.task
	if t.Completed {
		style = m.styles.done
	}
	b.WriteString(cursor)
	b.WriteString(style.Render(line))
	b.WriteString("\n")
}
