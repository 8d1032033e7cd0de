package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/planlog/pkg/plan"
)

// ErrPickerCancelled is returned when the user dismisses the picker
// without choosing a task.
var ErrPickerCancelled = fmt.Errorf("ui: picker cancelled")

type taskItem struct {
	task plan.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }

func (i taskItem) Title() string {
	mark := "[x]"
	if !i.task.Completed {
		mark = "[ ]"
	}
	return fmt.Sprintf("%s %s", mark, TaskLabel(i.task))
}

func (i taskItem) Description() string {
	if first := firstLine(i.task.Intent); first != "" {
		return first
	}
	return i.task.Key
}

type pickerKeyMap struct {
	choose key.Binding
	quit   key.Binding
}

func newPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to task"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

type pickerModel struct {
	list   list.Model
	keys   pickerKeyMap
	choice string
}

func newPickerModel(p *plan.Plan) pickerModel {
	items := make([]list.Item, len(p.Tasks))
	for i, t := range p.Tasks {
		items[i] = taskItem{task: t}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(accentColor).
		BorderForeground(accentColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(dimColor).
		BorderForeground(accentColor)

	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("plan %s", p.Tag)
	l.Styles.Title = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	l.SetShowStatusBar(false)

	return pickerModel{list: l, keys: newPickerKeyMap()}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Filtering owns the keyboard while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.choose):
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				m.choice = item.task.Key
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// PickTask runs the interactive task picker over the plan and returns the
// chosen task's key. Cancelling returns ErrPickerCancelled.
func PickTask(p *plan.Plan) (string, error) {
	final, err := tea.NewProgram(newPickerModel(p), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("ui: picker failed: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || strings.TrimSpace(m.choice) == "" {
		return "", ErrPickerCancelled
	}
	return m.choice, nil
}
