package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/checkin/internal/models"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	Text string
}

type RemoveHabitMsg struct {
	Text string
}

type Item struct {
	Status models.HabitStatus
}

func (i Item) Title() string {
	if i.Status.CompletedToday {
		return "✓ " + i.Status.Text
	}
	return "○ " + i.Status.Text
}

func (i Item) Description() string {
	streak := fmt.Sprintf("streak %d", i.Status.Streak)
	if i.Status.CompletedToday {
		return streak + " · completed today"
	}
	if i.Status.LastCompleted == "" {
		return streak + " · never completed"
	}
	return streak + " · last " + i.Status.LastCompleted
}

func (i Item) FilterValue() string { return i.Status.Text }

type KeyMap struct {
	Add    key.Binding
	Mark   key.Binding
	Remove key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mark done"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(statuses []models.HabitStatus, width, height int) Model {
	l := list.New(toItems(statuses), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Remove}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Remove}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(statuses []models.HabitStatus) []list.Item {
	items := make([]list.Item, len(statuses))
	for i, s := range statuses {
		items[i] = Item{Status: s}
	}
	return items
}

func (m *Model) SetHabits(statuses []models.HabitStatus) {
	m.list.SetItems(toItems(statuses))
}

// Filtering reports whether keystrokes are currently going to the filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Status.CompletedToday {
				return m, func() tea.Msg { return MarkHabitMsg{Text: i.Status.Text} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RemoveHabitMsg{Text: i.Status.Text} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
