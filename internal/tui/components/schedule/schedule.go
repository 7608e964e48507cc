package schedule

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/checkin/internal/models"
)

const shortID = 8

type AddEntryMsg struct{}

type MarkEntryMsg struct {
	ID string
}

type RemoveEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.ScheduleEntry
}

func (i Item) Title() string {
	mark := "[ ]"
	if i.Entry.Done {
		mark = "[x]"
	}
	return mark + " " + i.Entry.Time + "  " + i.Entry.Text
}

func (i Item) Description() string {
	id := i.Entry.ID
	if len(id) > shortID {
		id = id[:shortID]
	}
	return i.Entry.Date + " · " + id
}

func (i Item) FilterValue() string { return i.Entry.Text }

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

func New(entries []models.ScheduleEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Schedule"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Remove}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toItems(entries []models.ScheduleEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

// SetEntries replaces the listing. Entries are expected in (date, time) order.
func (m *Model) SetEntries(entries []models.ScheduleEntry) {
	m.list.SetItems(toItems(entries))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Mark):
			// marking a finished entry again is harmless, but skip the round trip
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Entry.Done {
				return m, func() tea.Msg { return MarkEntryMsg{ID: i.Entry.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RemoveEntryMsg{ID: i.Entry.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  Nothing scheduled.\n  Press 'a' to add an entry."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
