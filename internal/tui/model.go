package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/checkin/internal/errors"
	"github.com/julianstephens/checkin/internal/tracker"
	"github.com/julianstephens/checkin/internal/tui/components/habits"
	"github.com/julianstephens/checkin/internal/tui/components/schedule"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateSchedule
	StateAddHabit
	StateAddEntry
	StateConfirmRemove
)

// number of tab states; the rest are overlays
const tabCount = 2

type HabitFormModel struct {
	Text string
}

type EntryFormModel struct {
	Date string
	Time string
	Text string
}

// pendingRemoval identifies what the confirm dialog will delete
type pendingRemoval struct {
	habitText string
	entryID   string
	label     string
}

type Model struct {
	tracker       *tracker.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	scheduleModel schedule.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	entryForm     *EntryFormModel
	removal       pendingRemoval
	status        string
	account       string
	quitting      bool
	width         int
	height        int
}

func NewModel(tr *tracker.Tracker) Model {
	m := Model{
		tracker:       tr,
		state:         StateHabits,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(nil, 0, 0),
		scheduleModel: schedule.New(nil, 0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads both listings from the tracker. Failures land in the status line.
func (m *Model) refresh() {
	account, err := m.tracker.Whoami()
	if err != nil {
		m.account = ""
		m.status = apperrors.UserMessage(err)
		m.habitsModel.SetHabits(nil)
		m.scheduleModel.SetEntries(nil)
		return
	}
	m.account = account

	statuses, err := m.tracker.ListHabits()
	if err != nil {
		m.status = apperrors.UserMessage(err)
		return
	}
	m.habitsModel.SetHabits(statuses)

	entries, err := m.tracker.ListEntries()
	if err != nil {
		m.status = apperrors.UserMessage(err)
		return
	}
	m.scheduleModel.SetEntries(entries)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Mark, hk.Remove)
	case StateSchedule:
		sk := schedule.DefaultKeyMap()
		keys = append(keys, sk.Add, sk.Mark, sk.Remove)
	case StateConfirmRemove:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Mark, hk.Remove}
	case StateSchedule:
		sk := schedule.DefaultKeyMap()
		actions = []key.Binding{sk.Add, sk.Mark, sk.Remove}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
