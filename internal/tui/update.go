package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/checkin/internal/errors"
	"github.com/julianstephens/checkin/internal/tui/components/habits"
	"github.com/julianstephens/checkin/internal/tui/components/schedule"
	"github.com/julianstephens/checkin/internal/utils"
)

// rows taken by the tab bar, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(size.Width-h, size.Height-v-chromeHeight)
		m.scheduleModel.SetSize(size.Width-h, size.Height-v-chromeHeight)
	}

	switch m.state {
	case StateAddHabit, StateAddEntry:
		return m.updateForm(msg)
	case StateConfirmRemove:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeFiltering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}

	case habits.AddHabitMsg:
		return m, m.openHabitForm()

	case habits.MarkHabitMsg:
		status, err := m.tracker.CompleteHabit(msg.Text)
		if err != nil {
			m.status = apperrors.UserMessage(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Checked off %q. Streak: %d", status.Text, status.Streak)
		m.refresh()
		return m, nil

	case habits.RemoveHabitMsg:
		m.removal = pendingRemoval{habitText: msg.Text, label: fmt.Sprintf("habit %q", msg.Text)}
		m.previousState = m.state
		m.state = StateConfirmRemove
		return m, nil

	case schedule.AddEntryMsg:
		return m, m.openEntryForm()

	case schedule.MarkEntryMsg:
		entry, err := m.tracker.CompleteEntry(msg.ID)
		if err != nil {
			m.status = apperrors.UserMessage(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Done: %s %s %s", entry.Date, entry.Time, entry.Text)
		m.refresh()
		return m, nil

	case schedule.RemoveEntryMsg:
		m.removal = pendingRemoval{entryID: msg.ID, label: "this schedule entry"}
		m.previousState = m.state
		m.state = StateConfirmRemove
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateSchedule:
		m.scheduleModel, cmd = m.scheduleModel.Update(msg)
	}
	return m, cmd
}

func (m Model) activeFiltering() bool {
	switch m.state {
	case StateHabits:
		return m.habitsModel.Filtering()
	case StateSchedule:
		return m.scheduleModel.Filtering()
	}
	return false
}

func notBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " cannot be empty")
		}
		return nil
	}
}

func (m *Model) openHabitForm() tea.Cmd {
	m.habitForm = &HabitFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New habit").
				Placeholder("read for 20 minutes").
				Value(&m.habitForm.Text).
				Validate(notBlank("habit")),
		),
	)
	m.previousState = m.state
	m.state = StateAddHabit
	return m.form.Init()
}

func (m *Model) openEntryForm() tea.Cmd {
	m.entryForm = &EntryFormModel{Date: m.tracker.Today()}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&m.entryForm.Date).
				Validate(func(s string) error {
					_, err := utils.NormalizeDate(s)
					return err
				}),
			huh.NewInput().
				Title("Time").
				Description("HH:MM, or just the hour").
				Value(&m.entryForm.Time).
				Validate(func(s string) error {
					_, err := utils.NormalizeTime(s)
					return err
				}),
			huh.NewInput().
				Title("What").
				Value(&m.entryForm.Text).
				Validate(notBlank("entry text")),
		),
	)
	m.previousState = m.state
	m.state = StateAddEntry
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
	case huh.StateCompleted:
		m.submitForm()
		m.state = m.previousState
		m.form = nil
	}
	return m, cmd
}

func (m *Model) submitForm() {
	switch m.state {
	case StateAddHabit:
		if err := m.tracker.AddHabit(m.habitForm.Text); err != nil {
			m.status = apperrors.UserMessage(err)
			return
		}
		m.status = fmt.Sprintf("Tracking %q", strings.TrimSpace(m.habitForm.Text))
	case StateAddEntry:
		entry, err := m.tracker.AddEntry(m.entryForm.Date, m.entryForm.Time, m.entryForm.Text)
		if err != nil {
			m.status = apperrors.UserMessage(err)
			return
		}
		m.status = fmt.Sprintf("Scheduled %q for %s %s", entry.Text, entry.Date, entry.Time)
	}
	m.refresh()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Confirm):
		var err error
		if m.removal.entryID != "" {
			err = m.tracker.RemoveEntry(m.removal.entryID)
		} else {
			err = m.tracker.RemoveHabit(m.removal.habitText)
		}
		if err != nil {
			m.status = apperrors.UserMessage(err)
		} else {
			m.status = "Removed " + m.removal.label
			m.refresh()
		}
		m.removal = pendingRemoval{}
		m.state = m.previousState
	case key.Matches(k, m.keys.Cancel):
		m.removal = pendingRemoval{}
		m.state = m.previousState
	}
	return m, nil
}
