package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateSchedule:
		content = docStyle.Render(m.scheduleModel.View())
	case StateAddHabit, StateAddEntry:
		content = docStyle.Render(m.form.View())
	case StateConfirmRemove:
		content = m.viewConfirmRemove()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}

	var tabs []string
	for i, title := range []string{"Habits", "Schedule"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}

	who := "not logged in"
	if m.account != "" {
		who = m.account
	}
	tabs = append(tabs, dateStyle.Render(fmt.Sprintf("%s · %s", m.tracker.Today(), who)))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmRemove() string {
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Remove "+m.removal.label+"?"),
			"",
			"[y] Remove   [n] Cancel",
		),
	)
}
