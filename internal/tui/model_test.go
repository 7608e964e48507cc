package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/tracker"
	"github.com/julianstephens/checkin/internal/utils"
)

func newTestModel(t *testing.T, login bool) (Model, *tracker.Tracker) {
	t.Helper()
	clock := &utils.FixedClock{T: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	tr := tracker.New(storage.NewMemoryStore(), tracker.Options{Clock: clock})
	if login {
		if err := tr.Register("alice", "pw"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if err := tr.Login("alice", "pw"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	return NewModel(tr), tr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and then any message its command produces.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func TestNoSessionShowsLoginNotice(t *testing.T) {
	m, _ := newTestModel(t, false)

	view := m.View()
	if !strings.Contains(view, "not logged in") {
		t.Errorf("expected tab bar to mention missing session, got:\n%s", view)
	}
	if !strings.Contains(m.status, "checkin login") {
		t.Errorf("expected login hint in status, got %q", m.status)
	}
}

func TestTabSwitching(t *testing.T) {
	m, _ := newTestModel(t, true)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateSchedule {
		t.Fatalf("expected schedule tab, got %v", m.state)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHabits {
		t.Fatalf("expected tab to wrap to habits, got %v", m.state)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateSchedule {
		t.Errorf("expected shift+tab to go back to schedule, got %v", m.state)
	}
}

func TestMarkHabitFromList(t *testing.T) {
	m, tr := newTestModel(t, true)
	if err := tr.AddHabit("stretch"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	m.refresh()
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m = send(t, m, runes("m"))

	statuses, err := tr.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(statuses) != 1 || !statuses[0].CompletedToday || statuses[0].Streak != 1 {
		t.Fatalf("expected stretch completed with streak 1, got %+v", statuses)
	}
	if !strings.Contains(m.status, "Streak: 1") {
		t.Errorf("unexpected status %q", m.status)
	}

	// a second mark on a completed habit is swallowed by the list
	m = send(t, m, runes("m"))
	if strings.Contains(m.status, "Already") {
		t.Errorf("completed habit should not be re-submitted, status %q", m.status)
	}
}

func TestRemoveEntryAsksFirst(t *testing.T) {
	m, tr := newTestModel(t, true)
	if _, err := tr.AddEntry("2024-05-01", "09:00", "standup"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	m.refresh()
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = send(t, m, runes("d"))
	if m.state != StateConfirmRemove {
		t.Fatalf("expected confirm dialog, got state %v", m.state)
	}

	m = send(t, m, runes("n"))
	if m.state != StateSchedule {
		t.Fatalf("cancel should return to schedule, got %v", m.state)
	}
	entries, _ := tr.ListEntries()
	if len(entries) != 1 {
		t.Fatalf("cancel must not remove the entry, have %d", len(entries))
	}

	m = send(t, m, runes("d"))
	m = send(t, m, runes("y"))
	entries, _ = tr.ListEntries()
	if len(entries) != 0 {
		t.Errorf("expected entry removed, have %d", len(entries))
	}
	if m.state != StateSchedule {
		t.Errorf("expected to land back on schedule, got %v", m.state)
	}
}

func TestAddOpensFormAndEscCancels(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m = send(t, m, runes("a"))
	if m.state != StateAddHabit || m.form == nil {
		t.Fatalf("expected habit form, got state %v", m.state)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits || m.form != nil {
		t.Errorf("esc should close the form, got state %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, true)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).quitting {
		t.Error("model should be marked as quitting")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}
