// Package habits owns per-account habit lists and the daily completion rules.
package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/utils"
)

var (
	ErrDuplicateHabit = errors.New("habit already exists")

	// ErrHabit is the parent of the completion and lookup failures.
	ErrHabit                 = errors.New("habit error")
	ErrHabitNotFound         = fmt.Errorf("%w: habit not found", ErrHabit)
	ErrAlreadyCompletedToday = fmt.Errorf("%w: already completed today", ErrHabit)
)

type Store struct {
	kv     storage.KV
	clock  utils.Clock
	policy constants.StreakPolicy
}

type Option func(*Store)

// WithClock sets the clock that decides "today".
func WithClock(c utils.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithStreakPolicy(p constants.StreakPolicy) Option {
	return func(s *Store) { s.policy = p }
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		clock:  utils.SystemClock{},
		policy: constants.StreakResetOnGap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) load(accountID string) ([]models.Habit, error) {
	var list []models.Habit
	if _, err := storage.GetJSON(s.kv, storage.HabitsKey(accountID), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) save(accountID string, list []models.Habit) error {
	if list == nil {
		list = []models.Habit{}
	}
	return storage.PutJSON(s.kv, storage.HabitsKey(accountID), list)
}

func indexOf(list []models.Habit, text string) int {
	for i, h := range list {
		if h.Text == text {
			return i
		}
	}
	return -1
}

func status(h models.Habit, today string) models.HabitStatus {
	return models.HabitStatus{Habit: h, CompletedToday: h.LastCompleted == today}
}

// List returns the account's habits in insertion order.
func (s *Store) List(accountID string) ([]models.HabitStatus, error) {
	list, err := s.load(accountID)
	if err != nil {
		return nil, err
	}

	today := utils.Today(s.clock)
	out := make([]models.HabitStatus, 0, len(list))
	for _, h := range list {
		out = append(out, status(h, today))
	}
	return out, nil
}

func (s *Store) Get(accountID, text string) (models.HabitStatus, error) {
	list, err := s.load(accountID)
	if err != nil {
		return models.HabitStatus{}, err
	}
	i := indexOf(list, strings.TrimSpace(text))
	if i < 0 {
		return models.HabitStatus{}, ErrHabitNotFound
	}
	return status(list[i], utils.Today(s.clock)), nil
}

// Add appends a habit with a zero streak. Adding text that is already
// present leaves the list unchanged and returns ErrDuplicateHabit.
func (s *Store) Add(accountID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: habit text is required", models.ErrValidation)
	}

	list, err := s.load(accountID)
	if err != nil {
		return err
	}
	if indexOf(list, text) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateHabit, text)
	}

	list = append(list, models.Habit{
		Text:      text,
		CreatedAt: s.clock.Now().UTC(),
	})
	if err := s.save(accountID, list); err != nil {
		return err
	}

	logger.Debug("Habit added", "account", accountID, "text", text)
	return nil
}

// Complete checks the habit off for today and returns its new state.
// A habit can be completed at most once per calendar day.
func (s *Store) Complete(accountID, text string) (models.HabitStatus, error) {
	text = strings.TrimSpace(text)

	list, err := s.load(accountID)
	if err != nil {
		return models.HabitStatus{}, err
	}
	i := indexOf(list, text)
	if i < 0 {
		return models.HabitStatus{}, ErrHabitNotFound
	}

	today := utils.Today(s.clock)
	h := list[i]
	// a completion dated after today also blocks, until the clock catches up
	if h.LastCompleted != "" && h.LastCompleted >= today {
		return status(h, today), ErrAlreadyCompletedToday
	}

	streak, err := s.nextStreak(h, today)
	if err != nil {
		return models.HabitStatus{}, err
	}
	h.Streak = streak
	h.LastCompleted = today
	list[i] = h

	if err := s.save(accountID, list); err != nil {
		return models.HabitStatus{}, err
	}

	logger.Debug("Habit completed", "account", accountID, "text", text, "streak", h.Streak)
	return status(h, today), nil
}

func (s *Store) nextStreak(h models.Habit, today string) (int, error) {
	if s.policy == constants.StreakAlwaysIncrement || h.LastCompleted == "" {
		return h.Streak + 1, nil
	}

	yesterday, err := utils.PreviousDay(today)
	if err != nil {
		return 0, err
	}
	if h.LastCompleted == yesterday {
		return h.Streak + 1, nil
	}
	return 1, nil
}

func (s *Store) Remove(accountID, text string) error {
	text = strings.TrimSpace(text)

	list, err := s.load(accountID)
	if err != nil {
		return err
	}
	i := indexOf(list, text)
	if i < 0 {
		return ErrHabitNotFound
	}

	list = append(list[:i], list[i+1:]...)
	if err := s.save(accountID, list); err != nil {
		return err
	}

	logger.Debug("Habit removed", "account", accountID, "text", text)
	return nil
}
