// Package tracker is the entry point the command line and TUI talk to. It
// resolves the signed-in account once per call and forwards to the
// per-account stores.
package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/checkin/internal/auth"
	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/habits"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/schedule"
	"github.com/julianstephens/checkin/internal/session"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/utils"
)

type Options struct {
	Clock        utils.Clock
	StreakPolicy constants.StreakPolicy
	Digest       auth.DigestFunc
}

type Tracker struct {
	Credentials *auth.Credentials
	Session     *session.Session
	Habits      *habits.Store
	Schedule    *schedule.Store

	clock  utils.Clock
	digest auth.DigestFunc
}

func New(kv storage.KV, opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = utils.SystemClock{}
	}
	if opts.StreakPolicy == "" {
		opts.StreakPolicy = constants.StreakResetOnGap
	}
	if opts.Digest == nil {
		opts.Digest = auth.SHA256Digest
	}

	return &Tracker{
		Credentials: auth.NewCredentials(kv),
		Session:     session.New(kv),
		Habits:      habits.NewStore(kv, habits.WithClock(opts.Clock), habits.WithStreakPolicy(opts.StreakPolicy)),
		Schedule:    schedule.NewStore(kv, schedule.WithClock(opts.Clock)),
		clock:       opts.Clock,
		digest:      opts.Digest,
	}
}

// Today is the calendar date the tracker evaluates completions against.
func (t *Tracker) Today() string {
	return utils.Today(t.clock)
}

// Register creates an account. It does not sign the new account in.
func (t *Tracker) Register(id, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	return t.Credentials.Register(id, t.digest(password))
}

// Login verifies the password and makes id the current account.
func (t *Tracker) Login(id, password string) error {
	id = strings.TrimSpace(id)
	if password == "" {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	if err := t.Credentials.Verify(id, t.digest(password)); err != nil {
		logger.Debug("Login rejected", "account", id, "error", err)
		return err
	}
	return t.Session.Login(id)
}

func (t *Tracker) Logout() error {
	return t.Session.Logout()
}

// Whoami returns the current account id, or ErrNoActiveSession.
func (t *Tracker) Whoami() (string, error) {
	return t.Session.Require()
}

func (t *Tracker) ListHabits() ([]models.HabitStatus, error) {
	id, err := t.Session.Require()
	if err != nil {
		return nil, err
	}
	return t.Habits.List(id)
}

func (t *Tracker) AddHabit(text string) error {
	id, err := t.Session.Require()
	if err != nil {
		return err
	}
	return t.Habits.Add(id, text)
}

func (t *Tracker) CompleteHabit(text string) (models.HabitStatus, error) {
	id, err := t.Session.Require()
	if err != nil {
		return models.HabitStatus{}, err
	}
	return t.Habits.Complete(id, text)
}

func (t *Tracker) RemoveHabit(text string) error {
	id, err := t.Session.Require()
	if err != nil {
		return err
	}
	return t.Habits.Remove(id, text)
}

func (t *Tracker) AddEntry(date, timeOfDay, text string) (models.ScheduleEntry, error) {
	id, err := t.Session.Require()
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return t.Schedule.Add(id, date, timeOfDay, text)
}

func (t *Tracker) ListEntries() ([]models.ScheduleEntry, error) {
	id, err := t.Session.Require()
	if err != nil {
		return nil, err
	}
	return t.Schedule.List(id)
}

func (t *Tracker) ListEntriesForDate(date string) ([]models.ScheduleEntry, error) {
	id, err := t.Session.Require()
	if err != nil {
		return nil, err
	}
	return t.Schedule.ListForDate(id, date)
}

func (t *Tracker) CompleteEntry(entryID string) (models.ScheduleEntry, error) {
	id, err := t.Session.Require()
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return t.Schedule.Complete(id, entryID)
}

func (t *Tracker) RemoveEntry(entryID string) error {
	id, err := t.Session.Require()
	if err != nil {
		return err
	}
	return t.Schedule.Remove(id, entryID)
}
