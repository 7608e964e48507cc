// Package schedule owns per-account schedule entries. Entries are stored in
// insertion order and always listed chronologically.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/utils"
)

var (
	ErrEntryNotFound = errors.New("schedule entry not found")
	ErrAmbiguousID   = errors.New("entry id prefix matches more than one entry")
)

// MinIDPrefix is the shortest id prefix accepted when addressing an entry.
const MinIDPrefix = 4

type Store struct {
	kv    storage.KV
	clock utils.Clock
	newID func() string
}

type Option func(*Store)

func WithClock(c utils.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		clock: utils.SystemClock{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) load(accountID string) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if _, err := storage.GetJSON(s.kv, storage.ScheduleKey(accountID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) save(accountID string, entries []models.ScheduleEntry) error {
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return storage.PutJSON(s.kv, storage.ScheduleKey(accountID), entries)
}

// find resolves an exact id, or a unique prefix of at least MinIDPrefix characters.
func find(entries []models.ScheduleEntry, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrEntryNotFound
	}

	match := -1
	for i, e := range entries {
		if e.ID == id {
			return i, nil
		}
		if len(id) >= MinIDPrefix && strings.HasPrefix(e.ID, id) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, ErrEntryNotFound
	}
	return match, nil
}

func sorted(entries []models.ScheduleEntry) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// Add validates and stores a new entry. date must be YYYY-MM-DD; time may be
// HH:MM, H:MM or a bare hour.
func (s *Store) Add(accountID, date, timeOfDay, text string) (models.ScheduleEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ScheduleEntry{}, fmt.Errorf("%w: entry text is required", models.ErrValidation)
	}
	normDate, err := utils.NormalizeDate(date)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	normTime, err := utils.NormalizeTime(timeOfDay)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	entries, err := s.load(accountID)
	if err != nil {
		return models.ScheduleEntry{}, err
	}

	entry := models.ScheduleEntry{
		ID:        s.newID(),
		Date:      normDate,
		Time:      normTime,
		Text:      text,
		CreatedAt: s.clock.Now().UTC(),
	}
	entries = append(entries, entry)
	if err := s.save(accountID, entries); err != nil {
		return models.ScheduleEntry{}, err
	}

	logger.Debug("Schedule entry added", "account", accountID, "id", entry.ID, "date", entry.Date, "time", entry.Time)
	return entry, nil
}

// List returns every entry ordered by (date, time); equal slots keep
// insertion order.
func (s *Store) List(accountID string) ([]models.ScheduleEntry, error) {
	entries, err := s.load(accountID)
	if err != nil {
		return nil, err
	}
	return sorted(entries), nil
}

// ListForDate returns the entries on one day, ordered by time.
func (s *Store) ListForDate(accountID, date string) ([]models.ScheduleEntry, error) {
	day, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	entries, err := s.List(accountID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Get(accountID, id string) (models.ScheduleEntry, error) {
	entries, err := s.load(accountID)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	i, err := find(entries, id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return entries[i], nil
}

// Complete marks an entry done. The entry stays in the list; completing an
// entry that is already done changes nothing.
func (s *Store) Complete(accountID, id string) (models.ScheduleEntry, error) {
	entries, err := s.load(accountID)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	i, err := find(entries, id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if entries[i].Done {
		return entries[i], nil
	}

	now := s.clock.Now().UTC()
	entries[i].Done = true
	entries[i].CompletedAt = &now
	if err := s.save(accountID, entries); err != nil {
		return models.ScheduleEntry{}, err
	}

	logger.Debug("Schedule entry completed", "account", accountID, "id", entries[i].ID)
	return entries[i], nil
}

// Remove deletes an entry outright.
func (s *Store) Remove(accountID, id string) error {
	entries, err := s.load(accountID)
	if err != nil {
		return err
	}
	i, err := find(entries, id)
	if err != nil {
		return err
	}

	removed := entries[i].ID
	entries = append(entries[:i], entries[i+1:]...)
	if err := s.save(accountID, entries); err != nil {
		return err
	}

	logger.Debug("Schedule entry removed", "account", accountID, "id", removed)
	return nil
}
