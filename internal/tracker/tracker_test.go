package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/checkin/internal/auth"
	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/habits"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/session"
	"github.com/julianstephens/checkin/internal/storage"
	"github.com/julianstephens/checkin/internal/utils"
)

func newTestTracker(t *testing.T) (*Tracker, *storage.MemoryStore, *utils.FixedClock) {
	t.Helper()
	kv := storage.NewMemoryStore()
	clock := &utils.FixedClock{T: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	return New(kv, Options{Clock: clock}), kv, clock
}

func snapshot(t *testing.T, kv *storage.MemoryStore) map[string]string {
	t.Helper()
	keys, err := kv.Keys()
	require.NoError(t, err)
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, _, err := kv.Get(k)
		require.NoError(t, err)
		out[k] = v
	}
	return out
}

func TestAuthFlow(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	require.NoError(t, tr.Register("alice", "pw1"))
	assert.ErrorIs(t, tr.Register("alice", "pw2"), auth.ErrAccountExists)

	assert.ErrorIs(t, tr.Login("alice", "wrong"), auth.ErrPasswordMismatch)
	assert.ErrorIs(t, tr.Login("bob", "pw1"), auth.ErrAccountNotFound)
	_, err := tr.Whoami()
	assert.ErrorIs(t, err, session.ErrNoActiveSession, "failed logins do not start a session")

	require.NoError(t, tr.Login(" alice ", "pw1"))
	who, err := tr.Whoami()
	require.NoError(t, err)
	assert.Equal(t, "alice", who)

	require.NoError(t, tr.Logout())
	_, err = tr.Whoami()
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestEmptyPasswordRejected(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	assert.ErrorIs(t, tr.Register("alice", ""), models.ErrValidation)

	require.NoError(t, tr.Register("alice", "pw"))
	assert.ErrorIs(t, tr.Login("alice", ""), models.ErrValidation)
	_, err := tr.Whoami()
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestNoSessionNoAccess(t *testing.T) {
	tr, kv, _ := newTestTracker(t)

	require.NoError(t, tr.Register("alice", "pw"))
	require.NoError(t, tr.Login("alice", "pw"))
	require.NoError(t, tr.AddHabit("Read"))
	e, err := tr.AddEntry("2024-05-01", "09:00", "walk")
	require.NoError(t, err)
	require.NoError(t, tr.Logout())

	before := snapshot(t, kv)

	calls := map[string]func() error{
		"ListHabits":    func() error { _, err := tr.ListHabits(); return err },
		"AddHabit":      func() error { return tr.AddHabit("Run") },
		"CompleteHabit": func() error { _, err := tr.CompleteHabit("Read"); return err },
		"RemoveHabit":   func() error { return tr.RemoveHabit("Read") },
		"AddEntry":      func() error { _, err := tr.AddEntry("2024-05-02", "10:00", "x"); return err },
		"ListEntries":   func() error { _, err := tr.ListEntries(); return err },
		"ListForDate":   func() error { _, err := tr.ListEntriesForDate("2024-05-01"); return err },
		"CompleteEntry": func() error { _, err := tr.CompleteEntry(e.ID); return err },
		"RemoveEntry":   func() error { return tr.RemoveEntry(e.ID) },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), session.ErrNoActiveSession)
		})
	}

	assert.Equal(t, before, snapshot(t, kv), "calls without a session must not write")
}

func TestAccountsAreIsolated(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	require.NoError(t, tr.Register("alice", "a"))
	require.NoError(t, tr.Register("bob", "b"))

	require.NoError(t, tr.Login("alice", "a"))
	require.NoError(t, tr.AddHabit("Read"))
	_, err := tr.AddEntry("2024-05-01", "09:00", "alice only")
	require.NoError(t, err)

	require.NoError(t, tr.Login("bob", "b"))
	hs, err := tr.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, hs)
	es, err := tr.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, es)

	require.NoError(t, tr.Login("alice", "a"))
	hs, err = tr.ListHabits()
	require.NoError(t, err)
	assert.Len(t, hs, 1)
}

func TestEndToEndDay(t *testing.T) {
	tr, kv, clock := newTestTracker(t)
	require.NoError(t, tr.Register("alice", "pw"))
	require.NoError(t, tr.Login("alice", "pw"))

	require.NoError(t, tr.AddHabit("Read"))
	assert.ErrorIs(t, tr.AddHabit("Read"), habits.ErrDuplicateHabit)

	h, err := tr.CompleteHabit("Read")
	require.NoError(t, err)
	assert.Equal(t, 1, h.Streak)
	_, err = tr.CompleteHabit("Read")
	assert.ErrorIs(t, err, habits.ErrAlreadyCompletedToday)

	first, err := tr.AddEntry(tr.Today(), "18", "gym")
	require.NoError(t, err)
	_, err = tr.AddEntry(tr.Today(), "7:30", "coffee")
	require.NoError(t, err)

	today, err := tr.ListEntriesForDate(tr.Today())
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, "07:30", today[0].Time)

	_, err = tr.CompleteEntry(first.ID)
	require.NoError(t, err)
	require.NoError(t, tr.RemoveEntry(first.ID))

	// a fresh tracker over the same store picks up the persisted session
	clock.AdvanceDays(1)
	again := New(kv, Options{Clock: clock, StreakPolicy: constants.StreakResetOnGap})
	h, err = again.CompleteHabit("Read")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Streak)

	entries, err := again.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "coffee", entries[0].Text)
}

func TestDigestIsConfigurable(t *testing.T) {
	kv := storage.NewMemoryStore()
	blake := New(kv, Options{Digest: auth.Blake2bDigest})
	require.NoError(t, blake.Register("alice", "pw"))

	sha := New(kv, Options{Digest: auth.SHA256Digest})
	assert.ErrorIs(t, sha.Login("alice", "pw"), auth.ErrPasswordMismatch)
	assert.NoError(t, blake.Login("alice", "pw"))
}
