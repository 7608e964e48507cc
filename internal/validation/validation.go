package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDoubleBooked    ConflictType = "double_booked"
	ConflictMissingEntryID  ConflictType = "missing_entry_id"
	ConflictDuplicateID     ConflictType = "duplicate_entry_id"
	ConflictInvalidDateTime ConflictType = "invalid_datetime"
)

// Conflict represents a detected problem in a set of schedule entries
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Time        string   // HH:MM format (if applicable)
	EntryIDs    []string // IDs of entries involved
}

// Warning reports whether the conflict is advisory. Double bookings are
// allowed; everything else means the stored data is corrupt.
func (c Conflict) Warning() bool {
	return c.Type == ConflictDoubleBooked
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) Errors() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if !c.Warning() {
			out = append(out, c)
		}
	}
	return out
}

func (vr *ValidationResult) Warnings() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Warning() {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks schedule entries for conflicts
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateEntries checks ids, date and time formats, and open entries that
// share a slot. Completed entries never count as double booked.
func (v *Validator) ValidateEntries(entries []models.ScheduleEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool)
	for _, e := range entries {
		switch {
		case e.ID == "":
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingEntryID,
				Description: fmt.Sprintf("Entry %q has a missing or repeated entry id", e.Text),
				Date:        e.Date,
				Time:        e.Time,
			})
		case seen[e.ID]:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Entry %s has a missing or repeated entry id", e.ID),
				EntryIDs:    []string{e.ID},
			})
		}
		seen[e.ID] = true

		if d, err := utils.NormalizeDate(e.Date); err != nil || d != e.Date {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Entry %s has a malformed date %q", e.ID, e.Date),
				EntryIDs:    []string{e.ID},
			})
		}
		if t, err := utils.NormalizeTime(e.Time); err != nil || t != e.Time {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Entry %s has a malformed time %q", e.ID, e.Time),
				EntryIDs:    []string{e.ID},
			})
		}
	}

	result.Conflicts = append(result.Conflicts, v.doubleBookings(entries)...)
	return result
}

func (v *Validator) doubleBookings(entries []models.ScheduleEntry) []Conflict {
	type slot struct{ date, time string }

	bySlot := make(map[slot][]models.ScheduleEntry)
	for _, e := range entries {
		if e.Done {
			continue
		}
		s := slot{e.Date, e.Time}
		bySlot[s] = append(bySlot[s], e)
	}

	var conflicts []Conflict
	for s, group := range bySlot {
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		texts := make([]string, len(group))
		for i, e := range group {
			ids[i] = e.ID
			texts[i] = e.Text
		}
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDoubleBooked,
			Description: fmt.Sprintf("%d open entries share %s %s: %q", len(group), s.date, s.time, texts),
			Date:        s.date,
			Time:        s.time,
			EntryIDs:    ids,
		})
	}

	// map order is random
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Date != conflicts[j].Date {
			return conflicts[i].Date < conflicts[j].Date
		}
		return conflicts[i].Time < conflicts[j].Time
	})
	return conflicts
}
