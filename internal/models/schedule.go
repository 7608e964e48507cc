package models

import "time"

// ScheduleEntry is a one-off item pinned to a date and time of day.
// Entries are addressed by ID; their position in a listing is not stable.
type ScheduleEntry struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"` // YYYY-MM-DD format
	Time        string     `json:"time"` // HH:MM format
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Before reports whether e sorts strictly before other by (date, time).
// Date and time are stored zero-padded, so string order is chronological.
func (e ScheduleEntry) Before(other ScheduleEntry) bool {
	if e.Date != other.Date {
		return e.Date < other.Date
	}
	return e.Time < other.Time
}
