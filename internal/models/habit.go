package models

import "time"

// Habit represents a recurring practice that can be checked off once per day
type Habit struct {
	Text          string    `json:"text"`
	Streak        int       `json:"streak"`
	LastCompleted string    `json:"last_completed,omitempty"` // YYYY-MM-DD format
	CreatedAt     time.Time `json:"created_at"`
}

// HabitStatus is a habit as seen on a particular day
type HabitStatus struct {
	Habit
	CompletedToday bool `json:"completed_today"`
}
