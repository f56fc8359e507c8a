package models

import "time"

// Routine is a daily task for a patient. Only the current completion state
// is kept; toggling leaves no history.
type Routine struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patientId"`
	Task        string    `json:"task"`
	TimeOfDay   *string   `json:"timeOfDay,omitempty"`
	Frequency   *string   `json:"frequency,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}
