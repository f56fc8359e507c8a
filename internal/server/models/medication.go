package models

import "time"

// Medication is a scheduled medication for a patient, with free-form dosage
// text. Taken mirrors Routine.IsCompleted: a flag, not a history.
type Medication struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patientId"`
	Name      string    `json:"name"`
	Dosage    *string   `json:"dosage,omitempty"`
	TimeOfDay *string   `json:"timeOfDay,omitempty"`
	Frequency *string   `json:"frequency,omitempty"`
	Taken     bool      `json:"taken"`
	CreatedAt time.Time `json:"createdAt"`
}
