package models

import "time"

// EmergencyLog is one SOS event raised by a patient. Append-only except for
// the Resolved flag, which a caretaker sets.
type EmergencyLog struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patientId"`
	Status    string    `json:"status"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"timestamp"`
}
