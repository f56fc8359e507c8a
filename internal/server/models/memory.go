package models

import "time"

// Memory is a photograph owned by a patient, enriched with an AI caption and
// a small set of reminiscence questions. One question is active per day;
// QuestionIndex advances when RotatedOn falls behind the current date.
type Memory struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patientId"`
	ImageURL      string    `json:"imageUrl"`
	Description   string    `json:"description,omitempty"`
	Questions     []string  `json:"questions"`
	QuestionIndex int       `json:"questionIndex"`
	RotatedOn     time.Time `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ActiveQuestion returns the question currently shown to the patient.
func (m *Memory) ActiveQuestion() string {
	if len(m.Questions) == 0 {
		return ""
	}
	return m.Questions[m.QuestionIndex%len(m.Questions)]
}

// MemoryAnswer is the patient's recorded answer for one day.
type MemoryAnswer struct {
	ID         int64     `json:"id"`
	MemoryID   int64     `json:"memoryId"`
	AnsweredOn time.Time `json:"answeredOn"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
}
