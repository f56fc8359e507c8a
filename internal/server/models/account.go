package models

import "time"

// Role is the closed set of account roles. Keeping it a dedicated type forces
// every authorization branch through an explicit switch.
type Role string

const (
	RoleCaretaker Role = "caretaker"
	RolePatient   Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCaretaker, RolePatient:
		return true
	}
	return false
}

// Account is a caretaker or patient identity. CaretakerID is set only on
// patient accounts and references the owning caretaker; PhoneNumber is set
// only on caretaker accounts.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Salt         []byte    `json:"-"`
	Role         Role      `json:"role"`
	CaretakerID  *int64    `json:"caretakerId,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
