package models

import "time"

// Session is a server-side session record bound to an account. The token is
// the opaque value stored in the client cookie.
type Session struct {
	Token     string
	AccountID int64
	Expires   time.Time
}
