package domain

import "time"

// User is one registered Telegram identity and its approval state.
//
// Lifecycle: created by the registration service with Active=false and
// Notified=false; an admin approval sets Active=true and resets
// Notified=false; only the notifier loop sets Notified=true, after the
// welcome message has actually been delivered.
type User struct {
	TelegramID int64
	Name       string
	Active     bool
	Notified   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NeedsWelcome reports whether the user is waiting for the one-time
// approval notification.
func (u *User) NeedsWelcome() bool {
	return u.Active && !u.Notified
}
