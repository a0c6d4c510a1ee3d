package domain

import "time"

// User is the domain model for people who report, work on, or observe
// tickets. Identity is supplied by the caller; there is no credential
// material here.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	CreatedAt time.Time
}

// Preferences stores per-user display settings.
type Preferences struct {
	Theme       string
	DefaultPage string
	PageSize    int
}

// DefaultPreferences returns the settings applied before a user saves any.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:       "light",
		DefaultPage: "tickets",
		PageSize:    20,
	}
}
