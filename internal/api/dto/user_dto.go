package dto

import "time"

// UserResponse represents a user with presence annotation.
type UserResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Avatar   string     `json:"avatar,omitempty"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

// PreferencesPayload is the request and response shape for display settings.
type PreferencesPayload struct {
	Theme       string `json:"theme"`
	DefaultPage string `json:"defaultPage"`
	PageSize    int    `json:"pageSize"`
}
