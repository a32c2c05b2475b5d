package domain

import "time"

// Editor is the privileged account allowed to change the catalog.
type Editor struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// RecordLogin stamps a successful login.
func (e *Editor) RecordLogin() {
	now := time.Now()
	e.LastLoginAt = now
	e.UpdatedAt = now
}
