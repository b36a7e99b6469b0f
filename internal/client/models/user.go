// Package models contains the client-side data model: the authenticated user
// profile, linked resumes, vacancy search results, search filters and
// persisted auto-apply schedulers. All types mirror the backend JSON contract.
package models

// User is the profile returned by GET /users/me. It is populated only after
// a successful session validation.
type User struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	Role       string `json:"role"`
}

// TelegramAuth is the payload produced by the Telegram login widget and
// forwarded verbatim to POST /telegram/auth.
type TelegramAuth struct {
	ID        int64  `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date" validate:"required"`
	Hash      string `json:"hash" validate:"required"`
}
