package domain

import "time"

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is what the session store keeps for a logged-in admin.
type Session struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
}
