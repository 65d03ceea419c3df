package model

import "time"

// User is a registered account. Users are immutable after creation;
// registering again with a known email returns the existing record.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}
