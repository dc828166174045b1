package entity

import (
	"time"
)

// User is the identity record. Password holds the bcrypt hash, never the
// plaintext; email is stored lowercased and is unique, as is username.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
