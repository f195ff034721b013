// Package models holds the persisted entities of the server.
package models

import (
	"database/sql"
	"time"
)

// User is an account. PasswordHash is the PBKDF2 verification hash of the
// master password and Salt its per-user salt, both hex-encoded. The master
// password itself is never stored.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Salt         string       `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	LastLogin    sql.NullTime `json:"-"`
}
