package models

import "time"

// Credential is one stored password. Encrypted carries
// base64(IV || AES-256-CBC ciphertext) produced by the vault package; the
// plaintext never reaches the database. Score and Entropy are snapshots of
// the analysis at save time.
type Credential struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Encrypted   string    `json:"-"`
	Website     string    `json:"website"`
	Label       string    `json:"label"`
	Score       int       `json:"score"`
	Entropy     float64   `json:"entropy"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}
