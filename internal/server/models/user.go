// Package models holds the rows stored by the backend.
package models

import "time"

// User is an account able to obtain access tokens. PasswordHash is an
// argon2id hash in the encoded form produced by cryptox.HashSecret.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
