package models

import "time"

// Account is a registered user. The digest is whatever the configured
// one-way function produced for the password at registration.
type Account struct {
	ID             string    `json:"id"`
	PasswordDigest string    `json:"password_digest"`
	CreatedAt      time.Time `json:"created_at"`
}
