package accounts

import "time"

// Account represents a registered identity. The secret digest is the bcrypt
// output stored in place of the plaintext secret; it is excluded from JSON so
// it can never appear in an API response. ID and CreatedAt are assigned at
// creation and immutable afterwards.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SecretDigest string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
