// Package auth implements the credential primitives of the identity server:
// bcrypt hashing of login secrets and issuance/verification of signed access
// tokens (JWT, HS256). The signing key is process-wide state loaded once at
// startup and never rotated during the process lifetime.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/famly-app/identity/internal/common"
)

// Claims is the payload embedded in an access token: the account id as the
// registered subject plus the account email at issuance time. The email is a
// snapshot; tokens issued before an email change keep the old value until
// they expire.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// claimsWire mirrors the exact JSON shape of Claims. Decoding goes through it
// so that payloads with unknown fields, or without a subject or email, are
// rejected instead of silently accepted.
type claimsWire struct {
	Subject   string           `json:"sub"`
	Email     string           `json:"email"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w claimsWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	if w.Subject == "" || w.Email == "" {
		return errors.New("missing required claim")
	}

	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   w.Subject,
		ExpiresAt: w.ExpiresAt,
		IssuedAt:  w.IssuedAt,
	}
	c.Email = w.Email
	return nil
}

// IssueToken signs the identity of an account into an opaque bearer token
// with an absolute expiry of now+ttl.
func IssueToken(accountID, email string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	})

	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the signature and expiry of an access token and returns
// its claims. Verification is pure: any failure (bad signature, unexpected
// signing method, malformed or over-specified payload, missing or elapsed
// expiry) is reported as common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
