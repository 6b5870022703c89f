package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/famly-app/identity/internal/common"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken("acc-123", "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.Subject != "acc-123" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "acc-123")
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "a@x.com")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := IssueToken("u1", "u1@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyToken_ZeroTTL(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	// expiry equal to issuance time counts as already expired
	tok, err := IssueToken("u1", "u1@x.com", secret, 0)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for ttl=0 token, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u2", "u2@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := IssueToken("u3", "u3@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// flip the last character of the signature segment
	tampered := []byte(tok)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = VerifyToken(string(tampered), secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := VerifyToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func signMapClaims(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	return tok
}

func TestVerifyToken_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok := signMapClaims(t, jwt.MapClaims{
		"sub":   "u4",
		"email": "u4@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"role":  "admin",
	}, secret)

	_, err := VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for unknown claim field, got %v", err)
	}
}

func TestVerifyToken_MissingEmailRejected(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok := signMapClaims(t, jwt.MapClaims{
		"sub": "u5",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, secret)

	_, err := VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for missing email claim, got %v", err)
	}
}

func TestVerifyToken_MissingExpiryRejected(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok := signMapClaims(t, jwt.MapClaims{
		"sub":   "u6",
		"email": "u6@x.com",
	}, secret)

	_, err := VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for token without expiry, got %v", err)
	}
}

func TestVerifyToken_UnexpectedSigningMethod(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub":   "u7",
		"email": "u7@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for HS384-signed token, got %v", err)
	}
}
