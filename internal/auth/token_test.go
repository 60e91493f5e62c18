package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
)

func TestIssueVerify(t *testing.T) {
	iss, err := NewIssuer("test-secret")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	tok, err := iss.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Email != "a@x.com" {
		t.Fatalf("email = %q", id.Email)
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenExpiresAfterOneHour(t *testing.T) {
	issued := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	now := issued
	clock := func() time.Time { return now }
	iss, _ := NewIssuer("test-secret", WithClock(clock))
	tok, err := iss.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = issued.Add(59 * time.Minute)
	if _, err := iss.Verify(tok); err != nil {
		t.Fatalf("expected token valid before expiry, got %v", err)
	}

	now = issued.Add(time.Hour + time.Second)
	_, err = iss.Verify(tok)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected Forbidden after expiry, got %v", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	iss, _ := NewIssuer("test-secret")
	other, _ := NewIssuer("other-secret")
	foreign, _ := other.Issue("a@x.com")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "a@x.com", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noEmail := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	blank, _ := noEmail.SignedString([]byte("test-secret"))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@x.com"})
	forever, _ := noExpiry.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", apperr.ErrUnauthenticated},
		{"garbage", "not-a-token", apperr.ErrForbidden},
		{"wrong secret", foreign, apperr.ErrForbidden},
		{"alg none", unsigned, apperr.ErrForbidden},
		{"missing email", blank, apperr.ErrForbidden},
		{"missing expiry", forever, apperr.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
