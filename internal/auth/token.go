package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
)

// TokenTTL is how long an issued token stays valid. There is no refresh.
const TokenTTL = time.Hour

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with the secret loaded at startup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type IssuerOption func(*Issuer)

// WithClock overrides time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, opts ...IssuerOption) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is not configured")
	}
	i := &Issuer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i, nil
}

// Issue creates a token binding the email claim, expiring TokenTTL from now.
func (i *Issuer) Issue(email string) (string, error) {
	now := i.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the identity the token carries.
// An empty token is Unauthenticated; anything else that fails is Forbidden.
func (i *Issuer) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, apperr.New(apperr.Unauthenticated, "UnAuthorized access")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, apperr.Wrap(apperr.Forbidden, "Forbidden access", err)
	}
	if claims.Email == "" {
		return Identity{}, apperr.New(apperr.Forbidden, "Forbidden access")
	}
	return Identity{Email: claims.Email}, nil
}
