package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

type Authorizer struct {
	users UserFinder
}

func NewAuthorizer(users UserFinder) *Authorizer {
	return &Authorizer{users: users}
}

// Authorize promotes a verified identity to an AdminIdentity when its user record
// holds the admin role.
func (a *Authorizer) Authorize(ctx context.Context, id Identity) (AdminIdentity, error) {
	if id.Email == "" {
		return AdminIdentity{}, apperr.New(apperr.Unauthenticated, "UnAuthorized access")
	}
	u, err := a.users.FindUserByEmail(ctx, id.Email)
	if errors.Is(err, store.ErrNotFound) {
		return AdminIdentity{}, apperr.New(apperr.Forbidden, "forbidden")
	}
	if err != nil {
		return AdminIdentity{}, fmt.Errorf("authorize %q: %w", id.Email, err)
	}
	if !u.IsAdmin() {
		return AdminIdentity{}, apperr.New(apperr.Forbidden, "forbidden")
	}
	return AdminIdentity{id: id}, nil
}
