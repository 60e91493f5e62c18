// Package directory reads and writes user and doctor records and issues tokens on
// login. Mutations that need the admin role take an auth.AdminIdentity.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type Store interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpsertUser(ctx context.Context, email string, profile map[string]interface{}) (models.UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (models.UpdateResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	InsertDoctor(ctx context.Context, d *models.Doctor) (models.InsertResult, error)
	DeleteDoctorByEmail(ctx context.Context, email string) (models.DeleteResult, error)
}

type Directory struct {
	store  Store
	issuer *auth.Issuer
	log    zerolog.Logger
}

func New(s Store, issuer *auth.Issuer, log zerolog.Logger) *Directory {
	return &Directory{store: s, issuer: issuer, log: log.With().Str("component", "directory").Logger()}
}

// Login is the answer to an upsert: the store acknowledgement and a fresh token.
type Login struct {
	Result models.UpdateResult `json:"result"`
	Token  string              `json:"token"`
}

func (d *Directory) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := d.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, apperr.Wrap(apperr.NotFound, "user not found", err)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// UpsertUser creates or updates the user at email and issues a token for it.
// Reserved keys in profile (email, role, _id) are ignored.
func (d *Directory) UpsertUser(ctx context.Context, email string, profile map[string]interface{}) (Login, error) {
	if email == "" {
		return Login{}, apperr.New(apperr.Validation, "email is required")
	}
	res, err := d.store.UpsertUser(ctx, email, models.CleanProfile(profile))
	if err != nil {
		return Login{}, fmt.Errorf("upsert user: %w", err)
	}
	token, err := d.issuer.Issue(email)
	if err != nil {
		return Login{}, fmt.Errorf("issue token: %w", err)
	}
	return Login{Result: res, Token: token}, nil
}

// IsAdmin reports whether email holds the admin role. Unknown users are not admins.
func (d *Directory) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := d.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return u.IsAdmin(), nil
}

func (d *Directory) SetRole(ctx context.Context, by auth.AdminIdentity, email, role string) (models.UpdateResult, error) {
	res, err := d.store.SetRole(ctx, email, role)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("set role: %w", err)
	}
	d.log.Info().Str("by", by.Email()).Str("email", email).Str("role", role).Int64("matched", res.MatchedCount).Msg("role granted")
	return res, nil
}

func (d *Directory) ListUsers(ctx context.Context, _ auth.Identity) ([]models.User, error) {
	users, err := d.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	return users, nil
}

func (d *Directory) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := d.store.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	if doctors == nil {
		doctors = make([]models.Doctor, 0)
	}
	return doctors, nil
}

func (d *Directory) InsertDoctor(ctx context.Context, by auth.AdminIdentity, doc models.Doctor) (models.InsertResult, error) {
	res, err := d.store.InsertDoctor(ctx, &doc)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert doctor: %w", err)
	}
	d.log.Info().Str("by", by.Email()).Str("email", doc.Email).Msg("doctor added")
	return res, nil
}

func (d *Directory) DeleteDoctorByEmail(ctx context.Context, by auth.AdminIdentity, email string) (models.DeleteResult, error) {
	res, err := d.store.DeleteDoctorByEmail(ctx, email)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete doctor: %w", err)
	}
	d.log.Info().Str("by", by.Email()).Str("email", email).Int64("deleted", res.DeletedCount).Msg("doctor removed")
	return res, nil
}
