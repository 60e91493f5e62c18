// Package store is the document store behind the portal: services, bookings, users
// and doctors. Mongo is the production implementation, Memory backs tests and local
// runs without a database.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type Store interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	ListServiceNames(ctx context.Context) ([]models.ServiceName, error)

	BookingsOn(ctx context.Context, date string) ([]models.Booking, error)
	BookingsFor(ctx context.Context, patient string) ([]models.Booking, error)
	FindBooking(ctx context.Context, id primitive.ObjectID) (models.Booking, error)
	FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) (models.InsertResult, error)

	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpsertUser(ctx context.Context, email string, profile map[string]interface{}) (models.UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (models.UpdateResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	InsertDoctor(ctx context.Context, d *models.Doctor) (models.InsertResult, error)
	DeleteDoctorByEmail(ctx context.Context, email string) (models.DeleteResult, error)
}

var (
	_ Store = (*Mongo)(nil)
	_ Store = (*Memory)(nil)
)
