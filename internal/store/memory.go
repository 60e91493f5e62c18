package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

// Memory keeps every collection in insertion order. Each call is serialized, but a
// find followed by an insert is not atomic, same as Mongo without the unique index.
type Memory struct {
	mu       sync.Mutex
	unique   bool
	services []models.Service
	bookings []models.Booking
	users    []models.User
	doctors  []models.Doctor
}

type MemoryOption func(*Memory)

// WithUniqueBookings rejects a second booking for the same triple with ErrDuplicate,
// as the Mongo unique index does.
func WithUniqueBookings() MemoryOption {
	return func(m *Memory) { m.unique = true }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SeedServices replaces the service catalogue.
func (m *Memory) SeedServices(services ...models.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = m.services[:0]
	for _, s := range services {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		s.Slots = append([]string(nil), s.Slots...)
		m.services = append(m.services, s)
	}
}

func (m *Memory) ListServices(ctx context.Context) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Service, 0, len(m.services))
	for _, s := range m.services {
		s.Slots = append([]string(nil), s.Slots...)
		out = append(out, s)
	}
	return out, nil
}

func (m *Memory) ListServiceNames(ctx context.Context) ([]models.ServiceName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ServiceName, 0, len(m.services))
	for _, s := range m.services {
		out = append(out, models.ServiceName{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

func (m *Memory) BookingsOn(ctx context.Context, date string) ([]models.Booking, error) {
	return m.filterBookings(func(b models.Booking) bool { return b.Date == date }), nil
}

func (m *Memory) BookingsFor(ctx context.Context, patient string) ([]models.Booking, error) {
	return m.filterBookings(func(b models.Booking) bool { return b.Patient == patient }), nil
}

func (m *Memory) filterBookings(keep func(models.Booking) bool) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0)
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m *Memory) FindBooking(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (m *Memory) FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findTriple(key)
}

func (m *Memory) findTriple(key models.Triple) (models.Booking, error) {
	for _, b := range m.bookings {
		if b.Triple() == key {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (m *Memory) InsertBooking(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unique {
		if _, err := m.findTriple(b.Triple()); err == nil {
			return models.InsertResult{}, ErrDuplicate
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.bookings = append(m.bookings, *b)
	return models.InsertResult{Acknowledged: true, InsertedID: b.ID}, nil
}

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.userIndex(email); i >= 0 {
		return copyUser(m.users[i]), nil
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) userIndex(email string) int {
	for i, u := range m.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func (m *Memory) UpsertUser(ctx context.Context, email string, profile map[string]interface{}) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := models.CleanProfile(profile)
	if i := m.userIndex(email); i >= 0 {
		u := &m.users[i]
		if u.Profile == nil {
			u.Profile = map[string]interface{}{}
		}
		modified := int64(0)
		for k, v := range clean {
			if old, ok := u.Profile[k]; !ok || !reflect.DeepEqual(old, v) {
				modified = 1
			}
			u.Profile[k] = v
		}
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
	}
	u := models.User{ID: primitive.NewObjectID(), Email: email, Profile: clean}
	m.users = append(m.users, u)
	return models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: u.ID}, nil
}

func (m *Memory) SetRole(ctx context.Context, email, role string) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.userIndex(email)
	if i < 0 {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if m.users[i].Role != role {
		m.users[i].Role = role
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (m *Memory) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(make([]models.Doctor, 0, len(m.doctors)), m.doctors...), nil
}

func (m *Memory) InsertDoctor(ctx context.Context, d *models.Doctor) (models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	m.doctors = append(m.doctors, *d)
	return models.InsertResult{Acknowledged: true, InsertedID: d.ID}, nil
}

func (m *Memory) DeleteDoctorByEmail(ctx context.Context, email string) (models.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.doctors {
		if d.Email == email {
			m.doctors = append(m.doctors[:i], m.doctors[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

func copyUser(u models.User) models.User {
	if u.Profile != nil {
		p := make(map[string]interface{}, len(u.Profile))
		for k, v := range u.Profile {
			p[k] = v
		}
		u.Profile = p
	}
	return u
}
