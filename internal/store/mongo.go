package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

const (
	servicesCollection = "services"
	bookingsCollection = "bookings"
	usersCollection    = "users"
	doctorsCollection  = "doctors"
)

type Mongo struct {
	DB *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{DB: db}
}

// EnsureIndexes creates the unique indexes that move duplicate detection into the
// store: one booking per (treatment, date, patient) and one user per email.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.DB.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "treatment", Value: 1}, {Key: "date", Value: 1}, {Key: "patient", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("booking_triple"),
	})
	if err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}
	_, err = m.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_email"),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}
	return nil
}

func (m *Mongo) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := findAll(ctx, m.DB.Collection(servicesCollection), bson.M{}, &services); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (m *Mongo) ListServiceNames(ctx context.Context) ([]models.ServiceName, error) {
	var names []models.ServiceName
	opts := options.Find().SetProjection(bson.M{"name": 1})
	if err := findAll(ctx, m.DB.Collection(servicesCollection), bson.M{}, &names, opts); err != nil {
		return nil, fmt.Errorf("list service names: %w", err)
	}
	return names, nil
}

func (m *Mongo) BookingsOn(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := findAll(ctx, m.DB.Collection(bookingsCollection), bson.M{"date": date}, &bookings); err != nil {
		return nil, fmt.Errorf("bookings on %q: %w", date, err)
	}
	return bookings, nil
}

func (m *Mongo) BookingsFor(ctx context.Context, patient string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := findAll(ctx, m.DB.Collection(bookingsCollection), bson.M{"patient": patient}, &bookings); err != nil {
		return nil, fmt.Errorf("bookings for %q: %w", patient, err)
	}
	return bookings, nil
}

func (m *Mongo) FindBooking(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	var b models.Booking
	err := m.DB.Collection(bookingsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	return b, findError(err, "find booking "+id.Hex())
}

func (m *Mongo) FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error) {
	var b models.Booking
	filter := bson.M{"treatment": key.Treatment, "date": key.Date, "patient": key.Patient}
	err := m.DB.Collection(bookingsCollection).FindOne(ctx, filter).Decode(&b)
	return b, findError(err, fmt.Sprintf("find booking (%s, %s, %s)", key.Treatment, key.Date, key.Patient))
}

func (m *Mongo) InsertBooking(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return insert(ctx, m.DB.Collection(bookingsCollection), b)
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := m.DB.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, findError(err, fmt.Sprintf("find user %q", email))
}

func (m *Mongo) UpsertUser(ctx context.Context, email string, profile map[string]interface{}) (models.UpdateResult, error) {
	set := bson.M{"email": email}
	for k, v := range models.CleanProfile(profile) {
		set[k] = v
	}
	opts := options.Update().SetUpsert(true)
	res, err := m.DB.Collection(usersCollection).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("upsert user %q: %w", email, err)
	}
	return updateResult(res), nil
}

func (m *Mongo) SetRole(ctx context.Context, email, role string) (models.UpdateResult, error) {
	res, err := m.DB.Collection(usersCollection).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("set role for %q: %w", email, err)
	}
	return updateResult(res), nil
}

func (m *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := findAll(ctx, m.DB.Collection(usersCollection), bson.M{}, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (m *Mongo) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := findAll(ctx, m.DB.Collection(doctorsCollection), bson.M{}, &doctors); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (m *Mongo) InsertDoctor(ctx context.Context, d *models.Doctor) (models.InsertResult, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	return insert(ctx, m.DB.Collection(doctorsCollection), d)
}

func (m *Mongo) DeleteDoctorByEmail(ctx context.Context, email string) (models.DeleteResult, error) {
	res, err := m.DB.Collection(doctorsCollection).DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete doctor %q: %w", email, err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func insert(ctx context.Context, coll *mongo.Collection, doc interface{}) (models.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, fmt.Errorf("insert into %s: %w", coll.Name(), ErrDuplicate)
		}
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// findError maps a missing document to ErrNotFound and wraps any other failure
// with the operation name.
func findError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
