// Package booking admits new bookings, at most one per (treatment, date, patient).
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type Store interface {
	FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) (models.InsertResult, error)
}

// Admission is the outcome of Submit. A conflict is a normal outcome, not an error.
type Admission struct {
	Success     bool                 `json:"success"`
	Result      *models.InsertResult `json:"result,omitempty"`
	Conflicting *models.Booking      `json:"booking,omitempty"`
}

type Controller struct {
	store Store
	log   zerolog.Logger
}

func NewController(s Store, log zerolog.Logger) *Controller {
	return &Controller{store: s, log: log.With().Str("component", "booking").Logger()}
}

// Submit looks for a booking with the same triple and inserts b only if none exists.
// The lookup and the insert are separate store calls: two concurrent submissions of
// the same triple can both be admitted unless the store enforces a unique index, in
// which case the index decides and the loser gets the winner back as the conflict.
// Two patients booking the same slot are both admitted.
func (c *Controller) Submit(ctx context.Context, b models.Booking) (Admission, error) {
	key := b.Triple()
	existing, err := c.store.FindBookingByTriple(ctx, key)
	switch {
	case err == nil:
		return conflict(existing), nil
	case !errors.Is(err, store.ErrNotFound):
		return Admission{}, fmt.Errorf("check booking: %w", err)
	}

	res, err := c.store.InsertBooking(ctx, &b)
	if errors.Is(err, store.ErrDuplicate) {
		winner, ferr := c.store.FindBookingByTriple(ctx, key)
		if ferr != nil {
			return Admission{}, fmt.Errorf("reload duplicate booking: %w", ferr)
		}
		c.log.Info().Str("treatment", key.Treatment).Str("date", key.Date).Msg("duplicate booking rejected by index")
		return conflict(winner), nil
	}
	if err != nil {
		return Admission{}, fmt.Errorf("insert booking: %w", err)
	}
	c.log.Debug().Str("treatment", b.Treatment).Str("date", b.Date).Str("slot", b.Slot).Msg("booking admitted")
	return Admission{Success: true, Result: &res}, nil
}

func conflict(b models.Booking) Admission {
	return Admission{Success: false, Conflicting: &b}
}
