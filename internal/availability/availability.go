// Package availability computes, for one date, which slots of each service are
// still free.
package availability

import (
	"context"
	"fmt"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

type Source interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	BookingsOn(ctx context.Context, date string) ([]models.Booking, error)
}

type Calculator struct {
	src Source
}

func NewCalculator(src Source) *Calculator {
	return &Calculator{src: src}
}

// Compute loads every service and the bookings for date and returns the services
// with their free slots. The date is not validated: an empty or malformed date
// matches no booking, so every slot comes back available.
func (c *Calculator) Compute(ctx context.Context, date string) ([]models.AvailableService, error) {
	services, err := c.src.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	bookings, err := c.src.BookingsOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return Compute(services, bookings), nil
}

// Compute is the pure part of Calculator.Compute. bookings must already be limited
// to a single date. Slot order follows each service's own slot list.
func Compute(services []models.Service, bookings []models.Booking) []models.AvailableService {
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]models.AvailableService, 0, len(services))
	for _, s := range services {
		taken := booked[s.Name]
		available := make([]string, 0, len(s.Slots))
		for _, slot := range s.Slots {
			if _, ok := taken[slot]; !ok {
				available = append(available, slot)
			}
		}
		out = append(out, models.AvailableService{Service: s, Available: available})
	}
	return out
}
