package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

func cleaning(patient, slot string) models.Booking {
	return models.Booking{Treatment: "Cleaning", Date: "2024-01-01", Slot: slot, Patient: patient}
}

func TestSubmitThenDuplicate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := NewController(st, zerolog.Nop())

	first, err := c.Submit(ctx, cleaning("a@x.com", "9am"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !first.Success || first.Result == nil || !first.Result.Acknowledged {
		t.Fatalf("expected admission, got %+v", first)
	}

	// Same triple, different slot: still the same triple.
	second, err := c.Submit(ctx, cleaning("a@x.com", "10am"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if second.Success {
		t.Fatal("expected conflict for identical triple")
	}
	if second.Conflicting == nil || second.Conflicting.Slot != "9am" {
		t.Fatalf("conflict should carry the first booking, got %+v", second.Conflicting)
	}
	if second.Conflicting.ID != first.Result.InsertedID {
		t.Fatalf("conflict id %v, want %v", second.Conflicting.ID, first.Result.InsertedID)
	}

	all, _ := st.BookingsOn(ctx, "2024-01-01")
	if len(all) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(all))
	}
}

func TestSubmitDistinctTriples(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := NewController(st, zerolog.Nop())

	bookings := []models.Booking{
		cleaning("a@x.com", "9am"),
		cleaning("b@x.com", "9am"), // same slot, other patient: admitted
		{Treatment: "Cleaning", Date: "2024-01-02", Slot: "9am", Patient: "a@x.com"},
		{Treatment: "Whitening", Date: "2024-01-01", Slot: "9am", Patient: "a@x.com"},
	}
	for _, b := range bookings {
		adm, err := c.Submit(ctx, b)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !adm.Success {
			t.Fatalf("expected %+v to be admitted", b)
		}
	}
}

func TestSubmitConcurrentDistinctTriples(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := NewController(st, zerolog.Nop())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			adm, err := c.Submit(ctx, cleaning(fmt.Sprintf("p%d@x.com", i), "9am"))
			if err != nil {
				errs <- err
				return
			}
			if !adm.Success {
				errs <- fmt.Errorf("patient %d rejected", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	all, _ := st.BookingsOn(ctx, "2024-01-01")
	if len(all) != n {
		t.Fatalf("expected %d bookings, got %d", n, len(all))
	}
}

// racingStore hides the first booking from the pre-check, as a concurrent writer
// would, so the insert is the first to see the duplicate.
type racingStore struct {
	*store.Memory
	hidden bool
}

func (r *racingStore) FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error) {
	if !r.hidden {
		r.hidden = true
		return models.Booking{}, store.ErrNotFound
	}
	return r.Memory.FindBookingByTriple(ctx, key)
}

func TestSubmitUniqueIndexDecidesRace(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(store.WithUniqueBookings())
	winner := cleaning("a@x.com", "9am")
	mem.InsertBooking(ctx, &winner)

	c := NewController(&racingStore{Memory: mem}, zerolog.Nop())
	adm, err := c.Submit(ctx, cleaning("a@x.com", "10am"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if adm.Success {
		t.Fatal("unique index should have rejected the duplicate")
	}
	if adm.Conflicting == nil || adm.Conflicting.ID != winner.ID {
		t.Fatalf("expected winner as conflict, got %+v", adm.Conflicting)
	}
}

type failingStore struct{}

func (failingStore) FindBookingByTriple(ctx context.Context, key models.Triple) (models.Booking, error) {
	return models.Booking{}, errors.New("server selection timeout")
}

func (failingStore) InsertBooking(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	return models.InsertResult{}, nil
}

func TestSubmitPropagatesStoreErrors(t *testing.T) {
	_, err := NewController(failingStore{}, zerolog.Nop()).Submit(context.Background(), cleaning("a@x.com", "9am"))
	if err == nil {
		t.Fatal("expected error")
	}
}
