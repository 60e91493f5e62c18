package handlers

import (
	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/availability"
	"github.com/harentsoaR/doctors-portal/internal/booking"
	"github.com/harentsoaR/doctors-portal/internal/directory"
	"github.com/harentsoaR/doctors-portal/internal/payments"
	"github.com/harentsoaR/doctors-portal/internal/services"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

// Handler holds every collaborator the HTTP surface needs.
type Handler struct {
	Store        store.Store
	Issuer       *auth.Issuer
	Authorizer   *auth.Authorizer
	Availability *availability.Calculator
	Bookings     *booking.Controller
	Directory    *directory.Directory
	Payments     payments.IntentCreator
	Notifier     services.Notifier
	Log          zerolog.Logger
}

// NewHandler wires the components on top of one store and one token issuer.
func NewHandler(st store.Store, issuer *auth.Issuer, pay payments.IntentCreator, notifier services.Notifier, log zerolog.Logger) *Handler {
	if pay == nil {
		pay = payments.Disabled{}
	}
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	return &Handler{
		Store:        st,
		Issuer:       issuer,
		Authorizer:   auth.NewAuthorizer(st),
		Availability: availability.NewCalculator(st),
		Bookings:     booking.NewController(st, log),
		Directory:    directory.New(st, issuer, log),
		Payments:     pay,
		Notifier:     notifier,
		Log:          log,
	}
}
