// Package payments creates card payment intents with Stripe for booked treatments.
package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
)

// IntentCreator returns the client secret of a new payment intent.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// AmountFromPrice converts a price in major units to the smallest currency unit.
func AmountFromPrice(price float64) (int64, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperr.New(apperr.Validation, "price must be greater than zero")
	}
	return int64(math.Round(price * 100)), nil
}

type Stripe struct {
	api *client.API
}

func NewStripe(secretKey string) *Stripe {
	return &Stripe{api: client.New(secretKey, nil)}
}

func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// Disabled answers every request with Unavailable. Used when no Stripe key is set.
type Disabled struct{}

func (Disabled) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	return "", apperr.New(apperr.Unavailable, "payments are not configured")
}
