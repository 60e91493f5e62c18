package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// Notifier tells a patient their booking was admitted.
type Notifier interface {
	BookingConfirmed(b models.Booking)
}

// NopNotifier is used when no SMS key is configured.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(models.Booking) {}

// SMSNotifier sends booking confirmations through the Textbelt API.
type SMSNotifier struct {
	key      string
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewSMSNotifier(key string, log zerolog.Logger) *SMSNotifier {
	return &SMSNotifier{
		key:      key,
		endpoint: textbeltURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log.With().Str("component", "sms").Logger(),
	}
}

// BookingConfirmed sends in the background so the API response is not held up.
// Bookings without a phone number are skipped.
func (s *SMSNotifier) BookingConfirmed(b models.Booking) {
	if b.Phone == "" {
		s.log.Debug().Str("patient", b.Patient).Msg("sms not sent: booking has no phone number")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.send(ctx, b.Phone, confirmationText(b)); err != nil {
			s.log.Warn().Err(err).Str("patient", b.Patient).Msg("sms not sent")
			return
		}
		s.log.Info().Str("patient", b.Patient).Msg("sms sent")
	}()
}

func confirmationText(b models.Booking) string {
	name := b.PatientName
	if name == "" {
		name = b.Patient
	}
	return fmt.Sprintf("Appointment Confirmed: %s for %s on %s at %s.", b.Treatment, name, b.Date, b.Slot)
}

func (s *SMSNotifier) send(ctx context.Context, phone, message string) error {
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.key,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt: %s", result.Error)
	}
	return nil
}
