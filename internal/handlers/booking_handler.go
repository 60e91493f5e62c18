package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type createBookingRequest struct {
	Treatment   string  `json:"treatment" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Slot        string  `json:"slot" binding:"required"`
	Patient     string  `json:"patient" binding:"required"`
	PatientName string  `json:"patientName"`
	Phone       string  `json:"phone"`
	Price       float64 `json:"price"`
}

// CreateBooking admits a booking unless the same (treatment, date, patient) is
// already booked. A conflict is answered with 200 and success:false.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	b := models.Booking{
		Treatment:   req.Treatment,
		Date:        req.Date,
		Slot:        req.Slot,
		Patient:     req.Patient,
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Price:       req.Price,
	}
	adm, err := h.Bookings.Submit(c.Request.Context(), b)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if adm.Success {
		h.Notifier.BookingConfirmed(b)
	}
	c.JSON(http.StatusOK, adm)
}

// GetBookings lists the caller's own bookings. ?patient must match the token email.
func (h *Handler) GetBookings(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	patient := c.Query("patient")
	if patient == "" || patient != id.Email {
		middleware.AbortWithError(c, apperr.New(apperr.Forbidden, "forbidden access"))
		return
	}

	bookings, err := h.Store.BookingsFor(c.Request.Context(), patient)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if bookings == nil {
		bookings = make([]models.Booking, 0)
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking fetches one booking by id, used by the payment page.
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, apperr.Wrap(apperr.Validation, "invalid booking id", err))
		return
	}

	b, err := h.Store.FindBooking(c.Request.Context(), bookingID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.AbortWithError(c, apperr.Wrap(apperr.NotFound, "booking not found", err))
		return
	}
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
