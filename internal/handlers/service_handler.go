package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/models"
)

// GetServices lists the services projected to their names.
func (h *Handler) GetServices(c *gin.Context) {
	names, err := h.Store.ListServiceNames(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if names == nil {
		names = make([]models.ServiceName, 0)
	}
	c.JSON(http.StatusOK, names)
}

// GetAvailable returns every service with the slots still free on ?date=.
// The date is passed through untouched.
func (h *Handler) GetAvailable(c *gin.Context) {
	services, err := h.Availability.Compute(c.Request.Context(), c.Query("date"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}
