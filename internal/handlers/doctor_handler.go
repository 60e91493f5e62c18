package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/models"
)

func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Directory.ListDoctors(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// AddDoctor requires an admin caller.
func (h *Handler) AddDoctor(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		middleware.AbortWithError(c, apperr.New(apperr.Forbidden, "forbidden"))
		return
	}
	var doc models.Doctor
	if err := bindJSON(c, &doc); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	doc.ID = primitive.NilObjectID

	res, err := h.Directory.InsertDoctor(c.Request.Context(), admin, doc)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteDoctor requires an admin caller.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		middleware.AbortWithError(c, apperr.New(apperr.Forbidden, "forbidden"))
		return
	}
	res, err := h.Directory.DeleteDoctorByEmail(c.Request.Context(), admin, c.Param("email"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
