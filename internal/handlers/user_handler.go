package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/models"
)

// GetUsers lists every user. Any verified caller may call it.
func (h *Handler) GetUsers(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	users, err := h.Directory.ListUsers(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetAdmin reports whether :email holds the admin role.
func (h *Handler) GetAdmin(c *gin.Context) {
	isAdmin, err := h.Directory.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}

// MakeAdmin grants the admin role to :email. Requires an admin caller.
func (h *Handler) MakeAdmin(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		middleware.AbortWithError(c, apperr.New(apperr.Forbidden, "forbidden"))
		return
	}
	res, err := h.Directory.SetRole(c.Request.Context(), admin, c.Param("email"), models.RoleAdmin)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpsertUser stores the profile in the body for :email and returns a fresh token.
// An empty body is an empty profile.
func (h *Handler) UpsertUser(c *gin.Context) {
	profile := map[string]interface{}{}
	if err := c.ShouldBindJSON(&profile); err != nil && !errors.Is(err, io.EOF) {
		middleware.AbortWithError(c, apperr.Wrap(apperr.Validation, "profile must be a JSON object", err))
		return
	}

	login, err := h.Directory.UpsertUser(c.Request.Context(), c.Param("email"), profile)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, login)
}
