package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/apperr"
)

// AbortWithError answers {"message": ...} with the status of err's kind. Internal
// errors are attached to the context so the access log records the cause.
func AbortWithError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(kind.Status(), gin.H{"message": apperr.MessageOf(err)})
}
