package v1

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/openhoa/openhoa/internal/errors"
)

// abortWithError hands the error to the error-handling middleware,
// which renders the envelope with the status derived from the sentinel
func abortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// bindError wraps a request binding failure as a validation error
func bindError(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid request payload").
		Mark(ierr.ErrValidation)
}
