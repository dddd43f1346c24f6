package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/salonops/salon-manager/internal/httperr"
)

var notFoundCodes = map[string]bool{
	httperr.CodeProductNotFound:  true,
	httperr.CodeLocationNotFound: true,
	httperr.CodeServiceNotFound:  true,
	httperr.CodeStaffNotFound:    true,
	"appointment_not_found":      true,
}

var conflictCodes = map[string]bool{
	"time_conflict": true,
}

// writeBusinessError maps BusinessError codes onto statuses; anything
// else is a 500 with a generic code.
func writeBusinessError(c *gin.Context, err error, fallbackCode string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, fallbackCode, "Something went wrong.")
		return
	}

	switch {
	case notFoundCodes[be.Code]:
		httperr.NotFound(c, be.Code, "Not found.")
	case conflictCodes[be.Code]:
		httperr.Conflict(c, be.Code, "Conflict.")
	default:
		httperr.BadRequest(c, be.Code, "Request cannot be processed.")
	}
}
