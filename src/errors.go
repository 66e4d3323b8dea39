package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"receh48/src/booking"
	"receh48/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func errorStatus(err error) int {
	var validationErr *booking.ValidationError
	var catalogErr *booking.CatalogLoadError
	var submissionErr *booking.SubmissionError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &catalogErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, booking.ErrServiceUnavailable):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrSubmissionInFlight),
		errors.Is(err, booking.ErrIdempotencyReused):
		return http.StatusConflict
	case errors.As(err, &submissionErr):
		return http.StatusBadGateway
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, booking.ErrSessionClosed),
		errors.Is(err, booking.ErrItemNotFound),
		errors.Is(err, booking.ErrMemberNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": msg}. Validation errors also carry
// their class and the offending items or fields.
func respondError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Unhandled error on %s: %s\n", ctx.FullPath(), err.Error())
		ctx.JSON(status, gin.H{"error": "Terjadi kesalahan pada server"})
		return
	}
	var validationErr *booking.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(status, gin.H{
			"error":  validationErr.Message,
			"class":  validationErr.Class,
			"items":  validationErr.ItemIDs,
			"fields": validationErr.Fields,
		})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// parseServiceType writes a 400 and reports false when raw names no service.
func parseServiceType(ctx *gin.Context, raw string) (types.ServiceType, bool) {
	st, err := types.ParseServiceType(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return st, true
}

func submissionFailureReason(err error) string {
	var validationErr *booking.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return string(validationErr.Class)
	case errors.Is(err, booking.ErrServiceUnavailable):
		return "unavailable"
	case errors.Is(err, booking.ErrSubmissionInFlight):
		return "in_flight"
	case errors.Is(err, booking.ErrIdempotencyReused):
		return "key_reused"
	}
	var submissionErr *booking.SubmissionError
	if errors.As(err, &submissionErr) {
		return "store"
	}
	return "other"
}
