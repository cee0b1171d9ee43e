package handler

import (
	"errors"
	"net/http"

	apperrors "asset-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// MapToPublicError maps internal errors to public-facing HTTP status codes and messages
// This prevents information disclosure by providing consistent, generic error messages
func MapToPublicError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "resource conflict"
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, apperrors.ErrDisabledResource), errors.Is(err, apperrors.ErrRuleViolation):
		return http.StatusBadRequest, "request rejected"
	default:
		// Never expose internal errors to clients
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondWithMappedError responds with a mapped error, preventing information disclosure
func RespondWithMappedError(c echo.Context, err error) error {
	status, msg := MapToPublicError(err)
	if status < 500 {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			msg = appErr.Message
		}
	}
	return respondError(c, status, msg)
}
