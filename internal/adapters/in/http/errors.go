package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/pkg/errs"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP statuses. Unrecognized errors
// become a generic 500 without leaking internals.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, queries.ErrInvalidCredentials):
		return respond(ctx, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, commands.ErrCurrentPasswordMismatch):
		return respond(ctx, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, commands.ErrAccountAlreadyExists):
		return respond(ctx, http.StatusConflict, "Email or phone already registered")
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrDuplicateIdentifier),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrNotAssignable),
		errors.Is(err, errs.ErrNotDeletable):
		return respond(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err.Error())
	default:
		ctx.Logger().Error(err)
		return respond(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func respond(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
