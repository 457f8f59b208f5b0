package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// writeError maps a core error onto the HTTP status contract. Storage and
// consistency failures deliberately collapse into an opaque 500 so internal
// key layout never leaks to clients.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return writeErrorStatus(ctx, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, errs.ErrUnauthorized):
		return writeErrorStatus(ctx, http.StatusForbidden, "operation not allowed")
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeErrorStatus(ctx, http.StatusNotFound, "not found")
	case isValidationError(err):
		return writeErrorStatus(ctx, http.StatusBadRequest, err.Error())
	default:
		ctx.Logger().Errorf("request failed: %v", err)
		return writeErrorStatus(ctx, http.StatusInternalServerError, "internal error")
	}
}

func writeErrorStatus(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, parcel.ErrPartyIsNotConstructed) ||
		errors.Is(err, parcel.ErrItemIsNotConstructed) ||
		errors.Is(err, user.ErrProfileIsNotConstructed)
}
