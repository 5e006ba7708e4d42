package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/middleware"
	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/roles"
	"github.com/courseloop/forum-gateway/internal/thread"
)

// errorResponse is the failure envelope. Authorization failures carry a
// fresh role snapshot so the client can correct stale local state.
type errorResponse struct {
	*models.AppError
	RoleStatus *roles.Status `json:"role_status,omitempty"`
}

// caller extracts the acting user set by the JWT middleware.
func caller(c echo.Context) (models.User, error) {
	u, ok := middleware.CallerFromContext(c)
	if !ok {
		return models.User{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing user identity")
	}
	return u, nil
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// respondError converts any engine failure into the displayable envelope.
// Nothing escapes as an uncaught fault.
func respondError(c echo.Context, err error, status *roles.Status) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		switch {
		case errors.Is(err, thread.ErrNoSuchParent),
			errors.Is(err, thread.ErrMissingID),
			errors.Is(err, thread.ErrDuplicateID),
			errors.Is(err, thread.ErrCycle):
			appErr = models.NewStructuralError(err.Error())
		default:
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}
			appErr = models.NewTransportError(err.Error())
		}
	}

	resp := errorResponse{AppError: appErr}
	if appErr.Kind == models.KindAuthorization {
		resp.RoleStatus = status
	}
	return c.JSON(statusFor(appErr.Kind), resp)
}

func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindAuthorization:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindStructural:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
