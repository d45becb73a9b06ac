// Package handler contains the HTTP handlers for every role surface:
// public browsing, client booking, cashier finalization and staff
// schedule/catalog management.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/booking"
	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/repository"
	"github.com/lborowski/cinema-tickets/internal/schedule"
)

// getUserID extracts the user_id claim from the echo context and converts it
// to int64.  JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (int64, error) {
	switch t := c.Get("user_id").(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// jsonError translates domain errors into the JSON error responses the API
// promises: 404 for missing entities, 409 for schedule conflicts and
// capacity rejections, 422 for out-of-hours and field validation, 403 for
// permission failures, 500 otherwise.  The error text names the offending
// entity or bound, so it is safe to surface.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrHallNotFound),
		errors.Is(err, repository.ErrShowingNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrNotCashier):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSlugExists),
		errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	var (
		conflict   *schedule.ConflictError
		outOfHours *schedule.OutOfHoursError
		capacity   *booking.CapacityError
		validation *model.ValidationError
	)
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	case errors.As(err, &capacity):
		return c.JSON(http.StatusConflict, echo.Map{"error": capacity.Error(), "free": capacity.Free})
	case errors.As(err, &outOfHours):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": outOfHours.Error()})
	case errors.As(err, &validation):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": validation.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
