package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/booking"
	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/repository"
	"github.com/lborowski/cinema-tickets/internal/schedule"
)

func TestJSONErrorStatusMapping(t *testing.T) {
	conflict := &schedule.ConflictError{
		Colliding: schedule.Entry{
			Showing:    model.Showing{When: time.Date(2026, time.March, 14, 14, 0, 0, 0, time.UTC)},
			MovieTitle: "Stalker",
			Duration:   2 * time.Hour,
		},
		Location: time.UTC,
	}

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"movie not found", repository.ErrMovieNotFound, http.StatusNotFound},
		{"order not found wrapped", fmt.Errorf("lookup: %w", repository.ErrOrderNotFound), http.StatusNotFound},
		{"not a cashier", booking.ErrNotCashier, http.StatusForbidden},
		{"slug taken", repository.ErrSlugExists, http.StatusConflict},
		{"email taken", repository.ErrEmailExists, http.StatusConflict},
		{"schedule conflict", conflict, http.StatusConflict},
		{"capacity exceeded", &booking.CapacityError{ShowingUUID: "x", Requested: 60, Free: 50}, http.StatusConflict},
		{"out of hours", &schedule.OutOfHoursError{Reason: "starts before opening"}, http.StatusUnprocessableEntity},
		{"field validation", &model.ValidationError{Entity: "order", Field: "tickets_amount", Reason: "must be at least 1"}, http.StatusUnprocessableEntity},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := jsonError(c, tc.err); err != nil {
				t.Fatalf("jsonError returned %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("want %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int64
		ok    bool
	}{
		{"int64", int64(7), 7, true},
		{"float64 from jwt claims", float64(42), 42, true},
		{"numeric string", "13", 13, true},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok && (err != nil || got != tc.want) {
				t.Fatalf("want %d, got %d (%v)", tc.want, got, err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
