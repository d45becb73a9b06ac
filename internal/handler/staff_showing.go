package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/schedule"
	"github.com/lborowski/cinema-tickets/internal/timeutil"
)

// showingView is the JSON shape of a scheduled showing with its derived
// local fields.  Everything below "when" is computed against the display
// timezone, never stored.
type showingView struct {
	UUID        string `json:"uuid"`
	When        string `json:"when"`
	MovieID     int64  `json:"movie_id"`
	MovieTitle  string `json:"movie_title,omitempty"`
	HallNumber  int64  `json:"hall_number"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
}

func viewFromEntry(e schedule.Entry, loc *time.Location) showingView {
	return showingView{
		UUID:        e.Showing.UUID,
		When:        e.Showing.When.Format(time.RFC3339),
		MovieID:     e.Showing.MovieID,
		MovieTitle:  e.MovieTitle,
		HallNumber:  e.Showing.HallNumber,
		Date:        timeutil.LocalDate(e.Showing.When, loc),
		Time:        timeutil.LocalClock(e.Showing.When, loc),
		Weekday:     timeutil.NumericalWeekday(e.Showing.When, loc),
		WeekdayName: timeutil.WeekdayName(e.Showing.When, loc),
	}
}

// CreateShowing handles POST /v1/showings.  The schedule engine runs the
// collision check and the open-hours check before committing; either
// rejection comes back as a structured error naming what was violated.
func (h *StaffHandler) CreateShowing(c echo.Context) error {
	var body struct {
		MovieID    int64  `json:"movie_id"`
		HallNumber int64  `json:"hall_number"`
		When       string `json:"when"` // RFC3339
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MovieID == 0 || body.HallNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and hall_number are required"})
	}
	when, err := time.Parse(time.RFC3339, strings.TrimSpace(body.When))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid when format, want RFC3339"})
	}

	s, err := h.Engine.ProposeShowing(c.Request().Context(), body.MovieID, body.HallNumber, when)
	if err != nil {
		return jsonError(c, err)
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), s.MovieID)
	if err != nil {
		return jsonError(c, err)
	}
	loc := h.Engine.Location()
	return c.JSON(http.StatusCreated, viewFromEntry(schedule.Entry{
		Showing:    *s,
		MovieTitle: movie.Title,
		Duration:   movie.Duration(),
	}, loc))
}

// ListShowings handles GET /v1/showings.  It returns every showing in the
// next seven days, the same window the public schedule shows.
func (h *StaffHandler) ListShowings(c echo.Context) error {
	now := time.Now().UTC()
	entries, err := h.Showings.ListUpcoming(c.Request().Context(), now, now.AddDate(0, 0, 7))
	if err != nil {
		return jsonError(c, err)
	}
	loc := h.Engine.Location()
	items := make([]showingView, 0, len(entries))
	for _, e := range entries {
		items = append(items, viewFromEntry(e, loc))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteShowing handles DELETE /v1/showings/:uuid.  Dependent orders are
// removed in the same transaction.
func (h *StaffHandler) DeleteShowing(c echo.Context) error {
	showingUUID := strings.TrimSpace(c.Param("uuid"))
	if showingUUID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing uuid"})
	}
	if err := h.Showings.Delete(c.Request().Context(), showingUUID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
