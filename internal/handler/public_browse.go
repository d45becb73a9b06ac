package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/booking"
	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/repository"
	"github.com/lborowski/cinema-tickets/internal/schedule"
	"github.com/lborowski/cinema-tickets/internal/timeutil"
)

// scheduleDays is how far ahead the public schedule looks.
const scheduleDays = 7

// PublicHandler serves the unauthenticated browse surface: the weekly
// schedule, the movie catalogue and per-showing seat availability.
type PublicHandler struct {
	Movies   *repository.MovieRepo
	Halls    *repository.HallRepo
	Showings *repository.ShowingRepo
	Ledger   *booking.Ledger
	Loc      *time.Location
}

func NewPublicHandler(movies *repository.MovieRepo, halls *repository.HallRepo, showings *repository.ShowingRepo, ledger *booking.Ledger, loc *time.Location) *PublicHandler {
	if movies == nil || halls == nil || showings == nil || ledger == nil || loc == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Movies: movies, Halls: halls, Showings: showings, Ledger: ledger, Loc: loc}
}

type scheduleDay struct {
	Date        string        `json:"date"`
	Weekday     int           `json:"weekday"`
	WeekdayName string        `json:"weekday_name"`
	Showings    []showingView `json:"showings"`
}

// Schedule handles GET /v1/schedule.  It returns one bucket per calendar day
// for the coming week, starting with today, each holding that day's showings
// in start order.
func (h *PublicHandler) Schedule(c echo.Context) error {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, scheduleDays)

	entries, err := h.Showings.ListUpcoming(c.Request().Context(), from, to)
	if err != nil {
		return jsonError(c, err)
	}

	byDate := make(map[string][]showingView, scheduleDays)
	for _, e := range entries {
		date := timeutil.LocalDate(e.Showing.When, h.Loc)
		byDate[date] = append(byDate[date], viewFromEntry(e, h.Loc))
	}

	days := make([]scheduleDay, 0, scheduleDays)
	for i := 0; i < scheduleDays; i++ {
		day := now.AddDate(0, 0, i)
		date := timeutil.LocalDate(day, h.Loc)
		views := byDate[date]
		if views == nil {
			views = []showingView{}
		}
		days = append(days, scheduleDay{
			Date:        date,
			Weekday:     timeutil.NumericalWeekday(day, h.Loc),
			WeekdayName: timeutil.WeekdayName(day, h.Loc),
			Showings:    views,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days})
}

// ListMovies handles GET /v1/movies.  With ?search= it filters by a title or
// director substring.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	ctx := c.Request().Context()
	query := strings.TrimSpace(c.QueryParam("search"))

	var (
		movies []model.Movie
		err    error
	)
	if query == "" {
		movies, err = h.Movies.List(ctx)
	} else {
		movies, err = h.Movies.Search(ctx, query)
	}
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// MovieBySlug handles GET /v1/movies/:slug, returning the movie together
// with its upcoming showings.
func (h *PublicHandler) MovieBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	movie, err := h.Movies.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return jsonError(c, err)
	}
	entries, err := h.Showings.ListByMovie(ctx, movie.ID, time.Now())
	if err != nil {
		return jsonError(c, err)
	}
	views := make([]showingView, 0, len(entries))
	for _, e := range entries {
		views = append(views, viewFromEntry(e, h.Loc))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":    movie,
		"showings": views,
	})
}

// ShowingDetail handles GET /v1/showings/:uuid with the live seat counts.
func (h *PublicHandler) ShowingDetail(c echo.Context) error {
	ctx := c.Request().Context()
	showingUUID := c.Param("uuid")

	showing, err := h.Showings.GetByUUID(ctx, showingUUID)
	if err != nil {
		return jsonError(c, err)
	}
	movie, err := h.Movies.GetByID(ctx, showing.MovieID)
	if err != nil {
		return jsonError(c, err)
	}
	hall, err := h.Halls.GetByNumber(ctx, showing.HallNumber)
	if err != nil {
		return jsonError(c, err)
	}
	taken, err := h.Ledger.TakenSeats(ctx, showingUUID)
	if err != nil {
		return jsonError(c, err)
	}
	free := hall.Places - taken
	if free < 0 {
		free = 0
	}

	entry := schedule.Entry{Showing: *showing, MovieTitle: movie.Title, Duration: movie.Duration()}
	return c.JSON(http.StatusOK, echo.Map{
		"showing":      viewFromEntry(entry, h.Loc),
		"movie":        movie,
		"hall":         hall,
		"all_places":   hall.Places,
		"taken_places": taken,
		"free_places":  free,
	})
}
