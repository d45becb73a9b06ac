package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/repository"
	"github.com/lborowski/cinema-tickets/internal/schedule"
)

// StaffHandler bundles the dependencies of the staff panel: catalog and
// showing management plus cashier promotion.
type StaffHandler struct {
	Movies   *repository.MovieRepo
	Halls    *repository.HallRepo
	Showings *repository.ShowingRepo
	Users    *repository.UserRepo
	Engine   *schedule.Engine
}

// NewStaffHandler constructs a StaffHandler and panics if any dependency is nil.
func NewStaffHandler(movies *repository.MovieRepo, halls *repository.HallRepo, showings *repository.ShowingRepo, users *repository.UserRepo, engine *schedule.Engine) *StaffHandler {
	if movies == nil || halls == nil || showings == nil || users == nil || engine == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{Movies: movies, Halls: halls, Showings: showings, Users: users, Engine: engine}
}

// CreateMovie handles POST /v1/movies.
func (h *StaffHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Title             string `json:"title"`
		Director          string `json:"director"`
		YearOfProduction  int    `json:"year_of_production"`
		Type              string `json:"type"`
		DurationInMinutes int    `json:"duration_in_minutes"`
		Description       string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m := &model.Movie{
		Title:             strings.TrimSpace(body.Title),
		Director:          strings.TrimSpace(body.Director),
		YearOfProduction:  body.YearOfProduction,
		Type:              strings.TrimSpace(body.Type),
		DurationInMinutes: body.DurationInMinutes,
		Description:       body.Description,
	}
	if err := m.Validate(); err != nil {
		return jsonError(c, err)
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/movies/:id.  The slug follows the title.
func (h *StaffHandler) UpdateMovie(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	var body struct {
		Title             *string `json:"title"`
		Director          *string `json:"director"`
		YearOfProduction  *int    `json:"year_of_production"`
		Type              *string `json:"type"`
		DurationInMinutes *int    `json:"duration_in_minutes"`
		Description       *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		cur.Title = strings.TrimSpace(*body.Title)
	}
	if body.Director != nil {
		cur.Director = strings.TrimSpace(*body.Director)
	}
	if body.YearOfProduction != nil {
		cur.YearOfProduction = *body.YearOfProduction
	}
	if body.Type != nil {
		cur.Type = strings.TrimSpace(*body.Type)
	}
	if body.DurationInMinutes != nil {
		cur.DurationInMinutes = *body.DurationInMinutes
	}
	if body.Description != nil {
		cur.Description = *body.Description
	}
	if err := cur.Validate(); err != nil {
		return jsonError(c, err)
	}
	if err := h.Movies.Update(c.Request().Context(), cur); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// DeleteMovie handles DELETE /v1/movies/:id.  Dependent showings and their
// orders are removed in the same transaction.
func (h *StaffHandler) DeleteMovie(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateHall handles POST /v1/halls.
func (h *StaffHandler) CreateHall(c echo.Context) error {
	var body struct {
		Places int `json:"places"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	hall := &model.Hall{Places: body.Places}
	if err := hall.Validate(); err != nil {
		return jsonError(c, err)
	}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, hall)
}

// DeleteHall handles DELETE /v1/halls/:number.  Dependent showings and their
// orders are removed in the same transaction.
func (h *StaffHandler) DeleteHall(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall number"})
	}
	if err := h.Halls.Delete(c.Request().Context(), number); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListHalls handles GET /v1/halls.
func (h *StaffHandler) ListHalls(c echo.Context) error {
	halls, err := h.Halls.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	if halls == nil {
		halls = []model.Hall{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}
