package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// PromoteCashier handles POST /v1/cashiers/promote.  It switches an existing
// client account to the cashier role.
func (h *StaffHandler) PromoteCashier(c echo.Context) error {
	return h.setCashierRole(c, model.RoleCashier)
}

// DemoteCashier handles POST /v1/cashiers/demote.  It switches a cashier
// back to a plain client account.
func (h *StaffHandler) DemoteCashier(c echo.Context) error {
	return h.setCashierRole(c, model.RoleClient)
}

func (h *StaffHandler) setCashierRole(c echo.Context, role string) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	u, err := h.Users.SetRole(c.Request().Context(), body.Email, role)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Email: u.Email, Role: u.Role})
}

// ListCashiers handles GET /v1/cashiers.
func (h *StaffHandler) ListCashiers(c echo.Context) error {
	users, err := h.Users.ListByRole(c.Request().Context(), model.RoleCashier)
	if err != nil {
		return jsonError(c, err)
	}
	items := make([]userPart, 0, len(users))
	for _, u := range users {
		items = append(items, userPart{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
