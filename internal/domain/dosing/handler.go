package dosing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peditrack/peditrack/internal/domain/child"
	"github.com/peditrack/peditrack/internal/platform/auth"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("parent", "caregiver"))
	g.GET("/dosing", h.DoseRange)
}

// DoseRange answers GET /dosing?drug=&weight_lbs=&age_months=. Refusals come
// back as tagged unavailability results so the client can prompt the user,
// not as generic errors.
func (h *Handler) DoseRange(c echo.Context) error {
	drug := c.QueryParam("drug")
	if drug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "drug is required")
	}
	var weightLbs float64
	if raw := c.QueryParam("weight_lbs"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "weight_lbs must be a number")
		}
		weightLbs = w
	}
	var ageMonths *int
	if raw := c.QueryParam("age_months"); raw != "" {
		a, err := strconv.Atoi(raw)
		if err != nil || a < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "age_months must be a non-negative integer")
		}
		ageMonths = &a
	}

	r, err := DoseRange(drug, weightLbs, ageMonths)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeightMissing):
			return c.JSON(http.StatusUnprocessableEntity, unavailable("weight_missing", err))
		case errors.Is(err, ErrDrugAgeRestricted):
			return c.JSON(http.StatusUnprocessableEntity, unavailable("drug_age_restricted", err))
		case errors.Is(err, child.ErrAgeUnknown):
			return c.JSON(http.StatusUnprocessableEntity, unavailable("age_unknown", err))
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, r)
}

func unavailable(code string, err error) map[string]string {
	return map[string]string{
		"status": "unavailable",
		"code":   code,
		"detail": err.Error(),
	}
}
