package triage

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peditrack/peditrack/internal/domain/symptoms"
	"github.com/peditrack/peditrack/internal/platform/auth"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("parent", "caregiver"))
	g.POST("/triage/evaluate", h.Evaluate)
	g.GET("/symptoms/warnings/:region", h.Warning)
}

func (h *Handler) Evaluate(c echo.Context) error {
	var req struct {
		// Loose symptom shapes are normalized on unmarshal.
		Symptoms     []symptoms.Observation `json:"symptoms"`
		TemperatureF *float64               `json:"temperature_f"`
		AgeMonths    *int                   `json:"age_months"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.AgeMonths != nil && *req.AgeMonths < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "age_months must be non-negative")
	}

	selected := make([]Selected, 0, len(req.Symptoms))
	for _, o := range req.Symptoms {
		if err := o.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		selected = append(selected, Selected{SymptomID: o.SymptomID, Severity: o.Severity})
	}

	return c.JSON(http.StatusOK, Evaluate(selected, req.TemperatureF, req.AgeMonths))
}

func (h *Handler) Warning(c echo.Context) error {
	w, ok := WarningFor(c.Param("region"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown body region")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"region":  c.Param("region"),
		"warning": w,
	})
}
