package risk

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peditrack/peditrack/internal/domain/symptoms"
	"github.com/peditrack/peditrack/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("parent", "caregiver"))
	g.POST("/children/:id/risk-points", h.AddPoint)
	g.GET("/children/:id/risk-trend", h.Trend)
	g.POST("/risk/aggregate", h.Aggregate)
}

func (h *Handler) AddPoint(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	var p TrendPoint
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ChildID = childID
	if err := h.svc.AddPoint(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"point": p,
		"level": LevelFor(p.Score),
	})
}

func (h *Handler) Trend(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	points, direction, err := h.svc.Trend(c.Request().Context(), childID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"points":    points,
		"direction": direction,
	})
}

// Aggregate is the pure scoring endpoint: no persistence, no escalation.
func (h *Handler) Aggregate(c echo.Context) error {
	var req struct {
		Symptoms []symptoms.Observation `json:"symptoms"`
		Vitals   VitalSnapshot          `json:"vitals"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	for i := range req.Symptoms {
		if err := req.Symptoms[i].Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	score := Aggregate(req.Symptoms, req.Vitals)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"score": score,
		"level": LevelFor(score),
	})
}
