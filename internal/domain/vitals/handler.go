package vitals

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peditrack/peditrack/internal/platform/auth"
	"github.com/peditrack/peditrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("parent", "caregiver"))
	g.POST("/children/:id/vitals", h.Record)
	g.GET("/children/:id/vitals", h.List)
	g.GET("/vital-ranges", h.Ranges)
}

func (h *Handler) Record(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	var v Reading
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ChildID = childID
	if err := h.svc.Record(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) List(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByChild(c.Request().Context(), childID, c.QueryParam("vital_type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// Ranges returns the normal range for a vital type at a given age.
func (h *Handler) Ranges(c echo.Context) error {
	vital := c.QueryParam("vital")
	ageMonths, err := strconv.Atoi(c.QueryParam("age_months"))
	if err != nil || ageMonths < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "age_months must be a non-negative integer")
	}
	r, ok := RangeFor(vital, ageMonths)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown vital type")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"vital":      vital,
		"age_months": ageMonths,
		"bucket":     BucketName(ageMonths),
		"range":      r,
	})
}
