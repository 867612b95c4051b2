package symptoms

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
	g.GET("/symptoms", h.ListCatalog)
	g.POST("/symptoms/match", h.Match)
	g.POST("/children/:id/symptom-entries", h.RecordEntry)
	g.GET("/children/:id/symptom-entries", h.ListEntries)
}

// ListCatalog filters the static catalog by age, gender, region and search
// text.
func (h *Handler) ListCatalog(c echo.Context) error {
	q := Query{
		Gender:     c.QueryParam("gender"),
		BodyRegion: c.QueryParam("body_region"),
		Search:     c.QueryParam("search"),
	}
	if raw := c.QueryParam("age_months"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "age_months must be a non-negative integer")
		}
		q.AgeMonths = &age
	}
	return c.JSON(http.StatusOK, Filter(q))
}

// Match resolves a free-text transcript to catalog definitions using the
// alias rule.
func (h *Handler) Match(c echo.Context) error {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Transcript == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transcript is required")
	}
	return c.JSON(http.StatusOK, FindByFreeText(req.Transcript))
}

func (h *Handler) RecordEntry(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	var e Entry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ChildID = childID
	if err := h.svc.RecordEntry(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListEntries(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEntries(c.Request().Context(), childID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
