package escalation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	g.GET("/children/:id/contacts", h.ListContacts)
	g.PUT("/children/:id/contacts", h.SetContacts)
	g.POST("/children/:id/escalations", h.Start)
	g.GET("/escalations/:id", h.Get)
	g.POST("/escalations/:id/ack", h.Ack)
}

func (h *Handler) ListContacts(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	contacts, err := h.svc.Contacts(c.Request().Context(), childID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, contacts)
}

// SetContacts replaces the cascade in submitted order; priorities come back
// re-derived from position.
func (h *Handler) SetContacts(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	var contacts []Contact
	if err := c.Bind(&contacts); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	saved, err := h.svc.SetContacts(c.Request().Context(), childID, contacts)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) Start(c echo.Context) error {
	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	var req struct {
		Score int `json:"score"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	esc, err := h.svc.Start(c.Request().Context(), childID, req.Score)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, esc)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	esc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "escalation not found")
	}
	return c.JSON(http.StatusOK, esc)
}

func (h *Handler) Ack(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	esc, err := h.svc.Ack(c.Request().Context(), id, req.MemberID)
	switch {
	case errors.Is(err, ErrEscalationExhausted):
		// Distinct terminal failure, not merged into resolved.
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"status":     "exhausted",
			"escalation": esc,
		})
	case err != nil:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, esc)
}
