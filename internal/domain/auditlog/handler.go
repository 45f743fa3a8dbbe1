package auditlog

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/slotbook/slotbook/internal/platform/auth"
	"github.com/slotbook/slotbook/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole("admin"))
	admin.GET("/audit-events", h.List)
	admin.GET("/audit-events/:id", h.Get)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor := auth.OwnerFromContext(c.Request().Context())

	e, err := h.svc.Get(c.Request().Context(), actor, id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	actor := auth.OwnerFromContext(c.Request().Context())

	filter := Filter{
		Action:   c.QueryParam("action"),
		Resource: c.QueryParam("resource"),
	}
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be in YYYY-MM-DD format")
		}
		filter.From = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be in YYYY-MM-DD format")
		}
		filter.To = parsed.AddDate(0, 0, 1)
	}

	items, total, err := h.svc.Search(c.Request().Context(), actor, filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
