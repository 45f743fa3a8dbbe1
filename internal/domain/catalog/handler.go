package catalog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/slotbook/slotbook/internal/platform/auth"
	"github.com/slotbook/slotbook/pkg/pagination"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/services", h.List)
	api.GET("/services/:id", h.Get)
	api.POST("/services", h.Create)
	api.PUT("/services/:id", h.Update)
	api.DELETE("/services/:id", h.Delete)
	api.POST("/services/:id/deactivate", h.Deactivate)
}

func (h *Handler) Create(c echo.Context) error {
	var s Service
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.OwnerID = auth.OwnerFromContext(c.Request().Context())
	if err := h.catalog.Create(c.Request().Context(), &s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.OwnerFromContext(c.Request().Context())
	s, err := h.catalog.Get(c.Request().Context(), ownerID, id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load service")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ownerID := auth.OwnerFromContext(c.Request().Context())
	activeOnly := c.QueryParam("active") == "true"

	items, total, err := h.catalog.List(c.Request().Context(), ownerID, activeOnly, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list services")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var s Service
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.ID = id
	s.OwnerID = auth.OwnerFromContext(c.Request().Context())

	err = h.catalog.Update(c.Request().Context(), &s)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.OwnerFromContext(c.Request().Context())

	err = h.catalog.Delete(c.Request().Context(), ownerID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	case errors.Is(err, ErrInUse):
		return echo.NewHTTPError(http.StatusConflict, "service has appointments; deactivate it instead")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete service")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.OwnerFromContext(c.Request().Context())

	err = h.catalog.Deactivate(c.Request().Context(), ownerID, id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to deactivate service")
	}
	return c.NoContent(http.StatusNoContent)
}
