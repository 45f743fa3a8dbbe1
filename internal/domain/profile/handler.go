package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/slotbook/slotbook/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/profile", h.Get)
	api.PUT("/profile", h.Save)
}

func (h *Handler) Get(c echo.Context) error {
	ownerID := auth.OwnerFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), ownerID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "availability profile not configured")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Save(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.OwnerID = auth.OwnerFromContext(c.Request().Context())
	if err := h.svc.Save(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
