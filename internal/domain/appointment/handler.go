package appointment

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
	api.GET("/availability", h.Availability)
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
	api.POST("/appointments", h.Create)
	api.PUT("/appointments/:id", h.Update)
	api.POST("/appointments/:id/status", h.ChangeStatus)
	api.DELETE("/appointments/:id", h.Delete)
}

// httpError maps engine errors to HTTP statuses. Internal detail never
// leaks; unknown errors become a generic 500.
func httpError(err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Fields)
	}
	switch {
	case errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrPastDate),
		errors.Is(err, ErrFutureAppointment),
		errors.Is(err, ErrTooEarly),
		errors.Is(err, ErrCancellationWindow):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrClientNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTimeConflict),
		errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (h *Handler) Availability(c echo.Context) error {
	date, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}

	var serviceID, excludeID *uuid.UUID
	if raw := c.QueryParam("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid service_id")
		}
		serviceID = &id
	}
	if raw := c.QueryParam("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_id")
		}
		excludeID = &id
	}

	ownerID := auth.OwnerFromContext(c.Request().Context())
	avail, err := h.svc.Availability(c.Request().Context(), ownerID, date, serviceID, excludeID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, avail)
}

func (h *Handler) Create(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID := auth.OwnerFromContext(c.Request().Context())
	a, err := h.svc.Create(c.Request().Context(), ownerID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.OwnerFromContext(c.Request().Context())

	a, err := h.svc.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ownerID := auth.OwnerFromContext(c.Request().Context())

	// Default window: the current month.
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be in YYYY-MM-DD format")
		}
		from = parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be in YYYY-MM-DD format")
		}
		to = parsed.AddDate(0, 0, 1)
	}

	items, total, err := h.svc.List(c.Request().Context(), ownerID, from, to, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID := auth.OwnerFromContext(c.Request().Context())
	a, err := h.svc.Update(c.Request().Context(), ownerID, id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !body.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	ownerID := auth.OwnerFromContext(c.Request().Context())
	a, err := h.svc.ChangeStatus(c.Request().Context(), ownerID, id, body.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.OwnerFromContext(c.Request().Context())

	if err := h.svc.Delete(c.Request().Context(), ownerID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
