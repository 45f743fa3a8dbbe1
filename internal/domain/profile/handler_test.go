package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/slotbook/slotbook/internal/platform/audit"
	"github.com/slotbook/slotbook/internal/platform/auth"
)

func newHandlerContext(t *testing.T, method, body string, ownerID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/profile", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/profile", nil)
	}
	ctx := context.WithValue(req.Context(), auth.OwnerIDKey, ownerID)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Save_OK(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), audit.NopRecorder{}))
	ownerID := uuid.New()

	body := `{"weekdays":[1,2,3,4,5],"start_time":"09:00","end_time":"18:00","slot_duration_min":30,"lead_time_hours":2}`
	c, rec := newHandlerContext(t, http.MethodPut, body, ownerID)

	if err := h.Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Save_Invalid(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), audit.NopRecorder{}))

	body := `{"weekdays":[],"start_time":"09:00","end_time":"18:00","slot_duration_min":30}`
	c, _ := newHandlerContext(t, http.MethodPut, body, uuid.New())

	err := h.Save(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Get_NotConfigured(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), audit.NopRecorder{}))

	c, _ := newHandlerContext(t, http.MethodGet, "", uuid.New())
	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Get_ScopedToOwner(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, audit.NopRecorder{})
	h := NewHandler(svc)

	p := validProfile()
	if err := svc.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A different owner must not see it
	c, _ := newHandlerContext(t, http.MethodGet, "", uuid.New())
	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for other owner, got %v", err)
	}

	// The owner sees it
	c, rec := newHandlerContext(t, http.MethodGet, "", p.OwnerID)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
