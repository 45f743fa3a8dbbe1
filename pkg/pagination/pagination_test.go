package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/appointments?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext(t, ""))
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := FromContext(newContext(t, "limit=50&offset=10"))
	if p.Limit != 50 || p.Offset != 10 {
		t.Errorf("expected limit=50 offset=10, got %+v", p)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := FromContext(newContext(t, "limit=500"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_NegativeValues(t *testing.T) {
	p := FromContext(newContext(t, "limit=-1&offset=-5"))
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults for negative values, got %+v", p)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	resp := NewResponse([]string{"a"}, 30, 20, 0)
	if !resp.HasMore {
		t.Error("expected has_more true with 30 total and offset 0")
	}

	resp = NewResponse([]string{"a"}, 30, 20, 20)
	if resp.HasMore {
		t.Error("expected has_more false on last page")
	}
}

func TestParams_Offsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 20}
	if p.NextOffset() != 40 {
		t.Errorf("expected next offset 40, got %d", p.NextOffset())
	}
	if p.PreviousOffset() != 0 {
		t.Errorf("expected previous offset 0, got %d", p.PreviousOffset())
	}

	p = Params{Limit: 20, Offset: 10}
	if p.PreviousOffset() != 0 {
		t.Errorf("expected previous offset clamped to 0, got %d", p.PreviousOffset())
	}
}
