package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=25&offset=100", 25, 100},
		{"capped", "limit=9999", MaxLimit, 0},
		{"garbage", "limit=abc&offset=-3", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query)
			if p.Limit != tt.limit || p.Offset != tt.offset {
				t.Errorf("got limit=%d offset=%d, want %d/%d", p.Limit, p.Offset, tt.limit, tt.offset)
			}
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	if r := NewResponse(nil, 100, 50, 0); !r.HasMore {
		t.Error("expected has_more for first page of 100")
	}
	if r := NewResponse(nil, 100, 50, 50); r.HasMore {
		t.Error("expected no more after last page")
	}
}
