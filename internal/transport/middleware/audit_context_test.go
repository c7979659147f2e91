package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

func TestAuditContext_EnrichesActor(t *testing.T) {
	var got domain.AuditContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ctxutil.AuditContextFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Session-Id", "sess-42")
	req.Header.Set("User-Agent", "curl/8.0")
	req.RemoteAddr = "192.0.2.7:51234"
	req = req.WithContext(ctxutil.WithAuditContext(req.Context(), domain.AuditContext{UserID: "admin"}))

	AuditContext(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != "admin" {
		t.Fatalf("expected user admin, got %q", got.UserID)
	}
	if got.SessionID != "sess-42" {
		t.Fatalf("expected session sess-42, got %q", got.SessionID)
	}
	if got.IPAddress != "192.0.2.7" {
		t.Fatalf("expected IP 192.0.2.7, got %q", got.IPAddress)
	}
	if got.UserAgent != "curl/8.0" {
		t.Fatalf("expected user agent curl/8.0, got %q", got.UserAgent)
	}
}

func TestAuditContext_GeneratesSessionWhenHeaderMissing(t *testing.T) {
	var got domain.AuditContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ctxutil.AuditContextFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(ctxutil.WithAuditContext(req.Context(), domain.AuditContext{UserID: "admin"}))

	AuditContext(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if _, err := uuid.Parse(got.SessionID); err != nil {
		t.Fatalf("expected a uuid session id, got %q: %v", got.SessionID, err)
	}
}

func TestAuditContext_PrefersForwardedFor(t *testing.T) {
	var got domain.AuditContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ctxutil.AuditContextFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req = req.WithContext(ctxutil.WithAuditContext(req.Context(), domain.AuditContext{UserID: "admin"}))

	AuditContext(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got.IPAddress != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got.IPAddress)
	}
}

func TestAuditContext_AnonymousPassthrough(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := ctxutil.AuditContextFromCtx(r.Context()); ok {
			t.Fatal("expected no audit context for anonymous request")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	AuditContext(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("handler not reached")
	}
}
