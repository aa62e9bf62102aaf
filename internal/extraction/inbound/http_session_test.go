package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
)

type ensureOnly struct {
	uc
	live  map[string]bool
	calls []string
}

func (e *ensureOnly) Ensure(_ context.Context, id string) (string, error) {
	e.calls = append(e.calls, id)
	if e.live[id] {
		return id, nil
	}
	return "ws-new", nil
}

func serveWorkspace(t *testing.T, fake *ensureOnly, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()

	store := NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), false, 3600)
	var seen string
	h := middlewareWorkspace(fake, store, DefaultSessionName)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pkglog.GetWorkspaceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddlewareWorkspaceIssuesCookie(t *testing.T) {
	fake := &ensureOnly{}
	rec, seen := serveWorkspace(t, fake, nil)

	if seen != "ws-new" {
		t.Fatalf("expected ws-new in context, got %q", seen)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected one session cookie, got %d", len(rec.Result().Cookies()))
	}

	// The issued cookie binds the next request to the same workspace without a new cookie.
	fake.live = map[string]bool{"ws-new": true}
	next, seen := serveWorkspace(t, fake, rec.Result().Cookies()[0])
	if seen != "ws-new" {
		t.Fatalf("expected cookie to resolve ws-new, got %q", seen)
	}
	if fake.calls[1] != "ws-new" {
		t.Fatalf("expected Ensure(ws-new), got %q", fake.calls[1])
	}
	if len(next.Result().Cookies()) != 0 {
		t.Fatalf("expected no cookie rewrite for a live workspace")
	}
}

func TestMiddlewareWorkspaceIgnoresTamperedCookie(t *testing.T) {
	fake := &ensureOnly{live: map[string]bool{"ws-other": true}}
	rec, seen := serveWorkspace(t, fake, &http.Cookie{Name: DefaultSessionName, Value: "forged"})

	if seen != "ws-new" {
		t.Fatalf("expected fresh workspace, got %q", seen)
	}
	if fake.calls[0] != "" {
		t.Fatalf("expected Ensure with empty id, got %q", fake.calls[0])
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected replacement cookie")
	}
}
