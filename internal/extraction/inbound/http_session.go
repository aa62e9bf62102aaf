package inbound

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgrouter"
)

const (
	DefaultSessionName  = "extractview"
	DefaultMaxFileBytes = 32 << 20

	sessionKeyWorkspace = "workspace_id"
)

// NewCookieStore returns the signed cookie store that carries workspace IDs.
func NewCookieStore(key []byte, secure bool, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// middlewareWorkspace binds every request to a workspace, creating one when
// the cookie is absent, invalid or names an evicted workspace.
func middlewareWorkspace(uc uc, store sessions.Store, name string) pkgrouter.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// A cookie that fails verification still yields a fresh session.
			session, err := store.Get(r, name)
			if err != nil {
				slog.WarnContext(ctx, "discard invalid session cookie", "error", err)
			}

			current, _ := session.Values[sessionKeyWorkspace].(string)
			id, err := uc.Ensure(ctx, current)
			if err != nil {
				slog.ErrorContext(ctx, "failed to ensure workspace", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if id != current || session.IsNew {
				session.Values[sessionKeyWorkspace] = id
				if err := session.Save(r, w); err != nil {
					slog.ErrorContext(ctx, "failed to save session", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(pkglog.SetWorkspaceID(ctx, id)))
		})
	}
}
