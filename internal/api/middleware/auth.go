package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/security"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
)

type contextKey string

const UserCtxKey contextKey = "currentUser"

// Authenticate resolves the session once per request and stores the user,
// possibly nil, in the request context.
func Authenticate(auth *service.AuthService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := security.TokenFromRequest(r, cookieName)
			user := auth.ResolveCurrentUser(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser rejects requests without an authenticated user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.EnsureUser(UserFromContext(r.Context())); err != nil {
			common.RespondWithServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperuser rejects anonymous requests with 401 and non-superusers with 403.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.EnsureSuperuser(UserFromContext(r.Context())); err != nil {
			common.RespondWithServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// UserFromContext returns the user Authenticate resolved, or nil.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserCtxKey).(*model.User)
	return user
}

// SessionChecker is the part of the auth service the route guard needs.
type SessionChecker interface {
	HasSession(ctx context.Context, token string) bool
}

type GuardConfig struct {
	CookieName      string
	ProtectedPrefix string
	LoginPath       string
	HomePath        string
	AuthPages       []string
}

// RouteGuard redirects anonymous visitors away from protected pages and
// signed-in visitors away from the auth pages. It only asks the identity
// provider whether the session is valid.
func RouteGuard(sessions SessionChecker, cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			protected := underPrefix(path, cfg.ProtectedPrefix)
			authPage := isAuthPage(path, cfg.AuthPages)
			if !protected && !authPage {
				next.ServeHTTP(w, r)
				return
			}

			valid := sessions.HasSession(r.Context(), security.TokenFromRequest(r, cfg.CookieName))
			switch {
			case protected && !valid:
				http.Redirect(w, r, cfg.LoginPath, http.StatusTemporaryRedirect)
			case authPage && valid:
				http.Redirect(w, r, cfg.HomePath, http.StatusTemporaryRedirect)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	prefix = strings.TrimRight(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAuthPage(path string, pages []string) bool {
	path = strings.TrimRight(path, "/")
	for _, p := range pages {
		if path == strings.TrimRight(p, "/") {
			return true
		}
	}
	return false
}
