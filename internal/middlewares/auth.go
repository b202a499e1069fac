//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares
package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// Authorizer resolves the session behind an Authorization header value.
type Authorizer interface {
	Authorize(ctx context.Context, header string) (*models.SessionDB, error)
}

type sessionKey struct{}

// AuthMiddleware returns a middleware that admits only requests carrying a live session token.
func AuthMiddleware(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := authorizer.Authorize(ctx, r.Header.Get("Authorization"))
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				response.Error(w, err)
				return
			}

			ctx = context.WithValue(ctx, sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by AuthMiddleware, or nil.
func SessionFromContext(ctx context.Context) *models.SessionDB {
	session, _ := ctx.Value(sessionKey{}).(*models.SessionDB)
	return session
}

// ContextWithSession stores session in ctx the same way AuthMiddleware does.
func ContextWithSession(ctx context.Context, session *models.SessionDB) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}
