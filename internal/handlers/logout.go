//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// Logouter destroys a session.
type Logouter interface {
	Logout(ctx context.Context, session *models.SessionDB) error
}

// NewLogoutHandler returns an HTTP handler that ends the current session.
// @Summary Logout
// @Description Destroys the session of the presented token. The token is rejected afterwards.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope "Logout success"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Security BearerAuth
// @Router /logout [delete]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := currentSession(r)
		if err != nil {
			fail(w, r, "logout: no session", err)
			return
		}

		if err := svc.Logout(r.Context(), session); err != nil {
			fail(w, r, "logout failed", err)
			return
		}

		response.Success(w, http.StatusOK, "Logout success", nil)
	}
}
