//go:generate mockgen -source=current_user.go -destination=current_user_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// CurrentUserGetter loads the owner of a session.
type CurrentUserGetter interface {
	CurrentUser(ctx context.Context, session *models.SessionDB) (*models.User, error)
}

// NewCurrentUserHandler returns an HTTP handler for the caller's own profile.
// @Summary Current user
// @Tags profile
// @Produce json
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Security BearerAuth
// @Router /current-user [get]
func NewCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := currentSession(r)
		if err != nil {
			fail(w, r, "current user: no session", err)
			return
		}

		user, err := svc.CurrentUser(r.Context(), session)
		if err != nil {
			fail(w, r, "current user failed", err)
			return
		}

		response.Success(w, http.StatusOK, MessageSuccess, user)
	}
}
