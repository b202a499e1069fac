//go:generate mockgen -source=user_detail.go -destination=user_detail_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// UserDetailer loads a single user.
type UserDetailer interface {
	Detail(ctx context.Context, id int64) (*models.User, error)
}

// NewUserDetailHandler returns an HTTP handler for a single user.
// @Summary User detail
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Failure 404 {object} response.Envelope "User is not found!"
// @Security BearerAuth
// @Router /users/{id} [get]
func NewUserDetailHandler(svc UserDetailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, "user detail: bad id", err)
			return
		}

		user, err := svc.Detail(r.Context(), id)
		if err != nil {
			fail(w, r, "user detail failed", err)
			return
		}

		response.Success(w, http.StatusOK, MessageSuccess, user)
	}
}
