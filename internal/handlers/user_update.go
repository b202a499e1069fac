//go:generate mockgen -source=user_update.go -destination=user_update_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// UserUpdater updates any user by id.
type UserUpdater interface {
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
}

// NewUserUpdateHandler returns an HTTP handler that renames a user.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param updateUserRequest body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.User} "User updated successfully"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Failure 404 {object} response.Envelope "User is not found!"
// @Failure 422 {object} response.Envelope "Validation failed"
// @Security BearerAuth
// @Router /users/{id} [patch]
func NewUserUpdateHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, "user update: bad id", err)
			return
		}

		var req models.UpdateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			fail(w, r, "user update: decode body", err)
			return
		}

		user, err := svc.Update(r.Context(), id, req)
		if err != nil {
			fail(w, r, "user update failed", err)
			return
		}

		response.Success(w, http.StatusOK, "User updated successfully", user)
	}
}
