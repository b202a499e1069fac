//go:generate mockgen -source=user_delete.go -destination=user_delete_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/response"
)

// UserDestroyer deletes a user by id.
type UserDestroyer interface {
	Destroy(ctx context.Context, id int64) error
}

// NewUserDeleteHandler returns an HTTP handler that deletes a user and its sessions.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} response.Envelope "User deleted successfully"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Failure 404 {object} response.Envelope "User is not found!"
// @Security BearerAuth
// @Router /users/{id} [delete]
func NewUserDeleteHandler(svc UserDestroyer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, "user delete: bad id", err)
			return
		}

		if err := svc.Destroy(r.Context(), id); err != nil {
			fail(w, r, "user delete failed", err)
			return
		}

		response.Success(w, http.StatusOK, "User deleted successfully", nil)
	}
}
