//go:generate mockgen -source=users_list.go -destination=users_list_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// UserLister returns one page of users.
type UserLister interface {
	List(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error)
}

// NewUsersListHandler returns an HTTP handler for the paginated user listing.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number, 1-based" default(1)
// @Param per_page query int false "Rows per page, at most 100" default(10)
// @Param col query string false "Sort column" Enums(id, name, email, created_at, updated_at)
// @Param direction query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} response.Envelope{data=[]models.User,pagination=response.Pagination}
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Failure 422 {object} response.Envelope "Invalid sort"
// @Security BearerAuth
// @Router /users [get]
func NewUsersListHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page, err := svc.List(r.Context(), models.ListUsersQuery{
			Page:      q.Get("page"),
			PerPage:   q.Get("per_page"),
			Col:       q.Get("col"),
			Direction: q.Get("direction"),
		})
		if err != nil {
			fail(w, r, "list users failed", err)
			return
		}

		response.Page(w, MessageSuccess, page)
	}
}
