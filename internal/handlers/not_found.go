package handlers

import (
	"net/http"

	"github.com/sbilibin2017/users-api/internal/response"
)

// NewNotFoundHandler answers unmatched routes and methods with the 404 envelope.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, response.ErrRouteNotFound)
	}
}
