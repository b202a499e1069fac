//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. The email must be unique and the password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} response.Envelope{data=models.User} "User successfully registered"
// @Failure 400 {object} response.Envelope "Email already registered / invalid request body"
// @Failure 422 {object} response.Envelope "Validation failed"
// @Failure 429 {object} response.Envelope "Too many requests"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			fail(w, r, "register: decode body", err)
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			fail(w, r, "register failed", err)
			return
		}

		response.Success(w, http.StatusCreated, MessageSuccess, user)
	}
}
