//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
)

// Loginer defines the interface for user authentication
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
}

// NewLoginHandler returns an HTTP handler for user login
// @Summary User login
// @Description Authenticate user and return a session bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} response.Envelope{data=models.LoginResult} "Token returned"
// @Failure 400 {object} response.Envelope "Email or password is not valid"
// @Failure 422 {object} response.Envelope "Validation failed"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			fail(w, r, "login: decode body", err)
			return
		}

		result, err := svc.Login(r.Context(), req)
		if err != nil {
			fail(w, r, "login failed", err)
			return
		}

		response.Success(w, http.StatusOK, MessageSuccess, result)
	}
}
