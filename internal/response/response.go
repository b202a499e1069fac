// Package response writes the uniform JSON envelope returned by every endpoint.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/services"
	"github.com/sbilibin2017/users-api/internal/validation"
)

// Errors raised by the HTTP layer itself.
var (
	ErrInvalidBody     = errors.New("invalid request body")
	ErrRouteNotFound   = errors.New("route not found")
	ErrTooManyRequests = errors.New("too many requests")
)

// Envelope is the body of every response.
// swagger:model Envelope
type Envelope struct {
	// example: Success
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

// Pagination describes the page returned by a listing.
// swagger:model Pagination
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type errorMapping struct {
	status  int
	message string
}

var errorMappings = []struct {
	err error
	errorMapping
}{
	{services.ErrEmailAlreadyRegistered, errorMapping{http.StatusBadRequest, "Email already registered"}},
	{services.ErrInvalidCredentials, errorMapping{http.StatusBadRequest, "Email or password is not valid"}},
	{services.ErrUnsupportedMediaType, errorMapping{http.StatusBadRequest, "File format is not supported"}},
	{services.ErrPayloadTooLarge, errorMapping{http.StatusBadRequest, "File size is too large"}},
	{ErrInvalidBody, errorMapping{http.StatusBadRequest, "Invalid request body"}},
	{services.ErrUnauthorized, errorMapping{http.StatusUnauthorized, "Unauthorized"}},
	{services.ErrUserNotFound, errorMapping{http.StatusNotFound, "User is not found!"}},
	{ErrRouteNotFound, errorMapping{http.StatusNotFound, "Route not found"}},
	{ErrTooManyRequests, errorMapping{http.StatusTooManyRequests, "Too many request, please try again later."}},
}

// JSON writes env with the given status.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

// Success writes a 2xx envelope carrying data.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Message: message, Data: data})
}

// Page writes a 200 envelope carrying one page of users.
func Page(w http.ResponseWriter, message string, page *models.UserPage) {
	JSON(w, http.StatusOK, Envelope{
		Message: message,
		Data:    page.Rows,
		Pagination: &Pagination{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}

// Error maps err to its status and message. Unknown errors are logged and hidden behind a 500.
func Error(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		JSON(w, http.StatusUnprocessableEntity, Envelope{Message: vErr.Message, Errors: vErr.Fields})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			JSON(w, m.status, Envelope{Message: m.message})
			return
		}
	}

	logger.Log.Errorw("internal error", "err", err)
	JSON(w, http.StatusInternalServerError, Envelope{Message: "Internal server error"})
}
