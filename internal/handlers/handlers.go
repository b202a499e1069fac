package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/middlewares"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
	"github.com/sbilibin2017/users-api/internal/services"
)

// MessageSuccess is returned by endpoints that only carry data.
const MessageSuccess = "Success"

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return services.ErrPayloadTooLarge
		}
		return response.ErrInvalidBody
	}
}

// pathID parses the {id} URL parameter. Anything that is not a positive integer
// cannot name a user, so it is reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrUserNotFound
	}
	return id, nil
}

// currentSession returns the session attached by the auth middleware.
func currentSession(r *http.Request) (*models.SessionDB, error) {
	session := middlewares.SessionFromContext(r.Context())
	if session == nil {
		return nil, services.ErrUnauthorized
	}
	return session, nil
}

// fail logs err against the request and writes the mapped envelope.
func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.FromContext(r.Context()).Infow(msg, "method", r.Method, "path", r.URL.Path, "err", err)
	response.Error(w, err)
}
