package middlewares

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/response"
	"github.com/sbilibin2017/users-api/internal/sanitizer"
	"github.com/sbilibin2017/users-api/internal/services"
)

// MaxMultipartMemory bounds the in-memory part of a parsed multipart form.
const MaxMultipartMemory = 32 << 20

// SanitizerMiddleware strips markup from every client supplied string before
// handlers see it: JSON bodies, multipart values, query values, headers and URL params.
// URL params are only populated once chi has routed the request, so mount it
// inside a Group rather than on the root router.
func SanitizerMiddleware(s *sanitizer.Sanitizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

			switch {
			case mediaType == "application/json" && r.Body != nil:
				body, err := io.ReadAll(r.Body)
				r.Body.Close()
				if err != nil {
					response.Error(w, bodyError(err))
					return
				}
				clean, err := s.JSON(body)
				if err != nil {
					logger.FromContext(r.Context()).Infow("malformed json body", "error", err)
					response.Error(w, response.ErrInvalidBody)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(clean))
				r.ContentLength = int64(len(clean))

			case mediaType == "multipart/form-data":
				if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
					logger.FromContext(r.Context()).Infow("malformed multipart body", "error", err)
					response.Error(w, bodyError(err))
					return
				}
				sanitizeValues(s, r.MultipartForm.Value)
			}

			query := r.URL.Query()
			sanitizeValues(s, query)
			r.URL.RawQuery = query.Encode()

			for name, values := range r.Header {
				if strings.EqualFold(name, "Authorization") {
					continue
				}
				for i, v := range values {
					values[i] = s.String(v)
				}
			}

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				for i, v := range rctx.URLParams.Values {
					rctx.URLParams.Values[i] = s.String(v)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func sanitizeValues(s *sanitizer.Sanitizer, values map[string][]string) {
	for _, vs := range values {
		for i, v := range vs {
			vs[i] = s.String(v)
		}
	}
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return services.ErrPayloadTooLarge
	}
	return response.ErrInvalidBody
}
