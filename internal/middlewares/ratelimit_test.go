package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/users-api/internal/ratelimit"
)

func TestRateLimitMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		result           ratelimit.Result
		err              error
		expectedStatus   int
		expectNextCalled bool
		expectedRetry    string
		expectedRemain   string
	}{
		{
			name:             "Allowed",
			result:           ratelimit.Result{Allowed: true, Limit: 100, Remaining: 99, ResetAfter: time.Minute},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
			expectedRemain:   "99",
		},
		{
			name:             "Exceeded",
			result:           ratelimit.Result{Allowed: false, Limit: 100, Remaining: 0, ResetAfter: 1500 * time.Millisecond},
			expectedStatus:   http.StatusTooManyRequests,
			expectNextCalled: false,
			expectedRetry:    "2",
			expectedRemain:   "0",
		},
		{
			name:             "StoreErrorFailsOpen",
			result:           ratelimit.Result{Allowed: true},
			err:              errors.New("redis down"),
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumer := NewMockConsumer(ctrl)
			consumer.EXPECT().Consume(gomock.Any(), "192.0.2.1").Return(tt.result, tt.err)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:5555"
			rr := httptest.NewRecorder()

			RateLimitMiddleware(consumer)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectedRetry, rr.Header().Get("Retry-After"))
			assert.Equal(t, tt.expectedRemain, rr.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimitMiddleware_MemoryStore(t *testing.T) {
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 2, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RateLimitMiddleware(limiter)(next)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:1000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.8:1000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", clientIP(req))
}
