package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginReq := models.LoginRequest{Email: "john@example.com", Password: "test123ASD"}

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedMsg  string
		expectToken  bool
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"test123ASD"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), loginReq).Return(&models.LoginResult{
					ID:          1,
					Name:        "john",
					Email:       "john@example.com",
					AccessToken: "token123",
					TokenType:   "Bearer",
					ExpiredAt:   1718000900,
					MaxAge:      900,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Success",
			expectToken:  true,
		},
		{
			name: "invalid credentials",
			body: `{"email":"john@example.com","password":"test123ASD"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), loginReq).Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Email or password is not valid",
		},
		{
			name: "internal error",
			body: `{"email":"john@example.com","password":"test123ASD"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), loginReq).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
		{
			name:         "invalid body",
			body:         `{"email":`,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeBody(t, rr)
			assert.Equal(t, tt.expectedMsg, resp["message"])
			if tt.expectToken {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "token123", data["access_token"])
				assert.Equal(t, "Bearer", data["token_type"])
				assert.Equal(t, float64(900), data["max_age"])
			}
		})
	}
}
