package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/services"
	"github.com/sbilibin2017/users-api/internal/validation"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validReq := models.RegisterRequest{
		Name:     "john",
		Email:    "john@example.com",
		Password: "test123ASD",
	}

	tests := []struct {
		name         string
		rawBody      string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), validReq).
					Return(&models.User{ID: 1, Name: "john", Email: "john@example.com"}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedMsg:  "Success",
		},
		{
			name: "email already registered",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), validReq).
					Return(nil, services.ErrEmailAlreadyRegistered)
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Email already registered",
		},
		{
			name: "validation error",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), validReq).
					Return(nil, validation.NewError("password", "At least contain lower char, upper char & number"))
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedMsg:  "Password at least contain lower char, upper char & number",
		},
		{
			name: "internal server error",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), validReq).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			body := []byte(tt.rawBody)
			if tt.rawBody == "" {
				body, _ = json.Marshal(validReq)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeBody(t, rr)
			assert.Equal(t, tt.expectedMsg, resp["message"])
			if tt.expectedCode == http.StatusCreated {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "john", data["name"])
				assert.NotContains(t, data, "password")
			}
		})
	}
}
