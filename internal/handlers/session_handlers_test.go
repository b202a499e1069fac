package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/users-api/internal/middlewares"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/services"
	"github.com/sbilibin2017/users-api/internal/validation"
)

var testSession = &models.SessionDB{ID: 5, Token: "tok", UserID: 7}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middlewares.ContextWithSession(req.Context(), testSession))
}

func strPtr(s string) *string { return &s }

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		withSession  bool
		mockSetup    func(m *MockLogouter)
		expectedCode int
		expectedMsg  string
	}{
		{
			name:        "success",
			withSession: true,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), testSession).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Logout success",
		},
		{
			name:         "no session",
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Unauthorized",
		},
		{
			name:        "store failure",
			withSession: true,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), testSession).Return(errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLogouter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/logout", nil)
			if tt.withSession {
				req = withSession(req)
			}
			rr := httptest.NewRecorder()

			NewLogoutHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedMsg, decodeBody(t, rr)["message"])
		})
	}
}

func TestCurrentUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockCurrentUserGetter(ctrl)
	mockSvc.EXPECT().CurrentUser(gomock.Any(), testSession).
		Return(&models.User{ID: 7, Name: "john", Email: "john@example.com"}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/current-user", nil))
	rr := httptest.NewRecorder()

	NewCurrentUserHandler(mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decodeBody(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "john@example.com", data["email"])
}

func TestCurrentUserHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockCurrentUserGetter(ctrl)
	mockSvc.EXPECT().CurrentUser(gomock.Any(), testSession).Return(nil, services.ErrUserNotFound)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/current-user", nil))
	rr := httptest.NewRecorder()

	NewCurrentUserHandler(mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateCurrentUserHandler_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockCurrentUserUpdater)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			body: `{"name":"Jane","description":"Gopher"}`,
			mockSetup: func(m *MockCurrentUserUpdater) {
				m.EXPECT().UpdateCurrentUser(gomock.Any(), testSession,
					models.UpdateProfileRequest{Name: strPtr("Jane"), Description: strPtr("Gopher")}, nil).
					Return(&models.User{ID: 7, Name: "Jane", Description: strPtr("Gopher")}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "Profile updated successfully",
		},
		{
			name: "empty name",
			body: `{"name":""}`,
			mockSetup: func(m *MockCurrentUserUpdater) {
				m.EXPECT().UpdateCurrentUser(gomock.Any(), testSession,
					models.UpdateProfileRequest{Name: strPtr("")}, nil).
					Return(nil, validation.NewError("name", "Is required"))
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedMsg:  "Name is required",
		},
		{
			name:         "malformed",
			body:         `{"name"`,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockCurrentUserUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := withSession(httptest.NewRequest(http.MethodPatch, "/api/current-user", bytes.NewBufferString(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			NewUpdateCurrentUserHandler(mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedMsg, decodeBody(t, rr)["message"])
		})
	}
}

func TestUpdateCurrentUserHandler_Multipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Jane"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="profile-img"; filename="me.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	mockSvc := NewMockCurrentUserUpdater(ctrl)
	mockSvc.EXPECT().UpdateCurrentUser(gomock.Any(), testSession, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ *models.SessionDB, req models.UpdateProfileRequest, image *models.ImageUpload) (*models.User, error) {
			require.NotNil(t, req.Name)
			assert.Equal(t, "Jane", *req.Name)
			assert.Nil(t, req.Description)
			require.NotNil(t, image)
			assert.Equal(t, "me.png", image.Filename)
			assert.Equal(t, "image/png", image.ContentType)
			assert.Equal(t, int64(12), image.Size)
			return &models.User{ID: 7, Name: "Jane", ProfileImg: strPtr("/public/x.png")}, nil
		})

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/current-user", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	NewUpdateCurrentUserHandler(mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decodeBody(t, rr)["data"].(map[string]any)
	assert.Equal(t, "/public/x.png", data["profile_img"])
}

func TestUpdateCurrentUserHandler_UnsupportedImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile-img", "doc.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	mockSvc := NewMockCurrentUserUpdater(ctrl)
	mockSvc.EXPECT().UpdateCurrentUser(gomock.Any(), testSession, gomock.Any(), gomock.Not(gomock.Nil())).
		Return(nil, services.ErrUnsupportedMediaType)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/current-user", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	NewUpdateCurrentUserHandler(mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File format is not supported", decodeBody(t, rr)["message"])
}
