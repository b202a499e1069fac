//go:generate mockgen -source=update_current_user.go -destination=update_current_user_mock.go -package=handlers
package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/response"
	"github.com/sbilibin2017/users-api/internal/services"
)

// ProfileImageField is the multipart field carrying the profile image.
const ProfileImageField = "profile-img"

const maxMultipartMemory = 32 << 20

// CurrentUserUpdater updates the owner of a session.
type CurrentUserUpdater interface {
	UpdateCurrentUser(ctx context.Context, session *models.SessionDB, req models.UpdateProfileRequest, image *models.ImageUpload) (*models.User, error)
}

// NewUpdateCurrentUserHandler returns an HTTP handler that updates the caller's own profile.
// Accepts a JSON body or a multipart form with an optional profile-img file (jpeg or png, up to 1MB).
// @Summary Update current user
// @Tags profile
// @Accept json,mpfd
// @Produce json
// @Param name formData string false "Display name"
// @Param description formData string false "Free text description"
// @Param profile-img formData file false "Profile image (jpeg or png, up to 1MB)"
// @Success 200 {object} response.Envelope{data=models.User} "Profile updated successfully"
// @Failure 400 {object} response.Envelope "File format is not supported / File size is too large"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Failure 422 {object} response.Envelope "Validation failed"
// @Security BearerAuth
// @Router /current-user [patch]
func NewUpdateCurrentUserHandler(svc CurrentUserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := currentSession(r)
		if err != nil {
			fail(w, r, "update current user: no session", err)
			return
		}

		var (
			req   models.UpdateProfileRequest
			image *models.ImageUpload
		)

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "multipart/form-data" {
			var closeImage func()
			req, image, closeImage, err = parseProfileForm(r)
			if err != nil {
				fail(w, r, "update current user: parse form", err)
				return
			}
			defer closeImage()
		} else if err := decodeJSON(r, &req); err != nil {
			fail(w, r, "update current user: decode body", err)
			return
		}

		user, err := svc.UpdateCurrentUser(r.Context(), session, req, image)
		if err != nil {
			fail(w, r, "update current user failed", err)
			return
		}

		response.Success(w, http.StatusOK, "Profile updated successfully", user)
	}
}

func parseProfileForm(r *http.Request) (models.UpdateProfileRequest, *models.ImageUpload, func(), error) {
	var req models.UpdateProfileRequest
	noop := func() {}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, nil, noop, services.ErrPayloadTooLarge
		}
		return req, nil, noop, response.ErrInvalidBody
	}

	if vs, ok := r.MultipartForm.Value["name"]; ok && len(vs) > 0 {
		req.Name = &vs[0]
	}
	if vs, ok := r.MultipartForm.Value["description"]; ok && len(vs) > 0 {
		req.Description = &vs[0]
	}

	file, header, err := r.FormFile(ProfileImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, noop, nil
	}
	if err != nil {
		return req, nil, noop, response.ErrInvalidBody
	}

	image := &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return req, image, func() { file.Close() }, nil
}
