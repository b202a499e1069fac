//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services
package services

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/repositories"
	"github.com/sbilibin2017/users-api/internal/validation"
)

// Error variables
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("email or password is not valid")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrUserNotFound           = errors.New("user not found")
	ErrUnsupportedMediaType   = errors.New("file format is not supported")
	ErrPayloadTooLarge        = errors.New("file size is too large")
)

// TokenType is the Authorization scheme of issued tokens.
const TokenType = "Bearer"

// MaxImageSize is the largest accepted profile image in bytes.
const MaxImageSize = 1_000_000

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	List(ctx context.Context, limit, offset int, col, direction string) ([]*models.UserDB, int64, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	Update(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, id int64) error
}

// SessionReader defines read-only operations for sessions.
type SessionReader interface {
	GetByToken(ctx context.Context, token string) (*models.SessionDB, error)
}

// SessionWriter defines write operations for sessions.
type SessionWriter interface {
	Create(ctx context.Context, session *models.SessionDB) error
	Delete(ctx context.Context, id int64) error
}

// Tokener issues and checks access tokens.
type Tokener interface {
	Generate(ctx context.Context, user *models.User) (string, time.Time, error)
	Validate(ctx context.Context, token string) error
	GetTokenFromHeader(ctx context.Context, header string) (string, error)
}

// ImageStorage persists profile images and returns their public location.
type ImageStorage interface {
	Save(ctx context.Context, originalName, contentType string, content io.Reader) (string, error)
	Delete(ctx context.Context, location string) error
}

// AuthService handles registration, login, sessions and the current user's profile.
type AuthService struct {
	userReader    UserReader
	userWriter    UserWriter
	sessionReader SessionReader
	sessionWriter SessionWriter
	tokens        Tokener
	images        ImageStorage
	events        Publisher
	bcryptCost    int
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	userReader UserReader,
	userWriter UserWriter,
	sessionReader SessionReader,
	sessionWriter SessionWriter,
	tokens Tokener,
	images ImageStorage,
	events Publisher,
	bcryptCost int,
) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userReader:    userReader,
		userWriter:    userWriter,
		sessionReader: sessionReader,
		sessionWriter: sessionWriter,
		tokens:        tokens,
		images:        images,
		events:        events,
		bcryptCost:    bcryptCost,
	}
}

// Register registers a new user.
func (svc *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		logger.Log.Infow("invalid registration", "err", err)
		return nil, err
	}

	existing, err := svc.userReader.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("email already registered", "email", req.Email)
		return nil, ErrEmailAlreadyRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Description: req.Description,
	}
	if err := svc.userWriter.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrEmailAlreadyRegistered
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	publish(ctx, svc.events, models.EventUserRegistered, user.ID)
	return user.Public(), nil
}

// Login authenticates a user, opens a session and returns its access token.
func (svc *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := validation.Struct(req); err != nil {
		logger.Log.Infow("invalid login", "err", err)
		return nil, err
	}

	user, err := svc.userReader.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := svc.tokens.Generate(ctx, user.Public())
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	session := &models.SessionDB{
		Token:     token,
		UserID:    user.ID,
		ExpiredAt: expiresAt.Unix(),
	}
	if err := svc.sessionWriter.Create(ctx, session); err != nil {
		logger.Log.Errorw("failed to save session", "err", err)
		return nil, err
	}

	publish(ctx, svc.events, models.EventUserLoggedIn, user.ID)

	maxAge := int64(time.Until(expiresAt).Round(time.Second) / time.Second)
	if maxAge < 0 {
		maxAge = 0
	}

	return &models.LoginResult{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		AccessToken: token,
		TokenType:   TokenType,
		ExpiredAt:   expiresAt.Unix(),
		MaxAge:      maxAge,
	}, nil
}

// Authorize resolves the session behind an Authorization header value.
func (svc *AuthService) Authorize(ctx context.Context, header string) (*models.SessionDB, error) {
	token, err := svc.tokens.GetTokenFromHeader(ctx, header)
	if err != nil {
		logger.Log.Infow("missing bearer token", "err", err)
		return nil, ErrUnauthorized
	}

	if err := svc.tokens.Validate(ctx, token); err != nil {
		logger.Log.Infow("invalid token", "err", err)
		return nil, ErrUnauthorized
	}

	session, err := svc.sessionReader.GetByToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to get session", "err", err)
		return nil, err
	}
	if session == nil {
		logger.Log.Infow("session not found")
		return nil, ErrUnauthorized
	}
	if session.Expired(time.Now()) {
		logger.Log.Infow("session expired", "session_id", session.ID)
		return nil, ErrUnauthorized
	}

	return session, nil
}

// Logout closes the session.
func (svc *AuthService) Logout(ctx context.Context, session *models.SessionDB) error {
	if err := svc.sessionWriter.Delete(ctx, session.ID); err != nil {
		logger.Log.Errorw("failed to delete session", "err", err)
		return err
	}

	publish(ctx, svc.events, models.EventUserLoggedOut, session.UserID)
	return nil
}

// CurrentUser returns the owner of the session.
func (svc *AuthService) CurrentUser(ctx context.Context, session *models.SessionDB) (*models.User, error) {
	user, err := svc.userReader.GetByID(ctx, session.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Public(), nil
}

// UpdateCurrentUser applies the provided fields, and optionally a new profile image, to the session owner.
func (svc *AuthService) UpdateCurrentUser(ctx context.Context, session *models.SessionDB, req models.UpdateProfileRequest, image *models.ImageUpload) (*models.User, error) {
	if image != nil {
		if err := checkImage(image); err != nil {
			logger.Log.Infow("rejected profile image", "content_type", image.ContentType, "size", image.Size, "err", err)
			return nil, err
		}
	}

	if err := validation.Struct(req); err != nil {
		logger.Log.Infow("invalid profile update", "err", err)
		return nil, err
	}

	user, err := svc.userReader.GetByID(ctx, session.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var stored string
	if image != nil {
		stored, err = svc.images.Save(ctx, image.Filename, image.ContentType, image.Content)
		if err != nil {
			logger.Log.Errorw("failed to store profile image", "err", err)
			return nil, err
		}
		user.ProfileImg = &stored
	}
	applyUpdate(user, req)

	if err := svc.userWriter.Update(ctx, user); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		if stored != "" {
			svc.removeImage(ctx, stored)
		}
		return nil, err
	}

	publish(ctx, svc.events, models.EventUserUpdated, user.ID)
	return user.Public(), nil
}

// removeImage drops a stored image that no row refers to. Failures are only logged.
func (svc *AuthService) removeImage(ctx context.Context, location string) {
	if err := svc.images.Delete(context.WithoutCancel(ctx), location); err != nil {
		logger.Log.Warnw("failed to remove orphaned profile image", "location", location, "err", err)
	}
}

func checkImage(image *models.ImageUpload) error {
	if !allowedImageTypes[image.ContentType] {
		return ErrUnsupportedMediaType
	}
	if image.Size > MaxImageSize {
		return ErrPayloadTooLarge
	}
	return nil
}

func applyUpdate(user *models.UserDB, req models.UpdateProfileRequest) {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Description != nil {
		user.Description = req.Description
	}
}
