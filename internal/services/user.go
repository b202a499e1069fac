package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/models"
	"github.com/sbilibin2017/users-api/internal/validation"
)

// Listing defaults and bounds.
const (
	DefaultPage      = 1
	DefaultPerPage   = 10
	MaxPerPage       = 100
	DefaultSortCol   = "id"
	DefaultDirection = "asc"
)

// UserService handles the administrative user resource.
type UserService struct {
	reader UserReader
	writer UserWriter
	events Publisher
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, events Publisher) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		events: events,
	}
}

// List returns one page of users.
// Missing or malformed page and per_page fall back to their defaults, per_page is capped at MaxPerPage.
// A page whose offset does not fit in an int is treated as malformed.
func (svc *UserService) List(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error) {
	query.Col = strings.TrimSpace(query.Col)
	query.Direction = strings.ToLower(strings.TrimSpace(query.Direction))
	if err := validation.Struct(query); err != nil {
		logger.Log.Infow("invalid list query", "err", err)
		return nil, err
	}

	page := positiveInt(query.Page, DefaultPage)
	perPage := positiveInt(query.PerPage, DefaultPerPage)
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page-1 > math.MaxInt/perPage {
		page = DefaultPage
	}
	col := query.Col
	if col == "" {
		col = DefaultSortCol
	}
	direction := query.Direction
	if direction == "" {
		direction = DefaultDirection
	}

	rows, total, err := svc.reader.List(ctx, perPage, perPage*(page-1), col, direction)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.Public())
	}

	return &models.UserPage{
		Rows:       users,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}, nil
}

// Detail returns a single user.
func (svc *UserService) Detail(ctx context.Context, id int64) (*models.User, error) {
	user, err := svc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Update applies the provided fields to a user.
func (svc *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		logger.Log.Infow("invalid user update", "err", err)
		return nil, err
	}

	user, err := svc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}

	publish(ctx, svc.events, models.EventUserUpdated, user.ID)
	return user.Public(), nil
}

// Destroy deletes a user together with its sessions.
func (svc *UserService) Destroy(ctx context.Context, id int64) error {
	user, err := svc.find(ctx, id)
	if err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}

	publish(ctx, svc.events, models.EventUserDeleted, user.ID)
	return nil
}

func (svc *UserService) find(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
