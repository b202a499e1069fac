package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/users-api/internal/models"
)

const userColumns = `id, name, email, password, description, profile_img, created_at, updated_at`

// sortColumns whitelists the columns a listing may be ordered by.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email, or nil when none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id, or nil when none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	return r.getOne(ctx, query, id)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	ex := executor(ctx, r.db, r.txGetter)
	query = ex.Rebind(query)

	var user models.UserDB
	err := sqlx.GetContext(ctx, ex, &user, query, args...)

	logQuery(query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users ordered by col and direction, plus the total row count.
func (r *UserReadRepository) List(ctx context.Context, limit, offset int, col, direction string) ([]*models.UserDB, int64, error) {
	column, ok := sortColumns[col]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort column %q", col)
	}
	direction = strings.ToUpper(direction)
	if direction != "ASC" && direction != "DESC" {
		return nil, 0, fmt.Errorf("unsupported sort direction %q", direction)
	}

	ex := executor(ctx, r.db, r.txGetter)

	countQuery := `SELECT COUNT(*) FROM users`
	var total int64
	err := sqlx.GetContext(ctx, ex, &total, countQuery)
	logQuery(countQuery, nil, total, err)
	if err != nil {
		return nil, 0, err
	}

	order := column + " " + direction
	if column != "id" {
		order += ", id ASC"
	}
	query := ex.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY ` + order + ` LIMIT ? OFFSET ?`)
	args := []any{limit, offset}

	users := make([]*models.UserDB, 0, limit)
	err = sqlx.SelectContext(ctx, ex, &users, query, args...)
	logQuery(query, args, len(users), err)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the user and fills in its id and timestamps.
// A duplicate email yields ErrUniqueViolation.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`
		INSERT INTO users (name, email, password, description, profile_img, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	now := time.Now().UTC()
	args := []any{user.Name, user.Email, user.Password, user.Description, user.ProfileImg, now, now}

	var id int64
	err := sqlx.GetContext(ctx, ex, &id, query, args...)

	logQuery(query, []any{user.Name, user.Email, "***", user.Description, user.ProfileImg, now, now}, id, err)

	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	if err != nil {
		return err
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// Update stores the mutable fields of the user and bumps updated_at.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) error {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`
		UPDATE users
		SET name = ?, description = ?, profile_img = ?, updated_at = ?
		WHERE id = ?
	`)

	now := time.Now().UTC()
	args := []any{user.Name, user.Description, user.ProfileImg, now, user.ID}

	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	user.UpdatedAt = now
	return nil
}

// Delete removes the user. Its sessions go with it through the foreign key cascade.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`DELETE FROM users WHERE id = ?`)

	res, err := ex.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
