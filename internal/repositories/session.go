package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/users-api/internal/models"
)

type SessionReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewSessionReadRepository(db *sqlx.DB, txGetter TxGetter) *SessionReadRepository {
	return &SessionReadRepository{db: db, txGetter: txGetter}
}

// GetByToken returns the session bound to token, or nil when none exists.
func (r *SessionReadRepository) GetByToken(ctx context.Context, token string) (*models.SessionDB, error) {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`
		SELECT id, token, user_id, expired_at, created_at, updated_at
		FROM sessions
		WHERE token = ?
		LIMIT 1
	`)

	var session models.SessionDB
	err := sqlx.GetContext(ctx, ex, &session, query, token)

	logQuery(query, []any{"***"}, session.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type SessionWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewSessionWriteRepository(db *sqlx.DB, txGetter TxGetter) *SessionWriteRepository {
	return &SessionWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the session and fills in its id and timestamps.
func (r *SessionWriteRepository) Create(ctx context.Context, session *models.SessionDB) error {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`
		INSERT INTO sessions (token, user_id, expired_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	now := time.Now().UTC()

	var id int64
	err := sqlx.GetContext(ctx, ex, &id, query, session.Token, session.UserID, session.ExpiredAt, now, now)

	logQuery(query, []any{"***", session.UserID, session.ExpiredAt, now, now}, id, err)

	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	if err != nil {
		return err
	}

	session.ID = id
	session.CreatedAt = now
	session.UpdatedAt = now
	return nil
}

// Delete removes the session with the given id.
func (r *SessionWriteRepository) Delete(ctx context.Context, id int64) error {
	ex := executor(ctx, r.db, r.txGetter)
	query := ex.Rebind(`DELETE FROM sessions WHERE id = ?`)

	res, err := ex.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
