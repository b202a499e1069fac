package models

import "time"

// SessionDB represents a login session record in the database.
// A request is authenticated only while a row for its token exists and ExpiredAt is in the future.
type SessionDB struct {
	ID        int64     `db:"id"`
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiredAt int64     `db:"expired_at"` // unix seconds
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *SessionDB) Expired(now time.Time) bool {
	return s.ExpiredAt <= now.Unix()
}
