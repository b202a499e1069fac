package models

import (
	"time"

	"github.com/google/uuid"
)

// User lifecycle event names.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventUserLoggedOut  = "user.logged_out"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// UserEvent is the payload published to the event topic.
type UserEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Event     string    `json:"event"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
