package models

import (
	"time"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID          int64     `db:"id"`          // Primary key
	Name        string    `db:"name"`        // Display name
	Email       string    `db:"email"`       // Unique email
	Password    string    `db:"password"`    // bcrypt hash
	Description *string   `db:"description"` // Optional free text
	ProfileImg  *string   `db:"profile_img"` // Public path of the profile image
	CreatedAt   time.Time `db:"created_at"`  // Creation timestamp
	UpdatedAt   time.Time `db:"updated_at"`  // Last update timestamp
}

// User is the public projection of a user record. It never carries the password.
// swagger:model User
type User struct {
	// example: 1
	ID int64 `json:"id"`

	// example: John Doe
	Name string `json:"name"`

	// example: john@example.com
	Email string `json:"email"`

	// example: Backend developer
	Description *string `json:"description"`

	// example: /public/1718000000000_cpb5s0a0lkd1b3k4cng0.png
	ProfileImg *string `json:"profile_img"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the public projection of the record.
func (u *UserDB) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Description: u.Description,
		ProfileImg:  u.ProfileImg,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UpdateUserRequest represents the JSON body of an administrative user update.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// example: Jane Doe
	Name *string `json:"name" validate:"omitnil,min=1,max=255"`
}

// UpdateProfileRequest represents the fields of a current-user update.
// Absent fields are left untouched.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// example: John Doe
	Name *string `json:"name" validate:"omitnil,min=1,max=255"`

	// example: Backend developer
	Description *string `json:"description"`
}
