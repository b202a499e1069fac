package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required,email_pattern"`

	// Password
	// required: true
	// example: Secret123
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on a successful login.
// swagger:model LoginResult
type LoginResult struct {
	// example: 1
	ID int64 `json:"id"`

	// example: John Doe
	Name string `json:"name"`

	// example: john@example.com
	Email string `json:"email"`

	// JWT token
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// example: Bearer
	TokenType string `json:"token_type"`

	// Expiry as unix seconds
	// example: 1718000900
	ExpiredAt int64 `json:"expired_at"`

	// Seconds until expiry
	// example: 900
	MaxAge int64 `json:"max_age"`
}
