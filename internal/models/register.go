package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name
	// required: true
	// example: John Doe
	Name string `json:"name" validate:"required,min=1,max=255"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required,max=255,email_pattern"`

	// Password, at least 8 characters with a lower case letter, an upper case letter and a digit
	// required: true
	// example: Secret123
	Password string `json:"password" validate:"required,min=8,max=72,max_bytes=72,password_strength"`

	// Optional description
	// example: Backend developer
	Description *string `json:"description"`
}
