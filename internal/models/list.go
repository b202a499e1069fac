package models

// ListUsersQuery holds the raw query parameters of the user listing.
type ListUsersQuery struct {
	Page      string `json:"page"`
	PerPage   string `json:"per_page"`
	Col       string `json:"col" validate:"omitempty,oneof=id name email created_at updated_at"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
}

// UserPage is one page of users plus the numbers needed to render pagination.
type UserPage struct {
	Rows       []*User
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}
