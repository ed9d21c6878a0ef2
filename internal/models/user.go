package models

// User is the acting dashboard user as carried in the access token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
