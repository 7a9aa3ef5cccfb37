package types

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
