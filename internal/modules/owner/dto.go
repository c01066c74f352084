package owner

import "time"

type CreateOwnerDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
}

type ownerResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created"`
}

type createResponse struct {
	Owner ownerResponse `json:"owner"`
	Token string        `json:"token"`
}
