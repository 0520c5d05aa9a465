package dto

import (
	"time"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/domain"
)

// UserView is the public shape of a user. It never carries the password hash.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(p domain.Profile) UserView {
	return UserView{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt,
	}
}

type RegisterResponse struct {
	Success bool      `json:"success"`
	Data    *UserView `json:"data"`
	Message string    `json:"message,omitempty"`
}

type LoginResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}

func NewLoginResponse(a auth.Authenticated) LoginResponse {
	return LoginResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Token:     a.Token,
	}
}
