package dto

import (
	"fmt"
	"strings"

	"github.com/baechuer/identity-service/internal/domain"
	"github.com/baechuer/identity-service/internal/infrastructure/security"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Password  string `json:"password" validate:"required"`
}

// Validate trims the text fields (never the password) and checks the rules.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if err := validateStruct(r); err != nil {
		return err
	}

	// bytes, not runes: the validator's max counts characters
	if len(r.Password) > security.MaxPasswordBytes {
		return domain.ErrInvalidField("password",
			fmt.Sprintf("password must be at most %d bytes", security.MaxPasswordBytes))
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateStruct(r)
}
