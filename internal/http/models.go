package http

import "github.com/policyauth/policy-auth-api/internal/domain"

// RegisterRequest is the payload accepted when creating an account.
type RegisterRequest struct {
	Email       string `json:"email" example:"alice@example.com" validate:"required"`
	Role        string `json:"role" example:"user" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" example:"2000-01-01" validate:"required"`
	Password    string `json:"password" example:"Passw0rd!" validate:"required"`
}

// LoginRequest is the payload accepted when logging in.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com" validate:"required"`
	Password string `json:"password" example:"Passw0rd!" validate:"required"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"internal server error"`
}

func (r RegisterRequest) toInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:       r.Email,
		Role:        r.Role,
		DateOfBirth: r.DateOfBirth,
		Password:    r.Password,
	}
}

func (r LoginRequest) toInput() domain.LoginInput {
	return domain.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}
