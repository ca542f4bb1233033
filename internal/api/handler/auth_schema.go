package handler

import "github.com/churchhub/chms-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type registerRequest struct {
	Username        string          `json:"username"         validate:"required"`
	Email           string          `json:"email"            validate:"required,email"`
	Password        string          `json:"password"         validate:"required,min=8"`
	ConfirmPassword string          `json:"confirm_password" validate:"required"`
	Role            string          `json:"role"             validate:"required,oneof=user admin"`
	Department      string          `json:"department"`
	PhoneNumber     string          `json:"phone_number"`
	Address         *addressRequest `json:"address"`
	ChurchBranch    string          `json:"church_branch"`
	Country         string          `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type updateSelfRequest struct {
	Username     string          `json:"username"`
	Department   string          `json:"department"`
	PhoneNumber  string          `json:"phone_number"`
	Address      *addressRequest `json:"address"`
	ChurchBranch string          `json:"church_branch"`
	Country      string          `json:"country"`
	Role         string          `json:"role" validate:"omitempty,oneof=user admin"`
}

type authResponse struct {
	Message   string            `json:"message"`
	Principal *domain.Principal `json:"principal,omitempty"`
	Token     string            `json:"token,omitempty"`
}

type principalResponse struct {
	Message   string            `json:"message,omitempty"`
	Principal *domain.Principal `json:"principal"`
}
