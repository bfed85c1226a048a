package handler

import (
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username             string `json:"username"             validate:"required,min=3,max=64"`
	Password             string `json:"password"             validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken      string      `json:"accessToken"`
	AccessExpiresAt  time.Time   `json:"accessExpiresAt"`
	RefreshToken     string      `json:"refreshToken"`
	RefreshExpiresAt time.Time   `json:"refreshExpiresAt"`
	TokenType        string      `json:"tokenType"`
	PrincipalID      int64       `json:"principalId"`
	Username         string      `json:"username"`
	Role             domain.Role `json:"role"`
}

type memberResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type listMembersResponse struct {
	Members []memberResponse `json:"members"`
	Count   int              `json:"count"`
}

type changePasswordRequest struct {
	CurrentPassword         string `json:"currentPassword"         validate:"required"`
	NewPassword             string `json:"newPassword"             validate:"required,min=8,max=72"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation" validate:"required,eqfield=NewPassword"`
}

func toMemberResponse(a *domain.Account) memberResponse {
	return memberResponse{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		CreatedAt: a.CreatedAt.UTC(),
	}
}
