package dto

import "github.com/google/uuid"

type GoogleLoginRequest struct {
	IdToken string `json:"idToken"`
}

type AuthUserDTO struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

type GoogleLoginResponse struct {
	Ok    bool        `json:"ok"`
	User  AuthUserDTO `json:"user"`
	IsNew bool        `json:"is_new"`
}
