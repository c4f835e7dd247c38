package handler

import "github.com/membersys/account-service/internal/core/domain"

// statusResponse is the envelope returned by every form submission endpoint:
// {status: success|fail, message?, invalid_fields?}.
type statusResponse struct {
	Status        string              `json:"status"`
	Message       string              `json:"message,omitempty"`
	InvalidFields []domain.FieldError `json:"invalid_fields,omitempty"`
}

func success(message string) statusResponse {
	return statusResponse{Status: "success", Message: message}
}

func fail(fields ...domain.FieldError) statusResponse {
	return statusResponse{Status: "fail", InvalidFields: fields}
}

func failMessage(message string) statusResponse {
	return statusResponse{Status: "fail", Message: message}
}

// --- Request types ---
// Fields bind from both HTML form posts and JSON bodies. Domain rules are
// checked (and accumulated) by the account service, not here.

type signupRequest struct {
	Name            string `json:"name"             form:"name"`
	Username        string `json:"username"         form:"username"`
	Email           string `json:"email"            form:"email"`
	Password        string `json:"password"         form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type resendRequest struct {
	Email string `json:"email" form:"email"`
}

type passwordResetRequest struct {
	Email           string `json:"email"            form:"email"`
	Password        string `json:"password"         form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type verificationCodeRequest struct {
	Verification string `json:"verification" form:"verification"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
