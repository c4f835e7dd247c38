package service

import (
	"github.com/go-playground/validator/v10"
)

const (
	usernameMinLen = 4
	usernameMaxLen = 11
	passwordMinLen = 4
)

const (
	msgUsernameLength  = "Username must contain between 4 and 11 characters"
	msgUsernameCharset = "Username may only contain letters and numbers"
	msgUsernameTaken   = "Username already exists"
	msgEmailInvalid    = "Email is invalid"
	msgPasswordLength  = "Password length should not be less than four characters"
	msgPasswordMatch   = "Passwords must match"
)

// validate backs the syntactic field checks. Shared instance; Var calls are
// safe for concurrent use.
var validate = validator.New()

func validUsernameLength(username string) bool {
	return len(username) >= usernameMinLen && len(username) <= usernameMaxLen
}

func validUsernameCharset(username string) bool {
	return validate.Var(username, "alphanum") == nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func validPasswordLength(password string) bool {
	return len(password) >= passwordMinLen
}
