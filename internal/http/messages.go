package httpx

import (
	"errors"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
)

// User-visible messages for identity failures.
const (
	msgWrongPassword     = "Incorrect password. Please try again."
	msgUserNotFound      = "No account found with this email."
	msgInvalidEmail      = "Invalid email address."
	msgInvalidCredential = "Invalid email or password."
	msgEmailInUse        = "This email is already registered. Please login."
	msgWeakPassword      = "Password must be at least 6 characters long, " +
		"contain at least one uppercase letter and one lowercase letter"
	msgFederatedFailed = "Google login failed"
	msgNoSession       = "Please sign in again."
	msgAdminLogin      = "Admin authentication is not available"
)

// loginMessage maps a sign-in failure to the text shown on the login screen.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, domainauth.ErrWrongPassword):
		return msgWrongPassword
	case errors.Is(err, domainauth.ErrUserNotFound):
		return msgUserNotFound
	case errors.Is(err, domainauth.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, domainauth.ErrInvalidCredential):
		return msgInvalidCredential
	case errors.Is(err, domainauth.ErrFederatedSignInFailed):
		return msgFederatedFailed
	default:
		return "Login failed. Please try again."
	}
}

// registerMessage maps an account-creation failure to the text shown on the registration screen.
func registerMessage(err error) string {
	switch {
	case errors.Is(err, domainauth.ErrEmailAlreadyInUse):
		return msgEmailInUse
	case errors.Is(err, domainauth.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, domainauth.ErrWeakPassword):
		return msgWeakPassword
	case errors.Is(err, domainauth.ErrFederatedSignInFailed):
		return msgFederatedFailed
	default:
		return "Registration failed. Please try again."
	}
}
