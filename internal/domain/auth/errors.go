package auth

import "errors"

// Identity operation failures. Callers match them with errors.Is; adapters may wrap them.
var (
	ErrInvalidEmail          = errors.New("invalid email")
	ErrWeakPassword          = errors.New("weak password")
	ErrEmailAlreadyInUse     = errors.New("email already in use")
	ErrWrongPassword         = errors.New("wrong password")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredential     = errors.New("invalid credential")
	ErrFederatedSignInFailed = errors.New("federated sign-in failed")
	ErrNoActiveSession       = errors.New("no active session")
)

// Stable error codes used in JSON responses and templates.
const (
	CodeInvalidEmail          = "invalid-email"
	CodeWeakPassword          = "weak-password"
	CodeEmailAlreadyInUse     = "email-already-in-use"
	CodeWrongPassword         = "wrong-password"
	CodeUserNotFound          = "user-not-found"
	CodeInvalidCredential     = "invalid-credential"
	CodeFederatedSignInFailed = "federated-sign-in-failed"
	CodeNoActiveSession       = "no-active-session"
)

//nolint:gochecknoglobals // static read-only lookup
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidEmail, CodeInvalidEmail},
	{ErrWeakPassword, CodeWeakPassword},
	{ErrEmailAlreadyInUse, CodeEmailAlreadyInUse},
	{ErrWrongPassword, CodeWrongPassword},
	{ErrUserNotFound, CodeUserNotFound},
	{ErrInvalidCredential, CodeInvalidCredential},
	{ErrFederatedSignInFailed, CodeFederatedSignInFailed},
	{ErrNoActiveSession, CodeNoActiveSession},
}

// Code returns the stable code for an identity error, or "" when err is not one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ""
}

// IsIdentityError reports whether err belongs to the identity error taxonomy.
func IsIdentityError(err error) bool { return Code(err) != "" }
