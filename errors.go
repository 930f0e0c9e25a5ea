package adminkit

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrMissingBearerToken is returned when the authorization header is absent
// or does not carry a bearer credential.
var ErrMissingBearerToken = errors.New("missing or malformed authorization header", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("MISSING_BEARER")

// ErrInvalidToken is returned when the identity service rejects the caller's token.
var ErrInvalidToken = errors.New("invalid authentication token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_TOKEN")

// ErrAdminRequired is returned when the caller is not in the admin registry.
var ErrAdminRequired = errors.New("admin access required", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("ADMIN_REQUIRED")

// ErrUnableToFindSession is the error when the request has no session credential
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("NO_SESSION")

// ErrUnableToDecodeSession is the error when the access token cannot be decoded
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("BAD_SESSION")

// IsAlreadyExistsError checks whether an identity-service failure reports
// that the invited account already exists. The upstream message is the only
// signal available.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already") || strings.Contains(msg, "exists")
}
