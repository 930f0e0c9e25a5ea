package adminkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mokuren/go-adminkit"
	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExistsError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			"gotrue already registered message",
			errors.New("A user with this email address has already been registered"),
			true,
		},
		{"exists keyword", errors.New("user exists"), true},
		{"case insensitive", errors.New("ALREADY registered"), true},
		{"unrelated error", errors.New("email rate limit exceeded"), false},
		{"nil error", nil, false},
		{
			"wrapped error",
			fmt.Errorf("invite failed: %w", errors.New("user already exists")),
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, adminkit.IsAlreadyExistsError(tc.err))
		})
	}
}

func TestSentinelErrorCodes(t *testing.T) {
	assert.Equal(t, 401, adminkit.ErrMissingBearerToken.Code)
	assert.Equal(t, 401, adminkit.ErrInvalidToken.Code)
	assert.Equal(t, 403, adminkit.ErrAdminRequired.Code)
}
