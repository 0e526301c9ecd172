package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
	}{
		{name: "lowercase", username: "alice"},
		{name: "uppercase", username: "ALICE"},
		{name: "mixed case", username: "AliceSmith"},
		{name: "with underscore", username: "alice_smith"},
		{name: "with digits", username: "alice2026"},
		{name: "digits only", username: "123456"},
		{name: "minimum length", username: "bob"},
		{name: "maximum length", username: strings.Repeat("a", 32)},
		{
			name:   "empty",
			errMsg: "username cannot be empty",
		},
		{
			name:     "too short",
			username: "ab",
			errMsg:   "must be at least 3 characters",
		},
		{
			name:     "too long",
			username: strings.Repeat("a", 33),
			errMsg:   "must not exceed 32 characters",
		},
		{
			name:     "dot",
			username: "alice.smith",
			errMsg:   "can only contain letters",
		},
		{
			name:     "dash",
			username: "alice-smith",
			errMsg:   "can only contain letters",
		},
		{
			name:     "space",
			username: "alice smith",
			errMsg:   "can only contain letters",
		},
		{
			name:     "email-like",
			username: "alice@example.com",
			errMsg:   "can only contain letters",
		},
		{
			name:     "non-latin letters",
			username: "алиса",
			errMsg:   "can only contain letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
	}{
		{name: "minimum length", password: "12345678"},
		{name: "long passphrase", password: "correct horse battery staple"},
		{name: "special characters", password: "P@ssw0rd!"},
		{name: "unicode", password: "пароль123"},
		{
			name:   "empty",
			errMsg: "password cannot be empty",
		},
		{
			name:     "too short",
			password: "1234567",
			errMsg:   "must be at least 8 characters",
		},
		{
			name:     "single character",
			password: "p",
			errMsg:   "must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}
