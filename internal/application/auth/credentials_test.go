package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	creds := DefaultCredentials()

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"admin valid", "admin", "admin", true},
		{"user valid", "user", "user", true},
		{"wrong password", "admin", "wrong", false},
		{"unknown user", "nobody", "x", false},
		{"swapped pair", "admin", "user", false},
		{"empty credentials", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, creds.Verify(tt.username, tt.password))
		})
	}
}
