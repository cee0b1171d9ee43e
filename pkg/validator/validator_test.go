package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "alice", false},
		{"valid with digits", "alice42", false},
		{"minimum length", "abc", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 65), true},
		{"starts with digit", "1alice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!passw0rd", false},
		{"too short", "Sh0rt!pw", true},
		{"too long", strings.Repeat("Aa1!", 40), true},
		{"no lowercase", "STR0NG!PASSW0RD", true},
		{"no uppercase", "str0ng!passw0rd", true},
		{"no digit", "Strong!password", true},
		{"no symbol", "Str0ngpassw0rd1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
