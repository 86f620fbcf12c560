package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "plain name",
			input:   "alice",
			wantErr: nil,
		},
		{
			name:    "max length",
			input:   strings.Repeat("x", MaxUsernameLen),
			wantErr: nil,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrUsernameEmpty,
		},
		{
			name:    "too long",
			input:   strings.Repeat("x", MaxUsernameLen+1),
			wantErr: ErrUsernameTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUsername(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUsername(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
