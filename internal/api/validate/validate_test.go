package validate

import (
	"strings"
	"testing"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid username",
			username:    "daisy",
			expectError: false,
		},
		{
			name:        "minimum length",
			username:    "abc",
			expectError: false,
		},
		{
			name:        "empty username",
			username:    "",
			expectError: true,
			errorMsg:    "username is required",
		},
		{
			name:        "too short",
			username:    "ab",
			expectError: true,
			errorMsg:    "username must be at least 3 characters",
		},
		{
			name:        "too long",
			username:    strings.Repeat("a", 31),
			expectError: true,
			errorMsg:    "username exceeds 30 characters",
		},
		{
			name:        "leading space",
			username:    " daisy",
			expectError: true,
			errorMsg:    "username must not have leading or trailing spaces",
		},
		{
			name:        "trailing space",
			username:    "daisy ",
			expectError: true,
			errorMsg:    "username must not have leading or trailing spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if err.Error() != tt.errorMsg {
					t.Fatalf("expected %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "daisy+feed@example.com", "x_y@sub.domain.org"}
	for _, v := range valid {
		if err := Email(v); err != nil {
			t.Fatalf("expected %q to be valid, got %v", v, err)
		}
	}

	invalid := []string{"", "plainaddress", "no@tld", "two@@example.com", "spa ce@example.com", strings.Repeat("a", 320) + "@example.com"}
	for _, v := range invalid {
		if err := Email(v); err == nil {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if err := Password("abcd"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := Password("abcde"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistration(t *testing.T) {
	if err := Registration("daisy", "daisy@example.com", "sunflower"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Reports the first violated rule in field order.
	if err := Registration("", "bad", "x"); err == nil || err.Error() != "username is required" {
		t.Fatalf("expected username error first, got %v", err)
	}
	if err := Registration("daisy", "bad", "x"); err == nil || err.Error() != "invalid email" {
		t.Fatalf("expected email error, got %v", err)
	}
	if err := Registration("daisy", "daisy@example.com", "x"); err == nil || err.Error() != "password must be at least 5 characters" {
		t.Fatalf("expected password error, got %v", err)
	}
}
