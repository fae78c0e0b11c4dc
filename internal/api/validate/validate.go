package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 5
	MaxEmailLen    = 320
)

// Username validates a handle: 3-30 characters, no surrounding whitespace.
func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if v != strings.TrimSpace(v) {
		return fmt.Errorf("username must not have leading or trailing spaces")
	}
	if len(v) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLen)
	}
	if len(v) > MaxUsernameLen {
		return fmt.Errorf("username exceeds %d characters", MaxUsernameLen)
	}
	return nil
}

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > MaxEmailLen || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// Password only enforces a length floor. Anything else is the user's
// business; the hash stores whatever they pick.
func Password(v string) error {
	if v == "" {
		return fmt.Errorf("password is required")
	}
	if len(v) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// -------- Request specific helpers ----------

// Registration validates the full register payload, reporting the first
// violated rule.
func Registration(username, email, password string) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}
