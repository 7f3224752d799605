package panel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCSRFCookie is returned when the CSRF endpoint sets no XSRF-TOKEN cookie.
	ErrNoCSRFCookie = errors.New("panel did not set an XSRF-TOKEN cookie")

	// ErrLoginIncomplete is returned when the panel rejects the admin credentials.
	ErrLoginIncomplete = errors.New("panel login did not complete")

	// ErrTwoFactorRequired is returned when the admin account asks for a
	// second factor, which cannot be supplied non-interactively.
	ErrTwoFactorRequired = errors.New("panel login requires two-factor authentication for the admin account")

	// ErrEmptyToken is returned when the token endpoint answers without a token.
	ErrEmptyToken = errors.New("panel returned an empty install token")
)

// StatusError reports an unexpected HTTP status from the panel.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// MissingFieldError reports credentials fields absent from the credentials file.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "credentials file is missing " + strings.Join(e.Fields, ", ")
}
