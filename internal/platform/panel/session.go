package panel

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

const csrfCookie = "XSRF-TOKEN"

// Session is the cookie state of one panel conversation.
// The token is the last unescaped XSRF-TOKEN read from the jar.
type Session struct {
	jar   http.CookieJar
	token string
}

func newSession() (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Session{jar: jar}, nil
}

// Token returns the current CSRF token.
func (s *Session) Token() string {
	return s.token
}

// readToken refreshes the token from the jar's XSRF-TOKEN cookie.
func (s *Session) readToken(u *url.URL) (string, error) {
	for _, c := range s.jar.Cookies(u) {
		if c.Name != csrfCookie {
			continue
		}
		token, err := url.PathUnescape(c.Value)
		if err != nil {
			return "", fmt.Errorf("invalid %s cookie: %w", csrfCookie, err)
		}
		if token == "" {
			break
		}
		s.token = token
		return token, nil
	}
	return "", ErrNoCSRFCookie
}
