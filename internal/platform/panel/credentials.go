package panel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Labels used by the panel installer when writing the credentials file.
const (
	labelLoginPage = "登录页面"
	labelUser      = "用户名"
	labelPassword  = "密码"
)

// Credentials is the admin login for a panel.
type Credentials struct {
	URL      string
	Email    string
	Password string
}

// ParseCredentials extracts the panel URL, admin email and password from
// the installer's credentials file. Each value is the text after the
// first colon on the line carrying its label; later lines win.
func ParseCredentials(r io.Reader) (Credentials, error) {
	var creds Credentials

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, labelLoginPage):
			if v, ok := valueAfterColon(line); ok {
				creds.URL = NormalizeURL(v)
			}
		case strings.Contains(line, labelUser):
			if v, ok := valueAfterColon(line); ok {
				creds.Email = v
			}
		case strings.Contains(line, labelPassword):
			if v, ok := valueAfterColon(line); ok {
				creds.Password = v
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var missing []string
	if creds.URL == "" {
		missing = append(missing, "login page URL")
	}
	if creds.Email == "" {
		missing = append(missing, "admin user")
	}
	if creds.Password == "" {
		missing = append(missing, "admin password")
	}
	if len(missing) > 0 {
		return Credentials{}, &MissingFieldError{Fields: missing}
	}
	return creds, nil
}

// valueAfterColon returns the trimmed text after the first ASCII or
// full-width colon.
func valueAfterColon(line string) (string, bool) {
	i := strings.IndexAny(line, ":：")
	if i < 0 {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	v := strings.TrimSpace(line[i+size:])
	return v, v != ""
}

// NormalizeURL prefixes http:// when raw has no scheme and strips
// trailing slashes.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "http://" + strings.TrimPrefix(u, "//")
	}
	return strings.TrimRight(u, "/")
}

// LoadCredentials reads and parses the credentials file at path.
func LoadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path) // #nosec G304 - path is operator configuration
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer func() { _ = f.Close() }()

	creds, err := ParseCredentials(f)
	if err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}

// CredentialsFile is a credentials file path that loads on demand.
type CredentialsFile string

// Load reads the credentials file.
func (f CredentialsFile) Load() (Credentials, error) {
	return LoadCredentials(string(f))
}
