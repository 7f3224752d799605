package panel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePanel mimics the panel's cookie and CSRF handling.
type fakePanel struct {
	mu       sync.Mutex
	requests []string

	csrfValue     string // XSRF-TOKEN set by the CSRF endpoint; empty sets none
	loginComplete bool
	loginReply    string // overrides the login response body when set
	loginXSRF     string // XSRF-TOKEN rotated by a successful login
	adminStatus   int
	tokenStatus   int
	token         string

	loginHeader http.Header
	loginBody   map[string]string
	tokenReq    *http.Request
	tokenCookie bool
}

func newFakePanel() *fakePanel {
	return &fakePanel{
		csrfValue:     "init%3Dtok",
		loginComplete: true,
		loginXSRF:     "updated%3Dtoken",
		adminStatus:   http.StatusOK,
		tokenStatus:   http.StatusOK,
		token:         "abc123",
	}
}

func (f *fakePanel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/sanctum/csrf-cookie":
		if f.csrfValue != "" {
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: f.csrfValue, Path: "/"})
		}
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		f.loginHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&f.loginBody)
		if f.loginReply != "" {
			_, _ = w.Write([]byte(f.loginReply))
			return
		}
		if !f.loginComplete {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":[{"code":"DisplayException","detail":"These credentials do not match our records."}]}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "pterodactyl_session", Value: "sess", Path: "/"})
		if f.loginXSRF != "" {
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: f.loginXSRF, Path: "/"})
		}
		_, _ = w.Write([]byte(`{"data":{"complete":true,"intended":"/"}}`))

	case r.Method == http.MethodGet && r.URL.Path == "/admin":
		w.WriteHeader(f.adminStatus)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/settings/token"):
		f.tokenReq = r.Clone(context.Background())
		_, err := r.Cookie("pterodactyl_session")
		f.tokenCookie = err == nil
		w.WriteHeader(f.tokenStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token})

	default:
		http.NotFound(w, r)
	}
}

func (f *fakePanel) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newTestClient(t *testing.T, f *fakePanel) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c, srv
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("203.0.113.10/")
	require.NoError(t, err)
	assert.Equal(t, "http://203.0.113.10", c.BaseURL())

	_, err = NewClient("http://")
	assert.Error(t, err)
}

func TestClient_PrimeCSRF(t *testing.T) {
	f := newFakePanel()
	c, _ := newTestClient(t, f)

	token, err := c.PrimeCSRF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "init=tok", token)
	assert.Equal(t, "init=tok", c.Session().Token())
}

func TestClient_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFakePanel()
		c, srv := newTestClient(t, f)

		token, err := c.Login(context.Background(), "admin@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "updated=token", token)
		assert.Equal(t, "updated=token", c.Session().Token())

		assert.Equal(t, []string{
			"GET /sanctum/csrf-cookie",
			"POST /auth/login",
			"GET /admin",
		}, f.seen())

		assert.Equal(t, "init=tok", f.loginHeader.Get("X-XSRF-TOKEN"))
		assert.Equal(t, "XMLHttpRequest", f.loginHeader.Get("X-Requested-With"))
		assert.Equal(t, "application/json", f.loginHeader.Get("Accept"))
		assert.Equal(t, "application/json", f.loginHeader.Get("Content-Type"))
		assert.Equal(t, srv.URL+"/auth/login", f.loginHeader.Get("Referer"))
		assert.Equal(t, map[string]string{
			"user":                 "admin@example.com",
			"password":             "pw",
			"g-recaptcha-response": "",
		}, f.loginBody)
	})

	t.Run("missing CSRF cookie never posts", func(t *testing.T) {
		f := newFakePanel()
		f.csrfValue = ""
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoCSRFCookie))
		assert.Equal(t, []string{"GET /sanctum/csrf-cookie"}, f.seen())
	})

	t.Run("incomplete login", func(t *testing.T) {
		f := newFakePanel()
		f.loginComplete = false
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrLoginIncomplete)
	})

	t.Run("complete false with status 200", func(t *testing.T) {
		f := newFakePanel()
		f.loginReply = `{"data":{"complete":false}}`
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		assert.ErrorIs(t, err, ErrLoginIncomplete)
	})

	t.Run("two-factor checkpoint", func(t *testing.T) {
		f := newFakePanel()
		f.loginReply = `{"data":{"complete":false,"confirmation_token":"c0ffee"}}`
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		assert.ErrorIs(t, err, ErrTwoFactorRequired)
		assert.NotErrorIs(t, err, ErrLoginIncomplete)
	})

	t.Run("admin probe does not gate", func(t *testing.T) {
		f := newFakePanel()
		f.adminStatus = http.StatusInternalServerError
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		assert.NoError(t, err)
	})

	t.Run("clears cookies from an earlier session", func(t *testing.T) {
		f := newFakePanel()
		c, _ := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		require.NoError(t, err)

		f.mu.Lock()
		f.csrfValue = ""
		f.mu.Unlock()

		_, err = c.Login(context.Background(), "admin@example.com", "pw")
		assert.ErrorIs(t, err, ErrNoCSRFCookie)
	})

	t.Run("non-json error page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/sanctum/csrf-cookie" {
				http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "t", Path: "/"})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>Server Error</html>"))
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = c.Login(context.Background(), "a", "b")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	})
}

func TestClient_MintInstallToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFakePanel()
		c, srv := newTestClient(t, f)

		_, err := c.Login(context.Background(), "admin@example.com", "pw")
		require.NoError(t, err)

		f.mu.Lock()
		f.csrfValue = "mint%2Ftok"
		f.mu.Unlock()

		token, err := c.MintInstallToken(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)

		seen := f.seen()
		assert.Equal(t, []string{
			"GET /sanctum/csrf-cookie",
			"POST /admin/nodes/view/12/settings/token",
		}, seen[len(seen)-2:])

		req := f.tokenReq
		require.NotNil(t, req)
		assert.Equal(t, "mint/tok", req.Header.Get("X-CSRF-TOKEN"))
		assert.Equal(t, "*/*", req.Header.Get("Accept"))
		assert.Equal(t, "XMLHttpRequest", req.Header.Get("X-Requested-With"))
		assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
		assert.Equal(t, srv.URL, req.Header.Get("Origin"))
		assert.Equal(t, srv.URL+"/admin/nodes/view/12/configuration", req.Header.Get("Referer"))
		assert.Equal(t, int64(0), req.ContentLength)
		assert.True(t, f.tokenCookie, "session cookie must be sent")
	})

	t.Run("rejected", func(t *testing.T) {
		f := newFakePanel()
		f.tokenStatus = http.StatusForbidden
		c, _ := newTestClient(t, f)

		_, err := c.MintInstallToken(context.Background(), 3)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusForbidden, se.StatusCode)
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFakePanel()
		f.token = ""
		c, _ := newTestClient(t, f)

		_, err := c.MintInstallToken(context.Background(), 3)
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("custom user agent", func(t *testing.T) {
		f := newFakePanel()
		srv := httptest.NewServer(f)
		defer srv.Close()

		c, err := NewClient(srv.URL, WithUserAgent("pteronode-test"), WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		_, err = c.MintInstallToken(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "pteronode-test", f.tokenReq.Header.Get("User-Agent"))
	})
}
