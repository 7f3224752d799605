package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/platform/artisan"
	"github.com/oneclickvirt/pterodactyl/internal/util/netutil"
	"github.com/oneclickvirt/pterodactyl/internal/util/prerequisites"
)

// scriptedRunner answers artisan commands by subcommand name.
type scriptedRunner struct {
	mu      sync.Mutex
	results map[string]artisan.Result
	calls   [][]string
}

func (r *scriptedRunner) Run(_ context.Context, _, _ string, args ...string) (artisan.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	if len(args) > 1 {
		if res, ok := r.results[args[1]]; ok {
			return res, nil
		}
	}
	return artisan.Result{}, nil
}

func (r *scriptedRunner) subcommands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		out = append(out, c[1])
	}
	return out
}

// panelStub is a minimal panel accepting one admin login.
type panelStub struct {
	mu       sync.Mutex
	requests []string
	token    string
}

func (p *panelStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Method+" "+r.URL.Path)
	p.mu.Unlock()

	switch {
	case r.URL.Path == "/sanctum/csrf-cookie":
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok%3D", Path: "/"})
	case r.URL.Path == "/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		complete := body["user"] == "admin@example.com" && body["password"] == "pw"
		_, _ = fmt.Fprintf(w, `{"data":{"complete":%t}}`, complete)
	case r.URL.Path == "/admin":
	case strings.HasSuffix(r.URL.Path, "/settings/token"):
		_ = json.NewEncoder(w).Encode(map[string]string{"token": p.token})
	default:
		http.NotFound(w, r)
	}
}

func (p *panelStub) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.requests...)
}

type testEnv struct {
	configPath string
	panelURL   string
	panel      *panelStub
	runner     *scriptedRunner
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
}

// setupEnv writes a config and credentials file pointing at a stub panel
// and replaces the host-facing collaborators.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	stub := &panelStub{token: "abc123"}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	credsPath := filepath.Join(dir, "auto_users.txt")
	creds := fmt.Sprintf("登录页面: %s/\n用户名: admin@example.com\n密码: pw\n", srv.URL)
	require.NoError(t, os.WriteFile(credsPath, []byte(creds), 0o600))

	cfgPath := filepath.Join(dir, "pteronode.yaml")
	cfgYAML := fmt.Sprintf("panel_dir: %s\ncredentials_file: %s\n", dir, credsPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	env := &testEnv{
		configPath: cfgPath,
		panelURL:   srv.URL,
		panel:      stub,
		runner: &scriptedRunner{results: map[string]artisan.Result{
			"p:node:list": {Stdout: `[{"id":5,"name":"old"},{"id":12,"name":"auto-node"}]`},
		}},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	origStdout, origStderr := stdout, stderr
	origRunner, origRoot, origHost := newRunner, checkRoot, checkHost
	origInteractive, origWizard, origConfirm := isInteractive, runNodeWizard, confirmNodeID
	origLocal, origTools, origPanelDir := newLocalSource, checkTools, checkPanelDir
	origTerminal := stderrIsTerminal
	t.Cleanup(func() {
		stdout, stderr = origStdout, origStderr
		newRunner, checkRoot, checkHost = origRunner, origRoot, origHost
		isInteractive, runNodeWizard, confirmNodeID = origInteractive, origWizard, origConfirm
		newLocalSource, checkTools, checkPanelDir = origLocal, origTools, origPanelDir
		stderrIsTerminal = origTerminal
	})

	stdout, stderr = env.stdout, env.stderr
	newRunner = func() artisan.Runner { return env.runner }
	checkRoot = func() error { return nil }
	checkHost = func(*config.Config) error { return nil }
	isInteractive = func() bool { return false }
	stderrIsTerminal = func() bool { return false }
	newLocalSource = func() netutil.LocalSource {
		return netutil.LocalSourceFunc(func() (string, error) { return "1.2.3.4", nil })
	}
	checkTools = func(string) *prerequisites.CheckResults {
		return prerequisites.Check(nil)
	}
	checkPanelDir = func(string) error { return nil }

	return env
}
