package provisioning

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/platform/artisan"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
)

// MockObserver records events and messages.
type MockObserver struct {
	mu       *sync.Mutex
	events   *[]Event
	messages *[]string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{
		mu:       &sync.Mutex{},
		events:   &[]Event{},
		messages: &[]string{},
		fields:   map[string]string{},
	}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.messages = append(*m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := maps.Clone(m.fields)
	maps.Copy(fields, event.Fields)
	event.Fields = fields
	*m.events = append(*m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields shares the record with the parent so tests see every event.
func (m *MockObserver) WithFields(fields map[string]string) Observer {
	merged := maps.Clone(m.fields)
	maps.Copy(merged, fields)
	return &MockObserver{mu: m.mu, events: m.events, messages: m.messages, fields: merged}
}

func (m *MockObserver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), *m.events...)
}

func (m *MockObserver) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), *m.messages...)
}

func (m *MockObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// fakeNodes is an in-memory NodeFacility.
type fakeNodes struct {
	createErr error
	created   []config.NodeSpec
	nodes     []artisan.Node
	listErr   error
	listCalls int
}

func (f *fakeNodes) CreateNode(_ context.Context, spec config.NodeSpec) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, spec)
	return nil
}

func (f *fakeNodes) ListNodes(context.Context) ([]artisan.Node, error) {
	f.listCalls++
	return f.nodes, f.listErr
}

type staticCredentials struct {
	creds panel.Credentials
	err   error
}

func (s staticCredentials) Load() (panel.Credentials, error) {
	return s.creds, s.err
}

// fakeSession is a PanelSession recording its calls.
type fakeSession struct {
	loginErr  error
	mintErr   error
	token     string
	logins    int
	mintedFor []int
}

func (s *fakeSession) Login(context.Context, string, string) (string, error) {
	s.logins++
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return "csrf", nil
}

func (s *fakeSession) MintInstallToken(_ context.Context, nodeID int) (string, error) {
	s.mintedFor = append(s.mintedFor, nodeID)
	if s.mintErr != nil {
		return "", s.mintErr
	}
	return s.token, nil
}

func sessionFactory(s *fakeSession) SessionFactory {
	return func(panel.Credentials) (PanelSession, error) {
		if s == nil {
			return nil, errors.New("no session")
		}
		return s, nil
	}
}

func testCredentials() panel.Credentials {
	return panel.Credentials{URL: "http://panel.example.com", Email: "admin@example.com", Password: "pw"}
}

func testSpec() config.NodeSpec {
	spec := config.DefaultNodeSpec()
	spec.FQDN = "203.0.113.7"
	return spec
}
