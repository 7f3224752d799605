package provisioning

import (
	"context"
	"io"

	"github.com/go-logr/logr"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// Provisioner runs the node registration phases.
type Provisioner struct {
	nodes      NodeFacility
	creds      CredentialsSource
	newSession SessionFactory
	confirm    Confirmer
	observer   Observer
	metrics    *Metrics
	out        io.Writer
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithObserver sets the observer receiving progress events.
func WithObserver(o Observer) Option {
	return func(p *Provisioner) {
		p.observer = o
	}
}

// WithConfirmer lets the operator override the detected node ID.
func WithConfirmer(c Confirmer) Option {
	return func(p *Provisioner) {
		p.confirm = c
	}
}

// WithMetrics records phase durations and events.
func WithMetrics(m *Metrics) Option {
	return func(p *Provisioner) {
		p.metrics = m
	}
}

// WithOutput sets where the registration command is written.
func WithOutput(w io.Writer) Option {
	return func(p *Provisioner) {
		p.out = w
	}
}

// New creates a Provisioner.
func New(nodes NodeFacility, creds CredentialsSource, newSession SessionFactory, opts ...Option) *Provisioner {
	p := &Provisioner{
		nodes:      nodes,
		creds:      creds,
		newSession: newSession,
		observer:   NewConsoleObserver(logr.Discard()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phases returns the phases of a run in order.
func (p *Provisioner) Phases() []Phase {
	return []Phase{
		createNodePhase{},
		authenticatePhase{},
		identifyNodePhase{},
		issueTokenPhase{},
		registerPhase{out: p.out},
	}
}

// Run creates the node described by spec and registers it with the panel.
// The returned state is never nil and records how far the run got.
func (p *Provisioner) Run(ctx context.Context, spec config.NodeSpec) (*State, error) {
	observer := p.observer
	if p.metrics != nil {
		observer = p.metrics.Observer(observer)
	}

	pCtx := &Context{
		Context:     ctx,
		State:       NewState(spec),
		Nodes:       p.nodes,
		Credentials: p.creds,
		NewSession:  p.newSession,
		Confirm:     p.confirm,
		Observer:    observer.WithFields(map[string]string{"node": spec.Name}),
		Metrics:     p.metrics,
	}

	if err := RunPhases(pCtx, p.Phases()); err != nil {
		return pCtx.State, err
	}
	if p.metrics != nil {
		p.metrics.MarkSuccess()
	}
	return pCtx.State, nil
}
