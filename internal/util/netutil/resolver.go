package netutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/provisioning"
)

const (
	phaseAddress = "address"

	// DefaultAttemptTimeout bounds each echo service request.
	DefaultAttemptTimeout = 8 * time.Second
	// DefaultRetryDelay separates failed echo service attempts.
	DefaultRetryDelay = time.Second

	maxEchoBody = 1024
)

// Resolver finds the host's public IPv4 address.
type Resolver struct {
	endpoints  []string
	timeout    time.Duration
	delay      time.Duration
	httpClient *http.Client
	local      LocalSource
	observer   provisioning.Observer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithEndpoints replaces the echo services, tried in order.
func WithEndpoints(endpoints []string) ResolverOption {
	return func(r *Resolver) {
		r.endpoints = slices.Clone(endpoints)
	}
}

// WithAttemptTimeout sets the per-endpoint timeout.
func WithAttemptTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithRetryDelay sets the pause after a failed endpoint.
func WithRetryDelay(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.delay = d
	}
}

// WithHTTPClient sets the HTTP client used for echo services.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithLocalSource sets where the local address is read from.
func WithLocalSource(s LocalSource) ResolverOption {
	return func(r *Resolver) {
		r.local = s
	}
}

// WithObserver sets the observer receiving address events.
func WithObserver(o provisioning.Observer) ResolverOption {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a Resolver with the default echo services.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		endpoints:  slices.Clone(config.DefaultAddressEndpoints),
		timeout:    DefaultAttemptTimeout,
		delay:      DefaultRetryDelay,
		httpClient: newIPv4Client(),
		local:      SystemLocalSource{},
		observer:   provisioning.NewConsoleObserver(logr.Discard()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the address to register the node under. It never fails:
// when neither the interfaces nor any echo service yield an address it
// returns FallbackAddress and emits a warning.
func (r *Resolver) Resolve(ctx context.Context) string {
	addr, err := r.Lookup(ctx)
	if err != nil {
		provisioning.LogWarning(r.observer, phaseAddress,
			fmt.Sprintf("no public IPv4 address found, using %s; pass --address to override: %v", addr, err))
	}
	return addr
}

// Lookup is Resolve without the warning. On failure it returns
// FallbackAddress together with a KindNetwork error combining every
// endpoint failure.
func (r *Resolver) Lookup(ctx context.Context) (string, error) {
	local, err := r.local.GlobalIPv4()
	switch {
	case err != nil:
		r.observer.Printf("Could not read local addresses (%v), asking echo services", err)
	case local == "":
		r.observer.Printf("No global IPv4 address on this host, asking echo services")
	case IsNonPublic(local):
		r.observer.Printf("Local address %s is not public, asking echo services", local)
	default:
		r.resolved(local, "local")
		return local, nil
	}

	var errs *multierror.Error
	for i, endpoint := range r.endpoints {
		if i > 0 && !sleepCtx(ctx, r.delay) {
			errs = multierror.Append(errs, ctx.Err())
			break
		}

		r.observer.Progress(phaseAddress, i+1, len(r.endpoints))
		r.observer.Event(provisioning.Event{
			Type:     provisioning.EventAddressAttempt,
			Phase:    phaseAddress,
			Resource: endpoint,
			Message:  "querying echo service",
		})

		addr, err := r.query(ctx, endpoint)
		if err == nil {
			r.resolved(addr, endpoint)
			return addr, nil
		}

		err = fmt.Errorf("%s: %w", endpoint, err)
		errs = multierror.Append(errs, err)
		r.observer.Event(provisioning.Event{
			Type:     provisioning.EventAddressFailed,
			Phase:    phaseAddress,
			Resource: endpoint,
			Message:  err.Error(),
		})
	}

	cause := errs.ErrorOrNil()
	if cause == nil {
		cause = errors.New("no echo services configured")
	}
	return FallbackAddress, provisioning.Wrap(provisioning.KindNetwork, "resolve public address", cause)
}

func (r *Resolver) resolved(addr, source string) {
	r.observer.Event(provisioning.Event{
		Type:     provisioning.EventAddressResolved,
		Phase:    phaseAddress,
		Resource: addr,
		Message:  "public address found",
		Fields:   map[string]string{"source": source},
	})
}

var errEchoRejected = errors.New("response reports an error")

// query asks one echo service for the caller's address.
func (r *Resolver) query(ctx context.Context, endpoint string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEchoBody))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	text := string(body)
	if strings.Contains(strings.ToLower(text), "error") {
		return "", errEchoRejected
	}
	addr := strings.TrimSpace(text)
	if addr == "" {
		return "", errors.New("empty response")
	}
	return addr, nil
}

// newIPv4Client dials over IPv4 only so dual-stack echo services answer
// with the IPv4 address.
func newIPv4Client() *http.Client {
	dialer := &net.Dialer{Timeout: DefaultAttemptTimeout, KeepAlive: 30 * time.Second}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = func(ctx context.Context, _, addr string) (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp4", addr)
	}
	return &http.Client{Transport: transport}
}

// sleepCtx waits for d or until ctx is done. It reports whether the full
// delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
