package provisioning

import (
	"context"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/platform/artisan"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
)

// NodeFacility creates and lists nodes through the panel's own tooling.
// Implemented by artisan.Client.
type NodeFacility interface {
	CreateNode(ctx context.Context, spec config.NodeSpec) error
	ListNodes(ctx context.Context) ([]artisan.Node, error)
}

// CredentialsSource yields the panel admin credentials.
// Implemented by panel.CredentialsFile.
type CredentialsSource interface {
	Load() (panel.Credentials, error)
}

// PanelSession is an authenticated conversation with the panel web UI.
// Implemented by panel.Client.
type PanelSession interface {
	Login(ctx context.Context, email, password string) (string, error)
	MintInstallToken(ctx context.Context, nodeID int) (string, error)
}

// SessionFactory opens a fresh session against the panel named in creds.
type SessionFactory func(creds panel.Credentials) (PanelSession, error)

// Confirmer lets the operator override the detected node ID.
type Confirmer interface {
	ConfirmNodeID(ctx context.Context, detected int) (int, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, detected int) (int, error)

// ConfirmNodeID implements Confirmer.
func (f ConfirmFunc) ConfirmNodeID(ctx context.Context, detected int) (int, error) {
	return f(ctx, detected)
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	State       *State
	Nodes       NodeFacility
	Credentials CredentialsSource
	NewSession  SessionFactory
	Confirm     Confirmer
	Observer    Observer
	Metrics     *Metrics
}
