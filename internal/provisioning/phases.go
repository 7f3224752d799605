package provisioning

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/oneclickvirt/pterodactyl/internal/platform/artisan"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
)

const (
	phaseCreateNode   = "create-node"
	phaseAuthenticate = "authenticate"
	phaseIdentifyNode = "identify-node"
	phaseIssueToken   = "issue-token"
	phaseRegister     = "register"
)

// createNodePhase runs the panel's node-creation command.
type createNodePhase struct{}

func (createNodePhase) Name() string { return phaseCreateNode }

func (createNodePhase) Provision(ctx *Context) error {
	spec := ctx.State.Spec
	LogResourceCreating(ctx.Observer, phaseCreateNode, "node", spec.Name)
	ctx.Observer.Printf("Node address %s, memory %dMB (+%d%%), disk %dMB (+%d%%)",
		spec.FQDN, spec.MemoryMB, spec.MemoryOverallocate, spec.DiskMB, spec.DiskOverallocate)

	if err := ctx.Nodes.CreateNode(ctx, spec); err != nil {
		LogResourceFailed(ctx.Observer, phaseCreateNode, "node", spec.Name, err)
		return Wrap(KindProvisioning, "create node "+spec.Name, err)
	}

	LogResourceCreated(ctx.Observer, phaseCreateNode, "node", spec.Name, "")
	ctx.State.Step = StepNodeCreated
	return nil
}

// authenticatePhase reads the admin credentials and logs in to the panel.
type authenticatePhase struct{}

func (authenticatePhase) Name() string { return phaseAuthenticate }

func (authenticatePhase) Provision(ctx *Context) error {
	creds, err := ctx.Credentials.Load()
	if err != nil {
		return Wrap(KindConfig, "read panel credentials", err)
	}
	ctx.State.Credentials = creds
	ctx.Observer.Printf("Panel address: %s", creds.URL)
	ctx.Observer.Printf("Admin account: %s", creds.Email)

	session, err := ctx.NewSession(creds)
	if err != nil {
		return Wrap(KindConfig, "open panel session", err)
	}

	if _, err := session.Login(ctx, creds.Email, creds.Password); err != nil {
		msg := fmt.Sprintf("panel login failed: %v", err)
		if errors.Is(err, panel.ErrLoginIncomplete) {
			msg = fmt.Sprintf("panel login failed, check the admin email and password in the credentials file: %v", err)
		}
		ctx.Observer.Event(Event{
			Type:    EventAuthFailed,
			Phase:   phaseAuthenticate,
			Message: msg,
		})
		return Wrap(KindAuth, "log in to "+creds.URL, err)
	}

	ctx.Observer.Event(Event{
		Type:     EventAuthSucceeded,
		Phase:    phaseAuthenticate,
		Resource: creds.Email,
		Message:  "panel session established",
	})
	ctx.State.Session = session
	ctx.State.Step = StepAuthenticated
	return nil
}

// identifyNodePhase finds the ID of the node just created.
type identifyNodePhase struct{}

func (identifyNodePhase) Name() string { return phaseIdentifyNode }

func (identifyNodePhase) Provision(ctx *Context) error {
	nodeID, err := detectNodeID(ctx)
	if err != nil {
		if IsFatal(err) {
			return err
		}
		nodeID = DefaultNodeID
		LogWarning(ctx.Observer, phaseIdentifyNode,
			fmt.Sprintf("falling back to node ID %d: %v", nodeID, err))
	}
	ctx.Observer.Printf("Detected node ID: %d", nodeID)

	if ctx.Confirm != nil {
		confirmed, err := ctx.Confirm.ConfirmNodeID(ctx, nodeID)
		if err != nil {
			return Wrap(KindConfig, "confirm node ID", err)
		}
		if confirmed > 0 && confirmed != nodeID {
			ctx.Observer.Printf("Using operator-supplied node ID %d", confirmed)
			nodeID = confirmed
		}
	}

	ctx.State.NodeID = nodeID
	ctx.State.Step = StepNodeIdentified
	return nil
}

var errNoNodes = errors.New("node list is empty")

// detectNodeID returns the newest node's ID. An unreadable or empty node
// list is a KindParse error, which the caller degrades to DefaultNodeID.
func detectNodeID(ctx *Context) (int, error) {
	nodes, err := ctx.Nodes.ListNodes(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	if err != nil {
		return 0, Wrap(KindParse, "cannot read node list", err)
	}
	id, ok := artisan.LatestNodeID(nodes)
	if !ok {
		return 0, Wrap(KindParse, "detect node ID", errNoNodes)
	}
	return id, nil
}

// issueTokenPhase mints the one-time install token for the node.
type issueTokenPhase struct{}

func (issueTokenPhase) Name() string { return phaseIssueToken }

func (issueTokenPhase) Provision(ctx *Context) error {
	if ctx.State.Session == nil {
		return Wrap(KindToken, "issue install token", errors.New("no authenticated panel session"))
	}
	if ctx.State.Step != StepNodeIdentified {
		return Wrap(KindToken, "issue install token", fmt.Errorf("node not identified (step %s)", ctx.State.Step))
	}

	nodeID := ctx.State.NodeID
	ctx.Observer.Printf("Generating install token for node %d...", nodeID)

	token, err := ctx.State.Session.MintInstallToken(ctx, nodeID)
	if err != nil {
		return Wrap(KindToken, "issue install token for node "+strconv.Itoa(nodeID), err)
	}

	LogResourceCreated(ctx.Observer, phaseIssueToken, "install token", strconv.Itoa(nodeID), "")
	ctx.State.InstallToken = token
	ctx.State.Step = StepTokenIssued
	return nil
}

// registerPhase emits the agent registration command.
type registerPhase struct {
	out io.Writer
}

func (registerPhase) Name() string { return phaseRegister }

func (p registerPhase) Provision(ctx *Context) error {
	s := ctx.State
	s.Command = FormatRegistrationCommand(s.Credentials.URL, s.InstallToken, s.NodeID)
	if p.out != nil {
		if _, err := fmt.Fprintln(p.out, s.Command); err != nil {
			return fmt.Errorf("write registration command: %w", err)
		}
	}
	s.Step = StepDone
	return nil
}
