package provisioning

import (
	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
)

// Step is a position in the provisioning state machine.
type Step string

// Steps in the order a successful run reaches them.
const (
	StepStart          Step = "Start"
	StepNodeCreated    Step = "NodeCreated"
	StepAuthenticated  Step = "Authenticated"
	StepNodeIdentified Step = "NodeIdentified"
	StepTokenIssued    Step = "TokenIssued"
	StepDone           Step = "Done"
	StepFailed         Step = "Failed"
)

// DefaultNodeID is used when the node list cannot be read.
// It may name an unrelated node; the operator is asked to confirm it.
const DefaultNodeID = 1

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	Step Step

	// FailedAt is the step a failed run stopped at.
	FailedAt Step

	// Spec is the node passed to the creation command. Never mutated after creation.
	Spec config.NodeSpec

	// Credentials and session results (populated by the authentication phase)
	Credentials panel.Credentials
	Session     PanelSession

	// Node identity (populated by the identification phase)
	NodeID int

	// InstallToken is never persisted; it only ends up in Command.
	InstallToken string
	Command      string
}

// NewState creates the state for a run about to create spec.
func NewState(spec config.NodeSpec) *State {
	return &State{
		Step: StepStart,
		Spec: spec,
	}
}

func (s *State) fail() {
	if s.Step != StepFailed {
		s.FailedAt = s.Step
	}
	s.Step = StepFailed
}

// NodeCreated reports whether the run got past node creation.
// A failed run with a created node leaves an unregistered node in the panel.
func (s *State) NodeCreated() bool {
	switch s.Step {
	case StepStart:
		return false
	case StepFailed:
		return s.FailedAt != StepStart
	}
	return true
}
