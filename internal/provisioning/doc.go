// Package provisioning sequences the registration of a new node with the panel.
//
// # Phases
//
// A run moves through a fixed, linear set of phases:
//
//	Start -> NodeCreated -> Authenticated -> NodeIdentified -> TokenIssued -> Done
//
// Any phase error moves the run to Failed and stops it. Nothing is rolled
// back: a node created in the first phase stays in the panel when a later
// phase fails.
//
// # Core Types
//
// Context carries the collaborators, the run State, and the Observer.
// Phase defines a step with Name() and Provision() methods.
// Provisioner wires the phases together and is the entry point for callers.
// Error classifies failures by Kind so the CLI can report them uniformly.
package provisioning
