// Package config defines the runtime configuration for pteronode.
//
// [Config] holds the panel location, the credentials file path, the fixed
// node-creation flags ([NodeDefaults]) and the address echo endpoints. It is
// read from an optional YAML file by [Load]; a missing file yields [Default].
// [NodeSpec] carries the per-run values the operator supplies, and
// [Timeouts] carries the network and command deadlines read from the
// environment.
package config
