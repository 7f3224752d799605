// Package netutil discovers the public IPv4 address a node should be
// registered under.
//
// The local interfaces are checked first; echo services are only asked
// when the host has no public address of its own (NAT, CGNAT, private
// cloud networks).
package netutil
