//go:build !linux

package netutil

import (
	"fmt"
	"net"
)

// SystemLocalSource reads addresses from the interface table.
type SystemLocalSource struct{}

// GlobalIPv4 returns the first global unicast IPv4 interface address.
func (SystemLocalSource) GlobalIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("failed to list interface addresses: %w", err)
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil && ip4.IsGlobalUnicast() {
			return ip4.String(), nil
		}
	}
	return "", nil
}
