//go:build linux

package netutil

import (
	"fmt"

	"github.com/jsimonetti/rtnetlink/v2"
	"golang.org/x/sys/unix"
)

// SystemLocalSource reads addresses from the kernel over rtnetlink.
type SystemLocalSource struct{}

// GlobalIPv4 returns the first IPv4 address with universe scope.
func (SystemLocalSource) GlobalIPv4() (string, error) {
	conn, err := rtnetlink.Dial(nil)
	if err != nil {
		return "", fmt.Errorf("failed to dial rtnetlink: %w", err)
	}
	defer func() { _ = conn.Close() }()

	msgs, err := conn.Address.List()
	if err != nil {
		return "", fmt.Errorf("failed to list addresses: %w", err)
	}

	for _, msg := range msgs {
		if msg.Family != uint8(unix.AF_INET) || msg.Scope != unix.RT_SCOPE_UNIVERSE || msg.Attributes == nil {
			continue
		}
		ip := msg.Attributes.Local
		if ip == nil {
			ip = msg.Attributes.Address
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", nil
}
