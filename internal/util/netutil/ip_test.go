package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNonPublic(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"1.2.3.4", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"198.17.255.255", false},
		{"198.20.0.1", false},
		{"203.0.114.1", false},
		{"223.255.255.254", false},
		{"100.63.255.255", false},
		{"100.128.0.1", false},
		{"10.0.0.1", true},
		{"172.16.5.4", true},
		{"192.168.1.10", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"224.0.0.1", true},
		{"0.0.0.0", true},
		{"100.64.0.1", true},
		{"100.64.0.5", true},
		{"0.1.2.3", true},
		{"192.0.0.1", true},
		{"192.0.2.1", true},
		{"198.18.0.1", true},
		{"198.19.255.254", true},
		{"198.51.100.9", true},
		{"203.0.113.5", true},
		{"240.0.0.1", true},
		{"255.255.255.255", true},
		{"100.127.255.254", true},
		{"2001:db8::1", true},
		{"::ffff:8.8.8.8", true},
		{"", true},
		{"not-an-ip", true},
		{"1.2.3.4.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNonPublic(tt.addr))
		})
	}
}
