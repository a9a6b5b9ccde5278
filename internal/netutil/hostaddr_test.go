package netutil

import (
	"errors"
	"net"
	"testing"
)

func TestResolveHostIP(t *testing.T) {
	ip, err := ResolveHostIP()
	if errors.Is(err, ErrAddressUnavailable) {
		t.Skip("host has no non-loopback IPv4 interface")
	}
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		t.Fatalf("resolved address %q is not IPv4", ip)
	}
	if parsed.IsLoopback() {
		t.Fatalf("resolved address %q is loopback", ip)
	}
}
