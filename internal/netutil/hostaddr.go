// Package netutil resolves the host address advertised to trial runtimes.
package netutil

import (
	"errors"
	"fmt"
	"net"
)

// ErrAddressUnavailable reports that no usable network interface address
// was found on the host.
var ErrAddressUnavailable = errors.New("no usable network address")

// ResolveHostIP returns the host's first non-loopback IPv4 address.
// Resolve it once at startup and hand the value to consumers explicitly;
// there is no package-level cache on purpose.
func ResolveHostIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interface addresses: %w", err)
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", ErrAddressUnavailable
}
