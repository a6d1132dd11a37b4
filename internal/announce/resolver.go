package announce

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"

	psnet "github.com/shirou/gopsutil/v4/net"
)

var ErrNoLANAddress = errors.New("no LAN address found")

// Resolver resolves the address other devices on the local network can use
// to reach this host.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// ResolverFunc adapts a plain function to a Resolver.
type ResolverFunc func(ctx context.Context) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}

// InterfaceResolver picks the first IPv4 unicast address of an interface that
// is up and not a loopback.
type InterfaceResolver struct {
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
}

func NewInterfaceResolver() *InterfaceResolver {
	return &InterfaceResolver{
		interfaces: psnet.InterfacesWithContext,
	}
}

func (r *InterfaceResolver) Resolve(ctx context.Context) (string, error) {
	ifaces, err := r.interfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			if ip := lanIPv4(addr.Addr); ip != nil {
				return ip.String(), nil
			}
		}
	}

	return "", ErrNoLANAddress
}

// lanIPv4 parses "192.168.1.4/24" or a bare address and returns it when it is
// a usable IPv4 unicast address.
func lanIPv4(addr string) net.IP {
	ip, _, err := net.ParseCIDR(addr)
	if err != nil {
		ip = net.ParseIP(addr)
	}
	if ip == nil {
		return nil
	}

	ip4 := ip.To4()
	if ip4 == nil || ip4.IsLoopback() || ip4.IsLinkLocalUnicast() || ip4.IsUnspecified() || ip4.IsMulticast() {
		return nil
	}
	return ip4
}
