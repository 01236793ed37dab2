package pageinsight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

var errBlockedAddress = errors.New("connection to private/reserved network address is not allowed")

// specialPurposeRanges are refused on top of what netip already reports as
// loopback, private, link-local, multicast or unspecified.
var specialPurposeRanges = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // carrier-grade NAT, RFC 6598
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments, RFC 6890
	netip.MustParsePrefix("192.0.2.0/24"),    // TEST-NET-1
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking, RFC 2544
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3
}

// isPublicAddr reports whether addr is a globally routable unicast address.
// IPv4-mapped IPv6 addresses are judged by their IPv4 form.
func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}
	for _, p := range specialPurposeRanges {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

// guardedDialer resolves the destination itself and connects only to
// addresses that pass allow. It dials the checked IP, never the name, so a
// second DNS answer cannot swap in a private address. AssertSafe only sees the
// literal host; this also catches names and redirect hops.
type guardedDialer struct {
	dialer   *net.Dialer
	resolver *net.Resolver
	allow    func(netip.Addr) bool
}

func newGuardedDialer(d *net.Dialer) *guardedDialer {
	return &guardedDialer{dialer: d, resolver: net.DefaultResolver, allow: isPublicAddr}
}

func (g *guardedDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBlockedAddress, err)
	}

	addrs, err := g.resolver.LookupNetIP(ctx, ipNetwork(network), host)
	if err != nil {
		return nil, err
	}

	lastErr := fmt.Errorf("%w: %s has no public address", errBlockedAddress, host)
	for _, addr := range addrs {
		addr = addr.Unmap()
		if !g.allow(addr) {
			continue
		}
		conn, err := g.dialer.DialContext(ctx, network, net.JoinHostPort(addr.String(), port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func ipNetwork(network string) string {
	switch network {
	case "tcp4", "udp4":
		return "ip4"
	case "tcp6", "udp6":
		return "ip6"
	default:
		return "ip"
	}
}
