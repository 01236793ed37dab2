package pageinsight

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
)

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		blocked bool
	}{
		// Loopback
		{name: "IPv4 loopback", ip: "127.0.0.1", blocked: true},
		{name: "IPv6 loopback", ip: "::1", blocked: true},

		// Private ranges (RFC 1918)
		{name: "10.x.x.x", ip: "10.0.0.1", blocked: true},
		{name: "172.16.x.x", ip: "172.16.0.1", blocked: true},
		{name: "192.168.x.x", ip: "192.168.1.1", blocked: true},

		// Link-local
		{name: "link-local IPv4", ip: "169.254.1.1", blocked: true},
		{name: "link-local IPv6", ip: "fe80::1", blocked: true},

		// Cloud metadata
		{name: "metadata endpoint", ip: "169.254.169.254", blocked: true},
		{name: "IPv6 unique local", ip: "fd00::1", blocked: true},

		// Carrier-grade NAT (RFC 6598)
		{name: "CGN low", ip: "100.64.0.1", blocked: true},
		{name: "CGN high", ip: "100.127.255.254", blocked: true},

		// TEST-NET ranges (RFC 5737)
		{name: "TEST-NET-1", ip: "192.0.2.1", blocked: true},
		{name: "TEST-NET-2", ip: "198.51.100.1", blocked: true},
		{name: "TEST-NET-3", ip: "203.0.113.1", blocked: true},

		// IETF protocol assignments
		{name: "IETF 192.0.0.x", ip: "192.0.0.1", blocked: true},

		// Benchmarking (RFC 2544)
		{name: "benchmark 198.18.x.x", ip: "198.18.0.1", blocked: true},
		{name: "benchmark 198.19.x.x", ip: "198.19.255.254", blocked: true},

		// Unspecified
		{name: "unspecified IPv4", ip: "0.0.0.0", blocked: true},
		{name: "unspecified IPv6", ip: "::", blocked: true},

		// IPv4-mapped IPv6 (bypass attempt)
		{name: "mapped loopback", ip: "::ffff:127.0.0.1", blocked: true},
		{name: "mapped private", ip: "::ffff:10.0.0.1", blocked: true},
		{name: "mapped metadata", ip: "::ffff:169.254.169.254", blocked: true},
		{name: "mapped public", ip: "::ffff:8.8.8.8", blocked: false},

		// Public IPs - should NOT be blocked
		{name: "Google DNS", ip: "8.8.8.8", blocked: false},
		{name: "Cloudflare DNS", ip: "1.1.1.1", blocked: false},
		{name: "public IPv4", ip: "93.184.216.34", blocked: false},
		{name: "public range near CGN", ip: "100.63.255.255", blocked: false},
		{name: "public range after CGN", ip: "100.128.0.1", blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := netip.ParseAddr(tt.ip)
			if err != nil {
				t.Fatalf("failed to parse IP %q: %v", tt.ip, err)
			}
			if got := isPublicAddr(addr); got == tt.blocked {
				t.Errorf("isPublicAddr(%s) = %v, want %v", tt.ip, got, !tt.blocked)
			}
		})
	}
}

func TestGuardedDialer_DialContext(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	addr := strings.TrimPrefix(ts.URL, "http://")
	_, port, _ := net.SplitHostPort(addr)

	tests := []struct {
		name        string
		allow       func(netip.Addr) bool
		address     string
		wantBlocked bool
	}{
		{name: "loopback refused", allow: isPublicAddr, address: addr, wantBlocked: true},
		{name: "mapped loopback refused", allow: isPublicAddr, address: "[::ffff:127.0.0.1]:" + port, wantBlocked: true},
		{name: "missing port refused", allow: isPublicAddr, address: "127.0.0.1", wantBlocked: true},
		{name: "allowed address dialed", allow: func(netip.Addr) bool { return true }, address: addr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuardedDialer(&net.Dialer{})
			g.allow = tt.allow

			conn, err := g.DialContext(context.Background(), "tcp", tt.address)
			if tt.wantBlocked {
				if !errors.Is(err, errBlockedAddress) {
					t.Errorf("DialContext(%q) error = %v, want errBlockedAddress", tt.address, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialContext(%q) unexpected error: %v", tt.address, err)
			}
			_ = conn.Close()
		})
	}
}

func TestGuardedDialer_DialsCheckedAddress(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	var checked []netip.Addr
	g := newGuardedDialer(&net.Dialer{})
	g.allow = func(a netip.Addr) bool {
		checked = append(checked, a)
		return true
	}

	conn, err := g.DialContext(context.Background(), "tcp", strings.TrimPrefix(ts.URL, "http://"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if len(checked) != 1 || checked[0] != netip.MustParseAddr("127.0.0.1") {
		t.Errorf("checked = %v, want [127.0.0.1]", checked)
	}
	if got := conn.RemoteAddr().String(); got != strings.TrimPrefix(ts.URL, "http://") {
		t.Errorf("connected to %s, want %s", got, ts.URL)
	}
}

func TestIPNetwork(t *testing.T) {
	for network, want := range map[string]string{"tcp": "ip", "tcp4": "ip4", "tcp6": "ip6"} {
		if got := ipNetwork(network); got != want {
			t.Errorf("ipNetwork(%q) = %q, want %q", network, got, want)
		}
	}
}
