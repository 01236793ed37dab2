package pageinsight

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Bahjat/seo-insight-tool/internal/platform/errs"
)

// NormalizeURL turns user input into an absolute URL. Input without an
// http:// or https:// prefix is assumed to be https. The fragment is dropped,
// the scheme and host are lowercased, and an empty path becomes "/".
func NormalizeURL(raw string) (*url.URL, error) {
	value := strings.TrimSpace(raw)

	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		value = "https://" + value
	}

	u, err := url.Parse(value)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidURL, Message: "Invalid URL", Cause: err}
	}
	if !u.IsAbs() || u.Host == "" || u.Hostname() == "" || u.Opaque != "" {
		return nil, &errs.AppError{Kind: errs.InvalidURL, Message: "Invalid URL"}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	return u, nil
}

// AssertSafe rejects URLs whose literal host is localhost, the IPv6 loopback,
// or a dotted IPv4 address in a loopback, private, or link-local range.
// No DNS resolution happens here; names that resolve to private addresses
// are only caught by the dial guard when it is enabled.
func AssertSafe(u *url.URL) error {
	host := strings.ToLower(u.Hostname())

	if host == "localhost" || strings.HasSuffix(host, ".localhost") || isPrivateHost(host) {
		return &errs.AppError{Kind: errs.BlockedURL, Message: "Blocked URL (private or local address)"}
	}
	return nil
}

func isPrivateHost(host string) bool {
	if host == "::1" {
		return true
	}

	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}

	var octets [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		octets[i] = n
	}

	a, b := octets[0], octets[1]
	switch {
	case a == 10, a == 127:
		return true
	case a == 169 && b == 254:
		return true
	case a == 192 && b == 168:
		return true
	case a == 172 && b >= 16 && b <= 31:
		return true
	}
	return false
}
