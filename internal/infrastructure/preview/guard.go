package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"syscall"
	"time"
)

const maxRedirects = 5

var ErrBlockedAddress = errors.New("preview target resolves to a blocked address")

var numericLabel = regexp.MustCompile(`^(0x[0-9a-f]*|[0-9]+)$`)

// isBlockedIP reports addresses a preview must never reach.
func isBlockedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

// suspiciousHost rejects names that cannot be a public DNS name: localhost,
// mDNS names and IPv4 spellings that net.ParseIP refuses but resolvers
// accept (2130706433, 0x7f000001, 127.1).
func suspiciousHost(host string) bool {
	h := strings.TrimSuffix(strings.ToLower(host), ".")
	if h == "localhost" || strings.HasSuffix(h, ".localhost") || strings.HasSuffix(h, ".local") {
		return true
	}
	if net.ParseIP(h) != nil {
		return false
	}
	for _, label := range strings.Split(h, ".") {
		if !numericLabel.MatchString(label) {
			return false
		}
	}
	return true
}

// checkHost applies the literal-host rules. Names are resolved later, at dial time.
func (f *Fetcher) checkHost(host string) error {
	if f.blocked == nil {
		return nil
	}
	if suspiciousHost(host) {
		return ErrBlockedAddress
	}
	if ip := net.ParseIP(host); ip != nil && f.blocked(ip) {
		return ErrBlockedAddress
	}
	return nil
}

// checkResolved resolves host and fails if any of its addresses is blocked.
func (f *Fetcher) checkResolved(ctx context.Context, host string) error {
	if err := f.checkHost(host); err != nil || f.blocked == nil {
		return err
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return err
	}
	for _, a := range addrs {
		if f.blocked(a.IP) {
			return ErrBlockedAddress
		}
	}
	return nil
}

// transport dials only addresses that pass the block rule. The check runs on
// the resolved IP, so DNS names pointing at internal hosts fail too.
func (f *Fetcher) transport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   f.timeout,
		KeepAlive: 30 * time.Second,
		Control: func(network, address string, _ syscall.RawConn) error {
			if f.blocked == nil {
				return nil
			}
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			ip := net.ParseIP(host)
			if ip == nil || f.blocked(ip) {
				return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
			}
			return nil
		},
	}
	return &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return f.checkURL(req.URL)
}

func (f *Fetcher) checkURL(u *url.URL) error {
	if u == nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return ErrInvalidURL
	}
	return f.checkHost(u.Hostname())
}
