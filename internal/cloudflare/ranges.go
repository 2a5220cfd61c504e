// Package cloudflare maintains the set of Cloudflare edge IP ranges used
// by the range-check endpoint. The published lists are fetched once at
// startup; a pinned copy serves as fallback when the fetch fails.
package cloudflare

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"strings"
	"sync"

	"subnet-calculator/internal/config"
)

const (
	SourceFallback = "fallback"
	SourceFetched  = "fetched"
)

// Pinned copies of https://www.cloudflare.com/ips-v4/ and /ips-v6/.
var fallbackIPv4 = mustPrefixes(
	"173.245.48.0/20",
	"103.21.244.0/22",
	"103.22.200.0/22",
	"103.31.4.0/22",
	"141.101.64.0/18",
	"108.162.192.0/18",
	"190.93.240.0/20",
	"188.114.96.0/20",
	"197.234.240.0/22",
	"198.41.128.0/17",
	"162.158.0.0/15",
	"104.16.0.0/13",
	"104.24.0.0/14",
	"172.64.0.0/13",
	"131.0.72.0/22",
)

var fallbackIPv6 = mustPrefixes(
	"2400:cb00::/32",
	"2606:4700::/32",
	"2803:f800::/32",
	"2405:b500::/32",
	"2405:8100::/32",
	"2a06:98c0::/29",
	"2c0f:f248::/32",
)

func mustPrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefixes = append(prefixes, netip.MustParsePrefix(cidr))
	}
	return prefixes
}

// Cache holds the current range lists. Replacement is last-writer-wins
// under the lock; readers always see a complete list.
type Cache struct {
	client  *http.Client
	ipv4URL string
	ipv6URL string

	mu     sync.RWMutex
	ipv4   []netip.Prefix
	ipv6   []netip.Prefix
	source string
}

// NewCache seeds the cache with the pinned fallback lists. The injected
// client carries the fetch timeout.
func NewCache(cfg config.CloudflareConfig, client *http.Client) *Cache {
	if client == nil {
		client = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &Cache{
		client:  client,
		ipv4URL: cfg.IPv4URL,
		ipv6URL: cfg.IPv6URL,
		ipv4:    fallbackIPv4,
		ipv6:    fallbackIPv6,
		source:  SourceFallback,
	}
}

// Refresh fetches both published lists and swaps them in atomically.
// On any failure the current lists are kept and the error returned;
// callers treat a failed refresh as non-fatal.
func (c *Cache) Refresh(ctx context.Context) error {
	ipv4, err := c.fetch(ctx, c.ipv4URL)
	if err != nil {
		return fmt.Errorf("fetch ipv4 ranges: %w", err)
	}

	ipv6, err := c.fetch(ctx, c.ipv6URL)
	if err != nil {
		return fmt.Errorf("fetch ipv6 ranges: %w", err)
	}

	c.mu.Lock()
	c.ipv4 = ipv4
	c.ipv6 = ipv6
	c.source = SourceFetched
	c.mu.Unlock()

	log.Printf("cloudflare: refreshed ranges (%d ipv4, %d ipv6)", len(ipv4), len(ipv6))
	return nil
}

func (c *Cache) fetch(ctx context.Context, url string) ([]netip.Prefix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var prefixes []netip.Prefix
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(line)
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", line, err)
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("empty range list from %s", url)
	}

	return prefixes, nil
}

// Check reports the ranges the prefix overlaps and the IP version
// checked. A single address is passed as its /32 or /128 prefix;
// overlap between two prefixes is exactly containment one way or the
// other, so the same test covers addresses, subnets and supernets.
func (c *Cache) Check(prefix netip.Prefix) (matched []string, version int) {
	c.mu.RLock()
	ranges := c.ipv6
	version = 6
	if prefix.Addr().Is4() {
		ranges = c.ipv4
		version = 4
	}
	c.mu.RUnlock()

	for _, r := range ranges {
		if prefix.Overlaps(r) {
			matched = append(matched, r.String())
		}
	}

	return matched, version
}

// Source reports where the current lists came from.
func (c *Cache) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}
