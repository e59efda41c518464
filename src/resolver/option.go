// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a [Client].
type Option func(*Client)

// WithServers replaces the configured DNS servers. Addresses may omit
// the port, in which case 53 is used.
//
// By default the servers of /etc/resolv.conf are used, falling back to
// public resolvers when the file cannot be read.
func WithServers(servers ...string) Option {
	return func(c *Client) {
		c.servers = normalizeServers(servers)
	}
}

// SetServers adds or replaces DNS servers on a running [Client].
// It is safe to call concurrently with lookups; queries already in
// flight keep their own snapshot of the server list.
//
// Passing zero servers is a no-op.
func (c *Client) SetServers(servers ...string) {
	if len(servers) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, server := range normalizeServers(servers) {
		found := false
		for _, s := range c.servers {
			if s == server {
				found = true
				break
			}
		}
		if !found {
			c.servers = append(c.servers, server)
		}
	}
}

// DeleteServers removes servers from a running [Client].
// Passing zero servers or unknown addresses is a no-op.
func (c *Client) DeleteServers(servers ...string) {
	if len(servers) == 0 {
		return
	}

	toDelete := make(map[string]struct{}, len(servers))
	for _, s := range normalizeServers(servers) {
		toDelete[s] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var kept []string
	for _, s := range c.servers {
		if _, ok := toDelete[s]; !ok {
			kept = append(kept, s)
		}
	}
	c.servers = kept
}

// WithTimeout sets the timeout for each DNS exchange.
// The default is 2 seconds.
//
// This option has no effect if a custom DNS client is set via [WithDNSClient],
// as the custom client's own Timeout configuration takes precedence.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxRetries sets the number of retries per server after a
// transient failure (network error, SERVFAIL). The default is 2 retries
// (3 total attempts). NXDOMAIN and empty answers are never retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = defaultRetries
		}
		c.maxRetries = n
	}
}

// WithRetryDelay sets the initial backoff between retries. The delay
// doubles after each attempt up to 30 seconds. The default is 1 second.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithDNSClient sets a custom [dns.Client] for all DNS operations, for
// example to use TCP or DNS-over-TLS ("tcp-tls" with a TLSConfig).
//
// When set, [WithTimeout] does not affect queries. Passing nil is a no-op.
func WithDNSClient(client *dns.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.dnsClient = client
		}
	}
}

// WithEDNS0Size sets the EDNS0 UDP buffer size.
// The default is 1232 bytes, which is the recommended size to prevent
// IP fragmentation over UDP.
//
// See: https://dnsflagday.net/2020/
func WithEDNS0Size(size uint16) Option {
	return func(c *Client) {
		if size > 0 {
			c.edns0Size = size
		}
	}
}

// WithRateLimit limits outgoing queries to qps per second with the given
// burst, shared by all lookups of the client. Non-positive qps disables
// limiting, which is the default.
func WithRateLimit(qps float64, burst int) Option {
	return func(c *Client) {
		if qps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), max(burst, 1))
	}
}

// WithLogger sets the logger for retries, failover and health checks.
// Passing nil is a no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHealthProbe sets the name queried by [Client.Health].
// The default is the root zone, which every recursive resolver can answer.
func WithHealthProbe(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.probe = dns.Fqdn(name)
		}
	}
}
