// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/miekg/dns"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Default configuration values.
const (
	defaultTimeout    = 2 * time.Second
	defaultRetries    = 2
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
	defaultEDNS0Size  = 1232 // Recommended size to prevent IP fragmentation
	defaultProbe      = "."
)

// resolvConfPath is read by [New] when no servers are given.
var resolvConfPath = "/etc/resolv.conf"

// fallbackServers are used when resolvConfPath is unusable.
var fallbackServers = []string{"1.1.1.1:53", "8.8.8.8:53"}

// Client implements domain.Resolver on top of [github.com/miekg/dns].
//
// Servers are tried in order. A server that fails after its retries is
// skipped in favour of the next one; a definitive answer (records,
// NXDOMAIN or an empty answer) from any server ends the lookup.
type Client struct {
	mu         sync.RWMutex
	servers    []string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	edns0Size  uint16
	dnsClient  *dns.Client
	tcpClient  *dns.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	probe      string
}

var _ domain.Resolver = (*Client)(nil)

// New creates a new [Client]. Use functional options to customize it.
//
//	// Servers from /etc/resolv.conf:
//	r := resolver.New()
//
//	// Explicit servers, more patience:
//	r := resolver.New(
//	    resolver.WithServers("1.1.1.1", "9.9.9.9"),
//	    resolver.WithTimeout(5*time.Second),
//	    resolver.WithMaxRetries(3),
//	)
func New(opts ...Option) *Client {
	c := &Client{
		timeout:    defaultTimeout,
		maxRetries: defaultRetries,
		retryDelay: defaultRetryDelay,
		edns0Size:  defaultEDNS0Size,
		logger:     zap.NewNop(),
		probe:      defaultProbe,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.servers == nil {
		c.servers = systemServers(resolvConfPath)
	}

	// Initialize shared DNS client if not set by WithDNSClient option.
	if c.dnsClient == nil {
		c.dnsClient = &dns.Client{
			Timeout: c.timeout,
			Net:     "udp",
		}
	}
	c.tcpClient = &dns.Client{
		Net:     "tcp",
		Timeout: c.dnsClient.Timeout,
		Dialer:  c.dnsClient.Dialer,
	}

	return c
}

// Servers returns a copy of the currently configured DNS servers.
func (c *Client) Servers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.servers...)
}

// LookupAddr returns the IPv4 and IPv6 addresses of name.
func (c *Client) LookupAddr(ctx context.Context, name string) ([]string, error) {
	v4, err4 := c.lookup(ctx, name, dns.TypeA)
	v6, err6 := c.lookup(ctx, name, dns.TypeAAAA)

	addrs := append(v4, v6...)
	if len(addrs) > 0 {
		return addrs, nil
	}
	if err4 != nil && !errors.Is(err4, domain.ErrNotFound) {
		return nil, err4
	}
	return nil, err6
}

// LookupNS returns the name servers of name.
func (c *Client) LookupNS(ctx context.Context, name string) ([]string, error) {
	return c.lookup(ctx, name, dns.TypeNS)
}

// LookupTXT returns the TXT records of name. The character-strings of
// each record are concatenated, so every returned string is one record.
func (c *Client) LookupTXT(ctx context.Context, name string) ([]string, error) {
	return c.lookup(ctx, name, dns.TypeTXT)
}

// lookup queries name for qtype with failover across servers and
// returns the matching records in presentation form.
func (c *Client) lookup(ctx context.Context, name string, qtype uint16) ([]string, error) {
	servers := c.Servers()
	if len(servers) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrResolver, ErrNoServers)
	}

	qname := dns.Fqdn(name)
	qtypeName := dns.TypeToString[qtype]

	var lastErr error
	for _, server := range servers {
		resp, err := c.exchangeWithRetries(ctx, qname, qtype, server)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			c.logger.Warn("dns server failed, trying next",
				zap.String("server", server),
				zap.String("name", qname),
				zap.String("type", qtypeName),
				zap.Error(err),
			)
			continue
		}

		if resp.Rcode == dns.RcodeNameError {
			return nil, fmt.Errorf("%w: %s %s: NXDOMAIN", domain.ErrNotFound, qtypeName, name)
		}

		records := extractRecords(resp, qtype)
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: %s %s: no records", domain.ErrNotFound, qtypeName, name)
		}
		return records, nil
	}

	if isTimeout(lastErr) {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrResolverTimeout, qtypeName, name, lastErr)
	}
	return nil, fmt.Errorf("%w: %w: %s %s: %w", domain.ErrResolver, ErrAllServersFailed, qtypeName, name, lastErr)
}

// extractRecords returns the answer records of type qtype in
// presentation form: addresses, name server host names, or TXT data.
func extractRecords(msg *dns.Msg, qtype uint16) []string {
	if msg == nil {
		return nil
	}

	var records []string
	for _, rr := range msg.Answer {
		switch v := rr.(type) {
		case *dns.A:
			if qtype == dns.TypeA {
				records = append(records, v.A.String())
			}
		case *dns.AAAA:
			if qtype == dns.TypeAAAA {
				records = append(records, v.AAAA.String())
			}
		case *dns.NS:
			if qtype == dns.TypeNS {
				records = append(records, v.Ns)
			}
		case *dns.TXT:
			if qtype == dns.TypeTXT {
				records = append(records, strings.Join(v.Txt, ""))
			}
		}
	}
	return records
}
