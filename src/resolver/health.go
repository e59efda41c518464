// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// ServerStatus represents the health status of a single DNS server.
type ServerStatus struct {
	// Server is the DNS server address (host:port).
	Server string

	// Online indicates whether the server is responding to queries.
	Online bool

	// Latency is the round-trip time of the probe.
	// Only meaningful when Online is true.
	Latency time.Duration

	// Error is non-nil if the health check failed.
	Error error
}

// Health probes every configured server once, without retries, and
// reports whether it answered and how fast.
func (c *Client) Health(ctx context.Context) ([]ServerStatus, error) {
	servers := c.Servers()
	if len(servers) == 0 {
		return nil, ErrNoServers
	}

	statuses := make([]ServerStatus, len(servers))
	var wg sync.WaitGroup

	for i, server := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					statuses[i] = ServerStatus{
						Server: server,
						Error:  fmt.Errorf("%w: %v", ErrInternalPanic, r),
					}
				}
			}()

			statuses[i] = c.checkHealth(ctx, server)
		}()
	}

	wg.Wait()
	if ctx.Err() != nil {
		return statuses, ctx.Err()
	}
	return statuses, nil
}

// checkHealth queries the probe name's NS records on server and
// measures the latency.
func (c *Client) checkHealth(ctx context.Context, server string) ServerStatus {
	start := time.Now()

	resp, err := exchange(ctx, c.dnsClient, newQuery(c.probe, dns.TypeNS, c.edns0Size), server)
	latency := time.Since(start)

	if err != nil {
		c.logger.Debug("dns server offline", zap.String("server", server), zap.Error(err))
		return ServerStatus{
			Server: server,
			Online: false,
			Error:  err,
		}
	}

	if resp.Rcode != dns.RcodeSuccess {
		return ServerStatus{
			Server: server,
			Online: false,
			Error:  &RcodeError{Server: server, Rcode: resp.Rcode},
		}
	}

	return ServerStatus{
		Server:  server,
		Online:  true,
		Latency: latency,
	}
}
