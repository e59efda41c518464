// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// newQuery builds a recursive query for qname with an EDNS0 OPT record.
func newQuery(qname string, qtype uint16, edns0Size uint16) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(qname, qtype)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0Size, false)
	return msg
}

// exchange sends msg to server. It respects context cancellation even
// when the underlying client does not.
func exchange(ctx context.Context, client *dns.Client, msg *dns.Msg, server string) (*dns.Msg, error) {
	// Create a channel to receive the result so we can
	// respect context cancellation.
	type dnsResult struct {
		msg *dns.Msg
		err error
	}
	ch := make(chan dnsResult, 1)

	go func() {
		resp, _, err := client.ExchangeContext(ctx, msg, server)
		ch <- dnsResult{msg: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-ch:
		return result.msg, result.err
	}
}

// exchangeWithRetries queries a single server, retrying transient
// failures with exponential backoff. Truncated UDP answers are repeated
// over TCP.
func (c *Client) exchangeWithRetries(ctx context.Context, qname string, qtype uint16, server string) (*dns.Msg, error) {
	var resp *dns.Msg

	err := retry.Do(
		func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}

			msg := newQuery(qname, qtype, c.edns0Size)
			r, err := exchange(ctx, c.dnsClient, msg, server)
			if err == nil && r != nil && r.Truncated && !strings.HasPrefix(c.dnsClient.Net, "tcp") {
				c.logger.Debug("truncated answer, retrying over tcp",
					zap.String("server", server),
					zap.String("name", qname),
				)
				r, err = exchange(ctx, c.tcpClient, msg, server)
			}
			if err != nil {
				return err
			}

			switch r.Rcode {
			case dns.RcodeSuccess, dns.RcodeNameError:
				resp = r
				return nil
			case dns.RcodeServerFailure:
				return &RcodeError{Server: server, Rcode: r.Rcode}
			default:
				// REFUSED, NOTIMP and friends will not change on retry.
				return retry.Unrecoverable(&RcodeError{Server: server, Rcode: r.Rcode})
			}
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("dns query failed, retrying",
				zap.String("server", server),
				zap.String("name", qname),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// isTransient reports whether a failed exchange is worth repeating.
// Context expiry never is.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rerr *RcodeError
	if errors.As(err, &rerr) {
		return rerr.Rcode == dns.RcodeServerFailure
	}
	return true
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// normalizeServers adds the default port 53 to addresses without one
// and drops empty entries.
func normalizeServers(servers []string) []string {
	out := make([]string, 0, len(servers))
	for _, s := range servers {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(strings.Trim(s, "[]"), "53")
		}
		out = append(out, s)
	}
	return out
}

// systemServers reads the name servers of a resolv.conf file, falling
// back to public resolvers.
func systemServers(path string) []string {
	conf, err := dns.ClientConfigFromFile(path)
	if err != nil || len(conf.Servers) == 0 {
		return append([]string(nil), fallbackServers...)
	}

	port := conf.Port
	if port == "" {
		port = "53"
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, port))
	}
	return servers
}
