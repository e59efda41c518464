// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/miekg/dns"
)

// System implements domain.Resolver with a [net.Resolver], i.e. the
// operating system's resolution path including /etc/hosts and nsswitch.
//
// Names are always queried fully qualified, so resolv.conf search
// domains never apply. It performs no retries or failover of its own.
type System struct {
	r *net.Resolver
}

var _ domain.Resolver = (*System)(nil)

// NewSystem returns a [System] resolver. A nil r uses [net.DefaultResolver].
func NewSystem(r *net.Resolver) *System {
	if r == nil {
		r = net.DefaultResolver
	}
	return &System{r: r}
}

// LookupAddr returns the addresses of name.
func (s *System) LookupAddr(ctx context.Context, name string) ([]string, error) {
	addrs, err := s.r.LookupHost(ctx, dns.Fqdn(name))
	if err != nil {
		return nil, classifySystemError(err)
	}
	return addrs, nil
}

// LookupNS returns the name servers of name.
func (s *System) LookupNS(ctx context.Context, name string) ([]string, error) {
	records, err := s.r.LookupNS(ctx, dns.Fqdn(name))
	if err != nil {
		return nil, classifySystemError(err)
	}
	hosts := make([]string, 0, len(records))
	for _, ns := range records {
		hosts = append(hosts, ns.Host)
	}
	return hosts, nil
}

// LookupTXT returns the TXT records of name.
func (s *System) LookupTXT(ctx context.Context, name string) ([]string, error) {
	records, err := s.r.LookupTXT(ctx, dns.Fqdn(name))
	if err != nil {
		return nil, classifySystemError(err)
	}
	return records, nil
}

// classifySystemError wraps a [net.Resolver] failure in the matching
// domain sentinel.
func classifySystemError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrResolverTimeout, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrResolver, err)
}
