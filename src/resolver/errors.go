// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

// Sentinel errors for the resolver package.
//
// Lookup errors returned by [Client] additionally wrap one of
// domain.ErrNotFound, domain.ErrResolverTimeout or domain.ErrResolver.
var (
	// ErrNoServers is returned when no DNS servers are configured.
	ErrNoServers = errors.New("resolver: no DNS servers configured")

	// ErrAllServersFailed is returned when every configured DNS server
	// failed to answer a query.
	ErrAllServersFailed = errors.New("resolver: all DNS servers failed to respond")

	// ErrInternalPanic is returned when an internal panic is recovered during execution.
	ErrInternalPanic = errors.New("resolver: internal panic recovered")
)

// RcodeError reports a DNS response with a failure response code other
// than NXDOMAIN.
type RcodeError struct {
	Server string
	Rcode  int
}

func (e *RcodeError) Error() string {
	name, ok := dns.RcodeToString[e.Rcode]
	if !ok {
		name = fmt.Sprintf("RCODE%d", e.Rcode)
	}
	return fmt.Sprintf("resolver: %s answered %s", e.Server, name)
}
