// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package resolver provides DNS resolvers for the domain package.
//
// [Client] talks to recursive DNS servers directly through
// [github.com/miekg/dns]: it tries servers in order, retries transient
// failures with exponential backoff, optionally rate-limits outgoing
// queries and can report per-server health. [System] delegates to the
// operating system via [net.Resolver].
//
// Both classify failures the way domain.Resolver expects: NXDOMAIN and
// empty answers wrap domain.ErrNotFound, timeouts wrap
// domain.ErrResolverTimeout and everything else wraps domain.ErrResolver.
//
//	r := resolver.New(
//	    resolver.WithServers("1.1.1.1", "8.8.8.8"),
//	    resolver.WithMaxRetries(1),
//	    resolver.WithRateLimit(50, 10),
//	)
//	v := domain.New(r)
package resolver
