// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
)

// Resolver performs the DNS queries the validator depends on.
//
// Implementations report the outcome through the error:
//
//   - nil with at least one record: found
//   - an error wrapping [ErrNotFound]: NXDOMAIN, or no records of the type
//   - an error wrapping [ErrResolverTimeout]: the query timed out
//   - any other error: the resolver failed
//
// A nil error with no records is treated as not found. Implementations
// must honour ctx cancellation and be safe for concurrent use.
type Resolver interface {
	// LookupAddr returns the A and AAAA addresses of name.
	LookupAddr(ctx context.Context, name string) ([]string, error)

	// LookupNS returns the name servers of name.
	LookupNS(ctx context.Context, name string) ([]string, error)

	// LookupTXT returns the TXT records of name, one string per record.
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

type lookupFunc func(ctx context.Context, name string) ([]string, error)

// lookup runs fn bounded by the resolver timeout and classifies its error.
func (v *Validator) lookup(ctx context.Context, fn lookupFunc, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.ResolverTimeout)
	defer cancel()

	records, err := fn(ctx, name)
	if err == nil && len(records) == 0 {
		err = fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return records, classifyLookupError(err)
}

// classifyLookupError maps err onto [ErrNotFound], [ErrResolverTimeout]
// or [ErrResolver].
func classifyLookupError(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrResolver) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrResolverTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", ErrResolver, err)
}

// queryName returns the ASCII form of n used on the wire, optionally
// below a host label.
func (v *Validator) queryName(n Name, host string) (string, error) {
	s := n.String()
	if !n.IsASCII() {
		if v.cfg.ASCIIOnly {
			return "", newError(s, CheckSyntax, ErrInvalidSyntax, ReasonNotASCII, "")
		}
		encoded, err := v.encodeLabels(s)
		if err != nil {
			return "", newError(s, CheckEncoding, ErrEncoding, ReasonIDNA, "").withCause(err)
		}
		s = encoded
	}
	return joinHost(host, s), nil
}

// checkDNS reports whether n resolves. An address answer or a name
// server delegation are each sufficient.
func (v *Validator) checkDNS(ctx context.Context, n Name) error {
	s := n.String()
	if s == "" {
		return newError(s, CheckDNS, ErrInvalidSyntax, ReasonEmpty, "")
	}
	if v.resolver == nil {
		return newError(s, CheckDNS, ErrNoResolver, ReasonLookup, "")
	}

	query, err := v.queryName(n, "")
	if err != nil {
		return err
	}

	addrs, addrErr := v.lookup(ctx, v.resolver.LookupAddr, query)
	if addrErr == nil {
		v.logger.Debug("domain resolved", zap.String("domain", query), zap.Strings("addrs", addrs))
		return nil
	}

	ns, nsErr := v.lookup(ctx, v.resolver.LookupNS, query)
	if nsErr == nil {
		v.logger.Debug("domain delegated", zap.String("domain", query), zap.Strings("ns", ns))
		return nil
	}

	if errors.Is(addrErr, ErrNotFound) && errors.Is(nsErr, ErrNotFound) {
		return newError(s, CheckDNS, ErrNotResolvable, ReasonNoRecords, "").withCause(nsErr)
	}

	// At least one lookup got no answer at all; report that one.
	failed := nsErr
	if errors.Is(nsErr, ErrNotFound) {
		failed = addrErr
	}

	v.logger.Debug("domain lookup failed",
		zap.String("domain", query),
		zap.NamedError("addr_error", addrErr),
		zap.NamedError("ns_error", nsErr),
	)

	if errors.Is(failed, ErrResolverTimeout) {
		return newError(s, CheckDNS, ErrResolverTimeout, ReasonTimeout, "").withCause(failed)
	}
	return newError(s, CheckDNS, ErrResolver, ReasonLookup, "").withCause(failed)
}
