// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/idna"
)

// Default configuration values.
const (
	DefaultMaxDomainLength = 253
	DefaultMaxLabelLength  = 63
	DefaultResolverTimeout = 5 * time.Second
	defaultConcurrency     = 100
)

// Config is the effective, read-only configuration of a [Validator].
type Config struct {
	// ASCIIOnly disables Unicode labels and the Punycode conversions.
	ASCIIOnly bool

	// MaxDomainLength is the maximum encoded length of a whole name.
	MaxDomainLength int

	// MaxLabelLength is the maximum encoded length of a single label.
	MaxLabelLength int

	// ResolverTimeout bounds each DNS stage.
	ResolverTimeout time.Duration

	// ReservedDomains lists the entries of the reserved set.
	ReservedDomains []string

	// Concurrency limits parallel work in [Validator.ValidateDomains].
	Concurrency int
}

// Validator validates domain names and verifies domain ownership.
//
// A Validator is immutable after [New] returns and safe for concurrent
// use. It keeps no state between calls.
type Validator struct {
	cfg      Config
	reserved *ReservedSet
	resolver Resolver
	logger   *zap.Logger
	profile  *idna.Profile
	mapper   *idna.Profile
}

// New creates a [Validator] that uses r for DNS lookups.
// r may be nil when only local checks and conversions are needed; DNS
// operations then fail with [ErrNoResolver].
//
//	// ASCII-only defaults, real DNS:
//	v := domain.New(resolver.New())
//
//	// Unicode names, stricter limits:
//	v := domain.New(resolver.New(),
//	    domain.WithASCIIOnly(false),
//	    domain.WithMaxDomainLength(150),
//	)
func New(r Resolver, opts ...Option) *Validator {
	o := &options{
		cfg: Config{
			ASCIIOnly:       true,
			MaxDomainLength: DefaultMaxDomainLength,
			MaxLabelLength:  DefaultMaxLabelLength,
			ResolverTimeout: DefaultResolverTimeout,
			Concurrency:     defaultConcurrency,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	reserved := defaultReservedSet
	if o.reservedReplaced {
		reserved = NewReservedSet(o.reserved...)
	}
	if len(o.reservedExtra) > 0 {
		reserved = reserved.With(o.reservedExtra...)
	}

	v := &Validator{
		cfg:      o.cfg,
		reserved: reserved,
		resolver: r,
		logger:   o.logger,
		profile:  newIDNAProfile(),
		mapper:   newIDNAMapper(),
	}
	v.cfg.ReservedDomains = reserved.Entries()
	return v
}

// Config returns a copy of the effective configuration.
func (v *Validator) Config() Config {
	cfg := v.cfg
	cfg.ReservedDomains = append([]string(nil), v.cfg.ReservedDomains...)
	return cfg
}

// Reserved returns the reserved set used by the validator.
func (v *Validator) Reserved() *ReservedSet { return v.reserved }

// ValidateDomain runs every check on name: syntax, length, reserved and
// DNS, in that order, stopping at the first failure so that obviously
// invalid input never reaches the network.
func (v *Validator) ValidateDomain(ctx context.Context, name string) Outcome {
	return v.Validate(ctx, name, CheckAll)
}

// Validate runs the requested subset of checks on name in the fixed
// order syntax, length, reserved, DNS, stopping at the first failure.
// Passing [CheckLocal] validates without any network I/O.
func (v *Validator) Validate(ctx context.Context, name string, checks Check) Outcome {
	n := v.parse(name)
	out := Outcome{Name: n, Requested: checks & CheckAll}

	stages := []struct {
		check Check
		run   func() error
		dst   *error
	}{
		{CheckSyntax, func() error { return v.checkSyntax(n) }, &out.Syntax},
		{CheckLength, func() error { return v.checkLength(n) }, &out.Length},
		{CheckReserved, func() error { return v.checkReserved(n) }, &out.Reserved},
		{CheckDNS, func() error { return v.checkDNS(ctx, n) }, &out.DNS},
	}

	for _, st := range stages {
		if out.Requested&st.check == 0 {
			continue
		}
		out.Ran |= st.check
		if err := st.run(); err != nil {
			*st.dst = err
			v.logger.Debug("domain check failed",
				zap.String("domain", n.String()),
				zap.Stringer("check", st.check),
				zap.Error(err),
			)
			return out
		}
	}

	out.Valid = out.Requested != 0 && out.Ran == out.Requested
	return out
}

// ValidateSyntax checks the shape of name against the label grammar.
// It returns nil or an [*Error] wrapping [ErrInvalidSyntax].
func (v *Validator) ValidateSyntax(name string) error {
	return v.checkSyntax(v.parse(name))
}

// ValidateLength checks the encoded length of name and of each label.
// It returns nil or an [*Error] wrapping [ErrLengthExceeded].
func (v *Validator) ValidateLength(name string) error {
	return v.checkLength(v.parse(name))
}

// ValidateReserved checks name against the reserved set.
// It returns nil or an [*Error] wrapping [ErrReservedDomain].
func (v *Validator) ValidateReserved(name string) error {
	return v.checkReserved(v.parse(name))
}

// ValidateDNS checks that name resolves: either an address lookup
// succeeds or the name has name server records.
//
// It returns nil, an [*Error] wrapping [ErrNotResolvable] when the
// resolver answered negatively, or one wrapping [ErrResolverTimeout] or
// [ErrResolver] when no answer could be obtained.
func (v *Validator) ValidateDNS(ctx context.Context, name string) error {
	return v.checkDNS(ctx, v.parse(name))
}

func (v *Validator) checkReserved(n Name) error {
	entry, reason, ok := v.reserved.Match(n.String())
	if !ok {
		return nil
	}
	return newError(n.String(), CheckReserved, ErrReservedDomain, reason, entry)
}
