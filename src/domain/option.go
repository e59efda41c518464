// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"time"

	"go.uber.org/zap"
)

// Option is a functional option for configuring a [Validator].
type Option func(*options)

type options struct {
	cfg              Config
	reserved         []string
	reservedReplaced bool
	reservedExtra    []string
	logger           *zap.Logger
}

// WithASCIIOnly switches ASCII-only mode on or off.
// The default is true: only [A-Za-z0-9-] labels are accepted and the
// Unicode conversions return [ErrUnsupportedOperation].
func WithASCIIOnly(asciiOnly bool) Option {
	return func(o *options) {
		o.cfg.ASCIIOnly = asciiOnly
	}
}

// WithMaxDomainLength sets the maximum encoded length of a whole name,
// separators included. The default is 253. Non-positive values are ignored.
func WithMaxDomainLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cfg.MaxDomainLength = n
		}
	}
}

// WithMaxLabelLength sets the maximum encoded length of a single label.
// The default is 63. Non-positive values are ignored.
func WithMaxLabelLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cfg.MaxLabelLength = n
		}
	}
}

// WithResolverTimeout bounds every DNS stage of [Validator.ValidateDNS]
// and [Validator.VerifyOwnership]. The default is 5 seconds.
// Non-positive values are ignored.
func WithResolverTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cfg.ResolverTimeout = d
		}
	}
}

// WithReservedDomains replaces the default reserved set with domains.
// Passing no domains leaves only IP literals reserved.
func WithReservedDomains(domains ...string) Option {
	return func(o *options) {
		o.reserved = append([]string(nil), domains...)
		o.reservedReplaced = true
	}
}

// WithAdditionalReservedDomains extends the reserved set, default or
// replaced, with domains.
func WithAdditionalReservedDomains(domains ...string) Option {
	return func(o *options) {
		o.reservedExtra = append(o.reservedExtra, domains...)
	}
}

// WithConcurrency sets the maximum number of domains validated in
// parallel by [Validator.ValidateDomains]. The default is 100.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cfg.Concurrency = n
		}
	}
}

// WithLogger sets the logger used for debug tracing of checks.
// Passing nil is a no-op; the default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
