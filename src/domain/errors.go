// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain package.
var (
	// ErrInvalidSyntax is returned when a domain name violates the
	// label grammar or the permitted character class.
	ErrInvalidSyntax = errors.New("domain: invalid syntax")

	// ErrLengthExceeded is returned when the whole name or one of its
	// labels is longer than the configured maximum.
	ErrLengthExceeded = errors.New("domain: length exceeded")

	// ErrReservedDomain is returned when a domain matches the reserved set.
	ErrReservedDomain = errors.New("domain: reserved domain")

	// ErrEncoding is returned when Unicode or Punycode input cannot be converted.
	ErrEncoding = errors.New("domain: encoding error")

	// ErrUnsupportedOperation is returned when a Unicode operation is
	// invoked on a [Validator] configured as ASCII-only.
	ErrUnsupportedOperation = errors.New("domain: operation not supported in ASCII-only mode")

	// ErrNotResolvable is returned when the resolver answered but the
	// domain has neither address nor name server records.
	ErrNotResolvable = errors.New("domain: not resolvable")

	// ErrNotFound is returned by a [Resolver] when the queried name does
	// not exist (NXDOMAIN) or has no records of the requested type.
	ErrNotFound = errors.New("domain: no such record")

	// ErrResolver is returned when the resolver failed to produce an answer.
	// It is never used to mean that the domain does not exist.
	ErrResolver = errors.New("domain: resolver error")

	// ErrResolverTimeout is returned when a resolver query exceeds its deadline.
	// It matches [ErrResolver] under [errors.Is].
	ErrResolverTimeout = fmt.Errorf("%w: timeout", ErrResolver)

	// ErrNoResolver is returned by DNS-backed operations on a [Validator]
	// constructed without a [Resolver]. It matches [ErrResolver].
	ErrNoResolver = fmt.Errorf("%w: no resolver configured", ErrResolver)

	// ErrInvalidChallenge is returned when challenge parameters
	// (prefix, code length, TXT host or expected value) are unusable.
	ErrInvalidChallenge = errors.New("domain: invalid challenge")

	// ErrInternalPanic is returned when an internal panic is recovered during execution.
	ErrInternalPanic = errors.New("domain: internal panic recovered")
)

// Reason is a machine-readable code explaining why a check failed.
type Reason string

// Failure reasons reported in [Error].
const (
	ReasonEmpty        Reason = "empty"
	ReasonTrailingDots Reason = "trailing-dots"
	ReasonEmptyLabel   Reason = "empty-label"
	ReasonSingleLabel  Reason = "single-label"
	ReasonHyphen       Reason = "hyphen"
	ReasonInvalidChar  Reason = "invalid-char"
	ReasonIDNA         Reason = "idna"
	ReasonNumericTLD   Reason = "numeric-tld"
	ReasonNameTooLong  Reason = "name-too-long"
	ReasonLabelTooLong Reason = "label-too-long"
	ReasonNotASCII     Reason = "not-ascii"
	ReasonRoundTrip    Reason = "round-trip"
	ReasonPunycode     Reason = "punycode"
	ReasonExactMatch   Reason = "exact-match"
	ReasonSuffixMatch  Reason = "suffix-match"
	ReasonIPLiteral    Reason = "ip-literal"
	ReasonNoRecords    Reason = "no-records"
	ReasonTimeout      Reason = "timeout"
	ReasonLookup       Reason = "lookup-failed"
	ReasonPrefix       Reason = "prefix"
	ReasonCodeLength   Reason = "code-length"
	ReasonTXTHost      Reason = "txt-host"
	ReasonExpected     Reason = "expected-value"
	ReasonRandom       Reason = "random-source"
)

// Error describes a failed check on a single domain.
//
// Err is always one of the package sentinels, so callers can match with
// [errors.Is] and inspect the details with [errors.As]:
//
//	var derr *domain.Error
//	if errors.As(err, &derr) && derr.Reason == domain.ReasonHyphen {
//	    // ...
//	}
type Error struct {
	// Domain is the normalized domain name that was checked.
	Domain string

	// Check is the check that failed.
	Check Check

	// Reason explains the failure.
	Reason Reason

	// Detail optionally carries extra context such as the offending label
	// or the matched reserved entry.
	Detail string

	// Err is the sentinel error classifying the failure.
	Err error

	// cause is the underlying error, if any (e.g. from the IDNA library or
	// the resolver).
	cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s (%s)", e.Err, e.Domain, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

func newError(name string, check Check, sentinel error, reason Reason, detail string) *Error {
	return &Error{Domain: name, Check: check, Reason: reason, Detail: detail, Err: sentinel}
}

func (e *Error) withCause(err error) *Error {
	e.cause = err
	return e
}
