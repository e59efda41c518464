// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"go.uber.org/zap"
)

// Challenge code limits.
const (
	// DefaultCodeLength gives about 190 bits of entropy.
	DefaultCodeLength = 32

	// MinCodeLength gives about 131 bits of entropy.
	MinCodeLength = 22

	// MaxTXTValueLength is the size limit of a single TXT character-string.
	MaxTXTValueLength = 255
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randReader is the entropy source for challenge codes.
var randReader io.Reader = rand.Reader

// Challenge is a generated ownership challenge. The caller publishes
// Value as a TXT record at Host and later passes Value back to
// [Validator.VerifyOwnership]. Nothing is retained by the validator.
type Challenge struct {
	// Domain is the normalized domain being claimed.
	Domain string

	// Host is the ASCII name where the TXT record must be published.
	Host string

	// Prefix is the optional namespace, e.g. "myservice".
	Prefix string

	// Code is the random alphanumeric token.
	Code string

	// Value is the expected TXT record: "prefix=code", or just the code.
	Value string
}

// ChallengeOption configures [Validator.GenerateChallenge] and
// [Validator.VerifyOwnership].
type ChallengeOption func(*challengeOptions)

type challengeOptions struct {
	prefix  string
	length  int
	txtHost string
}

// WithPrefix namespaces the code as "prefix=code".
func WithPrefix(prefix string) ChallengeOption {
	return func(o *challengeOptions) {
		o.prefix = prefix
	}
}

// WithCodeLength sets the number of characters of the random code.
// The default is [DefaultCodeLength]; values below [MinCodeLength] are
// rejected.
func WithCodeLength(n int) ChallengeOption {
	return func(o *challengeOptions) {
		o.length = n
	}
}

// WithTXTHost places the TXT record below a host label of the domain,
// e.g. "_myservice" for "_myservice.example.com". Pass the same option
// to generation and verification.
func WithTXTHost(host string) ChallengeOption {
	return func(o *challengeOptions) {
		o.txtHost = host
	}
}

func newChallengeOptions(opts []ChallengeOption) challengeOptions {
	o := challengeOptions{length: DefaultCodeLength}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GenerateChallenge creates a random verification code for domain.
//
// The domain must pass the local checks (syntax, length, reserved). The
// challenge is neither published nor stored.
//
//	ch, err := v.GenerateChallenge("example.com", domain.WithPrefix("myservice"))
//	// ch.Value == "myservice=Wq3...": publish it as a TXT record at ch.Host.
func (v *Validator) GenerateChallenge(domain string, opts ...ChallengeOption) (Challenge, error) {
	o := newChallengeOptions(opts)
	n := v.parse(domain)
	s := n.String()

	if err := v.checkLocal(n); err != nil {
		return Challenge{}, err
	}

	fail := func(reason Reason, detail string) *Error {
		return newError(s, CheckOwnership, ErrInvalidChallenge, reason, detail)
	}

	if !validPrefix(o.prefix) {
		return Challenge{}, fail(ReasonPrefix, o.prefix)
	}
	if o.length < MinCodeLength || o.length > MaxTXTValueLength {
		return Challenge{}, fail(ReasonCodeLength,
			fmt.Sprintf("%d not in [%d, %d]", o.length, MinCodeLength, MaxTXTValueLength))
	}
	if o.prefix != "" && len(o.prefix)+1+o.length > MaxTXTValueLength {
		return Challenge{}, fail(ReasonCodeLength,
			fmt.Sprintf("prefix and code exceed %d characters", MaxTXTValueLength))
	}
	if !validTXTHost(o.txtHost) {
		return Challenge{}, fail(ReasonTXTHost, o.txtHost)
	}

	host, err := v.queryName(n, o.txtHost)
	if err != nil {
		return Challenge{}, err
	}

	code, err := randomCode(o.length)
	if err != nil {
		return Challenge{}, fail(ReasonRandom, "").withCause(err)
	}

	value := code
	if o.prefix != "" {
		value = o.prefix + "=" + code
	}

	return Challenge{
		Domain: s,
		Host:   host,
		Prefix: o.prefix,
		Code:   code,
		Value:  value,
	}, nil
}

// OwnershipStatus is the result of [Validator.VerifyOwnership].
type OwnershipStatus int

// Ownership verification results.
const (
	// OwnershipUnverified means no lookup was made, e.g. the domain was invalid.
	OwnershipUnverified OwnershipStatus = iota

	// OwnershipVerified means a TXT record equal to the expected value exists.
	OwnershipVerified

	// OwnershipNotFound means the name has no TXT records.
	OwnershipNotFound

	// OwnershipMismatch means TXT records exist but none equals the expected value.
	OwnershipMismatch

	// OwnershipResolverError means the TXT lookup timed out or failed.
	OwnershipResolverError
)

func (s OwnershipStatus) String() string {
	switch s {
	case OwnershipVerified:
		return "verified"
	case OwnershipNotFound:
		return "not-found"
	case OwnershipMismatch:
		return "mismatch"
	case OwnershipResolverError:
		return "resolver-error"
	default:
		return "unverified"
	}
}

// VerifyOwnership looks up the TXT records of domain (below the TXT host
// label, if given) and reports whether one of them equals expected
// exactly.
//
// NotFound and Mismatch are ordinary results and come with a nil error.
// A resolver failure yields [OwnershipResolverError] with an error
// wrapping [ErrResolver]; invalid input yields [OwnershipUnverified]
// with the validation error.
func (v *Validator) VerifyOwnership(ctx context.Context, domain, expected string, opts ...ChallengeOption) (OwnershipStatus, error) {
	o := newChallengeOptions(opts)
	n := v.parse(domain)
	s := n.String()

	if err := v.checkLocal(n); err != nil {
		return OwnershipUnverified, err
	}
	if expected == "" {
		return OwnershipUnverified, newError(s, CheckOwnership, ErrInvalidChallenge, ReasonExpected, "")
	}
	if !validTXTHost(o.txtHost) {
		return OwnershipUnverified, newError(s, CheckOwnership, ErrInvalidChallenge, ReasonTXTHost, o.txtHost)
	}

	host, err := v.queryName(n, o.txtHost)
	if err != nil {
		return OwnershipUnverified, err
	}

	if v.resolver == nil {
		return OwnershipResolverError, newError(s, CheckOwnership, ErrNoResolver, ReasonLookup, host)
	}

	records, err := v.lookup(ctx, v.resolver.LookupTXT, host)
	switch {
	case errors.Is(err, ErrNotFound):
		v.logger.Debug("ownership txt records not found", zap.String("host", host))
		return OwnershipNotFound, nil
	case errors.Is(err, ErrResolverTimeout):
		return OwnershipResolverError, newError(s, CheckOwnership, ErrResolverTimeout, ReasonTimeout, host).withCause(err)
	case err != nil:
		return OwnershipResolverError, newError(s, CheckOwnership, ErrResolver, ReasonLookup, host).withCause(err)
	}

	for _, record := range records {
		if record == expected {
			v.logger.Debug("ownership verified", zap.String("host", host))
			return OwnershipVerified, nil
		}
	}

	v.logger.Debug("ownership txt mismatch", zap.String("host", host), zap.Int("records", len(records)))
	return OwnershipMismatch, nil
}

// checkLocal runs the syntax, length and reserved checks.
func (v *Validator) checkLocal(n Name) error {
	if err := v.checkSyntax(n); err != nil {
		return err
	}
	if err := v.checkLength(n); err != nil {
		return err
	}
	return v.checkReserved(n)
}

// randomCode returns n characters drawn uniformly from codeAlphabet.
func randomCode(n int) (string, error) {
	limit := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for range n {
		i, err := rand.Int(randReader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[i.Int64()])
	}
	return b.String(), nil
}

// validPrefix accepts printable ASCII without whitespace, quotes,
// backslashes or '='.
func validPrefix(p string) bool {
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c <= ' ' || c >= 0x7f || c == '"' || c == '\\' || c == '=' {
			return false
		}
	}
	return true
}

// validTXTHost accepts an empty host or dot-separated labels of letters,
// digits, hyphens and underscores.
func validTXTHost(h string) bool {
	h = strings.Trim(strings.TrimSpace(h), ".")
	if h == "" {
		return true
	}
	for _, label := range strings.Split(h, ".") {
		if label == "" || len(label) > DefaultMaxLabelLength {
			return false
		}
		for _, r := range label {
			if !isLDH(r) && r != '_' {
				return false
			}
		}
	}
	return true
}
