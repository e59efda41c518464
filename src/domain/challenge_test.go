// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChallenge(t *testing.T) {
	v := domain.New(nil)

	ch, err := v.GenerateChallenge("Example.COM", domain.WithPrefix("myservice"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", ch.Domain)
	assert.Equal(t, "example.com", ch.Host)
	assert.Equal(t, "myservice", ch.Prefix)
	assert.Len(t, ch.Code, domain.DefaultCodeLength)
	assert.Regexp(t, `^myservice=[A-Za-z0-9]+$`, ch.Value)
	assert.Equal(t, "myservice="+ch.Code, ch.Value)

	ch, err = v.GenerateChallenge("example.com")
	require.NoError(t, err)
	assert.Equal(t, ch.Code, ch.Value)

	ch, err = v.GenerateChallenge("example.com", domain.WithTXTHost("_myservice"), domain.WithCodeLength(domain.MinCodeLength))
	require.NoError(t, err)
	assert.Equal(t, "_myservice.example.com", ch.Host)
	assert.Len(t, ch.Code, domain.MinCodeLength)
}

func TestGenerateChallengeUnique(t *testing.T) {
	v := domain.New(nil)
	seen := make(map[string]struct{})
	for range 200 {
		ch, err := v.GenerateChallenge("example.com", domain.WithPrefix("myservice"))
		require.NoError(t, err)
		_, dup := seen[ch.Code]
		require.False(t, dup, "duplicate code %q", ch.Code)
		seen[ch.Code] = struct{}{}
	}
}

func TestGenerateChallengeUnicode(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))
	ch, err := v.GenerateChallenge("例子.测试", domain.WithTXTHost("_verify"))
	require.NoError(t, err)
	assert.Equal(t, "例子.测试", ch.Domain)
	assert.Equal(t, "_verify.xn--fsqu00a.xn--0zwm56d", ch.Host)
}

func TestGenerateChallengeErrors(t *testing.T) {
	v := domain.New(nil)

	tests := []struct {
		name     string
		domain   string
		opts     []domain.ChallengeOption
		sentinel error
		reason   domain.Reason
	}{
		{"invalid syntax", "bad_name.com", nil, domain.ErrInvalidSyntax, domain.ReasonInvalidChar},
		{"reserved", "foo.invalid", nil, domain.ErrReservedDomain, domain.ReasonSuffixMatch},
		{"too long", strings.Repeat("a", 64) + ".com", nil, domain.ErrLengthExceeded, domain.ReasonLabelTooLong},
		{"short code", "example.com", []domain.ChallengeOption{domain.WithCodeLength(domain.MinCodeLength - 1)}, domain.ErrInvalidChallenge, domain.ReasonCodeLength},
		{"long code", "example.com", []domain.ChallengeOption{domain.WithCodeLength(256)}, domain.ErrInvalidChallenge, domain.ReasonCodeLength},
		{"prefix overflow", "example.com", []domain.ChallengeOption{domain.WithPrefix(strings.Repeat("p", 240))}, domain.ErrInvalidChallenge, domain.ReasonCodeLength},
		{"prefix with space", "example.com", []domain.ChallengeOption{domain.WithPrefix("my service")}, domain.ErrInvalidChallenge, domain.ReasonPrefix},
		{"prefix with equals", "example.com", []domain.ChallengeOption{domain.WithPrefix("a=b")}, domain.ErrInvalidChallenge, domain.ReasonPrefix},
		{"bad txt host", "example.com", []domain.ChallengeOption{domain.WithTXTHost("bad host")}, domain.ErrInvalidChallenge, domain.ReasonTXTHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := v.GenerateChallenge(tt.domain, tt.opts...)
			require.Error(t, err)
			assert.Zero(t, ch)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestVerifyOwnership(t *testing.T) {
	stub := newStub()
	stub.errs["TXT slow.com"] = fmt.Errorf("%w: TXT slow.com", domain.ErrResolverTimeout)
	stub.errs["TXT broken.com"] = errors.New("servfail")

	v := domain.New(stub)
	ctx := context.Background()

	tests := []struct {
		name     string
		domain   string
		expected string
		opts     []domain.ChallengeOption
		want     domain.OwnershipStatus
		sentinel error // nil means no error
	}{
		{"verified", "example.com", "myservice=ABC123", nil, domain.OwnershipVerified, nil},
		{"verified normalized domain", "EXAMPLE.com.", "myservice=ABC123", nil, domain.OwnershipVerified, nil},
		{"verified at txt host", "example.com", "ABC123", []domain.ChallengeOption{domain.WithTXTHost("_myservice")}, domain.OwnershipVerified, nil},
		{"mismatch", "example.com", "myservice=WRONG", nil, domain.OwnershipMismatch, nil},
		{"case sensitive", "example.com", "myservice=abc123", nil, domain.OwnershipMismatch, nil},
		{"no substring match", "example.com", "ABC123", nil, domain.OwnershipMismatch, nil},
		{"other records only", "other.com", "myservice=ABC123", nil, domain.OwnershipMismatch, nil},
		{"not found", "nothing.com", "myservice=ABC123", nil, domain.OwnershipNotFound, nil},
		{"timeout", "slow.com", "myservice=ABC123", nil, domain.OwnershipResolverError, domain.ErrResolverTimeout},
		{"resolver failure", "broken.com", "myservice=ABC123", nil, domain.OwnershipResolverError, domain.ErrResolver},
		{"invalid domain", "bad_name.com", "myservice=ABC123", nil, domain.OwnershipUnverified, domain.ErrInvalidSyntax},
		{"reserved domain", "foo.invalid", "myservice=ABC123", nil, domain.OwnershipUnverified, domain.ErrReservedDomain},
		{"empty expected", "example.com", "", nil, domain.OwnershipUnverified, domain.ErrInvalidChallenge},
		{"bad txt host", "example.com", "ABC123", []domain.ChallengeOption{domain.WithTXTHost("a..b")}, domain.OwnershipUnverified, domain.ErrInvalidChallenge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := v.VerifyOwnership(ctx, tt.domain, tt.expected, tt.opts...)
			assert.Equal(t, tt.want, status, "status %s", status)
			if tt.sentinel == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestVerifyOwnershipTimeout(t *testing.T) {
	v := domain.New(blockingResolver{}, domain.WithResolverTimeout(20*time.Millisecond))

	status, err := v.VerifyOwnership(context.Background(), "example.com", "myservice=ABC123")
	assert.Equal(t, domain.OwnershipResolverError, status)
	assert.ErrorIs(t, err, domain.ErrResolverTimeout)
}

func TestVerifyOwnershipNoResolver(t *testing.T) {
	v := domain.New(nil)

	status, err := v.VerifyOwnership(context.Background(), "example.com", "myservice=ABC123")
	assert.Equal(t, domain.OwnershipResolverError, status)
	assert.ErrorIs(t, err, domain.ErrNoResolver)
}

func TestGenerateThenVerify(t *testing.T) {
	stub := newStub()
	v := domain.New(stub)

	ch, err := v.GenerateChallenge("example.com", domain.WithPrefix("myservice"), domain.WithTXTHost("_myservice"))
	require.NoError(t, err)

	status, err := v.VerifyOwnership(context.Background(), "example.com", ch.Value, domain.WithTXTHost("_myservice"))
	require.NoError(t, err)
	assert.Equal(t, domain.OwnershipMismatch, status)

	stub.txt[ch.Host] = []string{"unrelated", ch.Value}
	status, err = v.VerifyOwnership(context.Background(), "example.com", ch.Value, domain.WithTXTHost("_myservice"))
	require.NoError(t, err)
	assert.Equal(t, domain.OwnershipVerified, status)
}

func TestOwnershipStatusString(t *testing.T) {
	assert.Equal(t, "verified", domain.OwnershipVerified.String())
	assert.Equal(t, "not-found", domain.OwnershipNotFound.String())
	assert.Equal(t, "mismatch", domain.OwnershipMismatch.String())
	assert.Equal(t, "resolver-error", domain.OwnershipResolverError.String())
	assert.Equal(t, "unverified", domain.OwnershipUnverified.String())
	assert.Equal(t, "unverified", domain.OwnershipStatus(42).String())
}
