// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package resolver

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSystem returns a System whose pure-Go resolver sends every
// query to addr.
func newTestSystem(t *testing.T, addr string) *System {
	t.Helper()
	return NewSystem(&net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", addr)
		},
	})
}

func TestNewSystemDefault(t *testing.T) {
	assert.Same(t, net.DefaultResolver, NewSystem(nil).r)
}

func TestSystemLookups(t *testing.T) {
	addr, shutdown := startTestDNSServer(t, zoneHandler(testZone(t)))
	defer shutdown()

	s := newTestSystem(t, addr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	addrs, err := s.LookupAddr(ctx, "example.com.")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"192.0.2.1", "2001:db8::1"}, addrs)

	ns, err := s.LookupNS(ctx, "delegated.org.")
	require.NoError(t, err)
	assert.Equal(t, []string{"ns1.delegated.org."}, ns)

	txt, err := s.LookupTXT(ctx, "example.com.")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"myservice=ABC123", "v=spf1 -all"}, txt)

	_, err = s.LookupAddr(ctx, "missing.example.")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var dnsErr *net.DNSError
	require.ErrorAs(t, err, &dnsErr)
	assert.True(t, dnsErr.IsNotFound)

	_, err = s.LookupNS(ctx, "missing.example.")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.LookupTXT(ctx, "delegated.org.")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSystemQueriesRootedNames(t *testing.T) {
	var (
		mu    sync.Mutex
		asked []string
	)
	zone := zoneHandler(testZone(t))
	addr, shutdown := startTestDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		mu.Lock()
		asked = append(asked, r.Question[0].Name)
		mu.Unlock()
		zone(w, r)
	})
	defer shutdown()

	s := newTestSystem(t, addr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Relative names must not be expanded with resolv.conf search domains.
	_, err := s.LookupAddr(ctx, "missing.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.LookupNS(ctx, "missing.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.LookupTXT(ctx, "missing.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, asked)
	for _, name := range asked {
		assert.Equal(t, "missing.com.", name)
	}
}

func TestSystemErrorClassification(t *testing.T) {
	addr, shutdown := startTestDNSServer(t, rcodeHandler(dns.RcodeRefused))
	defer shutdown()

	s := newTestSystem(t, addr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.LookupAddr(ctx, "example.com")
	assert.ErrorIs(t, err, domain.ErrResolver)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	timeout := &net.DNSError{Err: "i/o timeout", Name: "example.com", IsTimeout: true}
	assert.ErrorIs(t, classifySystemError(timeout), domain.ErrResolverTimeout)
	assert.ErrorIs(t, classifySystemError(context.DeadlineExceeded), domain.ErrResolverTimeout)
}

func TestSystemWithValidator(t *testing.T) {
	addr, shutdown := startTestDNSServer(t, zoneHandler(testZone(t)))
	defer shutdown()

	v := domain.New(newTestSystem(t, addr), domain.WithResolverTimeout(5*time.Second))
	ctx := context.Background()

	assert.NoError(t, v.ValidateDNS(ctx, "example.com"))
	assert.NoError(t, v.ValidateDNS(ctx, "delegated.org"))
	assert.ErrorIs(t, v.ValidateDNS(ctx, "missing.com"), domain.ErrNotResolvable)

	status, err := v.VerifyOwnership(ctx, "example.com", "myservice=ABC123")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnershipVerified, status)

	status, err = v.VerifyOwnership(ctx, "delegated.org", "myservice=ABC123")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnershipNotFound, status)
}
