// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
)

// stubResolver answers from in-memory tables. Names missing from a table
// are reported as not found; names present in errs fail with that error.
type stubResolver struct {
	addrs map[string][]string
	ns    map[string][]string
	txt   map[string][]string
	errs  map[string]error // keyed by "type name", e.g. "A example.com"

	calls atomic.Int32
}

func (s *stubResolver) answer(ctx context.Context, qtype, name string, table map[string][]string) ([]string, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.errs[qtype+" "+name]; ok {
		return nil, err
	}
	if records, ok := table[name]; ok {
		return records, nil
	}
	return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, qtype, name)
}

func (s *stubResolver) LookupAddr(ctx context.Context, name string) ([]string, error) {
	return s.answer(ctx, "A", name, s.addrs)
}

func (s *stubResolver) LookupNS(ctx context.Context, name string) ([]string, error) {
	return s.answer(ctx, "NS", name, s.ns)
}

func (s *stubResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	return s.answer(ctx, "TXT", name, s.txt)
}

// blockingResolver waits until its context is done.
type blockingResolver struct{}

func (blockingResolver) wait(ctx context.Context) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b blockingResolver) LookupAddr(ctx context.Context, _ string) ([]string, error) {
	return b.wait(ctx)
}

func (b blockingResolver) LookupNS(ctx context.Context, _ string) ([]string, error) {
	return b.wait(ctx)
}

func (b blockingResolver) LookupTXT(ctx context.Context, _ string) ([]string, error) {
	return b.wait(ctx)
}

// panicResolver panics on every lookup.
type panicResolver struct{}

func (panicResolver) LookupAddr(context.Context, string) ([]string, error) { panic("resolver panic") }
func (panicResolver) LookupNS(context.Context, string) ([]string, error)   { panic("resolver panic") }
func (panicResolver) LookupTXT(context.Context, string) ([]string, error)  { panic("resolver panic") }

func newStub() *stubResolver {
	return &stubResolver{
		addrs: map[string][]string{
			"example.com":             {"93.184.216.34"},
			"python.org":              {"151.101.0.223"},
			"localhost":               {"127.0.0.1"},
			"foo.invalid":             {"192.0.2.1"},
			"xn--fsqu00a.xn--0zwm56d": {"192.0.2.7"},
		},
		ns: map[string][]string{
			"delegated.org": {"ns1.delegated.org.", "ns2.delegated.org."},
		},
		txt: map[string][]string{
			"example.com":            {"v=spf1 -all", "myservice=ABC123"},
			"other.com":              {"v=spf1 -all"},
			"_myservice.example.com": {"ABC123"},
		},
		errs: map[string]error{},
	}
}
