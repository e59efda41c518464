// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"net/netip"
	"sort"
	"strings"
)

// DefaultReservedDomains lists the special-use names that never pass
// validation. An entry matches itself and every subdomain; an entry with
// a leading dot matches subdomains only.
//
// See RFC 2606, RFC 6761, RFC 6762, RFC 7686, RFC 8375 and RFC 9476.
// The second-level example.com/net/org names are real, resolvable zones
// and are not listed.
var DefaultReservedDomains = []string{
	"localhost",
	"localdomain",
	"local", // multicast DNS
	"invalid",
	"test",
	"example",
	"onion",
	"alt",
	"internal",
	"arpa", // home.arpa, in-addr.arpa, ip6.arpa
}

var defaultReservedSet = NewReservedSet(DefaultReservedDomains...)

// ReservedSet is an immutable collection of reserved names and suffixes.
// It is safe for concurrent use.
type ReservedSet struct {
	// exact entries match the name itself and any subdomain.
	exact map[string]struct{}
	// suffixOnly entries (written with a leading dot) match subdomains only.
	suffixOnly map[string]struct{}
}

// NewReservedSet builds a [ReservedSet] from entries. Entries are
// normalized; empty entries are ignored.
func NewReservedSet(entries ...string) *ReservedSet {
	s := &ReservedSet{
		exact:      make(map[string]struct{}, len(entries)),
		suffixOnly: make(map[string]struct{}),
	}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		suffix := strings.HasPrefix(e, ".")
		e = Normalize(strings.TrimLeft(e, "."))
		if e == "" {
			continue
		}
		if suffix {
			s.suffixOnly[e] = struct{}{}
		} else {
			s.exact[e] = struct{}{}
		}
	}
	return s
}

// DefaultReservedSet returns the set built from [DefaultReservedDomains].
func DefaultReservedSet() *ReservedSet { return defaultReservedSet }

// With returns a new set holding the entries of s plus entries.
func (s *ReservedSet) With(entries ...string) *ReservedSet {
	return NewReservedSet(append(s.Entries(), entries...)...)
}

// Entries returns the entries of the set in sorted order, suffix-only
// entries with their leading dot.
func (s *ReservedSet) Entries() []string {
	out := make([]string, 0, len(s.exact)+len(s.suffixOnly))
	for e := range s.exact {
		out = append(out, e)
	}
	for e := range s.suffixOnly {
		out = append(out, "."+e)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (s *ReservedSet) Len() int {
	return len(s.exact) + len(s.suffixOnly)
}

// Match reports whether name is reserved, and if so which entry matched
// and how. The name is normalized before matching.
func (s *ReservedSet) Match(name string) (entry string, reason Reason, ok bool) {
	name = Normalize(name)
	if name == "" {
		return "", "", false
	}

	if isIPLiteral(name) {
		return name, ReasonIPLiteral, true
	}

	if _, ok := s.exact[name]; ok {
		return name, ReasonExactMatch, true
	}

	// Walk the parent suffixes: a.b.c -> b.c -> c.
	for rest := name; ; {
		i := strings.IndexByte(rest, '.')
		if i < 0 {
			break
		}
		rest = rest[i+1:]
		if _, ok := s.exact[rest]; ok {
			return rest, ReasonSuffixMatch, true
		}
		if _, ok := s.suffixOnly[rest]; ok {
			return "." + rest, ReasonSuffixMatch, true
		}
	}

	return "", "", false
}

// Contains reports whether name is reserved.
func (s *ReservedSet) Contains(name string) bool {
	_, _, ok := s.Match(name)
	return ok
}

// isIPLiteral reports whether name parses as an IPv4 or IPv6 address,
// optionally in URL bracket form.
func isIPLiteral(name string) bool {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	_, err := netip.ParseAddr(name)
	return err == nil
}
