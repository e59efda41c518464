// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is an immutable domain name: the caller's input together with
// its normalized form.
type Name struct {
	raw        string
	normalized string
}

// ParseName wraps s in a [Name]. It never fails; use the [Validator]
// checks to decide whether the name is acceptable.
func ParseName(s string) Name {
	return Name{raw: s, normalized: Normalize(s)}
}

// Raw returns the input exactly as supplied.
func (n Name) Raw() string { return n.raw }

// String returns the normalized form.
func (n Name) String() string { return n.normalized }

// Labels returns the dot-separated labels of the normalized form.
func (n Name) Labels() []string {
	if n.normalized == "" {
		return nil
	}
	return strings.Split(n.normalized, ".")
}

// IsASCII reports whether the normalized form contains only ASCII.
func (n Name) IsASCII() bool {
	return isASCII(n.normalized)
}

// Normalize returns the canonical form of a domain name: Unicode NFC,
// ASCII letters lowercased, with trailing dots removed. Normalize is
// idempotent.
//
// Only A-Z are folded. Non-ASCII case mapping is left to the IDNA
// mapping of a Unicode-mode [Validator], so that no non-ASCII input is
// ever folded into an ASCII name.
//
// Surrounding whitespace is not trimmed; the syntax check rejects it.
func Normalize(s string) string {
	s = norm.NFC.String(strings.Map(lowerASCII, s))
	return strings.TrimRight(s, ".")
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// joinHost prefixes name with an optional host label such as "_acme".
func joinHost(host, name string) string {
	host = strings.Trim(strings.TrimSpace(host), ".")
	if host == "" {
		return name
	}
	return host + "." + name
}
