// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Check identifies one validation stage. Checks combine as a bit set.
type Check uint8

// Validation stages, in the order [Validator.Validate] runs them.
const (
	CheckSyntax Check = 1 << iota
	CheckLength
	CheckReserved
	CheckDNS

	// CheckEncoding marks failures of [Validator.ToPunycode] and
	// [Validator.ToUnicode]. It is not a validation stage.
	CheckEncoding

	// CheckOwnership marks failures of the ownership challenge operations.
	// It is not a validation stage.
	CheckOwnership
)

// Check sets.
const (
	// CheckLocal selects the checks that need no network access.
	CheckLocal = CheckSyntax | CheckLength | CheckReserved

	// CheckAll selects every validation stage.
	CheckAll = CheckLocal | CheckDNS
)

var checkNames = []struct {
	check Check
	name  string
}{
	{CheckSyntax, "syntax"},
	{CheckLength, "length"},
	{CheckReserved, "reserved"},
	{CheckDNS, "dns"},
	{CheckEncoding, "encoding"},
	{CheckOwnership, "ownership"},
}

// String returns the comma-separated names of the checks in c.
func (c Check) String() string {
	var parts []string
	for _, cn := range checkNames {
		if c&cn.check != 0 {
			parts = append(parts, cn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseChecks parses a comma-separated list of check names such as
// "syntax,length,dns". The names "all" and "local" select [CheckAll] and
// [CheckLocal].
func ParseChecks(s string) (Check, error) {
	var c Check
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "all":
			c |= CheckAll
			continue
		case "local":
			c |= CheckLocal
			continue
		}

		found := false
		for _, cn := range checkNames {
			if cn.name == part && cn.check&CheckAll != 0 {
				c |= cn.check
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("domain: unknown check %q", part)
		}
	}
	if c == 0 {
		return 0, fmt.Errorf("domain: no checks selected in %q", s)
	}
	return c, nil
}

// Outcome is the itemized result of [Validator.Validate].
//
// Each error field is nil when the check passed or did not run; use
// Ran to tell the two apart.
type Outcome struct {
	// Name is the domain that was validated.
	Name Name

	// Requested is the set of checks the caller asked for.
	Requested Check

	// Ran is the set of checks actually executed. It is smaller than
	// Requested when a check failed and the rest were skipped.
	Ran Check

	// Syntax is the result of the syntax check.
	Syntax error

	// Length is the result of the length check.
	Length error

	// Reserved is the result of the reserved-domain check.
	Reserved error

	// DNS is the result of the DNS resolvability check.
	DNS error

	// Interrupted is set when validation could not run to completion,
	// e.g. the batch context was cancelled or a panic was recovered.
	Interrupted error

	// Valid is true only if every requested check ran and passed.
	Valid bool
}

// Err returns the failures of o combined into one error, or nil if o
// has none.
func (o Outcome) Err() error {
	var result *multierror.Error
	for _, err := range []error{o.Syntax, o.Length, o.Reserved, o.DNS, o.Interrupted} {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Failed returns the check that failed, or zero if none did.
func (o Outcome) Failed() Check {
	switch {
	case o.Syntax != nil:
		return CheckSyntax
	case o.Length != nil:
		return CheckLength
	case o.Reserved != nil:
		return CheckReserved
	case o.DNS != nil:
		return CheckDNS
	}
	return 0
}
