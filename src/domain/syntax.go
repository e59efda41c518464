// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"fmt"
	"strings"
)

// checkSyntax validates the shape of n.
//
// A valid name has at least two non-empty labels, no label starts or
// ends with a hyphen, ASCII labels use only letters, digits and hyphens,
// and the top-level label is not all digits. In Unicode mode a label
// containing non-ASCII code points must be valid IDNA2008 input.
func (v *Validator) checkSyntax(n Name) error {
	s := n.String()
	fail := func(reason Reason, detail string) *Error {
		return newError(s, CheckSyntax, ErrInvalidSyntax, reason, detail)
	}

	if s == "" {
		return fail(ReasonEmpty, "")
	}

	// Normalization strips every trailing dot; only one is allowed.
	if strings.HasSuffix(n.Raw(), "..") {
		return fail(ReasonTrailingDots, "")
	}

	labels := n.Labels()
	for _, label := range labels {
		if label == "" {
			return fail(ReasonEmptyLabel, "")
		}
	}

	if len(labels) < 2 {
		return fail(ReasonSingleLabel, "")
	}

	for _, label := range labels {
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fail(ReasonHyphen, label)
		}

		if isASCII(label) {
			if i := strings.IndexFunc(label, func(r rune) bool { return !isLDH(r) }); i >= 0 {
				return fail(ReasonInvalidChar, fmt.Sprintf("%q in label %q", label[i], label))
			}
			continue
		}

		if v.cfg.ASCIIOnly {
			return fail(ReasonInvalidChar, fmt.Sprintf("non-ASCII label %q", label))
		}

		if _, err := v.profile.ToASCII(label); err != nil {
			return fail(ReasonIDNA, label).withCause(err)
		}
	}

	if tld := labels[len(labels)-1]; isNumeric(tld) {
		return fail(ReasonNumericTLD, tld)
	}

	return nil
}

// isLDH reports whether r is an ASCII letter, digit or hyphen.
func isLDH(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
	case r >= 'A' && r <= 'Z':
	case r >= '0' && r <= '9':
	case r == '-':
	default:
		return false
	}
	return true
}

func isNumeric(label string) bool {
	for i := 0; i < len(label); i++ {
		if label[i] < '0' || label[i] > '9' {
			return false
		}
	}
	return label != ""
}
