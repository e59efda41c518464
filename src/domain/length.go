// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"fmt"
	"strings"
)

// checkLength enforces the whole-name and per-label ceilings. DNS limits
// apply to the wire form, so Unicode names are measured after Punycode
// encoding.
func (v *Validator) checkLength(n Name) error {
	s := n.String()
	if s == "" {
		return newError(s, CheckLength, ErrInvalidSyntax, ReasonEmpty, "")
	}

	encoded := s
	if !v.cfg.ASCIIOnly && !n.IsASCII() {
		var err error
		encoded, err = v.encodeLabels(s)
		if err != nil {
			return newError(s, CheckLength, ErrEncoding, ReasonIDNA, "").withCause(err)
		}
	}

	if len(encoded) > v.cfg.MaxDomainLength {
		return newError(s, CheckLength, ErrLengthExceeded, ReasonNameTooLong,
			fmt.Sprintf("%d > %d", len(encoded), v.cfg.MaxDomainLength))
	}

	for _, label := range strings.Split(encoded, ".") {
		if len(label) > v.cfg.MaxLabelLength {
			return newError(s, CheckLength, ErrLengthExceeded, ReasonLabelTooLong,
				fmt.Sprintf("%q is %d > %d", label, len(label), v.cfg.MaxLabelLength))
		}
	}

	return nil
}
