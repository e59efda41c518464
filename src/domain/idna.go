// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

const acePrefix = "xn--"

// newIDNAProfile returns the IDNA2008 registration profile without the
// DNS length verification; lengths are the job of the length check and
// are configurable.
func newIDNAProfile() *idna.Profile {
	return idna.New(
		idna.ValidateForRegistration(),
		idna.VerifyDNSLength(false),
	)
}

// newIDNAMapper returns the UTS #46 mapping used to case-fold
// non-ASCII labels in Unicode mode.
func newIDNAMapper() *idna.Profile {
	return idna.New(
		idna.MapForLookup(),
		idna.Transitional(false),
		idna.VerifyDNSLength(false),
	)
}

// parse normalizes s and, in Unicode mode, applies the IDNA mapping to
// every non-ASCII label. A label is left as is when mapping fails or
// would turn it into plain ASCII (U+212A KELVIN SIGN, fullwidth
// letters); the syntax check then rejects it.
func (v *Validator) parse(s string) Name {
	n := ParseName(s)
	if v.cfg.ASCIIOnly || n.IsASCII() {
		return n
	}

	labels := n.Labels()
	for i, label := range labels {
		if isASCII(label) {
			continue
		}
		mapped, err := v.mapper.ToUnicode(label)
		if err != nil || isASCII(mapped) {
			continue
		}
		labels[i] = mapped
	}
	n.normalized = strings.Join(labels, ".")
	return n
}

// encodeLabels converts every non-ASCII label of s to its ASCII-compatible
// form and leaves ASCII labels untouched.
func (v *Validator) encodeLabels(s string) (string, error) {
	labels := strings.Split(s, ".")
	for i, label := range labels {
		if isASCII(label) {
			continue
		}
		a, err := v.profile.ToASCII(label)
		if err != nil {
			return "", err
		}
		labels[i] = a
	}
	return strings.Join(labels, "."), nil
}

// ToPunycode converts a Unicode domain name to its ASCII-compatible
// encoding, label by label. ASCII labels pass through unchanged.
//
// It fails with [ErrUnsupportedOperation] in ASCII-only mode, with
// [ErrInvalidSyntax] when name is malformed, and with [ErrEncoding] when
// a label holds disallowed code points, does not round-trip, or encodes
// to more than the maximum label length.
//
//	v.ToPunycode("例子.测试") // "xn--fsqu00a.xn--0zwm56d"
func (v *Validator) ToPunycode(name string) (string, error) {
	if v.cfg.ASCIIOnly {
		return "", fmt.Errorf("%w: ToPunycode", ErrUnsupportedOperation)
	}

	n := v.parse(name)
	if err := v.checkSyntax(n); err != nil {
		return "", err
	}

	s := n.String()
	labels := n.Labels()
	for i, label := range labels {
		if isASCII(label) {
			continue
		}

		a, err := v.profile.ToASCII(label)
		if err != nil {
			return "", newError(s, CheckEncoding, ErrEncoding, ReasonIDNA, label).withCause(err)
		}

		back, err := v.profile.ToUnicode(a)
		if err != nil || back != label {
			return "", newError(s, CheckEncoding, ErrEncoding, ReasonRoundTrip, label).withCause(err)
		}

		if len(a) > v.cfg.MaxLabelLength {
			return "", newError(s, CheckEncoding, ErrEncoding, ReasonLabelTooLong,
				fmt.Sprintf("%q is %d > %d", a, len(a), v.cfg.MaxLabelLength))
		}

		labels[i] = a
	}

	return strings.Join(labels, "."), nil
}

// ToUnicode converts an ASCII domain name to its Unicode display form.
// Labels carrying the "xn--" prefix are decoded; other labels pass
// through unchanged.
//
// It fails with [ErrUnsupportedOperation] in ASCII-only mode, with
// [ErrEncoding] when name is not ASCII or holds malformed Punycode, and
// with [ErrInvalidSyntax] when name is malformed.
//
//	v.ToUnicode("xn--fsqu00a.xn--0zwm56d") // "例子.测试"
func (v *Validator) ToUnicode(name string) (string, error) {
	if v.cfg.ASCIIOnly {
		return "", fmt.Errorf("%w: ToUnicode", ErrUnsupportedOperation)
	}

	n := ParseName(name)
	s := n.String()
	if !n.IsASCII() {
		return "", newError(s, CheckEncoding, ErrEncoding, ReasonNotASCII, "")
	}

	if err := v.checkSyntax(n); err != nil {
		return "", err
	}

	labels := n.Labels()
	for i, label := range labels {
		if !strings.HasPrefix(label, acePrefix) {
			continue
		}
		u, err := v.profile.ToUnicode(label)
		if err != nil {
			return "", newError(s, CheckEncoding, ErrEncoding, ReasonPunycode, label).withCause(err)
		}
		labels[i] = u
	}

	return strings.Join(labels, "."), nil
}
