// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package domain validates custom domain names and proves domain ownership
// through DNS TXT challenges.
//
// It is meant for backend services that let end users attach their own
// domains (multi-tenant platforms, email senders, hosted sites) and need
// to reject malformed input before spending network calls on it.
//
// # Validation Pipeline
//
// [Validator.ValidateDomain] runs four checks in order and stops at the
// first failure, so cheap local checks always run before the network:
//
//  1. Syntax: labels, separators and the permitted character class
//  2. Length: whole-name and per-label ceilings on the encoded form
//  3. Reserved: special-use names such as "localhost" or "*.invalid"
//  4. DNS: the name has an address, or at least a name server delegation
//
// Each check is also available on its own ([Validator.ValidateSyntax],
// [Validator.ValidateLength], [Validator.ValidateReserved],
// [Validator.ValidateDNS]) and [Validator.Validate] runs any subset.
//
//	v := domain.New(resolver.New())
//
//	out := v.ValidateDomain(ctx, "Example.ORG.")
//	if !out.Valid {
//	    log.Printf("rejected %s: %v", out.Name, out.Err())
//	}
//
// # Error Handling
//
// Failures are reported as [*Error] values wrapping one of the package
// sentinels, so they can be matched with [errors.Is]:
//
//   - [ErrInvalidSyntax], [ErrLengthExceeded], [ErrReservedDomain]:
//     the input is invalid; retrying will not help
//   - [ErrNotResolvable]: the resolver answered and the domain has
//     neither address nor name server records
//   - [ErrResolverTimeout], [ErrResolver]: no answer could be obtained;
//     this says nothing about the domain and callers may retry later
//   - [ErrEncoding], [ErrUnsupportedOperation]: Unicode conversion
//     problems and ASCII-only misuse
//
// # Unicode Names
//
// Validators are ASCII-only by default. With [WithASCIIOnly](false),
// labels may contain Unicode that is valid IDNA2008 input, lengths are
// measured on the Punycode form and [Validator.ToPunycode] and
// [Validator.ToUnicode] become available:
//
//	v := domain.New(nil, domain.WithASCIIOnly(false))
//	ascii, _ := v.ToPunycode("例子.测试") // "xn--fsqu00a.xn--0zwm56d"
//
// # Ownership Challenges
//
// Proving control of a domain takes two independent calls linked only
// by a value the caller stores in between:
//
//	ch, err := v.GenerateChallenge("example.com", domain.WithPrefix("myservice"))
//	// store ch.Value, ask the user to publish it as TXT at ch.Host
//
//	status, err := v.VerifyOwnership(ctx, "example.com", storedValue)
//	switch status {
//	case domain.OwnershipVerified:
//	case domain.OwnershipNotFound, domain.OwnershipMismatch:
//	    // not published yet, or published with the wrong value
//	case domain.OwnershipResolverError:
//	    // try again later; err wraps ErrResolver
//	}
//
// # Resolvers
//
// The package performs no DNS I/O itself. It queries a [Resolver], which
// is implemented by the resolver package on top of [github.com/miekg/dns]
// and is trivially stubbed in tests.
package domain
