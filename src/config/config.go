// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads validator and resolver settings from YAML.
//
// A configuration file looks like this; every key is optional and
// missing keys keep their defaults:
//
//	validator:
//	  ascii_only: false
//	  max_domain_length: 253
//	  max_label_length: 63
//	  resolver_timeout: 5s
//	  additional_reserved_domains: [corp.example.net, .internal.co]
//	  concurrency: 50
//	resolver:
//	  servers: [1.1.1.1, 8.8.8.8]
//	  net: udp
//	  timeout: 2s
//	  max_retries: 2
//	  retry_delay: 1s
//	  rate_limit: 100
//	  rate_burst: 10
//	challenge:
//	  prefix: myservice
//	  code_length: 32
//	  txt_host: _myservice
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/H0llyW00dzZ/domain-validator/src/resolver"
	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Validator ValidatorConfig `yaml:"validator"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Challenge ChallengeConfig `yaml:"challenge"`
}

// ValidatorConfig maps onto the domain.Validator options.
type ValidatorConfig struct {
	ASCIIOnly       bool          `yaml:"ascii_only"`
	MaxDomainLength int           `yaml:"max_domain_length"`
	MaxLabelLength  int           `yaml:"max_label_length"`
	ResolverTimeout time.Duration `yaml:"resolver_timeout"`
	Concurrency     int           `yaml:"concurrency"`

	// ReservedDomains replaces the default reserved set when set.
	ReservedDomains []string `yaml:"reserved_domains"`

	// AdditionalReservedDomains extends the reserved set.
	AdditionalReservedDomains []string `yaml:"additional_reserved_domains"`
}

// ResolverConfig maps onto the resolver.Client options.
type ResolverConfig struct {
	// System selects the operating system resolver instead of querying
	// Servers directly. The remaining fields are then ignored.
	System bool `yaml:"system"`

	Servers    []string      `yaml:"servers"`
	Net        string        `yaml:"net"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	EDNS0Size  uint16        `yaml:"edns0_size"`
	RateLimit  float64       `yaml:"rate_limit"`
	RateBurst  int           `yaml:"rate_burst"`
}

// ChallengeConfig holds the defaults for ownership challenges.
type ChallengeConfig struct {
	Prefix     string `yaml:"prefix"`
	CodeLength int    `yaml:"code_length"`
	TXTHost    string `yaml:"txt_host"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Validator: ValidatorConfig{
			ASCIIOnly:       true,
			MaxDomainLength: domain.DefaultMaxDomainLength,
			MaxLabelLength:  domain.DefaultMaxLabelLength,
			ResolverTimeout: domain.DefaultResolverTimeout,
			Concurrency:     100,
		},
		Resolver: ResolverConfig{
			Net:        "udp",
			Timeout:    2 * time.Second,
			MaxRetries: 2,
			RetryDelay: time.Second,
			EDNS0Size:  1232,
		},
		Challenge: ChallengeConfig{
			CodeLength: domain.DefaultCodeLength,
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over [Default] and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	v := c.Validator
	if v.MaxDomainLength <= 0 {
		add("validator.max_domain_length must be positive, got %d", v.MaxDomainLength)
	}
	if v.MaxLabelLength <= 0 {
		add("validator.max_label_length must be positive, got %d", v.MaxLabelLength)
	}
	if v.MaxLabelLength > v.MaxDomainLength {
		add("validator.max_label_length %d exceeds max_domain_length %d", v.MaxLabelLength, v.MaxDomainLength)
	}
	if v.ResolverTimeout <= 0 {
		add("validator.resolver_timeout must be positive, got %s", v.ResolverTimeout)
	}
	if v.Concurrency <= 0 {
		add("validator.concurrency must be positive, got %d", v.Concurrency)
	}

	r := c.Resolver
	switch r.Net {
	case "", "udp", "tcp", "tcp-tls":
	default:
		add("resolver.net must be udp, tcp or tcp-tls, got %q", r.Net)
	}
	if r.Timeout <= 0 {
		add("resolver.timeout must be positive, got %s", r.Timeout)
	}
	if r.MaxRetries < 0 {
		add("resolver.max_retries must not be negative, got %d", r.MaxRetries)
	}
	if r.RetryDelay < 0 {
		add("resolver.retry_delay must not be negative, got %s", r.RetryDelay)
	}
	if r.EDNS0Size != 0 && r.EDNS0Size < dns.MinMsgSize {
		add("resolver.edns0_size must be at least %d, got %d", dns.MinMsgSize, r.EDNS0Size)
	}
	if r.RateLimit < 0 {
		add("resolver.rate_limit must not be negative, got %g", r.RateLimit)
	}
	if r.RateBurst < 0 {
		add("resolver.rate_burst must not be negative, got %d", r.RateBurst)
	}

	ch := c.Challenge
	if ch.CodeLength != 0 && (ch.CodeLength < domain.MinCodeLength || ch.CodeLength > domain.MaxTXTValueLength) {
		add("challenge.code_length must be between %d and %d, got %d",
			domain.MinCodeLength, domain.MaxTXTValueLength, ch.CodeLength)
	}

	return result.ErrorOrNil()
}

// DomainOptions returns the domain.Validator options of c.
func (c Config) DomainOptions() []domain.Option {
	v := c.Validator
	opts := []domain.Option{
		domain.WithASCIIOnly(v.ASCIIOnly),
		domain.WithMaxDomainLength(v.MaxDomainLength),
		domain.WithMaxLabelLength(v.MaxLabelLength),
		domain.WithResolverTimeout(v.ResolverTimeout),
		domain.WithConcurrency(v.Concurrency),
	}
	if v.ReservedDomains != nil {
		opts = append(opts, domain.WithReservedDomains(v.ReservedDomains...))
	}
	if len(v.AdditionalReservedDomains) > 0 {
		opts = append(opts, domain.WithAdditionalReservedDomains(v.AdditionalReservedDomains...))
	}
	return opts
}

// ResolverOptions returns the resolver.Client options of c.
func (c Config) ResolverOptions() []resolver.Option {
	r := c.Resolver
	opts := []resolver.Option{
		resolver.WithTimeout(r.Timeout),
		resolver.WithMaxRetries(r.MaxRetries),
		resolver.WithRetryDelay(r.RetryDelay),
		resolver.WithEDNS0Size(r.EDNS0Size),
		resolver.WithRateLimit(r.RateLimit, r.RateBurst),
	}
	if len(r.Servers) > 0 {
		opts = append(opts, resolver.WithServers(r.Servers...))
	}
	if r.Net != "" && r.Net != "udp" {
		opts = append(opts, resolver.WithDNSClient(&dns.Client{Net: r.Net, Timeout: r.Timeout}))
	}
	return opts
}

// ChallengeOptions returns the challenge defaults of c.
func (c Config) ChallengeOptions() []domain.ChallengeOption {
	ch := c.Challenge
	var opts []domain.ChallengeOption
	if ch.Prefix != "" {
		opts = append(opts, domain.WithPrefix(ch.Prefix))
	}
	if ch.CodeLength != 0 {
		opts = append(opts, domain.WithCodeLength(ch.CodeLength))
	}
	if ch.TXTHost != "" {
		opts = append(opts, domain.WithTXTHost(ch.TXTHost))
	}
	return opts
}
