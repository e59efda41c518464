// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics instruments domain validation with Prometheus.
//
// [Resolver] decorates any domain.Resolver with query counters and a
// latency histogram; [Recorder] counts validation and ownership results.
// Both register their collectors on the [prometheus.Registerer] they are
// given, so several instances can live on separate registries.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "domaincheck"

// Lookup outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

// Resolver records metrics about the lookups of the wrapped resolver.
type Resolver struct {
	next     domain.Resolver
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ domain.Resolver = (*Resolver)(nil)

// NewResolver wraps next and registers its collectors on reg.
// A nil reg leaves the collectors unregistered.
func NewResolver(next domain.Resolver, reg prometheus.Registerer) (*Resolver, error) {
	r := &Resolver{
		next:     next,
		lookups:  lookupsMetric(),
		duration: durationHistogram(),
	}
	if err := register(reg, r.lookups, r.duration); err != nil {
		return nil, err
	}
	return r, nil
}

// LookupAddr implements domain.Resolver.
func (r *Resolver) LookupAddr(ctx context.Context, name string) ([]string, error) {
	return r.observe(ctx, "addr", name, r.next.LookupAddr)
}

// LookupNS implements domain.Resolver.
func (r *Resolver) LookupNS(ctx context.Context, name string) ([]string, error) {
	return r.observe(ctx, "ns", name, r.next.LookupNS)
}

// LookupTXT implements domain.Resolver.
func (r *Resolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	return r.observe(ctx, "txt", name, r.next.LookupTXT)
}

func (r *Resolver) observe(ctx context.Context, qtype, name string,
	fn func(context.Context, string) ([]string, error),
) ([]string, error) {
	start := time.Now()
	records, err := fn(ctx, name)

	r.duration.WithLabelValues(qtype).Observe(time.Since(start).Seconds())
	r.lookups.WithLabelValues(qtype, lookupOutcome(records, err)).Inc()

	return records, err
}

// lookupOutcome classifies a lookup result the way the domain package does.
func lookupOutcome(records []string, err error) string {
	switch {
	case err == nil && len(records) > 0:
		return OutcomeFound
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrResolverTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

// Recorder counts validation outcomes and ownership verifications.
type Recorder struct {
	validations *prometheus.CounterVec
	ownership   *prometheus.CounterVec
}

// NewRecorder registers the recorder's collectors on reg.
// A nil reg leaves the collectors unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		validations: validationsMetric(),
		ownership:   ownershipMetric(),
	}
	if err := register(reg, r.validations, r.ownership); err != nil {
		return nil, err
	}
	return r, nil
}

// ObserveOutcome counts out as valid, or as failed at the check that
// rejected it. Interrupted outcomes are counted as "interrupted".
func (r *Recorder) ObserveOutcome(out domain.Outcome) {
	result, check := "valid", "none"
	switch {
	case out.Valid:
	case out.Interrupted != nil:
		result = "interrupted"
	default:
		result = "invalid"
		check = out.Failed().String()
	}
	r.validations.WithLabelValues(result, check).Inc()
}

// ObserveOwnership counts an ownership verification result.
func (r *Recorder) ObserveOwnership(status domain.OwnershipStatus) {
	r.ownership.WithLabelValues(status.String()).Inc()
}

func register(reg prometheus.Registerer, collectors ...prometheus.Collector) error {
	if reg == nil {
		return nil
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func lookupsMetric() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dns_lookups_total",
			Help:      "Number of DNS lookups by record type and outcome",
		}, []string{"type", "outcome"},
	)
}

func durationHistogram() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dns_lookup_duration_seconds",
			Help:      "DNS lookup duration distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"type"},
	)
}

func validationsMetric() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Number of validated domains by result and failed check",
		}, []string{"result", "check"},
	)
}

func ownershipMetric() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ownership_verifications_total",
			Help:      "Number of ownership verifications by status",
		}, []string{"status"},
	)
}
