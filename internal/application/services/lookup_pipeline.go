package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/profile-lookup/internal/core/domain/identifier"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

// NormalizeFunc maps a successful provider body onto the canonical value for key.
type NormalizeFunc[V any] func(payload []byte, key string) (V, error)

// FallbackFunc may substitute a placeholder for a failed lookup. It is never
// consulted for validation errors and its results are never cached.
type FallbackFunc[V any] func(err error) (V, bool)

// PipelineConfig wires one lookup endpoint.
type PipelineConfig[V any] struct {
	Endpoint  string
	Kind      identifier.Kind
	Cache     ports.LookupCache[V]
	Upstream  ports.UpstreamClient
	Normalize NormalizeFunc[V]
	Fallback  FallbackFunc[V]
	Metrics   ports.LookupMetrics
	Logger    *logrus.Logger
}

// LookupOutcome tells callers where a successful value came from.
type LookupOutcome struct {
	Cached   bool
	Fallback bool
}

// LookupPipeline runs canonicalize, cache check, fetch, normalize and store for
// one endpoint. Concurrent misses on the same key share a single provider call.
type LookupPipeline[V any] struct {
	cfg PipelineConfig[V]
	sf  singleflight.Group
}

func NewLookupPipeline[V any](cfg PipelineConfig[V]) *LookupPipeline[V] {
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}
	return &LookupPipeline[V]{cfg: cfg}
}

// Lookup resolves raw (plus aux, the country code for phone lookups).
func (p *LookupPipeline[V]) Lookup(ctx context.Context, raw, aux string) (V, LookupOutcome, error) {
	v, out, err := p.lookup(ctx, raw, aux)
	if err == nil {
		return v, out, nil
	}
	code := ports.LookupErrorCodeOf(err)
	if code != ports.LookupCodeValidation && p.cfg.Fallback != nil {
		if fv, ok := p.cfg.Fallback(err); ok {
			p.cfg.Metrics.Fallback(p.cfg.Endpoint)
			p.log().WithFields(logrus.Fields{"endpoint": p.cfg.Endpoint, "reason": code.String()}).WithError(err).Warn("lookup failed; serving fallback")
			return fv, LookupOutcome{Fallback: true}, nil
		}
	}
	var zero V
	return zero, LookupOutcome{}, err
}

func (p *LookupPipeline[V]) lookup(ctx context.Context, raw, aux string) (v V, out LookupOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero V
			v, out = zero, LookupOutcome{}
			err = ports.NewLookupError(ports.LookupCodeInternal, "internal error", fmt.Errorf("panic: %v", r))
			p.log().WithField("endpoint", p.cfg.Endpoint).WithError(err).Error("lookup panicked")
		}
	}()

	key, err := identifier.Canonicalize(raw, p.cfg.Kind, aux)
	if err != nil {
		var zero V
		return zero, LookupOutcome{}, ports.NewLookupError(ports.LookupCodeValidation, validationMessage(p.cfg.Kind, err), err)
	}

	if cached, ok := p.cfg.Cache.Get(key); ok {
		p.cfg.Metrics.CacheHit(p.cfg.Endpoint)
		p.log().WithFields(logrus.Fields{"endpoint": p.cfg.Endpoint, "key": key}).Debug("cache hit")
		return cached, LookupOutcome{Cached: true}, nil
	}
	p.cfg.Metrics.CacheMiss(p.cfg.Endpoint)

	// The shared fetch must not be cancelled by whichever caller started it;
	// the upstream client still bounds it with its own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	res, err, shared := p.sf.Do(key, func() (any, error) {
		return p.fetchAndStore(fetchCtx, key)
	})
	if err != nil {
		var zero V
		return zero, LookupOutcome{}, classify(err)
	}
	if shared {
		p.log().WithFields(logrus.Fields{"endpoint": p.cfg.Endpoint, "key": key}).Debug("joined in-flight lookup")
	}
	val, ok := res.(V)
	if !ok {
		var zero V
		return zero, LookupOutcome{}, ports.NewLookupError(ports.LookupCodeInternal, "internal error", fmt.Errorf("unexpected type %T from singleflight result", res))
	}
	return val, LookupOutcome{}, nil
}

func (p *LookupPipeline[V]) fetchAndStore(ctx context.Context, key string) (V, error) {
	var zero V
	if cached, ok := p.cfg.Cache.Get(key); ok {
		return cached, nil
	}

	fields := logrus.Fields{"endpoint": p.cfg.Endpoint, "key": key, "provider": p.cfg.Upstream.Name()}
	resp, err := p.cfg.Upstream.Fetch(ctx, key)
	if err != nil {
		err = classify(err)
		p.cfg.Metrics.UpstreamOutcome(p.cfg.Endpoint, ports.LookupErrorCodeOf(err).String())
		p.log().WithFields(fields).WithError(err).Error("upstream call failed")
		return zero, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := ports.NewUpstreamStatusError(resp.StatusCode)
		p.cfg.Metrics.UpstreamOutcome(p.cfg.Endpoint, err.Code().String())
		p.log().WithFields(fields).WithField("status", resp.StatusCode).Warn("upstream returned non-success status")
		return zero, err
	}

	v, err := p.cfg.Normalize(resp.Body, key)
	if err != nil {
		err = classify(err)
		p.cfg.Metrics.UpstreamOutcome(p.cfg.Endpoint, ports.LookupErrorCodeOf(err).String())
		p.log().WithFields(fields).WithError(err).Warn("upstream payload rejected")
		return zero, err
	}

	p.cfg.Cache.Set(key, v)
	p.cfg.Metrics.UpstreamOutcome(p.cfg.Endpoint, "ok")
	p.cfg.Metrics.CacheSize(p.cfg.Endpoint, p.cfg.Cache.Len())
	p.log().WithFields(fields).Info("lookup stored")
	return v, nil
}

func (p *LookupPipeline[V]) log() *logrus.Logger {
	if p.cfg.Logger == nil {
		return discardLogger
	}
	return p.cfg.Logger
}

// classify keeps LookupErrors as they are and turns anything else into an internal error.
func classify(err error) error {
	if _, ok := ports.AsLookupError(err); ok {
		return err
	}
	return ports.NewLookupError(ports.LookupCodeInternal, "internal error", err)
}

func validationMessage(kind identifier.Kind, err error) string {
	missing := errors.Is(err, identifier.ErrEmpty)
	switch {
	case kind == identifier.KindPhoneNumber && missing:
		return "Phone number is required"
	case kind == identifier.KindPhoneNumber:
		return "Invalid phone number"
	case missing:
		return "Username is required"
	default:
		return "Invalid username"
	}
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

type noopMetrics struct{}

func (noopMetrics) CacheHit(string)                {}
func (noopMetrics) CacheMiss(string)               {}
func (noopMetrics) UpstreamOutcome(string, string) {}
func (noopMetrics) Fallback(string)                {}
func (noopMetrics) CacheSize(string, int)          {}
