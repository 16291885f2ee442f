package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"BankCatalog/internal/locale"
)

const (
	DefaultTTL          = 5 * time.Minute
	DefaultFetchTimeout = 10 * time.Second

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Gateway memoizes the product list of a Source per locale for a fixed
// TTL. A snapshot is only ever replaced whole. Concurrent cold callers for
// the same locale share a single fetch.
type Gateway struct {
	src          Source
	ttl          time.Duration
	fetchTimeout time.Duration
	log          *zap.Logger
	cache        *cache.Cache
	flight       singleflight.Group
	lookups      *prometheus.CounterVec
}

type GatewayOptions struct {
	TTL time.Duration
	// FetchTimeout bounds one fetch from the Source, independent of the
	// callers waiting on it.
	FetchTimeout time.Duration
	Log          *zap.Logger
	Registry     prometheus.Registerer
}

func NewGateway(src Source, opts GatewayOptions) *Gateway {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	g := &Gateway{
		src:          src,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		log:          log,
		cache:        cache.New(ttl, 2*ttl),
	}

	if opts.Registry != nil {
		g.lookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_lookups_total",
				Help: "Catalog snapshot lookups by result",
			},
			[]string{"locale", "result"},
		)
		opts.Registry.MustRegister(g.lookups)
	}
	return g
}

// Products returns the snapshot for locale, fetching it when the cache is
// cold or expired. On fetch failure any previous entry is left in place and
// the returned error satisfies errors.Is(err, ErrCatalogUnavailable).
// Callers must treat the returned slice as read-only.
func (g *Gateway) Products(ctx context.Context, l locale.Locale) ([]Product, error) {
	key := string(l)

	if ps, ok := g.lookup(key); ok {
		g.observe(l, resultHit)
		return ps, nil
	}

	// The shared fetch outlives any single caller; each caller still
	// stops waiting when its own context ends.
	ch := g.flight.DoChan(key, func() (any, error) {
		if ps, ok := g.lookup(key); ok {
			return ps, nil
		}

		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.fetchTimeout)
		defer cancel()

		ps, err := g.src.Products(fctx, l)
		if err != nil {
			return nil, err
		}
		if ps == nil {
			ps = []Product{}
		}
		g.cache.Set(key, ps, g.ttl)
		return ps, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		res.Err = ctx.Err()
	case res = <-ch:
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		g.observe(l, resultError)
		g.log.Warn("catalog fetch failed", zap.String("locale", key), zap.Error(err))
		if !errors.Is(err, ErrCatalogUnavailable) {
			err = fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		return nil, err
	}

	g.observe(l, resultMiss)
	g.log.Debug("catalog fetched", zap.String("locale", key), zap.Bool("shared", shared))
	return v.([]Product), nil
}

// ProductByID scans the snapshot for id. A missing product is reported as
// ok=false with a nil error.
func (g *Gateway) ProductByID(ctx context.Context, l locale.Locale, id string) (Product, bool, error) {
	ps, err := g.Products(ctx, l)
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range ps {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// ClearCache drops every snapshot so the next call fetches.
func (g *Gateway) ClearCache() {
	g.cache.Flush()
	g.log.Info("catalog cache cleared")
}

// Ping reports whether the underlying source is reachable, when it can tell.
func (g *Gateway) Ping(ctx context.Context) error {
	if p, ok := g.src.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (g *Gateway) lookup(key string) ([]Product, bool) {
	v, ok := g.cache.Get(key)
	if !ok {
		return nil, false
	}
	ps, ok := v.([]Product)
	return ps, ok
}

func (g *Gateway) observe(l locale.Locale, result string) {
	if g.lookups == nil {
		return
	}
	g.lookups.WithLabelValues(string(l), result).Inc()
}
