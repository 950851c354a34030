package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chrisdamba/outletplanner/internal/cache"
	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"go.uber.org/zap"
)

const DefaultTTL = 5 * time.Minute

// Provider caches operational constants looked up through another
// ConfigurationProvider. Default values always go to the wrapped
// provider, as do missing constants.
type Provider struct {
	next    planning.ConfigurationProvider
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewProvider(next planning.ConfigurationProvider, c cache.Cache, ttl time.Duration, collector *metrics.Collector, logger *zap.Logger) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector(logger)
	}
	return &Provider{next: next, cache: c, ttl: ttl, metrics: collector, logger: logger}
}

func constantKey(category, name string) string {
	return "constant:" + category + ":" + name
}

func (p *Provider) GetDefaults(ctx context.Context, category string) (map[string]any, error) {
	return p.next.GetDefaults(ctx, category)
}

// GetConstant serves a constant from the cache when present. Cache
// failures are logged and fall through to the wrapped provider.
func (p *Provider) GetConstant(ctx context.Context, category, name string) (any, error) {
	key := constantKey(category, name)

	data, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("constant cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var value any
		if err := json.Unmarshal(data, &value); err == nil {
			p.metrics.RecordConstantLookup(true)
			return value, nil
		}
		p.logger.Warn("discarding undecodable cached constant", zap.String("key", key))
	}
	p.metrics.RecordConstantLookup(false)

	value, err := p.next.GetConstant(ctx, category, name)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		p.logger.Warn("constant is not cacheable", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := p.cache.Set(ctx, key, encoded, p.ttl); err != nil {
		p.logger.Warn("constant cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// Invalidate drops a cached constant so the next lookup reads through.
func (p *Provider) Invalidate(ctx context.Context, category, name string) error {
	return p.cache.Delete(ctx, constantKey(category, name))
}
