package cached

import (
	"context"
	"strings"
	"testing"

	"github.com/chrisdamba/outletplanner/internal/cache"
	"github.com/chrisdamba/outletplanner/internal/metrics"
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/chrisdamba/outletplanner/internal/repositories/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	planning.ConfigurationProvider
	constantCalls int
}

func (p *countingProvider) GetConstant(ctx context.Context, category, name string) (any, error) {
	p.constantCalls++
	return p.ConfigurationProvider.GetConstant(ctx, category, name)
}

func TestProvider_GetConstant(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewProvider()
	next := &countingProvider{ConfigurationProvider: backing}
	collector := metrics.NewCollector(nil)
	c := cache.NewMemory(0)
	p := NewProvider(next, c, 0, collector, nil)

	for i := 0; i < 3; i++ {
		v, err := p.GetConstant(ctx, models.ConstantCategoryKitchen, models.ConstantComplexityFactors)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"simple": 0.8, "moderate": 1.0, "complex": 1.2}, v)
	}
	assert.Equal(t, 1, next.constantCalls)

	v, err := p.GetConstant(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)

	// stale until invalidated
	require.NoError(t, backing.SetConstant(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold, 0.5))
	v, err = p.GetConstant(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)
	require.NoError(t, p.Invalidate(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold))
	v, err = p.GetConstant(ctx, models.ConstantCategoryCosts, models.ConstantHighCostThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = p.GetConstant(ctx, models.ConstantCategoryCosts, "unknown")
	assert.ErrorIs(t, err, planning.ErrConfigurationMissing)
	_, ok, _ := c.Get(ctx, constantKey(models.ConstantCategoryCosts, "unknown"))
	assert.False(t, ok)

	expected := `
# HELP outletplanner_constant_lookups_total Operational constant lookups by cache result
# TYPE outletplanner_constant_lookups_total counter
outletplanner_constant_lookups_total{result="hit"} 3
outletplanner_constant_lookups_total{result="miss"} 4
`
	assert.NoError(t, testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "outletplanner_constant_lookups_total"))
}

func TestProvider_SettingsThroughCache(t *testing.T) {
	p := NewProvider(memory.NewProvider(), cache.NewMemory(0), 0, nil, nil)

	settings, err := planning.LoadSettings(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, planning.DefaultSettings(), settings)

	_, err = planning.NewStaffingCalculator(context.Background(), p, nil)
	require.NoError(t, err)
}
