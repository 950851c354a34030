package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// SeedDefaults returns the default values a fresh installation starts
// with, grouped by category.
func SeedDefaults() map[string]map[string]any {
	return map[string]map[string]any{
		models.CategoryStaffing: {
			"min_staff_per_shift":     2,
			"max_staff_per_shift":     20,
			"staff_buffer_percentage": 0.15,
		},
		models.CategoryFinancial: {
			"min_wage":            15.00,
			"overtime_multiplier": 1.5,
			"benefits_percentage": 0.25,
		},
		models.CategoryOperational: {
			"peak_hour_buffer": 0.3,
			"min_shift_length": 4,
			"max_shift_length": 8,
		},
		models.CategoryEfficiency: {
			"target_utilization":  0.85,
			"min_cover_per_staff": 20,
			"max_cover_per_staff": 40,
		},
		models.CategorySpace: {
			"min_area_per_cover":      1.5,
			"max_area_per_cover":      3.0,
			"kitchen_area_percentage": 0.3,
		},
	}
}

// SeedConstants returns the operational constants a fresh installation
// starts with, grouped by category.
func SeedConstants() map[string]map[string]any {
	return map[string]map[string]any{
		models.ConstantCategoryShifts: {
			models.ConstantStandardShifts: map[string]any{
				"morning":   map[string]any{"start": "06:00", "end": "15:00"},
				"afternoon": map[string]any{"start": "15:00", "end": "23:00"},
				"night":     map[string]any{"start": "23:00", "end": "06:00"},
			},
		},
		models.ConstantCategoryService: {
			models.ConstantServiceStyleFactors: map[string]any{
				"quick_service": 0.8,
				"casual_dining": 1.0,
				"fine_dining":   1.2,
			},
		},
		models.ConstantCategoryKitchen: {
			models.ConstantComplexityFactors: map[string]any{
				"simple":   0.8,
				"moderate": 1.0,
				"complex":  1.2,
			},
		},
		models.ConstantCategoryCosts:    {models.ConstantHighCostThreshold: 0.4},
		models.ConstantCategoryTraffic:  {models.ConstantPeakTrafficThreshold: 100},
		models.ConstantCategoryStaffing: {models.ConstantSignificantReductionThreshold: 0.1},
	}
}

// Provider keeps default values and constants in memory. It is safe for
// concurrent use.
type Provider struct {
	mu        sync.RWMutex
	defaults  map[string]map[string]any
	constants map[string]map[string]any
}

// NewProvider returns a Provider holding the seed values.
func NewProvider() *Provider {
	return &Provider{
		defaults:  SeedDefaults(),
		constants: SeedConstants(),
	}
}

func NewEmptyProvider() *Provider {
	return &Provider{
		defaults:  map[string]map[string]any{},
		constants: map[string]map[string]any{},
	}
}

// LoadFile overlays the provider with the "defaults" and "constants"
// maps of a YAML, JSON or TOML file. Values present in the file replace
// the ones held; everything else is kept.
func (p *Provider) LoadFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading defaults file: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	merge(p.defaults, v.GetStringMap("defaults"))
	merge(p.constants, v.GetStringMap("constants"))
	return nil
}

func merge(dst map[string]map[string]any, src map[string]any) {
	for category, raw := range src {
		values := cast.ToStringMap(raw)
		if dst[category] == nil {
			dst[category] = map[string]any{}
		}
		for name, value := range values {
			dst[category][name] = value
		}
	}
}

func (p *Provider) GetDefaults(_ context.Context, category string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	values := make(map[string]any, len(p.defaults[category]))
	for name, value := range p.defaults[category] {
		values[name] = value
	}
	return values, nil
}

func (p *Provider) GetConstant(_ context.Context, category, name string) (any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.constants[category][name]
	if !ok {
		return nil, &planning.ConfigurationMissingError{Category: category, Name: name}
	}
	return value, nil
}

func (p *Provider) SetDefault(_ context.Context, category, name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	set(p.defaults, category, name, value)
	return nil
}

func (p *Provider) SetConstant(_ context.Context, category, name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	set(p.constants, category, name, value)
	return nil
}

func set(dst map[string]map[string]any, category, name string, value any) {
	if dst[category] == nil {
		dst[category] = map[string]any{}
	}
	dst[category][name] = value
}
