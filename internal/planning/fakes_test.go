package planning

import (
	"context"

	"github.com/chrisdamba/outletplanner/internal/models"
)

type fakeProvider struct {
	defaults  map[string]map[string]any
	constants map[string]map[string]any
	err       error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		defaults: map[string]map[string]any{},
		constants: map[string]map[string]any{
			models.ConstantCategoryShifts: {
				models.ConstantStandardShifts: map[string]any{
					"morning":   map[string]any{"start": "06:00", "end": "15:00"},
					"afternoon": map[string]any{"start": "15:00", "end": "23:00"},
					"night":     map[string]any{"start": "23:00", "end": "06:00"},
				},
			},
			models.ConstantCategoryService: {
				models.ConstantServiceStyleFactors: map[string]any{"quick_service": 0.8, "casual_dining": 1.0, "fine_dining": 1.2},
			},
			models.ConstantCategoryKitchen: {
				models.ConstantComplexityFactors: map[string]any{"simple": 0.8, "moderate": 1.0, "complex": 1.2},
			},
			models.ConstantCategoryCosts:    {models.ConstantHighCostThreshold: 0.4},
			models.ConstantCategoryTraffic:  {models.ConstantPeakTrafficThreshold: 100},
			models.ConstantCategoryStaffing: {models.ConstantSignificantReductionThreshold: 0.1},
		},
	}
}

func (p *fakeProvider) withDefaults(category string, values map[string]any) *fakeProvider {
	p.defaults[category] = values
	return p
}

func (p *fakeProvider) without(category, name string) *fakeProvider {
	delete(p.constants[category], name)
	return p
}

func (p *fakeProvider) GetDefaults(_ context.Context, category string) (map[string]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.defaults[category], nil
}

func (p *fakeProvider) GetConstant(_ context.Context, category, name string) (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	v, ok := p.constants[category][name]
	if !ok {
		return nil, &ConfigurationMissingError{Category: category, Name: name}
	}
	return v, nil
}

type fakeStore map[string]*models.Scenario

func (s fakeStore) GetByID(_ context.Context, id string) (*models.Scenario, error) {
	return s[id], nil
}

func casualModerate() models.ServiceParameters {
	return models.ServiceParameters{
		ServiceStyle:      models.ServiceStyleCasualDining,
		KitchenComplexity: models.KitchenComplexityModerate,
	}
}

// smallOutlet staffs 14 at the default settings, largeOutlet 26.
func smallOutlet() models.Scenario {
	return models.Scenario{
		ID:                "small",
		Name:              "Small",
		SpaceParameters:   models.SpaceParameters{TotalArea: 200, FOHPercentage: 70, ExternalSeating: 20},
		ServiceParameters: casualModerate(),
	}
}

func largeOutlet() models.Scenario {
	return models.Scenario{
		ID:                "large",
		Name:              "Large",
		SpaceParameters:   models.SpaceParameters{TotalArea: 600, FOHPercentage: 70},
		ServiceParameters: casualModerate(),
	}
}

func newStore(scenarios ...models.Scenario) fakeStore {
	store := fakeStore{}
	for i := range scenarios {
		s := scenarios[i]
		store[s.ID] = &s
	}
	return store
}
