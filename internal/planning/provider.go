package planning

import (
	"context"

	"github.com/chrisdamba/outletplanner/internal/models"
)

// ConfigurationProvider supplies named default values and operational
// constants, both grouped by category.
//
// GetDefaults returns every active value of a category; an unknown
// category yields an empty map. GetConstant returns an error matching
// ErrConfigurationMissing when the constant does not exist.
type ConfigurationProvider interface {
	GetDefaults(ctx context.Context, category string) (map[string]any, error)
	GetConstant(ctx context.Context, category, name string) (any, error)
}

// ScenarioStore resolves persisted scenarios. GetByID returns nil, nil
// when no scenario has the given id.
type ScenarioStore interface {
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
}

func getScenario(ctx context.Context, store ScenarioStore, id string) (*models.Scenario, error) {
	if store == nil {
		return nil, &ScenarioNotFoundError{ID: id}
	}
	scenario, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, &ScenarioNotFoundError{ID: id}
	}
	return scenario, nil
}
