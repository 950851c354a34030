package repositories

import (
	"context"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
)

type ScenarioRepository interface {
	planning.ScenarioStore
	BulkCreate(ctx context.Context, scenarios []*models.Scenario) error
	Create(ctx context.Context, scenario *models.Scenario) error
	GetAll(ctx context.Context) ([]*models.Scenario, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// ConfigurationRepository is a ConfigurationProvider that can also be
// written to, used to seed a fresh store.
type ConfigurationRepository interface {
	planning.ConfigurationProvider
	SetDefault(ctx context.Context, category, name string, value any) error
	SetConstant(ctx context.Context, category, name string, value any) error
}
