package memory

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/lucsky/cuid"
	"gopkg.in/yaml.v3"
)

type ScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*models.Scenario
	order     []string
	now       func() time.Time
}

func NewScenarioRepository() *ScenarioRepository {
	return &ScenarioRepository{
		scenarios: make(map[string]*models.Scenario),
		now:       time.Now,
	}
}

// ReadScenariosFile parses and validates a YAML or JSON document
// holding either a single scenario or a "scenarios" list.
func ReadScenariosFile(path string) ([]*models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenarios file: %w", err)
	}

	var doc struct {
		Scenarios []*models.Scenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing scenarios file %s: %w", path, err)
	}
	scenarios := doc.Scenarios
	if len(scenarios) == 0 {
		var single models.Scenario
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("error parsing scenarios file %s: %w", path, err)
		}
		scenarios = []*models.Scenario{&single}
	}

	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return scenarios, nil
}

// LoadFile reads a scenarios file and stores every scenario in it.
func (r *ScenarioRepository) LoadFile(ctx context.Context, path string) error {
	scenarios, err := ReadScenariosFile(path)
	if err != nil {
		return err
	}
	return r.BulkCreate(ctx, scenarios)
}

func (r *ScenarioRepository) GetByID(_ context.Context, id string) (*models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[id]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (r *ScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	return r.BulkCreate(ctx, []*models.Scenario{scenario})
}

// BulkCreate stores copies of the scenarios, assigning an id and
// timestamps where missing. An existing id is overwritten in place.
func (r *ScenarioRepository) BulkCreate(_ context.Context, scenarios []*models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scenario := range scenarios {
		if scenario == nil {
			continue
		}
		if scenario.ID == "" {
			scenario.ID = cuid.New()
		}
		now := r.now()
		if scenario.CreatedAt.IsZero() {
			scenario.CreatedAt = now
		}
		if scenario.UpdatedAt.IsZero() {
			scenario.UpdatedAt = now
		}

		if _, exists := r.scenarios[scenario.ID]; !exists {
			r.order = append(r.order, scenario.ID)
		}
		stored := *scenario
		r.scenarios[scenario.ID] = &stored
	}
	return nil
}

func (r *ScenarioRepository) GetAll(_ context.Context) ([]*models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenarios := make([]*models.Scenario, 0, len(r.order))
	for _, id := range r.order {
		s := *r.scenarios[id]
		scenarios = append(scenarios, &s)
	}
	return scenarios, nil
}

func (r *ScenarioRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scenarios), nil
}

func (r *ScenarioRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios = make(map[string]*models.Scenario)
	r.order = nil
	return nil
}
