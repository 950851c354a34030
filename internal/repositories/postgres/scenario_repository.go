package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

type ScenarioRepository struct {
	db querier
}

func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{db: pool}
}

const scenarioColumns = `id, name, brand, outlet, space_parameters, service_parameters, operational_parameters, created_at, updated_at`

func (r *ScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	return r.BulkCreate(ctx, []*models.Scenario{scenario})
}

func (r *ScenarioRepository) BulkCreate(ctx context.Context, scenarios []*models.Scenario) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO scenarios (` + scenarioColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            brand = EXCLUDED.brand,
            outlet = EXCLUDED.outlet,
            space_parameters = EXCLUDED.space_parameters,
            service_parameters = EXCLUDED.service_parameters,
            operational_parameters = EXCLUDED.operational_parameters,
            updated_at = EXCLUDED.updated_at
    `
	for _, scenario := range scenarios {
		args, err := scenarioArgs(scenario, time.Now())
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// scenarioArgs fills in a missing id and timestamps and encodes the
// parameter groups as JSON.
func scenarioArgs(s *models.Scenario, now time.Time) ([]any, error) {
	if s.ID == "" {
		s.ID = cuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	space, err := json.Marshal(s.SpaceParameters)
	if err != nil {
		return nil, err
	}
	service, err := json.Marshal(s.ServiceParameters)
	if err != nil {
		return nil, err
	}
	operational, err := json.Marshal(s.OperationalParameters)
	if err != nil {
		return nil, err
	}
	return []any{s.ID, s.Name, s.Brand, s.Outlet, space, service, operational, s.CreatedAt, s.UpdatedAt}, nil
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id = $1`
	scenario, err := scanScenario(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return scenario, err
}

func (r *ScenarioRepository) GetAll(ctx context.Context) ([]*models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []*models.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, rows.Err()
}

func scanScenario(row pgx.Row) (*models.Scenario, error) {
	var (
		s                           models.Scenario
		brand, outlet               *string
		space, service, operational []byte
	)
	err := row.Scan(&s.ID, &s.Name, &brand, &outlet, &space, &service, &operational, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if brand != nil {
		s.Brand = *brand
	}
	if outlet != nil {
		s.Outlet = *outlet
	}
	if err := json.Unmarshal(space, &s.SpaceParameters); err != nil {
		return nil, fmt.Errorf("scenario %s space parameters: %w", s.ID, err)
	}
	if err := json.Unmarshal(service, &s.ServiceParameters); err != nil {
		return nil, fmt.Errorf("scenario %s service parameters: %w", s.ID, err)
	}
	if err := json.Unmarshal(operational, &s.OperationalParameters); err != nil {
		return nil, fmt.Errorf("scenario %s operational parameters: %w", s.ID, err)
	}
	return &s, nil
}

func (r *ScenarioRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

func (r *ScenarioRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE scenarios")
	return err
}
