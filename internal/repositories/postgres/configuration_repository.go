package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

// ConfigurationRepository reads default values and operational
// constants from the default_values and operational_constants tables.
// Values are stored as JSONB and come back decoded.
type ConfigurationRepository struct {
	db querier
}

func NewConfigurationRepository(pool *pgxpool.Pool) *ConfigurationRepository {
	return &ConfigurationRepository{db: pool}
}

func (r *ConfigurationRepository) GetDefaults(ctx context.Context, category string) (map[string]any, error) {
	query := `
        SELECT name, value
        FROM default_values
        WHERE category = $1 AND is_active = true
    `
	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]any)
	for rows.Next() {
		var (
			name string
			raw  []byte
		)
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, err
		}
		value, err := decodeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("default %s.%s: %w", category, name, err)
		}
		values[name] = value
	}
	return values, rows.Err()
}

func (r *ConfigurationRepository) GetConstant(ctx context.Context, category, name string) (any, error) {
	query := `
        SELECT value
        FROM operational_constants
        WHERE category = $1 AND name = $2
    `
	var raw []byte
	err := r.db.QueryRow(ctx, query, category, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &planning.ConfigurationMissingError{Category: category, Name: name}
	}
	if err != nil {
		return nil, err
	}

	value, err := decodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("constant %s.%s: %w", category, name, err)
	}
	return value, nil
}

func (r *ConfigurationRepository) SetDefault(ctx context.Context, category, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO default_values (id, category, name, value, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, true, now(), now())
        ON CONFLICT (category, name) DO UPDATE
        SET value = EXCLUDED.value, is_active = true, updated_at = now()
    `
	_, err = r.db.Exec(ctx, query, cuid.New(), category, name, raw)
	return err
}

func (r *ConfigurationRepository) SetConstant(ctx context.Context, category, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO operational_constants (id, category, name, value, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now())
        ON CONFLICT (category, name) DO UPDATE
        SET value = EXCLUDED.value, updated_at = now()
    `
	_, err = r.db.Exec(ctx, query, cuid.New(), category, name, raw)
	return err
}

func decodeJSON(raw []byte) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}
	return value, nil
}
