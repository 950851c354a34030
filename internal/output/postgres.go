package output

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const resultsTable = `
CREATE TABLE IF NOT EXISTS calculation_results (
    id          TEXT PRIMARY KEY,
    topic       TEXT NOT NULL,
    calculation TEXT NOT NULL,
    scenario_id TEXT,
    created_at  TIMESTAMPTZ NOT NULL,
    result      JSONB NOT NULL
)`

type resultRow struct {
	ID          string         `db:"id"`
	Topic       string         `db:"topic"`
	Calculation string         `db:"calculation"`
	ScenarioID  sql.NullString `db:"scenario_id"`
	CreatedAt   time.Time      `db:"created_at"`
	Result      string         `db:"result"`
}

func newResultRow(topic string, e Envelope) resultRow {
	return resultRow{
		ID:          e.ID,
		Topic:       topic,
		Calculation: e.Calculation,
		ScenarioID:  sql.NullString{String: e.ScenarioID, Valid: e.ScenarioID != ""},
		CreatedAt:   e.Time(),
		Result:      string(e.Result),
	}
}

// PostgresOutput stores envelopes in the calculation_results table.
type PostgresOutput struct {
	db *sqlx.DB
}

func NewPostgresOutput(dsn string) (*PostgresOutput, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if _, err := db.Exec(resultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating calculation_results: %w", err)
	}
	return &PostgresOutput{db: db}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	e, err := decodeEnvelope(msg)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO calculation_results (id, topic, calculation, scenario_id, created_at, result)
        VALUES (:id, :topic, :calculation, :scenario_id, :created_at, :result)`
	if _, err := p.db.NamedExec(query, newResultRow(topic, e)); err != nil {
		return fmt.Errorf("failed to insert into calculation_results: %w", err)
	}
	return nil
}

// BatchInsert copies many envelopes in one transaction.
func (p *PostgresOutput) BatchInsert(topic string, envelopes []Envelope) error {
	tx, err := p.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(pq.CopyIn("calculation_results",
		"id", "topic", "calculation", "scenario_id", "created_at", "result"))
	if err != nil {
		return err
	}

	for _, e := range envelopes {
		row := newResultRow(topic, e)
		if _, err = stmt.Exec(row.ID, row.Topic, row.Calculation, row.ScenarioID, row.CreatedAt, row.Result); err != nil {
			return err
		}
	}
	if _, err = stmt.Exec(); err != nil {
		return err
	}
	if err = stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

func (p *PostgresOutput) Close() error {
	return p.db.Close()
}
