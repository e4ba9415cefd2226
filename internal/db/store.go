package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reliefroute/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// EnsureSchema creates the write-through tables on first boot. The decision
// payload is stored whole as JSONB; the relational columns exist only for
// querying and reporting.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			disaster_type TEXT NOT NULL,
			severity INT NOT NULL,
			risk TEXT NOT NULL,
			status TEXT NOT NULL,
			payload JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS decision_audit (
			id BIGSERIAL PRIMARY KEY,
			decision_id TEXT NOT NULL REFERENCES decisions(id),
			actor TEXT NOT NULL,
			at TIMESTAMPTZ NOT NULL,
			from_status TEXT NOT NULL,
			to_status TEXT NOT NULL,
			note TEXT
		);
		CREATE INDEX IF NOT EXISTS decision_audit_decision_idx ON decision_audit (decision_id);
		CREATE TABLE IF NOT EXISTS historical_scenarios (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			severity INT NOT NULL,
			population INT NOT NULL,
			hospital_load DOUBLE PRECISION NOT NULL,
			payload JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS inventory_snapshots (
			id BIGSERIAL PRIMARY KEY,
			taken_at TIMESTAMPTZ NOT NULL,
			depot_id TEXT NOT NULL,
			resources JSONB NOT NULL
		);
	`)
	return err
}

// ReplaceHistorical reloads the historical corpus wholesale. The corpus is
// reference data, so a truncate-and-copy beats row-level upserts.
func (s *Store) ReplaceHistorical(ctx context.Context, scenarios []models.HistoricalScenario) (int64, error) {
	if err := s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `TRUNCATE historical_scenarios`)
		return err
	}); err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(scenarios))
	for _, h := range scenarios {
		payload, err := json.Marshal(h)
		if err != nil {
			return 0, fmt.Errorf("encode historical scenario %s: %w", h.ID, err)
		}
		rows = append(rows, []any{h.ID, string(h.DisasterType), h.Severity, h.Population, h.HospitalLoad, payload})
	}
	return s.Pool.CopyFrom(ctx, pgx.Identifier{"historical_scenarios"},
		[]string{"id", "disaster_type", "severity", "population", "hospital_load", "payload"},
		pgx.CopyFromRows(rows))
}

// SaveInventorySnapshot appends one row per depot with its current stock.
func (s *Store) SaveInventorySnapshot(ctx context.Context, depots []models.Depot) error {
	takenAt := time.Now().UTC()
	rows := make([][]any, 0, len(depots))
	for _, d := range depots {
		resources, err := json.Marshal(d.Resources)
		if err != nil {
			return fmt.Errorf("encode depot %s resources: %w", d.ID, err)
		}
		rows = append(rows, []any{takenAt, d.ID, resources})
	}
	_, err := s.Pool.CopyFrom(ctx, pgx.Identifier{"inventory_snapshots"},
		[]string{"taken_at", "depot_id", "resources"},
		pgx.CopyFromRows(rows))
	return err
}

// SaveDecision writes the freshly evaluated decision and its initial audit
// trail in one transaction.
func (s *Store) SaveDecision(ctx context.Context, d models.Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO decisions (id, created_at, disaster_type, severity, risk, status, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.CreatedAt, string(d.Scenario.DisasterType), d.Scenario.Severity,
			d.Risk.Level.String(), string(d.Status), payload)
		if err != nil {
			return err
		}
		for _, rec := range d.Audit {
			if err := insertAudit(ctx, tx, d.ID, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordTransition persists a status change and its audit record atomically.
func (s *Store) RecordTransition(ctx context.Context, decisionID string, status models.DecisionStatus, rec models.AuditRecord) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE decisions SET status = $2, payload = jsonb_set(payload, '{status}', to_jsonb($2::text)) WHERE id = $1`,
			decisionID, string(status))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("decision %s not persisted", decisionID)
		}
		return insertAudit(ctx, tx, decisionID, rec)
	})
}

func insertAudit(ctx context.Context, tx pgx.Tx, decisionID string, rec models.AuditRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO decision_audit (decision_id, actor, at, from_status, to_status, note)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		decisionID, rec.Actor, rec.At, string(rec.FromStatus), string(rec.ToStatus), rec.Note)
	return err
}

// ListDecisionIDs returns persisted decision ids newest first, for
// operational inspection.
func (s *Store) ListDecisionIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.Pool.Query(ctx, `SELECT id FROM decisions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// AuditTrail loads the persisted audit records for one decision in insert
// order.
func (s *Store) AuditTrail(ctx context.Context, decisionID string) ([]models.AuditRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT actor, at, from_status, to_status, COALESCE(note, '')
		FROM decision_audit WHERE decision_id = $1 ORDER BY id ASC`, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AuditRecord
	for rows.Next() {
		var (
			rec  models.AuditRecord
			at   time.Time
			from string
			to   string
		)
		if err := rows.Scan(&rec.Actor, &at, &from, &to, &rec.Note); err != nil {
			return nil, err
		}
		rec.At = at
		rec.FromStatus = models.DecisionStatus(from)
		rec.ToStatus = models.DecisionStatus(to)
		out = append(out, rec)
	}
	return out, rows.Err()
}
