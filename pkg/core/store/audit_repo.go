package store

import (
	"context"
	"encoding/json"
	"fmt"

	"finadash/pkg/core/snapshot"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS refresh_audit (
	cycle_id    UUID PRIMARY KEY,
	fetched_at  TIMESTAMPTZ NOT NULL,
	financial_n INT NOT NULL,
	people_n    INT NOT NULL,
	sources     JSONB NOT NULL
)`

// AuditRepo writes one row per committed refresh cycle. Implements
// engine.AuditLog.
type AuditRepo struct{}

// NewAuditRepo ensures the audit table exists and returns the repo.
// InitDB must have been called first.
func NewAuditRepo(ctx context.Context) (*AuditRepo, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure audit table: %w", err)
	}
	return &AuditRepo{}, nil
}

// RecordRefresh inserts the outcome of one refresh cycle. A duplicate cycle
// ID is ignored; the same cycle is never committed twice by the engine, so
// a conflict only ever means a replayed call.
func (r *AuditRepo) RecordRefresh(ctx context.Context, snap snapshot.Snapshot) error {
	sources, err := json.Marshal(snap.Sources)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO refresh_audit (cycle_id, fetched_at, financial_n, people_n, sources)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cycle_id) DO NOTHING`,
		snap.Cycle, snap.FetchedAt, len(snap.Financial), len(snap.People), sources)
	if err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}
	return nil
}
