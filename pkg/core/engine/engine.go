// Package engine wires the refresh pipeline together: fetch fan-out →
// shape-tagged decode → normalization → snapshot commit. One Engine serves
// one tenant's dashboards.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finadash/pkg/core/fetch"
	"finadash/pkg/core/normalize"
	"finadash/pkg/core/snapshot"
	"finadash/pkg/models"
)

// Source kinds decide which raw shape a payload decodes into. Shape is
// resolved here, per source, never inferred downstream.
const (
	KindTransactions     = "transactions"
	KindVouchers         = "vouchers"
	KindActivePersonnel  = "employees-active"
	KindPassivePersonnel = "employees-passive"
)

// Source pairs an endpoint spec with its payload kind.
type Source struct {
	Spec fetch.SourceSpec `yaml:"spec"`
	Kind string           `yaml:"kind"`
}

// AuditLog records refresh outcomes. Implementations may be backed by
// Postgres (pkg/core/store) or absent entirely.
type AuditLog interface {
	RecordRefresh(ctx context.Context, snap snapshot.Snapshot) error
}

// Engine owns the orchestrator, the source list and the snapshot store.
type Engine struct {
	orch    *fetch.Orchestrator
	sources []Source
	store   *snapshot.Store
	audit   AuditLog
}

// New builds an engine over the given sources.
func New(orch *fetch.Orchestrator, sources []Source) *Engine {
	return &Engine{
		orch:    orch,
		sources: sources,
		store:   snapshot.NewStore(),
	}
}

// SetAuditLog injects an optional refresh audit sink.
func (e *Engine) SetAuditLog(audit AuditLog) {
	e.audit = audit
}

// Store exposes the snapshot store for read paths.
func (e *Engine) Store() *snapshot.Store {
	return e.store
}

// Shutdown cancels any in-flight refresh.
func (e *Engine) Shutdown() {
	e.orch.Shutdown()
}

// Refresh runs one full cycle and commits the resulting snapshot if this
// cycle is still the active one by the time it completes. The returned bool
// reports whether the commit was accepted; a superseded refresh returns
// false with no error, matching the rule that cancellation is not a
// failure.
func (e *Engine) Refresh(ctx context.Context) (snapshot.Snapshot, bool) {
	specs := make([]fetch.SourceSpec, len(e.sources))
	for i, s := range e.sources {
		specs[i] = s.Spec
	}

	cycleID, results := e.orch.Refresh(ctx, specs)
	snap := e.buildSnapshot(cycleID, results)

	committed := e.store.Commit(snap, e.orch.IsActive)
	if !committed {
		return snap, false
	}

	if e.audit != nil {
		if err := e.audit.RecordRefresh(ctx, snap); err != nil {
			fmt.Printf("[WARNING] refresh audit write failed: %v\n", err)
		}
	}
	return snap, true
}

// buildSnapshot decodes each source payload by its declared kind, merges
// and normalizes. A failed source contributes its default (empty) value and
// a recorded status; it never blocks the rest.
func (e *Engine) buildSnapshot(cycleID uuid.UUID, results []fetch.SourceResult) snapshot.Snapshot {
	var rawFinancial []models.RawFinancialRecord
	var rawPeople []models.RawPersonRecord
	statuses := make([]snapshot.SourceStatus, 0, len(results))

	for i, res := range results {
		status := snapshot.SourceStatus{
			Name:      res.Name,
			OK:        res.Err == nil && !res.Cancelled,
			Attempts:  res.Attempts,
			Cancelled: res.Cancelled,
		}
		if res.Err != nil {
			status.Error = res.Err.Error()
			fmt.Printf("[WARNING] source %s degraded: %v\n", res.Name, res.Err)
		}

		if status.OK && len(res.Payload) > 0 {
			status.Records = e.decodeInto(e.sources[i].Kind, res.Payload, &rawFinancial, &rawPeople)
		}
		statuses = append(statuses, status)
	}

	return snapshot.Snapshot{
		Cycle:     cycleID,
		FetchedAt: time.Now(),
		Financial: normalize.NormalizeFinancial(rawFinancial),
		People:    normalize.NormalizePeople(rawPeople),
		Sources:   statuses,
	}
}

func (e *Engine) decodeInto(kind string, payload json.RawMessage, financial *[]models.RawFinancialRecord, people *[]models.RawPersonRecord) int {
	switch kind {
	case KindTransactions, KindVouchers:
		var rows []models.RawFinancialRecord
		if err := json.Unmarshal(payload, &rows); err != nil {
			fmt.Printf("[WARNING] %s payload decode failed: %v\n", kind, err)
			return 0
		}
		*financial = append(*financial, rows...)
		return len(rows)
	case KindActivePersonnel, KindPassivePersonnel:
		var rows []models.RawPersonRecord
		if err := json.Unmarshal(payload, &rows); err != nil {
			fmt.Printf("[WARNING] %s payload decode failed: %v\n", kind, err)
			return 0
		}
		tag := models.SourceActivePersonnel
		if kind == KindPassivePersonnel {
			tag = models.SourcePassivePersonnel
		}
		for i := range rows {
			rows[i].Source = tag
		}
		*people = append(*people, rows...)
		return len(rows)
	default:
		fmt.Printf("[WARNING] unknown source kind %q, payload ignored\n", kind)
		return 0
	}
}
