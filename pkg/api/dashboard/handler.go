// Package dashboard exposes the engine's derived views over HTTP. Handlers
// parse a filter state from query parameters, read the current immutable
// snapshot and recompute the requested view; nothing is cached across
// requests.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"finadash/pkg/core/config"
	"finadash/pkg/core/engine"
	"finadash/pkg/core/export"
	"finadash/pkg/core/filter"
	"finadash/pkg/core/snapshot"
)

// Handler serves the dashboard endpoints for one engine instance.
type Handler struct {
	engine *engine.Engine
	cfg    config.Config
}

// NewHandler builds a handler over an engine and its configuration.
func NewHandler(eng *engine.Engine, cfg config.Config) *Handler {
	return &Handler{engine: eng, cfg: cfg}
}

// HandleRefresh triggers a refresh cycle. A refresh superseded mid-flight
// responds 409 so callers know a newer cycle owns the state; per-source
// failures are carried inside the snapshot, not as an HTTP error.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, committed := h.engine.Refresh(r.Context())
	if !committed {
		writeJSON(w, http.StatusConflict, map[string]any{
			"superseded": true,
			"cycle":      snap.Cycle,
		})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleBanking serves the banking/accounting dashboard view.
func (h *Handler) HandleBanking(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.currentSnapshot(r.Context())
	if !ok {
		http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, BuildBankingView(snap, stateFromQuery(r), h.cfg))
}

// HandleHR serves the HR dashboard view.
func (h *Handler) HandleHR(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.currentSnapshot(r.Context())
	if !ok {
		http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, BuildHRView(snap, stateFromQuery(r), h.cfg))
}

// HandleExport serializes the filtered collection. ?domain=banking|hr
// selects the collection, ?format=csv|xlsx the output. An empty filtered
// collection responds 204: "nothing to export" is a signal, not a file.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.currentSnapshot(r.Context())
	if !ok {
		http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
		return
	}
	state := stateFromQuery(r)
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var err error
	switch r.URL.Query().Get("domain") {
	case "hr":
		filtered := filter.ApplyPerson(snap.People, filter.CompilePerson(state))
		err = writeExport(w, format, filtered, export.PersonColumns())
	default:
		filtered := filter.ApplyFinancial(snap.Financial, filter.CompileFinancial(state))
		err = writeExport(w, format, filtered, export.FinancialColumns())
	}

	if errors.Is(err, export.ErrNothingToExport) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("export failed: %v", err), http.StatusInternalServerError)
	}
}

func writeExport[T any](w http.ResponseWriter, format string, records []T, columns []export.Column[T]) error {
	switch format {
	case "xlsx":
		if len(records) == 0 {
			return export.ErrNothingToExport
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return export.ToXLSX(w, records, columns)
	default:
		text, err := export.ToCSV(records, columns)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, err = w.Write([]byte(text))
		return err
	}
}

func (h *Handler) currentSnapshot(_ context.Context) (snapshot.Snapshot, bool) {
	return h.engine.Store().Current()
}

// stateFromQuery parses the filter state from query parameters. Unknown or
// out-of-range values are clamped, never rejected.
func stateFromQuery(r *http.Request) filter.State {
	q := r.URL.Query()
	return filter.State{
		Status:     q.Get("status"),
		Kind:       q.Get("kind"),
		Currency:   q.Get("currency"),
		Bank:       q.Get("bank"),
		Department: q.Get("department"),
		Company:    q.Get("company"),
		Search:     q.Get("search"),
		WindowDays: intParam(q.Get("windowDays"), 0),
		Page:       intParam(q.Get("page"), 1),
		PageSize:   intParam(q.Get("pageSize"), filter.DefaultPageSize),
	}.Normalized()
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[WARNING] response encode failed: %v\n", err)
	}
}
