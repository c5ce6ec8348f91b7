// Package fetch orchestrates the per-refresh fan-out to upstream sources.
// Sources are fetched independently and concurrently; one source failing,
// timing out or returning garbage never blocks the others. A new refresh
// cycle supersedes the previous one: its context is cancelled and any late
// result is discarded by the snapshot commit guard.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TenantHeader carries the per-tenant identifier on every source request.
const TenantHeader = "X-Tenant-Id"

// SourceSpec addresses one upstream collection endpoint.
type SourceSpec struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	TenantID string `json:"tenantId" yaml:"tenant_id"`
}

// SourceResult is the per-source outcome of one refresh cycle. Payload is
// the decoded data array (possibly nil on failure); Err is nil for both
// success and cancellation. Cancellation is flagged separately because it
// must never surface as a user-visible error.
type SourceResult struct {
	Name      string
	Payload   json.RawMessage
	Attempts  int
	Err       error
	Cancelled bool
	Elapsed   time.Duration
}

// Options tunes the orchestrator. Zero values fall back to the defaults
// below.
type Options struct {
	MaxAttempts int           // retry budget per source, default 3
	Backoff     time.Duration // base backoff, grows linearly per attempt, default 250ms
	Timeout     time.Duration // per-request deadline, default 15s
}

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 250 * time.Millisecond
	defaultTimeout     = 15 * time.Second
)

// Orchestrator issues the refresh fan-out. One orchestrator serves one
// dashboard; concurrent Refresh calls race by design and the newest wins.
type Orchestrator struct {
	client *http.Client
	opts   Options

	mu          sync.Mutex
	activeCycle uuid.UUID
	cancelPrev  context.CancelFunc
}

// NewOrchestrator builds an orchestrator with the given options.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Orchestrator{
		client: &http.Client{},
		opts:   opts,
	}
}

// SetClient injects a custom HTTP client (for tests).
func (o *Orchestrator) SetClient(client *http.Client) {
	o.client = client
}

// Refresh starts a new cycle: the previous cycle's in-flight requests are
// cancelled first (last writer wins, no queueing), then all sources are
// fetched concurrently. The returned cycle ID identifies this refresh for
// the snapshot supersession guard. Refresh blocks until every source has
// either resolved, exhausted its retries, or been cancelled.
func (o *Orchestrator) Refresh(ctx context.Context, sources []SourceSpec) (uuid.UUID, []SourceResult) {
	o.mu.Lock()
	if o.cancelPrev != nil {
		o.cancelPrev()
	}
	cycleCtx, cancel := context.WithCancel(ctx)
	cycleID := uuid.New()
	o.activeCycle = cycleID
	o.cancelPrev = cancel
	o.mu.Unlock()

	results := make([]SourceResult, len(sources))
	var wg sync.WaitGroup
	for i, spec := range sources {
		wg.Add(1)
		go func(i int, spec SourceSpec) {
			defer wg.Done()
			results[i] = o.fetchSource(cycleCtx, spec)
		}(i, spec)
	}
	wg.Wait()

	return cycleID, results
}

// ActiveCycle returns the ID of the most recently started cycle. Async
// completions must check their own ID against this before committing.
func (o *Orchestrator) ActiveCycle() uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeCycle
}

// IsActive reports whether the given cycle is still the current one.
func (o *Orchestrator) IsActive(cycle uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeCycle == cycle
}

// Shutdown cancels any in-flight cycle. Used on component teardown; the
// resulting cancellations are swallowed, not reported.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancelPrev != nil {
		o.cancelPrev()
		o.cancelPrev = nil
	}
	o.activeCycle = uuid.Nil
}

// fetchSource runs the retry loop for one source. Only transient gateway
// statuses (502/503/504) are retried; 4xx, decode failures and aborts are
// terminal on first sight.
func (o *Orchestrator) fetchSource(ctx context.Context, spec SourceSpec) SourceResult {
	result := SourceResult{Name: spec.Name}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	var lastErr error
	for attempt := 1; attempt <= o.opts.MaxAttempts; attempt++ {
		result.Attempts = attempt

		payload, retryable, err := o.fetchOnce(ctx, spec)
		if err == nil {
			result.Payload = payload
			return result
		}
		if isCancellation(err) {
			result.Cancelled = true
			return result
		}
		if isTimeout(err) {
			result.Err = fmt.Errorf("%w: %s", ErrTimeout, spec.Name)
			return result
		}
		lastErr = err
		if !retryable {
			break
		}
		if attempt < o.opts.MaxAttempts {
			backoff := o.opts.Backoff * time.Duration(attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				result.Cancelled = isCancellation(ctx.Err())
				if !result.Cancelled {
					result.Err = fmt.Errorf("%w: %s", ErrTimeout, spec.Name)
				}
				return result
			}
		}
	}

	result.Err = unavailable(spec.Name, lastErr)
	return result
}

// fetchOnce performs a single HTTP attempt under the per-request deadline.
// The bool return marks whether a failure is worth retrying.
func (o *Orchestrator) fetchOnce(ctx context.Context, spec SourceSpec) (json.RawMessage, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, spec.URL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if spec.TenantID != "" {
		req.Header.Set(TenantHeader, spec.TenantID)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		// Distinguish the parent cancellation from our own deadline.
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, false, context.DeadlineExceeded
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s returned status %d", spec.Name, resp.StatusCode)
		return nil, transientStatus(resp.StatusCode), err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, false, err
	}

	payload, err := DecodeEnvelope(body)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %v", spec.Name, err)
	}
	return payload, false, nil
}
