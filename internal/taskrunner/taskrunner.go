// Package taskrunner hosts the single-worker background runner for batch
// repair. Repair touches every file in the dataset and can run for a long
// time, so it executes off the request path with progress fanned out to
// subscribers (the websocket handler).
package taskrunner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"dataset-cutter/internal/service"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
)

const eventBuffer = 64

// Event is one progress update from a running repair.
type Event struct {
	Stage     string                  `json:"stage"` // running | done | failed
	File      *types.RepairFileResult `json:"file,omitempty"`
	Processed int                     `json:"processed"`
	Repaired  int                     `json:"repaired"`
	Failed    int                     `json:"failed"`
	Err       string                  `json:"err,omitempty"`
}

// Status is the externally visible runner state.
type Status struct {
	Running    bool                `json:"running"`
	StartedAt  *time.Time          `json:"started_at,omitempty"`
	LastReport *types.RepairReport `json:"last_report,omitempty"`
	LastError  string              `json:"last_error,omitempty"`
}

// Runner serializes repair runs: at most one is in flight, matching the
// one-child-process-at-a-time resource model.
type Runner struct {
	svc *service.Service

	mu         sync.Mutex
	running    bool
	startedAt  time.Time
	lastReport *types.RepairReport
	lastError  string
	subs       map[chan Event]struct{}
}

func NewRunner(svc *service.Service) *Runner {
	return &Runner{
		svc:  svc,
		subs: make(map[chan Event]struct{}),
	}
}

// Start launches a repair run in the background. Returns ErrRepairBusy when
// one is already in flight.
func (r *Runner) Start(opts types.RepairOptions) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return apperrors.ErrRepairBusy
	}
	r.running = true
	r.startedAt = time.Now()
	r.lastError = ""
	r.mu.Unlock()

	go r.run(opts)
	return nil
}

func (r *Runner) run(opts types.RepairOptions) {
	var processed, repaired, failed int
	report, err := r.svc.RepairDataset(context.Background(), opts, func(result types.RepairFileResult) {
		processed++
		if result.Err == "" {
			repaired++
		} else {
			failed++
		}
		fileResult := result
		r.broadcast(Event{
			Stage:     "running",
			File:      &fileResult,
			Processed: processed,
			Repaired:  repaired,
			Failed:    failed,
		})
	})

	r.mu.Lock()
	r.running = false
	r.lastReport = report
	final := Event{Stage: "done"}
	if report != nil {
		final.Processed = report.Processed
		final.Repaired = report.Repaired
		final.Failed = report.Failed
	}
	if err != nil {
		r.lastError = err.Error()
		final.Stage = "failed"
		final.Err = err.Error()
		log.GetLogger().Error("background repair failed", zap.Error(err))
	}
	r.mu.Unlock()

	r.broadcast(final)
}

// Subscribe registers a progress listener. The returned cancel func must be
// called when the listener goes away. Slow listeners drop events rather than
// stalling the repair loop.
func (r *Runner) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, eventBuffer)

	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Runner) broadcast(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := Status{
		Running:    r.running,
		LastReport: r.lastReport,
		LastError:  r.lastError,
	}
	if r.running {
		startedAt := r.startedAt
		status.StartedAt = &startedAt
	}
	return status
}
