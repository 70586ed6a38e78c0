package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// keepRuns bounds the persisted run log.
const keepRuns = 200

// RunSummary describes one scheduled pass.
type RunSummary struct {
	StartedAt time.Time
	EndedAt   time.Time
	Selected  int
	Published int
	Err       error
}

// Scheduler runs worklist + publish passes on a cron expression.
// Passes never overlap; a tick that fires while a pass is running is skipped.
type Scheduler struct {
	spec      string
	worklist  driving.WorklistService
	publisher driving.PublishService
	request   driving.PublishRequest

	mu      sync.Mutex
	running bool
	cron    *cron.Cron
	stopCh  chan struct{}
	last    *RunSummary
	onRun   func(RunSummary)
	runs    driven.RunStore
}

// NewScheduler creates a scheduler. spec is a standard five-field cron expression.
func NewScheduler(
	spec string,
	worklist driving.WorklistService,
	publisher driving.PublishService,
	request driving.PublishRequest,
) *Scheduler {
	return &Scheduler{
		spec:      spec,
		worklist:  worklist,
		publisher: publisher,
		request:   request,
	}
}

// WithRunStore persists every pass to store.
func (s *Scheduler) WithRunStore(store driven.RunStore) *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = store
	return s
}

// OnRun registers a callback invoked after every pass.
func (s *Scheduler) OnRun(fn func(RunSummary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRun = fn
}

// Start schedules passes and blocks until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("%w: cron %q: %w", domain.ErrInvalidInput, s.spec, err)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	stopCh := s.stopCh
	c := s.cron
	s.mu.Unlock()

	if _, err := c.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		s.reset()
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	c.Start()
	logger.Info("scheduler started with schedule: %s", s.spec)

	select {
	case <-ctx.Done():
		<-c.Stop().Done()
		s.reset()
		return ctx.Err()
	case <-stopCh:
		return nil
	}
}

// Stop gracefully stops the scheduler, waiting for a running pass.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	c := s.cron
	close(s.stopCh)
	s.mu.Unlock()

	<-c.Stop().Done()
	s.reset()
	return nil
}

func (s *Scheduler) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cron = nil
}

// RunOnce performs a single pass immediately.
func (s *Scheduler) RunOnce(ctx context.Context) RunSummary {
	summary := RunSummary{StartedAt: time.Now()}

	worklist, err := s.worklist.Build(ctx)
	if err == nil {
		summary.Selected = len(worklist)
		var results []domain.PublishResult
		results, err = s.publisher.PublishAll(ctx, worklist, s.request, nil)
		summary.Published = len(results)
	}
	summary.EndedAt = time.Now()
	summary.Err = err

	if err != nil {
		logger.Error("scheduled run failed: %v", err)
	} else {
		logger.Info("scheduled run published %d of %d", summary.Published, summary.Selected)
	}

	s.mu.Lock()
	s.last = &summary
	fn := s.onRun
	runs := s.runs
	s.mu.Unlock()

	if runs != nil {
		s.persist(ctx, runs, summary)
	}
	if fn != nil {
		fn(summary)
	}
	return summary
}

// LastRun returns the most recent pass, or nil if none has run.
func (s *Scheduler) LastRun() *RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Record converts the summary to its persisted form.
func (r RunSummary) Record() domain.RunRecord {
	rec := domain.RunRecord{
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
		Selected:  r.Selected,
		Published: r.Published,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// persist writes the run log. Failures are logged, never returned.
func (s *Scheduler) persist(ctx context.Context, runs driven.RunStore, summary RunSummary) {
	ctx = context.WithoutCancel(ctx)
	if err := runs.RecordRun(ctx, summary.Record()); err != nil {
		logger.Warn("failed to record scheduled run: %v", err)
		return
	}
	if err := runs.PruneRuns(ctx, keepRuns); err != nil {
		logger.Debug("failed to prune run log: %v", err)
	}
}
