// Package scheduler runs digests on a cron expression. The scheduler is an
// explicitly constructed, injectable instance owned by the composition
// root; there is no module-global state.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avolkov/news-digest/app/database"
	"github.com/avolkov/news-digest/app/digest"
)

// DigestRunner is the slice of the digest processor the scheduler needs.
type DigestRunner interface {
	Run(ctx context.Context, req digest.Request) *digest.Result
}

type Scheduler struct {
	cron    *cron.Cron
	runner  DigestRunner
	runRepo database.RunRepository
	request digest.Request
	timeout time.Duration
}

// New builds a scheduler that produces a digest on every tick of spec and
// records the run. An empty spec is rejected by cron parsing upstream;
// callers should not construct a scheduler when scheduling is disabled.
func New(runner DigestRunner, runRepo database.RunRepository, spec string, request digest.Request) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		runner:  runner,
		runRepo: runRepo,
		request: request,
		timeout: 10 * time.Minute,
	}

	if _, err := s.cron.AddFunc(spec, s.runDigest); err != nil {
		return nil, fmt.Errorf("invalid digest cron expression %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Digest scheduler started", "categories", s.request.SourceCategories)
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Digest scheduler stopped")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	started := time.Now().UTC()
	slog.Info("Scheduled digest run starting", "categories", s.request.SourceCategories)

	result := s.runner.Run(ctx, s.request)

	run := database.Run{
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
		Trigger:          "scheduler",
		SourceCategories: fmt.Sprintf("%v", s.request.SourceCategories),
		Status:           "success",
	}

	if result.Error != "" {
		run.Status = "error"
		run.Error = result.Error
		slog.Error("Scheduled digest run failed", "error", result.Error, "error_type", result.ErrorType)
	} else {
		run.TotalArticles = result.TotalArticles
		run.InterestingCount = result.InterestingCount
		if result.ProcessingInfo != nil {
			run.ErrorCount = result.ProcessingInfo.ErrorsEncountered
		}
		slog.Info("Scheduled digest run completed",
			"total", result.TotalArticles,
			"interesting", result.InterestingCount)
	}

	if s.runRepo != nil {
		if _, err := s.runRepo.InsertRun(run); err != nil {
			slog.Error("Failed to record digest run", "error", err)
		}
	}
}
