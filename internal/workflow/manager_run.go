package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"moviesphere/internal/analysis"
	"moviesphere/internal/logging"
	"moviesphere/internal/services"
	"moviesphere/internal/store"
)

func (m *Manager) workerLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		perf, err := m.store.NextPendingPerformance(ctx)
		if err != nil {
			m.logger.Error("claim failed", slog.String("error", err.Error()))
			if !m.sleep(ctx, m.errorRetryInterval()) {
				return
			}
			continue
		}
		if perf == nil {
			if !m.sleep(ctx, m.pollInterval) {
				return
			}
			continue
		}

		m.process(ctx, perf)
	}
}

// process runs one claimed performance to completion or failure. A
// canceled context leaves the row in running state; the next Start call
// requeues it.
func (m *Manager) process(ctx context.Context, perf *store.Performance) {
	logger := m.logger.With(slog.Int64(logging.FieldPerformanceID, perf.ID))
	logger.Info("analysis started",
		slog.String("actor", perf.ActorName),
		slog.String("movie", perf.MovieTitle))

	screenTime, err := m.run(ctx, perf)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("analysis interrupted by shutdown")
			return
		}
		logger.Error("analysis failed", slog.String("error", err.Error()))
		if failErr := m.store.FailAnalysis(ctx, perf.ID, err.Error()); failErr != nil {
			logger.Error("failure record failed", slog.String("error", failErr.Error()))
		}
		if notifyErr := m.notifier.NotifyError(ctx, err, fmt.Sprintf("analysis of performance %d", perf.ID)); notifyErr != nil {
			logger.Warn("error notification failed", slog.String("error", notifyErr.Error()))
		}
		return
	}

	logger.Info("analysis completed", slog.Float64("screen_time", screenTime))
	if notifyErr := m.notifier.NotifyAnalysisCompleted(ctx, perf.ActorName, perf.MovieTitle, screenTime); notifyErr != nil {
		logger.Warn("completion notification failed", slog.String("error", notifyErr.Error()))
	}
}

func (m *Manager) run(ctx context.Context, perf *store.Performance) (float64, error) {
	stats, err := m.runner.Run(ctx, analysis.Request{
		PerformanceID: perf.ID,
		MovieTitle:    perf.MovieTitle,
		ActorName:     perf.ActorName,
		FramesDir:     m.framesDir(perf.MovieTitle),
	})
	if err != nil {
		return 0, err
	}
	return m.estimator.Apply(ctx, perf, stats)
}

// Analyze runs one performance synchronously, outside the worker pool.
// Completed and skipped performances are refused.
func (m *Manager) Analyze(ctx context.Context, performanceID int64) (float64, error) {
	perf, err := m.store.GetPerformance(ctx, performanceID)
	if err != nil {
		return 0, err
	}
	switch perf.AnalysisState {
	case store.AnalysisCompleted, store.AnalysisSkipped:
		return 0, services.Wrap(services.ErrInvalidArgument, "workflow", "analyze",
			fmt.Sprintf("performance %d is %s", performanceID, perf.AnalysisState), nil)
	}

	screenTime, err := m.run(ctx, perf)
	if err != nil {
		if ctx.Err() == nil {
			if failErr := m.store.FailAnalysis(ctx, perf.ID, err.Error()); failErr != nil {
				return 0, errors.Join(err, failErr)
			}
		}
		return 0, err
	}
	return screenTime, nil
}

func (m *Manager) errorRetryInterval() time.Duration {
	interval := time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return interval
}

// sleep waits for the duration or context cancellation; false means the
// context ended.
func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
