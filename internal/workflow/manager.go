package workflow

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"moviesphere/internal/analysis"
	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/notifications"
	"moviesphere/internal/store"
	"moviesphere/internal/textutil"
)

// Runner executes one frame analysis request. Satisfied by
// analysis.Pipeline; tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, req analysis.Request) (*analysis.Stats, error)
}

// Manager drains the performance analysis queue with a bounded worker pool.
type Manager struct {
	cfg       *config.Config
	store     *store.Store
	runner    Runner
	estimator *analysis.Estimator
	notifier  notifications.Service
	logger    *slog.Logger

	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, st *store.Store, runner Runner, notifier notifications.Service, logger *slog.Logger) *Manager {
	pollInterval := time.Duration(cfg.Workflow.QueuePollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Manager{
		cfg:          cfg,
		store:        st,
		runner:       runner,
		estimator:    analysis.NewEstimator(st),
		notifier:     notifier,
		logger:       logging.WithComponent(logger, "workflow"),
		pollInterval: pollInterval,
	}
}

// Start recovers orphaned work and launches the worker pool. It returns
// once the workers are running.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	reset, err := m.store.ResetStaleRunning(ctx)
	if err != nil {
		return err
	}
	if reset > 0 {
		m.logger.Info("requeued orphaned analyses", slog.Int64("count", reset))
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true

	workers := m.cfg.Analysis.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.workerLoop(runCtx)
		}()
	}
	m.logger.Info("analysis workers started", slog.Int("workers", workers))
	return nil
}

// Stop cancels the workers and waits for in-flight analyses to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
	m.logger.Info("analysis workers stopped")
}

// Running reports whether the worker pool is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// framesDir maps a movie title onto its frame dump directory.
func (m *Manager) framesDir(movieTitle string) string {
	return filepath.Join(m.cfg.Paths.FramesDir, textutil.Slugify(movieTitle))
}
