package daemon_test

import (
	"context"
	"testing"

	"moviesphere/internal/analysis"
	"moviesphere/internal/daemon"
	"moviesphere/internal/logging"
	"moviesphere/internal/notifications"
	"moviesphere/internal/sessions"
	"moviesphere/internal/testsupport"
	"moviesphere/internal/workflow"
)

type idleRunner struct{}

func (idleRunner) Run(context.Context, analysis.Request) (*analysis.Stats, error) {
	return &analysis.Stats{TotalFrames: 1}, nil
}

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	manager := workflow.NewManager(cfg, st, idleRunner{}, notifications.NewService(cfg), logging.NewNop())
	d, err := daemon.New(cfg, st, logging.NewNop(), manager, sessions.NewMemory())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d
}

func TestDaemonLifecycle(t *testing.T) {
	d := newDaemon(t)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	status, err := d.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running {
		t.Fatal("daemon should report running")
	}
	if status.LockFilePath == "" || status.DBPath == "" {
		t.Fatalf("status paths missing: %+v", status)
	}

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("second start must fail")
	}

	d.Stop()
	status, err = d.Status(context.Background())
	if err != nil {
		t.Fatalf("status after stop: %v", err)
	}
	if status.Running {
		t.Fatal("daemon should report stopped")
	}
}

func TestTestNotificationWithoutTopic(t *testing.T) {
	d := newDaemon(t)
	sent, message, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("test notification: %v", err)
	}
	if sent {
		t.Fatal("no topic configured; nothing should be sent")
	}
	if message == "" {
		t.Fatal("expected explanatory message")
	}
}
