package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviesphere/internal/config"
	"moviesphere/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyStrikeIssued(context.Background(), "someone", 1); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "strike issued",
			notify: func(svc notifications.Service) error {
				return svc.NotifyStrikeIssued(context.Background(), "troll42", 2)
			},
			expectTitle:   "Moviesphere - Strike Issued",
			expectMessage: "Strike issued to troll42 (2 active)",
			expectTags:    "moviesphere,strike,issued",
		},
		{
			name: "user banned",
			notify: func(svc notifications.Service) error {
				return svc.NotifyUserBanned(context.Background(), "troll42", 3)
			},
			expectTitle:    "Moviesphere - User Banned",
			expectMessage:  "Banned troll42 and revoked 3 sessions",
			expectTags:     "moviesphere,ban",
			expectPriority: "high",
		},
		{
			name: "analysis completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyAnalysisCompleted(context.Background(), "Maria Voss", "Night Train", 642.85)
			},
			expectTitle:   "Moviesphere - Analysis Complete",
			expectMessage: "Maria Voss in Night Train: 642.85s of screen time",
			expectTags:    "moviesphere,analysis,completed",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("frame source missing"), "analysis")
			},
			expectTitle:    "Moviesphere - Error",
			expectMessage:  "Error with analysis: frame source missing",
			expectTags:     "moviesphere,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsCategoryToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled category: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Strikes = false
	cfg.Notifications.Bans = false
	cfg.Notifications.Analysis = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()

	if err := svc.NotifyStrikeIssued(ctx, "user", 1); err != nil {
		t.Fatalf("strike notify: %v", err)
	}
	if err := svc.NotifyUserBanned(ctx, "user", 1); err != nil {
		t.Fatalf("ban notify: %v", err)
	}
	if err := svc.NotifyAnalysisCompleted(ctx, "actor", "movie", 1.0); err != nil {
		t.Fatalf("analysis notify: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "test"); err != nil {
		t.Fatalf("error notify: %v", err)
	}
}

func TestNtfyServiceSurfacesHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
