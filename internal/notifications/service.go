package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moviesphere/internal/config"
)

const userAgent = "Moviesphere-Go/0.1.0"

// Service defines the notification surface exposed to the moderation and
// analysis components.
type Service interface {
	NotifyStrikeIssued(ctx context.Context, username string, activeStrikes int) error
	NotifyUserBanned(ctx context.Context, username string, revokedSessions int) error
	NotifyAnalysisCompleted(ctx context.Context, actorName, movieTitle string, screenTime float64) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
		settings: cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	settings config.Notifications
}

func (n *ntfyService) NotifyStrikeIssued(ctx context.Context, username string, activeStrikes int) error {
	if !n.settings.Strikes {
		return nil
	}
	username = strings.TrimSpace(username)
	data := payload{
		title:   "Moviesphere - Strike Issued",
		message: fmt.Sprintf("Strike issued to %s (%d active)", username, activeStrikes),
		tags:    []string{"moviesphere", "strike", "issued"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyUserBanned(ctx context.Context, username string, revokedSessions int) error {
	if !n.settings.Bans {
		return nil
	}
	username = strings.TrimSpace(username)
	data := payload{
		title:    "Moviesphere - User Banned",
		message:  fmt.Sprintf("Banned %s and revoked %d sessions", username, revokedSessions),
		tags:     []string{"moviesphere", "ban"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAnalysisCompleted(ctx context.Context, actorName, movieTitle string, screenTime float64) error {
	if !n.settings.Analysis {
		return nil
	}
	actorName = strings.TrimSpace(actorName)
	movieTitle = strings.TrimSpace(movieTitle)
	data := payload{
		title:   "Moviesphere - Analysis Complete",
		message: fmt.Sprintf("%s in %s: %.2fs of screen time", actorName, movieTitle, screenTime),
		tags:    []string{"moviesphere", "analysis", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.settings.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Moviesphere - Error",
		message:  builder.String(),
		tags:     []string{"moviesphere", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Moviesphere - Test",
		message:  "Notification system test",
		tags:     []string{"moviesphere", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyStrikeIssued(context.Context, string, int) error                   { return nil }
func (noopService) NotifyUserBanned(context.Context, string, int) error                     { return nil }
func (noopService) NotifyAnalysisCompleted(context.Context, string, string, float64) error  { return nil }
func (noopService) NotifyError(context.Context, error, string) error                        { return nil }
func (noopService) TestNotification(context.Context) error                                  { return nil }
