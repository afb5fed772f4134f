package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateModeration(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateSessions(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateModeration() error {
	m := c.Moderation
	if m.ReviewPendingScore < 0 || m.ReviewRejectScore <= m.ReviewPendingScore {
		return errors.New("moderation.review_reject_score must be greater than moderation.review_pending_score (both non-negative)")
	}
	if m.NewsPendingScore < 0 || m.NewsRejectScore <= m.NewsPendingScore {
		return errors.New("moderation.news_reject_score must be greater than moderation.news_pending_score (both non-negative)")
	}
	if m.NewsBodyWeight < 1 {
		return errors.New("moderation.news_body_weight must be at least 1")
	}
	if m.StrikeValidityMonths <= 0 {
		return errors.New("moderation.strike_validity_months must be positive")
	}
	if m.BanStrikeCount <= 0 {
		return errors.New("moderation.ban_strike_count must be positive")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	a := c.Analysis
	if strings.TrimSpace(a.DetectorBinary) == "" {
		return errors.New("analysis.detector_binary must be set")
	}
	for name, value := range map[string]float64{
		"analysis.detector_confidence": a.DetectorConfidence,
		"analysis.detector_overlap":    a.DetectorOverlap,
		"analysis.actor_threshold":     a.ActorThreshold,
		"analysis.happy_threshold":     a.HappyThreshold,
		"analysis.sad_threshold":       a.SadThreshold,
		"analysis.angry_threshold":     a.AngryThreshold,
	} {
		if value <= 0 || value >= 1 {
			return fmt.Errorf("%s must be between 0 and 1 exclusive", name)
		}
	}
	if len(a.FrameExtensions) == 0 {
		return errors.New("analysis.frame_extensions must list at least one extension")
	}
	if a.Workers <= 0 {
		return errors.New("analysis.workers must be positive")
	}
	if a.FrameTimeoutSeconds < 0 {
		return errors.New("analysis.frame_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateSessions() error {
	switch c.Sessions.Backend {
	case "memory":
		return nil
	case "redis":
		if strings.TrimSpace(c.Sessions.RedisAddr) == "" {
			return errors.New("sessions.redis_addr must be set when sessions.backend is \"redis\"")
		}
		return nil
	default:
		return fmt.Errorf("sessions.backend: unsupported value %q", c.Sessions.Backend)
	}
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.QueuePollInterval <= 0 {
		return errors.New("workflow.queue_poll_interval must be positive")
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		return errors.New("workflow.error_retry_interval must be positive")
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must not be negative")
	}
	return nil
}
