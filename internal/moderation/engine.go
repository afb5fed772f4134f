package moderation

import (
	"time"

	"moviesphere/internal/config"
	"moviesphere/internal/services"
)

// Content is the moderation view of a review or news item.
type Content struct {
	Kind     Kind
	ID       int64
	AuthorID int64
	Title    string
	Body     string
	// PrevState is the state before this save; empty for new content.
	PrevState State
}

// Outcome is the result of one moderation pass.
type Outcome struct {
	State       State
	Score       int
	PublishedAt *time.Time
	// StrikeRequired is set only when this pass *changed* the content into
	// the forbidden state. Re-saving an already-forbidden target keeps it
	// false so the same target can never strike twice.
	StrikeRequired bool
}

// Engine maps hate scores to moderation states using the configured
// thresholds. It has no side effects; persistence and strike issuance are
// the caller's job.
type Engine struct {
	scorer *Scorer
	cfg    config.Moderation
}

// NewEngine builds a moderation engine over the scorer and policy config.
func NewEngine(scorer *Scorer, cfg config.Moderation) *Engine {
	return &Engine{scorer: scorer, cfg: cfg}
}

// Moderate computes the next state for content under the given intent.
// Draft intent never scores. Publish intent scores the content and applies
// the per-kind thresholds.
func (e *Engine) Moderate(content Content, intent Intent, now time.Time) (Outcome, error) {
	switch intent {
	case IntentDraft:
		return Outcome{State: StateDraft}, nil
	case IntentPublish:
	default:
		return Outcome{}, services.Wrap(services.ErrInvalidArgument, "moderation", "moderate", "unknown intent "+string(intent), nil)
	}

	var score, pending, reject int
	switch content.Kind {
	case KindReview:
		score = e.scorer.Score(content.Body)
		pending = e.cfg.ReviewPendingScore
		reject = e.cfg.ReviewRejectScore
	case KindNews:
		score = e.scorer.NewsScore(content.Title, content.Body, e.cfg.NewsBodyWeight)
		pending = e.cfg.NewsPendingScore
		reject = e.cfg.NewsRejectScore
	default:
		return Outcome{}, services.Wrap(services.ErrInvalidArgument, "moderation", "moderate", "unknown content kind "+string(content.Kind), nil)
	}

	outcome := Outcome{Score: score}
	switch {
	case score < pending:
		outcome.State = StatePublished
		publishedAt := now.UTC()
		outcome.PublishedAt = &publishedAt
	case score < reject:
		outcome.State = StateInReview
	default:
		outcome.State = StateForbidden
		outcome.StrikeRequired = content.PrevState != StateForbidden
	}
	return outcome, nil
}
