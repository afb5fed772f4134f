package store

import (
	"strings"
	"time"

	"moviesphere/internal/moderation"
)

// Timestamps on audit fields keep full precision; the strike window fields
// use second precision and a fixed width so SQL range comparisons on the
// TEXT columns order chronologically.
const (
	auditTimeFormat  = time.RFC3339Nano
	windowTimeFormat = time.RFC3339
)

// AnalysisState tracks a performance through the frame analysis queue.
type AnalysisState string

const (
	AnalysisPending   AnalysisState = "pending"
	AnalysisRunning   AnalysisState = "running"
	AnalysisCompleted AnalysisState = "completed"
	AnalysisFailed    AnalysisState = "failed"
	// AnalysisSkipped marks performances created with an explicit screen
	// time; the pipeline never touches them.
	AnalysisSkipped AnalysisState = "skipped"
)

// Emotion is a persisted emotion analysis category.
type Emotion string

const (
	EmotionHappiness Emotion = "happiness"
	EmotionSadness   Emotion = "sadness"
	EmotionAnger     Emotion = "anger"
)

// AllEmotions returns the persisted emotion categories.
func AllEmotions() []Emotion {
	return []Emotion{EmotionHappiness, EmotionSadness, EmotionAnger}
}

// ParseEmotion converts a string into a known Emotion.
func ParseEmotion(value string) (Emotion, bool) {
	normalized := Emotion(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case EmotionHappiness, EmotionSadness, EmotionAnger:
		return normalized, true
	default:
		return "", false
	}
}

// Profile is the moderation-facing slice of a platform user.
type Profile struct {
	UserID    int64
	Username  string
	IsBanned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentItem is a review or news item under moderation.
type ContentItem struct {
	ID          int64
	Kind        moderation.Kind
	Title       string
	Body        string
	HateScore   int
	State       moderation.State
	AuthorID    int64
	MovieID     *int64
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Strike is a moderation penalty tied to exactly one content item.
type Strike struct {
	ID         int64
	TargetKind moderation.Kind
	TargetID   int64
	UserID     int64
	IssuedAt   time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// ActiveAt reports whether the strike counts at the evaluation time:
// inclusive lower bound, exclusive upper bound.
func (s Strike) ActiveAt(now time.Time) bool {
	return !s.IssuedAt.After(now) && s.ExpiresAt.After(now)
}

// Performance links an actor to a movie with a derived screen time.
type Performance struct {
	ID                   int64
	MovieTitle           string
	MovieDurationSeconds float64
	ActorName            string
	CharacterName        string
	ScreenTime           *float64
	AnalysisState        AnalysisState
	ErrorMessage         string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EmotionAnalysis is a derived emotion duration for one performance.
type EmotionAnalysis struct {
	ID            int64
	PerformanceID int64
	Emotion       Emotion
	Result        float64
	UpdatedAt     time.Time
}

// HealthSummary describes aggregated analysis queue counts.
type HealthSummary struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Failed    int
	Skipped   int
}
