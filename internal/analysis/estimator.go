package analysis

import (
	"context"
	"math"

	"moviesphere/internal/services"
	"moviesphere/internal/store"
)

// Estimator turns frame counts into persisted screen time and emotion
// durations.
type Estimator struct {
	store *store.Store
}

// NewEstimator wires the estimator to its store.
func NewEstimator(st *store.Store) *Estimator {
	return &Estimator{store: st}
}

// Apply writes the derived durations for one completed run and returns the
// screen time in seconds. A zero total frame count is a caller bug, not an
// empty result.
func (e *Estimator) Apply(ctx context.Context, perf *store.Performance, stats *Stats) (float64, error) {
	if stats == nil || stats.TotalFrames == 0 {
		return 0, services.Wrap(services.ErrInvalidArgument, "analysis", "apply", "zero total frames", nil)
	}

	total := float64(stats.TotalFrames)
	duration := perf.MovieDurationSeconds

	screenTime := round2(duration * float64(stats.ActorFrames) / total)
	if err := e.store.CompleteAnalysis(ctx, perf.ID, screenTime); err != nil {
		return 0, err
	}

	emotions := []struct {
		emotion store.Emotion
		frames  int
	}{
		{store.EmotionHappiness, stats.HappyFrames},
		{store.EmotionSadness, stats.SadFrames},
		{store.EmotionAnger, stats.AngryFrames},
	}
	for _, entry := range emotions {
		result := round2(duration * float64(entry.frames) / total)
		if err := e.store.UpsertEmotion(ctx, perf.ID, entry.emotion, result); err != nil {
			return 0, err
		}
	}
	return screenTime, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
