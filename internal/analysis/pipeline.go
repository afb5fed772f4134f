package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"moviesphere/internal/config"
	"moviesphere/internal/logging"
	"moviesphere/internal/media"
	"moviesphere/internal/models"
	"moviesphere/internal/services"
	"moviesphere/internal/services/vision"
)

// Request identifies one performance's frame analysis run.
type Request struct {
	PerformanceID int64
	MovieTitle    string
	ActorName     string
	FramesDir     string
}

// Stats are the per-frame counts produced by one run.
type Stats struct {
	TotalFrames int
	ActorFrames int
	HappyFrames int
	SadFrames   int
	AngryFrames int
}

// Pipeline walks a movie's frame directory and counts the frames where the
// requested actor appears, plus every emotion that registers on each of
// those frames.
type Pipeline struct {
	registry *models.Registry
	detector vision.Detector
	cfg      config.Analysis
	logger   *slog.Logger
}

// NewPipeline wires a frame analysis pipeline.
func NewPipeline(registry *models.Registry, detector vision.Detector, cfg config.Analysis, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		detector: detector,
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "analysis"),
	}
}

// emotionCheck pairs an emotion model with its operating threshold.
type emotionCheck struct {
	name      string
	model     *models.FaceModel
	threshold float64
	counter   *int
}

// Run analyzes every frame for the request. All artifacts and the frame
// source are validated before any frame work starts, so a missing actor
// model fails fast instead of after minutes of detection.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Stats, error) {
	if err := p.registry.ValidateActor(req.ActorName); err != nil {
		return nil, err
	}
	actorModel, err := p.registry.ActorModel(req.ActorName)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	checks := make([]emotionCheck, 0, 3)
	for _, def := range []struct {
		name      string
		threshold float64
		counter   *int
	}{
		{models.EmotionHappy, p.cfg.HappyThreshold, &stats.HappyFrames},
		{models.EmotionSad, p.cfg.SadThreshold, &stats.SadFrames},
		{models.EmotionAngry, p.cfg.AngryThreshold, &stats.AngryFrames},
	} {
		model, err := p.registry.EmotionModel(def.name)
		if err != nil {
			return nil, err
		}
		checks = append(checks, emotionCheck{name: def.name, model: model, threshold: def.threshold, counter: def.counter})
	}

	frames, err := p.listFrames(req.FramesDir)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With(slog.Int64(logging.FieldPerformanceID, req.PerformanceID))
	logger.Info("frame analysis started",
		slog.String("actor", req.ActorName),
		slog.Int("frames", len(frames)))

	for _, framePath := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.analyzeFrame(ctx, framePath, actorModel, checks, stats); err != nil {
			return nil, err
		}
		stats.TotalFrames++
	}

	logger.Info("frame analysis finished",
		slog.Int("total_frames", stats.TotalFrames),
		slog.Int("actor_frames", stats.ActorFrames))
	return stats, nil
}

// analyzeFrame runs detection and classification for one frame. A frame
// that exceeds the per-frame timeout still counts toward the total but is
// otherwise skipped.
func (p *Pipeline) analyzeFrame(ctx context.Context, framePath string, actorModel *models.FaceModel, checks []emotionCheck, stats *Stats) error {
	frameCtx := ctx
	cancel := func() {}
	if p.cfg.FrameTimeoutSeconds > 0 {
		frameCtx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.FrameTimeoutSeconds)*time.Second)
	}
	defer cancel()

	detections, err := p.detector.Detect(frameCtx, framePath)
	if err != nil {
		if errors.Is(frameCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			p.logger.Warn("frame detection timed out", slog.String("frame", framePath))
			return nil
		}
		return err
	}
	if len(detections) == 0 {
		return nil
	}

	img, err := media.LoadImage(framePath)
	if err != nil {
		return services.Wrap(services.ErrFrameSource, "analysis", "load frame", framePath, err)
	}

	// Every detected face is tried against the actor model; the scan stops
	// at the first face that is the actor.
	for _, detection := range detections {
		pixels, err := media.PrepareFace(img, detection.Box, actorModel.Width)
		if err != nil {
			return services.Wrap(services.ErrFrameSource, "analysis", "prepare face", framePath, err)
		}
		confidence, err := actorModel.Predict(pixels)
		if err != nil {
			return err
		}
		if confidence <= p.cfg.ActorThreshold {
			continue
		}
		stats.ActorFrames++

		for _, check := range checks {
			crop, err := media.PrepareFace(img, detection.Box, check.model.Width)
			if err != nil {
				return services.Wrap(services.ErrFrameSource, "analysis", "prepare face", framePath, err)
			}
			score, err := check.model.Predict(crop)
			if err != nil {
				return err
			}
			// Emotions are independent; one face can exceed several
			// thresholds at once.
			if score > check.threshold {
				*check.counter++
			}
		}
		break
	}
	return nil
}

// listFrames returns the frame images in dir, filtered by the configured
// extensions, in name order.
func (p *Pipeline) listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFrameSource, "analysis", "read frames dir", dir, err)
	}

	allowed := make(map[string]struct{}, len(p.cfg.FrameExtensions))
	for _, ext := range p.cfg.FrameExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var frames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := allowed[ext]; !ok {
			continue
		}
		frames = append(frames, filepath.Join(dir, entry.Name()))
	}
	if len(frames) == 0 {
		return nil, services.Wrap(services.ErrFrameSource, "analysis", "read frames dir",
			fmt.Sprintf("no frame images in %s", dir), nil)
	}
	sort.Strings(frames)
	return frames, nil
}
