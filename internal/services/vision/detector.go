package vision

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"moviesphere/internal/media"
	"moviesphere/internal/models"
	"moviesphere/internal/services"
)

var commandContext = exec.CommandContext

// Detection is a person/face hit in a single frame.
type Detection struct {
	Box        media.Box
	Confidence float64
	Label      string
}

// Detector finds faces in a frame image.
type Detector interface {
	Detect(ctx context.Context, imagePath string) ([]Detection, error)
}

// Option configures the CLI detector.
type Option func(*CLI)

// WithBinary overrides the default detector binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps an external detector command. The command receives the detector
// artifact paths and an image, and emits one JSON candidate box per stdout
// line; confidence filtering and non-maximum suppression happen here.
type CLI struct {
	binary     string
	artifacts  models.DetectorArtifacts
	confidence float64
	overlap    float64
}

// NewCLI constructs a detector around the configured binary and thresholds.
func NewCLI(artifacts models.DetectorArtifacts, confidence, overlap float64, opts ...Option) *CLI {
	cli := &CLI{
		binary:     "facedet",
		artifacts:  artifacts,
		confidence: confidence,
		overlap:    overlap,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Detect runs the detector over one frame and returns suppressed detections
// ordered by descending confidence.
func (c *CLI) Detect(ctx context.Context, imagePath string) ([]Detection, error) {
	if imagePath == "" {
		return nil, errors.New("image path required")
	}

	args := []string{
		"--config", c.artifacts.ConfigPath,
		"--weights", c.artifacts.WeightsPath,
		"--names", c.artifacts.NamesPath,
		"--confidence", strconv.FormatFloat(c.confidence, 'f', -1, 64),
		"--image", imagePath,
		"--format", "json",
	}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "vision", "start", c.binary, err)
	}

	var candidates []Detection
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Bytes()
		var payload struct {
			X          int     `json:"x"`
			Y          int     `json:"y"`
			W          int     `json:"w"`
			H          int     `json:"h"`
			Confidence float64 `json:"confidence"`
			Label      string  `json:"label"`
		}
		if err := json.Unmarshal(line, &payload); err != nil {
			continue
		}
		candidates = append(candidates, Detection{
			Box:        media.Box{X: payload.X, Y: payload.Y, W: payload.W, H: payload.H},
			Confidence: payload.Confidence,
			Label:      payload.Label,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read detector output: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "vision", "detect", imagePath, err)
	}

	return Suppress(Filter(candidates, c.confidence), c.overlap), nil
}

var _ Detector = (*CLI)(nil)
