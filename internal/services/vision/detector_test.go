package vision_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"moviesphere/internal/models"
	"moviesphere/internal/services"
	"moviesphere/internal/services/vision"
)

func stubDetector(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facedet")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub detector: %v", err)
	}
	return path
}

func testArtifacts() models.DetectorArtifacts {
	return models.DetectorArtifacts{
		ConfigPath:  "facedet.cfg",
		WeightsPath: "facedet.weights",
		NamesPath:   "face.names",
		Labels:      []string{"face"},
	}
}

func TestDetectParsesAndSuppresses(t *testing.T) {
	script := `cat <<'EOF'
{"x":10,"y":10,"w":100,"h":100,"confidence":0.92,"label":"face"}
{"x":12,"y":12,"w":100,"h":100,"confidence":0.81,"label":"face"}
{"x":400,"y":40,"w":60,"h":60,"confidence":0.75,"label":"face"}
{"x":0,"y":0,"w":5,"h":5,"confidence":0.2,"label":"face"}
not json
EOF`
	cli := vision.NewCLI(testArtifacts(), 0.7, 0.4, vision.WithBinary(stubDetector(t, script)))

	detections, err := cli.Detect(context.Background(), "frame.png")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(detections) != 2 {
		t.Fatalf("expected 2 detections after filter+NMS, got %v", detections)
	}
	if detections[0].Confidence != 0.92 || detections[0].Box.X != 10 {
		t.Fatalf("unexpected first detection: %v", detections[0])
	}
}

func TestDetectReportsToolFailure(t *testing.T) {
	cli := vision.NewCLI(testArtifacts(), 0.7, 0.4, vision.WithBinary(stubDetector(t, "exit 3")))
	_, err := cli.Detect(context.Background(), "frame.png")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestDetectRequiresImagePath(t *testing.T) {
	cli := vision.NewCLI(testArtifacts(), 0.7, 0.4)
	if _, err := cli.Detect(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty image path")
	}
}
